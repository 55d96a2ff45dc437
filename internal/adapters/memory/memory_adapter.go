package memory

import (
	"context"

	"github.com/hsdfat8/kitcheck/internal/domain/ports"
)

// MemoryAdapter implements the DatabaseAdapter interface without a backend
type MemoryAdapter struct {
	catalog *InMemoryCatalogRepository
	kits    *InMemoryKitRepository
}

// NewMemoryAdapter creates a new in-memory database adapter
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		catalog: NewInMemoryCatalogRepository(),
		kits:    NewInMemoryKitRepository(),
	}
}

func (a *MemoryAdapter) Connect(ctx context.Context) error    { return nil }
func (a *MemoryAdapter) Disconnect(ctx context.Context) error { return nil }
func (a *MemoryAdapter) Ping(ctx context.Context) error       { return nil }

func (a *MemoryAdapter) GetType() ports.DatabaseType {
	return ports.DatabaseTypeMemory
}

func (a *MemoryAdapter) GetCatalogRepository() ports.CatalogRepository {
	return a.catalog
}

func (a *MemoryAdapter) GetKitRepository() ports.KitRepository {
	return a.kits
}

// Catalog exposes the concrete catalog so callers can seed it
func (a *MemoryAdapter) Catalog() *InMemoryCatalogRepository {
	return a.catalog
}

func (a *MemoryAdapter) HealthCheck(ctx context.Context) error {
	return nil
}

func (a *MemoryAdapter) GetConnectionStats() ports.ConnectionStats {
	return ports.ConnectionStats{
		DatabaseType: string(ports.DatabaseTypeMemory),
		Healthy:      true,
	}
}

func (a *MemoryAdapter) OptimizeDatabase(ctx context.Context) error {
	return nil
}
