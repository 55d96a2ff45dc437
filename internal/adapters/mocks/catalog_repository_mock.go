package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/internal/domain/ports"
)

// MockCatalogRepository is a mock implementation of CatalogRepository for testing
type MockCatalogRepository struct {
	mu    sync.RWMutex
	specs map[string]*models.EquipmentSpec

	// Function overrides for testing
	GetFunc            func(ctx context.Context, id string) (*models.EquipmentSpec, error)
	UpsertFunc         func(ctx context.Context, spec *models.EquipmentSpec) error
	DeleteFunc         func(ctx context.Context, id string) error
	ListFunc           func(ctx context.Context, offset, limit int) ([]*models.EquipmentSpec, error)
	ListByCategoryFunc func(ctx context.Context, category models.Category, offset, limit int) ([]*models.EquipmentSpec, error)
	SnapshotFunc       func(ctx context.Context) ([]models.EquipmentSpec, error)
	CountFunc          func(ctx context.Context) (int64, error)
}

// NewMockCatalogRepository creates a new mock catalog repository
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		specs: make(map[string]*models.EquipmentSpec),
	}
}

// Get retrieves a spec by id
func (m *MockCatalogRepository) Get(ctx context.Context, id string) (*models.EquipmentSpec, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	spec, exists := m.specs[id]
	if !exists {
		return nil, ports.ErrNotFound
	}

	// Return a copy to prevent external modification
	return spec.Clone(), nil
}

// Upsert stores a spec
func (m *MockCatalogRepository) Upsert(ctx context.Context, spec *models.EquipmentSpec) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, spec)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	spec.UpdatedAt = time.Now()
	m.specs[spec.ID] = spec.Clone()
	return nil
}

// Delete removes a spec
func (m *MockCatalogRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.specs[id]; !exists {
		return ports.ErrNotFound
	}

	delete(m.specs, id)
	return nil
}

// List retrieves specs with pagination
func (m *MockCatalogRepository) List(ctx context.Context, offset, limit int) ([]*models.EquipmentSpec, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, offset, limit)
	}
	return m.page(func(*models.EquipmentSpec) bool { return true }, offset, limit), nil
}

// ListByCategory retrieves specs of one category
func (m *MockCatalogRepository) ListByCategory(ctx context.Context, category models.Category, offset, limit int) ([]*models.EquipmentSpec, error) {
	if m.ListByCategoryFunc != nil {
		return m.ListByCategoryFunc(ctx, category, offset, limit)
	}
	return m.page(func(s *models.EquipmentSpec) bool { return s.Category == category }, offset, limit), nil
}

// Snapshot returns every spec
func (m *MockCatalogRepository) Snapshot(ctx context.Context) ([]models.EquipmentSpec, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx)
	}

	m.mu.RLock()
	n := len(m.specs)
	m.mu.RUnlock()

	specs := m.page(func(*models.EquipmentSpec) bool { return true }, 0, n)
	result := make([]models.EquipmentSpec, 0, len(specs))
	for _, s := range specs {
		result = append(result, *s)
	}
	return result, nil
}

// Count returns the number of specs
func (m *MockCatalogRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.specs)), nil
}

// Helper methods

// AddSpec adds a spec directly (for test setup)
func (m *MockCatalogRepository) AddSpec(specs ...models.EquipmentSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range specs {
		m.specs[specs[i].ID] = specs[i].Clone()
	}
}

// Clear removes all specs (for test cleanup)
func (m *MockCatalogRepository) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.specs = make(map[string]*models.EquipmentSpec)
}

func (m *MockCatalogRepository) page(keep func(*models.EquipmentSpec) bool, offset, limit int) []*models.EquipmentSpec {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*models.EquipmentSpec
	for _, spec := range m.specs {
		if keep(spec) {
			result = append(result, spec.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	// Apply pagination
	if offset >= len(result) {
		return []*models.EquipmentSpec{}
	}

	end := offset + limit
	if end > len(result) {
		end = len(result)
	}

	return result[offset:end]
}
