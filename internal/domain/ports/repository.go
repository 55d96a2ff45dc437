package ports

import (
	"context"
	"errors"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
)

// Errors every storage adapter maps its backend-specific "no rows" and
// "duplicate key" conditions onto
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// CatalogRepository defines the interface for equipment catalog access
// This is a port owned by the domain layer
type CatalogRepository interface {
	// Get retrieves one catalog entry by id
	Get(ctx context.Context, id string) (*models.EquipmentSpec, error)

	// Upsert creates or replaces a catalog entry
	Upsert(ctx context.Context, spec *models.EquipmentSpec) error

	// Delete removes a catalog entry by id
	Delete(ctx context.Context, id string) error

	// List retrieves catalog entries ordered by id with pagination
	List(ctx context.Context, offset, limit int) ([]*models.EquipmentSpec, error)

	// ListByCategory retrieves catalog entries of one category
	ListByCategory(ctx context.Context, category models.Category, offset, limit int) ([]*models.EquipmentSpec, error)

	// Snapshot returns a copy of the whole catalog for a validation pass
	Snapshot(ctx context.Context) ([]models.EquipmentSpec, error)

	// Count returns the number of catalog entries
	Count(ctx context.Context) (int64, error)
}

// KitRepository defines the interface for kit persistence
type KitRepository interface {
	// Get retrieves a kit with all of its entries
	Get(ctx context.Context, id string) (*models.Kit, error)

	// Save creates or replaces a kit and its entries
	Save(ctx context.Context, kit *models.Kit) error

	// Delete removes a kit and its entries
	Delete(ctx context.Context, id string) error

	// List retrieves kits without entries, ordered by id
	List(ctx context.Context, offset, limit int) ([]*models.Kit, error)
}

// DismissalRepository holds the warnings a user has dismissed per kit.
// Dismissals are presentation state and are never fed to the engine.
type DismissalRepository interface {
	Dismiss(ctx context.Context, kitID string, key models.DismissalKey) error
	Restore(ctx context.Context, kitID string, key models.DismissalKey) error
	List(ctx context.Context, kitID string) (models.DismissalSet, error)
	Clear(ctx context.Context, kitID string) error
}
