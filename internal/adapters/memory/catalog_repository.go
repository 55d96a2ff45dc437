package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/internal/domain/ports"
)

// InMemoryCatalogRepository is an in-memory catalog store
type InMemoryCatalogRepository struct {
	mu    sync.RWMutex
	specs map[string]*models.EquipmentSpec
}

// NewInMemoryCatalogRepository creates a new in-memory catalog repository
func NewInMemoryCatalogRepository() *InMemoryCatalogRepository {
	return &InMemoryCatalogRepository{
		specs: make(map[string]*models.EquipmentSpec),
	}
}

// Seed loads specs into the catalog, replacing stored entries. Within one
// batch the first spec with a given id wins.
func (r *InMemoryCatalogRepository) Seed(specs []models.EquipmentSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	seen := make(map[string]struct{}, len(specs))
	for i := range specs {
		if _, dup := seen[specs[i].ID]; dup {
			continue
		}
		seen[specs[i].ID] = struct{}{}
		spec := specs[i].Clone()
		if spec.CreatedAt.IsZero() {
			spec.CreatedAt = now
		}
		spec.UpdatedAt = now
		r.specs[spec.ID] = spec
	}
}

func (r *InMemoryCatalogRepository) Get(ctx context.Context, id string) (*models.EquipmentSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if spec, ok := r.specs[id]; ok {
		return spec.Clone(), nil
	}
	return nil, ports.ErrNotFound
}

func (r *InMemoryCatalogRepository) Upsert(ctx context.Context, spec *models.EquipmentSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := spec.Clone()
	if existing, ok := r.specs[spec.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.specs[spec.ID] = stored

	spec.CreatedAt, spec.UpdatedAt = stored.CreatedAt, stored.UpdatedAt
	return nil
}

func (r *InMemoryCatalogRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.specs[id]; !exists {
		return ports.ErrNotFound
	}
	delete(r.specs, id)
	return nil
}

func (r *InMemoryCatalogRepository) List(ctx context.Context, offset, limit int) ([]*models.EquipmentSpec, error) {
	return r.filter(func(*models.EquipmentSpec) bool { return true }, offset, limit), nil
}

func (r *InMemoryCatalogRepository) ListByCategory(ctx context.Context, category models.Category, offset, limit int) ([]*models.EquipmentSpec, error) {
	return r.filter(func(s *models.EquipmentSpec) bool { return s.Category == category }, offset, limit), nil
}

func (r *InMemoryCatalogRepository) Snapshot(ctx context.Context) ([]models.EquipmentSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.EquipmentSpec, 0, len(r.specs))
	for _, id := range r.sortedIDs() {
		result = append(result, *r.specs[id].Clone())
	}
	return result, nil
}

func (r *InMemoryCatalogRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.specs)), nil
}

func (r *InMemoryCatalogRepository) filter(keep func(*models.EquipmentSpec) bool, offset, limit int) []*models.EquipmentSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.EquipmentSpec, 0)
	count := 0
	for _, id := range r.sortedIDs() {
		spec := r.specs[id]
		if !keep(spec) {
			continue
		}
		if count >= offset {
			result = append(result, spec.Clone())
			if len(result) >= limit {
				break
			}
		}
		count++
	}
	return result
}

// sortedIDs must be called with the lock held
func (r *InMemoryCatalogRepository) sortedIDs() []string {
	ids := make([]string, 0, len(r.specs))
	for id := range r.specs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
