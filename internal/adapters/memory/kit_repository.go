package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/internal/domain/ports"
)

// InMemoryKitRepository is an in-memory kit store
type InMemoryKitRepository struct {
	mu   sync.RWMutex
	kits map[string]*models.Kit
}

// NewInMemoryKitRepository creates a new in-memory kit repository
func NewInMemoryKitRepository() *InMemoryKitRepository {
	return &InMemoryKitRepository{
		kits: make(map[string]*models.Kit),
	}
}

func (r *InMemoryKitRepository) Get(ctx context.Context, id string) (*models.Kit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if kit, ok := r.kits[id]; ok {
		return kit.Clone(), nil
	}
	return nil, ports.ErrNotFound
}

func (r *InMemoryKitRepository) Save(ctx context.Context, kit *models.Kit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := kit.Clone()
	if existing, ok := r.kits[kit.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.kits[kit.ID] = stored

	kit.CreatedAt, kit.UpdatedAt = stored.CreatedAt, stored.UpdatedAt
	return nil
}

func (r *InMemoryKitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kits[id]; !exists {
		return ports.ErrNotFound
	}
	delete(r.kits, id)
	return nil
}

func (r *InMemoryKitRepository) List(ctx context.Context, offset, limit int) ([]*models.Kit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.kits))
	for id := range r.kits {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]*models.Kit, 0)
	for i, id := range ids {
		if i < offset {
			continue
		}
		kit := r.kits[id].Clone()
		kit.Entries = nil
		result = append(result, kit)
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}
