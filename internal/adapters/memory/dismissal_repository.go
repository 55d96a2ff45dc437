package memory

import (
	"context"
	"sync"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
)

// InMemoryDismissalRepository keeps dismissed warnings per kit for the
// lifetime of the process
type InMemoryDismissalRepository struct {
	mu         sync.RWMutex
	dismissals map[string]models.DismissalSet
}

// NewInMemoryDismissalRepository creates a new in-memory dismissal repository
func NewInMemoryDismissalRepository() *InMemoryDismissalRepository {
	return &InMemoryDismissalRepository{
		dismissals: make(map[string]models.DismissalSet),
	}
}

func (r *InMemoryDismissalRepository) Dismiss(ctx context.Context, kitID string, key models.DismissalKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.dismissals[kitID]
	if !ok {
		set = make(models.DismissalSet)
		r.dismissals[kitID] = set
	}
	set[key] = struct{}{}
	return nil
}

// Restore is a no-op when the warning was never dismissed
func (r *InMemoryDismissalRepository) Restore(ctx context.Context, kitID string, key models.DismissalKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if set, ok := r.dismissals[kitID]; ok {
		delete(set, key)
		if len(set) == 0 {
			delete(r.dismissals, kitID)
		}
	}
	return nil
}

func (r *InMemoryDismissalRepository) List(ctx context.Context, kitID string) (models.DismissalSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(models.DismissalSet, len(r.dismissals[kitID]))
	for key := range r.dismissals[kitID] {
		result[key] = struct{}{}
	}
	return result, nil
}

func (r *InMemoryDismissalRepository) Clear(ctx context.Context, kitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.dismissals, kitID)
	return nil
}
