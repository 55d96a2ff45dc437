package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/internal/domain/ports"
)

// MockKitRepository is a mock implementation of KitRepository for testing
type MockKitRepository struct {
	mu   sync.RWMutex
	kits map[string]*models.Kit

	// Function overrides for testing
	GetFunc    func(ctx context.Context, id string) (*models.Kit, error)
	SaveFunc   func(ctx context.Context, kit *models.Kit) error
	DeleteFunc func(ctx context.Context, id string) error
	ListFunc   func(ctx context.Context, offset, limit int) ([]*models.Kit, error)
}

// NewMockKitRepository creates a new mock kit repository
func NewMockKitRepository() *MockKitRepository {
	return &MockKitRepository{
		kits: make(map[string]*models.Kit),
	}
}

// Get retrieves a kit by id
func (m *MockKitRepository) Get(ctx context.Context, id string) (*models.Kit, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	kit, exists := m.kits[id]
	if !exists {
		return nil, ports.ErrNotFound
	}
	return kit.Clone(), nil
}

// Save stores a kit
func (m *MockKitRepository) Save(ctx context.Context, kit *models.Kit) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, kit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kit.UpdatedAt = time.Now()
	m.kits[kit.ID] = kit.Clone()
	return nil
}

// Delete removes a kit
func (m *MockKitRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.kits[id]; !exists {
		return ports.ErrNotFound
	}
	delete(m.kits, id)
	return nil
}

// List retrieves kits with pagination
func (m *MockKitRepository) List(ctx context.Context, offset, limit int) ([]*models.Kit, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, offset, limit)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*models.Kit
	for _, kit := range m.kits {
		result = append(result, kit.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	if offset >= len(result) {
		return []*models.Kit{}, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

// AddKit adds a kit directly (for test setup)
func (m *MockKitRepository) AddKit(kit *models.Kit) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.kits[kit.ID] = kit.Clone()
}
