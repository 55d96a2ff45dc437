package repository

import (
	"errors"
	"strings"
	"sync"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/utils"
)

var ErrInvalidAdapter = errors.New("adapter requires both fromMount and toMount")

// AdapterRegistry is the lookup table of known lens-mount adapters.
// Lookups are exact, directional and case-insensitive.
type AdapterRegistry interface {
	FindCompatibleAdapters(fromMount, toMount string) []models.Adapter
	HasAdapter(fromMount, toMount string) bool
	Add(adapter models.Adapter) error
	List() []models.Adapter
}

// InMemoryAdapterRegistry is an append-only adapter table
type InMemoryAdapterRegistry struct {
	mu       sync.RWMutex
	adapters []models.Adapter
}

// NewInMemoryAdapterRegistry creates a registry holding a copy of seed
func NewInMemoryAdapterRegistry(seed []models.Adapter) *InMemoryAdapterRegistry {
	r := &InMemoryAdapterRegistry{adapters: make([]models.Adapter, 0, len(seed))}
	for _, a := range seed {
		_ = r.Add(a)
	}
	return r
}

// NewDefaultAdapterRegistry creates a registry seeded with the built-in adapters
func NewDefaultAdapterRegistry() *InMemoryAdapterRegistry {
	return NewInMemoryAdapterRegistry(utils.AdapterSeedData)
}

func normalizeMount(mount string) string {
	return strings.ToUpper(strings.TrimSpace(mount))
}

func (r *InMemoryAdapterRegistry) FindCompatibleAdapters(fromMount, toMount string) []models.Adapter {
	from, to := normalizeMount(fromMount), normalizeMount(toMount)
	if from == "" || to == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Adapter
	for _, a := range r.adapters {
		if normalizeMount(a.FromMount) == from && normalizeMount(a.ToMount) == to {
			result = append(result, a)
		}
	}
	return result
}

func (r *InMemoryAdapterRegistry) HasAdapter(fromMount, toMount string) bool {
	return len(r.FindCompatibleAdapters(fromMount, toMount)) > 0
}

// Add appends an adapter. Entries are never removed or replaced.
func (r *InMemoryAdapterRegistry) Add(adapter models.Adapter) error {
	if normalizeMount(adapter.FromMount) == "" || normalizeMount(adapter.ToMount) == "" {
		return ErrInvalidAdapter
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters = append(r.adapters, adapter)
	return nil
}

func (r *InMemoryAdapterRegistry) List() []models.Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Adapter, len(r.adapters))
	copy(result, r.adapters)
	return result
}
