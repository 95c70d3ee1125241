package store

import (
	"errors"
	"sync"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

var (
	// ErrNotLoaded is returned when no dataset has been stored yet.
	ErrNotLoaded = errors.New("dataset not loaded")
)

// MemoryStore is a concurrency-safe in-memory holder of the current dataset.
// A reload replaces the dataset as a whole; readers never see a partial swap.
type MemoryStore struct {
	mu sync.RWMutex

	current *rental.Dataset
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the current dataset.
func (s *MemoryStore) Save(ds rental.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &ds
}

// Current returns the most recently saved dataset.
func (s *MemoryStore) Current() (rental.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return rental.Dataset{}, ErrNotLoaded
	}
	return *s.current, nil
}
