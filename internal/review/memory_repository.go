package review

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	reviews []Review
}

// NewMemoryRepository builds an in-memory review store, used in
// development mode and for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, rev Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, rev)
	return nil
}

func (r *memoryRepository) ListByProvider(_ context.Context, providerID string) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []Review{}
	for i := len(r.reviews) - 1; i >= 0; i-- {
		if r.reviews[i].ProviderID == providerID {
			matched = append(matched, r.reviews[i])
		}
	}
	return matched, nil
}
