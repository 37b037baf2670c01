package provider

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu        sync.RWMutex
	providers map[string]Provider
	order     []string
}

// NewMemoryRepository builds an in-memory provider store, used in
// development mode and for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{providers: make(map[string]Provider)}
}

func (r *memoryRepository) Create(_ context.Context, p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[id]
	if !ok {
		return Provider{}, ErrNotFound
	}
	return p, nil
}

func (r *memoryRepository) List(_ context.Context, f Filter) ([]Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []Provider{}
	// Newest first, to mirror the Postgres ordering.
	for i := len(r.order) - 1; i >= 0; i-- {
		p := r.providers[r.order[i]]
		if f.Trade != "" && p.Trade != f.Trade {
			continue
		}
		if f.City != "" && p.City != f.City {
			continue
		}
		matched = append(matched, p)
		if len(matched) == f.Limit {
			break
		}
	}
	return matched, nil
}

func (r *memoryRepository) ApplyReview(_ context.Context, id string, rating int) (Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return Provider{}, ErrNotFound
	}
	p.Rating = ((p.Rating * float64(p.ReviewCount)) + float64(rating)) / float64(p.ReviewCount+1)
	p.ReviewCount++
	r.providers[id] = p
	return p, nil
}
