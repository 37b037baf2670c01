package request

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	requests []ServiceRequest
}

// NewMemoryRepository builds an in-memory request store, used in
// development mode and for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, req ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return nil
}

func (r *memoryRepository) List(_ context.Context, f Filter) ([]ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []ServiceRequest{}
	for i := len(r.requests) - 1; i >= 0; i-- {
		req := r.requests[i]
		if f.Trade != "" && req.Trade != f.Trade {
			continue
		}
		if f.City != "" && req.City != f.City {
			continue
		}
		matched = append(matched, req)
		if len(matched) == f.Limit {
			break
		}
	}
	return matched, nil
}
