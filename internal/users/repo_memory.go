package users

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo for dev and tests.
// Records keep their insertion order, standing in for the store's natural order.
type MemoryRepo struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Seed appends records, preserving call order.
func (r *MemoryRepo) Seed(records ...Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)
}

// FetchAll returns all records in insertion order.
func (r *MemoryRepo) FetchAll(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

// GetByID returns the record with the given key.
func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.ID == userID {
			return rec, nil
		}
	}
	return Record{}, ErrNotFound
}
