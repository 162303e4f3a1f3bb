package audit

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo for dev and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	events []SearchEvent
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, event SearchEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Recent returns the newest events first.
func (r *MemoryRepo) Recent(ctx context.Context, limit int) ([]SearchEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.events) {
		limit = len(r.events)
	}
	out := make([]SearchEvent, 0, limit)
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}
