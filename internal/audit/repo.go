package audit

import "context"

// Repo persists search events.
type Repo interface {
	Create(ctx context.Context, event SearchEvent) error
	Recent(ctx context.Context, limit int) ([]SearchEvent, error)
}
