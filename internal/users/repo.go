package users

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

// Repo reads user records from the backing store. The store is hierarchical
// with no query-by-field capability, so lookups work over the full collection.
// FetchAll returns records in the store's natural order (ascending key).
type Repo interface {
	FetchAll(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, userID string) (Record, error)
}
