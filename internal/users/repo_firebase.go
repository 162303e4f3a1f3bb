package users

import (
	"context"
	"fmt"
	"sort"

	"firebase.google.com/go/v4/db"
)

const usersPath = "users"

// FirebaseRepo reads user records from the Realtime Database.
type FirebaseRepo struct {
	Client *db.Client
}

// FetchAll downloads the entire users collection in one read. The database
// orders children lexicographically by key, so fetched map keys are sorted
// ascending to reproduce that order deterministically.
func (r *FirebaseRepo) FetchAll(ctx context.Context) ([]Record, error) {
	var raw map[string]User
	if err := r.Client.NewRef(usersPath).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]Record, 0, len(keys))
	for _, k := range keys {
		records = append(records, Record{ID: k, User: raw[k]})
	}
	return records, nil
}

// GetByID reads a single user record by its database key.
func (r *FirebaseRepo) GetByID(ctx context.Context, userID string) (Record, error) {
	var user User
	if err := r.Client.NewRef(usersPath+"/"+userID).Get(ctx, &user); err != nil {
		return Record{}, fmt.Errorf("fetch user %s: %w", userID, err)
	}
	// A missing key unmarshals as null and leaves the struct zero. Stored
	// users always carry an email, so a fully empty record means absent.
	if user.Email == "" && len(user.Documents) == 0 {
		return Record{}, ErrNotFound
	}
	return Record{ID: userID, User: user}, nil
}
