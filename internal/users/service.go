package users

import (
	"context"
	"errors"
	"strings"

	"docviewer-backend/internal/shared/telemetry"
)

const defaultSuggestionLimit = 3

// Result is the outcome of an email lookup.
type Result struct {
	Found          bool
	Record         Record
	DuplicateCount int      // additional records sharing the matched email
	Suggestions    []string // candidate emails when no exact match exists
}

// Service performs email lookups over the users collection.
type Service struct {
	Repo            Repo
	SuggestionLimit int
}

// NewService constructs a Service.
func NewService(repo Repo, suggestionLimit int) *Service {
	if suggestionLimit <= 0 {
		suggestionLimit = defaultSuggestionLimit
	}
	return &Service{Repo: repo, SuggestionLimit: suggestionLimit}
}

// FindByEmail fetches the full collection, rebuilds an email index, and
// resolves the input to the first record whose email matches exactly
// (case-sensitive, no normalization). Duplicate emails resolve to the
// first-encountered record; the duplicate count is surfaced and logged.
// With no exact match, Suggestions carries up to SuggestionLimit candidate
// emails, in scan order, whose local part contains the input's local part.
func (s *Service) FindByEmail(ctx context.Context, email string) (Result, error) {
	if s == nil || s.Repo == nil {
		return Result{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(email) == "" {
		return Result{}, errors.New("email is required")
	}

	records, err := s.Repo.FetchAll(ctx)
	if err != nil {
		return Result{}, err
	}

	index := buildEmailIndex(records)
	if entry, ok := index[email]; ok {
		if entry.duplicates > 0 {
			telemetry.Warn("users.duplicate_email", map[string]any{
				"email":      email,
				"duplicates": entry.duplicates,
				"matched_id": entry.record.ID,
			})
		}
		return Result{Found: true, Record: entry.record, DuplicateCount: entry.duplicates}, nil
	}

	return Result{Suggestions: s.suggest(records, email)}, nil
}

// GetByID resolves a record by its opaque database key.
func (s *Service) GetByID(ctx context.Context, userID string) (Record, error) {
	if s == nil || s.Repo == nil {
		return Record{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Record{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

type indexEntry struct {
	record     Record
	duplicates int
}

// buildEmailIndex maps email to the first record carrying it, counting any
// later records with the same email. Rebuilt on every fetch; the collection
// is assumed small.
func buildEmailIndex(records []Record) map[string]indexEntry {
	index := make(map[string]indexEntry, len(records))
	for _, rec := range records {
		if rec.User.Email == "" {
			continue
		}
		entry, ok := index[rec.User.Email]
		if !ok {
			index[rec.User.Email] = indexEntry{record: rec}
			continue
		}
		entry.duplicates++
		index[rec.User.Email] = entry
	}
	return index
}

func (s *Service) suggest(records []Record, email string) []string {
	local := localPart(email)
	if local == "" {
		return nil
	}
	var out []string
	for _, rec := range records {
		if rec.User.Email == "" {
			continue
		}
		if strings.Contains(localPart(rec.User.Email), local) {
			out = append(out, rec.User.Email)
			if len(out) >= s.SuggestionLimit {
				break
			}
		}
	}
	return out
}

// localPart returns the substring before the first '@'. Input without an '@'
// is treated as a bare local part; an empty local part yields no suggestions.
func localPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
