package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docviewer-backend/internal/shared/telemetry"
)

const defaultRecentLimit = 20

// Service records and lists search events. Writes are best-effort: a failed
// audit insert is logged and never blocks the search response.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// RecordSearch persists a search event.
func (s *Service) RecordSearch(ctx context.Context, email, matchedUserID string, duplicates int, requestID, sessionID string) {
	if s == nil || s.Repo == nil {
		return
	}
	event := SearchEvent{
		ID:             uuid.NewString(),
		SearchedEmail:  email,
		MatchedUserID:  matchedUserID,
		DuplicateCount: duplicates,
		RequestID:      requestID,
		SessionID:      sessionID,
		SearchedAt:     time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, event); err != nil {
		telemetry.Error("audit.write_failed", map[string]any{
			"error":      err.Error(),
			"email":      email,
			"request_id": requestID,
		})
	}
}

// Recent lists the latest search events.
func (s *Service) Recent(ctx context.Context, limit int) ([]SearchEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultRecentLimit
	}
	return s.Repo.Recent(ctx, limit)
}
