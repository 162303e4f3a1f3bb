package audit

import (
	"context"
	"database/sql"
)

// PGRepo stores search events in Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, event SearchEvent) error {
	const query = `
INSERT INTO search_events (id, searched_email, matched_user_id, duplicate_count, request_id, session_id, searched_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		event.ID,
		event.SearchedEmail,
		nullableString(event.MatchedUserID),
		event.DuplicateCount,
		nullableString(event.RequestID),
		nullableString(event.SessionID),
		event.SearchedAt,
	)
	return err
}

func (r *PGRepo) Recent(ctx context.Context, limit int) ([]SearchEvent, error) {
	const query = `
SELECT id, searched_email, matched_user_id, duplicate_count, request_id, session_id, searched_at
FROM search_events
ORDER BY searched_at DESC
LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []SearchEvent
	for rows.Next() {
		var event SearchEvent
		var matchedUserID sql.NullString
		var requestID sql.NullString
		var sessionID sql.NullString
		if err := rows.Scan(
			&event.ID,
			&event.SearchedEmail,
			&matchedUserID,
			&event.DuplicateCount,
			&requestID,
			&sessionID,
			&event.SearchedAt,
		); err != nil {
			return nil, err
		}
		event.MatchedUserID = matchedUserID.String
		event.RequestID = requestID.String
		event.SessionID = sessionID.String
		events = append(events, event)
	}
	return events, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
