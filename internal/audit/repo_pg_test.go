package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateInsertsEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	event := SearchEvent{
		ID:             "evt-1",
		SearchedEmail:  "a@x.com",
		MatchedUserID:  "u1",
		DuplicateCount: 0,
		RequestID:      "req-1",
		SessionID:      "sess-1",
		SearchedAt:     time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO search_events").
		WithArgs(
			event.ID,
			event.SearchedEmail,
			event.MatchedUserID,
			event.DuplicateCount,
			event.RequestID,
			event.SessionID,
			event.SearchedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), event); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateNullsEmptyOptionalFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	event := SearchEvent{
		ID:            "evt-2",
		SearchedEmail: "missing@x.com",
		SearchedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO search_events").
		WithArgs(
			event.ID,
			event.SearchedEmail,
			nil, // matched_user_id
			0,
			nil, // request_id
			nil, // session_id
			event.SearchedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), event); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoRecentScansRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "searched_email", "matched_user_id", "duplicate_count", "request_id", "session_id", "searched_at",
	}).
		AddRow("evt-2", "b@x.com", nil, 0, nil, nil, now).
		AddRow("evt-1", "a@x.com", "u1", 1, "req-1", "sess-1", now.Add(-time.Minute))

	mock.ExpectQuery("SELECT id, searched_email").
		WithArgs(2).
		WillReturnRows(rows)

	events, err := repo.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "evt-2" || events[0].MatchedUserID != "" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].MatchedUserID != "u1" || events[1].DuplicateCount != 1 {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
