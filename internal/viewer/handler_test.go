package viewer_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"docviewer-backend/internal/bootstrap"
	"docviewer-backend/internal/documents"
	"docviewer-backend/internal/shared/config"
	"docviewer-backend/internal/users"
)

func newTestApp(t *testing.T) (*gin.Engine, *users.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
		SuggestionLimit: 3,
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}

	repo, ok := app.UsersRepo.(*users.MemoryRepo)
	if !ok {
		t.Fatalf("expected in-memory users repo in dev bootstrap, got %T", app.UsersRepo)
	}
	return app.Router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "test-session")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func seedVisaUser(repo *users.MemoryRepo) string {
	payload := base64.StdEncoding.EncodeToString(make([]byte, 2048))
	repo.Seed(users.Record{
		ID: "u1",
		User: users.User{
			Email:     "a@x.com",
			FirstName: "Ada",
			Documents: map[string]documents.Document{
				"d1": {Filename: "f.pdf", Description: "Visa", FileData: payload},
			},
		},
	})
	return payload
}

func TestSearchReturnsUserAndDocumentCard(t *testing.T) {
	router, repo := newTestApp(t)
	seedVisaUser(repo)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/search", `{"email":"a@x.com"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Documents struct {
			Display string `json:"display"`
			Total   int    `json:"total"`
			Groups  []struct {
				Category  string `json:"category"`
				Documents []struct {
					ID          string `json:"id"`
					Description string `json:"description"`
					SizeKB      string `json:"sizeKb"`
					HasFile     bool   `json:"hasFile"`
				} `json:"documents"`
			} `json:"groups"`
		} `json:"documents"`
		Session struct {
			SearchedEmail string `json:"searchedEmail"`
			FoundUserID   string `json:"foundUserId"`
		} `json:"session"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode search response: %v", err)
	}

	if body.User.ID != "u1" {
		t.Fatalf("expected user u1, got %s", body.User.ID)
	}
	if body.Documents.Total != 1 || len(body.Documents.Groups) != 1 {
		t.Fatalf("expected one document in one group, got %+v", body.Documents)
	}
	if body.Documents.Display != "flat" {
		t.Fatalf("expected flat display, got %s", body.Documents.Display)
	}
	card := body.Documents.Groups[0].Documents[0]
	if card.Description != "Visa" || card.SizeKB != "2.0 KB" || !card.HasFile {
		t.Fatalf("unexpected card: %+v", card)
	}
	if body.Session.SearchedEmail != "a@x.com" || body.Session.FoundUserID != "u1" {
		t.Fatalf("session not updated: %+v", body.Session)
	}
}

func TestSearchNotFoundIncludesSuggestions(t *testing.T) {
	router, repo := newTestApp(t)
	seedVisaUser(repo)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/search", `{"email":"a@missing.com"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Suggestions []string `json:"suggestions"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if body.Error.Code != "not_found" {
		t.Fatalf("expected not_found, got %s", body.Error.Code)
	}
	if len(body.Error.Details.Suggestions) != 1 || body.Error.Details.Suggestions[0] != "a@x.com" {
		t.Fatalf("unexpected suggestions: %v", body.Error.Details.Suggestions)
	}
}

func TestSearchDuplicateEmailFirstWins(t *testing.T) {
	router, repo := newTestApp(t)
	repo.Seed(
		users.Record{ID: "first", User: users.User{Email: "dup@x.com"}},
		users.Record{ID: "second", User: users.User{Email: "dup@x.com"}},
	)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/search", `{"email":"dup@x.com"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		DuplicateCount int `json:"duplicateCount"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.User.ID != "first" {
		t.Fatalf("expected first record to win, got %s", body.User.ID)
	}
	if body.DuplicateCount != 1 {
		t.Fatalf("expected duplicateCount 1, got %d", body.DuplicateCount)
	}
}

func TestDownloadServesDecodedPDF(t *testing.T) {
	router, repo := newTestApp(t)
	seedVisaUser(repo)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/users/u1/documents/d1/download", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type: %s", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != `attachment; filename="f.pdf"` {
		t.Fatalf("unexpected content disposition: %s", cd)
	}
	if resp.Body.Len() != 2048 {
		t.Fatalf("expected 2048 decoded bytes, got %d", resp.Body.Len())
	}
}

func TestPreviewPayloadRoundTrip(t *testing.T) {
	router, repo := newTestApp(t)
	payload := seedVisaUser(repo)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/users/u1/documents/d1/preview", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body struct {
		Filename string `json:"filename"`
		FileData string `json:"fileData"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode preview response: %v", err)
	}
	if body.Filename != "f.pdf" || body.FileData != payload {
		t.Fatalf("unexpected preview payload for %s", body.Filename)
	}
}

func TestPreviewToggleFlipsPerSession(t *testing.T) {
	router, repo := newTestApp(t)
	seedVisaUser(repo)

	toggle := func() bool {
		resp := doJSON(t, router, http.MethodPost, "/api/v1/session/documents/d1/preview", "")
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
		var body struct {
			PreviewVisible bool `json:"previewVisible"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode toggle response: %v", err)
		}
		return body.PreviewVisible
	}

	if !toggle() {
		t.Fatalf("first toggle should turn preview on")
	}
	if toggle() {
		t.Fatalf("second toggle should turn preview off")
	}
	if !toggle() {
		t.Fatalf("third toggle should turn preview back on")
	}
}

func TestCorruptDocumentDownloadIsUnprocessable(t *testing.T) {
	router, repo := newTestApp(t)
	repo.Seed(users.Record{
		ID: "u1",
		User: users.User{
			Email: "a@x.com",
			Documents: map[string]documents.Document{
				"bad":  {Filename: "bad.pdf", Description: "Bad", FileData: "%%%not-base64%%%"},
				"good": {Filename: "good.pdf", Description: "Good", FileData: base64.StdEncoding.EncodeToString([]byte("ok"))},
			},
		},
	})

	resp := doJSON(t, router, http.MethodGet, "/api/v1/users/u1/documents/bad/download", "")
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}

	// The sibling document is unaffected.
	resp = doJSON(t, router, http.MethodGet, "/api/v1/users/u1/documents/good/download", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for sibling, got %d", resp.Code)
	}
}

func TestSessionClearDropsResults(t *testing.T) {
	router, repo := newTestApp(t)
	seedVisaUser(repo)

	doJSON(t, router, http.MethodPost, "/api/v1/search", `{"email":"a@x.com"}`)
	doJSON(t, router, http.MethodPost, "/api/v1/session/documents/d1/preview", "")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/session/clear", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/session", "")
	var state struct {
		SearchedEmail  string          `json:"searchedEmail"`
		FoundUserID    string          `json:"foundUserId"`
		PreviewVisible map[string]bool `json:"previewVisible"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode session snapshot: %v", err)
	}
	if state.SearchedEmail != "" || state.FoundUserID != "" || len(state.PreviewVisible) != 0 {
		t.Fatalf("expected cleared session, got %+v", state)
	}
}

func TestAuditRecentListsSearches(t *testing.T) {
	router, repo := newTestApp(t)
	seedVisaUser(repo)

	doJSON(t, router, http.MethodPost, "/api/v1/search", `{"email":"a@x.com"}`)
	doJSON(t, router, http.MethodPost, "/api/v1/search", `{"email":"nobody@x.com"}`)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/audit/recent", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var events []struct {
		SearchedEmail string `json:"searchedEmail"`
		MatchedUserID string `json:"matchedUserId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		t.Fatalf("decode audit response: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	// Newest first.
	if events[0].SearchedEmail != "nobody@x.com" || events[0].MatchedUserID != "" {
		t.Fatalf("unexpected newest event: %+v", events[0])
	}
	if events[1].SearchedEmail != "a@x.com" || events[1].MatchedUserID != "u1" {
		t.Fatalf("unexpected event: %+v", events[1])
	}
}
