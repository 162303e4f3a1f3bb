package audit

import "time"

// SearchEvent records one search submission by an admin session.
type SearchEvent struct {
	ID             string    `json:"id"`
	SearchedEmail  string    `json:"searchedEmail"`
	MatchedUserID  string    `json:"matchedUserId,omitempty"`
	DuplicateCount int       `json:"duplicateCount,omitempty"`
	RequestID      string    `json:"requestId,omitempty"`
	SessionID      string    `json:"sessionId,omitempty"`
	SearchedAt     time.Time `json:"searchedAt"`
}
