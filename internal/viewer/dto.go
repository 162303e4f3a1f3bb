package viewer

import (
	"docviewer-backend/internal/documents"
	"docviewer-backend/internal/session"
	"docviewer-backend/internal/users"
)

type searchRequest struct {
	Email string `json:"email"`
}

// UserSummary is the outward-facing representation of a matched user.
type UserSummary struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	LastLogin   string `json:"lastLogin,omitempty"`
}

type searchResponse struct {
	User           UserSummary    `json:"user"`
	Documents      documents.View `json:"documents"`
	DuplicateCount int            `json:"duplicateCount,omitempty"`
	Session        session.State  `json:"session"`
}

func toSummary(rec users.Record) UserSummary {
	return UserSummary{
		ID:          rec.ID,
		Email:       rec.User.Email,
		DisplayName: rec.User.DisplayName(),
		Phone:       rec.User.Phone,
		Address:     rec.User.Address,
		CreatedAt:   rec.User.CreatedAt,
		LastLogin:   rec.User.LastLogin,
	}
}
