package users

import "docviewer-backend/internal/documents"

// User mirrors a user record as stored in the Realtime Database. All fields
// are written by the ingestion pipeline; this service only reads them.
type User struct {
	Email     string                        `json:"email"`
	FirstName string                        `json:"first_name"`
	LastName  string                        `json:"last_name"`
	Phone     string                        `json:"phone"`
	Address   string                        `json:"address"`
	CreatedAt string                        `json:"created_at"`
	LastLogin string                        `json:"last_login"`
	Documents map[string]documents.Document `json:"documents"`
}

// Record pairs a user with its opaque database key.
type Record struct {
	ID   string
	User User
}

// DisplayName renders a human label for the record, falling back to email.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}
