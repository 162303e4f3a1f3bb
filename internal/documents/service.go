package documents

import (
	"context"
	"encoding/base64"
	"errors"
)

// UserSource resolves a user's documents collection by user key. The adapter
// over the users service lives in bootstrap; it maps the user-not-found
// sentinel onto ErrUserNotFound.
type UserSource interface {
	GetDocuments(ctx context.Context, userID string) (map[string]Document, error)
}

// Download is a decoded payload ready to serve.
type Download struct {
	Filename string
	Data     []byte
}

// Preview carries the still-encoded payload for inline embedding.
type Preview struct {
	Filename string `json:"filename"`
	FileData string `json:"fileData"`
}

// Service contains read-side business logic for documents.
type Service struct {
	Users UserSource
}

// GroupedForUser renders the grouped view of a user's documents.
func (s *Service) GroupedForUser(ctx context.Context, userID string) (View, error) {
	docs, err := s.Users.GetDocuments(ctx, userID)
	if err != nil {
		return View{}, err
	}
	return Grouped(docs), nil
}

// DownloadDocument decodes a document's payload for download.
func (s *Service) DownloadDocument(ctx context.Context, userID, docID string) (Download, error) {
	doc, err := s.getDocument(ctx, userID, docID)
	if err != nil {
		return Download{}, err
	}
	raw, err := base64.StdEncoding.DecodeString(doc.FileData)
	if err != nil {
		return Download{}, ErrCorruptData
	}
	return Download{Filename: doc.Filename, Data: raw}, nil
}

// PreviewDocument returns the base64 payload for inline embedding after
// verifying it decodes.
func (s *Service) PreviewDocument(ctx context.Context, userID, docID string) (Preview, error) {
	doc, err := s.getDocument(ctx, userID, docID)
	if err != nil {
		return Preview{}, err
	}
	if _, err := base64.StdEncoding.DecodeString(doc.FileData); err != nil {
		return Preview{}, ErrCorruptData
	}
	return Preview{Filename: doc.Filename, FileData: doc.FileData}, nil
}

func (s *Service) getDocument(ctx context.Context, userID, docID string) (Document, error) {
	if s == nil || s.Users == nil {
		return Document{}, errors.New("documents service not configured")
	}
	docs, err := s.Users.GetDocuments(ctx, userID)
	if err != nil {
		return Document{}, err
	}
	doc, ok := docs[docID]
	if !ok || !doc.Displayable() {
		return Document{}, ErrNotFound
	}
	if doc.FileData == "" {
		return Document{}, ErrNoFileData
	}
	return doc, nil
}
