package documents

import "errors"

var (
	ErrNotFound     = errors.New("document not found")
	ErrUserNotFound = errors.New("user not found")
	ErrNoFileData   = errors.New("document has no file data")
	ErrCorruptData  = errors.New("document file data is not valid base64")
)
