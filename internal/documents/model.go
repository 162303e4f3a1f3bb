package documents

// Document mirrors one entry of a user's documents collection in the
// Realtime Database. FileData holds the base64-encoded PDF payload and may
// be absent, in which case the document renders as metadata only.
type Document struct {
	Filename    string `json:"filename"`
	Description string `json:"description"`
	Category    string `json:"category"`
	UploadDate  string `json:"upload_date"`
	FileData    string `json:"file_data"`
}

// Displayable reports whether the record carries the fields required for
// rendering. Records missing either are silently skipped.
func (d Document) Displayable() bool {
	return d.Filename != "" && d.Description != ""
}
