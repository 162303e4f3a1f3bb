package documents

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"sort"

	"github.com/ledongthuc/pdf"
)

// DefaultCategory buckets documents that carry no category label.
const DefaultCategory = "Uncategorized"

// Display modes for the grouped view.
const (
	DisplayFlat = "flat"
	DisplayTabs = "tabs"
)

// Card is the rendered representation of one document.
type Card struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Description string `json:"description"`
	Category    string `json:"category"`
	UploadDate  string `json:"uploadDate"`
	HasFile     bool   `json:"hasFile"`
	SizeKB      string `json:"sizeKb,omitempty"`
	PageCount   int    `json:"pageCount,omitempty"`
	DecodeError string `json:"decodeError,omitempty"`
}

// Group is one category bucket of cards.
type Group struct {
	Category  string `json:"category"`
	Documents []Card `json:"documents"`
}

// View is the grouped rendering of a user's documents collection.
type View struct {
	Display string  `json:"display"`
	Groups  []Group `json:"groups"`
	Total   int     `json:"total"`
}

// Grouped partitions a documents collection into category buckets. Documents
// are visited in key order (the store's natural order); buckets appear in
// first-encounter order and keep encounter order within. One bucket renders
// flat, more than one renders as tabs. A decode failure poisons only its own
// card; siblings still render.
func Grouped(docs map[string]Document) View {
	keys := make([]string, 0, len(docs))
	for k := range docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make(map[string][]Card)
	var order []string

	for _, id := range keys {
		doc := docs[id]
		if !doc.Displayable() {
			continue
		}
		category := doc.Category
		if category == "" {
			category = DefaultCategory
		}
		if _, seen := buckets[category]; !seen {
			order = append(order, category)
		}
		buckets[category] = append(buckets[category], buildCard(id, doc))
	}

	view := View{Display: DisplayFlat}
	for _, category := range order {
		view.Groups = append(view.Groups, Group{Category: category, Documents: buckets[category]})
		view.Total += len(buckets[category])
	}
	if len(view.Groups) > 1 {
		view.Display = DisplayTabs
	}
	return view
}

func buildCard(id string, doc Document) Card {
	card := Card{
		ID:          id,
		Filename:    doc.Filename,
		Description: doc.Description,
		Category:    doc.Category,
		UploadDate:  doc.UploadDate,
	}
	if card.Category == "" {
		card.Category = DefaultCategory
	}
	if card.UploadDate == "" {
		card.UploadDate = "Unknown"
	}
	if doc.FileData == "" {
		return card
	}

	card.HasFile = true
	raw, err := base64.StdEncoding.DecodeString(doc.FileData)
	if err != nil {
		card.DecodeError = "file data is not valid base64"
		card.SizeKB = "Unknown"
		return card
	}
	card.SizeKB = formatSizeKB(len(raw))
	card.PageCount = pdfPageCount(raw)
	return card
}

func formatSizeKB(n int) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

// pdfPageCount reports the page count of a PDF payload, or 0 when the bytes
// do not parse as one. Best-effort display metadata only.
func pdfPageCount(data []byte) (pages int) {
	// The parser panics on some malformed inputs.
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0
	}
	return reader.NumPage()
}
