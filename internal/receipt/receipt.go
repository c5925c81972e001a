package receipt

import (
	"time"

	"github.com/zombor/receipt-ocr/internal/extract"
)

// PageResult is the extraction result for one page of a document
type PageResult struct {
	Number     int            `json:"number"`
	Text       string         `json:"text"`
	Confidence float64        `json:"confidence"` // mean OCR word confidence, 0 when unknown
	Record     extract.Record `json:"record"`
}

// Document represents an uploaded receipt document with its per-page results
type Document struct {
	ID          string       `json:"id"`
	Filename    string       `json:"filename"`   // original upload in storage
	Transcript  string       `json:"transcript"` // plain-text transcript in storage
	ContentType string       `json:"content_type"`
	Pages       []PageResult `json:"pages"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
