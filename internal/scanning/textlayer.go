package scanning

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextLayer reads the embedded text of digital PDFs and only falls back to OCR
// when a page has no text layer. Non-PDF input always goes to the fallback.
type TextLayer struct {
	fallback Scanner
}

// NewTextLayer wraps an OCR scanner
func NewTextLayer(fallback Scanner) *TextLayer {
	return &TextLayer{fallback: fallback}
}

// Scan returns the text layer of every page when all pages have one,
// otherwise the fallback scanner's result
func (t *TextLayer) Scan(ctx context.Context, data []byte, contentType string) ([]Page, error) {
	if normalizeMIME(contentType) == "application/pdf" {
		pages, err := readTextLayer(data)
		switch {
		case err != nil:
			slog.Warn("Failed to read PDF text layer, using OCR", "error", err)
		case allPagesHaveText(pages):
			return pages, nil
		default:
			slog.Info("PDF has pages without a text layer, using OCR", "pages", len(pages))
		}
	}
	return t.fallback.Scan(ctx, data, contentType)
}

// Close closes the fallback scanner
func (t *TextLayer) Close() error {
	return t.fallback.Close()
}

// readTextLayer extracts text row by row so receipt lines stay on their own
// line. The pdf package panics on some malformed files.
func readTextLayer(data []byte) (pages []Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	for i := 1; i <= r.NumPage(); i++ {
		page := Page{Number: i}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, page)
			continue
		}

		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}
		var lines []string
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			if line := strings.TrimSpace(strings.Join(words, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		page.Text = strings.Join(lines, "\n")
		pages = append(pages, page)
	}
	return pages, nil
}

func allPagesHaveText(pages []Page) bool {
	if len(pages) == 0 {
		return false
	}
	for _, p := range pages {
		if strings.TrimSpace(p.Text) == "" {
			return false
		}
	}
	return true
}
