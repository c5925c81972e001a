package receipt

import (
	"context"
	"fmt"
	"strings"

	"github.com/zombor/receipt-ocr/internal/extract"
	"github.com/zombor/receipt-ocr/internal/scanning"
)

// Analyze scans a document and extracts the receipt fields of every page on
// its own
func Analyze(ctx context.Context, scanner scanning.Scanner, data []byte, contentType string) ([]PageResult, error) {
	pages, err := scanner.Scan(ctx, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	results := make([]PageResult, 0, len(pages))
	for _, page := range pages {
		results = append(results, PageResult{
			Number:     page.Number,
			Text:       page.Text,
			Confidence: page.Confidence(),
			Record:     extract.Extract(page.Text),
		})
	}
	return results, nil
}

// BuildTranscript concatenates the raw text of all pages, each under a
// "PAGE n" header
func BuildTranscript(pages []PageResult) string {
	var b strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&b, "PAGE %d\n%s\n\n", p.Number, p.Text)
	}
	return b.String()
}
