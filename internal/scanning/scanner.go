package scanning

import (
	"context"
	"fmt"
	"image"
)

// Page is the OCR output for one page of a document
type Page struct {
	Number int               `json:"number"` // 1-based
	Text   string            `json:"text"`
	Scores []float64         `json:"scores,omitempty"` // per-word confidence in 0..1
	Boxes  []image.Rectangle `json:"boxes,omitempty"`  // per-word bounds, parallel to Scores
}

// Confidence returns the mean word confidence, or 0 when the provider reports none
func (p Page) Confidence() float64 {
	if len(p.Scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range p.Scores {
		sum += s
	}
	return sum / float64(len(p.Scores))
}

// Scanner defines the interface for turning a document into page text
type Scanner interface {
	// Scan reads every page of a PDF or image and returns its text
	Scan(ctx context.Context, data []byte, contentType string) ([]Page, error)
	// Close closes the scanner and releases resources
	Close() error
}

// recognizer reads the text of a single PNG page image
type recognizer interface {
	recognize(ctx context.Context, pngData []byte) (Page, error)
}

// scanImages rasterizes the document and runs r over every page in order
func scanImages(ctx context.Context, r recognizer, data []byte, contentType string, dpi float64) ([]Page, error) {
	images, err := prepareImages(data, contentType, dpi)
	if err != nil {
		return nil, err
	}

	pages := make([]Page, 0, len(images))
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := r.recognize(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("recognizing page %d: %w", i+1, err)
		}
		page.Number = i + 1
		pages = append(pages, page)
	}
	return pages, nil
}
