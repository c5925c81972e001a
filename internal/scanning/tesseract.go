package scanning

import (
	"context"
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract implements the Scanner interface with a local Tesseract install
type Tesseract struct {
	languages []string
	dpi       float64
}

// NewTesseract creates a new Tesseract Scanner instance. Languages are
// Tesseract language codes such as "eng" or "fra".
func NewTesseract(languages []string, dpi float64) (*Tesseract, error) {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Tesseract{
		languages: languages,
		dpi:       dpi,
	}, nil
}

// Scan runs OCR over every page of the document
func (t *Tesseract) Scan(ctx context.Context, data []byte, contentType string) ([]Page, error) {
	return scanImages(ctx, t, data, contentType, t.dpi)
}

// recognize uses a fresh client per page; gosseract clients are not safe for
// concurrent use
func (t *Tesseract) recognize(_ context.Context, pngData []byte) (Page, error) {
	c := gosseract.NewClient()
	defer c.Close()

	if err := c.SetLanguage(t.languages...); err != nil {
		return Page{}, fmt.Errorf("setting languages: %w", err)
	}
	if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(int(t.dpi))); err != nil {
		return Page{}, fmt.Errorf("setting dpi: %w", err)
	}
	if err := c.SetImageFromBytes(pngData); err != nil {
		return Page{}, fmt.Errorf("setting image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return Page{}, fmt.Errorf("recognizing text: %w", err)
	}

	// Page text is still usable without word boxes
	var scores []float64
	var boxes []image.Rectangle
	if words, err := c.GetBoundingBoxes(gosseract.RIL_WORD); err == nil {
		scores, boxes = wordBoxes(words)
	}
	return Page{Text: text, Scores: scores, Boxes: boxes}, nil
}

// wordBoxes converts Tesseract's 0..100 word confidences to 0..1, clamping
// out of range values, and keeps the bounds in the same order
func wordBoxes(words []gosseract.BoundingBox) ([]float64, []image.Rectangle) {
	if len(words) == 0 {
		return nil, nil
	}
	scores := make([]float64, 0, len(words))
	boxes := make([]image.Rectangle, 0, len(words))
	for _, w := range words {
		scores = append(scores, min(max(w.Confidence/100.0, 0), 1))
		boxes = append(boxes, w.Box)
	}
	return scores, boxes
}

// Close is a no-op; clients are closed after every page
func (t *Tesseract) Close() error {
	return nil
}
