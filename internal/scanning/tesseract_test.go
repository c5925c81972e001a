package scanning

import (
	"context"
	"image"

	"github.com/otiai10/gosseract/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tesseract", func() {
	Describe("NewTesseract", func() {
		It("defaults to English at the default DPI", func() {
			t, err := NewTesseract(nil, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.languages).To(Equal([]string{"eng"}))
			Expect(t.dpi).To(Equal(float64(DefaultDPI)))
		})

		It("keeps the configured languages and DPI", func() {
			t, err := NewTesseract([]string{"eng", "fra"}, 150)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.languages).To(Equal([]string{"eng", "fra"}))
			Expect(t.dpi).To(Equal(150.0))
		})
	})

	Describe("Scan", func() {
		It("fails before OCR when the image cannot be decoded", func() {
			t, err := NewTesseract(nil, 0)
			Expect(err).NotTo(HaveOccurred())

			pages, err := t.Scan(context.Background(), []byte("not an image"), "image/jpeg")
			Expect(err).To(MatchError(ContainSubstring("converting image to PNG")))
			Expect(pages).To(BeNil())
		})
	})

	It("has nothing to release on Close", func() {
		t, err := NewTesseract(nil, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Close()).To(Succeed())
	})
})

var _ = Describe("wordBoxes", func() {
	It("scales confidences to 0..1 and keeps the bounds in order", func() {
		scores, boxes := wordBoxes([]gosseract.BoundingBox{
			{Box: image.Rect(10, 20, 60, 40), Word: "ZION", Confidence: 96},
			{Box: image.Rect(70, 20, 150, 40), Word: "MARKET", Confidence: 42.5},
		})
		Expect(scores).To(HaveLen(2))
		Expect(scores[0]).To(BeNumerically("~", 0.96, 1e-9))
		Expect(scores[1]).To(BeNumerically("~", 0.425, 1e-9))
		Expect(boxes).To(Equal([]image.Rectangle{
			image.Rect(10, 20, 60, 40),
			image.Rect(70, 20, 150, 40),
		}))
	})

	It("clamps confidences outside 0..100", func() {
		scores, _ := wordBoxes([]gosseract.BoundingBox{
			{Confidence: -1},
			{Confidence: 140},
		})
		Expect(scores).To(Equal([]float64{0, 1}))
	})

	It("returns nothing for a page without words", func() {
		scores, boxes := wordBoxes(nil)
		Expect(scores).To(BeNil())
		Expect(boxes).To(BeNil())
	})

	It("feeds Page.Confidence", func() {
		scores, _ := wordBoxes([]gosseract.BoundingBox{{Confidence: 90}, {Confidence: 70}})
		Expect(Page{Scores: scores}.Confidence()).To(BeNumerically("~", 0.8, 1e-9))
	})
})
