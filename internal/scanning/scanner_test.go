package scanning

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// mockRecognizer returns canned pages in order
type mockRecognizer struct {
	texts []string
	err   error
	seen  [][]byte
}

func (m *mockRecognizer) recognize(_ context.Context, pngData []byte) (Page, error) {
	if m.err != nil {
		return Page{}, m.err
	}
	m.seen = append(m.seen, pngData)
	text := m.texts[len(m.seen)-1]
	return Page{Text: text, Scores: []float64{0.5, 1.0}}, nil
}

var _ = Describe("Page", func() {
	Describe("Confidence", func() {
		It("averages the word scores", func() {
			p := Page{Scores: []float64{0.5, 1.0, 0.75}}
			Expect(p.Confidence()).To(BeNumerically("~", 0.75, 1e-9))
		})

		It("is zero without scores", func() {
			Expect(Page{}.Confidence()).To(Equal(0.0))
		})
	})
})

var _ = Describe("scanImages", func() {
	var (
		ctx         context.Context
		recognizer  *mockRecognizer
		data        []byte
		contentType string
		pages       []Page
		err         error
	)

	BeforeEach(func() {
		ctx = context.Background()
		recognizer = &mockRecognizer{texts: []string{"SHOP\nTOTAL 1.00"}}
		data = []byte("fake png data")
		contentType = "image/png"
	})

	JustBeforeEach(func() {
		pages, err = scanImages(ctx, recognizer, data, contentType, DefaultDPI)
	})

	When("scanning a PNG", func() {
		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("passes the image through untouched", func() {
			Expect(recognizer.seen).To(Equal([][]byte{data}))
		})

		It("numbers the page from one", func() {
			Expect(pages).To(HaveLen(1))
			Expect(pages[0].Number).To(Equal(1))
		})

		It("returns the recognized text", func() {
			Expect(pages[0].Text).To(Equal("SHOP\nTOTAL 1.00"))
		})
	})

	When("the content type has odd casing and whitespace", func() {
		BeforeEach(func() {
			contentType = "  IMAGE/PNG "
		})

		It("still treats it as PNG", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(recognizer.seen).To(Equal([][]byte{data}))
		})
	})

	When("the image cannot be decoded", func() {
		BeforeEach(func() {
			contentType = "image/jpeg"
		})

		It("returns an error", func() {
			Expect(err).To(MatchError(ContainSubstring("converting image to PNG")))
		})
	})

	When("the PDF is invalid", func() {
		BeforeEach(func() {
			contentType = "application/pdf"
		})

		It("returns an error", func() {
			Expect(err).To(MatchError(ContainSubstring("converting PDF to images")))
		})
	})

	When("recognition fails", func() {
		var setupErr error

		BeforeEach(func() {
			setupErr = errors.New("ocr error")
			recognizer.err = setupErr
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(setupErr))
		})
	})

	When("the context is cancelled", func() {
		BeforeEach(func() {
			var cancel context.CancelFunc
			ctx, cancel = context.WithCancel(ctx)
			cancel()
		})

		It("returns the context error", func() {
			Expect(err).To(MatchError(context.Canceled))
		})

		It("does not recognize anything", func() {
			Expect(recognizer.seen).To(BeEmpty())
		})
	})
})

var _ = Describe("isHEICFormat", func() {
	It("detects the heic brand", func() {
		data := append([]byte{0, 0, 0, 24}, []byte("ftypheic....")...)
		Expect(isHEICFormat(data)).To(BeTrue())
	})

	It("ignores other brands", func() {
		data := append([]byte{0, 0, 0, 24}, []byte("ftypisom....")...)
		Expect(isHEICFormat(data)).To(BeFalse())
	})

	It("ignores short input", func() {
		Expect(isHEICFormat([]byte("ftyp"))).To(BeFalse())
	})
})
