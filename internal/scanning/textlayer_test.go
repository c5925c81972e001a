package scanning

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// mockScanner is a mock implementation of Scanner
type mockScanner struct {
	pages    []Page
	scanErr  error
	calls    int
	closed   bool
	closeErr error
}

func (m *mockScanner) Scan(_ context.Context, _ []byte, _ string) ([]Page, error) {
	m.calls++
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	return m.pages, nil
}

func (m *mockScanner) Close() error {
	m.closed = true
	return m.closeErr
}

var _ = Describe("TextLayer", func() {
	var (
		fallback    *mockScanner
		scanner     *TextLayer
		data        []byte
		contentType string
		pages       []Page
		err         error
	)

	BeforeEach(func() {
		fallback = &mockScanner{pages: []Page{{Number: 1, Text: "FROM OCR"}}}
		scanner = NewTextLayer(fallback)
		data = []byte("fake jpeg")
		contentType = "image/jpeg"
	})

	JustBeforeEach(func() {
		pages, err = scanner.Scan(context.Background(), data, contentType)
	})

	When("the input is an image", func() {
		BeforeEach(func() {
			data = []byte("fake jpeg")
			contentType = "image/jpeg"
		})

		It("uses the fallback scanner", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(fallback.calls).To(Equal(1))
			Expect(pages[0].Text).To(Equal("FROM OCR"))
		})
	})

	When("the PDF cannot be read", func() {
		BeforeEach(func() {
			data = []byte("not a pdf")
			contentType = "application/pdf"
		})

		It("uses the fallback scanner", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(fallback.calls).To(Equal(1))
		})
	})

	When("the fallback fails", func() {
		var setupErr error

		BeforeEach(func() {
			data = []byte("fake jpeg")
			contentType = "image/jpeg"
			setupErr = errors.New("ocr error")
			fallback.scanErr = setupErr
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(setupErr))
		})
	})

	Describe("Close", func() {
		It("closes the fallback scanner", func() {
			Expect(scanner.Close()).To(Succeed())
			Expect(fallback.closed).To(BeTrue())
		})
	})
})

var _ = Describe("allPagesHaveText", func() {
	It("is false for no pages", func() {
		Expect(allPagesHaveText(nil)).To(BeFalse())
	})

	It("is false when a page is blank", func() {
		Expect(allPagesHaveText([]Page{{Text: "SHOP"}, {Text: "  \n"}})).To(BeFalse())
	})

	It("is true when every page has text", func() {
		Expect(allPagesHaveText([]Page{{Text: "SHOP"}, {Text: "TOTAL 1.00"}})).To(BeTrue())
	})
})
