package receipt

import (
	"bytes"
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/receipt-ocr/internal/extract"
	"github.com/zombor/receipt-ocr/internal/scanning"
)

var _ = Describe("Analyze", func() {
	var (
		scanner *mockScanner
		pages   []PageResult
		err     error
	)

	BeforeEach(func() {
		scanner = newMockScanner()
	})

	JustBeforeEach(func() {
		pages, err = Analyze(context.Background(), scanner, []byte("data"), "application/pdf")
	})

	When("scanning succeeds", func() {
		It("returns one result per page in order", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(pages).To(HaveLen(2))
			Expect(pages[0].Number).To(Equal(1))
			Expect(pages[1].Number).To(Equal(2))
		})

		It("extracts each page independently", func() {
			Expect(pages[0].Record.Total).To(Equal(7.07))
			Expect(pages[1].Record.Total).To(Equal(0.0))
			Expect(pages[1].Record.CardType).To(BeEmpty())
		})
	})

	When("a page is empty", func() {
		BeforeEach(func() {
			scanner.pages = []scanning.Page{{Number: 1}}
		})

		It("reports an unknown merchant", func() {
			Expect(pages[0].Record).To(Equal(extract.Record{Merchant: extract.UnknownMerchant}))
		})
	})

	When("scanning fails", func() {
		var setupErr error

		BeforeEach(func() {
			setupErr = errors.New("scan error")
			scanner.scanErr = setupErr
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(setupErr))
		})
	})
})

var _ = Describe("BuildTranscript", func() {
	It("puts every page under its own header", func() {
		transcript := BuildTranscript([]PageResult{
			{Number: 1, Text: "SHOP\nTOTAL 1.00"},
			{Number: 2, Text: "THANK YOU"},
		})
		Expect(transcript).To(Equal("PAGE 1\nSHOP\nTOTAL 1.00\n\nPAGE 2\nTHANK YOU\n\n"))
	})

	It("is empty without pages", func() {
		Expect(BuildTranscript(nil)).To(BeEmpty())
	})
})

var _ = Describe("WriteSummary", func() {
	var out string

	BeforeEach(func() {
		var buf bytes.Buffer
		Expect(WriteSummary(&buf, PageResult{
			Number:     1,
			Text:       "ZION MARKET",
			Confidence: 0.876,
			Record: extract.Record{
				Merchant:  "ZION MARKET",
				Date:      "03/14/2024",
				Total:     7.07,
				CardType:  extract.Visa,
				CardLast4: "4195",
			},
		})).To(Succeed())
		out = buf.String()
	})

	It("prints the raw text with the confidence", func() {
		Expect(out).To(HavePrefix("=== PAGE 1 (raw text / confidence: 0.88) ===\nZION MARKET\n"))
	})

	It("prints the extracted fields", func() {
		Expect(out).To(ContainSubstring("│ Merchant    : ZION MARKET\n"))
		Expect(out).To(ContainSubstring("│ Date        : 03/14/2024\n"))
		Expect(out).To(ContainSubstring("│ Total       : 7.07\n"))
		Expect(out).To(ContainSubstring("│ Card        : VISA\n"))
		Expect(out).To(ContainSubstring("│ Card last 4 : 4195\n"))
	})

	It("marks missing fields", func() {
		Expect(out).To(ContainSubstring("│ Time        : -\n"))
	})
})
