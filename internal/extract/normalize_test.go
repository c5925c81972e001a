package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NormalizeDecimal", func() {
	DescribeTable("converting OCR amounts",
		func(input string, expected float64) {
			Expect(NormalizeDecimal(input)).To(Equal(expected))
		},
		Entry("plain decimal", "7.07", 7.07),
		Entry("dollar sign", "$7.07", 7.07),
		Entry("embedded whitespace", "$ 12 .50", 12.50),
		Entry("no-break space and separators", "$\u00a07.07\x1f", 7.07),
		Entry("other currency symbols", "€3.20", 3.20),
		Entry("letter O read as zero", "1O.99", 10.99),
		Entry("lowercase l between digit and point", "1l.50", 11.50),
		Entry("uppercase I between digits", "2I3.00", 213.00),
		Entry("l and O together", "2I.5O", 21.50),
		Entry("l without a digit before it", "l2.00", 0.0),
		Entry("l at the end", "12l", 0.0),
		Entry("comma as decimal separator", "7,07", 0.0),
		Entry("thousands separator", "1,234.00", 0.0),
		Entry("empty string", "", 0.0),
		Entry("only punctuation", ".", 0.0),
		Entry("negative number", "-5.00", 0.0),
		Entry("NaN literal", "NaN", 0.0),
		Entry("infinity literal", "Inf", 0.0),
		Entry("out of range", "1e400", 0.0),
	)

	It("only corrects l and I using the original neighbours", func() {
		Expect(NormalizeDecimal("1ll.5")).To(Equal(0.0))
	})
})
