package extract

import "regexp"

// registry holds the compiled matchers for every field. It is built once and
// only read afterwards; *regexp.Regexp is safe for concurrent use.
type registry struct {
	date       *regexp.Regexp
	time       *regexp.Regexp
	total      *regexp.Regexp
	cardNumber *regexp.Regexp
	cardType   *regexp.Regexp
	// dollarAmount is only used by the total fallback scan
	dollarAmount *regexp.Regexp
}

// space matches what OCR output and PDF text layers use as blanks: ASCII
// whitespace, \v, the Unicode separators (U+00A0 and friends), U+001C..U+001F
// and U+0085. Go's \s alone only covers [\t\n\f\r ].
const space = `\s\v\p{Z}\x1c-\x1f\x{85}`

var patterns = registry{
	// 01/15/2024, 15-01-24, 2024-01-15; order is not interpreted
	date: regexp.MustCompile(`\b(\d{1,4}[/-]\d{1,4}[/-]\d{1,4})\b`),
	// 18:40 or 18:40:47
	time: regexp.MustCompile(`\b(\d{1,2}:\d{2}(?::\d{2})?)\b`),
	total: regexp.MustCompile(
		`(?i)(?:SALE AMOUNT|TOTAL|AMOUNT|USD)[:` + space + `]*\$?[` + space + `]*(?P<amount>[\d.,]+)`,
	),
	// XXXXXXXXXXXX4195, **** **** **** 4195
	cardNumber:   regexp.MustCompile(`(?i)[X*\-` + space + `]{4,}(?P<last4>\d{4})\b`),
	cardType:     regexp.MustCompile(`(?i)\b(VISA|MASTERCARD|AMEX|DISCOVER|DEBIT)\b`),
	dollarAmount: regexp.MustCompile(`\$[` + space + `]*(\d+\.\d{2})`),
}

// firstGroup returns the first capture group of the leftmost match of re in
// text.
func firstGroup(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
