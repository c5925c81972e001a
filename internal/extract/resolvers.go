package extract

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// UnknownMerchant is reported when the page has no non-blank line.
const UnknownMerchant = "unknown"

// resolveMerchant returns the first non-blank line, trimmed. Greeting lines
// such as "Welcome to ..." are not skipped.
func resolveMerchant(text string) string {
	for _, line := range strings.FieldsFunc(text, isLineBreak) {
		if line = strings.TrimFunc(line, isSpace); line != "" {
			return line
		}
	}
	return UnknownMerchant
}

// isSpace also counts the information separators U+001C..U+001F as blank.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func resolveDate(text string) string {
	date, _ := firstGroup(patterns.date, text)
	return date
}

func resolveTime(text string) string {
	t, _ := firstGroup(patterns.time, text)
	return t
}

func resolveCardType(text string) CardType {
	kind, ok := firstGroup(patterns.cardType, text)
	if !ok {
		return ""
	}
	return CardType(strings.ToUpper(kind))
}

func resolveCardLast4(text string) string {
	last4, _ := firstGroup(patterns.cardNumber, text)
	return last4
}

// resolveTotal tries the keyword match first and only scans for bare dollar
// amounts when no keyword is present.
func resolveTotal(text string) float64 {
	if amount, ok := keywordTotal(text); ok {
		return amount
	}
	return largestDollarAmount(text)
}

// keywordTotal normalizes the amount after the first total keyword. A keyword
// followed by garbage still counts as a match and yields 0.
func keywordTotal(text string) (float64, bool) {
	m := patterns.total.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return NormalizeDecimal(m[patterns.total.SubexpIndex("amount")]), true
}

// largestDollarAmount returns the biggest "$12.34" style figure on the page.
// The pattern only admits clean digits so no OCR correction is applied.
func largestDollarAmount(text string) float64 {
	var largest float64
	for _, m := range patterns.dollarAmount.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || math.IsInf(v, 0) {
			continue
		}
		if v > largest {
			largest = v
		}
	}
	return largest
}
