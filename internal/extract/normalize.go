package extract

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// NormalizeDecimal converts a monetary string read by OCR into a number.
//
// Currency symbols and whitespace are removed, an "l" or "I" sitting between a
// digit and a digit or '.' is read as "1", and every "O" is read as "0". Input
// that still does not parse, or parses to something other than a finite
// non-negative number, yields 0.
//
// Commas are not interpreted, so "7,07" and "1,234.00" both yield 0.
func NormalizeDecimal(s string) float64 {
	if s == "" {
		return 0
	}

	s = strings.Map(func(r rune) rune {
		if isSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, s)
	s = fixOneConfusion(s)
	s = strings.ReplaceAll(s, "O", "0")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// fixOneConfusion replaces l and I with 1 when the previous character is a
// digit and the next one is a digit or a decimal point. Neighbours are read
// from the input, not from earlier replacements.
func fixOneConfusion(s string) string {
	src := []rune(s)
	out := make([]rune, len(src))
	copy(out, src)
	for i := 1; i < len(src)-1; i++ {
		if src[i] != 'l' && src[i] != 'I' {
			continue
		}
		if isDigit(src[i-1]) && (isDigit(src[i+1]) || src[i+1] == '.') {
			out[i] = '1'
		}
	}
	return string(out)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
