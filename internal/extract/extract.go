// Package extract pulls purchase fields out of OCR text for a single receipt
// page. Everything here is a pure function of its input and safe to call from
// multiple goroutines.
package extract

// CardType is the payment network or method printed on a receipt.
type CardType string

const (
	Visa       CardType = "VISA"
	Mastercard CardType = "MASTERCARD"
	Amex       CardType = "AMEX"
	Discover   CardType = "DISCOVER"
	Debit      CardType = "DEBIT"
)

// Record holds the fields found on one page. Empty strings mean the field was
// not found.
type Record struct {
	Merchant  string   `json:"merchant"`
	Date      string   `json:"date,omitempty"`
	Time      string   `json:"time,omitempty"`
	Total     float64  `json:"total"` // dollars, 0 when nothing was found
	CardType  CardType `json:"card_type,omitempty"`
	CardLast4 string   `json:"card_last4,omitempty"`
}

// Extract reads every field from pageText. Fields are resolved independently
// of each other.
func Extract(pageText string) Record {
	return Record{
		Merchant:  resolveMerchant(pageText),
		Date:      resolveDate(pageText),
		Time:      resolveTime(pageText),
		Total:     resolveTotal(pageText),
		CardType:  resolveCardType(pageText),
		CardLast4: resolveCardLast4(pageText),
	}
}
