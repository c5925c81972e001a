package receipt

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const summaryWidth = 54

// WriteSummary prints the raw text of a page followed by a box with the
// extracted fields
func WriteSummary(w io.Writer, page PageResult) error {
	rec := page.Record
	rows := [][2]string{
		{"Merchant", rec.Merchant},
		{"Date", rec.Date},
		{"Time", rec.Time},
		{"Total", strconv.FormatFloat(rec.Total, 'f', 2, 64)},
		{"Card", string(rec.CardType)},
		{"Card last 4", rec.CardLast4},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== PAGE %d (raw text / confidence: %.2f) ===\n", page.Number, page.Confidence)
	b.WriteString(page.Text)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n\n")

	title := " EXTRACTED FIELDS "
	side := (summaryWidth - len(title)) / 2
	fmt.Fprintf(&b, "┌%s%s%s┐\n", strings.Repeat("─", side), title, strings.Repeat("─", summaryWidth-side-len(title)))
	for _, row := range rows {
		value := row[1]
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "│ %-12s: %s\n", row[0], value)
	}
	fmt.Fprintf(&b, "└%s┘\n\n", strings.Repeat("─", summaryWidth))

	_, err := io.WriteString(w, b.String())
	return err
}
