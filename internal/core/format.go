package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCurrency renders an amount as a dollar string with thousands
// separators and two decimals. The sign sits between the symbol and the
// digits, matching the display convention of the report consumers:
//
//	FormatCurrency(1234.5)  -> "$1,234.50"
//	FormatCurrency(-40)     -> "$-40.00"
//
// NaN renders as "$0.00" so a summary table never shows a non-number.
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) {
		amount = 0
	}
	neg := math.Signbit(amount) && amount != 0
	abs := math.Abs(amount)

	// Round to cents first so 999.999 groups as 1,000.00.
	cents := int64(math.Round(abs * 100))
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	b.WriteByte('$')
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	fmt.Fprintf(&b, ".%02d", frac)
	return b.String()
}

// FormatPercent renders a percentage with one decimal place, e.g. "12.3%".
func FormatPercent(pct float64) string {
	if math.IsNaN(pct) {
		pct = 0
	}
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}
