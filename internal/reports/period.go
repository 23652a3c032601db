package reports

import (
	"fmt"
	"strings"
	"time"
)

// Grouping selects how a record's date collapses to a period label.
type Grouping string

const (
	Daily     Grouping = "daily"
	Weekly    Grouping = "weekly"
	Monthly   Grouping = "monthly"
	Quarterly Grouping = "quarterly"
	Yearly    Grouping = "yearly"
)

// Valid reports whether g names a known granularity.
func (g Grouping) Valid() bool {
	switch g {
	case Daily, Weekly, Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// ParseGrouping normalizes a textual granularity; anything unrecognized
// falls back to monthly, the engine-wide default.
func ParseGrouping(s string) Grouping {
	g := Grouping(strings.ToLower(strings.TrimSpace(s)))
	if g.Valid() {
		return g
	}
	return Monthly
}

// PeriodLabel maps a date to its period label under g. Labels sort
// lexicographically in chronological order for every granularity, so report
// consumers may order periods by the literal string:
//
//	daily     2025-01-15
//	weekly    2025-W03   (ISO week)
//	monthly   2025-01
//	quarterly 2025-Q1
//	yearly    2025
func PeriodLabel(t time.Time, g Grouping) string {
	switch g {
	case Daily:
		return t.Format("2006-01-02")
	case Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case Quarterly:
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", t.Year(), quarter)
	case Yearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}
