package reports

import (
	"strings"
	"time"

	"finreports/internal/core"
)

// Filter narrows a transaction set. Every option is independently optional;
// set options combine with logical AND. Pointer fields distinguish "unset"
// from a zero value.
//
// Matching rules:
//
//   - Date bounds are inclusive. Once a date bound is set, records without a
//     usable date are excluded.
//   - Amount bounds are inclusive and apply only to records with a usable
//     amount.
//   - Categories and Accounts are case-insensitive exact allow-lists;
//     Merchants is a case-insensitive substring allow-list (any listed term
//     occurring anywhere in the merchant passes).
//   - The Exclude* deny-lists use the same matching rule as their allow-list
//     with the test inverted, so a record missing the field passes a
//     deny-list but fails the corresponding allow-list.
//   - DescriptionContains/NotesContains are case-insensitive substring tests.
//     A non-nil empty string means "field present and non-empty" rather than
//     matching everything.
//
// A degenerate filter (e.g. MinAmount > MaxAmount) is not an error;
// it simply matches nothing.
type Filter struct {
	StartDate           time.Time `json:"start_date,omitempty"`
	EndDate             time.Time `json:"end_date,omitempty"`
	Categories          []string  `json:"categories,omitempty"`
	ExcludeCategories   []string  `json:"exclude_categories,omitempty"`
	Merchants           []string  `json:"merchants,omitempty"`
	ExcludeMerchants    []string  `json:"exclude_merchants,omitempty"`
	Accounts            []string  `json:"accounts,omitempty"`
	MinAmount           *float64  `json:"min_amount,omitempty"`
	MaxAmount           *float64  `json:"max_amount,omitempty"`
	DescriptionContains *string   `json:"description_contains,omitempty"`
	NotesContains       *string   `json:"notes_contains,omitempty"`
}

// Apply returns the subsequence of txs satisfying every set option,
// preserving the original relative order. The input is never mutated; a nil
// filter passes everything through.
func (f *Filter) Apply(txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Matches reports whether a single transaction satisfies every set option.
func (f *Filter) Matches(tx core.Transaction) bool {
	if f == nil {
		return true
	}
	if !f.StartDate.IsZero() {
		if !tx.HasDate() || tx.Date.Before(f.StartDate) {
			return false
		}
	}
	if !f.EndDate.IsZero() {
		if !tx.HasDate() || tx.Date.After(f.EndDate) {
			return false
		}
	}
	if f.MinAmount != nil && !(tx.HasAmount() && tx.Amount >= *f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && !(tx.HasAmount() && tx.Amount <= *f.MaxAmount) {
		return false
	}
	if len(f.Categories) > 0 && !matchExact(tx.Category, f.Categories) {
		return false
	}
	if len(f.ExcludeCategories) > 0 && matchExact(tx.Category, f.ExcludeCategories) {
		return false
	}
	if len(f.Merchants) > 0 && !matchSubstring(tx.Merchant, f.Merchants) {
		return false
	}
	if len(f.ExcludeMerchants) > 0 && matchSubstring(tx.Merchant, f.ExcludeMerchants) {
		return false
	}
	if len(f.Accounts) > 0 && !matchExact(tx.Account, f.Accounts) {
		return false
	}
	if !matchContains(tx.Description, f.DescriptionContains) {
		return false
	}
	if !matchContains(tx.Notes, f.NotesContains) {
		return false
	}
	return true
}

// PeriodDescription renders the filter's date range for report headers.
func (f *Filter) PeriodDescription() string {
	if f == nil {
		return "All time"
	}
	start, end := "", ""
	if !f.StartDate.IsZero() {
		start = f.StartDate.Format("2006-01-02")
	}
	if !f.EndDate.IsZero() {
		end = f.EndDate.Format("2006-01-02")
	}
	switch {
	case start != "" && end != "":
		return start + " to " + end
	case start != "":
		return "From " + start
	case end != "":
		return "Until " + end
	default:
		return "All time"
	}
}

// matchExact is the case-insensitive exact allow-list test. A record missing
// the field never matches.
func matchExact(value string, list []string) bool {
	if value == "" {
		return false
	}
	for _, want := range list {
		if strings.EqualFold(value, want) {
			return true
		}
	}
	return false
}

// matchSubstring is the case-insensitive substring OR-across-list test used
// for merchants.
func matchSubstring(value string, list []string) bool {
	if value == "" {
		return false
	}
	lower := strings.ToLower(value)
	for _, term := range list {
		if term == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// matchContains applies a contains option. nil means unset; the empty string
// requires the field to be present and non-empty.
func matchContains(value string, opt *string) bool {
	if opt == nil {
		return true
	}
	if value == "" {
		return false
	}
	if *opt == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(*opt))
}
