// Package reports implements the report aggregation engine: filtering,
// time bucketing, grouping with summary statistics, and the generators that
// turn a flat transaction list into each report's data model.
//
// The engine is pure and synchronous. Generators never mutate their input,
// never return errors for data shape, and always produce a valid zero-valued
// result for empty input, so independent call sites may run concurrently over
// a shared read-only transaction set.
package reports

import "strings"

// ReportType tags every result with the report that produced it.
type ReportType string

const (
	TypeProfitLoss       ReportType = "profit_and_loss"
	TypeCashFlow         ReportType = "cash_flow"
	TypeCategoryAnalysis ReportType = "category_analysis"
	TypeMerchantAnalysis ReportType = "merchant_analysis"
	TypeTrendAnalysis    ReportType = "trend_analysis"
	TypeAccountSummary   ReportType = "account_summary"
	TypeCustom           ReportType = "custom"
)

// Valid reports whether t names a known report type.
func (t ReportType) Valid() bool {
	switch t {
	case TypeProfitLoss, TypeCashFlow, TypeCategoryAnalysis, TypeMerchantAnalysis,
		TypeTrendAnalysis, TypeAccountSummary, TypeCustom:
		return true
	}
	return false
}

// Report is the common surface of every generated result: a stable type tag,
// a structured document with all keys always present, and a human-readable
// tabular summary.
type Report interface {
	Type() ReportType
	Document() map[string]any
	Summary() string
}

// SortOrder selects ascending or descending for ad-hoc report sorting.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ParseSortOrder normalizes a textual order; anything unrecognized falls back
// to descending, which is the engine-wide default.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(Ascending)) {
		return Ascending
	}
	return Descending
}

// Sort configures ad-hoc sorting for the custom report. An unknown field is
// silently ignored, never an error.
type Sort struct {
	Field string    `json:"field"`
	Order SortOrder `json:"order"`
}
