package reports

import (
	"fmt"

	"finreports/internal/core"
	"finreports/internal/log"
)

// DefaultMerchantTopN bounds the merchant analysis when the caller does not
// ask for a specific cut.
const DefaultMerchantTopN = 20

// Builder is the single entry point for report generation. It holds a
// reference to the full transaction set for its lifetime and never mutates
// it; every generated report owns its computed data independently, so one
// builder may serve concurrent callers.
type Builder struct {
	txs    []core.Transaction
	logger *log.Logger
}

// New creates a builder over the given transaction set.
func New(txs []core.Transaction) *Builder {
	return NewWithLogger(txs, nil)
}

// NewWithLogger creates a builder that reports skipped-record anomalies to
// the given logger. A nil logger keeps generation silent.
func NewWithLogger(txs []core.Transaction, logger *log.Logger) *Builder {
	return &Builder{txs: txs, logger: logger}
}

// Len returns the size of the underlying transaction set.
func (b *Builder) Len() int {
	return len(b.txs)
}

func (b *Builder) warnSkipped(t ReportType, skipped int) {
	if b.logger == nil || skipped == 0 {
		return
	}
	b.logger.Warn("records without usable amounts skipped during aggregation",
		log.FieldReportType, string(t),
		log.FieldSkipped, skipped)
}

// Params bundles the optional knobs of every report type so callers that
// dispatch on ReportType (the job worker, the HTTP layer) can carry one
// value.
type Params struct {
	Filter   *Filter  `json:"filter,omitempty"`
	Grouping Grouping `json:"grouping,omitempty"`
	TopN     int      `json:"top_n,omitempty"`
	GroupBy  string   `json:"group_by,omitempty"`
	Sort     *Sort    `json:"sort,omitempty"`
}

// Generate builds the report named by t. The only error is an unknown report
// type; everything else degrades per the engine's recovery rules.
func (b *Builder) Generate(t ReportType, p Params) (Report, error) {
	grouping := p.Grouping
	if !grouping.Valid() {
		grouping = Monthly
	}
	switch t {
	case TypeProfitLoss:
		return b.ProfitAndLoss(p.Filter), nil
	case TypeCashFlow:
		return b.CashFlow(p.Filter, grouping), nil
	case TypeCategoryAnalysis:
		return b.CategoryAnalysis(p.Filter, p.TopN), nil
	case TypeMerchantAnalysis:
		return b.MerchantAnalysis(p.Filter, p.TopN), nil
	case TypeTrendAnalysis:
		return b.TrendAnalysis(p.Filter, grouping), nil
	case TypeAccountSummary:
		return b.AccountSummary(p.Filter), nil
	case TypeCustom:
		return b.Custom(p.Filter, p.Sort, p.GroupBy), nil
	default:
		return nil, fmt.Errorf("unknown report type %q", string(t))
	}
}
