package reports

import (
	"fmt"
	"strings"

	"finreports/internal/core"
)

// TrendPeriod is one time bucket of the trend analysis.
// TopExpenseCategory is the category with the most negative summed amount in
// the period; nil when the period has no expenses. Exact ties break on the
// lexicographically smallest category name.
type TrendPeriod struct {
	Period             string
	Income             float64
	Expenses           float64
	Net                float64
	TransactionCount   int
	TopExpenseCategory *string
}

// TrendAnalysisResult tracks income, expenses and net over chronological
// periods.
type TrendAnalysisResult struct {
	Grouping Grouping
	Periods  []TrendPeriod
}

// TrendAnalysis generates the trend analysis report under the given
// granularity.
func (b *Builder) TrendAnalysis(f *Filter, g Grouping) *TrendAnalysisResult {
	if !g.Valid() {
		g = Monthly
	}
	filtered := f.Apply(b.txs)

	r := &TrendAnalysisResult{Grouping: g, Periods: []TrendPeriod{}}
	groups, keys := groupBy(filtered, byPeriod(g))
	skipped := 0
	for _, label := range sortedPeriods(keys) {
		members := groups[label]
		inflow, outflow, sk := flows(members)
		skipped += sk
		r.Periods = append(r.Periods, TrendPeriod{
			Period:             label,
			Income:             inflow,
			Expenses:           outflow,
			Net:                inflow - outflow,
			TransactionCount:   len(members),
			TopExpenseCategory: topExpenseCategory(members),
		})
	}
	b.warnSkipped(TypeTrendAnalysis, skipped)
	return r
}

// topExpenseCategory finds the category with the most negative summed amount
// among the period's expense records; ties break lexicographically.
func topExpenseCategory(txs []core.Transaction) *string {
	totals := make(map[string]float64)
	for _, tx := range txs {
		if !tx.HasAmount() || tx.Amount >= 0 || tx.Category == "" {
			continue
		}
		totals[tx.Category] += tx.Amount
	}
	if len(totals) == 0 {
		return nil
	}
	var best string
	first := true
	for name, sum := range totals {
		if first || sum < totals[best] || (sum == totals[best] && name < best) {
			best = name
			first = false
		}
	}
	return &best
}

func (r *TrendAnalysisResult) Type() ReportType { return TypeTrendAnalysis }

// Document returns the structured form of the report.
func (r *TrendAnalysisResult) Document() map[string]any {
	periods := make([]map[string]any, 0, len(r.Periods))
	for _, p := range r.Periods {
		var top any
		if p.TopExpenseCategory != nil {
			top = *p.TopExpenseCategory
		}
		periods = append(periods, map[string]any{
			"period":               p.Period,
			"income":               p.Income,
			"expenses":             p.Expenses,
			"net":                  p.Net,
			"transaction_count":    p.TransactionCount,
			"top_expense_category": top,
		})
	}
	return map[string]any{
		"report_type": string(TypeTrendAnalysis),
		"grouping":    string(r.Grouping),
		"periods":     periods,
	}
}

// Summary renders the report for terminal display.
func (r *TrendAnalysisResult) Summary() string {
	var b strings.Builder
	rule := strings.Repeat("=", 110)
	fmt.Fprintf(&b, "%s\nTREND ANALYSIS REPORT (%s)\n%s\n", rule, strings.ToUpper(string(r.Grouping)), rule)
	fmt.Fprintf(&b, "\n%-15s %15s %15s %15s %8s %-25s\n", "Period", "Income", "Expenses", "Net", "Txns", "Top Expense Category")
	fmt.Fprintln(&b, strings.Repeat("-", 110))
	for _, p := range r.Periods {
		top := "N/A"
		if p.TopExpenseCategory != nil {
			top = *p.TopExpenseCategory
		}
		fmt.Fprintf(&b, "%-15s %15s %15s %15s %8d %-25s\n",
			p.Period,
			core.FormatCurrency(p.Income),
			core.FormatCurrency(p.Expenses),
			core.FormatCurrency(p.Net),
			p.TransactionCount,
			clip(top, 25))
	}
	b.WriteString(rule + "\n")
	return b.String()
}
