package reports

import (
	"fmt"
	"strings"

	"finreports/internal/core"
)

// CashFlowPeriod is one time bucket of the cash flow report. RunningBalance
// accumulates NetFlow strictly left-to-right over chronological period
// order.
type CashFlowPeriod struct {
	Period           string
	Inflow           float64
	Outflow          float64
	NetFlow          float64
	RunningBalance   float64
	TransactionCount int
}

// CashFlowResult buckets the filtered set by time period. Records without a
// usable date are excluded from the buckets.
type CashFlowResult struct {
	Grouping     Grouping
	Period       string
	Periods      []CashFlowPeriod
	TotalInflow  float64
	TotalOutflow float64
	NetCashFlow  float64
}

// CashFlow generates the cash flow report under the given granularity.
func (b *Builder) CashFlow(f *Filter, g Grouping) *CashFlowResult {
	if !g.Valid() {
		g = Monthly
	}
	filtered := f.Apply(b.txs)

	r := &CashFlowResult{Grouping: g, Periods: []CashFlowPeriod{}}

	groups, keys := groupBy(filtered, byPeriod(g))
	skipped := 0
	running := 0.0
	for _, label := range sortedPeriods(keys) {
		members := groups[label]
		inflow, outflow, sk := flows(members)
		skipped += sk
		net := inflow - outflow
		running += net
		r.Periods = append(r.Periods, CashFlowPeriod{
			Period:           label,
			Inflow:           inflow,
			Outflow:          outflow,
			NetFlow:          net,
			RunningBalance:   running,
			TransactionCount: len(members),
		})
		r.TotalInflow += inflow
		r.TotalOutflow += outflow
	}
	b.warnSkipped(TypeCashFlow, skipped)

	r.NetCashFlow = r.TotalInflow - r.TotalOutflow
	if n := len(r.Periods); n > 0 {
		r.Period = r.Periods[0].Period + " to " + r.Periods[n-1].Period
	}
	return r
}

func (r *CashFlowResult) Type() ReportType { return TypeCashFlow }

// Document returns the structured form of the report.
func (r *CashFlowResult) Document() map[string]any {
	periods := make([]map[string]any, 0, len(r.Periods))
	for _, p := range r.Periods {
		periods = append(periods, map[string]any{
			"period":            p.Period,
			"inflow":            p.Inflow,
			"outflow":           p.Outflow,
			"net_flow":          p.NetFlow,
			"running_balance":   p.RunningBalance,
			"transaction_count": p.TransactionCount,
		})
	}
	return map[string]any{
		"report_type":   string(TypeCashFlow),
		"grouping":      string(r.Grouping),
		"period":        r.Period,
		"periods":       periods,
		"total_inflow":  r.TotalInflow,
		"total_outflow": r.TotalOutflow,
		"net_cash_flow": r.NetCashFlow,
	}
}

// Summary renders the report for terminal display.
func (r *CashFlowResult) Summary() string {
	var b strings.Builder
	rule := strings.Repeat("=", 100)
	fmt.Fprintf(&b, "%s\nCASH FLOW REPORT (%s)\nPeriod: %s\n%s\n", rule, strings.ToUpper(string(r.Grouping)), r.Period, rule)
	fmt.Fprintf(&b, "\n%-15s %15s %15s %15s %20s\n", "Period", "Inflow", "Outflow", "Net Flow", "Running Balance")
	fmt.Fprintln(&b, strings.Repeat("-", 100))
	for _, p := range r.Periods {
		fmt.Fprintf(&b, "%-15s %15s %15s %15s %20s\n",
			p.Period,
			core.FormatCurrency(p.Inflow),
			core.FormatCurrency(p.Outflow),
			core.FormatCurrency(p.NetFlow),
			core.FormatCurrency(p.RunningBalance))
	}
	fmt.Fprintln(&b, strings.Repeat("-", 100))
	fmt.Fprintf(&b, "%-15s %15s %15s %15s\n", "TOTAL",
		core.FormatCurrency(r.TotalInflow),
		core.FormatCurrency(r.TotalOutflow),
		core.FormatCurrency(r.NetCashFlow))
	b.WriteString(rule + "\n")
	return b.String()
}
