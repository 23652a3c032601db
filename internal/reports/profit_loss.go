package reports

import (
	"fmt"
	"sort"
	"strings"

	"finreports/internal/core"
)

// PLCategory is one category line of a profit & loss side. Expense lines
// carry absolute values; Percentage is of the side's grand total.
type PLCategory struct {
	Category   string
	Total      float64
	Count      int
	Average    float64
	Percentage float64
}

// ProfitLossResult splits the filtered set by amount sign and breaks each
// side down by category. TotalExpenses is an absolute value; NetIncome is
// TotalIncome - TotalExpenses.
type ProfitLossResult struct {
	Period             string
	TotalIncome        float64
	TotalExpenses      float64
	NetIncome          float64
	IncomeByCategory   []PLCategory
	ExpensesByCategory []PLCategory
	TransactionCount   int
	IncomeCount        int
	ExpenseCount       int
}

// ProfitAndLoss generates the profit & loss report.
func (b *Builder) ProfitAndLoss(f *Filter) *ProfitLossResult {
	filtered := f.Apply(b.txs)

	r := &ProfitLossResult{
		Period:             f.PeriodDescription(),
		IncomeByCategory:   []PLCategory{},
		ExpensesByCategory: []PLCategory{},
		TransactionCount:   len(filtered),
	}

	var income, expense []core.Transaction
	skipped := 0
	for _, tx := range filtered {
		switch {
		case !tx.HasAmount():
			skipped++
		case tx.Amount > 0:
			income = append(income, tx)
		case tx.Amount < 0:
			expense = append(expense, tx)
		}
	}
	b.warnSkipped(TypeProfitLoss, skipped)

	r.IncomeCount = len(income)
	r.ExpenseCount = len(expense)
	r.TotalIncome, _ = sumAmounts(income)
	expenseSum, _ := sumAmounts(expense)
	r.TotalExpenses = -expenseSum
	r.NetIncome = r.TotalIncome - r.TotalExpenses

	r.IncomeByCategory = plBreakdown(income, r.TotalIncome, false)
	r.ExpensesByCategory = plBreakdown(expense, r.TotalExpenses, true)
	return r
}

// plBreakdown groups one side by category. absolute flips expense totals to
// positive display values.
func plBreakdown(txs []core.Transaction, grand float64, absolute bool) []PLCategory {
	groups, _ := groupBy(txs, byCategory)
	out := make([]PLCategory, 0, len(groups))
	for name, members := range groups {
		st := computeStats(members)
		total, avg := st.Sum, st.Mean
		if absolute {
			total, avg = -total, -avg
		}
		out = append(out, PLCategory{
			Category:   name,
			Total:      total,
			Count:      st.Count,
			Average:    avg,
			Percentage: percentage(total, grand),
		})
	}
	// Total descending; equal totals keep category name order.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func (r *ProfitLossResult) Type() ReportType { return TypeProfitLoss }

// Document returns the structured form of the report. Every key is present
// even when zero or empty.
func (r *ProfitLossResult) Document() map[string]any {
	return map[string]any{
		"report_type":               string(TypeProfitLoss),
		"period":                    r.Period,
		"total_income":              r.TotalIncome,
		"total_expenses":            r.TotalExpenses,
		"net_income":                r.NetIncome,
		"income_by_category":        plCategoryDocs(r.IncomeByCategory, "percentage_of_income"),
		"expenses_by_category":      plCategoryDocs(r.ExpensesByCategory, "percentage_of_expenses"),
		"transaction_count":         r.TransactionCount,
		"income_transaction_count":  r.IncomeCount,
		"expense_transaction_count": r.ExpenseCount,
	}
}

func plCategoryDocs(cats []PLCategory, pctKey string) []map[string]any {
	docs := make([]map[string]any, 0, len(cats))
	for _, c := range cats {
		docs = append(docs, map[string]any{
			"category": c.Category,
			"total":    c.Total,
			"count":    c.Count,
			"average":  c.Average,
			pctKey:     c.Percentage,
		})
	}
	return docs
}

// Summary renders the report for terminal display.
func (r *ProfitLossResult) Summary() string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(&b, "%s\nPROFIT & LOSS REPORT\nPeriod: %s\n%s\n", rule, r.Period, rule)

	fmt.Fprintf(&b, "\nINCOME:\n")
	fmt.Fprintf(&b, "  Total Income:    %s\n", core.FormatCurrency(r.TotalIncome))
	fmt.Fprintf(&b, "  Transactions:    %d\n", r.IncomeCount)
	if len(r.IncomeByCategory) > 0 {
		fmt.Fprintf(&b, "\n  Income by Category:\n")
		for _, c := range r.IncomeByCategory {
			fmt.Fprintf(&b, "    %-30s %15s (%s)\n", c.Category, core.FormatCurrency(c.Total), core.FormatPercent(c.Percentage))
		}
	}

	fmt.Fprintf(&b, "\nEXPENSES:\n")
	fmt.Fprintf(&b, "  Total Expenses:  %s\n", core.FormatCurrency(r.TotalExpenses))
	fmt.Fprintf(&b, "  Transactions:    %d\n", r.ExpenseCount)
	if len(r.ExpensesByCategory) > 0 {
		fmt.Fprintf(&b, "\n  Expenses by Category:\n")
		for _, c := range r.ExpensesByCategory {
			fmt.Fprintf(&b, "    %-30s %15s (%s)\n", c.Category, core.FormatCurrency(c.Total), core.FormatPercent(c.Percentage))
		}
	}

	label := "NET INCOME"
	net := r.NetIncome
	if net < 0 {
		label = "NET LOSS"
		net = -net
	}
	fmt.Fprintf(&b, "\n%s\n%s:       %s\n%s\n", strings.Repeat("-", 80), label, core.FormatCurrency(net), rule)
	return b.String()
}
