package reports

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"finreports/internal/core"
)

// AccountStat is one account line of the account summary. BalanceChange is
// income minus expenses for that account.
type AccountStat struct {
	Account          string
	Income           float64
	Expenses         float64
	BalanceChange    float64
	TransactionCount int
}

// AccountSummaryResult breaks the filtered set down by source account,
// ordered by absolute balance change so the busiest accounts lead.
type AccountSummaryResult struct {
	Accounts           []AccountStat
	TotalBalanceChange float64
}

// AccountSummary generates the account summary report.
func (b *Builder) AccountSummary(f *Filter) *AccountSummaryResult {
	filtered := f.Apply(b.txs)

	r := &AccountSummaryResult{Accounts: []AccountStat{}}
	groups, _ := groupBy(filtered, byAccount)
	skipped := 0
	for name, members := range groups {
		income, expenses, sk := flows(members)
		skipped += sk
		change := income - expenses
		r.Accounts = append(r.Accounts, AccountStat{
			Account:          name,
			Income:           income,
			Expenses:         expenses,
			BalanceChange:    change,
			TransactionCount: len(members),
		})
		r.TotalBalanceChange += change
	}
	b.warnSkipped(TypeAccountSummary, skipped)

	// Absolute balance change descending; ties keep account name order.
	sort.Slice(r.Accounts, func(i, j int) bool {
		ai, aj := math.Abs(r.Accounts[i].BalanceChange), math.Abs(r.Accounts[j].BalanceChange)
		if ai != aj {
			return ai > aj
		}
		return r.Accounts[i].Account < r.Accounts[j].Account
	})
	return r
}

func (r *AccountSummaryResult) Type() ReportType { return TypeAccountSummary }

// Document returns the structured form of the report.
func (r *AccountSummaryResult) Document() map[string]any {
	accounts := make([]map[string]any, 0, len(r.Accounts))
	for _, a := range r.Accounts {
		accounts = append(accounts, map[string]any{
			"account":           a.Account,
			"income":            a.Income,
			"expenses":          a.Expenses,
			"balance_change":    a.BalanceChange,
			"transaction_count": a.TransactionCount,
		})
	}
	return map[string]any{
		"report_type":          string(TypeAccountSummary),
		"accounts":             accounts,
		"total_balance_change": r.TotalBalanceChange,
	}
}

// Summary renders the report for terminal display.
func (r *AccountSummaryResult) Summary() string {
	var b strings.Builder
	rule := strings.Repeat("=", 100)
	fmt.Fprintf(&b, "%s\nACCOUNT SUMMARY REPORT\n%s\n", rule, rule)
	fmt.Fprintf(&b, "\n%-30s %15s %15s %15s %8s\n", "Account", "Income", "Expenses", "Net Change", "Txns")
	fmt.Fprintln(&b, strings.Repeat("-", 100))
	for _, a := range r.Accounts {
		fmt.Fprintf(&b, "%-30s %15s %15s %15s %8d\n",
			clip(a.Account, 30),
			core.FormatCurrency(a.Income),
			core.FormatCurrency(a.Expenses),
			core.FormatCurrency(a.BalanceChange),
			a.TransactionCount)
	}
	fmt.Fprintln(&b, strings.Repeat("-", 100))
	fmt.Fprintf(&b, "%-30s %15s %15s %15s\n", "TOTAL", "", "", core.FormatCurrency(r.TotalBalanceChange))
	b.WriteString(rule + "\n")
	return b.String()
}
