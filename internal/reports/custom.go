package reports

import (
	"fmt"
	"sort"
	"strings"

	"finreports/internal/core"
)

// customGroupFields are the record fields the ad-hoc report can group by.
var customGroupFields = map[string]func(core.Transaction) (string, bool){
	"category": byCategory,
	"merchant": byMerchant,
	"account":  byAccount,
}

// CustomGroup is one aggregate row of a grouped ad-hoc report.
type CustomGroup struct {
	Key     string
	Total   float64
	Count   int
	Average float64
	Min     float64
	Max     float64
}

// CustomResult is the ad-hoc report. When GroupedBy is set, Groups holds the
// aggregates; otherwise Transactions holds the filtered (and optionally
// sorted) records verbatim. A grouping field absent from the data silently
// yields the ungrouped form, never an error.
type CustomResult struct {
	GroupedBy        string
	Groups           []CustomGroup
	Transactions     []core.Transaction
	TotalAmount      float64
	TransactionCount int
}

// Custom generates an ad-hoc report from a filter, an optional sort and an
// optional group-by field name. Grouping is limited to the enumerable string
// fields (category, merchant, account); any other name, including date and
// the free-text fields, yields the ungrouped listing.
func (b *Builder) Custom(f *Filter, s *Sort, groupField string) *CustomResult {
	filtered := f.Apply(b.txs)
	if s != nil {
		applySort(filtered, *s)
	}

	r := &CustomResult{
		Groups:           []CustomGroup{},
		Transactions:     []core.Transaction{},
		TransactionCount: len(filtered),
	}
	total, skipped := sumAmounts(filtered)
	b.warnSkipped(TypeCustom, skipped)
	r.TotalAmount = total

	name := strings.ToLower(strings.TrimSpace(groupField))
	key, ok := customGroupFields[name]
	if !ok {
		// Unknown grouping field: fall back to the record listing.
		r.Transactions = filtered
		return r
	}

	r.GroupedBy = name
	groups, _ := groupBy(filtered, key)
	for name, members := range groups {
		st := computeStats(members)
		r.Groups = append(r.Groups, CustomGroup{
			Key:     name,
			Total:   st.Sum,
			Count:   st.Count,
			Average: st.Mean,
			Min:     st.Min,
			Max:     st.Max,
		})
	}
	sort.Slice(r.Groups, func(i, j int) bool {
		if r.Groups[i].Total != r.Groups[j].Total {
			return r.Groups[i].Total > r.Groups[j].Total
		}
		return r.Groups[i].Key < r.Groups[j].Key
	})
	return r
}

// applySort orders records in place by a named field. filtered is already a
// fresh slice, so the builder's input is untouched. An unknown field leaves
// the order unchanged. Records missing the field sort last regardless of
// direction.
func applySort(txs []core.Transaction, s Sort) {
	field := strings.ToLower(strings.TrimSpace(s.Field))
	asc := s.Order == Ascending

	var less func(a, b core.Transaction) bool
	switch field {
	case "date":
		less = func(a, b core.Transaction) bool {
			if a.HasDate() != b.HasDate() {
				return a.HasDate()
			}
			if asc {
				return a.Date.Before(b.Date)
			}
			return b.Date.Before(a.Date)
		}
	case "amount":
		less = func(a, b core.Transaction) bool {
			if a.HasAmount() != b.HasAmount() {
				return a.HasAmount()
			}
			if asc {
				return a.Amount < b.Amount
			}
			return a.Amount > b.Amount
		}
	case "category", "merchant", "account", "description", "notes":
		value := textField(field)
		less = func(a, b core.Transaction) bool {
			va, vb := value(a), value(b)
			if (va == "") != (vb == "") {
				return va != ""
			}
			if asc {
				return va < vb
			}
			return va > vb
		}
	default:
		return
	}
	sort.SliceStable(txs, func(i, j int) bool { return less(txs[i], txs[j]) })
}

func textField(name string) func(core.Transaction) string {
	switch name {
	case "category":
		return func(t core.Transaction) string { return t.Category }
	case "merchant":
		return func(t core.Transaction) string { return t.Merchant }
	case "account":
		return func(t core.Transaction) string { return t.Account }
	case "description":
		return func(t core.Transaction) string { return t.Description }
	default:
		return func(t core.Transaction) string { return t.Notes }
	}
}

func (r *CustomResult) Type() ReportType { return TypeCustom }

// Document returns the structured form of the report. The grouped and
// ungrouped shapes differ deliberately: callers detect the fallback by the
// presence of "transactions" instead of "grouped_by"/"data".
func (r *CustomResult) Document() map[string]any {
	if r.GroupedBy != "" {
		rows := make([]map[string]any, 0, len(r.Groups))
		for _, g := range r.Groups {
			rows = append(rows, map[string]any{
				r.GroupedBy: g.Key,
				"total":     g.Total,
				"count":     g.Count,
				"average":   g.Average,
				"min":       g.Min,
				"max":       g.Max,
			})
		}
		return map[string]any{
			"report_type":       string(TypeCustom),
			"grouped_by":        r.GroupedBy,
			"data":              rows,
			"total_amount":      r.TotalAmount,
			"transaction_count": r.TransactionCount,
		}
	}
	recs := make([]map[string]any, 0, len(r.Transactions))
	for _, tx := range r.Transactions {
		recs = append(recs, tx.Record())
	}
	return map[string]any{
		"report_type":       string(TypeCustom),
		"transactions":      recs,
		"total_amount":      r.TotalAmount,
		"transaction_count": r.TransactionCount,
	}
}

// Summary renders the report for terminal display.
func (r *CustomResult) Summary() string {
	var b strings.Builder
	rule := strings.Repeat("=", 90)
	fmt.Fprintf(&b, "%s\nCUSTOM REPORT\n%s\n", rule, rule)
	if r.GroupedBy != "" {
		fmt.Fprintf(&b, "\nGrouped by %s\n\n%-25s %15s %8s %15s %15s %15s\n",
			r.GroupedBy, "Group", "Total", "Count", "Average", "Min", "Max")
		fmt.Fprintln(&b, strings.Repeat("-", 90))
		for _, g := range r.Groups {
			fmt.Fprintf(&b, "%-25s %15s %8d %15s %15s %15s\n",
				clip(g.Key, 25),
				core.FormatCurrency(g.Total),
				g.Count,
				core.FormatCurrency(g.Average),
				core.FormatCurrency(g.Min),
				core.FormatCurrency(g.Max))
		}
	} else {
		fmt.Fprintf(&b, "\n%-12s %15s %-20s %-25s %-15s\n", "Date", "Amount", "Category", "Merchant", "Account")
		fmt.Fprintln(&b, strings.Repeat("-", 90))
		for _, tx := range r.Transactions {
			date := ""
			if tx.HasDate() {
				date = tx.Date.Format("2006-01-02")
			}
			amount := ""
			if tx.HasAmount() {
				amount = core.FormatCurrency(tx.Amount)
			}
			fmt.Fprintf(&b, "%-12s %15s %-20s %-25s %-15s\n",
				date, amount, clip(tx.Category, 20), clip(tx.Merchant, 25), clip(tx.Account, 15))
		}
	}
	fmt.Fprintln(&b, strings.Repeat("-", 90))
	fmt.Fprintf(&b, "%-25s %15s (%d transactions)\n", "TOTAL", core.FormatCurrency(r.TotalAmount), r.TransactionCount)
	b.WriteString(rule + "\n")
	return b.String()
}
