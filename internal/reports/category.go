package reports

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"finreports/internal/core"
)

// CategoryStat is one category line of the category analysis, with the full
// statistical summary over that category's amounts. PercentageOfTotal uses
// absolute values on both sides of the division.
type CategoryStat struct {
	Category          string
	Total             float64
	Count             int
	Average           float64
	Min               float64
	Max               float64
	StdDev            float64
	PercentageOfTotal float64
}

// CategoryAnalysisResult breaks the filtered set down by category with no
// income/expense split. TotalAmount covers the whole filtered set, including
// records that lack a category and so do not appear in any group.
type CategoryAnalysisResult struct {
	Categories    []CategoryStat
	TotalAmount   float64
	CategoryCount int
	TopN          int
}

// CategoryAnalysis generates the category analysis report. topN > 0
// truncates the list after sorting by total descending; topN <= 0 keeps
// every category.
func (b *Builder) CategoryAnalysis(f *Filter, topN int) *CategoryAnalysisResult {
	filtered := f.Apply(b.txs)

	r := &CategoryAnalysisResult{Categories: []CategoryStat{}, TopN: topN}
	total, skipped := sumAmounts(filtered)
	b.warnSkipped(TypeCategoryAnalysis, skipped)
	r.TotalAmount = total

	groups, _ := groupBy(filtered, byCategory)
	for name, members := range groups {
		st := computeStats(members)
		r.Categories = append(r.Categories, CategoryStat{
			Category:          name,
			Total:             st.Sum,
			Count:             st.Count,
			Average:           st.Mean,
			Min:               st.Min,
			Max:               st.Max,
			StdDev:            st.StdDev,
			PercentageOfTotal: percentage(math.Abs(st.Sum), math.Abs(total)),
		})
	}
	// Total descending; equal totals break on category name in reverse
	// order so truncation stays deterministic.
	sort.Slice(r.Categories, func(i, j int) bool {
		if r.Categories[i].Total != r.Categories[j].Total {
			return r.Categories[i].Total > r.Categories[j].Total
		}
		return r.Categories[i].Category > r.Categories[j].Category
	})
	if topN > 0 && len(r.Categories) > topN {
		r.Categories = r.Categories[:topN]
	}
	r.CategoryCount = len(r.Categories)
	return r
}

func (r *CategoryAnalysisResult) Type() ReportType { return TypeCategoryAnalysis }

// Document returns the structured form of the report.
func (r *CategoryAnalysisResult) Document() map[string]any {
	cats := make([]map[string]any, 0, len(r.Categories))
	for _, c := range r.Categories {
		cats = append(cats, map[string]any{
			"category":            c.Category,
			"total":               c.Total,
			"count":               c.Count,
			"average":             c.Average,
			"min":                 c.Min,
			"max":                 c.Max,
			"std_dev":             c.StdDev,
			"percentage_of_total": c.PercentageOfTotal,
		})
	}
	return map[string]any{
		"report_type":    string(TypeCategoryAnalysis),
		"categories":     cats,
		"total_amount":   r.TotalAmount,
		"category_count": r.CategoryCount,
	}
}

// Summary renders the report for terminal display.
func (r *CategoryAnalysisResult) Summary() string {
	var b strings.Builder
	rule := strings.Repeat("=", 120)
	b.WriteString(rule + "\nCATEGORY ANALYSIS REPORT\n")
	if r.TopN > 0 {
		fmt.Fprintf(&b, "Top %d Categories\n", r.TopN)
	}
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "\n%-25s %15s %8s %15s %15s %15s %8s\n", "Category", "Total", "Count", "Average", "Min", "Max", "%")
	fmt.Fprintln(&b, strings.Repeat("-", 120))
	for _, c := range r.Categories {
		fmt.Fprintf(&b, "%-25s %15s %8d %15s %15s %15s %8s\n",
			c.Category,
			core.FormatCurrency(c.Total),
			c.Count,
			core.FormatCurrency(c.Average),
			core.FormatCurrency(c.Min),
			core.FormatCurrency(c.Max),
			core.FormatPercent(c.PercentageOfTotal))
	}
	fmt.Fprintln(&b, strings.Repeat("-", 120))
	fmt.Fprintf(&b, "%-25s %15s (%d categories)\n", "TOTAL", core.FormatCurrency(r.TotalAmount), r.CategoryCount)
	b.WriteString(rule + "\n")
	return b.String()
}
