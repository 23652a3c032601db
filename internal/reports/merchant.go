package reports

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"finreports/internal/core"
)

// MerchantStat is one merchant line of the merchant analysis.
// PrimaryCategory is the most frequent category among that merchant's
// transactions (ties broken by first encounter); PercentageOfTotal uses
// absolute values.
type MerchantStat struct {
	Merchant          string
	Total             float64
	Count             int
	Average           float64
	PrimaryCategory   string
	PercentageOfTotal float64
}

// MerchantAnalysisResult breaks the filtered set down by merchant, keeping
// the top merchants by absolute total so large expenses and large income
// both surface.
type MerchantAnalysisResult struct {
	Merchants     []MerchantStat
	TotalAmount   float64
	MerchantCount int
	TopN          int
}

// MerchantAnalysis generates the merchant analysis report. topN <= 0 falls
// back to DefaultMerchantTopN.
func (b *Builder) MerchantAnalysis(f *Filter, topN int) *MerchantAnalysisResult {
	if topN <= 0 {
		topN = DefaultMerchantTopN
	}
	filtered := f.Apply(b.txs)

	r := &MerchantAnalysisResult{Merchants: []MerchantStat{}, TopN: topN}
	total, skipped := sumAmounts(filtered)
	b.warnSkipped(TypeMerchantAnalysis, skipped)
	r.TotalAmount = total

	groups, _ := groupBy(filtered, byMerchant)
	for name, members := range groups {
		st := computeStats(members)
		r.Merchants = append(r.Merchants, MerchantStat{
			Merchant:          name,
			Total:             st.Sum,
			Count:             st.Count,
			Average:           st.Mean,
			PrimaryCategory:   modeCategory(members),
			PercentageOfTotal: percentage(math.Abs(st.Sum), math.Abs(total)),
		})
	}
	// Absolute total descending; ties break on merchant name in reverse
	// order so truncation stays deterministic.
	sort.Slice(r.Merchants, func(i, j int) bool {
		ai, aj := math.Abs(r.Merchants[i].Total), math.Abs(r.Merchants[j].Total)
		if ai != aj {
			return ai > aj
		}
		return r.Merchants[i].Merchant > r.Merchants[j].Merchant
	})
	if len(r.Merchants) > topN {
		r.Merchants = r.Merchants[:topN]
	}
	r.MerchantCount = len(r.Merchants)
	return r
}

// modeCategory returns the most frequent category among txs, skipping
// records without one. A strict-greater comparison makes the first
// encountered category win ties.
func modeCategory(txs []core.Transaction) string {
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, tx := range txs {
		if tx.Category == "" {
			continue
		}
		counts[tx.Category]++
		if counts[tx.Category] > bestCount {
			best, bestCount = tx.Category, counts[tx.Category]
		}
	}
	return best
}

func (r *MerchantAnalysisResult) Type() ReportType { return TypeMerchantAnalysis }

// Document returns the structured form of the report.
func (r *MerchantAnalysisResult) Document() map[string]any {
	merchants := make([]map[string]any, 0, len(r.Merchants))
	for _, m := range r.Merchants {
		merchants = append(merchants, map[string]any{
			"merchant":            m.Merchant,
			"total":               m.Total,
			"count":               m.Count,
			"average":             m.Average,
			"primary_category":    m.PrimaryCategory,
			"percentage_of_total": m.PercentageOfTotal,
		})
	}
	return map[string]any{
		"report_type":    string(TypeMerchantAnalysis),
		"merchants":      merchants,
		"total_amount":   r.TotalAmount,
		"merchant_count": r.MerchantCount,
	}
}

// Summary renders the report for terminal display.
func (r *MerchantAnalysisResult) Summary() string {
	var b strings.Builder
	rule := strings.Repeat("=", 110)
	fmt.Fprintf(&b, "%s\nMERCHANT/PAYEE ANALYSIS REPORT (Top %d)\n%s\n", rule, r.TopN, rule)
	fmt.Fprintf(&b, "\n%-30s %15s %8s %15s %-20s %8s\n", "Merchant", "Total", "Count", "Average", "Category", "%")
	fmt.Fprintln(&b, strings.Repeat("-", 110))
	for _, m := range r.Merchants {
		fmt.Fprintf(&b, "%-30s %15s %8d %15s %-20s %8s\n",
			clip(m.Merchant, 30),
			core.FormatCurrency(m.Total),
			m.Count,
			core.FormatCurrency(m.Average),
			clip(m.PrimaryCategory, 20),
			core.FormatPercent(m.PercentageOfTotal))
	}
	b.WriteString(rule + "\n")
	return b.String()
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
