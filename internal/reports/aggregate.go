package reports

import (
	"math"
	"sort"

	"finreports/internal/core"
)

// Stats are the per-group summary statistics over transaction amounts.
// Records without a usable amount are skipped before computation, so a NaN
// never propagates into a sum. A single-member group has StdDev 0, not NaN.
type Stats struct {
	Sum    float64
	Count  int
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
}

// computeStats summarizes the usable amounts of a group. Count covers every
// transaction in the group, including those whose amount was skipped.
func computeStats(txs []core.Transaction) Stats {
	s := Stats{Count: len(txs)}
	n := 0
	for _, tx := range txs {
		if !tx.HasAmount() {
			continue
		}
		if n == 0 {
			s.Min, s.Max = tx.Amount, tx.Amount
		} else {
			s.Min = math.Min(s.Min, tx.Amount)
			s.Max = math.Max(s.Max, tx.Amount)
		}
		s.Sum += tx.Amount
		n++
	}
	if n == 0 {
		return s
	}
	s.Mean = s.Sum / float64(n)
	if n > 1 {
		var sq float64
		for _, tx := range txs {
			if !tx.HasAmount() {
				continue
			}
			d := tx.Amount - s.Mean
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(n)) // population
	}
	return s
}

// groupBy partitions transactions by key. The key function returns ok=false
// to drop a record from the grouping (missing field, missing date); dropped
// records still belong to the overall filtered set. keys preserves
// first-encounter order so callers can re-sort deterministically.
func groupBy(txs []core.Transaction, key func(core.Transaction) (string, bool)) (groups map[string][]core.Transaction, keys []string) {
	groups = make(map[string][]core.Transaction)
	for _, tx := range txs {
		k, ok := key(tx)
		if !ok {
			continue
		}
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], tx)
	}
	return groups, keys
}

// byCategory, byMerchant, byAccount key on the respective text field; empty
// means absent and drops the record from that grouping.
func byCategory(tx core.Transaction) (string, bool) { return tx.Category, tx.Category != "" }
func byMerchant(tx core.Transaction) (string, bool) { return tx.Merchant, tx.Merchant != "" }
func byAccount(tx core.Transaction) (string, bool)  { return tx.Account, tx.Account != "" }

// byPeriod keys on the period label under g; records without a date drop out
// of time-bucketed views.
func byPeriod(g Grouping) func(core.Transaction) (string, bool) {
	return func(tx core.Transaction) (string, bool) {
		if !tx.HasDate() {
			return "", false
		}
		return PeriodLabel(tx.Date, g), true
	}
}

// flows splits a group into inflow (sum of positive amounts) and outflow
// (absolute sum of negative amounts). skipped counts records with no usable
// amount.
func flows(txs []core.Transaction) (inflow, outflow float64, skipped int) {
	for _, tx := range txs {
		switch {
		case !tx.HasAmount():
			skipped++
		case tx.Amount > 0:
			inflow += tx.Amount
		case tx.Amount < 0:
			outflow += -tx.Amount
		}
	}
	return inflow, outflow, skipped
}

// sumAmounts totals the usable amounts of the whole set.
func sumAmounts(txs []core.Transaction) (total float64, skipped int) {
	for _, tx := range txs {
		if !tx.HasAmount() {
			skipped++
			continue
		}
		total += tx.Amount
	}
	return total, skipped
}

// sortedPeriods returns the group keys in chronological order. Period labels
// are built to sort lexicographically by time.
func sortedPeriods(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	return out
}

// percentage is the guarded percentage-of-total: 0 when the base is zero or
// not a number, never a division error.
func percentage(part, base float64) float64 {
	if base == 0 || math.IsNaN(base) || math.IsNaN(part) {
		return 0
	}
	return part / base * 100
}
