package reports

import (
	"math"
	"testing"

	"finreports/internal/core"
)

func TestComputeStats(t *testing.T) {
	txs := []core.Transaction{
		{Amount: 10}, {Amount: -20}, {Amount: 30},
	}
	s := computeStats(txs)
	if s.Sum != 20 || s.Count != 3 {
		t.Fatalf("sum/count: %+v", s)
	}
	if s.Min != -20 || s.Max != 30 {
		t.Fatalf("min/max: %+v", s)
	}
	wantMean := 20.0 / 3
	if math.Abs(s.Mean-wantMean) > 1e-9 {
		t.Fatalf("mean: got %v, expected %v", s.Mean, wantMean)
	}
	// Population stddev of {10,-20,30}.
	wantSD := math.Sqrt(((10-wantMean)*(10-wantMean) + (-20-wantMean)*(-20-wantMean) + (30-wantMean)*(30-wantMean)) / 3)
	if math.Abs(s.StdDev-wantSD) > 1e-9 {
		t.Fatalf("stddev: got %v, expected %v", s.StdDev, wantSD)
	}
}

func TestComputeStatsSingleMember(t *testing.T) {
	s := computeStats([]core.Transaction{{Amount: 42}})
	if s.StdDev != 0 {
		t.Fatalf("single member stddev should be 0, got %v", s.StdDev)
	}
	if s.Sum != 42 || s.Mean != 42 || s.Min != 42 || s.Max != 42 {
		t.Fatalf("single member stats: %+v", s)
	}
}

func TestComputeStatsSkipsUnusableAmounts(t *testing.T) {
	txs := []core.Transaction{
		{Amount: 10}, {Amount: math.NaN()}, {Amount: 20},
	}
	s := computeStats(txs)
	if s.Sum != 30 || s.Mean != 15 {
		t.Fatalf("NaN amount leaked into stats: %+v", s)
	}
	if s.Count != 3 {
		t.Fatalf("count should cover every group member, got %d", s.Count)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	s := computeStats(nil)
	if s.Sum != 0 || s.Count != 0 || s.Mean != 0 || s.StdDev != 0 {
		t.Fatalf("empty group should be all zeros: %+v", s)
	}
}

func TestGroupByFirstEncounterOrder(t *testing.T) {
	txs := []core.Transaction{
		{Category: "B", Amount: 1},
		{Category: "A", Amount: 2},
		{Category: "B", Amount: 3},
		{Amount: 4}, // no category
	}
	groups, keys := groupBy(txs, byCategory)
	if len(keys) != 2 || keys[0] != "B" || keys[1] != "A" {
		t.Fatalf("keys: %v", keys)
	}
	if len(groups["B"]) != 2 || len(groups["A"]) != 1 {
		t.Fatalf("groups: %v", groups)
	}
}

func TestByPeriodDropsDateless(t *testing.T) {
	txs := []core.Transaction{
		{Date: date(2025, 1, 5), Amount: 1},
		{Amount: 2},
	}
	groups, keys := groupBy(txs, byPeriod(Monthly))
	if len(keys) != 1 || keys[0] != "2025-01" {
		t.Fatalf("keys: %v", keys)
	}
	if len(groups["2025-01"]) != 1 {
		t.Fatalf("dateless record bucketed: %v", groups)
	}
}

func TestFlows(t *testing.T) {
	in, out, skipped := flows([]core.Transaction{
		{Amount: 100}, {Amount: -40}, {Amount: -10}, {Amount: math.NaN()}, {Amount: 0},
	})
	if in != 100 {
		t.Errorf("inflow: got %v", in)
	}
	if out != 50 {
		t.Errorf("outflow should be absolute: got %v", out)
	}
	if skipped != 1 {
		t.Errorf("skipped: got %d", skipped)
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		part, base, want float64
	}{
		{50, 200, 25},
		{10, 0, 0},
		{math.NaN(), 100, 0},
		{10, math.NaN(), 0},
		{-40, 160, -25},
	}
	for _, tc := range cases {
		if got := percentage(tc.part, tc.base); got != tc.want {
			t.Errorf("percentage(%v, %v) = %v, expected %v", tc.part, tc.base, got, tc.want)
		}
	}
}
