package reports

import (
	"math"
	"strings"
	"testing"

	"finreports/internal/core"
)

func TestCashFlowMonthly(t *testing.T) {
	b := New([]core.Transaction{
		{Date: date(2025, 1, 10), Amount: 100},
		{Date: date(2025, 1, 15), Amount: -40},
		{Date: date(2025, 2, 3), Amount: -10},
	})
	r := b.CashFlow(nil, Monthly)

	if len(r.Periods) != 2 {
		t.Fatalf("periods: %+v", r.Periods)
	}
	jan := r.Periods[0]
	if jan.Period != "2025-01" || jan.Inflow != 100 || jan.Outflow != 40 || jan.NetFlow != 60 || jan.RunningBalance != 60 {
		t.Errorf("january bucket: %+v", jan)
	}
	feb := r.Periods[1]
	if feb.Period != "2025-02" || feb.Inflow != 0 || feb.Outflow != 10 || feb.NetFlow != -10 || feb.RunningBalance != 50 {
		t.Errorf("february bucket: %+v", feb)
	}
	if r.TotalInflow != 100 || r.TotalOutflow != 50 || r.NetCashFlow != 50 {
		t.Errorf("totals: %+v", r)
	}
	if r.Period != "2025-01 to 2025-02" {
		t.Errorf("period label: %q", r.Period)
	}
}

// The last running balance always equals the sum of the net flows.
func TestCashFlowRunningBalanceInvariant(t *testing.T) {
	b := New([]core.Transaction{
		{Date: date(2024, 11, 1), Amount: 500},
		{Date: date(2025, 1, 20), Amount: -125.5},
		{Date: date(2025, 3, 2), Amount: 80},
		{Date: date(2025, 3, 15), Amount: -300},
		{Date: date(2025, 7, 7), Amount: 42},
	})
	for _, g := range []Grouping{Daily, Weekly, Monthly, Quarterly, Yearly} {
		r := b.CashFlow(nil, g)
		var sum float64
		for _, p := range r.Periods {
			sum += p.NetFlow
		}
		last := r.Periods[len(r.Periods)-1].RunningBalance
		if math.Abs(last-sum) > 1e-9 {
			t.Errorf("%s: running balance %v, net flow sum %v", g, last, sum)
		}
		if math.Abs(r.NetCashFlow-sum) > 1e-9 {
			t.Errorf("%s: net cash flow %v, net flow sum %v", g, r.NetCashFlow, sum)
		}
	}
}

func TestCashFlowPeriodsChronological(t *testing.T) {
	b := New([]core.Transaction{
		{Date: date(2025, 3, 1), Amount: 1},
		{Date: date(2024, 12, 1), Amount: 1},
		{Date: date(2025, 1, 1), Amount: 1},
	})
	r := b.CashFlow(nil, Monthly)
	want := []string{"2024-12", "2025-01", "2025-03"}
	for i, p := range r.Periods {
		if p.Period != want[i] {
			t.Fatalf("period order: got %+v", r.Periods)
		}
	}
}

func TestCashFlowDropsDatelessRecords(t *testing.T) {
	b := New([]core.Transaction{
		{Date: date(2025, 1, 1), Amount: 10},
		{Amount: 99},
	})
	r := b.CashFlow(nil, Monthly)
	if len(r.Periods) != 1 || r.TotalInflow != 10 {
		t.Fatalf("dateless record bucketed: %+v", r)
	}
}

func TestCashFlowInvalidGroupingFallsBack(t *testing.T) {
	b := New([]core.Transaction{{Date: date(2025, 1, 1), Amount: 10}})
	r := b.CashFlow(nil, Grouping("fortnightly"))
	if r.Grouping != Monthly {
		t.Fatalf("expected monthly fallback, got %q", r.Grouping)
	}
}

func TestCashFlowEmptySet(t *testing.T) {
	r := New(nil).CashFlow(nil, Monthly)
	if len(r.Periods) != 0 || r.Periods == nil {
		t.Fatalf("empty result should be an empty slice: %+v", r.Periods)
	}
	if r.Period != "" {
		t.Errorf("period: %q", r.Period)
	}
	if s := r.Summary(); !strings.Contains(s, "CASH FLOW REPORT") {
		t.Error("summary header missing")
	}
}
