package reports

import (
	"math"
	"strings"
	"testing"

	"finreports/internal/core"
)

func TestProfitAndLoss(t *testing.T) {
	b := New([]core.Transaction{
		{Date: date(2025, 1, 1), Amount: 3000, Category: "Salary"},
		{Date: date(2025, 1, 2), Amount: 200, Category: "Interest"},
		{Date: date(2025, 1, 5), Amount: -1200, Category: "Rent"},
		{Date: date(2025, 1, 8), Amount: -300, Category: "Groceries"},
		{Date: date(2025, 1, 9), Amount: -100, Category: "Groceries"},
	})
	r := b.ProfitAndLoss(nil)

	if r.TotalIncome != 3200 {
		t.Errorf("total income: got %v", r.TotalIncome)
	}
	if r.TotalExpenses != 1600 {
		t.Errorf("expenses should be reported absolute: got %v", r.TotalExpenses)
	}
	if r.NetIncome != r.TotalIncome-r.TotalExpenses {
		t.Errorf("net income identity broken: %v", r.NetIncome)
	}
	if r.IncomeCount != 2 || r.ExpenseCount != 3 || r.TransactionCount != 5 {
		t.Errorf("counts: %+v", r)
	}

	// Expense breakdown sorts by total descending with absolute values.
	if len(r.ExpensesByCategory) != 2 {
		t.Fatalf("expense categories: %+v", r.ExpensesByCategory)
	}
	rent := r.ExpensesByCategory[0]
	if rent.Category != "Rent" || rent.Total != 1200 {
		t.Errorf("top expense: %+v", rent)
	}
	if math.Abs(rent.Percentage-75) > 1e-9 {
		t.Errorf("rent percentage of expenses: got %v", rent.Percentage)
	}
	groc := r.ExpensesByCategory[1]
	if groc.Count != 2 || groc.Total != 400 || groc.Average != 200 {
		t.Errorf("groceries line: %+v", groc)
	}
}

func TestProfitAndLossEmptySet(t *testing.T) {
	r := New(nil).ProfitAndLoss(&Filter{Categories: []string{"nothing"}})
	if r.TotalIncome != 0 || r.TotalExpenses != 0 || r.NetIncome != 0 {
		t.Fatalf("empty set should be all zeros: %+v", r)
	}
	if r.IncomeByCategory == nil || r.ExpensesByCategory == nil {
		t.Fatal("breakdowns must be empty slices, not nil")
	}
	doc := r.Document()
	for _, key := range []string{"report_type", "period", "total_income", "total_expenses", "net_income", "income_by_category", "expenses_by_category", "transaction_count"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("document missing key %q", key)
		}
	}
}

func TestProfitAndLossSkipsUnusableAmounts(t *testing.T) {
	b := New([]core.Transaction{
		{Amount: 100, Category: "Salary"},
		{Amount: math.NaN(), Category: "Unknown"},
	})
	r := b.ProfitAndLoss(nil)
	if r.TotalIncome != 100 || r.TotalExpenses != 0 {
		t.Fatalf("NaN amount leaked into totals: %+v", r)
	}
	// The record stays in the filtered count even though its amount is unusable.
	if r.TransactionCount != 2 {
		t.Fatalf("transaction count: got %d", r.TransactionCount)
	}
}

func TestProfitAndLossSummary(t *testing.T) {
	b := New([]core.Transaction{
		{Amount: 100, Category: "Salary"},
		{Amount: -250, Category: "Rent"},
	})
	s := b.ProfitAndLoss(nil).Summary()
	if !strings.Contains(s, "PROFIT & LOSS REPORT") {
		t.Error("missing header")
	}
	if !strings.Contains(s, "NET LOSS") || !strings.Contains(s, "$150.00") {
		t.Errorf("net loss should render as a positive figure:\n%s", s)
	}
}
