package reports

import (
	"math"
	"testing"
	"time"

	"finreports/internal/core"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func sampleTxs() []core.Transaction {
	return []core.Transaction{
		{Date: date(2025, 1, 15), Amount: 100, Category: "Salary", Merchant: "Acme Corp", Account: "Checking", Description: "January payroll"},
		{Date: date(2025, 1, 20), Amount: -40, Category: "Groceries", Merchant: "AMAZON.COM*AB1234", Account: "Credit Card", Description: "household order", Notes: "bulk"},
		{Date: date(2025, 2, 1), Amount: -10, Category: "Groceries", Merchant: "Corner Shop", Account: "Checking"},
		{Amount: -25, Category: "Dining", Merchant: "Cafe", Account: "Credit Card"},            // no date
		{Date: date(2025, 2, 10), Amount: math.NaN(), Category: "Unknown", Merchant: "Mystery"}, // no amount
	}
}

func TestFilterNilPassesEverything(t *testing.T) {
	txs := sampleTxs()
	var f *Filter
	got := f.Apply(txs)
	if len(got) != len(txs) {
		t.Fatalf("nil filter should pass all %d records, got %d", len(txs), len(got))
	}
}

func TestFilterDateBounds(t *testing.T) {
	txs := sampleTxs()
	f := &Filter{StartDate: date(2025, 1, 1), EndDate: date(2025, 1, 31)}
	got := f.Apply(txs)
	if len(got) != 2 {
		t.Fatalf("expected 2 January records, got %d", len(got))
	}
	// Records without a date drop out once a date bound is set.
	for _, tx := range got {
		if !tx.HasDate() {
			t.Fatal("dateless record passed a date filter")
		}
	}
	// Bounds are inclusive.
	f = &Filter{StartDate: date(2025, 1, 15), EndDate: date(2025, 1, 15)}
	got = f.Apply(txs)
	if len(got) != 1 || got[0].Amount != 100 {
		t.Fatalf("inclusive date bound failed: %+v", got)
	}
}

func TestFilterAmountBounds(t *testing.T) {
	txs := sampleTxs()

	t.Run("inclusive", func(t *testing.T) {
		f := &Filter{MinAmount: floatPtr(-40), MaxAmount: floatPtr(-10)}
		got := f.Apply(txs)
		if len(got) != 3 {
			t.Fatalf("expected 3 records in [-40,-10], got %d", len(got))
		}
	})

	t.Run("min equals max", func(t *testing.T) {
		f := &Filter{MinAmount: floatPtr(-40), MaxAmount: floatPtr(-40)}
		got := f.Apply(txs)
		if len(got) != 1 || got[0].Amount != -40 {
			t.Fatalf("min==max should match exactly that amount, got %+v", got)
		}
	})

	t.Run("degenerate range", func(t *testing.T) {
		f := &Filter{MinAmount: floatPtr(100), MaxAmount: floatPtr(-100)}
		if got := f.Apply(txs); len(got) != 0 {
			t.Fatalf("min>max should match nothing, got %d", len(got))
		}
	})

	t.Run("nan amount excluded", func(t *testing.T) {
		f := &Filter{MinAmount: floatPtr(-1000)}
		for _, tx := range f.Apply(txs) {
			if !tx.HasAmount() {
				t.Fatal("record without amount passed an amount filter")
			}
		}
	})
}

func TestFilterCategoryLists(t *testing.T) {
	txs := sampleTxs()

	f := &Filter{Categories: []string{"groceries"}}
	if got := f.Apply(txs); len(got) != 2 {
		t.Fatalf("case-insensitive category allow-list: expected 2, got %d", len(got))
	}

	f = &Filter{ExcludeCategories: []string{"Groceries", "Dining"}}
	got := f.Apply(txs)
	if len(got) != 2 {
		t.Fatalf("deny-list: expected 2, got %d", len(got))
	}

	// A record missing the field fails the allow-list but passes the deny-list.
	noCat := []core.Transaction{{Amount: 5}}
	if got := (&Filter{Categories: []string{"Anything"}}).Apply(noCat); len(got) != 0 {
		t.Fatal("missing category should fail allow-list")
	}
	if got := (&Filter{ExcludeCategories: []string{"Anything"}}).Apply(noCat); len(got) != 1 {
		t.Fatal("missing category should pass deny-list")
	}
}

func TestFilterMerchantSubstring(t *testing.T) {
	txs := sampleTxs()

	f := &Filter{Merchants: []string{"Amazon"}}
	got := f.Apply(txs)
	if len(got) != 1 || got[0].Merchant != "AMAZON.COM*AB1234" {
		t.Fatalf("substring merchant match failed: %+v", got)
	}

	// OR across the list.
	f = &Filter{Merchants: []string{"amazon", "corner"}}
	if got := f.Apply(txs); len(got) != 2 {
		t.Fatalf("OR-across-list: expected 2, got %d", len(got))
	}

	f = &Filter{ExcludeMerchants: []string{"amazon"}}
	for _, tx := range f.Apply(txs) {
		if tx.Merchant == "AMAZON.COM*AB1234" {
			t.Fatal("deny-listed merchant passed")
		}
	}
}

func TestFilterAccounts(t *testing.T) {
	f := &Filter{Accounts: []string{"checking"}}
	if got := f.Apply(sampleTxs()); len(got) != 2 {
		t.Fatalf("account allow-list: expected 2, got %d", len(got))
	}
}

func TestFilterContains(t *testing.T) {
	txs := sampleTxs()

	f := &Filter{DescriptionContains: strPtr("PAYROLL")}
	got := f.Apply(txs)
	if len(got) != 1 || got[0].Category != "Salary" {
		t.Fatalf("case-insensitive description contains failed: %+v", got)
	}

	// Empty string means "present and non-empty", not match-everything.
	f = &Filter{DescriptionContains: strPtr("")}
	if got := f.Apply(txs); len(got) != 2 {
		t.Fatalf("empty contains should require non-empty field: expected 2, got %d", len(got))
	}

	f = &Filter{NotesContains: strPtr("bulk")}
	if got := f.Apply(txs); len(got) != 1 {
		t.Fatalf("notes contains: expected 1, got %d", len(got))
	}
}

func TestFilterCombinedAnd(t *testing.T) {
	f := &Filter{
		StartDate:  date(2025, 1, 1),
		Categories: []string{"Groceries"},
		MaxAmount:  floatPtr(-20),
	}
	got := f.Apply(sampleTxs())
	if len(got) != 1 || got[0].Amount != -40 {
		t.Fatalf("ANDed options: expected the January grocery order, got %+v", got)
	}
}

func TestFilterPreservesOrderAndInput(t *testing.T) {
	txs := sampleTxs()
	before := make([]core.Transaction, len(txs))
	copy(before, txs)

	f := &Filter{Accounts: []string{"Checking", "Credit Card"}}
	got := f.Apply(txs)
	for i := 1; i < len(got); i++ {
		// Relative order must match the input order.
		if indexOfTx(txs, got[i-1]) > indexOfTx(txs, got[i]) {
			t.Fatal("filter reordered records")
		}
	}
	for i := range txs {
		if !txs[i].Date.Equal(before[i].Date) || txs[i].Category != before[i].Category {
			t.Fatal("filter mutated its input")
		}
	}
}

func indexOfTx(txs []core.Transaction, want core.Transaction) int {
	for i, tx := range txs {
		if tx.Date.Equal(want.Date) && tx.Merchant == want.Merchant {
			return i
		}
	}
	return -1
}

func TestPeriodDescription(t *testing.T) {
	cases := []struct {
		name string
		f    *Filter
		want string
	}{
		{"nil", nil, "All time"},
		{"none", &Filter{}, "All time"},
		{"both", &Filter{StartDate: date(2025, 1, 1), EndDate: date(2025, 3, 31)}, "2025-01-01 to 2025-03-31"},
		{"start only", &Filter{StartDate: date(2025, 1, 1)}, "From 2025-01-01"},
		{"end only", &Filter{EndDate: date(2025, 3, 31)}, "Until 2025-03-31"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.PeriodDescription(); got != tc.want {
				t.Fatalf("got %q, expected %q", got, tc.want)
			}
		})
	}
}
