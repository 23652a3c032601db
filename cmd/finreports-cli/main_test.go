package main

import (
	"testing"

	"finreports/internal/core"
)

func TestBuildFilterZeroAmountBound(t *testing.T) {
	f, err := buildFilter(filterFlags{
		minAmount: 0, minSet: true,
		maxAmount: 0, maxSet: true,
	})
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}
	if f.MinAmount == nil || *f.MinAmount != 0 {
		t.Errorf("min bound: got %v", f.MinAmount)
	}
	if f.MaxAmount == nil || *f.MaxAmount != 0 {
		t.Errorf("max bound: got %v", f.MaxAmount)
	}
	// min == max == 0 selects exactly the zero-amount records.
	got := f.Apply([]core.Transaction{
		{Amount: 0, Merchant: "refund reversal"},
		{Amount: -5, Merchant: "shop"},
		{Amount: 5, Merchant: "rebate"},
	})
	if len(got) != 1 || got[0].Merchant != "refund reversal" {
		t.Errorf("zero-bound selection: %+v", got)
	}
}

func TestBuildFilterUnsetBoundsStayNil(t *testing.T) {
	f, err := buildFilter(filterFlags{})
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}
	if f.MinAmount != nil || f.MaxAmount != nil {
		t.Errorf("unset bounds should be nil: min=%v max=%v", f.MinAmount, f.MaxAmount)
	}
}

func TestBuildFilterDatesAndLists(t *testing.T) {
	f, err := buildFilter(filterFlags{
		start:      "2025-01-01",
		end:        "2025-03-31",
		categories: "Groceries, Dining ,",
		merchants:  "amazon",
	})
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}
	if f.StartDate.IsZero() || f.EndDate.IsZero() {
		t.Errorf("dates not parsed: %+v", f)
	}
	if len(f.Categories) != 2 || f.Categories[1] != "Dining" {
		t.Errorf("category list: %v", f.Categories)
	}
	if len(f.Merchants) != 1 {
		t.Errorf("merchant list: %v", f.Merchants)
	}
}

func TestBuildFilterRejectsBadDates(t *testing.T) {
	for _, ff := range []filterFlags{
		{start: "01/02/2025"},
		{end: "2025-13-40"},
	} {
		if _, err := buildFilter(ff); err == nil {
			t.Errorf("expected error for %+v", ff)
		}
	}
}
