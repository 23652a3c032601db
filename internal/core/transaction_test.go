package core

import (
	"math"
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name string
		in   any
		out  float64
		nan  bool
	}{
		{"float", 12.34, 12.34, false},
		{"int", 100, 100, false},
		{"negative string", "-40.50", -40.50, false},
		{"currency string", "$1,234.56", 1234.56, false},
		{"whitespace", " 99 ", 99, false},
		{"empty string", "", 0, true},
		{"garbage", "abc", 0, true},
		{"nil", nil, 0, true},
		{"bool", true, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseAmount(tc.in)
			if tc.nan {
				if !math.IsNaN(got) {
					t.Fatalf("ParseAmount(%v) = %v, expected NaN", tc.in, got)
				}
				return
			}
			if got != tc.out {
				t.Fatalf("ParseAmount(%v) = %v, expected %v", tc.in, got, tc.out)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		name string
		in   any
		ok   bool
		want time.Time
	}{
		{"iso date", "2025-01-15", true, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2025-01-15T10:30:00Z", true, time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"us slash", "01/15/2025", true, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"time value", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), true, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"empty", "", false, time.Time{}},
		{"garbage", "not a date", false, time.Time{}},
		{"nil", nil, false, time.Time{}},
		{"zero time", time.Time{}, false, time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDate(tc.in)
			if ok != tc.ok {
				t.Fatalf("ParseDate(%v) ok = %v, expected %v", tc.in, ok, tc.ok)
			}
			if ok && !got.Equal(tc.want) {
				t.Fatalf("ParseDate(%v) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFromRecord(t *testing.T) {
	tx := FromRecord(map[string]any{
		"date":        "2025-01-15",
		"amount":      "-42.10",
		"category":    "Groceries",
		"merchant":    "AMAZON.COM*AB1234",
		"account":     "Checking",
		"description": "weekly shop",
		"notes":       "",
	})
	if !tx.HasDate() || tx.Date.Year() != 2025 {
		t.Fatalf("expected parsed date, got %v", tx.Date)
	}
	if tx.Amount != -42.10 {
		t.Fatalf("expected amount -42.10, got %v", tx.Amount)
	}
	if tx.Category != "Groceries" || tx.Merchant != "AMAZON.COM*AB1234" {
		t.Fatalf("unexpected text fields: %+v", tx)
	}
}

func TestFromRecordMalformed(t *testing.T) {
	tx := FromRecord(map[string]any{
		"date":   "yesterday",
		"amount": "lots",
	})
	if tx.HasDate() {
		t.Fatalf("malformed date should coerce to absent, got %v", tx.Date)
	}
	if tx.HasAmount() {
		t.Fatalf("malformed amount should coerce to NaN, got %v", tx.Amount)
	}
}

func TestFromRecordDateFallback(t *testing.T) {
	tx := FromRecord(map[string]any{"postedDate": "2025-03-01", "amount": 10.0})
	if !tx.HasDate() || tx.Date.Month() != time.March {
		t.Fatalf("expected postedDate fallback, got %v", tx.Date)
	}
}

func TestFromRecordMissingEverything(t *testing.T) {
	tx := FromRecord(map[string]any{})
	if tx.HasDate() || tx.HasAmount() || tx.Category != "" {
		t.Fatalf("empty record should produce fully absent transaction: %+v", tx)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	tx := Transaction{
		Date:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Amount:   -10,
		Category: "Groceries",
	}
	rec := tx.Record()
	if rec["date"] != "2025-02-01" {
		t.Fatalf("expected date key, got %v", rec["date"])
	}
	if rec["amount"] != -10.0 {
		t.Fatalf("expected amount key, got %v", rec["amount"])
	}
	// Absent fields serialize as nil, not as NaN or missing keys.
	absent := Transaction{Amount: math.NaN()}.Record()
	if absent["amount"] != nil || absent["date"] != nil {
		t.Fatalf("absent fields should be nil: %v", absent)
	}
	if _, ok := absent["notes"]; !ok {
		t.Fatal("all keys must be present even when empty")
	}
}

func TestFromRecordsKeepsBadRows(t *testing.T) {
	txs := FromRecords([]map[string]any{
		{"amount": 100.0},
		{"amount": "bad"},
		{"amount": -5.0},
	})
	if len(txs) != 3 {
		t.Fatalf("malformed rows must not abort ingestion, got %d rows", len(txs))
	}
}
