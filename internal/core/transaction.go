package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Transaction is one financial transaction record. Every field is optional;
// the absent states are explicit rather than carried in a side table:
//
//   - Date: the zero time means the record has no usable date. Such records
//     are excluded from time-bucketed views but still count towards totals.
//   - Amount: NaN means the amount was missing or unparseable. Sign is the
//     sole income/expense discriminator (positive = inflow, negative =
//     outflow); there is no separate transaction-type field.
//   - Text fields: the empty string means absent.
type Transaction struct {
	Date        time.Time
	Amount      float64
	Category    string
	Merchant    string
	Account     string
	Description string
	Notes       string
}

// HasDate reports whether the record carries a usable date.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// HasAmount reports whether the record carries a usable amount.
func (t Transaction) HasAmount() bool {
	return !math.IsNaN(t.Amount)
}

// Record returns the flat key/value form of the transaction. Keys are always
// present; absent fields map to nil so the output serializes cleanly (NaN has
// no JSON representation).
func (t Transaction) Record() map[string]any {
	rec := map[string]any{
		"date":        nil,
		"amount":      nil,
		"category":    t.Category,
		"merchant":    t.Merchant,
		"account":     t.Account,
		"description": t.Description,
		"notes":       t.Notes,
	}
	if t.HasDate() {
		rec["date"] = t.Date.Format("2006-01-02")
	}
	if t.HasAmount() {
		rec["amount"] = t.Amount
	}
	return rec
}

// dateLayouts are tried in order when coercing date strings. The acquisition
// side emits ISO-8601, but exports seen in the wild also carry timestamps.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// ParseDate coerces a raw field value to a date. It accepts time values and
// the common textual layouts; anything else yields the zero time and false.
// Malformed input is never an error: the record simply loses its date.
func ParseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return d, true
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// ParseAmount coerces a raw field value to a signed amount. Numeric types
// pass through; strings are parsed after stripping currency noise ("$",
// thousands separators). Anything unparseable yields NaN.
func ParseAmount(v any) float64 {
	switch a := v.(type) {
	case float64:
		return a
	case float32:
		return float64(a)
	case int:
		return float64(a)
	case int64:
		return float64(a)
	case json.Number:
		if f, err := a.Float64(); err == nil {
			return f
		}
	case string:
		s := strings.TrimSpace(a)
		s = strings.ReplaceAll(s, "$", "")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return math.NaN()
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

// FromRecord builds a Transaction from a flat key/value row as produced by an
// acquisition layer. Unknown keys are ignored, missing keys leave the field
// absent, and malformed date/amount values coerce to the absent state without
// failing the record. The date falls back through the alternate date keys
// some exports use.
func FromRecord(rec map[string]any) Transaction {
	tx := Transaction{Amount: math.NaN()}

	for _, key := range []string{"date", "postedDate", "transactionDate"} {
		if v, ok := rec[key]; ok {
			if d, ok := ParseDate(v); ok {
				tx.Date = d
				break
			}
		}
	}
	if v, ok := rec["amount"]; ok {
		tx.Amount = ParseAmount(v)
	}
	tx.Category = stringField(rec, "category")
	tx.Merchant = stringField(rec, "merchant")
	if tx.Merchant == "" {
		tx.Merchant = stringField(rec, "payee")
	}
	tx.Account = stringField(rec, "account")
	tx.Description = stringField(rec, "description")
	tx.Notes = stringField(rec, "notes")
	return tx
}

// FromRecords coerces a whole batch. A malformed row never aborts ingestion
// of the rest.
func FromRecords(recs []map[string]any) []Transaction {
	txs := make([]Transaction, 0, len(recs))
	for _, rec := range recs {
		txs = append(txs, FromRecord(rec))
	}
	return txs
}

func stringField(rec map[string]any, key string) string {
	if v, ok := rec[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
