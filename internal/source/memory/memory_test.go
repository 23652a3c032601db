package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"finreports/internal/core"
)

func TestStoreAppendAndList(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	ref, err := s.Append(ctx, core.Transaction{Amount: -40, Category: "Groceries"})
	if err != nil {
		t.Fatal(err)
	}
	if ref != "mem:1" {
		t.Errorf("row ref: %q", ref)
	}

	txs, err := s.Transactions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 || txs[0].Category != "Groceries" {
		t.Fatalf("stored set: %+v", txs)
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	s := New([]core.Transaction{{Category: "Rent", Amount: -100}})
	txs, _ := s.Transactions(context.Background())
	txs[0].Category = "mutated"

	again, _ := s.Transactions(context.Background())
	if again[0].Category != "Rent" {
		t.Fatal("caller mutation leaked into the store")
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	seed := `[
		{"date": "2025-01-15", "amount": "$-42.50", "category": "Groceries", "merchant": "Shop"},
		{"amount": 100, "category": "Salary"}
	]`
	if err := os.WriteFile(path, []byte(seed), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	txs, _ := s.Transactions(context.Background())
	if len(txs) != 2 {
		t.Fatalf("seeded set: %+v", txs)
	}
	if txs[0].Amount != -42.5 || !txs[0].HasDate() {
		t.Errorf("first record: %+v", txs[0])
	}
	if txs[1].HasDate() {
		t.Errorf("second record should have no date: %+v", txs[1])
	}
}

func TestNewFromFileEmptyPath(t *testing.T) {
	s, err := NewFromFile("")
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Fatalf("empty path should yield an empty store, got %d", s.Len())
	}
}

func TestNewFromFileBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0644)
	if _, err := NewFromFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
