package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"finreports/internal/core"
)

// Store is an in-memory transaction store, used as the default backend and
// as the test double for the other backends.
type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New(txs []core.Transaction) *Store {
	return &Store{items: append([]core.Transaction(nil), txs...)}
}

// NewFromFile seeds the store from a JSON file holding an array of
// transaction records. A missing path yields an empty store; a present but
// unreadable file is an error.
func NewFromFile(path string) (*Store, error) {
	if path == "" {
		return New(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var recs []map[string]any
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return New(core.FromRecords(recs)), nil
}

// Transactions returns a copy of the stored set.
func (s *Store) Transactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...), nil
}

// Append stores the transaction and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, tx core.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, tx)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
