// Package source defines the ports for transaction storage backends. Each
// backend lives in its own subpackage and adapts one storage technology to
// these interfaces.
package source

import (
	"context"

	"finreports/internal/core"
)

// Ports for outbound adapters.
type (
	// TransactionSource loads the full transaction set for report
	// generation.
	TransactionSource interface {
		Transactions(ctx context.Context) ([]core.Transaction, error)
	}

	// TransactionWriter persists a single transaction and returns a
	// backend-specific reference to the stored row.
	TransactionWriter interface {
		Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	}

	// TransactionStore combines loading and writing for backends that
	// support both.
	TransactionStore interface {
		TransactionSource
		TransactionWriter
	}
)
