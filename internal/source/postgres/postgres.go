package postgres

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"finreports/internal/core"
)

// Store persists transactions in PostgreSQL through a pgx connection pool.
// NULL columns map to absent dates and amounts, mirroring the SQLite
// backend.
type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS transactions (
			id BIGSERIAL PRIMARY KEY,
			posted_date DATE,
			amount DOUBLE PRECISION,
			category TEXT NOT NULL DEFAULT '',
			merchant TEXT NOT NULL DEFAULT '',
			account TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_transactions_posted_date ON transactions(posted_date);
		CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Append implements source.TransactionWriter.
func (s *Store) Append(ctx context.Context, tx core.Transaction) (string, error) {
	var postedDate *time.Time
	if tx.HasDate() {
		d := tx.Date
		postedDate = &d
	}
	var amount *float64
	if tx.HasAmount() {
		a := tx.Amount
		amount = &a
	}

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO transactions (posted_date, amount, category, merchant, account, description, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		postedDate, amount, tx.Category, tx.Merchant, tx.Account, tx.Description, tx.Notes).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// Transactions implements source.TransactionSource.
func (s *Store) Transactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT posted_date, amount, category, merchant, account, description, notes
		 FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			postedDate *time.Time
			amount     *float64
			tx         core.Transaction
		)
		if err := rows.Scan(&postedDate, &amount, &tx.Category, &tx.Merchant, &tx.Account, &tx.Description, &tx.Notes); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if postedDate != nil {
			tx.Date = postedDate.UTC()
		}
		if amount != nil {
			tx.Amount = *amount
		} else {
			tx.Amount = math.NaN()
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Count returns the number of stored transactions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
