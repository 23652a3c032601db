package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"finreports/internal/core"

	_ "modernc.org/sqlite"
)

// Store persists transactions in a local SQLite database. Absent dates and
// amounts map to NULL columns so they round-trip without sentinel values.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append implements source.TransactionWriter.
func (s *Store) Append(ctx context.Context, tx core.Transaction) (string, error) {
	var postedDate any
	if tx.HasDate() {
		postedDate = tx.Date.Format("2006-01-02")
	}
	var amount any
	if tx.HasAmount() {
		amount = tx.Amount
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (posted_date, amount, category, merchant, account, description, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		postedDate, amount, tx.Category, tx.Merchant, tx.Account, tx.Description, tx.Notes)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// Transactions implements source.TransactionSource.
func (s *Store) Transactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT posted_date, amount, category, merchant, account, description, notes
		 FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			postedDate sql.NullString
			amount     sql.NullFloat64
			tx         core.Transaction
		)
		if err := rows.Scan(&postedDate, &amount, &tx.Category, &tx.Merchant, &tx.Account, &tx.Description, &tx.Notes); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if postedDate.Valid {
			if d, err := time.Parse("2006-01-02", postedDate.String); err == nil {
				tx.Date = d
			}
		}
		if amount.Valid {
			tx.Amount = amount.Float64
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
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
