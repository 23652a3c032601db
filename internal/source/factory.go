package source

import (
	"context"
	"fmt"

	"finreports/internal/config"
	"finreports/internal/log"
	"finreports/internal/source/memory"
	"finreports/internal/source/postgres"
	"finreports/internal/source/sheets"
	"finreports/internal/source/sqlite"
)

// Open builds the transaction source named by the configuration. The
// returned close function releases backend resources and is never nil.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (TransactionSource, func(), error) {
	switch cfg.DataBackend {
	case "memory":
		store, err := memory.NewFromFile(cfg.SeedFile)
		if err != nil {
			return nil, nil, fmt.Errorf("memory backend: %w", err)
		}
		logger.Info("initialized memory backend", log.FieldBackend, cfg.DataBackend, log.FieldTxCount, store.Len())
		return store, func() {}, nil

	case "sqlite":
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite backend: %w", err)
		}
		logger.Info("initialized sqlite backend", log.FieldBackend, cfg.DataBackend, "path", cfg.SQLiteDBPath)
		return store, func() { store.Close() }, nil

	case "postgres":
		store, err := postgres.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres backend: %w", err)
		}
		logger.Info("initialized postgres backend", log.FieldBackend, cfg.DataBackend)
		return store, func() { store.Close() }, nil

	case "sheets":
		client, err := sheets.NewFromEnv(ctx, logger.WithComponent(log.ComponentSheets))
		if err != nil {
			return nil, nil, fmt.Errorf("sheets backend: %w", err)
		}
		logger.Info("initialized sheets backend", log.FieldBackend, cfg.DataBackend, "spreadsheet_id", cfg.GoogleSpreadsheetID)
		return client, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
