// Package backend selects and constructs the ledger storage backend.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"kassabot/internal/ledger"
	"kassabot/internal/storage"
)

// Type names a ledger backend.
type Type string

const (
	MemoryBackend   Type = "memory"
	SQLiteBackend   Type = "sqlite"
	PostgresBackend Type = "postgres"
)

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend, PostgresBackend:
		return true
	}
	return false
}

// Config carries only what backend construction needs.
type Config struct {
	Type         Type
	SQLiteDBPath string
	PostgresURL  string
}

// Open builds the configured ledger store. The caller owns Close.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (ledger.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		store, err := storage.NewSQLiteLedger(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite ledger: %w", err)
		}
		logger.Info("Initialized sqlite ledger", "db_path", cfg.SQLiteDBPath)
		return store, nil
	case PostgresBackend:
		store, err := storage.NewPostgresLedger(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres ledger: %w", err)
		}
		logger.Info("Initialized postgres ledger")
		return store, nil
	default:
		logger.Info("Initialized memory ledger")
		return storage.NewMemoryLedger(), nil
	}
}
