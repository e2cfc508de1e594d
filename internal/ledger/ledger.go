// Package ledger defines the port for the durable expense store.
package ledger

import (
	"context"
	"time"

	"kassabot/internal/core"
)

// Store is the durable, append-only record of expenses. Every call is its
// own transaction; no multi-call transaction spans a conversation turn.
// Writes for a given user are serialized by the dispatcher, so
// implementations only need per-call atomicity.
type Store interface {
	// Insert persists a record, assigning its id and creation timestamp,
	// and returns the stored record.
	Insert(ctx context.Context, userID int64, amount core.Money, category string) (core.ExpenseRecord, error)

	// DeleteAll removes every record of the user and returns how many
	// were removed, possibly zero.
	DeleteAll(ctx context.Context, userID int64) (int64, error)

	// QueryAll returns all records of the user, newest first.
	QueryAll(ctx context.Context, userID int64) ([]core.ExpenseRecord, error)

	// QueryRange returns records created at or after since, newest first.
	QueryRange(ctx context.Context, userID int64, since time.Time) ([]core.ExpenseRecord, error)

	Close() error
}
