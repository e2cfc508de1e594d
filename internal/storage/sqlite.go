// Package storage provides the ledger backends: sqlite, postgres and an
// in-memory store for development and tests.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"kassabot/internal/core"

	_ "modernc.org/sqlite"
)

// timeLayout is how creation timestamps are stored: local wall clock,
// second precision, lexicographically ordered.
const timeLayout = "2006-01-02 15:04:05"

type SQLiteLedger struct {
	db *sql.DB
}

func NewSQLiteLedger(dbPath string) (*SQLiteLedger, error) {
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

	return &SQLiteLedger{db: db}, nil
}

func (l *SQLiteLedger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

func (l *SQLiteLedger) Insert(ctx context.Context, userID int64, amount core.Money, category string) (core.ExpenseRecord, error) {
	rec := core.ExpenseRecord{
		UserID:    userID,
		Amount:    amount,
		Category:  category,
		CreatedAt: time.Now().Truncate(time.Second),
	}
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}

	res, err := l.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, amount_cents, category, created_at) VALUES (?, ?, ?, ?)`,
		rec.UserID, rec.Amount.Cents, rec.Category, rec.CreatedAt.Format(timeLayout))
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("insert expense: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", rec.ID,
		"user_id", rec.UserID,
		"amount_cents", rec.Amount.Cents,
		"category", rec.Category)

	return rec, nil
}

func (l *SQLiteLedger) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	res, err := l.db.ExecContext(ctx, `DELETE FROM expenses WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete expenses: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

func (l *SQLiteLedger) QueryAll(ctx context.Context, userID int64) ([]core.ExpenseRecord, error) {
	return l.query(ctx,
		`SELECT id, user_id, amount_cents, category, created_at
		 FROM expenses WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`, userID)
}

func (l *SQLiteLedger) QueryRange(ctx context.Context, userID int64, since time.Time) ([]core.ExpenseRecord, error) {
	return l.query(ctx,
		`SELECT id, user_id, amount_cents, category, created_at
		 FROM expenses WHERE user_id = ? AND created_at >= ?
		 ORDER BY created_at DESC, id DESC`, userID, since.Format(timeLayout))
}

func (l *SQLiteLedger) query(ctx context.Context, q string, args ...any) ([]core.ExpenseRecord, error) {
	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseRecord
	for rows.Next() {
		var rec core.ExpenseRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Amount.Cents, &rec.Category, &createdAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		rec.CreatedAt, err = time.ParseInLocation(timeLayout, createdAt, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}
