package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"kassabot/internal/core"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresLedger is the shared-database backend for deployments where the
// bot runs alongside other services. Uses the pgx stdlib driver.
type PostgresLedger struct {
	db *sql.DB
}

func NewPostgresLedger(ctx context.Context, dsn string) (*PostgresLedger, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &PostgresLedger{db: db}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS expenses (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL,
			amount_cents BIGINT NOT NULL CHECK (amount_cents > 0),
			category TEXT NOT NULL CHECK (length(category) > 0),
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_expenses_user_created
			ON expenses (user_id, created_at DESC);
	`)
	return err
}

func (l *PostgresLedger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

func (l *PostgresLedger) Insert(ctx context.Context, userID int64, amount core.Money, category string) (core.ExpenseRecord, error) {
	rec := core.ExpenseRecord{
		UserID:    userID,
		Amount:    amount,
		Category:  category,
		CreatedAt: time.Now().Truncate(time.Second),
	}
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}

	err := l.db.QueryRowContext(ctx,
		`INSERT INTO expenses (user_id, amount_cents, category, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		rec.UserID, rec.Amount.Cents, rec.Category, rec.CreatedAt).Scan(&rec.ID)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", rec.ID,
		"user_id", rec.UserID,
		"amount_cents", rec.Amount.Cents,
		"category", rec.Category)

	return rec, nil
}

func (l *PostgresLedger) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	res, err := l.db.ExecContext(ctx, `DELETE FROM expenses WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete expenses: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

func (l *PostgresLedger) QueryAll(ctx context.Context, userID int64) ([]core.ExpenseRecord, error) {
	return l.query(ctx,
		`SELECT id, user_id, amount_cents, category, created_at
		 FROM expenses WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`, userID)
}

func (l *PostgresLedger) QueryRange(ctx context.Context, userID int64, since time.Time) ([]core.ExpenseRecord, error) {
	return l.query(ctx,
		`SELECT id, user_id, amount_cents, category, created_at
		 FROM expenses WHERE user_id = $1 AND created_at >= $2
		 ORDER BY created_at DESC, id DESC`, userID, since)
}

func (l *PostgresLedger) query(ctx context.Context, q string, args ...any) ([]core.ExpenseRecord, error) {
	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseRecord
	for rows.Next() {
		var rec core.ExpenseRecord
		var createdAt time.Time
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Amount.Cents, &rec.Category, &createdAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		rec.CreatedAt = createdAt.In(time.Local)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}
