package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"kassabot/internal/core"
)

// MemoryLedger is an in-process ledger used for development and tests.
type MemoryLedger struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64][]core.ExpenseRecord // by user id, insertion order
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		nextID:  1,
		records: make(map[int64][]core.ExpenseRecord),
	}
}

func (l *MemoryLedger) Insert(ctx context.Context, userID int64, amount core.Money, category string) (core.ExpenseRecord, error) {
	return l.InsertAt(ctx, userID, amount, category, time.Now())
}

// InsertAt inserts with an explicit creation time. Used by tests and
// backfills; the dispatcher always goes through Insert.
func (l *MemoryLedger) InsertAt(ctx context.Context, userID int64, amount core.Money, category string, at time.Time) (core.ExpenseRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := core.ExpenseRecord{
		ID:        l.nextID,
		UserID:    userID,
		Amount:    amount,
		Category:  category,
		CreatedAt: at.Truncate(time.Second),
	}
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}
	l.nextID++
	l.records[userID] = append(l.records[userID], rec)
	return rec, nil
}

func (l *MemoryLedger) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := int64(len(l.records[userID]))
	delete(l.records, userID)
	return removed, nil
}

func (l *MemoryLedger) QueryAll(ctx context.Context, userID int64) ([]core.ExpenseRecord, error) {
	return l.QueryRange(ctx, userID, time.Time{})
}

func (l *MemoryLedger) QueryRange(ctx context.Context, userID int64, since time.Time) ([]core.ExpenseRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []core.ExpenseRecord
	for _, rec := range l.records[userID] {
		if rec.CreatedAt.Before(since) {
			continue
		}
		out = append(out, rec)
	}
	// Newest first; ties resolved by id so ordering stays stable.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (l *MemoryLedger) Close() error {
	return nil
}
