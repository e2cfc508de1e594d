package storage

import (
	"context"
	"testing"
	"time"

	"kassabot/internal/core"
)

func TestMemoryLedgerInsertAndQueryAll(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()

	now := time.Now()
	first, err := ledger.InsertAt(ctx, 42, core.Money{Cents: 25050}, "Food", now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	second, err := ledger.InsertAt(ctx, 42, core.Money{Cents: 10000}, "Taxi", now)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("ids should increase, got %d twice", first.ID)
	}

	records, err := ledger.QueryAll(ctx, 42)
	if err != nil {
		t.Fatalf("queryAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Newest first.
	if records[0].Category != "Taxi" || records[1].Category != "Food" {
		t.Fatalf("wrong order: %s, %s", records[0].Category, records[1].Category)
	}
}

func TestMemoryLedgerRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()

	if _, err := ledger.Insert(ctx, 42, core.Money{Cents: 0}, "Food"); err == nil {
		t.Fatalf("expected error for zero amount")
	}
	if _, err := ledger.Insert(ctx, 42, core.Money{Cents: 100}, ""); err == nil {
		t.Fatalf("expected error for empty category")
	}

	records, err := ledger.QueryAll(ctx, 42)
	if err != nil {
		t.Fatalf("queryAll: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("rejected inserts must not touch the ledger, got %d records", len(records))
	}
}

func TestMemoryLedgerDeleteAll(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()

	for i := 0; i < 3; i++ {
		if _, err := ledger.Insert(ctx, 42, core.Money{Cents: 100}, "Food"); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if _, err := ledger.Insert(ctx, 7, core.Money{Cents: 100}, "Taxi"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	removed, err := ledger.DeleteAll(ctx, 42)
	if err != nil {
		t.Fatalf("deleteAll: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}

	records, _ := ledger.QueryAll(ctx, 42)
	if len(records) != 0 {
		t.Fatalf("expected empty result after deleteAll, got %d", len(records))
	}

	// Other users untouched, and a second delete removes zero.
	others, _ := ledger.QueryAll(ctx, 7)
	if len(others) != 1 {
		t.Fatalf("user 7 should keep records, got %d", len(others))
	}
	removed, _ = ledger.DeleteAll(ctx, 42)
	if removed != 0 {
		t.Fatalf("expected 0 removed, got %d", removed)
	}
}

func TestMemoryLedgerQueryRange(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()

	cutoff := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	ledger.InsertAt(ctx, 42, core.Money{Cents: 100}, "Food", cutoff.Add(-time.Second))
	ledger.InsertAt(ctx, 42, core.Money{Cents: 200}, "Taxi", cutoff)
	ledger.InsertAt(ctx, 42, core.Money{Cents: 300}, "Fun", cutoff.Add(time.Hour))

	records, err := ledger.QueryRange(ctx, 42, cutoff)
	if err != nil {
		t.Fatalf("queryRange: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records at/after cutoff, got %d", len(records))
	}
	for _, r := range records {
		if r.CreatedAt.Before(cutoff) {
			t.Fatalf("record %d before cutoff: %v", r.ID, r.CreatedAt)
		}
	}
}
