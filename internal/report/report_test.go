package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kassabot/internal/core"
	"kassabot/internal/storage"
)

func TestBuildReportNoData(t *testing.T) {
	b := NewBuilder(storage.NewMemoryLedger())

	_, _, err := b.Build(context.Background(), 42, core.WindowToday)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestBuildReportWindowFilter(t *testing.T) {
	ctx := context.Background()
	ledger := storage.NewMemoryLedger()
	b := NewBuilder(ledger)

	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	b.now = func() time.Time { return now }

	// Yesterday 23:59:59: outside "today", inside "last 7 days".
	ledger.InsertAt(ctx, 42, core.Money{Cents: 10000}, "Taxi",
		time.Date(2026, 8, 30, 23, 59, 59, 0, time.Local))
	ledger.InsertAt(ctx, 42, core.Money{Cents: 25050}, "Food",
		time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local))

	summary, view, err := b.Build(ctx, 42, core.WindowToday)
	if err != nil {
		t.Fatalf("build today: %v", err)
	}
	if view.Total.Cents != 25050 {
		t.Fatalf("today total: expected 25050, got %d", view.Total.Cents)
	}
	if strings.Contains(summary, "Taxi") {
		t.Fatalf("yesterday's record leaked into today's report:\n%s", summary)
	}

	_, view, err = b.Build(ctx, 42, core.WindowWeek)
	if err != nil {
		t.Fatalf("build week: %v", err)
	}
	if view.Total.Cents != 35050 {
		t.Fatalf("week total: expected 35050, got %d", view.Total.Cents)
	}
}

func TestBuildReportSummaryContents(t *testing.T) {
	ctx := context.Background()
	ledger := storage.NewMemoryLedger()
	b := NewBuilder(ledger)

	ledger.Insert(ctx, 42, core.Money{Cents: 25050}, "Food")
	ledger.Insert(ctx, 42, core.Money{Cents: 10000}, "Taxi")

	summary, view, err := b.Build(ctx, 42, core.WindowWeek)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, want := range []string{"250.50", "Food", "100.00", "Taxi", "Total: 350.50"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
	if view.ByCategory["Food"].Cents != 25050 || view.ByCategory["Taxi"].Cents != 10000 {
		t.Fatalf("byCategory: %+v", view.ByCategory)
	}
}

func TestBuildReportOtherUserInvisible(t *testing.T) {
	ctx := context.Background()
	ledger := storage.NewMemoryLedger()
	b := NewBuilder(ledger)

	ledger.Insert(ctx, 7, core.Money{Cents: 100}, "Food")

	_, _, err := b.Build(ctx, 42, core.WindowMonth)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for other user, got %v", err)
	}
}
