package core

import (
	"testing"
	"time"
)

func rec(cents int64, category string, at time.Time) ExpenseRecord {
	return ExpenseRecord{Amount: Money{Cents: cents}, Category: category, CreatedAt: at}
}

func TestAggregateEmpty(t *testing.T) {
	view := Aggregate(nil)
	if !view.Empty() {
		t.Fatalf("expected empty view, got %+v", view)
	}
	if view.Total.Cents != 0 || len(view.ByCategory) != 0 || len(view.ByDate) != 0 {
		t.Fatalf("expected zeroed view, got %+v", view)
	}
}

func TestAggregateSameCategorySameDate(t *testing.T) {
	day := time.Date(2026, 8, 30, 14, 0, 0, 0, time.Local)
	view := Aggregate([]ExpenseRecord{
		rec(10000, "Taxi", day),
		rec(20000, "Taxi", day.Add(2*time.Hour)),
	})

	if view.Total.Cents != 30000 {
		t.Fatalf("total: expected 30000, got %d", view.Total.Cents)
	}
	if got := view.ByCategory["Taxi"].Cents; got != 30000 {
		t.Fatalf("byCategory[Taxi]: expected 30000, got %d", got)
	}
	if len(view.ByDate) != 1 {
		t.Fatalf("expected one date bucket, got %d", len(view.ByDate))
	}
	if view.ByDate[0].Date != "2026-08-30" || view.ByDate[0].Amount.Cents != 30000 {
		t.Fatalf("byDate: got %+v", view.ByDate[0])
	}
}

func TestAggregatePartitionConsistency(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 30, 0, 0, time.Local)
	var records []ExpenseRecord
	categories := []string{"Food", "Taxi", "Shopping", "Fun", "Food"}
	for i := 0; i < 50; i++ {
		records = append(records, rec(int64(i+1)*7, categories[i%len(categories)], base.AddDate(0, 0, i%11)))
	}

	view := Aggregate(records)

	var byCat, byDate int64
	for _, m := range view.ByCategory {
		byCat += m.Cents
	}
	for _, d := range view.ByDate {
		byDate += d.Amount.Cents
	}
	if byCat != view.Total.Cents || byDate != view.Total.Cents {
		t.Fatalf("partition mismatch: total=%d byCategory=%d byDate=%d",
			view.Total.Cents, byCat, byDate)
	}
}

func TestAggregateByDateChronological(t *testing.T) {
	view := Aggregate([]ExpenseRecord{
		rec(100, "Food", time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)),
		rec(200, "Food", time.Date(2026, 8, 1, 12, 0, 0, 0, time.Local)),
		rec(300, "Food", time.Date(2026, 8, 15, 12, 0, 0, 0, time.Local)),
	})

	want := []string{"2026-08-01", "2026-08-15", "2026-08-30"}
	if len(view.ByDate) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(view.ByDate))
	}
	for i, w := range want {
		if view.ByDate[i].Date != w {
			t.Fatalf("bucket %d: expected %s, got %s", i, w, view.ByDate[i].Date)
		}
	}
}
