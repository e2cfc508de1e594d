package core

import (
	"testing"
	"time"
)

func TestWindowStart(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 45, 10, 0, time.Local)

	today := WindowToday.Start(now)
	if !today.Equal(time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("today start: got %v", today)
	}
	if got := WindowWeek.Start(now); !got.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("week start: got %v", got)
	}
	if got := WindowMonth.Start(now); !got.Equal(now.AddDate(0, 0, -30)) {
		t.Fatalf("month start: got %v", got)
	}
}

func TestWindowMidnightBoundary(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local)
	justBeforeMidnight := time.Date(2026, 8, 30, 23, 59, 59, 0, time.Local)

	// Excluded from "today", included in "last 7 days".
	if !justBeforeMidnight.Before(WindowToday.Start(now)) {
		t.Fatalf("23:59:59 yesterday should be before today's start")
	}
	if justBeforeMidnight.Before(WindowWeek.Start(now)) {
		t.Fatalf("23:59:59 yesterday should be inside the 7-day window")
	}
}

func TestWindowString(t *testing.T) {
	cases := map[Window]string{
		WindowToday: "today",
		WindowWeek:  "last 7 days",
		WindowMonth: "last 30 days",
	}
	for w, want := range cases {
		if got := w.String(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}
