package core

import "time"

// Window is a caller-selected report range anchored at "now".
type Window int

const (
	WindowToday Window = iota // local midnight to now
	WindowWeek                // trailing 7 days
	WindowMonth               // trailing 30 days
)

func (w Window) String() string {
	switch w {
	case WindowToday:
		return "today"
	case WindowWeek:
		return "last 7 days"
	case WindowMonth:
		return "last 30 days"
	default:
		return "unknown"
	}
}

// Start returns the inclusive lower bound of the window relative to now.
// WindowToday snaps to local midnight; the trailing windows are plain
// offsets, so a record from yesterday 23:59:59 is outside "today" but
// inside "last 7 days".
func (w Window) Start(now time.Time) time.Time {
	switch w {
	case WindowToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case WindowWeek:
		return now.AddDate(0, 0, -7)
	case WindowMonth:
		return now.AddDate(0, 0, -30)
	default:
		return now
	}
}
