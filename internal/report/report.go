// Package report turns ledger rows into windowed summaries and the numeric
// series handed to the charting collaborator.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kassabot/internal/core"
	"kassabot/internal/ledger"
)

// ErrNoData marks a window with no matching records. Not a failure: the
// caller renders a "no data" reply and skips charting.
var ErrNoData = errors.New("no records in window")

// ChartRenderer converts an aggregate view into opaque image bytes. The
// core never inspects the images; rendering lives with an external
// collaborator.
type ChartRenderer interface {
	// CategoryPie renders the per-category share breakdown.
	CategoryPie(ctx context.Context, view core.AggregateView) ([]byte, error)
	// DailyTrend renders the chronological per-date series.
	DailyTrend(ctx context.Context, view core.AggregateView) ([]byte, error)
}

// Builder orchestrates the ledger and the aggregator for report requests.
type Builder struct {
	ledger ledger.Store
	now    func() time.Time
}

func NewBuilder(store ledger.Store) *Builder {
	return &Builder{ledger: store, now: time.Now}
}

// Build fetches the user's records inside the window and returns the
// rendered summary plus the aggregate view for charting. Returns ErrNoData
// when the window is empty.
func (b *Builder) Build(ctx context.Context, userID int64, window core.Window) (string, core.AggregateView, error) {
	since := window.Start(b.now())
	records, err := b.ledger.QueryRange(ctx, userID, since)
	if err != nil {
		return "", core.AggregateView{}, fmt.Errorf("query range: %w", err)
	}
	if len(records) == 0 {
		return "", core.AggregateView{}, ErrNoData
	}

	view := core.Aggregate(records)

	var sb strings.Builder
	fmt.Fprintf(&sb, "🧾 Report (%s):\n\n", window)
	for _, rec := range records {
		fmt.Fprintf(&sb, "• %s — %s (%s)\n", rec.Amount, rec.Category, rec.CreatedAt.Format(core.DateKey))
	}
	fmt.Fprintf(&sb, "\n💰 Total: %s", view.Total)

	return sb.String(), view, nil
}
