// Package bot routes inbound conversation events to handlers based on the
// user's session state and the event text.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"kassabot/internal/core"
	"kassabot/internal/ledger"
	"kassabot/internal/log"
	"kassabot/internal/metrics"
	"kassabot/internal/report"
	"kassabot/internal/session"
	"kassabot/internal/transport"
)

const (
	statsLimit   = 10
	historyLimit = 20
)

// Dispatcher advances per-user conversations. Events for the same user are
// handled strictly one at a time; different users proceed independently.
type Dispatcher struct {
	sessions session.Store
	ledger   ledger.Store
	reports  *report.Builder
	charts   report.ChartRenderer // nil disables chart delivery
	sender   transport.Sender
	logger   *log.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewDispatcher(sessions session.Store, store ledger.Store, reports *report.Builder, charts report.ChartRenderer, sender transport.Sender, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Dispatcher{
		sessions: sessions,
		ledger:   store,
		reports:  reports,
		charts:   charts,
		sender:   sender,
		logger:   logger.WithComponent("dispatcher"),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// userLock returns the serialization lock for one user, creating it on
// first use. Locks are never removed; one mutex per active user is cheap.
func (d *Dispatcher) userLock(userID int64) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		d.locks[userID] = l
	}
	return l
}

// HandleEvent processes one inbound event to completion, including any
// storage I/O, before another event for the same user may start. The
// returned error reports only delivery failures; validation and storage
// problems are already answered to the user.
func (d *Dispatcher) HandleEvent(ctx context.Context, ev transport.Event) error {
	lock := d.userLock(ev.UserID)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	outcome, err := d.handle(ctx, ev)
	metrics.ObserveEvent(outcome, time.Since(start))

	if err != nil {
		d.logger.ErrorContext(ctx, "Event handling failed",
			"user_id", ev.UserID, "error", err)
	}
	return err
}

func (d *Dispatcher) handle(ctx context.Context, ev transport.Event) (string, error) {
	text := strings.TrimSpace(ev.Text)
	sess := d.sessions.Get(ev.UserID)

	// Cancel applies in any state.
	if isCancel(text) {
		d.sessions.Clear(ev.UserID)
		msg := msgActionCancel
		if sess.State != session.StateIdle {
			msg = msgCancelled
		}
		return metrics.OutcomeOK, d.sendText(ctx, ev.UserID, msg, mainMenu)
	}

	switch sess.State {
	case session.StateAwaitingAmount:
		return d.handleAmount(ctx, ev.UserID, text)
	case session.StateAwaitingCategory:
		return d.handleCategory(ctx, ev.UserID, text, sess)
	default:
		return d.handleCommand(ctx, ev.UserID, text)
	}
}

func (d *Dispatcher) handleCommand(ctx context.Context, userID int64, text string) (string, error) {
	switch text {
	case "/start":
		return metrics.OutcomeOK, d.sendText(ctx, userID, msgGreeting, mainMenu)
	case ButtonAddExpense:
		d.sessions.Set(userID, session.Session{State: session.StateAwaitingAmount})
		return metrics.OutcomeOK, d.sendText(ctx, userID, msgAskAmount, nil)
	case ButtonStats:
		return d.showStats(ctx, userID)
	case ButtonHistory:
		return d.showHistory(ctx, userID)
	case ButtonClearAll:
		return d.clearAll(ctx, userID)
	case ButtonReport:
		return metrics.OutcomeOK, d.sendText(ctx, userID, msgAskPeriod, reportMenu)
	case ButtonToday:
		return d.buildReport(ctx, userID, core.WindowToday)
	case ButtonWeek:
		return d.buildReport(ctx, userID, core.WindowWeek)
	case ButtonMonth:
		return d.buildReport(ctx, userID, core.WindowMonth)
	default:
		return metrics.OutcomeOK, d.sendText(ctx, userID, msgUnknown, mainMenu)
	}
}

func (d *Dispatcher) handleAmount(ctx context.Context, userID int64, text string) (string, error) {
	cents, err := core.ParseDecimalToCents(text)
	if err != nil {
		// Re-prompt; the session stays in AwaitingAmount with an empty buffer.
		return metrics.OutcomeValidation, d.sendText(ctx, userID, msgBadAmount, nil)
	}

	d.sessions.Set(userID, session.Session{
		State:        session.StateAwaitingCategory,
		PendingCents: cents,
	})
	return metrics.OutcomeOK, d.sendText(ctx, userID, msgAskCategory, categoryMenu)
}

func (d *Dispatcher) handleCategory(ctx context.Context, userID int64, text string, sess session.Session) (string, error) {
	label := core.NormalizeCategory(text)
	if label == "" {
		return metrics.OutcomeValidation, d.sendText(ctx, userID, msgBadCategory, categoryMenu)
	}

	rec, err := d.ledger.Insert(ctx, userID, core.Money{Cents: sess.PendingCents}, label)
	if err != nil {
		// Back to Idle so the user retries the whole flow rather than
		// resuming a half-applied step.
		d.sessions.Clear(userID)
		d.logger.ErrorContext(ctx, "Ledger insert failed",
			"user_id", userID, "error", err)
		return metrics.OutcomeStorage, d.sendText(ctx, userID, msgStorageFailure, mainMenu)
	}

	d.sessions.Clear(userID)
	metrics.RecordCreated()
	d.logger.InfoContext(ctx, "Expense recorded",
		"user_id", userID, "id", rec.ID, "amount_cents", rec.Amount.Cents, "category", rec.Category)

	confirm := fmt.Sprintf("✅ Added: %s — %s", rec.Amount, rec.Category)
	return metrics.OutcomeOK, d.sendText(ctx, userID, confirm, mainMenu)
}

func (d *Dispatcher) showStats(ctx context.Context, userID int64) (string, error) {
	records, err := d.ledger.QueryAll(ctx, userID)
	if err != nil {
		d.logger.ErrorContext(ctx, "Ledger query failed", "user_id", userID, "error", err)
		return metrics.OutcomeStorage, d.sendText(ctx, userID, msgStorageFailure, mainMenu)
	}
	if len(records) == 0 {
		return metrics.OutcomeOK, d.sendText(ctx, userID, msgNoExpenses, mainMenu)
	}

	view := core.Aggregate(records)

	var sb strings.Builder
	sb.WriteString("📊 Recent expenses:\n\n")
	for i, rec := range records {
		if i >= statsLimit {
			break
		}
		fmt.Fprintf(&sb, "• %s — %s\n", rec.Amount, rec.Category)
	}
	fmt.Fprintf(&sb, "\n💰 Total: %s", view.Total)

	return metrics.OutcomeOK, d.sendText(ctx, userID, sb.String(), mainMenu)
}

func (d *Dispatcher) showHistory(ctx context.Context, userID int64) (string, error) {
	records, err := d.ledger.QueryAll(ctx, userID)
	if err != nil {
		d.logger.ErrorContext(ctx, "Ledger query failed", "user_id", userID, "error", err)
		return metrics.OutcomeStorage, d.sendText(ctx, userID, msgStorageFailure, mainMenu)
	}
	if len(records) == 0 {
		return metrics.OutcomeOK, d.sendText(ctx, userID, msgNoExpenses, mainMenu)
	}

	var sb strings.Builder
	sb.WriteString("🗓️ All expenses:\n\n")
	for i, rec := range records {
		if i >= historyLimit {
			break
		}
		fmt.Fprintf(&sb, "• %s — %s (%s)\n",
			rec.Amount, rec.Category, rec.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return metrics.OutcomeOK, d.sendText(ctx, userID, sb.String(), mainMenu)
}

func (d *Dispatcher) clearAll(ctx context.Context, userID int64) (string, error) {
	removed, err := d.ledger.DeleteAll(ctx, userID)
	if err != nil {
		d.logger.ErrorContext(ctx, "Ledger delete failed", "user_id", userID, "error", err)
		return metrics.OutcomeStorage, d.sendText(ctx, userID, msgStorageFailure, mainMenu)
	}

	metrics.RecordsDeleted(removed)
	d.logger.InfoContext(ctx, "Expenses cleared", "user_id", userID, "removed", removed)
	msg := fmt.Sprintf("%s (%d removed)", msgCleared, removed)
	return metrics.OutcomeOK, d.sendText(ctx, userID, msg, mainMenu)
}

func (d *Dispatcher) buildReport(ctx context.Context, userID int64, window core.Window) (string, error) {
	summary, view, err := d.reports.Build(ctx, userID, window)
	if errors.Is(err, report.ErrNoData) {
		return metrics.OutcomeOK, d.sendText(ctx, userID, msgNoReportData, mainMenu)
	}
	if err != nil {
		d.logger.ErrorContext(ctx, "Report build failed",
			"user_id", userID, "window", window.String(), "error", err)
		return metrics.OutcomeStorage, d.sendText(ctx, userID, msgStorageFailure, mainMenu)
	}

	metrics.ReportBuilt(window.String())
	if err := d.sendText(ctx, userID, summary, mainMenu); err != nil {
		return metrics.OutcomeOK, err
	}
	return metrics.OutcomeOK, d.sendCharts(ctx, userID, view)
}

// sendCharts hands the aggregate series to the charting collaborator and
// forwards the images. The summary already reached the user, so a
// rendering failure downgrades to a notice instead of failing the event.
func (d *Dispatcher) sendCharts(ctx context.Context, userID int64, view core.AggregateView) error {
	if d.charts == nil {
		return nil
	}

	pie, err := d.charts.CategoryPie(ctx, view)
	if err != nil {
		d.logger.WarnContext(ctx, "Pie chart rendering failed", "user_id", userID, "error", err)
		return d.sendText(ctx, userID, msgChartFailure, nil)
	}
	trend, err := d.charts.DailyTrend(ctx, view)
	if err != nil {
		d.logger.WarnContext(ctx, "Trend chart rendering failed", "user_id", userID, "error", err)
		return d.sendText(ctx, userID, msgChartFailure, nil)
	}

	if err := d.sender.SendImage(ctx, userID, "categories.png", pie); err != nil {
		return fmt.Errorf("send pie chart: %w", err)
	}
	if err := d.sender.SendImage(ctx, userID, "daily.png", trend); err != nil {
		return fmt.Errorf("send trend chart: %w", err)
	}
	return nil
}

func (d *Dispatcher) sendText(ctx context.Context, userID int64, text string, suggestions []string) error {
	if err := d.sender.SendText(ctx, userID, text, suggestions); err != nil {
		return fmt.Errorf("send text: %w", err)
	}
	return nil
}

func isCancel(text string) bool {
	return text == ButtonCancel || strings.EqualFold(text, "cancel") || strings.EqualFold(text, "/cancel")
}
