package core

import "sort"

// DateKey is the layout used for calendar-date bucketing. Lexicographic
// order of formatted keys equals chronological order.
const DateKey = "2006-01-02"

// DateAmount is one point of the per-date series.
type DateAmount struct {
	Date   string // DateKey layout
	Amount Money
}

// AggregateView is the computed breakdown for a set of ledger records.
// It is derived per request and never persisted.
type AggregateView struct {
	Total      Money
	ByCategory map[string]Money
	ByDate     []DateAmount // chronological
}

// Empty reports whether the view was computed from zero records.
func (v AggregateView) Empty() bool {
	return v.Total.Cents == 0 && len(v.ByCategory) == 0 && len(v.ByDate) == 0
}

// Aggregate sums a record set into a total, a per-category map and a
// chronologically ordered per-date series. Amounts accumulate as integer
// cents, so many small entries cannot drift. An empty input yields an
// empty view.
func Aggregate(records []ExpenseRecord) AggregateView {
	view := AggregateView{ByCategory: make(map[string]Money)}
	if len(records) == 0 {
		return view
	}

	byDate := make(map[string]Money)
	for _, r := range records {
		view.Total = view.Total.Add(r.Amount)
		view.ByCategory[r.Category] = view.ByCategory[r.Category].Add(r.Amount)
		key := r.CreatedAt.Format(DateKey)
		byDate[key] = byDate[key].Add(r.Amount)
	}

	view.ByDate = make([]DateAmount, 0, len(byDate))
	for date, amount := range byDate {
		view.ByDate = append(view.ByDate, DateAmount{Date: date, Amount: amount})
	}
	sort.Slice(view.ByDate, func(i, j int) bool {
		return view.ByDate[i].Date < view.ByDate[j].Date
	})

	return view
}
