package core

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyCategory = errors.New("empty category")

// ExpenseRecord is a single ledger entry. Immutable once created; removed
// only through a bulk delete of the owning user's records.
type ExpenseRecord struct {
	ID        int64
	UserID    int64
	Amount    Money
	Category  string
	CreatedAt time.Time // local wall clock, second precision
}

func (r ExpenseRecord) Validate() error {
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if len(r.Category) > 100 {
		return errors.New("category too long (max 100 characters)")
	}
	return nil
}

// Decorative prefixes the quick-reply category buttons carry. They are
// stripped before a label is stored so "🍔 Food" and "Food" land in the
// same bucket.
var categoryPrefixes = []string{
	"🍔 ", "🚕 ", "🛍️ ", "🎮 ",
}

// NormalizeCategory trims surrounding whitespace and any decorative button
// prefix from a category label. The result may be empty, which callers must
// reject.
func NormalizeCategory(label string) string {
	label = strings.TrimSpace(label)
	for _, p := range categoryPrefixes {
		label = strings.TrimPrefix(label, p)
	}
	return strings.TrimSpace(label)
}
