package core

import (
	"testing"
	"time"
)

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Food", "Food"},
		{"🍔 Food", "Food"},
		{"🚕 Taxi", "Taxi"},
		{"🛍️ Shopping", "Shopping"},
		{"🎮 Fun", "Fun"},
		{"  Food  ", "Food"},
		{"🍔  Food", "Food"}, // prefix plus extra space
		{"🍔 ", ""},
		{"   ", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeCategory(tc.in); got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestExpenseRecordValidate(t *testing.T) {
	good := ExpenseRecord{
		UserID:    42,
		Amount:    Money{Cents: 25050},
		Category:  "Food",
		CreatedAt: time.Now(),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []ExpenseRecord{
		{UserID: 42, Amount: Money{Cents: 0}, Category: "Food"},
		{UserID: 42, Amount: Money{Cents: -100}, Category: "Food"},
		{UserID: 42, Amount: Money{Cents: 100}, Category: ""},
		{UserID: 42, Amount: Money{Cents: 100}, Category: "   "},
	}
	for i, bad := range bads {
		if err := bad.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
