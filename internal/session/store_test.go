package session

import (
	"testing"
	"time"
)

func TestMemoryStoreDefaultsToIdle(t *testing.T) {
	store := NewMemoryStore(0)
	got := store.Get(42)
	if got.State != StateIdle || got.PendingCents != 0 {
		t.Fatalf("expected idle default, got %+v", got)
	}
}

func TestMemoryStoreSetGetClear(t *testing.T) {
	store := NewMemoryStore(0)

	store.Set(42, Session{State: StateAwaitingCategory, PendingCents: 25050})
	got := store.Get(42)
	if got.State != StateAwaitingCategory || got.PendingCents != 25050 {
		t.Fatalf("got %+v", got)
	}

	// Other users are independent.
	if other := store.Get(7); other.State != StateIdle {
		t.Fatalf("user 7 should be idle, got %+v", other)
	}

	store.Clear(42)
	if got := store.Get(42); got.State != StateIdle {
		t.Fatalf("expected idle after clear, got %+v", got)
	}
	if store.Size() != 0 {
		t.Fatalf("expected empty store, got size %d", store.Size())
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)

	store.Set(42, Session{State: StateAwaitingAmount})
	if got := store.Get(42); got.State != StateAwaitingAmount {
		t.Fatalf("fresh session should survive, got %+v", got)
	}

	time.Sleep(20 * time.Millisecond)
	if got := store.Get(42); got.State != StateIdle {
		t.Fatalf("expired session should read idle, got %+v", got)
	}
}

func TestMemoryStoreCleanExpired(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	store.Set(1, Session{State: StateAwaitingAmount})
	store.Set(2, Session{State: StateAwaitingCategory, PendingCents: 100})

	time.Sleep(20 * time.Millisecond)
	store.Set(3, Session{State: StateAwaitingAmount})

	if removed := store.CleanExpired(); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if store.Size() != 1 {
		t.Fatalf("expected 1 remaining, got %d", store.Size())
	}

	// No TTL means no eviction.
	forever := NewMemoryStore(0)
	forever.Set(1, Session{State: StateAwaitingAmount})
	if removed := forever.CleanExpired(); removed != 0 {
		t.Fatalf("expected no eviction without TTL, got %d", removed)
	}
}
