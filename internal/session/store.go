// Package session tracks per-user conversation state between events.
package session

import (
	"sync"
	"time"
)

// State is the conversation position for one user. Idle is both the
// initial state and the terminal state of every completed or cancelled
// flow.
type State int

const (
	StateIdle State = iota
	StateAwaitingAmount
	StateAwaitingCategory
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingAmount:
		return "awaiting_amount"
	case StateAwaitingCategory:
		return "awaiting_category"
	default:
		return "unknown"
	}
}

// Session is the state tag plus the partially collected input of an
// in-flight add-expense dialogue.
type Session struct {
	State        State
	PendingCents int64 // amount collected in AwaitingAmount, 0 otherwise
}

// Store maps user ids to sessions. Absent users read as Idle.
type Store interface {
	Get(userID int64) Session
	Set(userID int64, s Session)
	Clear(userID int64)
}

type entry struct {
	session   Session
	touchedAt time.Time
}

// MemoryStore is a mutex-guarded in-process Store. A non-zero ttl makes
// abandoned mid-flow sessions read as Idle again after the given
// inactivity interval; expired entries are dropped lazily on Get and in
// bulk by CleanExpired.
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[int64]entry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		items: make(map[int64]entry),
	}
}

func (s *MemoryStore) Get(userID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[userID]
	if !ok {
		return Session{State: StateIdle}
	}
	if s.expired(e, time.Now()) {
		delete(s.items, userID)
		return Session{State: StateIdle}
	}
	return e.session
}

func (s *MemoryStore) Set(userID int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[userID] = entry{session: sess, touchedAt: time.Now()}
}

func (s *MemoryStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, userID)
}

// CleanExpired drops all expired sessions and returns how many were
// removed. A no-op when no TTL is configured.
func (s *MemoryStore) CleanExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		return 0
	}
	now := time.Now()
	removed := 0
	for userID, e := range s.items {
		if s.expired(e, now) {
			delete(s.items, userID)
			removed++
		}
	}
	return removed
}

// Size returns the number of live sessions, expired or not.
func (s *MemoryStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *MemoryStore) expired(e entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.touchedAt) > s.ttl
}
