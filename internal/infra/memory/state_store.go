package memory

import (
	"context"
	"sync"
	"time"

	"chemquest/internal/domain"
)

// StateStore keeps short-lived game or battle state in process memory.
// Entries older than ttl are dropped on access, and Put sweeps the rest at most once per ttl.
type StateStore[T any] struct {
	ttl   time.Duration
	clock func() time.Time

	mu        sync.Mutex
	entries   map[string]stateEntry[T]
	lastSweep time.Time
}

type stateEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func NewStateStore[T any](ttl time.Duration) *StateStore[T] {
	return &StateStore[T]{
		ttl:     ttl,
		clock:   time.Now,
		entries: make(map[string]stateEntry[T]),
	}
}

func (s *StateStore[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	if s.ttl > 0 && !entry.expiresAt.After(s.clock()) {
		delete(s.entries, id)
		var zero T
		return zero, domain.ErrNotFound
	}
	return entry.value, nil
}

func (s *StateStore[T]) Put(_ context.Context, id string, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	if s.ttl > 0 && now.Sub(s.lastSweep) >= s.ttl {
		s.sweepLocked(now)
	}
	s.entries[id] = stateEntry[T]{value: value, expiresAt: now.Add(s.ttl)}
	return nil
}

// size reports how many entries are held, expired or not.
func (s *StateStore[T]) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *StateStore[T]) sweepLocked(now time.Time) {
	for id, entry := range s.entries {
		if !entry.expiresAt.After(now) {
			delete(s.entries, id)
		}
	}
	s.lastSweep = now
}

func (s *StateStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
