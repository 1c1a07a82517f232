package memory

import (
	"context"
	"sort"
	"sync"

	"chemquest/internal/domain"
)

// ProgressStore keeps players and boss attempts in memory.
type ProgressStore struct {
	mu       sync.RWMutex
	players  map[string]domain.Player
	attempts map[string][]domain.BossAttempt
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{
		players:  make(map[string]domain.Player),
		attempts: make(map[string][]domain.BossAttempt),
	}
}

func (s *ProgressStore) GetPlayer(_ context.Context, userID string) (domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[userID]
	if !ok {
		return domain.Player{}, domain.ErrNotFound
	}
	return p, nil
}

func (s *ProgressStore) SavePlayer(_ context.Context, p domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.ID] = p
	return nil
}

// SaveAttempt keeps the first attempt stored under an id.
func (s *ProgressStore) SaveAttempt(_ context.Context, a domain.BossAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.attempts[a.UserID] {
		if existing.ID == a.ID {
			return nil
		}
	}
	s.attempts[a.UserID] = append(s.attempts[a.UserID], a)
	return nil
}

// ListAttempts returns the newest attempts first.
func (s *ProgressStore) ListAttempts(_ context.Context, userID string, limit int) ([]domain.BossAttempt, error) {
	s.mu.RLock()
	all := append([]domain.BossAttempt(nil), s.attempts[userID]...)
	s.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
