package memory

import (
	"context"
	"sort"
	"sync"

	"chemquest/internal/domain"
)

// Leaderboard ranks players by total XP in memory.
type Leaderboard struct {
	mu      sync.RWMutex
	entries map[string]domain.LeaderboardEntry
}

func NewLeaderboard() *Leaderboard {
	return &Leaderboard{entries: make(map[string]domain.LeaderboardEntry)}
}

func (l *Leaderboard) SetScore(_ context.Context, userID, displayName string, score int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[userID] = domain.LeaderboardEntry{UserID: userID, DisplayName: displayName, Score: score}
	return nil
}

// Top returns the highest scores first, ties broken by name.
func (l *Leaderboard) Top(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	l.mu.RLock()
	entries := make([]domain.LeaderboardEntry, 0, len(l.entries))
	for _, e := range l.entries {
		entries = append(entries, e)
	}
	l.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
