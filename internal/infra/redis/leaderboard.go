package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"chemquest/internal/domain"
)

const (
	leaderboardKey = "leaderboard:xp"
	namesKey       = "leaderboard:names"
)

// Leaderboard ranks players by XP in a sorted set, with display names in a hash.
type Leaderboard struct {
	client *redis.Client
}

func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client}
}

func (l *Leaderboard) SetScore(ctx context.Context, userID, displayName string, score int) error {
	pipe := l.client.TxPipeline()
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{Score: float64(score), Member: userID})
	pipe.HSet(ctx, namesKey, userID, displayName)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("leaderboard set %s: %w", userID, err)
	}
	return nil
}

func (l *Leaderboard) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	scores, err := l.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard range: %w", err)
	}
	if len(scores) == 0 {
		return []domain.LeaderboardEntry{}, nil
	}

	ids := make([]string, len(scores))
	for i, z := range scores {
		ids[i] = z.Member.(string)
	}
	names, err := l.client.HMGet(ctx, namesKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard names: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, len(scores))
	for i, z := range scores {
		name, _ := names[i].(string)
		entries[i] = domain.LeaderboardEntry{UserID: ids[i], DisplayName: name, Score: int(z.Score)}
	}
	return entries, nil
}
