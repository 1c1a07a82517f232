package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"chemquest/internal/domain"
	"chemquest/internal/progression"
)

// reward is what a finished game or battle adds to a player.
type reward struct {
	XP         int
	Coins      int
	Gems       int
	BestStreak int
	Game       bool
	BossWin    bool
}

// rewarder applies rewards to player profiles and the global leaderboard.
// The player save is the commit point; the leaderboard write is best effort.
type rewarder struct {
	players     PlayerRepository
	leaderboard Leaderboard
	locks       *KeyedMutex
	now         func() time.Time
}

func (r *rewarder) apply(ctx context.Context, userID, displayName string, rw reward) (domain.Player, progression.RankUp, error) {
	unlock := r.locks.Lock("player:" + userID)
	defer unlock()

	now := r.now()
	player, err := loadPlayer(ctx, r.players, userID, displayName, now)
	if err != nil {
		return domain.Player{}, progression.RankUp{}, fmt.Errorf("load player: %w", err)
	}

	previousXP := player.XP
	player.XP += rw.XP
	player.Coins += rw.Coins
	player.Gems += rw.Gems
	player.BestStreak = max(player.BestStreak, rw.BestStreak)
	if rw.Game {
		player.GamesPlayed++
	}
	if rw.BossWin {
		player.BossWins++
	}
	player.UpdatedAt = now

	if err := r.players.SavePlayer(ctx, player); err != nil {
		return domain.Player{}, progression.RankUp{}, fmt.Errorf("save player: %w", err)
	}
	// The leaderboard holds absolute XP, so the next credit repairs a missed write.
	if err := r.leaderboard.SetScore(ctx, player.ID, player.DisplayName, player.XP); err != nil {
		log.Printf("update leaderboard for %s: %v", player.ID, err)
	}
	return player, progression.CheckRankUp(previousXP, player.XP), nil
}
