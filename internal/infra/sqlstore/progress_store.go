// Package sqlstore keeps players and boss attempts in a SQL database through bun.
// The same models serve the Postgres and sqlite dialects.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"chemquest/internal/domain"
)

type playerModel struct {
	bun.BaseModel `bun:"table:players"`

	ID          string    `bun:"id,pk"`
	DisplayName string    `bun:"display_name"`
	XP          int       `bun:"xp"`
	Coins       int       `bun:"coins"`
	Gems        int       `bun:"gems"`
	BestStreak  int       `bun:"best_streak"`
	GamesPlayed int       `bun:"games_played"`
	BossWins    int       `bun:"boss_wins"`
	CreatedAt   time.Time `bun:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at"`
}

type attemptModel struct {
	bun.BaseModel `bun:"table:boss_attempts"`

	ID          string    `bun:"id,pk"`
	UserID      string    `bun:"user_id"`
	BossID      string    `bun:"boss_id"`
	DamageDealt int       `bun:"damage_dealt"`
	Victory     bool      `bun:"victory"`
	Turns       int       `bun:"turns"`
	XP          int       `bun:"xp"`
	Coins       int       `bun:"coins"`
	Gems        int       `bun:"gems"`
	CreatedAt   time.Time `bun:"created_at"`
}

// ProgressStore persists players and boss attempts through bun.
// Attempts are keyed by id, so saving one twice keeps the first row.
type ProgressStore struct {
	db *bun.DB
}

func NewProgressStore(db *bun.DB) *ProgressStore {
	return &ProgressStore{db: db}
}

func (s *ProgressStore) GetPlayer(ctx context.Context, userID string) (domain.Player, error) {
	var m playerModel
	err := s.db.NewSelect().Model(&m).Where("id = ?", userID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Player{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Player{}, fmt.Errorf("select player: %w", err)
	}
	return domain.Player{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		XP:          m.XP,
		Coins:       m.Coins,
		Gems:        m.Gems,
		BestStreak:  m.BestStreak,
		GamesPlayed: m.GamesPlayed,
		BossWins:    m.BossWins,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func (s *ProgressStore) SavePlayer(ctx context.Context, p domain.Player) error {
	m := playerModel{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		XP:          p.XP,
		Coins:       p.Coins,
		Gems:        p.Gems,
		BestStreak:  p.BestStreak,
		GamesPlayed: p.GamesPlayed,
		BossWins:    p.BossWins,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	_, err := s.db.NewInsert().Model(&m).
		On("CONFLICT (id) DO UPDATE").
		Set("display_name = EXCLUDED.display_name").
		Set("xp = EXCLUDED.xp").
		Set("coins = EXCLUDED.coins").
		Set("gems = EXCLUDED.gems").
		Set("best_streak = EXCLUDED.best_streak").
		Set("games_played = EXCLUDED.games_played").
		Set("boss_wins = EXCLUDED.boss_wins").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert player %s: %w", p.ID, err)
	}
	return nil
}

func (s *ProgressStore) SaveAttempt(ctx context.Context, a domain.BossAttempt) error {
	m := attemptModel{
		ID:          a.ID,
		UserID:      a.UserID,
		BossID:      a.BossID,
		DamageDealt: a.DamageDealt,
		Victory:     a.Victory,
		Turns:       a.Turns,
		XP:          a.XP,
		Coins:       a.Coins,
		Gems:        a.Gems,
		CreatedAt:   a.CreatedAt,
	}
	if _, err := s.db.NewInsert().Model(&m).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
		return fmt.Errorf("insert attempt %s: %w", a.ID, err)
	}
	return nil
}

func (s *ProgressStore) ListAttempts(ctx context.Context, userID string, limit int) ([]domain.BossAttempt, error) {
	var rows []attemptModel
	q := s.db.NewSelect().Model(&rows).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("select attempts: %w", err)
	}
	out := make([]domain.BossAttempt, len(rows))
	for i, r := range rows {
		out[i] = domain.BossAttempt{
			ID:          r.ID,
			UserID:      r.UserID,
			BossID:      r.BossID,
			DamageDealt: r.DamageDealt,
			Victory:     r.Victory,
			Turns:       r.Turns,
			XP:          r.XP,
			Coins:       r.Coins,
			Gems:        r.Gems,
			CreatedAt:   r.CreatedAt,
		}
	}
	return out, nil
}

// Top ranks players by XP straight from the players table.
func (s *ProgressStore) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []playerModel
	err := s.db.NewSelect().Model(&rows).
		Column("id", "display_name", "xp").
		Order("xp DESC", "display_name ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select leaderboard: %w", err)
	}
	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, r := range rows {
		entries[i] = domain.LeaderboardEntry{UserID: r.ID, DisplayName: r.DisplayName, Score: r.XP}
	}
	return entries, nil
}

// CreateTables creates the tables and the attempt index when missing. Postgres uses migrations instead.
func CreateTables(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{(*playerModel)(nil), (*attemptModel)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	_, err := db.NewCreateIndex().Model((*attemptModel)(nil)).
		Index("boss_attempts_user_idx").
		IfNotExists().
		Column("user_id", "created_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create attempt index: %w", err)
	}
	return nil
}
