package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"chemquest/internal/domain"
	"chemquest/internal/progression"
)

// recentAttempts is how many boss attempts a profile carries.
const recentAttempts = 10

// PlayerProfile is a player with their rank and latest boss attempts.
type PlayerProfile struct {
	Player   domain.Player        `json:"player"`
	Rank     progression.RankInfo `json:"rank"`
	Attempts []domain.BossAttempt `json:"attempts"`
}

// ReportWriter renders a profile as a document.
type ReportWriter func(w io.Writer, profile PlayerProfile) error

// ProgressService answers read-side questions about players.
type ProgressService struct {
	progress    ProgressRepository
	leaderboard Leaderboard
	report      ReportWriter
}

func NewProgressService(progress ProgressRepository, leaderboard Leaderboard, report ReportWriter) *ProgressService {
	return &ProgressService{progress: progress, leaderboard: leaderboard, report: report}
}

// Profile loads a player with rank info and recent attempts.
func (s *ProgressService) Profile(ctx context.Context, userID string) (PlayerProfile, error) {
	if userID == "" {
		return PlayerProfile{}, fmt.Errorf("%w: player id is required", domain.ErrInvalidInput)
	}
	player, err := s.progress.GetPlayer(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return PlayerProfile{}, err
		}
		return PlayerProfile{}, fmt.Errorf("load player: %w", err)
	}
	attempts, err := s.progress.ListAttempts(ctx, userID, recentAttempts)
	if err != nil {
		return PlayerProfile{}, fmt.Errorf("list attempts: %w", err)
	}
	if attempts == nil {
		attempts = []domain.BossAttempt{}
	}
	return PlayerProfile{
		Player:   player,
		Rank:     progression.GetRankInfo(player.XP),
		Attempts: attempts,
	}, nil
}

// Leaderboard returns the top players by XP.
func (s *ProgressService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	entries, err := s.leaderboard.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return entries, nil
}

// Report writes the progress report of a player to w.
func (s *ProgressService) Report(ctx context.Context, userID string, w io.Writer) error {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	return s.report(w, profile)
}
