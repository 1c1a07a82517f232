package app

import (
	"context"

	"chemquest/internal/combat"
	"chemquest/internal/domain"
)

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// RoomRepository abstracts how multiplayer rooms are stored (in-memory, Redis, etc).
type RoomRepository interface {
	GetOrCreate(quizID string) *Room
	Get(quizID string) (*Room, bool)
	DeleteIfEmpty(quizID string)
}

// StateStore keeps short-lived session state by id. Get returns domain.ErrNotFound for unknown ids.
type StateStore[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	Put(ctx context.Context, id string, value T) error
	Delete(ctx context.Context, id string) error
}

// PlayerRepository persists player profiles. GetPlayer returns domain.ErrNotFound for new users.
type PlayerRepository interface {
	GetPlayer(ctx context.Context, userID string) (domain.Player, error)
	SavePlayer(ctx context.Context, player domain.Player) error
}

// AttemptRepository persists boss attempt summaries.
type AttemptRepository interface {
	SaveAttempt(ctx context.Context, attempt domain.BossAttempt) error
	ListAttempts(ctx context.Context, userID string, limit int) ([]domain.BossAttempt, error)
}

// ProgressRepository is implemented by stores that hold both players and attempts.
type ProgressRepository interface {
	PlayerRepository
	AttemptRepository
}

// Leaderboard ranks players by total XP.
type Leaderboard interface {
	SetScore(ctx context.Context, userID, displayName string, score int) error
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// BossCatalog resolves boss definitions.
type BossCatalog interface {
	Get(id string) (combat.Boss, bool)
	List() []combat.Boss
}
