package app_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chemquest/internal/app"
	"chemquest/internal/catalog"
	"chemquest/internal/combat"
	"chemquest/internal/domain"
	"chemquest/internal/infra/memory"
)

// slowPlayers widens the read-modify-write window on player profiles.
type slowPlayers struct {
	*memory.ProgressStore
	delay time.Duration
}

func (s slowPlayers) GetPlayer(ctx context.Context, userID string) (domain.Player, error) {
	p, err := s.ProgressStore.GetPlayer(ctx, userID)
	time.Sleep(s.delay)
	return p, err
}

// flakyPlayers fails as many player saves as failures holds.
type flakyPlayers struct {
	*memory.ProgressStore
	failures atomic.Int32
}

func (s *flakyPlayers) SavePlayer(ctx context.Context, p domain.Player) error {
	if s.failures.Add(-1) >= 0 {
		return errors.New("connection reset")
	}
	return s.ProgressStore.SavePlayer(ctx, p)
}

// flakyLeaderboard fails the first score update.
type flakyLeaderboard struct {
	*memory.Leaderboard
	failed atomic.Bool
}

func (l *flakyLeaderboard) SetScore(ctx context.Context, userID, displayName string, score int) error {
	if l.failed.CompareAndSwap(false, true) {
		return errors.New("leaderboard unavailable")
	}
	return l.Leaderboard.SetScore(ctx, userID, displayName, score)
}

func slimeCatalog() *catalog.Catalog {
	return catalog.New([]combat.Boss{{ID: "slime", Name: "Slime", Element: "H", Level: 1, BaseHP: 100, QuizID: "quiz-1"}})
}

func newCampaign(progress app.ProgressRepository, lb app.Leaderboard, opts ...app.CampaignOption) *app.CampaignService {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	opts = append([]app.CampaignOption{app.WithCampaignSeed(3), app.WithCampaignClock(func() time.Time { return now })}, opts...)
	return app.NewCampaignService(slimeCatalog(), testQuizzes(), memory.NewStateStore[domain.BattleSession](time.Hour), progress, lb, opts...)
}

func newSoloGame(players app.PlayerRepository, lb app.Leaderboard, opts ...app.GameOption) *app.GameService {
	opts = append([]app.GameOption{app.WithGameSeed(3)}, opts...)
	return app.NewGameService(testQuizzes(), memory.NewStateStore[domain.GameSession](time.Hour), players, lb, opts...)
}

// winSlimeBattle plays the slime down in two correct answers.
func winSlimeBattle(t *testing.T, service *app.CampaignService, userID string) string {
	t.Helper()
	ctx := context.Background()
	view, err := service.StartBattle(ctx, app.StartBattleRequest{UserID: userID, BossID: "slime"})
	if err != nil {
		t.Fatalf("start battle: %v", err)
	}
	right := domain.AnswerSubmission{QuestionID: "q1", OptionID: "o2", TimeTaken: 5}
	for i := range 2 {
		if _, err := service.TakeTurn(ctx, view.BattleID, right); err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
	}
	return view.BattleID
}

// playOneQuestion answers the single question of quiz-1 correctly.
func playOneQuestion(t *testing.T, service *app.GameService, userID string) string {
	t.Helper()
	ctx := context.Background()
	game, err := service.StartGame(ctx, app.StartGameRequest{UserID: userID, QuizID: "quiz-1"})
	if err != nil {
		t.Fatalf("start game: %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, game.ID, domain.AnswerSubmission{QuestionID: "q1", OptionID: "o2", TimeTaken: 5}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	return game.ID
}

func TestSharedLocksSerializeCreditsAcrossServices(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProgressStore()
	players := slowPlayers{ProgressStore: store, delay: 30 * time.Millisecond}
	lb := memory.NewLeaderboard()
	locks := app.NewKeyedMutex()

	games := newSoloGame(players, lb, app.WithGameLocks(locks))
	campaign := newCampaign(players, lb, app.WithCampaignLocks(locks))

	gameID := playOneQuestion(t, games, "u1")
	battleID := winSlimeBattle(t, campaign, "u1")

	var (
		wg       sync.WaitGroup
		gameXP   int
		battleXP int
		gameErr  error
		fightErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		s, err := games.FinishGame(ctx, gameID)
		gameXP, gameErr = s.XPEarned, err
	}()
	go func() {
		defer wg.Done()
		s, err := campaign.FinishBattle(ctx, battleID)
		battleXP, fightErr = s.Attempt.XP, err
	}()
	wg.Wait()
	if gameErr != nil || fightErr != nil {
		t.Fatalf("finish: game=%v battle=%v", gameErr, fightErr)
	}

	player, err := store.GetPlayer(ctx, "u1")
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	// 11 from the game, 109 from the battle.
	if player.XP != gameXP+battleXP || player.XP != 120 {
		t.Fatalf("expected %d xp, stored %d", gameXP+battleXP, player.XP)
	}
	if player.GamesPlayed != 1 || player.BossWins != 1 {
		t.Fatalf("unexpected player %+v", player)
	}
}

func TestLeaderboardFailureDoesNotBlockBattleCredit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProgressStore()
	lb := &flakyLeaderboard{Leaderboard: memory.NewLeaderboard()}
	campaign := newCampaign(store, lb)

	battleID := winSlimeBattle(t, campaign, "u1")
	if _, err := campaign.FinishBattle(ctx, battleID); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, err := campaign.FinishBattle(ctx, battleID); !errors.Is(err, domain.ErrBattleFinished) {
		t.Fatalf("expected finished error on retry, got %v", err)
	}

	attempts, _ := store.ListAttempts(ctx, "u1", 0)
	player, _ := store.GetPlayer(ctx, "u1")
	if len(attempts) != 1 || player.XP != 109 || player.Gems != 1 {
		t.Fatalf("expected one credited attempt, got %d attempts and %+v", len(attempts), player)
	}

	// The next credit rewrites the absolute score.
	second := winSlimeBattle(t, campaign, "u1")
	if _, err := campaign.FinishBattle(ctx, second); err != nil {
		t.Fatalf("finish second: %v", err)
	}
	player, _ = store.GetPlayer(ctx, "u1")
	top, _ := lb.Top(ctx, 5)
	if len(top) != 1 || top[0].Score != player.XP {
		t.Fatalf("expected leaderboard to hold %d xp, got %+v", player.XP, top)
	}
}

func TestFinishBattleRetryAfterFailedCredit(t *testing.T) {
	ctx := context.Background()
	store := &flakyPlayers{ProgressStore: memory.NewProgressStore()}
	store.failures.Store(1)
	campaign := newCampaign(store, memory.NewLeaderboard())

	battleID := winSlimeBattle(t, campaign, "u1")
	if _, err := campaign.FinishBattle(ctx, battleID); err == nil {
		t.Fatalf("expected the failed save to surface")
	}
	view, err := campaign.Battle(ctx, battleID)
	if err != nil {
		t.Fatalf("battle: %v", err)
	}
	if view.Question != nil {
		t.Fatalf("finished battle should not offer a question")
	}

	summary, err := campaign.FinishBattle(ctx, battleID)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if summary.Attempt.ID != battleID || summary.TotalXP != 109 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	attempts, _ := store.ListAttempts(ctx, "u1", 0)
	if len(attempts) != 1 {
		t.Fatalf("expected 1 attempt after retry, got %d", len(attempts))
	}
	if _, err := campaign.FinishBattle(ctx, battleID); !errors.Is(err, domain.ErrBattleFinished) {
		t.Fatalf("expected finished error, got %v", err)
	}
}

func TestFinishGameRetryAfterFailedCredit(t *testing.T) {
	ctx := context.Background()
	store := &flakyPlayers{ProgressStore: memory.NewProgressStore()}
	store.failures.Store(1)
	games := newSoloGame(store, memory.NewLeaderboard())

	gameID := playOneQuestion(t, games, "u1")
	if _, err := games.FinishGame(ctx, gameID); err == nil {
		t.Fatalf("expected the failed save to surface")
	}
	if _, err := games.SubmitAnswer(ctx, gameID, domain.AnswerSubmission{QuestionID: "q1", OptionID: "o2"}); !errors.Is(err, domain.ErrGameFinished) {
		t.Fatalf("expected finished game to reject answers, got %v", err)
	}

	summary, err := games.FinishGame(ctx, gameID)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if summary.XPEarned != 11 || summary.TotalXP != 11 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	player, _ := store.GetPlayer(ctx, "u1")
	if player.XP != 11 || player.GamesPlayed != 1 {
		t.Fatalf("expected one credit, got %+v", player)
	}
}
