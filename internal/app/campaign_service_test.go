package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"chemquest/internal/app"
	"chemquest/internal/catalog"
	"chemquest/internal/combat"
	"chemquest/internal/domain"
	"chemquest/internal/infra/memory"
)

type campaignFixture struct {
	service  *app.CampaignService
	progress *memory.ProgressStore
}

func newCampaignFixture(bosses ...combat.Boss) campaignFixture {
	if len(bosses) == 0 {
		bosses = []combat.Boss{{ID: "slime", Name: "Slime", Element: "H", Level: 1, BaseHP: 100, QuizID: "quiz-1"}}
	}
	progress := memory.NewProgressStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := app.NewCampaignService(
		catalog.New(bosses),
		testQuizzes(),
		memory.NewStateStore[domain.BattleSession](time.Hour),
		progress,
		memory.NewLeaderboard(),
		app.WithCampaignSeed(3),
		app.WithCampaignClock(func() time.Time { return now }),
	)
	return campaignFixture{service: service, progress: progress}
}

func TestBattleVictoryRecordsAttempt(t *testing.T) {
	f := newCampaignFixture()
	ctx := context.Background()

	view, err := f.service.StartBattle(ctx, app.StartBattleRequest{UserID: "u1", DisplayName: "Marie", BossID: "slime"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if view.State.HP != 100 || view.State.Intent == nil || view.Question == nil || view.Question.ID != "q1" {
		t.Fatalf("unexpected opening view %+v", view)
	}

	right := domain.AnswerSubmission{QuestionID: "q1", OptionID: "o2", TimeTaken: 5}
	first, err := f.service.TakeTurn(ctx, view.BattleID, right)
	if err != nil {
		t.Fatalf("turn 1: %v", err)
	}
	// 50 base, then the previewed basic attack hits for 40.
	if first.Outcome.DamageDealt != 50 || first.Outcome.DamageTaken != 40 || first.State.Phase != 2 {
		t.Fatalf("unexpected first turn %+v", first.Outcome)
	}
	if first.Next == nil || first.Next.ID != "q1" {
		t.Fatalf("expected the question to cycle, got %+v", first.Next)
	}

	second, err := f.service.TakeTurn(ctx, view.BattleID, right)
	if err != nil {
		t.Fatalf("turn 2: %v", err)
	}
	if !second.Outcome.Victory || second.Outcome.DamageDealt != 50 || second.Next != nil {
		t.Fatalf("expected victory, got %+v", second)
	}
	if _, err := f.service.TakeTurn(ctx, view.BattleID, right); !errors.Is(err, domain.ErrBattleOver) {
		t.Fatalf("expected battle over, got %v", err)
	}

	summary, err := f.service.FinishBattle(ctx, view.BattleID)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	// xp = 50*1.1 + 2*2 + 500/10; coins = 100/10 + 25.
	a := summary.Attempt
	if !a.Victory || a.DamageDealt != 100 || a.XP != 109 || a.Coins != 35 || a.Gems != 1 || a.Turns != 2 {
		t.Fatalf("unexpected attempt %+v", a)
	}
	if !summary.RankUp.DidRankUp || summary.TotalXP != 109 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	attempts, _ := f.progress.ListAttempts(ctx, "u1", 10)
	if len(attempts) != 1 || attempts[0].ID != a.ID {
		t.Fatalf("expected persisted attempt, got %+v", attempts)
	}
	player, _ := f.progress.GetPlayer(ctx, "u1")
	if player.BossWins != 1 || player.Gems != 1 || player.Coins != 35 {
		t.Fatalf("unexpected player %+v", player)
	}

	if _, err := f.service.FinishBattle(ctx, view.BattleID); !errors.Is(err, domain.ErrBattleFinished) {
		t.Fatalf("expected finished error, got %v", err)
	}
}

func TestAbandonedBattleAwardsPartialRewards(t *testing.T) {
	f := newCampaignFixture()
	ctx := context.Background()
	view, _ := f.service.StartBattle(ctx, app.StartBattleRequest{UserID: "u1", BossID: "slime"})

	wrong := domain.AnswerSubmission{QuestionID: "q1", OptionID: "o1", TimeTaken: 5}
	res, err := f.service.TakeTurn(ctx, view.BattleID, wrong)
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if res.Correct || res.Outcome.DamageDealt != 0 || res.State.WrongAnswers != 1 || res.CorrectOptionID != "o2" {
		t.Fatalf("unexpected miss %+v", res)
	}

	summary, err := f.service.FinishBattle(ctx, view.BattleID)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if summary.Attempt.Victory || summary.Attempt.Gems != 0 || summary.Attempt.XP != 0 {
		t.Fatalf("unexpected attempt %+v", summary.Attempt)
	}
}

func TestCampaignErrors(t *testing.T) {
	f := newCampaignFixture()
	ctx := context.Background()

	if _, err := f.service.StartBattle(ctx, app.StartBattleRequest{UserID: "u1", BossID: "dragon"}); !errors.Is(err, domain.ErrBossNotFound) {
		t.Fatalf("expected boss not found, got %v", err)
	}
	if _, err := f.service.StartBattle(ctx, app.StartBattleRequest{BossID: "slime"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := f.service.TakeTurn(ctx, "missing", domain.AnswerSubmission{QuestionID: "q1", OptionID: "o2"}); !errors.Is(err, domain.ErrBattleNotFound) {
		t.Fatalf("expected battle not found, got %v", err)
	}
	if _, err := f.service.FinishBattle(ctx, "missing"); !errors.Is(err, domain.ErrBattleNotFound) {
		t.Fatalf("expected battle not found, got %v", err)
	}

	view, _ := f.service.StartBattle(ctx, app.StartBattleRequest{UserID: "u1", BossID: "slime"})
	if _, err := f.service.TakeTurn(ctx, view.BattleID, domain.AnswerSubmission{QuestionID: "q9", OptionID: "o2"}); !errors.Is(err, domain.ErrOutOfOrder) {
		t.Fatalf("expected out of order, got %v", err)
	}
}

func TestBossesListedByLevel(t *testing.T) {
	f := newCampaignFixture(catalog.Default()...)
	bosses := f.service.Bosses()
	if len(bosses) < 3 || bosses[0].Level > bosses[len(bosses)-1].Level {
		t.Fatalf("unexpected boss order %+v", bosses)
	}
}
