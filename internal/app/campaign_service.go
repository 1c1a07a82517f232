package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"chemquest/internal/combat"
	"chemquest/internal/domain"
	"chemquest/internal/progression"
)

// timeBonusPerSecond credits unused seconds of a correct answer towards boss XP.
const timeBonusPerSecond = 10

// StartBattleRequest opens a boss battle.
type StartBattleRequest struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	BossID      string `json:"bossId"`
}

// BattleView is a battle as sent to the player: state, next question and the boss intent.
type BattleView struct {
	BattleID string               `json:"battleId"`
	Boss     combat.Boss          `json:"boss"`
	State    combat.BattleState   `json:"state"`
	Question *domain.QuestionView `json:"question,omitempty"`
}

// TurnResult is the outcome of one answered question in a battle.
type TurnResult struct {
	Correct         bool                 `json:"correct"`
	CorrectOptionID string               `json:"correctOptionId"`
	Explanation     string               `json:"explanation,omitempty"`
	Streak          int                  `json:"streak"`
	Outcome         combat.TurnOutcome   `json:"outcome"`
	State           combat.BattleState   `json:"state"`
	Next            *domain.QuestionView `json:"next,omitempty"`
}

// BattleSummary is returned when an attempt is recorded.
type BattleSummary struct {
	Attempt domain.BossAttempt   `json:"attempt"`
	TotalXP int                  `json:"totalXp"`
	RankUp  progression.RankUp   `json:"rankUp"`
	Rank    progression.RankInfo `json:"rank"`
}

// CampaignService runs boss battles.
type CampaignService struct {
	bosses   BossCatalog
	quizzes  QuizRepository
	battles  StateStore[domain.BattleSession]
	attempts AttemptRepository
	rewards  *rewarder
	locks    *KeyedMutex
	rng      *lockedRand
	now      func() time.Time
}

// CampaignOption customizes a CampaignService.
type CampaignOption func(*CampaignService)

// WithCampaignClock overrides the clock, for tests.
func WithCampaignClock(now func() time.Time) CampaignOption {
	return func(s *CampaignService) { s.now = now }
}

// WithCampaignLocks shares player locks with other services that credit rewards.
func WithCampaignLocks(locks *KeyedMutex) CampaignOption {
	return func(s *CampaignService) { s.locks = locks }
}

// WithCampaignSeed makes boss intents and question order reproducible.
func WithCampaignSeed(seed int64) CampaignOption {
	return func(s *CampaignService) { s.rng = newLockedRand(seed) }
}

func NewCampaignService(bosses BossCatalog, quizzes QuizRepository, battles StateStore[domain.BattleSession], progress ProgressRepository, leaderboard Leaderboard, opts ...CampaignOption) *CampaignService {
	s := &CampaignService{
		bosses:   bosses,
		quizzes:  quizzes,
		battles:  battles,
		attempts: progress,
		locks:    NewKeyedMutex(),
		rng:      newLockedRand(0),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rewards = &rewarder{players: progress, leaderboard: leaderboard, locks: s.locks, now: s.now}
	return s
}

// Bosses lists the campaign in level order.
func (s *CampaignService) Bosses() []combat.Boss {
	return s.bosses.List()
}

// StartBattle opens a battle against a boss with a first intent already chosen.
func (s *CampaignService) StartBattle(ctx context.Context, req StartBattleRequest) (BattleView, error) {
	if req.UserID == "" || req.BossID == "" {
		return BattleView{}, fmt.Errorf("%w: userId and bossId are required", domain.ErrInvalidInput)
	}
	boss, ok := s.bosses.Get(req.BossID)
	if !ok {
		return BattleView{}, domain.ErrBossNotFound
	}
	quiz, err := s.quizzes.GetQuiz(ctx, boss.QuizID)
	if err != nil {
		return BattleView{}, err
	}
	if len(quiz.Questions) == 0 {
		return BattleView{}, fmt.Errorf("%w: quiz %s has no questions", domain.ErrInvalidInput, quiz.ID)
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.UserID
	}
	battle := domain.BattleSession{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		DisplayName: displayName,
		BossID:      boss.ID,
		QuizID:      quiz.ID,
		QuestionIDs: s.rng.shuffledIDs(quiz.Questions),
		StartedAt:   s.now(),
	}
	s.rng.with(func(rng *rand.Rand) {
		battle.State = combat.NewBattle(boss, rng)
	})
	if err := s.battles.Put(ctx, battle.ID, battle); err != nil {
		return BattleView{}, fmt.Errorf("save battle: %w", err)
	}
	return s.view(battle, boss, quiz), nil
}

// Battle returns the current view of a battle.
func (s *CampaignService) Battle(ctx context.Context, battleID string) (BattleView, error) {
	battle, err := s.load(ctx, battleID)
	if err != nil {
		return BattleView{}, err
	}
	boss, ok := s.bosses.Get(battle.BossID)
	if !ok {
		return BattleView{}, domain.ErrBossNotFound
	}
	quiz, err := s.quizzes.GetQuiz(ctx, battle.QuizID)
	if err != nil {
		return BattleView{}, err
	}
	return s.view(battle, boss, quiz), nil
}

// TakeTurn answers the current question and resolves the boss response.
func (s *CampaignService) TakeTurn(ctx context.Context, battleID string, submission domain.AnswerSubmission) (TurnResult, error) {
	if battleID == "" || submission.QuestionID == "" || submission.OptionID == "" {
		return TurnResult{}, fmt.Errorf("%w: battleId, questionId and optionId are required", domain.ErrInvalidInput)
	}

	unlock := s.locks.Lock("battle:" + battleID)
	defer unlock()

	battle, err := s.load(ctx, battleID)
	if err != nil {
		return TurnResult{}, err
	}
	if battle.Finished || battle.State.Over() {
		return TurnResult{}, domain.ErrBattleOver
	}
	if battle.CurrentQuestionID() != submission.QuestionID {
		return TurnResult{}, domain.ErrOutOfOrder
	}
	boss, ok := s.bosses.Get(battle.BossID)
	if !ok {
		return TurnResult{}, domain.ErrBossNotFound
	}
	quiz, err := s.quizzes.GetQuiz(ctx, battle.QuizID)
	if err != nil {
		return TurnResult{}, err
	}
	question, correct, err := scoreSubmission(quiz, submission)
	if err != nil {
		return TurnResult{}, err
	}

	in := combat.TurnInput{Correct: correct, Streak: battle.Streak, TimeTaken: submission.TimeTaken}
	var out combat.TurnOutcome
	s.rng.with(func(rng *rand.Rand) {
		out = combat.ResolveTurn(&battle.State, boss, in, rng)
	})

	if correct {
		battle.Streak++
		battle.BestStreak = max(battle.BestStreak, battle.Streak)
		left := progression.QuestionTimeLimit - int(max(0, submission.TimeTaken))
		battle.TimeBonus += max(0, left) * timeBonusPerSecond
	} else {
		battle.Streak = 0
	}
	battle.Current++

	if err := s.battles.Put(ctx, battle.ID, battle); err != nil {
		return TurnResult{}, fmt.Errorf("save battle: %w", err)
	}

	res := TurnResult{
		Correct:         correct,
		CorrectOptionID: question.CorrectOption(),
		Explanation:     question.Explanation,
		Streak:          battle.Streak,
		Outcome:         out,
		State:           battle.State,
	}
	if !battle.State.Over() {
		res.Next = s.view(battle, boss, quiz).Question
	}
	return res, nil
}

// FinishBattle records the attempt and credits XP, coins and gems. A battle can be abandoned early.
// The attempt is fixed and stored on the battle before anything is credited, and it shares the
// battle id, so a retry after a failed credit resumes without a second attempt.
func (s *CampaignService) FinishBattle(ctx context.Context, battleID string) (BattleSummary, error) {
	if battleID == "" {
		return BattleSummary{}, fmt.Errorf("%w: battleId is required", domain.ErrInvalidInput)
	}

	unlock := s.locks.Lock("battle:" + battleID)
	defer unlock()

	battle, err := s.load(ctx, battleID)
	if err != nil {
		return BattleSummary{}, err
	}
	if battle.Credited {
		return BattleSummary{}, domain.ErrBattleFinished
	}
	if !battle.Finished || battle.Attempt == nil {
		boss, ok := s.bosses.Get(battle.BossID)
		if !ok {
			return BattleSummary{}, domain.ErrBossNotFound
		}
		st := battle.State
		victory := st.Defeated
		xp := progression.CalculateBossXP(st.TotalDamage, boss.Level, battle.BestStreak, battle.TimeBonus)
		coins, gems := progression.BossRewards(st.TotalDamage, boss.Level, victory)
		battle.Attempt = &domain.BossAttempt{
			ID:          battle.ID,
			UserID:      battle.UserID,
			BossID:      boss.ID,
			DamageDealt: st.TotalDamage,
			Victory:     victory,
			Turns:       st.Turn,
			XP:          xp,
			Coins:       coins,
			Gems:        gems,
			CreatedAt:   s.now(),
		}
		battle.Finished = true
		if err := s.battles.Put(ctx, battle.ID, battle); err != nil {
			return BattleSummary{}, fmt.Errorf("save battle: %w", err)
		}
	}

	attempt := *battle.Attempt
	if err := s.attempts.SaveAttempt(ctx, attempt); err != nil {
		return BattleSummary{}, fmt.Errorf("save attempt: %w", err)
	}
	player, rankUp, err := s.rewards.apply(ctx, battle.UserID, battle.DisplayName, reward{
		XP:         attempt.XP,
		Coins:      attempt.Coins,
		Gems:       attempt.Gems,
		BestStreak: battle.BestStreak,
		BossWin:    attempt.Victory,
	})
	if err != nil {
		return BattleSummary{}, err
	}

	battle.Credited = true
	if err := s.battles.Put(ctx, battle.ID, battle); err != nil {
		log.Printf("battle %s credited but not marked: %v", battle.ID, err)
	}
	return BattleSummary{
		Attempt: attempt,
		TotalXP: player.XP,
		RankUp:  rankUp,
		Rank:    progression.GetRankInfo(player.XP),
	}, nil
}

func (s *CampaignService) view(battle domain.BattleSession, boss combat.Boss, quiz domain.Quiz) BattleView {
	v := BattleView{BattleID: battle.ID, Boss: boss, State: battle.State}
	if battle.State.Over() || battle.Finished {
		return v
	}
	if q, ok := quiz.Question(battle.CurrentQuestionID()); ok {
		qv := q.View(battle.Current, len(battle.QuestionIDs))
		v.Question = &qv
	}
	return v
}

func (s *CampaignService) load(ctx context.Context, battleID string) (domain.BattleSession, error) {
	battle, err := s.battles.Get(ctx, battleID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.BattleSession{}, domain.ErrBattleNotFound
	}
	if err != nil {
		return domain.BattleSession{}, fmt.Errorf("load battle: %w", err)
	}
	return battle, nil
}
