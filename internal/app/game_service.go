package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"chemquest/internal/domain"
	"chemquest/internal/progression"
)

// StartGameRequest opens a solo game.
type StartGameRequest struct {
	UserID      string          `json:"userId"`
	DisplayName string          `json:"displayName"`
	QuizID      string          `json:"quizId"`
	Mode        domain.GameMode `json:"mode"`
}

// GameSummary is returned when a solo game finishes.
type GameSummary struct {
	GameID     string               `json:"gameId"`
	Score      int                  `json:"score"`
	Correct    int                  `json:"correct"`
	Answered   int                  `json:"answered"`
	BestStreak int                  `json:"bestStreak"`
	XPEarned   int                  `json:"xpEarned"`
	Coins      int                  `json:"coins"`
	TotalXP    int                  `json:"totalXp"`
	RankUp     progression.RankUp   `json:"rankUp"`
	Rank       progression.RankInfo `json:"rank"`
}

// GameService runs solo quiz games.
type GameService struct {
	quizzes QuizRepository
	games   StateStore[domain.GameSession]
	rewards *rewarder
	locks   *KeyedMutex
	rng     *lockedRand
	now     func() time.Time
}

// GameOption customizes a GameService.
type GameOption func(*GameService)

// WithGameClock overrides the clock, for tests.
func WithGameClock(now func() time.Time) GameOption {
	return func(s *GameService) { s.now = now }
}

// WithGameLocks shares player locks with other services that credit rewards.
func WithGameLocks(locks *KeyedMutex) GameOption {
	return func(s *GameService) { s.locks = locks }
}

// WithGameSeed makes question order reproducible.
func WithGameSeed(seed int64) GameOption {
	return func(s *GameService) { s.rng = newLockedRand(seed) }
}

func NewGameService(quizzes QuizRepository, games StateStore[domain.GameSession], players PlayerRepository, leaderboard Leaderboard, opts ...GameOption) *GameService {
	s := &GameService{
		quizzes: quizzes,
		games:   games,
		locks:   NewKeyedMutex(),
		rng:     newLockedRand(0),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rewards = &rewarder{players: players, leaderboard: leaderboard, locks: s.locks, now: s.now}
	return s
}

// StartGame creates a session with the quiz questions in shuffled order.
func (s *GameService) StartGame(ctx context.Context, req StartGameRequest) (domain.GameSession, error) {
	if req.UserID == "" || req.QuizID == "" {
		return domain.GameSession{}, fmt.Errorf("%w: userId and quizId are required", domain.ErrInvalidInput)
	}
	if req.Mode == "" {
		req.Mode = domain.ModeClassic
	}
	if !req.Mode.Valid() {
		return domain.GameSession{}, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, req.Mode)
	}

	quiz, err := s.quizzes.GetQuiz(ctx, req.QuizID)
	if err != nil {
		return domain.GameSession{}, err
	}
	if len(quiz.Questions) == 0 {
		return domain.GameSession{}, fmt.Errorf("%w: quiz %s has no questions", domain.ErrInvalidInput, quiz.ID)
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.UserID
	}
	game := domain.GameSession{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		DisplayName: displayName,
		QuizID:      quiz.ID,
		Mode:        req.Mode,
		QuestionIDs: s.rng.shuffledIDs(quiz.Questions),
		StartedAt:   s.now(),
	}
	if err := s.games.Put(ctx, game.ID, game); err != nil {
		return domain.GameSession{}, fmt.Errorf("save game: %w", err)
	}
	return game, nil
}

// NextQuestion returns the question the game is waiting on, without its answer.
func (s *GameService) NextQuestion(ctx context.Context, gameID string) (domain.QuestionView, error) {
	game, err := s.load(ctx, gameID)
	if err != nil {
		return domain.QuestionView{}, err
	}
	if game.Finished {
		return domain.QuestionView{}, domain.ErrGameFinished
	}
	if game.Current >= len(game.QuestionIDs) {
		return domain.QuestionView{}, domain.ErrNoMoreQuestions
	}

	quiz, err := s.quizzes.GetQuiz(ctx, game.QuizID)
	if err != nil {
		return domain.QuestionView{}, err
	}
	question, ok := quiz.Question(game.QuestionIDs[game.Current])
	if !ok {
		return domain.QuestionView{}, domain.ErrQuestionNotFound
	}
	return question.View(game.Current, len(game.QuestionIDs)), nil
}

// SubmitAnswer scores the answer to the current question.
func (s *GameService) SubmitAnswer(ctx context.Context, gameID string, submission domain.AnswerSubmission) (domain.AnswerResult, error) {
	if gameID == "" || submission.QuestionID == "" || submission.OptionID == "" {
		return domain.AnswerResult{}, fmt.Errorf("%w: gameId, questionId and optionId are required", domain.ErrInvalidInput)
	}

	unlock := s.locks.Lock("game:" + gameID)
	defer unlock()

	game, err := s.load(ctx, gameID)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	if game.Finished {
		return domain.AnswerResult{}, domain.ErrGameFinished
	}
	if game.Current >= len(game.QuestionIDs) {
		return domain.AnswerResult{}, domain.ErrNoMoreQuestions
	}
	if game.QuestionIDs[game.Current] != submission.QuestionID {
		return domain.AnswerResult{}, domain.ErrOutOfOrder
	}

	quiz, err := s.quizzes.GetQuiz(ctx, game.QuizID)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	question, correct, err := scoreSubmission(quiz, submission)
	if err != nil {
		return domain.AnswerResult{}, err
	}

	if correct {
		game.Streak++
		game.Correct++
		game.BestStreak = max(game.BestStreak, game.Streak)
	} else {
		game.Streak = 0
	}
	secondsLeft := progression.QuestionTimeLimit - int(max(0, submission.TimeTaken))
	points := progression.CalculatePoints(correct, game.Streak, game.Mode, secondsLeft)
	game.Score += points
	game.Answered++
	game.Current++

	if err := s.games.Put(ctx, game.ID, game); err != nil {
		return domain.AnswerResult{}, fmt.Errorf("save game: %w", err)
	}
	return domain.AnswerResult{
		QuestionID:      question.ID,
		Correct:         correct,
		PointsEarned:    points,
		TotalScore:      game.Score,
		Streak:          game.Streak,
		Multiplier:      progression.StreakMultiplier(game.Streak),
		CorrectOptionID: question.CorrectOption(),
		Explanation:     question.Explanation,
	}, nil
}

// FinishGame closes the game and credits XP and coins to the player. A game can be finished early.
// The game is marked finished before the player is credited; a retry after a failed credit resumes it.
func (s *GameService) FinishGame(ctx context.Context, gameID string) (GameSummary, error) {
	if gameID == "" {
		return GameSummary{}, fmt.Errorf("%w: gameId is required", domain.ErrInvalidInput)
	}

	unlock := s.locks.Lock("game:" + gameID)
	defer unlock()

	game, err := s.load(ctx, gameID)
	if err != nil {
		return GameSummary{}, err
	}
	if game.Credited {
		return GameSummary{}, domain.ErrGameFinished
	}
	if !game.Finished {
		game.Finished = true
		game.XPEarned = progression.GameXP(game.Correct, game.Score)
		game.CoinsEarned = progression.GameCoins(game.Score)
		if err := s.games.Put(ctx, game.ID, game); err != nil {
			return GameSummary{}, fmt.Errorf("save game: %w", err)
		}
	}

	player, rankUp, err := s.rewards.apply(ctx, game.UserID, game.DisplayName, reward{
		XP:         game.XPEarned,
		Coins:      game.CoinsEarned,
		BestStreak: game.BestStreak,
		Game:       true,
	})
	if err != nil {
		return GameSummary{}, err
	}

	game.Credited = true
	if err := s.games.Put(ctx, game.ID, game); err != nil {
		log.Printf("game %s credited but not marked: %v", game.ID, err)
	}

	return GameSummary{
		GameID:     game.ID,
		Score:      game.Score,
		Correct:    game.Correct,
		Answered:   game.Answered,
		BestStreak: game.BestStreak,
		XPEarned:   game.XPEarned,
		Coins:      game.CoinsEarned,
		TotalXP:    player.XP,
		RankUp:     rankUp,
		Rank:       progression.GetRankInfo(player.XP),
	}, nil
}

func (s *GameService) load(ctx context.Context, gameID string) (domain.GameSession, error) {
	game, err := s.games.Get(ctx, gameID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.GameSession{}, domain.ErrGameNotFound
	}
	if err != nil {
		return domain.GameSession{}, fmt.Errorf("load game: %w", err)
	}
	return game, nil
}
