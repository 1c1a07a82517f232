package domain

import (
	"time"

	"chemquest/internal/combat"
)

// Participant represents a multiplayer participant and their accumulated score.
type Participant struct {
	UserID      string
	DisplayName string
	Score       int
	Streak      int
	LastUpdated time.Time
}

// LeaderboardEntry is a snapshot-friendly view of a participant or player.
type LeaderboardEntry struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Score       int    `json:"score"`
}

// Leaderboard captures the ordered scoreboard for a multiplayer room.
type Leaderboard struct {
	QuizID    string             `json:"quizId"`
	Entries   []LeaderboardEntry `json:"entries"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// AnswerSubmission models the scoring signal from clients.
type AnswerSubmission struct {
	QuestionID string
	OptionID   string
	// TimeTaken is the seconds the player spent on the question.
	TimeTaken float64
}

// AnswerResult summarizes the outcome of a submission for a single user.
type AnswerResult struct {
	QuestionID      string `json:"questionId"`
	Correct         bool   `json:"correct"`
	PointsEarned    int    `json:"pointsEarned"`
	TotalScore      int    `json:"totalScore"`
	Streak          int    `json:"streak"`
	Multiplier      int    `json:"multiplier"`
	CorrectOptionID string `json:"correctOptionId,omitempty"`
	Explanation     string `json:"explanation,omitempty"`
}

// Option represents a possible answer for a question.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"prompt"`
	Options     []Option `json:"options"`
	Points      int      `json:"points"` // defaults to 1 if zero
	Explanation string   `json:"explanation,omitempty"`
	Difficulty  int      `json:"difficulty,omitempty"`
}

// CorrectOption returns the id of the first option flagged correct.
func (q Question) CorrectOption() string {
	for _, opt := range q.Options {
		if opt.Correct {
			return opt.ID
		}
	}
	return ""
}

// View hides which option is correct.
func (q Question) View(index, total int) QuestionView {
	opts := make([]OptionView, 0, len(q.Options))
	for _, o := range q.Options {
		opts = append(opts, OptionView{ID: o.ID, Text: o.Text})
	}
	return QuestionView{ID: q.ID, Prompt: q.Prompt, Options: opts, Index: index, Total: total}
}

// Quiz is a collection of questions on one chemistry topic.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title,omitempty"`
	Questions []Question `json:"questions"`
}

// Question finds a question by id.
func (q Quiz) Question(id string) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}

// OptionView is an answer choice as sent to players.
type OptionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionView is a question as sent to players.
type QuestionView struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"prompt"`
	Options []OptionView `json:"options"`
	Index   int          `json:"index"`
	Total   int          `json:"total"`
}

// GameMode selects the scoring rules of a solo game.
type GameMode string

const (
	ModeClassic GameMode = "classic"
	ModeTimed   GameMode = "timed"
)

// Valid reports whether m is a supported mode.
func (m GameMode) Valid() bool {
	return m == ModeClassic || m == ModeTimed
}

// Player is the persistent profile of a user.
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	XP          int       `json:"xp"`
	Coins       int       `json:"coins"`
	Gems        int       `json:"gems"`
	BestStreak  int       `json:"bestStreak"`
	GamesPlayed int       `json:"gamesPlayed"`
	BossWins    int       `json:"bossWins"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GameSession is a solo game in progress.
type GameSession struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	QuizID      string    `json:"quizId"`
	Mode        GameMode  `json:"mode"`
	QuestionIDs []string  `json:"questionIds"`
	Current     int       `json:"current"`
	Score       int       `json:"score"`
	Streak      int       `json:"streak"`
	BestStreak  int       `json:"bestStreak"`
	Correct     int       `json:"correct"`
	Answered    int       `json:"answered"`
	Finished    bool      `json:"finished"`
	XPEarned    int       `json:"xpEarned,omitempty"`
	CoinsEarned int       `json:"coinsEarned,omitempty"`
	Credited    bool      `json:"credited,omitempty"`
	StartedAt   time.Time `json:"startedAt"`
}

// BattleSession is a campaign boss battle in progress.
type BattleSession struct {
	ID          string             `json:"id"`
	UserID      string             `json:"userId"`
	DisplayName string             `json:"displayName"`
	BossID      string             `json:"bossId"`
	QuizID      string             `json:"quizId"`
	QuestionIDs []string           `json:"questionIds"`
	Current     int                `json:"current"`
	Streak      int                `json:"streak"`
	BestStreak  int                `json:"bestStreak"`
	TimeBonus   int                `json:"timeBonus"`
	State       combat.BattleState `json:"state"`
	Finished    bool               `json:"finished"`
	Attempt     *BossAttempt       `json:"attempt,omitempty"`
	Credited    bool               `json:"credited,omitempty"`
	StartedAt   time.Time          `json:"startedAt"`
}

// CurrentQuestionID returns the question the battle is waiting on. Battles cycle through their questions.
func (b BattleSession) CurrentQuestionID() string {
	if len(b.QuestionIDs) == 0 {
		return ""
	}
	return b.QuestionIDs[b.Current%len(b.QuestionIDs)]
}

// BossAttempt is the persisted summary of a finished boss battle.
type BossAttempt struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	BossID      string    `json:"bossId"`
	DamageDealt int       `json:"damageDealt"`
	Victory     bool      `json:"victory"`
	Turns       int       `json:"turns"`
	XP          int       `json:"xp"`
	Coins       int       `json:"coins"`
	Gems        int       `json:"gems"`
	CreatedAt   time.Time `json:"createdAt"`
}
