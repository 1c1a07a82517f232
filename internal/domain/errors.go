package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a multiplayer room has not been initialized.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrParticipantNotFound is returned when a user tries to act before joining.
	ErrParticipantNotFound = errors.New("participant not found in quiz")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a submitted option ID is invalid.
	ErrOptionNotFound = errors.New("option not found")
	// ErrNotFound is returned by state and player stores for unknown keys.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks requests with missing or malformed fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrGameNotFound indicates an unknown or expired solo game.
	ErrGameNotFound = errors.New("game not found")
	// ErrGameFinished is returned when acting on a game that already ended.
	ErrGameFinished = errors.New("game already finished")
	// ErrNoMoreQuestions is returned once every question of a game was served.
	ErrNoMoreQuestions = errors.New("no more questions")
	// ErrOutOfOrder indicates an answer for a question other than the current one.
	ErrOutOfOrder = errors.New("answer does not match the current question")
	// ErrBossNotFound indicates the boss id is not in the catalogue.
	ErrBossNotFound = errors.New("boss not found")
	// ErrBattleNotFound indicates an unknown or expired boss battle.
	ErrBattleNotFound = errors.New("battle not found")
	// ErrBattleOver is returned when taking a turn in a battle that has ended.
	ErrBattleOver = errors.New("battle is over")
	// ErrBattleFinished is returned when an attempt was already recorded for a battle.
	ErrBattleFinished = errors.New("battle attempt already recorded")
)
