package app

import (
	"context"

	"chemquest/internal/domain"
)

// MultiplayerService runs live quiz rooms where everyone answers the same quiz.
type MultiplayerService struct {
	rooms   RoomRepository
	quizzes QuizRepository
}

func NewMultiplayerService(rooms RoomRepository, quizzes QuizRepository) *MultiplayerService {
	return &MultiplayerService{rooms: rooms, quizzes: quizzes}
}

// Join registers or refreshes a participant in a quiz room.
func (s *MultiplayerService) Join(ctx context.Context, quizID, userID, displayName string) (domain.Leaderboard, error) {
	// Users cannot join unknown quizzes; this also warms the cache.
	if _, err := s.quizzes.GetQuiz(ctx, quizID); err != nil {
		return domain.Leaderboard{}, err
	}

	room := s.rooms.GetOrCreate(quizID)
	return room.join(userID, displayName), nil
}

// SubmitAnswer scores an answer for a participant and updates the room leaderboard.
func (s *MultiplayerService) SubmitAnswer(ctx context.Context, quizID, userID string, submission domain.AnswerSubmission) (domain.Leaderboard, domain.AnswerResult, error) {
	room, ok := s.rooms.Get(quizID)
	if !ok {
		return domain.Leaderboard{}, domain.AnswerResult{}, domain.ErrSessionNotFound
	}

	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Leaderboard{}, domain.AnswerResult{}, err
	}

	question, correct, err := scoreSubmission(quiz, submission)
	if err != nil {
		return domain.Leaderboard{}, domain.AnswerResult{}, err
	}

	lb, res, err := room.applyAnswer(userID, correct)
	if err != nil {
		return domain.Leaderboard{}, domain.AnswerResult{}, err
	}
	res.QuestionID = question.ID
	res.CorrectOptionID = question.CorrectOption()
	res.Explanation = question.Explanation
	return lb, res, nil
}

// Subscribe returns a channel that receives leaderboard updates for a room.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *MultiplayerService) Subscribe(_ context.Context, quizID string) (<-chan domain.Leaderboard, func(), error) {
	room, ok := s.rooms.Get(quizID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := room.subscribe()
	return ch, cancel, nil
}

// Leave removes a participant and drops the room once it is empty.
func (s *MultiplayerService) Leave(_ context.Context, quizID, userID string) {
	room, ok := s.rooms.Get(quizID)
	if !ok {
		return
	}
	room.leave(userID)
	if room.IsEmpty() {
		s.rooms.DeleteIfEmpty(quizID)
	}
}
