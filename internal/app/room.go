package app

import (
	"sort"
	"sync"
	"time"

	"chemquest/internal/domain"
	"chemquest/internal/progression"
)

// Room is the in-memory state of a live multiplayer quiz.
type Room struct {
	id           string
	createdAt    time.Time
	now          func() time.Time
	mu           sync.RWMutex
	participants map[string]*domain.Participant
	subscribers  map[chan domain.Leaderboard]struct{}
}

// NewRoom is exported for infrastructure layers that need to seed rooms.
func NewRoom(quizID string) *Room {
	return NewRoomWithClock(quizID, time.Now)
}

// NewRoomWithClock allows deterministic timestamps in tests.
func NewRoomWithClock(quizID string, now func() time.Time) *Room {
	return &Room{
		id:           quizID,
		createdAt:    now(),
		now:          now,
		participants: make(map[string]*domain.Participant),
		subscribers:  make(map[chan domain.Leaderboard]struct{}),
	}
}

func (r *Room) join(userID, displayName string) domain.Leaderboard {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if participant, ok := r.participants[userID]; ok {
		participant.DisplayName = displayName
		participant.LastUpdated = now
	} else {
		r.participants[userID] = &domain.Participant{
			UserID:      userID,
			DisplayName: displayName,
			LastUpdated: now,
		}
	}
	return r.broadcastLocked()
}

// applyAnswer scores one answer with the classic streak rules.
func (r *Room) applyAnswer(userID string, correct bool) (domain.Leaderboard, domain.AnswerResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	participant, ok := r.participants[userID]
	if !ok {
		return domain.Leaderboard{}, domain.AnswerResult{}, domain.ErrParticipantNotFound
	}

	if correct {
		participant.Streak++
	} else {
		participant.Streak = 0
	}
	points := progression.CalculatePoints(correct, participant.Streak, domain.ModeClassic, 0)
	participant.Score += points
	if points > 0 {
		participant.LastUpdated = r.now()
	}

	res := domain.AnswerResult{
		Correct:      correct,
		PointsEarned: points,
		TotalScore:   participant.Score,
		Streak:       participant.Streak,
		Multiplier:   progression.StreakMultiplier(participant.Streak),
	}
	return r.broadcastLocked(), res, nil
}

func (r *Room) leave(userID string) domain.Leaderboard {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.participants, userID)
	return r.broadcastLocked()
}

// IsEmpty reports whether the room has no participants.
func (r *Room) IsEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants) == 0
}

func (r *Room) subscribe() (<-chan domain.Leaderboard, func()) {
	ch := make(chan domain.Leaderboard, 8)

	r.mu.Lock()
	r.subscribers[ch] = struct{}{}
	initial := r.snapshotLocked()
	r.mu.Unlock()

	ch <- initial

	cancel := func() {
		r.mu.Lock()
		if _, ok := r.subscribers[ch]; ok {
			delete(r.subscribers, ch)
			close(ch)
		}
		r.mu.Unlock()
	}
	return ch, cancel
}

func (r *Room) broadcastLocked() domain.Leaderboard {
	lb := r.snapshotLocked()
	for ch := range r.subscribers {
		select {
		case ch <- lb:
		default:
			// Slow subscriber: replace its oldest snapshot with the newest.
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
	return lb
}

func (r *Room) snapshotLocked() domain.Leaderboard {
	entries := make([]domain.LeaderboardEntry, 0, len(r.participants))
	for _, participant := range r.participants {
		entries = append(entries, domain.LeaderboardEntry{
			UserID:      participant.UserID,
			DisplayName: participant.DisplayName,
			Score:       participant.Score,
		})
	}

	// Score desc, then whoever reached it first, then name.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		pi := r.participants[entries[i].UserID]
		pj := r.participants[entries[j].UserID]
		if pi != nil && pj != nil && !pi.LastUpdated.Equal(pj.LastUpdated) {
			return pi.LastUpdated.Before(pj.LastUpdated)
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	return domain.Leaderboard{
		QuizID:    r.id,
		Entries:   entries,
		UpdatedAt: r.now(),
	}
}
