package app

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"chemquest/internal/combat"
	"chemquest/internal/domain"
)

// KeyedMutex serializes read-modify-write cycles on one game, battle or player.
// Services that credit the same players must share one KeyedMutex.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

// Lock acquires the lock for key and returns its release func.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// lockedRand shares one seeded source between goroutines.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newLockedRand(seed int64) *lockedRand {
	return &lockedRand{rnd: combat.NewRand(seed)}
}

// with runs fn while holding the source.
func (r *lockedRand) with(fn func(rng *rand.Rand)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.rnd)
}

func (r *lockedRand) shuffledIDs(questions []domain.Question) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	r.with(func(rng *rand.Rand) {
		rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	})
	return ids
}

// loadPlayer returns the stored player or a fresh profile for first-time users.
func loadPlayer(ctx context.Context, players PlayerRepository, userID, displayName string, now time.Time) (domain.Player, error) {
	p, err := players.GetPlayer(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Player{ID: userID, DisplayName: displayName, CreatedAt: now, UpdatedAt: now}, nil
	}
	if err != nil {
		return domain.Player{}, err
	}
	if displayName != "" {
		p.DisplayName = displayName
	}
	return p, nil
}

// scoreSubmission validates the answer against quiz content and returns the question and whether it was answered correctly.
func scoreSubmission(quiz domain.Quiz, submission domain.AnswerSubmission) (domain.Question, bool, error) {
	question, ok := quiz.Question(submission.QuestionID)
	if !ok {
		return domain.Question{}, false, domain.ErrQuestionNotFound
	}

	for _, opt := range question.Options {
		if opt.ID == submission.OptionID {
			return question, opt.Correct, nil
		}
	}
	return domain.Question{}, false, domain.ErrOptionNotFound
}
