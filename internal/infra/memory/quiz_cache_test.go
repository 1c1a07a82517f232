package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"chemquest/internal/domain"
)

func TestQuizCacheCaches(t *testing.T) {
	loader := &countingLoader{QuizLoader: NewStaticQuizLoader(SampleQuizzes())}
	cache := NewQuizCache(loader, time.Minute)

	if _, err := cache.GetQuiz(context.Background(), "elements"); err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := cache.GetQuiz(context.Background(), "elements"); err != nil {
		t.Fatalf("get quiz 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
	if hits, misses := cache.Stats(); hits != 1 || misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
}

func TestQuizCacheExpiresAndInvalidates(t *testing.T) {
	loader := &countingLoader{QuizLoader: NewStaticQuizLoader(SampleQuizzes())}
	cache := NewQuizCache(loader, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.clock = func() time.Time { return now }

	_, _ = cache.GetQuiz(context.Background(), "reactions")
	now = now.Add(2 * time.Minute)
	_, _ = cache.GetQuiz(context.Background(), "reactions")
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}

	cache.Invalidate("reactions")
	_, _ = cache.GetQuiz(context.Background(), "reactions")
	if loader.calls != 3 {
		t.Fatalf("expected reload after invalidate, loader calls %d", loader.calls)
	}

	cache.Purge()
	_, _ = cache.GetQuiz(context.Background(), "reactions")
	if loader.calls != 4 {
		t.Fatalf("expected reload after purge, loader calls %d", loader.calls)
	}
}

func TestQuizCacheUnknownQuiz(t *testing.T) {
	cache := NewQuizCache(NewStaticQuizLoader(SampleQuizzes()), time.Minute)
	if _, err := cache.GetQuiz(context.Background(), "nope"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}

func TestSampleQuizzesHaveOneCorrectOption(t *testing.T) {
	for id, quiz := range SampleQuizzes() {
		if quiz.ID != id || len(quiz.Questions) < 5 {
			t.Fatalf("quiz %s malformed", id)
		}
		for _, q := range quiz.Questions {
			correct := 0
			for _, o := range q.Options {
				if o.Correct {
					correct++
				}
			}
			if correct != 1 {
				t.Fatalf("question %s has %d correct options", q.ID, correct)
			}
		}
	}
}

type countingLoader struct {
	QuizLoader
	calls int
}

func (l *countingLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	l.calls++
	return l.QuizLoader.LoadQuiz(ctx, quizID)
}
