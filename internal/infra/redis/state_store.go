package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"chemquest/internal/domain"
)

// StateStore keeps JSON-encoded session state under prefix:{id} with a sliding TTL.
type StateStore[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewStateStore[T any](client *redis.Client, prefix string, ttl time.Duration) *StateStore[T] {
	return &StateStore[T]{client: client, prefix: prefix, ttl: ttl}
}

func (s *StateStore[T]) Get(ctx context.Context, id string) (T, error) {
	var value T
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return value, domain.ErrNotFound
	}
	if err != nil {
		return value, fmt.Errorf("redis get %s: %w", s.key(id), err)
	}
	if err := json.Unmarshal(payload, &value); err != nil {
		return value, fmt.Errorf("decode %s: %w", s.key(id), err)
	}
	return value, nil
}

func (s *StateStore[T]) Put(ctx context.Context, id string, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key(id), err)
	}
	return s.client.Set(ctx, s.key(id), payload, s.ttl).Err()
}

func (s *StateStore[T]) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *StateStore[T]) key(id string) string {
	return s.prefix + ":" + id
}
