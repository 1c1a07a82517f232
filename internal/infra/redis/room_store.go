package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"chemquest/internal/app"
)

// RoomStore is a Redis-aware implementation of app.RoomRepository.
// Rooms and their broadcast fan-out stay in process; Redis only carries a
// liveness marker per room so other instances can see which quizzes are live.
type RoomStore struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	rooms  map[string]*app.Room
}

func NewRoomStore(client *redis.Client, ttl time.Duration) *RoomStore {
	return &RoomStore{
		client: client,
		ttl:    ttl,
		rooms:  make(map[string]*app.Room),
	}
}

func (s *RoomStore) GetOrCreate(quizID string) *app.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.rooms[quizID]; ok {
		return room
	}
	room := app.NewRoom(quizID)
	s.rooms[quizID] = room
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(quizID), "1", s.ttl).Err()
	return room
}

func (s *RoomStore) Get(quizID string) (*app.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[quizID]
	return room, ok
}

func (s *RoomStore) DeleteIfEmpty(quizID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[quizID]
	if !ok {
		return
	}
	if room.IsEmpty() {
		delete(s.rooms, quizID)
		_ = s.client.Del(context.Background(), s.key(quizID)).Err()
	}
}

func (s *RoomStore) key(quizID string) string {
	return "quiz:room:" + quizID
}
