package memory

import (
	"sync"

	"chemquest/internal/app"
)

// RoomStore is an in-memory implementation of app.RoomRepository.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*app.Room
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*app.Room),
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
	}
}
