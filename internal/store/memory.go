package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"trainer-backend/internal/database"
)

// MemoryStore keeps all records in process memory. It backs local development
// when no DATABASE_URL is configured, and tests.
type MemoryStore struct {
	mu        sync.Mutex
	exercise  []database.ExerciseLog
	sleep     []database.SleepLog
	nutrition []database.NutritionLog
	chat      []database.ChatMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) InsertExercise(ctx context.Context, log *database.ExerciseLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	log.ID = uint(len(s.exercise) + 1)
	if log.Timestamp.IsZero() {
		log.Timestamp = now
	}
	log.CreatedAt = now
	log.UpdatedAt = now
	s.exercise = append(s.exercise, *log)
	return nil
}

func (s *MemoryStore) InsertSleep(ctx context.Context, log *database.SleepLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	log.ID = uint(len(s.sleep) + 1)
	if log.Timestamp.IsZero() {
		log.Timestamp = now
	}
	log.CreatedAt = now
	log.UpdatedAt = now
	s.sleep = append(s.sleep, *log)
	return nil
}

func (s *MemoryStore) InsertNutrition(ctx context.Context, log *database.NutritionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	log.ID = uint(len(s.nutrition) + 1)
	if log.Timestamp.IsZero() {
		log.Timestamp = now
	}
	log.CreatedAt = now
	log.UpdatedAt = now
	s.nutrition = append(s.nutrition, *log)
	return nil
}

func (s *MemoryStore) ListExercise(ctx context.Context, r TimeRange) ([]database.ExerciseLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var logs []database.ExerciseLog
	for _, log := range s.exercise {
		if r.Contains(log.Timestamp) {
			logs = append(logs, log)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Timestamp.Before(logs[j].Timestamp) })
	return logs, nil
}

func (s *MemoryStore) ListSleep(ctx context.Context, r TimeRange) ([]database.SleepLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var logs []database.SleepLog
	for _, log := range s.sleep {
		if r.Contains(log.Timestamp) {
			logs = append(logs, log)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Timestamp.Before(logs[j].Timestamp) })
	return logs, nil
}

func (s *MemoryStore) ListNutrition(ctx context.Context, r TimeRange) ([]database.NutritionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var logs []database.NutritionLog
	for _, log := range s.nutrition {
		if r.Contains(log.Timestamp) {
			logs = append(logs, log)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Timestamp.Before(logs[j].Timestamp) })
	return logs, nil
}

func (s *MemoryStore) InsertChatMessage(ctx context.Context, msg *database.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = uint(len(s.chat) + 1)
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	s.chat = append(s.chat, *msg)
	return nil
}

func (s *MemoryStore) ListChatMessages(ctx context.Context) ([]database.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := make([]database.ChatMessage, len(s.chat))
	copy(msgs, s.chat)
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp.Before(msgs[j].Timestamp) })
	return msgs, nil
}
