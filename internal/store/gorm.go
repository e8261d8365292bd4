package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"trainer-backend/internal/database"
)

// GormStore persists records through a gorm connection, either postgres or
// sqlite depending on how the *gorm.DB was opened.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

func (s *GormStore) InsertExercise(ctx context.Context, log *database.ExerciseLog) error {
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		return storageErr("insert exercise log", err)
	}
	return nil
}

func (s *GormStore) InsertSleep(ctx context.Context, log *database.SleepLog) error {
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		return storageErr("insert sleep log", err)
	}
	return nil
}

func (s *GormStore) InsertNutrition(ctx context.Context, log *database.NutritionLog) error {
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		return storageErr("insert nutrition log", err)
	}
	return nil
}

func rangedQuery(db *gorm.DB, r TimeRange) *gorm.DB {
	if r.After != nil {
		db = db.Where("timestamp >= ?", *r.After)
	}
	if r.Before != nil {
		db = db.Where("timestamp <= ?", *r.Before)
	}
	return db.Order("timestamp ASC, id ASC")
}

func (s *GormStore) ListExercise(ctx context.Context, r TimeRange) ([]database.ExerciseLog, error) {
	var logs []database.ExerciseLog
	if err := rangedQuery(s.db.WithContext(ctx), r).Find(&logs).Error; err != nil {
		return nil, storageErr("list exercise logs", err)
	}
	return logs, nil
}

func (s *GormStore) ListSleep(ctx context.Context, r TimeRange) ([]database.SleepLog, error) {
	var logs []database.SleepLog
	if err := rangedQuery(s.db.WithContext(ctx), r).Find(&logs).Error; err != nil {
		return nil, storageErr("list sleep logs", err)
	}
	return logs, nil
}

func (s *GormStore) ListNutrition(ctx context.Context, r TimeRange) ([]database.NutritionLog, error) {
	var logs []database.NutritionLog
	if err := rangedQuery(s.db.WithContext(ctx), r).Find(&logs).Error; err != nil {
		return nil, storageErr("list nutrition logs", err)
	}
	return logs, nil
}

func (s *GormStore) InsertChatMessage(ctx context.Context, msg *database.ChatMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return storageErr("insert chat message", err)
	}
	return nil
}

func (s *GormStore) ListChatMessages(ctx context.Context) ([]database.ChatMessage, error) {
	var msgs []database.ChatMessage
	if err := s.db.WithContext(ctx).Order("timestamp ASC, id ASC").Find(&msgs).Error; err != nil {
		return nil, storageErr("list chat messages", err)
	}
	return msgs, nil
}
