package store

import (
	"context"
	"errors"
	"time"

	"trainer-backend/internal/database"
)

// ErrStorage marks failures of the underlying store. Callers can treat any
// error wrapping it as retryable.
var ErrStorage = errors.New("storage unavailable")

// TimeRange bounds a list operation on record timestamps. Both bounds are
// inclusive and either may be nil.
type TimeRange struct {
	After  *time.Time
	Before *time.Time
}

func (r TimeRange) Contains(t time.Time) bool {
	if r.After != nil && t.Before(*r.After) {
		return false
	}
	if r.Before != nil && t.After(*r.Before) {
		return false
	}
	return true
}

// Since returns a range covering the trailing window ending at now.
func Since(now time.Time, window time.Duration) TimeRange {
	after := now.Add(-window)
	return TimeRange{After: &after}
}

// Store exposes typed operations for each record kind. Inserts assign the id
// and creation timestamps, and default the record timestamp to the current
// time when the caller leaves it zero. List operations return records in
// ascending timestamp order.
type Store interface {
	InsertExercise(ctx context.Context, log *database.ExerciseLog) error
	InsertSleep(ctx context.Context, log *database.SleepLog) error
	InsertNutrition(ctx context.Context, log *database.NutritionLog) error

	ListExercise(ctx context.Context, r TimeRange) ([]database.ExerciseLog, error)
	ListSleep(ctx context.Context, r TimeRange) ([]database.SleepLog, error)
	ListNutrition(ctx context.Context, r TimeRange) ([]database.NutritionLog, error)

	InsertChatMessage(ctx context.Context, msg *database.ChatMessage) error
	ListChatMessages(ctx context.Context) ([]database.ChatMessage, error)
}
