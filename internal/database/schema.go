package database

import (
	"time"
)

const (
	SenderUser string = "user"
	SenderAI   string = "ai"
)

type ExerciseLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Timestamp       time.Time `gorm:"index;not null" json:"timestamp"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Intensity       int       `gorm:"not null" json:"intensity"`
	Tiredness       int       `gorm:"not null" json:"tiredness"`
	GoalMet         bool      `gorm:"not null" json:"goal_met"`
	Notes           *string   `json:"notes"`
	CaloriesBurned  *int      `json:"calories_burned"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type SleepLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
	Quality   int       `gorm:"not null" json:"quality"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NutritionLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Timestamp   time.Time `gorm:"index;not null" json:"timestamp"`
	MealType    string    `gorm:"size:50;not null" json:"meal_type"`
	Description string    `gorm:"not null" json:"description"`
	Calories    *int      `json:"calories"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Sender    string    `gorm:"size:10;not null" json:"sender"` // 'user' or 'ai'
	Message   string    `gorm:"not null" json:"message"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}
