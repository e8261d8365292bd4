package api

import "time"

type ExercisePunchRequest struct {
	Timestamp       *time.Time `json:"timestamp"`
	DurationMinutes int        `json:"duration_minutes"`
	Intensity       int        `json:"intensity"`
	Tiredness       int        `json:"tiredness"`
	GoalMet         *bool      `json:"goal_met"`
	Notes           *string    `json:"notes"`
	CaloriesBurned  *int       `json:"calories_burned"`
}

type SleepPunchRequest struct {
	Timestamp *time.Time `json:"timestamp"`
	Quality   int        `json:"quality"`
	Notes     *string    `json:"notes"`
}

type NutritionPunchRequest struct {
	Timestamp   *time.Time `json:"timestamp"`
	MealType    string     `json:"meal_type"`
	Description string     `json:"description"`
	Calories    *int       `json:"calories"`
}

type HistoryParams struct {
	StartDate string `schema:"startDate"`
	EndDate   string `schema:"endDate"`
	Limit     int    `schema:"limit"`
	Offset    int    `schema:"offset"`
}

// HistoryEntry is the uniform shape of the merged feed. Kind-specific fields
// are folded into shared columns: a sleep entry surfaces its quality as
// intensity, a nutrition entry surfaces its description as notes and its
// calories as calories_burned.
type HistoryEntry struct {
	Type            string    `json:"type"`
	ID              uint      `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	DurationMinutes *int      `json:"duration_minutes"`
	Intensity       *int      `json:"intensity"`
	Tiredness       *int      `json:"tiredness"`
	GoalMet         *bool     `json:"goal_met"`
	Notes           *string   `json:"notes"`
	CaloriesBurned  *int      `json:"calories_burned"`
	CreatedAt       time.Time `json:"created_at"`
}
