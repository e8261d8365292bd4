package api

// ActivityResponse is the envelope the chart endpoints reply with.
type ActivityResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type SleepPoint struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Quality int    `json:"quality"`
}

type WorkoutPoint struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	Duration       int    `json:"duration"`
	Intensity      int    `json:"intensity"`
	CaloriesBurned *int   `json:"caloriesBurned"`
}

type CaloriePoint struct {
	Date             string `json:"date"`
	CaloriesConsumed int    `json:"caloriesConsumed"`
	CaloriesBurned   int    `json:"caloriesBurned"`
}
