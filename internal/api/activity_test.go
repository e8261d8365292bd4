package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainer-backend/internal/database"
	"trainer-backend/internal/store"
	pkgapi "trainer-backend/pkg/api"
)

var activityNow = time.Date(2025, 3, 31, 15, 0, 0, 0, time.UTC)

func newActivityRouter(t *testing.T) (chi.Router, *store.MemoryStore) {
	s := store.NewMemoryStore()
	service := NewActivityService(s)
	service.now = func() time.Time { return activityNow }

	router := chi.NewRouter()
	service.AddRoutes(router)
	return router, s
}

func getActivity[T any](t *testing.T, router chi.Router, path string) []T {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "received response: "+rec.Body.String())

	var response struct {
		Success bool `json:"success"`
		Data    []T  `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	return response.Data
}

func TestCaloriesSeriesZeroFilled(t *testing.T) {
	router, _ := newActivityRouter(t)

	points := getActivity[pkgapi.CaloriePoint](t, router, "/activity/calories")
	require.Equal(t, 30, len(points))

	assert.Equal(t, "2025-03-02", points[0].Date)
	assert.Equal(t, "2025-03-31", points[29].Date)

	for i, point := range points {
		assert.Equal(t, 0, point.CaloriesConsumed, "day %s", point.Date)
		assert.Equal(t, 0, point.CaloriesBurned, "day %s", point.Date)
		if i > 0 {
			assert.Greater(t, point.Date, points[i-1].Date)
		}
	}
}

func TestCaloriesSeriesSumsPerDay(t *testing.T) {
	router, s := newActivityRouter(t)
	ctx := context.Background()

	day := time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.InsertNutrition(ctx, &database.NutritionLog{
		Timestamp: day.Add(8 * time.Hour), MealType: "breakfast", Description: "oats", Calories: intPtr(350),
	}))
	require.NoError(t, s.InsertNutrition(ctx, &database.NutritionLog{
		Timestamp: day.Add(13 * time.Hour), MealType: "lunch", Description: "salad", Calories: intPtr(500),
	}))
	require.NoError(t, s.InsertExercise(ctx, &database.ExerciseLog{
		Timestamp: day.Add(18 * time.Hour), DurationMinutes: 45, Intensity: 7, GoalMet: true, CaloriesBurned: intPtr(420),
	}))

	points := getActivity[pkgapi.CaloriePoint](t, router, "/activity/calories")
	require.Equal(t, 30, len(points))

	entry := points[28]
	assert.Equal(t, "2025-03-30", entry.Date)
	assert.Equal(t, 850, entry.CaloriesConsumed)
	assert.Equal(t, 420, entry.CaloriesBurned)
}

func TestSleepSeriesTrailingWeek(t *testing.T) {
	router, s := newActivityRouter(t)
	ctx := context.Background()

	inWindow := activityNow.Add(-2 * 24 * time.Hour)
	older := activityNow.Add(-10 * 24 * time.Hour)
	require.NoError(t, s.InsertSleep(ctx, &database.SleepLog{Timestamp: inWindow, Quality: 4}))
	require.NoError(t, s.InsertSleep(ctx, &database.SleepLog{Timestamp: older, Quality: 2}))

	points := getActivity[pkgapi.SleepPoint](t, router, "/activity/sleep")
	require.Equal(t, 1, len(points))
	assert.Equal(t, inWindow.Format("2006-01-02"), points[0].Date)
	assert.Equal(t, inWindow.Format("03:04 PM"), points[0].Time)
	assert.Equal(t, 4, points[0].Quality)
}

func TestWorkoutSeriesTrailingMonth(t *testing.T) {
	router, s := newActivityRouter(t)
	ctx := context.Background()

	first := activityNow.Add(-20 * 24 * time.Hour)
	second := activityNow.Add(-5 * 24 * time.Hour)
	outside := activityNow.Add(-40 * 24 * time.Hour)
	require.NoError(t, s.InsertExercise(ctx, &database.ExerciseLog{Timestamp: first, DurationMinutes: 60, Intensity: 8, GoalMet: true, CaloriesBurned: intPtr(500)}))
	require.NoError(t, s.InsertExercise(ctx, &database.ExerciseLog{Timestamp: second, DurationMinutes: 30, Intensity: 4, GoalMet: false}))
	require.NoError(t, s.InsertExercise(ctx, &database.ExerciseLog{Timestamp: outside, DurationMinutes: 90, Intensity: 9, GoalMet: true}))

	points := getActivity[pkgapi.WorkoutPoint](t, router, "/activity/workout")
	require.Equal(t, 2, len(points))

	assert.Equal(t, first.Format("2006-01-02"), points[0].Date)
	assert.Equal(t, 60, points[0].Duration)
	assert.Equal(t, 8, points[0].Intensity)
	require.NotNil(t, points[0].CaloriesBurned)
	assert.Equal(t, 500, *points[0].CaloriesBurned)

	assert.Equal(t, second.Format("2006-01-02"), points[1].Date)
	assert.Nil(t, points[1].CaloriesBurned)
}

func TestActivitySeriesIdempotent(t *testing.T) {
	router, s := newActivityRouter(t)
	ctx := context.Background()

	require.NoError(t, s.InsertSleep(ctx, &database.SleepLog{Timestamp: activityNow.Add(-24 * time.Hour), Quality: 5}))

	first := getActivity[pkgapi.SleepPoint](t, router, "/activity/sleep")
	second := getActivity[pkgapi.SleepPoint](t, router, "/activity/sleep")
	assert.Equal(t, first, second)
}
