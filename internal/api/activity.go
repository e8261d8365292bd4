package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"trainer-backend/internal/store"
	"trainer-backend/pkg/api"
)

const (
	sleepWindow   = 7 * 24 * time.Hour
	workoutWindow = 30 * 24 * time.Hour
	calorieDays   = 30
)

// ActivityService produces the time-bucketed chart series. Every series is
// recomputed from the store on each request.
type ActivityService struct {
	store store.Store
	now   func() time.Time
}

func NewActivityService(s store.Store) *ActivityService {
	return &ActivityService{store: s, now: time.Now}
}

func (s *ActivityService) AddRoutes(r chi.Router) {
	r.Route("/activity", func(r chi.Router) {
		r.Get("/sleep", RestHandler(s.GetSleepData))
		r.Get("/workout", RestHandler(s.GetWorkoutData))
		r.Get("/calories", RestHandler(s.GetCaloriesData))
	})
}

func (s *ActivityService) GetSleepData(r *http.Request) (any, error) {
	logs, err := s.store.ListSleep(r.Context(), store.Since(s.now().UTC(), sleepWindow))
	if err != nil {
		slog.Error("error fetching sleep data", "error", err)
		return nil, CodedErrorf(http.StatusServiceUnavailable, "failed to fetch sleep data")
	}

	points := make([]api.SleepPoint, 0, len(logs))
	for _, log := range logs {
		ts := log.Timestamp.UTC()
		points = append(points, api.SleepPoint{
			Date:    ts.Format("2006-01-02"),
			Time:    ts.Format("03:04 PM"),
			Quality: log.Quality,
		})
	}

	return api.ActivityResponse{Success: true, Data: points}, nil
}

func (s *ActivityService) GetWorkoutData(r *http.Request) (any, error) {
	logs, err := s.store.ListExercise(r.Context(), store.Since(s.now().UTC(), workoutWindow))
	if err != nil {
		slog.Error("error fetching workout data", "error", err)
		return nil, CodedErrorf(http.StatusServiceUnavailable, "failed to fetch workout data")
	}

	points := make([]api.WorkoutPoint, 0, len(logs))
	for _, log := range logs {
		ts := log.Timestamp.UTC()
		points = append(points, api.WorkoutPoint{
			Date:           ts.Format("2006-01-02"),
			Time:           ts.Format("03:04 PM"),
			Duration:       log.DurationMinutes,
			Intensity:      log.Intensity,
			CaloriesBurned: log.CaloriesBurned,
		})
	}

	return api.ActivityResponse{Success: true, Data: points}, nil
}

func (s *ActivityService) GetCaloriesData(r *http.Request) (any, error) {
	now := s.now().UTC()
	window := store.Since(now, calorieDays*24*time.Hour)

	ctx := r.Context()
	nutrition, err := s.store.ListNutrition(ctx, window)
	if err != nil {
		slog.Error("error fetching calories data", "kind", "nutrition", "error", err)
		return nil, CodedErrorf(http.StatusServiceUnavailable, "failed to fetch calories data")
	}
	exercise, err := s.store.ListExercise(ctx, window)
	if err != nil {
		slog.Error("error fetching calories data", "kind", "exercise", "error", err)
		return nil, CodedErrorf(http.StatusServiceUnavailable, "failed to fetch calories data")
	}

	// One entry per calendar day, zero-filled, oldest first, today included.
	points := make([]api.CaloriePoint, 0, calorieDays)
	index := make(map[string]int, calorieDays)
	for i := calorieDays - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		index[date] = len(points)
		points = append(points, api.CaloriePoint{Date: date})
	}

	for _, log := range nutrition {
		if log.Calories == nil {
			continue
		}
		if i, ok := index[log.Timestamp.UTC().Format("2006-01-02")]; ok {
			points[i].CaloriesConsumed += *log.Calories
		}
	}
	for _, log := range exercise {
		if log.CaloriesBurned == nil {
			continue
		}
		if i, ok := index[log.Timestamp.UTC().Format("2006-01-02")]; ok {
			points[i].CaloriesBurned += *log.CaloriesBurned
		}
	}

	return api.ActivityResponse{Success: true, Data: points}, nil
}
