package api

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"trainer-backend/internal/database"
	"trainer-backend/internal/store"
	"trainer-backend/pkg/api"
)

const defaultHistoryLimit = 50

// PunchService handles activity logging and the merged history feed.
type PunchService struct {
	store store.Store
}

func NewPunchService(s store.Store) *PunchService {
	return &PunchService{store: s}
}

func (s *PunchService) AddRoutes(r chi.Router) {
	r.Route("/punch", func(r chi.Router) {
		r.Post("/exercise", RestHandlerStatus(http.StatusCreated, s.CreateExercisePunch))
		r.Post("/sleep", RestHandlerStatus(http.StatusCreated, s.CreateSleepPunch))
		r.Post("/nutrition", RestHandlerStatus(http.StatusCreated, s.CreateNutritionPunch))
		r.Get("/history", RestHandler(s.GetHistory))
	})
}

func (s *PunchService) CreateExercisePunch(r *http.Request) (any, error) {
	req, err := ParseRequest[api.ExercisePunchRequest](r)
	if err != nil {
		return nil, err
	}

	if req.DurationMinutes <= 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "duration must be a positive number")
	}
	if req.Intensity < 1 || req.Intensity > 10 {
		return nil, CodedErrorf(http.StatusBadRequest, "intensity must be between 1 and 10")
	}
	if req.Tiredness < -10 || req.Tiredness > 10 {
		return nil, CodedErrorf(http.StatusBadRequest, "tiredness must be between -10 and 10")
	}
	if req.GoalMet == nil {
		return nil, CodedErrorf(http.StatusBadRequest, "goal met must be a boolean value")
	}
	if req.CaloriesBurned != nil && *req.CaloriesBurned <= 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "calories burned must be a positive number")
	}

	log := database.ExerciseLog{
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		Tiredness:       req.Tiredness,
		GoalMet:         *req.GoalMet,
		Notes:           req.Notes,
		CaloriesBurned:  req.CaloriesBurned,
	}
	if req.Timestamp != nil {
		log.Timestamp = *req.Timestamp
	}

	if err := s.store.InsertExercise(r.Context(), &log); err != nil {
		slog.Error("error creating exercise punch", "error", err)
		return nil, CodedErrorf(http.StatusServiceUnavailable, "failed to create exercise punch")
	}

	return log, nil
}

func (s *PunchService) CreateSleepPunch(r *http.Request) (any, error) {
	req, err := ParseRequest[api.SleepPunchRequest](r)
	if err != nil {
		return nil, err
	}

	if req.Quality < 1 || req.Quality > 5 {
		return nil, CodedErrorf(http.StatusBadRequest, "quality must be between 1 and 5")
	}

	log := database.SleepLog{
		Quality: req.Quality,
		Notes:   req.Notes,
	}
	if req.Timestamp != nil {
		log.Timestamp = *req.Timestamp
	}

	if err := s.store.InsertSleep(r.Context(), &log); err != nil {
		slog.Error("error creating sleep punch", "error", err)
		return nil, CodedErrorf(http.StatusServiceUnavailable, "failed to create sleep punch")
	}

	return log, nil
}

func (s *PunchService) CreateNutritionPunch(r *http.Request) (any, error) {
	req, err := ParseRequest[api.NutritionPunchRequest](r)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.MealType) == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "meal type is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "description is required")
	}
	if req.Calories != nil && *req.Calories <= 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "calories must be a positive number")
	}

	log := database.NutritionLog{
		MealType:    req.MealType,
		Description: req.Description,
		Calories:    req.Calories,
	}
	if req.Timestamp != nil {
		log.Timestamp = *req.Timestamp
	}

	if err := s.store.InsertNutrition(r.Context(), &log); err != nil {
		slog.Error("error creating nutrition punch", "error", err)
		return nil, CodedErrorf(http.StatusServiceUnavailable, "failed to create nutrition punch")
	}

	return log, nil
}

func (s *PunchService) GetHistory(r *http.Request) (any, error) {
	params, err := ParseRequestQueryParams[api.HistoryParams](r)
	if err != nil {
		return nil, err
	}

	timeRange, err := parseHistoryRange(params)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	ctx := r.Context()
	exercise, err := s.store.ListExercise(ctx, timeRange)
	if err != nil {
		slog.Error("error fetching punch history", "kind", "exercise", "error", err)
		return nil, CodedErrorf(http.StatusServiceUnavailable, "failed to fetch punch history")
	}
	sleep, err := s.store.ListSleep(ctx, timeRange)
	if err != nil {
		slog.Error("error fetching punch history", "kind", "sleep", "error", err)
		return nil, CodedErrorf(http.StatusServiceUnavailable, "failed to fetch punch history")
	}
	nutrition, err := s.store.ListNutrition(ctx, timeRange)
	if err != nil {
		slog.Error("error fetching punch history", "kind", "nutrition", "error", err)
		return nil, CodedErrorf(http.StatusServiceUnavailable, "failed to fetch punch history")
	}

	merged := mergeHistory(exercise, sleep, nutrition)

	if offset >= len(merged) {
		return []api.HistoryEntry{}, nil
	}
	end := offset + limit
	if end > len(merged) {
		end = len(merged)
	}
	return merged[offset:end], nil
}

func parseHistoryRange(params api.HistoryParams) (store.TimeRange, error) {
	var r store.TimeRange
	if params.StartDate != "" {
		t, err := parseDate(params.StartDate)
		if err != nil {
			return r, CodedErrorf(http.StatusBadRequest, "invalid startDate %q", params.StartDate)
		}
		r.After = &t
	}
	if params.EndDate != "" {
		t, err := parseDate(params.EndDate)
		if err != nil {
			return r, CodedErrorf(http.StatusBadRequest, "invalid endDate %q", params.EndDate)
		}
		r.Before = &t
	}
	return r, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// mergeHistory folds the three kinds into one feed shape: sleep quality
// surfaces as intensity, nutrition description as notes and nutrition
// calories as calories_burned. Ordering is timestamp descending, with
// (type, id) as tie breakers so pagination is stable.
func mergeHistory(exercise []database.ExerciseLog, sleep []database.SleepLog, nutrition []database.NutritionLog) []api.HistoryEntry {
	entries := make([]api.HistoryEntry, 0, len(exercise)+len(sleep)+len(nutrition))

	for i := range exercise {
		log := &exercise[i]
		entries = append(entries, api.HistoryEntry{
			Type:            "exercise",
			ID:              log.ID,
			Timestamp:       log.Timestamp,
			DurationMinutes: &log.DurationMinutes,
			Intensity:       &log.Intensity,
			Tiredness:       &log.Tiredness,
			GoalMet:         &log.GoalMet,
			Notes:           log.Notes,
			CaloriesBurned:  log.CaloriesBurned,
			CreatedAt:       log.CreatedAt,
		})
	}
	for i := range sleep {
		log := &sleep[i]
		entries = append(entries, api.HistoryEntry{
			Type:      "sleep",
			ID:        log.ID,
			Timestamp: log.Timestamp,
			Intensity: &log.Quality,
			Notes:     log.Notes,
			CreatedAt: log.CreatedAt,
		})
	}
	for i := range nutrition {
		log := &nutrition[i]
		entries = append(entries, api.HistoryEntry{
			Type:           "nutrition",
			ID:             log.ID,
			Timestamp:      log.Timestamp,
			Notes:          &log.Description,
			CaloriesBurned: log.Calories,
			CreatedAt:      log.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		if entries[i].Type != entries[j].Type {
			return entries[i].Type < entries[j].Type
		}
		return entries[i].ID < entries[j].ID
	})

	return entries
}
