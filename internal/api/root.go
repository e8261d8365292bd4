package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AddRootRoutes serves the API index and health check.
func AddRootRoutes(r chi.Router) {
	r.Get("/health", RestHandler(func(r *http.Request) (any, error) { return nil, nil }))

	r.Get("/", RestHandler(func(r *http.Request) (any, error) {
		return map[string]any{
			"status": "AI Life Trainer API is running",
			"endpoints": map[string]any{
				"punch": map[string]string{
					"POST /api/punch/exercise":  "Log exercise activity",
					"POST /api/punch/sleep":     "Log sleep activity",
					"POST /api/punch/nutrition": "Log nutrition activity",
					"GET /api/punch/history":    "Get activity history",
				},
				"trainer": map[string]string{
					"POST /api/trainer/chat": "Chat with AI trainer",
					"GET /api/trainer/chat":  "Get chat history",
				},
				"activity": map[string]string{
					"GET /api/activity/sleep":    "Sleep quality for the past week",
					"GET /api/activity/workout":  "Workouts for the past month",
					"GET /api/activity/calories": "Daily calories for the past month",
				},
			},
		}, nil
	}))
}
