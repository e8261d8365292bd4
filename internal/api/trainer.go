package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"trainer-backend/internal/store"
	"trainer-backend/internal/trainer"
	"trainer-backend/pkg/api"
)

// TrainerService exposes the AI trainer chat.
type TrainerService struct {
	trainer *trainer.Trainer
}

func NewTrainerService(t *trainer.Trainer) *TrainerService {
	return &TrainerService{trainer: t}
}

func (s *TrainerService) AddRoutes(r chi.Router) {
	r.Route("/trainer", func(r chi.Router) {
		r.Get("/chat", RestHandler(s.GetChatHistory))
		r.Post("/chat", RestHandler(s.Chat))
	})
}

func (s *TrainerService) Chat(r *http.Request) (any, error) {
	req, err := ParseRequest[api.ChatRequest](r)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Message) == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "message is required")
	}

	reply, err := s.trainer.Chat(r.Context(), req.Message)
	if err != nil {
		return nil, chatError(err)
	}

	return api.ChatResponse{Message: reply.Message, Timestamp: reply.Timestamp}, nil
}

func chatError(err error) error {
	var rateErr *trainer.RateLimitedError
	if errors.As(err, &rateErr) {
		return CodedErrorf(http.StatusTooManyRequests, "too many chat requests, retry after %.0f seconds", rateErr.RetryAfter.Seconds())
	}

	var upstreamErr *trainer.UpstreamError
	if errors.As(err, &upstreamErr) {
		switch upstreamErr.Kind {
		case trainer.UpstreamUnauthenticated:
			return CodedErrorf(http.StatusBadGateway, "AI trainer rejected our credentials")
		case trainer.UpstreamRateLimited, trainer.UpstreamUnreachable:
			return CodedErrorf(http.StatusServiceUnavailable, "AI trainer is temporarily unavailable")
		default:
			return CodedErrorf(http.StatusInternalServerError, "failed to process chat message")
		}
	}

	if errors.Is(err, store.ErrStorage) {
		slog.Error("error persisting chat message", "error", err)
		return CodedErrorf(http.StatusServiceUnavailable, "failed to process chat message")
	}

	return CodedErrorf(http.StatusInternalServerError, "failed to process chat message")
}

func (s *TrainerService) GetChatHistory(r *http.Request) (any, error) {
	history, err := s.trainer.History(r.Context())
	if err != nil {
		slog.Error("error fetching chat history", "error", err)
		return nil, CodedErrorf(http.StatusServiceUnavailable, "failed to fetch chat history")
	}
	return history, nil
}
