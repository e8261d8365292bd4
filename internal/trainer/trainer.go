package trainer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"trainer-backend/internal/database"
	"trainer-backend/internal/store"
)

// Responder derives the trainer's reply to a user message.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

// RateLimitedError carries the suggested delay before retrying.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many chat requests, retry after %s", e.RetryAfter.Round(time.Second))
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}

type Reply struct {
	Message   string
	Timestamp time.Time
}

// Trainer runs the chat flow: rate limit check, persist the user message,
// derive a reply, persist the reply. The rate limiter is checked before any
// persistence so a rejected request leaves no record behind.
type Trainer struct {
	store     store.Store
	limiter   *RateLimiter
	responder Responder
}

func New(s store.Store, limiter *RateLimiter, responder Responder) *Trainer {
	return &Trainer{store: s, limiter: limiter, responder: responder}
}

func (t *Trainer) Chat(ctx context.Context, message string) (Reply, error) {
	if ok, retryAfter := t.limiter.Allow(); !ok {
		slog.Info("chat request rate limited", "retry_after", retryAfter)
		return Reply{}, &RateLimitedError{RetryAfter: retryAfter}
	}

	userMsg := database.ChatMessage{Sender: database.SenderUser, Message: message}
	if err := t.store.InsertChatMessage(ctx, &userMsg); err != nil {
		return Reply{}, err
	}

	// The user message stays persisted even if reply derivation fails; only
	// the assistant side is missing in that case.
	replyText, err := t.responder.Reply(ctx, message)
	if err != nil {
		slog.Error("error deriving trainer reply", "error", err)
		return Reply{}, err
	}

	aiMsg := database.ChatMessage{Sender: database.SenderAI, Message: replyText}
	if err := t.store.InsertChatMessage(ctx, &aiMsg); err != nil {
		return Reply{}, err
	}

	return Reply{Message: replyText, Timestamp: aiMsg.Timestamp}, nil
}

// History returns every chat message, oldest first.
func (t *Trainer) History(ctx context.Context) ([]database.ChatMessage, error) {
	return t.store.ListChatMessages(ctx)
}
