package trainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"trainer-backend/internal/store"
)

const (
	UpstreamRateLimited     = "rate-limited"
	UpstreamUnauthenticated = "unauthenticated"
	UpstreamUnreachable     = "unreachable"
	UpstreamOther           = "other"
)

// UpstreamError wraps a completion service failure with a coarse kind so the
// API layer can map it to a distinct status.
type UpstreamError struct {
	Kind string
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion service failure (%s): %v", e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func classifyUpstream(err error) *UpstreamError {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return &UpstreamError{Kind: UpstreamRateLimited, Err: err}
		case http.StatusUnauthorized, http.StatusForbidden:
			return &UpstreamError{Kind: UpstreamUnauthenticated, Err: err}
		default:
			return &UpstreamError{Kind: UpstreamOther, Err: err}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{Kind: UpstreamUnreachable, Err: err}
	}
	return &UpstreamError{Kind: UpstreamUnreachable, Err: err}
}

const systemPrompt = "You are an AI personal trainer. You have access to the user's " +
	"recent activity records below. Give short, encouraging, practical advice " +
	"about exercise, nutrition, and sleep grounded in that data."

const calorieWindow = 30 * 24 * time.Hour

// OpenAIResponder builds a prompt from the user's records for the current day
// plus a trailing window of calorie totals and forwards it to the chat
// completions API.
type OpenAIResponder struct {
	client openai.Client
	model  string
	store  store.Store
	now    func() time.Time
}

func NewOpenAIResponder(apiKey, model string, s store.Store) *OpenAIResponder {
	return &OpenAIResponder{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		store:  s,
		now:    time.Now,
	}
}

func (o *OpenAIResponder) Reply(ctx context.Context, message string) (string, error) {
	userContext, err := o.buildUserContext(ctx)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt + "\n\n" + userContext),
			openai.UserMessage(message),
		},
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		slog.Error("openai error: chat completions failed", "model", o.model, "error", err)
		return "", classifyUpstream(err)
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Kind: UpstreamOther, Err: errors.New("completion returned no choices")}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (o *OpenAIResponder) buildUserContext(ctx context.Context) (string, error) {
	now := o.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	today := store.TimeRange{After: &midnight, Before: &now}

	exercise, err := o.store.ListExercise(ctx, today)
	if err != nil {
		return "", err
	}
	sleep, err := o.store.ListSleep(ctx, today)
	if err != nil {
		return "", err
	}
	nutrition, err := o.store.ListNutrition(ctx, today)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Today's records:\n")
	for _, log := range exercise {
		fmt.Fprintf(&b, "- exercise: %d min at intensity %d/10, tiredness %d, goal met: %t\n",
			log.DurationMinutes, log.Intensity, log.Tiredness, log.GoalMet)
	}
	for _, log := range sleep {
		fmt.Fprintf(&b, "- sleep: quality %d/5\n", log.Quality)
	}
	for _, log := range nutrition {
		fmt.Fprintf(&b, "- meal (%s): %s\n", log.MealType, log.Description)
	}
	if len(exercise)+len(sleep)+len(nutrition) == 0 {
		b.WriteString("- none\n")
	}

	consumed, burned, err := o.calorieTotals(ctx, now)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "Past 30 days: %d calories consumed, %d calories burned.\n", consumed, burned)

	return b.String(), nil
}

func (o *OpenAIResponder) calorieTotals(ctx context.Context, now time.Time) (int, int, error) {
	window := store.Since(now, calorieWindow)

	nutrition, err := o.store.ListNutrition(ctx, window)
	if err != nil {
		return 0, 0, err
	}
	exercise, err := o.store.ListExercise(ctx, window)
	if err != nil {
		return 0, 0, err
	}

	var consumed, burned int
	for _, log := range nutrition {
		if log.Calories != nil {
			consumed += *log.Calories
		}
	}
	for _, log := range exercise {
		if log.CaloriesBurned != nil {
			burned += *log.CaloriesBurned
		}
	}
	return consumed, burned, nil
}
