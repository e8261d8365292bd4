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
	"trainer-backend/internal/trainer"
	pkgapi "trainer-backend/pkg/api"
)

type stubResponder struct {
	reply string
	err   error
}

func (r *stubResponder) Reply(ctx context.Context, message string) (string, error) {
	return r.reply, r.err
}

func newTrainerRouter(t *testing.T, limit int, responder trainer.Responder) (chi.Router, *store.MemoryStore) {
	s := store.NewMemoryStore()
	tr := trainer.New(s, trainer.NewRateLimiter(limit, time.Minute), responder)

	router := chi.NewRouter()
	NewTrainerService(tr).AddRoutes(router)
	return router, s
}

func TestChatRequiresMessage(t *testing.T) {
	router, s := newTrainerRouter(t, 20, &stubResponder{reply: "hi"})

	rec := postJSON(t, router, "/trainer/chat", pkgapi.ChatRequest{Message: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	history, err := s.ListChatMessages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestChatReturnsReplyAndPersistsBothSides(t *testing.T) {
	router, _ := newTrainerRouter(t, 20, &stubResponder{reply: "keep pushing"})

	rec := postJSON(t, router, "/trainer/chat", pkgapi.ChatRequest{Message: "how is my workout going?"})
	require.Equal(t, http.StatusOK, rec.Code, "received response: "+rec.Body.String())

	var reply pkgapi.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "keep pushing", reply.Message)
	assert.False(t, reply.Timestamp.IsZero())

	req := httptest.NewRequest(http.MethodGet, "/trainer/chat", nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)
	require.Equal(t, http.StatusOK, getRec.Code)

	var history []database.ChatMessage
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &history))
	require.Equal(t, 2, len(history))
	assert.Equal(t, database.SenderUser, history[0].Sender)
	assert.Equal(t, "how is my workout going?", history[0].Message)
	assert.Equal(t, database.SenderAI, history[1].Sender)
	assert.Equal(t, "keep pushing", history[1].Message)
}

func TestChatRateLimited(t *testing.T) {
	router, s := newTrainerRouter(t, 1, &stubResponder{reply: "ok"})

	rec := postJSON(t, router, "/trainer/chat", pkgapi.ChatRequest{Message: "first"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, router, "/trainer/chat", pkgapi.ChatRequest{Message: "second"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// The rejected message must not be recorded.
	history, err := s.ListChatMessages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, len(history))
}

func TestChatKeepsUserMessageWhenUpstreamFails(t *testing.T) {
	responder := &stubResponder{err: &trainer.UpstreamError{Kind: trainer.UpstreamUnreachable, Err: context.DeadlineExceeded}}
	router, s := newTrainerRouter(t, 20, responder)

	rec := postJSON(t, router, "/trainer/chat", pkgapi.ChatRequest{Message: "are you there?"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	history, err := s.ListChatMessages(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, len(history))
	assert.Equal(t, database.SenderUser, history[0].Sender)
	assert.Equal(t, "are you there?", history[0].Message)
}

func TestChatUpstreamErrorMapping(t *testing.T) {
	tests := []struct {
		kind string
		want int
	}{
		{trainer.UpstreamRateLimited, http.StatusServiceUnavailable},
		{trainer.UpstreamUnauthenticated, http.StatusBadGateway},
		{trainer.UpstreamUnreachable, http.StatusServiceUnavailable},
		{trainer.UpstreamOther, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			responder := &stubResponder{err: &trainer.UpstreamError{Kind: tt.kind, Err: assert.AnError}}
			router, _ := newTrainerRouter(t, 20, responder)

			rec := postJSON(t, router, "/trainer/chat", pkgapi.ChatRequest{Message: "hello"})
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestChatHistoryAscending(t *testing.T) {
	router, s := newTrainerRouter(t, 20, &stubResponder{reply: "ok"})
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.InsertChatMessage(ctx, &database.ChatMessage{Sender: database.SenderUser, Message: "one", Timestamp: base}))
	require.NoError(t, s.InsertChatMessage(ctx, &database.ChatMessage{Sender: database.SenderAI, Message: "two", Timestamp: base.Add(time.Minute)}))
	require.NoError(t, s.InsertChatMessage(ctx, &database.ChatMessage{Sender: database.SenderUser, Message: "three", Timestamp: base.Add(2 * time.Minute)}))

	req := httptest.NewRequest(http.MethodGet, "/trainer/chat", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var history []database.ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Equal(t, 3, len(history))
	assert.Equal(t, "one", history[0].Message)
	assert.Equal(t, "two", history[1].Message)
	assert.Equal(t, "three", history[2].Message)
}
