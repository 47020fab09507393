package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowhire/sunshine/internal/config"
	"github.com/glowhire/sunshine/internal/domain"
	"github.com/glowhire/sunshine/internal/repository"
	"github.com/glowhire/sunshine/internal/service"
)

type stubAssistant struct {
	reply string
}

func (s stubAssistant) Generate(_ context.Context, _ service.AssistantRequest) (*service.AssistantReply, error) {
	return &service.AssistantReply{Response: s.reply}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := repository.NewMemory()
	sessions := service.NewSessionService(store)
	conversations := service.NewConversationService(sessions, stubAssistant{reply: "Happy to help!"}, service.LogNavigator{})
	t.Cleanup(conversations.Shutdown)

	h := New(Deps{
		Conversations: conversations,
		Sessions:      sessions,
		Trigger:       service.NewTriggerService(store, 1),
		Degraded:      func() bool { return false },
	})

	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var out map[string]json.RawMessage
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func openConversation(t *testing.T, router http.Handler) (convID, sessionID string) {
	t.Helper()

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/conversations", map[string]string{})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(body["conversation_id"], &convID))
	require.NoError(t, json.Unmarshal(body["session_id"], &sessionID))
	return convID, sessionID
}

func TestOpenReturnsGreeting(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/conversations", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var greeting domain.Message
	require.NoError(t, json.Unmarshal(body["greeting"], &greeting))
	assert.False(t, greeting.FromUser)
	assert.NotEmpty(t, greeting.Text)
}

func TestSendConfirmFlow(t *testing.T) {
	router := newTestRouter(t)
	convID, _ := openConversation(t, router)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/conversations/"+convID+"/messages",
		map[string]interface{}{"text": "I want to post a job"})
	require.Equal(t, http.StatusOK, rec.Code)

	var msg domain.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	require.NotNil(t, msg.PendingRoute)
	assert.Equal(t, config.PathPostJob, msg.PendingRoute.Destination)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/conversations/"+convID+"/route/confirm", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var destination string
	require.NoError(t, json.Unmarshal(body["destination"], &destination))
	assert.Equal(t, config.PathPostJob, destination)

	// A second confirm has nothing pending.
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/conversations/"+convID+"/route/confirm", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body = doJSON(t, router, http.MethodGet, "/api/v1/conversations/"+convID+"/messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msgs []domain.Message
	require.NoError(t, json.Unmarshal(body["messages"], &msgs))
	// greeting, user turn, assistant reply, confirmation.
	assert.Len(t, msgs, 4)
}

func TestCancelRoute(t *testing.T) {
	router := newTestRouter(t)
	convID, _ := openConversation(t, router)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/conversations/"+convID+"/messages",
		map[string]interface{}{"text": "I want to post a job"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/conversations/"+convID+"/route/cancel", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/conversations/"+convID+"/route/confirm", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEmptyMessageIsBadRequest(t *testing.T) {
	router := newTestRouter(t)
	convID, _ := openConversation(t, router)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/conversations/"+convID+"/messages",
		map[string]interface{}{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownConversationIsNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/conversations/00000000-0000-0000-0000-000000000001/messages",
		map[string]interface{}{"text": "hello"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/conversations/not-a-uuid/messages",
		map[string]interface{}{"text": "hello"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetRebindsSession(t *testing.T) {
	router := newTestRouter(t)
	convID, sessionID := openConversation(t, router)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/conversations/"+convID+"/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var newSession string
	require.NoError(t, json.Unmarshal(body["session_id"], &newSession))
	assert.NotEqual(t, sessionID, newSession)

	var greeting domain.Message
	require.NoError(t, json.Unmarshal(body["greeting"], &greeting))
	assert.NotEmpty(t, greeting.Text)
}

func TestCloseThenSendConflicts(t *testing.T) {
	router := newTestRouter(t)
	convID, _ := openConversation(t, router)

	rec, _ := doJSON(t, router, http.MethodDelete, "/api/v1/conversations/"+convID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/conversations/"+convID+"/messages",
		map[string]interface{}{"text": "hello"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMinimizeRestore(t *testing.T) {
	router := newTestRouter(t)
	convID, _ := openConversation(t, router)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/conversations/"+convID+"/minimize", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/conversations/"+convID+"/restore", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTriggerEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/trigger",
		map[string]string{"path": config.PathPostJob})
	require.Equal(t, http.StatusOK, rec.Code)

	var nudge bool
	require.NoError(t, json.Unmarshal(body["nudge"], &nudge))
	assert.True(t, nudge)

	var visitorID string
	require.NoError(t, json.Unmarshal(body["visitor_id"], &visitorID))
	require.NotEmpty(t, visitorID)

	// Same visitor again: the one-shot flag holds.
	rec, body = doJSON(t, router, http.MethodPost, "/api/v1/trigger",
		map[string]string{"path": config.PathPostJob, "visitor_id": visitorID})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(body["nudge"], &nudge))
	assert.False(t, nudge)
}

func TestTriggerQuietForKnownSession(t *testing.T) {
	router := newTestRouter(t)
	_, sessionID := openConversation(t, router)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/trigger",
		map[string]string{"path": config.PathPostJob, "session_id": sessionID})
	require.Equal(t, http.StatusOK, rec.Code)

	var nudge bool
	require.NoError(t, json.Unmarshal(body["nudge"], &nudge))
	assert.False(t, nudge)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status string
	require.NoError(t, json.Unmarshal(body["status"], &status))
	assert.Equal(t, "ok", status)
}
