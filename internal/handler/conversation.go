package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/glowhire/sunshine/internal/domain"
)

type openRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

type openResponse struct {
	ConversationID string          `json:"conversation_id"`
	SessionID      string          `json:"session_id"`
	Greeting       *domain.Message `json:"greeting"`
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			Error(w, http.StatusBadRequest, "invalid body")
			return
		}
	}

	// A malformed session id is treated as no session: the widget simply
	// starts fresh.
	sessionID, _ := uuid.Parse(req.SessionID)

	conv, greeting, err := h.conversations.Open(r.Context(), sessionID)
	if err != nil {
		fail(w, err)
		return
	}

	JSON(w, http.StatusCreated, openResponse{
		ConversationID: conv.ID.String(),
		SessionID:      conv.SessionID.String(),
		Greeting:       greeting,
	})
}

type sendRequest struct {
	Text          string `json:"text"`
	Authenticated bool   `json:"authenticated"`
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	convID, ok := conversationID(w, r)
	if !ok {
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid body")
		return
	}

	msg, err := h.conversations.Send(r.Context(), convID, req.Text, req.Authenticated)
	if err != nil {
		fail(w, err)
		return
	}
	JSON(w, http.StatusOK, msg)
}

func (h *Handler) handleMessages(w http.ResponseWriter, r *http.Request) {
	convID, ok := conversationID(w, r)
	if !ok {
		return
	}
	msgs, err := h.conversations.Messages(convID)
	if err != nil {
		fail(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}

type confirmResponse struct {
	Destination string          `json:"destination"`
	Title       string          `json:"title"`
	Message     *domain.Message `json:"message"`
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	convID, ok := conversationID(w, r)
	if !ok {
		return
	}
	route, msg, err := h.conversations.Confirm(r.Context(), convID)
	if err != nil {
		fail(w, err)
		return
	}
	JSON(w, http.StatusOK, confirmResponse{
		Destination: route.Destination,
		Title:       route.Title,
		Message:     msg,
	})
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	convID, ok := conversationID(w, r)
	if !ok {
		return
	}
	if err := h.conversations.CancelRoute(convID); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMinimize(w http.ResponseWriter, r *http.Request) {
	convID, ok := conversationID(w, r)
	if !ok {
		return
	}
	if err := h.conversations.Minimize(convID); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	convID, ok := conversationID(w, r)
	if !ok {
		return
	}
	if err := h.conversations.Restore(convID); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	convID, ok := conversationID(w, r)
	if !ok {
		return
	}
	if err := h.conversations.Close(convID); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type resetResponse struct {
	SessionID string          `json:"session_id"`
	Greeting  *domain.Message `json:"greeting"`
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	convID, ok := conversationID(w, r)
	if !ok {
		return
	}
	greeting, err := h.conversations.Reset(r.Context(), convID)
	if err != nil {
		fail(w, err)
		return
	}
	sessionID, err := h.conversations.SessionID(convID)
	if err != nil {
		fail(w, err)
		return
	}
	JSON(w, http.StatusOK, resetResponse{
		SessionID: sessionID.String(),
		Greeting:  greeting,
	})
}

func conversationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "conversationID"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid conversation id")
		return uuid.Nil, false
	}
	return id, true
}
