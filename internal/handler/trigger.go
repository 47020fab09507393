package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

type triggerRequest struct {
	VisitorID string `json:"visitor_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Path      string `json:"path"`
}

type triggerResponse struct {
	VisitorID string `json:"visitor_id"`
	Nudge     bool   `json:"nudge"`
	DelayMs   int64  `json:"delay_ms"`
}

func (h *Handler) handleTrigger(w http.ResponseWriter, r *http.Request) {
	var req triggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid body")
		return
	}

	visitorID, _ := uuid.Parse(req.VisitorID)

	hasIdentity := false
	if sessionID, err := uuid.Parse(req.SessionID); err == nil {
		if _, err := h.sessions.Get(r.Context(), sessionID); err == nil {
			hasIdentity = true
		}
	}

	decision, err := h.trigger.Decide(r.Context(), visitorID, req.Path, hasIdentity)
	if err != nil {
		fail(w, err)
		return
	}

	JSON(w, http.StatusOK, triggerResponse{
		VisitorID: decision.VisitorID.String(),
		Nudge:     decision.Nudge,
		DelayMs:   decision.Delay.Milliseconds(),
	})
}
