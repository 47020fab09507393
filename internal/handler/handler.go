// Package handler exposes the widget core over HTTP JSON.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glowhire/sunshine/internal/domain"
	"github.com/glowhire/sunshine/internal/service"
)

// Handler holds all dependencies needed by the widget endpoints.
type Handler struct {
	conversations *service.ConversationService
	sessions      *service.SessionService
	trigger       *service.TriggerService
	degraded      func() bool
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Conversations *service.ConversationService
	Sessions      *service.SessionService
	Trigger       *service.TriggerService
	// Degraded reports whether the persistent store has fallen back to
	// memory. Optional.
	Degraded func() bool
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		conversations: deps.Conversations,
		sessions:      deps.Sessions,
		trigger:       deps.Trigger,
		degraded:      deps.Degraded,
	}
}

// Routes mounts all widget endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/trigger", h.handleTrigger)

		r.Route("/conversations", func(r chi.Router) {
			r.Post("/", h.handleOpen)
			r.Route("/{conversationID}", func(r chi.Router) {
				r.Delete("/", h.handleClose)
				r.Get("/messages", h.handleMessages)
				r.Post("/messages", h.handleSend)
				r.Post("/reset", h.handleReset)
				r.Post("/minimize", h.handleMinimize)
				r.Post("/restore", h.handleRestore)
				r.Post("/route/confirm", h.handleConfirm)
				r.Post("/route/cancel", h.handleCancel)
			})
		})
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// fail maps core errors onto HTTP statuses.
func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrConversationNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrTurnInFlight),
		errors.Is(err, domain.ErrTurnSuperseded),
		errors.Is(err, domain.ErrNoPendingRoute),
		errors.Is(err, domain.ErrConversationClosed):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrEmptyMessage):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
