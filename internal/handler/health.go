package handler

import "net/http"

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if h.degraded != nil && h.degraded() {
		status = "degraded"
	}
	JSON(w, http.StatusOK, map[string]string{"status": status})
}
