package handlers

import (
	"net/http"

	"github.com/agentstation/formsync/internal/server/response"
)

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, map[string]any{
		"status":  "healthy",
		"service": "formsync-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. The store must answer a read.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.Templates(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Store not ready")
		response.ServiceUnavailable(w, r, "Store not available")
		return
	}

	response.OK(w, r, map[string]any{
		"status":   "ready",
		"sessions": h.sessions.Len(),
	})
}
