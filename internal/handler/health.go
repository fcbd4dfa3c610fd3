// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"

	"github.com/vibe-trading/waitlist-platform/internal/events"
	"github.com/vibe-trading/waitlist-platform/internal/store"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store     store.Store
	publisher *events.Publisher
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(st store.Store, p *events.Publisher) *HealthHandler {
	return &HealthHandler{store: st, publisher: p}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "database unavailable",
		})
		return
	}

	if !h.publisher.IsConnected() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "event bus disconnected",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
