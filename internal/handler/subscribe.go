package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vibe-trading/waitlist-platform/internal/intake"
	"github.com/vibe-trading/waitlist-platform/internal/model"
	"github.com/vibe-trading/waitlist-platform/internal/service"
	"github.com/vibe-trading/waitlist-platform/pkg/logger"
)

// SubscribeHandler handles the waitlist signup endpoint.
type SubscribeHandler struct {
	service *service.SubscriptionService
	logger  *logger.Logger
}

// NewSubscribeHandler creates a new subscribe handler.
func NewSubscribeHandler(svc *service.SubscriptionService, log *logger.Logger) *SubscribeHandler {
	return &SubscribeHandler{service: svc, logger: log}
}

// Subscribe handles POST /api/subscribe
func (h *SubscribeHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req model.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.service.Subscribe(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, intake.ErrEmptyEmail) || errors.Is(err, intake.ErrInvalidEmail) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to subscribe")
		writeError(w, http.StatusInternalServerError, "Failed to subscribe. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, model.SubscribeResponse{
		UserID: sub.ID,
		Status: string(sub.Status),
	})
}
