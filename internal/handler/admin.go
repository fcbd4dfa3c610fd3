package handler

import (
	"net/http"
	"strings"

	"github.com/vibe-trading/waitlist-platform/internal/model"
	"github.com/vibe-trading/waitlist-platform/internal/service"
	"github.com/vibe-trading/waitlist-platform/pkg/logger"
)

// AdminHandler serves the subscriber listings for operators.
type AdminHandler struct {
	service *service.SubscriptionService
	logger  *logger.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(svc *service.SubscriptionService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{service: svc, logger: log}
}

// ListSubscribers handles GET /api/admin/subscribers
func (h *AdminHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list subscribers")
		writeError(w, http.StatusInternalServerError, "failed to retrieve subscribers")
		return
	}

	writeJSON(w, http.StatusOK, model.ListSubscribersResponse{
		Total:       len(subs),
		Subscribers: subs,
	})
}

// ListSubscribersPlain handles GET /api/admin/subscribers.txt: one
// address per line.
func (h *AdminHandler) ListSubscribersPlain(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list subscribers")
		http.Error(w, "failed to retrieve subscribers", http.StatusInternalServerError)
		return
	}

	emails := make([]string, len(subs))
	for i, sub := range subs {
		emails[i] = sub.Email
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(strings.Join(emails, "\n")))
}
