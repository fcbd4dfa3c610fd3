package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vibe-trading/waitlist-platform/internal/model"
	"github.com/vibe-trading/waitlist-platform/internal/payment"
	"github.com/vibe-trading/waitlist-platform/internal/service"
	"github.com/vibe-trading/waitlist-platform/internal/store"
	"github.com/vibe-trading/waitlist-platform/pkg/logger"
	"github.com/vibe-trading/waitlist-platform/pkg/metrics"
)

// PaymentHandler handles the Early-Bird invoice and status endpoints.
type PaymentHandler struct {
	subscriptions *service.SubscriptionService
	invoices      *payment.Builder
	debugPay      bool
	logger        *logger.Logger
}

// NewPaymentHandler creates a new payment handler. debugPay enables the
// manual payment-confirmation endpoint used in demos.
func NewPaymentHandler(subs *service.SubscriptionService, inv *payment.Builder, debugPay bool, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		subscriptions: subs,
		invoices:      inv,
		debugPay:      debugPay,
		logger:        log,
	}
}

// CreateInvoice handles POST /api/invoice/{userId}
func (h *PaymentHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	// The invoice is only meaningful for a known subscriber.
	if _, err := h.subscriptions.Status(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "subscriber not found")
			return
		}
		h.logger.Error("failed to look up subscriber")
		writeError(w, http.StatusInternalServerError, "failed to create invoice")
		return
	}

	inv, err := h.invoices.Build(userID)
	if err != nil {
		h.logger.Error("failed to build invoice")
		writeError(w, http.StatusInternalServerError, "failed to create invoice")
		return
	}

	metrics.InvoicesTotal.Inc()
	writeJSON(w, http.StatusOK, model.InvoiceResponse{
		SolanaURL: inv.SolanaURL,
		QRSVG:     inv.QRDataURI,
	})
}

// Status handles GET /api/status/{userId} — polled by the payment modal.
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	status, err := h.subscriptions.Status(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "subscriber not found")
			return
		}
		h.logger.Error("failed to look up status")
		writeError(w, http.StatusInternalServerError, "failed to check status")
		return
	}

	writeJSON(w, http.StatusOK, model.StatusResponse{Status: string(status)})
}

// ConfirmPayment handles POST /api/debug/pay/{userId} — the demo
// control that simulates an out-of-band payment confirmation.
func (h *PaymentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	if !h.debugPay {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}

	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.subscriptions.ConfirmPayment(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "subscriber not found")
			return
		}
		h.logger.Error("failed to confirm payment")
		writeError(w, http.StatusInternalServerError, "failed to confirm payment")
		return
	}

	writeJSON(w, http.StatusOK, model.StatusResponse{Status: string(model.StatusPaid)})
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userId")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return 0, false
	}
	return userID, true
}
