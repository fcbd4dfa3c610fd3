package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vibe-trading/waitlist-platform/internal/middleware"
	"github.com/vibe-trading/waitlist-platform/internal/model"
	"github.com/vibe-trading/waitlist-platform/internal/service"
	"github.com/vibe-trading/waitlist-platform/pkg/logger"
)

// ChatHandler handles the chat-widget endpoints.
type ChatHandler struct {
	service *service.ChatService
	logger  *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc *service.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{service: svc, logger: log}
}

// Chat handles POST /api/chat — the stateless single-message intake.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if err := middleware.ValidateMessageContent(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Process(r.Context(), req.Message)
	if err != nil {
		h.logger.Error("failed to process chat message")
		writeError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateConversation handles POST /api/conversations
func (h *ChatHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	sess := h.service.CreateSession()
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

// GetConversation handles GET /api/conversations/{id}
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateConversationID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.service.GetSession(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// DeleteConversation handles DELETE /api/conversations/{id}. Closing a
// conversation cancels any pending reply timers.
func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateConversationID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.CloseSession(id); err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMessages handles GET /api/conversations/{id}/messages
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateConversationID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.service.GetSession(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	afterSequence := uint64(0)
	if seq := r.URL.Query().Get("after_sequence"); seq != "" {
		if parsed, err := strconv.ParseUint(seq, 10, 64); err == nil {
			afterSequence = parsed
		}
	}

	messages, lastSeq := sess.MessagesAfter(afterSequence)
	writeJSON(w, http.StatusOK, model.ListMessagesResponse{
		Messages:      messages,
		AwaitingReply: sess.AwaitingReply(),
		LastSequence:  lastSeq,
	})
}

// SendMessage handles POST /api/conversations/{id}/messages. The user
// message is appended immediately; the assistant reply shows up in the
// history after the typing delay.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateConversationID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateMessageContent(req.Content); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, ok, err := h.service.Submit(id, req.Content)
	if err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	if !ok {
		// Whitespace-only input: accepted but ignored, nothing appended.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusCreated, model.SendMessageResponse{
		Message:       msg,
		AwaitingReply: true,
	})
}
