package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vibe-trading/waitlist-platform/internal/entitlement"
	"github.com/vibe-trading/waitlist-platform/internal/intake"
	"github.com/vibe-trading/waitlist-platform/internal/llm"
	"github.com/vibe-trading/waitlist-platform/internal/model"
	"github.com/vibe-trading/waitlist-platform/pkg/logger"
	"github.com/vibe-trading/waitlist-platform/pkg/metrics"
)

// chatSystemPrompt steers the optional model-backed replies. Email
// capture never goes through the model; the rule engine is
// authoritative for that.
const chatSystemPrompt = `You are the Vibe Trading assistant. Vibe Trading is an algorithmic
trading platform in development that structures subjective market perception ("vibe") through
sentiment analysis of social media, news, and forums, combining human-style sentiment signals
with data and algorithms. Welcome users, explain the concept, and encourage them to leave
their email to be notified at launch. Be enthusiastic but professional, never promise launch
dates or returns, and politely decline topics unrelated to Vibe Trading.`

// ChatService manages chat-widget sessions and the stateless intake
// endpoint. Sessions are held in memory for the lifetime of the process.
type ChatService struct {
	forwarder   intake.Forwarder
	entitlement *entitlement.State
	llmClient   llm.Client
	logger      *logger.Logger

	mu       sync.RWMutex
	sessions map[string]*intake.Session

	sessionOpts []intake.SessionOption
}

// NewChatService creates a chat service. llmClient may be nil, in which
// case every reply comes from the rule-based classifier.
func NewChatService(f intake.Forwarder, ent *entitlement.State, llmClient llm.Client, log *logger.Logger, opts ...intake.SessionOption) *ChatService {
	return &ChatService{
		forwarder:   f,
		entitlement: ent,
		llmClient:   llmClient,
		logger:      log,
		sessions:    make(map[string]*intake.Session),
		sessionOpts: opts,
	}
}

// CreateSession starts a new conversation seeded with the welcome message.
func (s *ChatService) CreateSession() *intake.Session {
	opts := append([]intake.SessionOption{
		intake.WithForwarder(s.forwarder),
		intake.WithEntitlement(s.entitlement),
	}, s.sessionOpts...)

	sess := intake.NewSession(s.logger, opts...)

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	metrics.SessionsActive.Inc()
	return sess
}

// GetSession looks up a live session.
func (s *ChatService) GetSession(id string) (*intake.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("conversation not found")
	}
	return sess, nil
}

// CloseSession tears down a session, cancelling any pending reply timers.
func (s *ChatService) CloseSession(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("conversation not found")
	}

	sess.Close()
	metrics.SessionsActive.Dec()
	return nil
}

// Submit forwards a message into a session.
func (s *ChatService) Submit(id, text string) (*model.Message, bool, error) {
	sess, err := s.GetSession(id)
	if err != nil {
		return nil, false, err
	}
	msg, ok := sess.Submit(text)
	if ok {
		metrics.MessagesTotal.WithLabelValues(string(model.RoleUser)).Inc()
	}
	return msg, ok, nil
}

// Process answers one message without session state: the same
// classification rules, applied immediately and returned in the
// response body. When an LLM client is configured the informational
// and fallback paths are answered by the model; email capture always
// runs through the rule engine and the subscription forwarder.
func (s *ChatService) Process(ctx context.Context, message string) (*model.ChatResponse, error) {
	reply := intake.Classify(message, false)
	metrics.IntentTotal.WithLabelValues(string(reply.Kind)).Inc()

	if reply.Kind == intake.ReplyEmailAck {
		if s.forwarder != nil {
			if _, err := s.forwarder.Submit(ctx, reply.Email); err != nil {
				// The acknowledgement is UI-local: the chat keeps its
				// reply, the failure is only logged.
				s.logger.Warn("subscription forward failed", zap.Error(err))
			}
		}
		return &model.ChatResponse{Message: reply.Content, Intent: string(reply.Kind)}, nil
	}

	if s.llmClient != nil {
		resp, err := s.llmClient.Complete(ctx, &llm.CompletionRequest{
			System:   chatSystemPrompt,
			Messages: []llm.ChatMessage{{Role: string(model.RoleUser), Content: message}},
		})
		if err != nil {
			s.logger.Warn("LLM completion failed, falling back to template", zap.Error(err))
		} else {
			metrics.LLMCompletionsTotal.WithLabelValues(s.llmClient.Name()).Inc()
			return &model.ChatResponse{Message: resp.Content, Intent: string(reply.Kind)}, nil
		}
	}

	return &model.ChatResponse{Message: reply.Content, Intent: string(reply.Kind)}, nil
}
