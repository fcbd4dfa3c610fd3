package intake

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vibe-trading/waitlist-platform/internal/entitlement"
	"github.com/vibe-trading/waitlist-platform/internal/model"
	"github.com/vibe-trading/waitlist-platform/pkg/logger"
)

// TypingDelay is the fixed latency before a scheduled reply is appended,
// emulating a live assistant. Classification happens at submit time;
// the delay only defers the reply's appearance.
const TypingDelay = 1500 * time.Millisecond

// forwardTimeout bounds the subscription call dispatched from a submit.
const forwardTimeout = 15 * time.Second

// Session is a single chat-widget conversation. History is append-only
// and mutated by exactly two operations: a user submit and the arrival
// of the scheduled assistant reply. All pending reply timers are owned
// by the session and cancelled by Close, so a torn-down session never
// receives a late append.
type Session struct {
	mu            sync.Mutex
	id            string
	history       []model.Message
	emailCaptured bool
	awaiting      int
	seq           uint64
	closed        bool
	timers        map[*time.Timer]struct{}

	delay       time.Duration
	forwarder   Forwarder
	entitlement *entitlement.State
	logger      *logger.Logger

	createdAt time.Time
	updatedAt time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTypingDelay overrides the reply delay. Used by tests; production
// sessions keep the fixed TypingDelay.
func WithTypingDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.delay = d }
}

// WithForwarder sets the subscription forwarder invoked on email capture.
func WithForwarder(f Forwarder) SessionOption {
	return func(s *Session) { s.forwarder = f }
}

// WithEntitlement sets the shared tier state advanced on subscribe success.
func WithEntitlement(st *entitlement.State) SessionOption {
	return func(s *Session) { s.entitlement = st }
}

// NewSession creates a session seeded with the assistant welcome message.
func NewSession(log *logger.Logger, opts ...SessionOption) *Session {
	now := time.Now()
	s := &Session{
		id:        uuid.Must(uuid.NewV7()).String(),
		delay:     TypingDelay,
		logger:    log,
		timers:    make(map[*time.Timer]struct{}),
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.append(model.RoleAssistant, WelcomeMessage)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Submit processes one user message. Whitespace-only input is a no-op:
// nothing is appended, no timer is scheduled. Otherwise the raw text is
// appended as a user message, the reply is classified synchronously,
// an email capture dispatches the forwarder immediately (not after the
// delay), and the reply's appearance is scheduled.
func (s *Session) Submit(text string) (*model.Message, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, false
	}

	userMsg := s.append(model.RoleUser, text)
	reply := Classify(text, s.emailCaptured)

	if reply.Kind == ReplyEmailAck {
		alreadyCaptured := s.emailCaptured
		s.emailCaptured = true
		s.dispatchForward(reply.Email, alreadyCaptured)
	}

	s.awaiting++
	var t *time.Timer
	t = time.AfterFunc(s.delay, func() {
		s.replyArrives(reply, &t)
	})
	s.timers[t] = struct{}{}
	s.mu.Unlock()

	return userMsg, true
}

// replyArrives appends the pre-computed assistant reply and leaves the
// awaiting state. No-ops on a closed session.
func (s *Session) replyArrives(reply Reply, t **time.Timer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, *t)
	if s.closed {
		return
	}
	s.append(model.RoleAssistant, reply.Content)
	if s.awaiting > 0 {
		s.awaiting--
	}
}

// dispatchForward sends the captured email to the subscription service
// on its own goroutine, decoupled from the typing delay. The chat
// acknowledgement is never rolled back on failure; the entitlement tier
// advances to waitlist only on confirmed success.
func (s *Session) dispatchForward(email string, alreadyCaptured bool) {
	if s.forwarder == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), forwardTimeout)
		defer cancel()

		res, err := s.forwarder.Submit(ctx, email)
		if err != nil {
			s.logger.Warn("subscription forward failed",
				zap.String("session_id", s.id),
				zap.Error(err),
			)
			return
		}
		if res.Accepted && s.entitlement != nil && s.entitlement.Get() == entitlement.Guest {
			s.entitlement.Set(entitlement.Waitlist)
		}
		s.logger.Info("email forwarded",
			zap.String("session_id", s.id),
			zap.Bool("repeat", alreadyCaptured),
			zap.Bool("accepted", res.Accepted),
		)
	}()
}

// History returns a copy of the message history in display order.
func (s *Session) History() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, len(s.history))
	copy(out, s.history)
	return out
}

// MessagesAfter returns messages with a sequence greater than after.
func (s *Session) MessagesAfter(after uint64) ([]model.Message, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Message
	for _, m := range s.history {
		if m.Sequence > after {
			out = append(out, m)
		}
	}
	return out, s.seq
}

// AwaitingReply reports whether a scheduled reply is pending, which
// drives the typing indicator.
func (s *Session) AwaitingReply() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting > 0
}

// EmailCaptured reports whether an email has been captured this session.
func (s *Session) EmailCaptured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emailCaptured
}

// Snapshot returns the conversation metadata.
func (s *Session) Snapshot() model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Conversation{
		ID:            s.id,
		CreatedAt:     s.createdAt,
		UpdatedAt:     s.updatedAt,
		MessageCount:  len(s.history),
		EmailCaptured: s.emailCaptured,
		AwaitingReply: s.awaiting > 0,
	}
}

// Close cancels all pending reply timers and marks the session torn
// down. Timers that already fired find the closed flag set and no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for t := range s.timers {
		t.Stop()
	}
	s.timers = nil
	s.awaiting = 0
}

// append adds a message to the history. Caller holds s.mu (or the
// session is still being constructed).
func (s *Session) append(role model.Role, content string) *model.Message {
	s.seq++
	msg := model.Message{
		ID:             uuid.Must(uuid.NewV7()).String(),
		ConversationID: s.id,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now(),
		Sequence:       s.seq,
	}
	s.history = append(s.history, msg)
	s.updatedAt = msg.CreatedAt
	return &s.history[len(s.history)-1]
}
