package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-trading/waitlist-platform/internal/entitlement"
	"github.com/vibe-trading/waitlist-platform/internal/intake"
	"github.com/vibe-trading/waitlist-platform/internal/llm"
	"github.com/vibe-trading/waitlist-platform/pkg/logger"
)

// stubForwarder records submitted emails.
type stubForwarder struct {
	mu     sync.Mutex
	emails []string
	err    error
}

func (f *stubForwarder) Submit(ctx context.Context, email string) (*intake.SubscribeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.emails = append(f.emails, email)
	return &intake.SubscribeResult{UserID: 1, Accepted: true}, nil
}

// stubLLM returns a canned completion.
type stubLLM struct {
	content string
	err     error
}

func (s *stubLLM) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.content}, nil
}

func (s *stubLLM) Name() string { return "stub" }

func newTestChatService(f intake.Forwarder, client llm.Client) *ChatService {
	return NewChatService(f, entitlement.NewState(), client, logger.NewNop(),
		intake.WithTypingDelay(5*time.Millisecond))
}

func TestProcessEmail(t *testing.T) {
	fwd := &stubForwarder{}
	svc := newTestChatService(fwd, nil)

	resp, err := svc.Process(context.Background(), "reach me at user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "email_ack", resp.Intent)
	assert.Contains(t, resp.Message, "user@example.com")
	assert.Equal(t, []string{"user@example.com"}, fwd.emails)
}

func TestProcessEmailSkipsLLM(t *testing.T) {
	fwd := &stubForwarder{}
	svc := newTestChatService(fwd, &stubLLM{content: "model reply"})

	resp, err := svc.Process(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "email_ack", resp.Intent)
	assert.NotEqual(t, "model reply", resp.Message)
}

func TestProcessForwarderFailureKeepsAck(t *testing.T) {
	fwd := &stubForwarder{err: errors.New("store down")}
	svc := newTestChatService(fwd, nil)

	resp, err := svc.Process(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "email_ack", resp.Intent)
	assert.Contains(t, resp.Message, "user@example.com")
}

func TestProcessQuestionWithoutLLM(t *testing.T) {
	svc := newTestChatService(&stubForwarder{}, nil)

	resp, err := svc.Process(context.Background(), "what is the platform?")
	require.NoError(t, err)
	assert.Equal(t, "project_info", resp.Intent)
	assert.Equal(t, intake.ProjectInfoMessage, resp.Message)
}

func TestProcessQuestionWithLLM(t *testing.T) {
	svc := newTestChatService(&stubForwarder{}, &stubLLM{content: "model reply"})

	resp, err := svc.Process(context.Background(), "how does it work?")
	require.NoError(t, err)
	assert.Equal(t, "project_info", resp.Intent)
	assert.Equal(t, "model reply", resp.Message)
}

func TestProcessLLMFailureFallsBackToTemplate(t *testing.T) {
	svc := newTestChatService(&stubForwarder{}, &stubLLM{err: errors.New("rate limited")})

	resp, err := svc.Process(context.Background(), "hello there")
	require.NoError(t, err)
	assert.Equal(t, "fallback", resp.Intent)
	assert.Equal(t, intake.FallbackMessage, resp.Message)
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestChatService(&stubForwarder{}, nil)

	sess := svc.CreateSession()
	require.NotNil(t, sess)

	got, err := svc.GetSession(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, sess.ID(), got.ID())

	msg, ok, err := svc.Submit(sess.ID(), "hello")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", msg.Content)

	require.NoError(t, svc.CloseSession(sess.ID()))

	_, err = svc.GetSession(sess.ID())
	assert.Error(t, err)
	assert.Error(t, svc.CloseSession(sess.ID()))
}

func TestSubmitUnknownSession(t *testing.T) {
	svc := newTestChatService(&stubForwarder{}, nil)

	_, _, err := svc.Submit("no-such-id", "hello")
	assert.Error(t, err)
}
