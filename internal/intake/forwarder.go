package intake

import (
	"context"
)

// SubscribeResult reports the outcome of forwarding a captured email to
// the subscription service.
type SubscribeResult struct {
	UserID   int64
	Accepted bool
	Message  string
}

// Forwarder submits a captured email address to the subscription
// collaborator. A single attempt per capture, no retries; failures
// carry a human-readable message and are never retried by the session.
type Forwarder interface {
	Submit(ctx context.Context, email string) (*SubscribeResult, error)
}

// ForwarderFunc adapts a function to the Forwarder interface.
type ForwarderFunc func(ctx context.Context, email string) (*SubscribeResult, error)

func (f ForwarderFunc) Submit(ctx context.Context, email string) (*SubscribeResult, error) {
	return f(ctx, email)
}
