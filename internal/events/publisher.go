// Package events publishes waitlist lifecycle events to NATS JetStream
// for downstream ops tooling. Publishing is optional: a nil Publisher
// is safe to call everywhere.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/vibe-trading/waitlist-platform/pkg/logger"
)

const (
	// StreamName is the JetStream stream holding waitlist events.
	StreamName = "WAITLIST"

	subjectPrefix = "waitlist"

	// SubjectSubscriberCreated carries new-subscriber events.
	SubjectSubscriberCreated = subjectPrefix + ".subscriber.created"
	// SubjectPaymentConfirmed carries payment confirmations.
	SubjectPaymentConfirmed = subjectPrefix + ".payment.confirmed"
)

// SubscriberCreated is the payload for a new signup.
type SubscriberCreated struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentConfirmed is the payload for an Early-Bird upgrade.
type PaymentConfirmed struct {
	UserID      int64     `json:"user_id"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// Publisher publishes events over a NATS connection.
type Publisher struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	logger *logger.Logger
}

// Connect dials NATS and ensures the waitlist stream exists. An empty
// URL disables event publishing and returns (nil, nil).
func Connect(ctx context.Context, url, token string, log *logger.Logger) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}

	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	p := &Publisher{conn: nc, js: js, logger: log}
	if err := p.ensureStream(ctx); err != nil {
		nc.Close()
		return nil, err
	}
	return p, nil
}

func (p *Publisher) ensureStream(ctx context.Context) error {
	if _, err := p.js.Stream(ctx, StreamName); err == nil {
		return nil
	}

	_, err := p.js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{subjectPrefix + ".>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      90 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Description: "Waitlist subscriber and payment events",
	})
	if err != nil {
		return fmt.Errorf("create stream: %w", err)
	}
	return nil
}

// PublishSubscriberCreated emits a new-subscriber event. Failures are
// logged, never surfaced: event fan-out must not block a signup.
func (p *Publisher) PublishSubscriberCreated(ctx context.Context, ev SubscriberCreated) {
	p.publish(ctx, SubjectSubscriberCreated, ev)
}

// PublishPaymentConfirmed emits a payment confirmation event.
func (p *Publisher) PublishPaymentConfirmed(ctx context.Context, ev PaymentConfirmed) {
	p.publish(ctx, SubjectPaymentConfirmed, ev)
}

func (p *Publisher) publish(ctx context.Context, subject string, payload any) {
	if p == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("marshal event", zap.String("subject", subject), zap.Error(err))
		return
	}
	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		p.logger.Warn("publish event", zap.String("subject", subject), zap.Error(err))
	}
}

// IsConnected reports NATS connectivity. Nil publishers report true so
// readiness checks pass when events are disabled.
func (p *Publisher) IsConnected() bool {
	if p == nil {
		return true
	}
	return p.conn != nil && p.conn.IsConnected()
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}
