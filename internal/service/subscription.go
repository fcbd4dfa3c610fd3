// Package service provides business logic for the waitlist platform.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vibe-trading/waitlist-platform/internal/events"
	"github.com/vibe-trading/waitlist-platform/internal/intake"
	"github.com/vibe-trading/waitlist-platform/internal/model"
	"github.com/vibe-trading/waitlist-platform/internal/notify"
	"github.com/vibe-trading/waitlist-platform/internal/store"
	"github.com/vibe-trading/waitlist-platform/pkg/logger"
	"github.com/vibe-trading/waitlist-platform/pkg/metrics"
)

// SubscriptionService owns the launch list: it validates and records
// emails, tracks payment status, and fans out notifications. It also
// implements intake.Forwarder so chat sessions can submit captured
// addresses directly.
type SubscriptionService struct {
	store     store.Store
	notifier  notify.Notifier
	publisher *events.Publisher
	logger    *logger.Logger
}

// NewSubscriptionService creates a new subscription service. notifier
// and publisher may be nil/no-op.
func NewSubscriptionService(st store.Store, n notify.Notifier, p *events.Publisher, log *logger.Logger) *SubscriptionService {
	return &SubscriptionService{
		store:     st,
		notifier:  n,
		publisher: p,
		logger:    log,
	}
}

// Subscribe adds an email to the launch list. Subscribing an address
// that is already on the list is not an error: the existing subscriber
// is returned, making the operation idempotent for callers that submit
// the same email twice.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	if err := intake.ValidateEmail(email); err != nil {
		metrics.SubscriptionsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	sub, err := s.store.Add(ctx, email)
	if errors.Is(err, store.ErrDuplicateEmail) {
		metrics.SubscriptionsTotal.WithLabelValues("duplicate").Inc()
		existing, lookupErr := s.store.GetByEmail(ctx, email)
		if lookupErr != nil {
			return nil, fmt.Errorf("lookup existing subscriber: %w", lookupErr)
		}
		return existing, nil
	}
	if err != nil {
		metrics.SubscriptionsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("add subscriber: %w", err)
	}

	metrics.SubscriptionsTotal.WithLabelValues("created").Inc()
	s.logger.Info("subscriber added", zap.Int64("user_id", sub.ID))

	if s.notifier != nil {
		s.notifier.SubscriberAdded(ctx, sub.Email)
	}
	s.publisher.PublishSubscriberCreated(ctx, events.SubscriberCreated{
		UserID:    sub.ID,
		Email:     sub.Email,
		CreatedAt: sub.CreatedAt,
	})

	return sub, nil
}

// Submit implements intake.Forwarder for chat sessions.
func (s *SubscriptionService) Submit(ctx context.Context, email string) (*intake.SubscribeResult, error) {
	sub, err := s.Subscribe(ctx, email)
	if err != nil {
		return nil, err
	}
	return &intake.SubscribeResult{
		UserID:   sub.ID,
		Accepted: true,
		Message:  "Thank you for subscribing! We'll notify you when Vibe Trading launches.",
	}, nil
}

// Status returns a subscriber's current tier.
func (s *SubscriptionService) Status(ctx context.Context, userID int64) (model.SubscriberStatus, error) {
	sub, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return sub.Status, nil
}

// ConfirmPayment marks a subscriber paid and fans out the confirmation.
func (s *SubscriptionService) ConfirmPayment(ctx context.Context, userID int64) error {
	if err := s.store.SetStatus(ctx, userID, model.StatusPaid); err != nil {
		return err
	}

	metrics.PaymentsConfirmedTotal.Inc()
	s.logger.Info("payment confirmed", zap.Int64("user_id", userID))

	if s.notifier != nil {
		s.notifier.PaymentConfirmed(ctx, userID)
	}
	s.publisher.PublishPaymentConfirmed(ctx, events.PaymentConfirmed{
		UserID:      userID,
		ConfirmedAt: time.Now().UTC(),
	})
	return nil
}

// List returns every subscriber, newest first.
func (s *SubscriptionService) List(ctx context.Context) ([]model.Subscriber, error) {
	return s.store.List(ctx)
}
