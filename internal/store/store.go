// Package store persists the launch-list subscribers.
package store

import (
	"context"
	"errors"

	"github.com/vibe-trading/waitlist-platform/internal/model"
)

// ErrDuplicateEmail is returned when an email is already on the list.
var ErrDuplicateEmail = errors.New("email already subscribed")

// ErrNotFound is returned when no subscriber matches the lookup.
var ErrNotFound = errors.New("subscriber not found")

// Store is the subscriber repository. The remote store is the source of
// truth for waitlist membership and payment status.
type Store interface {
	Add(ctx context.Context, email string) (*model.Subscriber, error)
	GetByID(ctx context.Context, id int64) (*model.Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*model.Subscriber, error)
	SetStatus(ctx context.Context, id int64, status model.SubscriberStatus) error
	List(ctx context.Context) ([]model.Subscriber, error)
	Ping(ctx context.Context) error
	Close() error
}
