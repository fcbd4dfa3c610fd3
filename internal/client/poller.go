package client

import (
	"context"
	"sync"
	"time"

	"github.com/vibe-trading/waitlist-platform/internal/model"
)

// DefaultPollInterval is how often the payment modal re-checks a
// subscriber's status.
const DefaultPollInterval = 5 * time.Second

// StatusPoller polls a subscriber's status until it becomes paid, the
// poller is stopped, or its context is cancelled. Exactly one
// goroutine runs per poller; Stop is idempotent.
type StatusPoller struct {
	client   *Client
	userID   int64
	interval time.Duration

	onPaid  func()
	onError func(error)

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// PollerOption configures a StatusPoller.
type PollerOption func(*StatusPoller)

// WithPollInterval overrides the polling interval.
func WithPollInterval(d time.Duration) PollerOption {
	return func(p *StatusPoller) {
		p.interval = d
	}
}

// WithErrorHandler receives transient polling errors. Errors do not
// stop the poller; it keeps trying at the next tick.
func WithErrorHandler(fn func(error)) PollerOption {
	return func(p *StatusPoller) {
		p.onError = fn
	}
}

// NewStatusPoller creates a poller for userID. onPaid is called at
// most once, from the poller's goroutine, when the status flips to
// paid.
func NewStatusPoller(c *Client, userID int64, onPaid func(), opts ...PollerOption) *StatusPoller {
	p := &StatusPoller{
		client:   c,
		userID:   userID,
		interval: DefaultPollInterval,
		onPaid:   onPaid,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the polling goroutine. It returns immediately.
func (p *StatusPoller) Start(ctx context.Context) {
	go p.run(ctx)
}

// Stop halts polling. It blocks until the polling goroutine exits and
// is safe to call more than once.
func (p *StatusPoller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
	<-p.done
}

func (p *StatusPoller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			resp, err := p.client.CheckStatus(ctx, p.userID)
			if err != nil {
				if p.onError != nil {
					p.onError(err)
				}
				continue
			}
			if resp.Status == string(model.StatusPaid) {
				if p.onPaid != nil {
					p.onPaid()
				}
				return
			}
		}
	}
}
