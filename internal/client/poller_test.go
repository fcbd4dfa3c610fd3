package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vibe-trading/waitlist-platform/internal/model"
)

// statusServer serves waitlist until the given number of polls, then paid.
func statusServer(paidAfter int32) (*httptest.Server, *atomic.Int32) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := "waitlist"
		if polls.Add(1) >= paidAfter {
			status = "paid"
		}
		json.NewEncoder(w).Encode(model.StatusResponse{Status: status})
	}))
	return srv, &polls
}

func TestPollerStopsOnPaid(t *testing.T) {
	srv, polls := statusServer(3)
	defer srv.Close()

	paid := make(chan struct{})
	p := NewStatusPoller(New(srv.URL), 1, func() { close(paid) },
		WithPollInterval(5*time.Millisecond))
	p.Start(context.Background())

	select {
	case <-paid:
	case <-time.After(2 * time.Second):
		t.Fatal("poller never reported paid")
	}

	p.Stop()
	settled := polls.Load()
	if settled < 3 {
		t.Errorf("polled %d times, want at least 3", settled)
	}

	// No more polls after the paid transition.
	time.Sleep(50 * time.Millisecond)
	if got := polls.Load(); got != settled {
		t.Errorf("poller kept polling after paid: %d -> %d", settled, got)
	}
}

func TestPollerStop(t *testing.T) {
	srv, polls := statusServer(1 << 30)
	defer srv.Close()

	p := NewStatusPoller(New(srv.URL), 1, func() { t.Error("unexpected paid callback") },
		WithPollInterval(5*time.Millisecond))
	p.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for polls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	p.Stop()
	settled := polls.Load()
	time.Sleep(50 * time.Millisecond)
	if got := polls.Load(); got != settled {
		t.Errorf("poller kept polling after Stop: %d -> %d", settled, got)
	}

	// Stop is idempotent.
	p.Stop()
}

func TestPollerContextCancel(t *testing.T) {
	srv, polls := statusServer(1 << 30)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	p := NewStatusPoller(New(srv.URL), 1, nil, WithPollInterval(5*time.Millisecond))
	p.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for polls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	// The goroutine drains; Stop still returns.
	p.Stop()
}

func TestPollerSurvivesTransientErrors(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(model.StatusResponse{Status: "paid"})
	}))
	defer srv.Close()

	var errs atomic.Int32
	paid := make(chan struct{})
	p := NewStatusPoller(New(srv.URL), 1, func() { close(paid) },
		WithPollInterval(5*time.Millisecond),
		WithErrorHandler(func(error) { errs.Add(1) }),
	)
	p.Start(context.Background())

	select {
	case <-paid:
	case <-time.After(2 * time.Second):
		t.Fatal("poller never reported paid")
	}
	p.Stop()

	if errs.Load() < 2 {
		t.Errorf("error handler called %d times, want at least 2", errs.Load())
	}
}
