// Package entitlement holds the three-valued access tier shared by the
// chat, landing, and payment surfaces. The state object is injected
// into each consumer rather than kept as ambient package-level state so
// transitions stay auditable.
package entitlement

import (
	"sync"
)

// Status is the client-held access tier.
type Status string

const (
	Guest    Status = "guest"
	Waitlist Status = "waitlist"
	Paid     Status = "paid"
)

// State is a concurrency-safe holder for a Status. Set performs no
// legality checks: transition conventions (subscribe success sets
// Waitlist, payment confirmation sets Paid) are upheld by callers, and
// a debug downgrade is deliberately possible.
type State struct {
	mu        sync.RWMutex
	status    Status
	listeners []func(Status)
}

// NewState returns a State starting at Guest.
func NewState() *State {
	return &State{status: Guest}
}

// Get returns the current status.
func (s *State) Get() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Set replaces the current status and notifies listeners of the change.
// Setting the same value again is a no-op.
func (s *State) Set(status Status) {
	s.mu.Lock()
	if s.status == status {
		s.mu.Unlock()
		return
	}
	s.status = status
	listeners := make([]func(Status), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(status)
	}
}

// OnChange registers a listener invoked after every status change.
func (s *State) OnChange(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
