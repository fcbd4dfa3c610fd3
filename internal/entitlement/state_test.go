package entitlement

import (
	"sync"
	"testing"
)

func TestNewStateStartsAtGuest(t *testing.T) {
	s := NewState()
	if got := s.Get(); got != Guest {
		t.Errorf("got %s, want %s", got, Guest)
	}
}

func TestSetNotifiesListeners(t *testing.T) {
	s := NewState()

	var got []Status
	s.OnChange(func(st Status) {
		got = append(got, st)
	})

	s.Set(Waitlist)
	s.Set(Paid)

	if s.Get() != Paid {
		t.Errorf("got %s, want %s", s.Get(), Paid)
	}
	if len(got) != 2 || got[0] != Waitlist || got[1] != Paid {
		t.Errorf("notifications = %v, want [waitlist paid]", got)
	}
}

func TestSetSameValueIsNoOp(t *testing.T) {
	s := NewState()

	calls := 0
	s.OnChange(func(Status) { calls++ })

	s.Set(Guest)
	s.Set(Waitlist)
	s.Set(Waitlist)

	if calls != 1 {
		t.Errorf("listener called %d times, want 1", calls)
	}
}

func TestDowngradeIsAllowed(t *testing.T) {
	s := NewState()
	s.Set(Paid)
	s.Set(Guest)
	if got := s.Get(); got != Guest {
		t.Errorf("got %s, want %s", got, Guest)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := NewState()
	s.OnChange(func(Status) {})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set(Waitlist)
			s.Set(Paid)
		}()
		go func() {
			defer wg.Done()
			_ = s.Get()
		}()
	}
	wg.Wait()

	if got := s.Get(); got != Paid && got != Waitlist {
		t.Errorf("unexpected final status %s", got)
	}
}
