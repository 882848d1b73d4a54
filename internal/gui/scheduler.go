package gui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// FyneScheduler runs delayed callbacks on the Fyne event loop
type FyneScheduler struct {
	mu      sync.Mutex
	timers  map[*time.Timer]struct{}
	stopped bool
}

// NewFyneScheduler creates a scheduler
func NewFyneScheduler() *FyneScheduler {
	return &FyneScheduler{timers: make(map[*time.Timer]struct{})}
}

// AfterFunc schedules f on the UI thread after d
func (s *FyneScheduler) AfterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, t)
		stopped := s.stopped
		s.mu.Unlock()

		if !stopped {
			fyne.Do(f)
		}
	})
	s.timers[t] = struct{}{}
}

// Pending returns the number of callbacks not yet fired
func (s *FyneScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every pending callback; later AfterFunc calls are dropped
func (s *FyneScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for t := range s.timers {
		t.Stop()
	}
	clear(s.timers)
}
