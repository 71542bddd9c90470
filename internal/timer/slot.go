package timer

import (
	"sync"
	"time"
)

// Slot holds at most one pending timer. Scheduling a new callback cancels
// the previous one, so only the most recently scheduled callback can run.
type Slot struct {
	mu    sync.Mutex
	clock Clock
	timer Timer
	fn    func()

	// gen is bumped on every Schedule/Cancel/Flush. A timer callback whose
	// generation no longer matches was superseded and must not run, even if
	// Stop lost the race against the runtime firing it.
	gen uint64
}

// NewSlot creates an empty slot. A nil clock uses RealClock.
func NewSlot(clock Clock) *Slot {
	if clock == nil {
		clock = RealClock()
	}
	return &Slot{clock: clock}
}

// Schedule cancels any pending callback and arranges for f to run after d.
func (s *Slot) Schedule(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.gen++
	gen := s.gen
	s.fn = f
	s.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		if s.gen != gen || s.timer == nil {
			s.mu.Unlock()
			return
		}
		fn := s.fn
		s.timer = nil
		s.fn = nil
		s.mu.Unlock()

		fn()
	})
}

// Cancel drops the pending callback. It reports whether one was pending.
func (s *Slot) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil {
		return false
	}
	s.stopLocked()
	s.gen++
	return true
}

// Flush runs the pending callback immediately on the calling goroutine and
// clears the slot. It reports whether a callback ran.
func (s *Slot) Flush() bool {
	s.mu.Lock()
	if s.timer == nil {
		s.mu.Unlock()
		return false
	}
	fn := s.fn
	s.stopLocked()
	s.gen++
	s.mu.Unlock()

	fn()
	return true
}

// Pending reports whether a callback is scheduled.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// stopLocked stops and forgets the current timer. Caller must hold the lock.
func (s *Slot) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = nil
	s.fn = nil
}
