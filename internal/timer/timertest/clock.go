// Package timertest provides a manually advanced clock for tests.
package timertest

import (
	"sync"
	"time"

	"github.com/jmylchreest/elevateui/internal/timer"
)

// Epoch is the starting time of every Clock created by NewClock.
var Epoch = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

// Clock is a fake timer.Clock. Time only moves when Advance is called, and
// due callbacks run synchronously on the goroutine calling Advance, in
// deadline order.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
	seq    int
}

type fakeTimer struct {
	clock    *Clock
	deadline time.Time
	seq      int
	fn       func()
	done     bool
}

// NewClock returns a Clock set to Epoch.
func NewClock() *Clock {
	return &Clock{now: Epoch}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules f to run once the clock has been advanced by d.
// It never runs f itself, even when d <= 0.
func (c *Clock) AfterFunc(d time.Duration, f func()) timer.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &fakeTimer{
		clock:    c,
		deadline: c.now.Add(d),
		seq:      c.seq,
		fn:       f,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer whose deadline
// falls within the window. Callbacks may schedule further timers; those fire
// too if they fall due before the new time.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		idx := -1
		for i, t := range c.timers {
			if t.deadline.After(target) {
				continue
			}
			if idx < 0 || t.deadline.Before(c.timers[idx].deadline) ||
				(t.deadline.Equal(c.timers[idx].deadline) && t.seq < c.timers[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			c.now = target
			c.mu.Unlock()
			return
		}

		t := c.timers[idx]
		c.timers = append(c.timers[:idx], c.timers[idx+1:]...)
		t.done = true
		if t.deadline.After(c.now) {
			c.now = t.deadline
		}
		c.mu.Unlock()

		t.fn()
	}
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (t *fakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			break
		}
	}
	return true
}
