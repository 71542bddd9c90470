// Package debounce collapses bursts of calls into a single trailing call.
//
// Each call to a Debouncer cancels the call scheduled before it and schedules
// a new one for the configured wait, so the action runs once per quiet period
// with the arguments of the last call in the burst.
package debounce

import (
	"time"

	"github.com/jmylchreest/elevateui/internal/timer"
)

// DefaultWait is used when a non-positive wait is given.
const DefaultWait = 300 * time.Millisecond

// Option configures a Debouncer.
type Option func(*options)

type options struct {
	clock timer.Clock
}

// WithClock sets the clock used to schedule the trailing call.
func WithClock(c timer.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// Debouncer delays action until wait has elapsed since the last Call.
//
// The action runs on a timer goroutine. Panics and errors inside it are not
// intercepted; an action that can fail must handle that itself.
type Debouncer[T any] struct {
	action func(T)
	wait   time.Duration
	slot   *timer.Slot
}

// New wraps action. A wait <= 0 selects DefaultWait.
func New[T any](action func(T), wait time.Duration, opts ...Option) *Debouncer[T] {
	o := options{clock: timer.RealClock()}
	for _, opt := range opts {
		opt(&o)
	}
	if wait <= 0 {
		wait = DefaultWait
	}

	return &Debouncer[T]{
		action: action,
		wait:   wait,
		slot:   timer.NewSlot(o.clock),
	}
}

// Call supersedes any pending call and schedules action(arg) after the wait.
func (d *Debouncer[T]) Call(arg T) {
	d.slot.Schedule(d.wait, func() {
		d.action(arg)
	})
}

// Func returns Call as a plain function value.
func (d *Debouncer[T]) Func() func(T) {
	return d.Call
}

// Cancel drops the pending call, if any, and reports whether one was dropped.
func (d *Debouncer[T]) Cancel() bool {
	return d.slot.Cancel()
}

// Flush runs the pending call now, on the calling goroutine, instead of
// waiting for the timer. It reports whether a call was pending.
func (d *Debouncer[T]) Flush() bool {
	return d.slot.Flush()
}

// Pending reports whether a call is waiting to run.
func (d *Debouncer[T]) Pending() bool {
	return d.slot.Pending()
}

// Wait returns the effective quiet period.
func (d *Debouncer[T]) Wait() time.Duration {
	return d.wait
}

// Func debounces an action that takes no arguments.
func Func(action func(), wait time.Duration, opts ...Option) func() {
	d := New(func(struct{}) { action() }, wait, opts...)
	return func() {
		d.Call(struct{}{})
	}
}
