package timer

import "time"

// Timer is a scheduled callback that can be stopped before it fires.
// *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Clock tells the time and schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
