package notifications

import "time"

// Cancel stops a scheduled callback. It reports whether the callback was prevented
// from running.
type Cancel func() bool

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Cancel
}

type timeScheduler struct{}

// RealScheduler uses runtime timers.
func RealScheduler() Scheduler { return timeScheduler{} }

func (timeScheduler) AfterFunc(d time.Duration, fn func()) Cancel {
	return time.AfterFunc(d, fn).Stop
}
