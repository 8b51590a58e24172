package snack

import "time"

// Cancel stops a deferred action. Calling it after the action ran, or more
// than once, is harmless.
type Cancel func()

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Cancel
}

// TimerScheduler runs deferred actions on runtime timers. Actions execute on
// their own goroutine.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, fn func()) Cancel

// AfterFunc implements Scheduler.
func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) Cancel {
	return f(d, fn)
}
