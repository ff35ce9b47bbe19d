package bot

import "time"

// Scheduler runs pacing callbacks after a delay.
type Scheduler interface {
	// After runs fn once d has elapsed. The returned func cancels it.
	After(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules with time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// ImmediateScheduler runs fn synchronously. Used in tests and non-interactive runs.
type ImmediateScheduler struct{}

func (ImmediateScheduler) After(_ time.Duration, fn func()) func() {
	fn()
	return func() {}
}
