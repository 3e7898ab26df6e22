package session

import (
	"fmt"
	"time"
)

// Timer tracks play time across pause and resume. While running, elapsed
// time is measured against startTime; while paused, the frozen elapsed
// value is authoritative and startTime is stale.
type Timer struct {
	startTime time.Time
	elapsed   time.Duration
	running   bool
}

// Start begins or resumes the timer. Resuming backdates startTime by the
// frozen elapsed duration, so the clock continues rather than restarting.
func (t *Timer) Start(now time.Time) {
	t.startTime = now.Add(-t.elapsed)
	t.running = true
}

// Pause freezes the elapsed duration. Pausing a stopped timer is a no-op.
func (t *Timer) Pause(now time.Time) {
	if !t.running {
		return
	}
	t.elapsed = now.Sub(t.startTime)
	t.running = false
}

// Reset zeroes the timer.
func (t *Timer) Reset() {
	*t = Timer{}
}

// Elapsed returns the live duration while running, the frozen one while
// not.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	if t.running {
		return now.Sub(t.startTime)
	}
	return t.elapsed
}

// Running reports whether the timer is counting.
func (t *Timer) Running() bool {
	return t.running
}

// FormatDuration renders a duration as "MM:SS.CC": minutes, seconds, and
// centiseconds, each zero-padded to two digits. Minutes widen past two
// digits rather than wrapping. Negative durations render as zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d.%02d", ms/60000, ms%60000/1000, ms%1000/10)
}
