package session

import (
	"time"
)

// PlankTimer tracks continuous plank hold time. Elapsed time advances
// only while the timer is counting (form valid, session running, not
// user-paused); every interval spent not counting is folded into
// pausedAccumulated so pauses never double-subtract regardless of
// whether they were form-driven or user-driven.
//
// PlankTimer is not safe for concurrent use; the session manager's
// mutex serialises access from the frame callback and the tick loop.
type PlankTimer struct {
	startTime         time.Time // zero until the first counted interval
	pauseStartedAt    time.Time // zero unless currently paused mid-hold
	pausedAccumulated time.Duration
	elapsed           time.Duration
	counting          bool
	persisted         bool
}

// SetCounting transitions the timer between counting and paused. The
// first transition to counting starts the hold; later transitions fold
// the just-ended pause interval into the pause accumulator. Calling it
// with the current state is a no-op, so stacked pause causes (form
// break plus user pause) collapse into a single pause interval.
func (t *PlankTimer) SetCounting(counting bool, now time.Time) {
	if counting == t.counting {
		return
	}
	if counting {
		if t.startTime.IsZero() {
			t.startTime = now
			t.pausedAccumulated = 0
			t.persisted = false
		} else if !t.pauseStartedAt.IsZero() {
			t.pausedAccumulated += now.Sub(t.pauseStartedAt)
			t.pauseStartedAt = time.Time{}
		}
	} else {
		t.pauseStartedAt = now
	}
	t.counting = counting
}

// Tick advances the elapsed time if the timer is counting and returns
// the current elapsed duration. While paused the elapsed value stays
// frozen at its last computed value.
func (t *PlankTimer) Tick(now time.Time) time.Duration {
	if t.counting && !t.startTime.IsZero() {
		t.elapsed = now.Sub(t.startTime) - t.pausedAccumulated
	}
	return t.elapsed
}

// Elapsed returns the last computed elapsed duration.
func (t *PlankTimer) Elapsed() time.Duration {
	return t.elapsed
}

// Counting reports whether elapsed time is currently advancing.
func (t *PlankTimer) Counting() bool {
	return t.counting
}

// Flush finalises the elapsed time and reports the duration that must
// be persisted, or zero if there is nothing new to persist. The
// persisted flag guarantees the same interval is never reported twice
// even if a stop event races a tick loop into two Flush calls.
func (t *PlankTimer) Flush(now time.Time) time.Duration {
	t.Tick(now)
	if t.elapsed <= 0 || t.persisted {
		return 0
	}
	t.persisted = true
	return t.elapsed
}

// Reset clears all bookkeeping for a new session or exercise.
func (t *PlankTimer) Reset() {
	*t = PlankTimer{}
}
