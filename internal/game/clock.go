// internal/game/clock.go
//
// GameClock: start on the first selection, stop on the last match.
//
// Notes:
//   - Start is idempotent; the controller only calls it on the transition
//     out of NotStarted, the flag just makes a stray second call harmless.
//   - Stop may be called once; Elapsed is valid only after Stop.

package game

import (
	"fmt"
	"time"
)

// Clock records the start and stop instants of one game.
type Clock struct {
	now       func() time.Time
	startedAt time.Time
	stoppedAt time.Time
	started   bool
	stopped   bool
}

// NewClock returns a clock reading time from now (time.Now when nil).
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Start records the start instant. A second call is a no-op.
func (c *Clock) Start() {
	if c.started {
		return
	}
	c.startedAt = c.now()
	c.started = true
}

// Stop records the stop instant. Stopping a clock that never started, or
// stopping twice, is ErrInvalidState.
func (c *Clock) Stop() error {
	if !c.started {
		return fmt.Errorf("%w: clock stopped before it started", ErrInvalidState)
	}
	if c.stopped {
		return fmt.Errorf("%w: clock stopped twice", ErrInvalidState)
	}
	c.stoppedAt = c.now()
	c.stopped = true
	return nil
}

// Started reports whether Start has run, and when.
func (c *Clock) Started() (time.Time, bool) { return c.startedAt, c.started }

// Stopped reports whether Stop has run.
func (c *Clock) Stopped() bool { return c.stopped }

// Elapsed returns stoppedAt - startedAt. Valid only after Stop.
func (c *Clock) Elapsed() (Elapsed, error) {
	if !c.stopped {
		return Elapsed{}, fmt.Errorf("%w: elapsed read before the clock stopped", ErrInvalidState)
	}
	return NewElapsed(c.stoppedAt.Sub(c.startedAt)), nil
}

// Elapsed is a finished game's duration, broken down for reporting.
type Elapsed struct {
	Millis       int64 `json:"ms"`
	TotalSeconds int   `json:"totalSeconds"`
	Minutes      int   `json:"minutes"`
	Seconds      int   `json:"seconds"` // remainder after Minutes
}

// NewElapsed truncates d to whole seconds and splits it into minutes and seconds.
// Negative durations clamp to zero.
func NewElapsed(d time.Duration) Elapsed {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return Elapsed{
		Millis:       d.Milliseconds(),
		TotalSeconds: total,
		Minutes:      total / 60,
		Seconds:      total % 60,
	}
}

// Message renders the completion message shown to the player.
func (e Elapsed) Message() string {
	return fmt.Sprintf("Wow, you took %d minutes and %d seconds.", e.Minutes, e.Seconds)
}
