package lantern

import "time"

// defaultMaxDelta caps the delta after a stall (window drag, debugger pause)
// so animations step forward instead of teleporting.
const defaultMaxDelta = 0.25

// Clock measures the elapsed seconds between frames for the host loop.
//
// The value returned by Tick is meant to be passed down to every Update call
// in the same frame; components never read a clock of their own.
type Clock struct {
	// MaxDelta is the largest delta Tick will report. Zero means use the
	// default of 0.25 seconds.
	MaxDelta float64

	last time.Time
	now  func() time.Time
}

// NewClock creates a Clock. The first Tick returns 0.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Tick returns the seconds elapsed since the previous Tick, capped at
// MaxDelta. Call it exactly once per frame.
func (c *Clock) Tick() float64 {
	if c.now == nil {
		c.now = time.Now
	}
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	dt := t.Sub(c.last).Seconds()
	c.last = t

	max := c.MaxDelta
	if max <= 0 {
		max = defaultMaxDelta
	}
	if dt > max {
		dt = max
	}
	if dt < 0 {
		dt = 0
	}
	return dt
}
