package app

import "time"

// maxFrameDelta caps a measured step so a stall (window drag, breakpoint)
// does not fast-forward every animation.
const maxFrameDelta = 250 * time.Millisecond

// Clock yields the animation step for each frame: the configured fixed
// timestep, or the measured wall-clock delta when variable is set.
type Clock struct {
	fixed    time.Duration
	variable bool
	last     time.Time
}

// NewClock creates a clock. A non-positive fixed step falls back to 16 ms.
func NewClock(fixed time.Duration, variable bool) *Clock {
	if fixed <= 0 {
		fixed = 16 * time.Millisecond
	}
	return &Clock{fixed: fixed, variable: variable}
}

// Next returns the step in seconds for a frame starting at now.
func (c *Clock) Next(now time.Time) float64 {
	if !c.variable {
		return c.fixed.Seconds()
	}
	if c.last.IsZero() {
		c.last = now
		return c.fixed.Seconds()
	}
	dt := now.Sub(c.last)
	c.last = now
	return min(max(dt, 0), maxFrameDelta).Seconds()
}

// Variable reports whether the clock measures wall time.
func (c *Clock) Variable() bool {
	return c.variable
}
