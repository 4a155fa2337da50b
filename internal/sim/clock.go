package sim

import "time"

// Clock converts wall-clock time into a number of fixed simulation steps.
// Leftover time carries to the next Advance; a backlog larger than maxCatchup
// steps is dropped so a stalled front end does not spiral.
type Clock struct {
	step       time.Duration
	maxCatchup int
	acc        time.Duration
}

// NewClock creates a clock with the given step length.
func NewClock(step time.Duration, maxCatchup int) *Clock {
	if maxCatchup < 1 {
		maxCatchup = 1
	}
	return &Clock{step: step, maxCatchup: maxCatchup}
}

// Advance adds elapsed time and returns how many steps to run now.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		c.acc += elapsed
	}
	n := int(c.acc / c.step)
	if n > c.maxCatchup {
		c.acc = 0
		return c.maxCatchup
	}
	c.acc -= time.Duration(n) * c.step
	return n
}

// Pending returns the accumulated time not yet consumed by a step.
func (c *Clock) Pending() time.Duration {
	return c.acc
}

// Reset drops any accumulated time.
func (c *Clock) Reset() {
	c.acc = 0
}

// Step returns the step length.
func (c *Clock) Step() time.Duration {
	return c.step
}
