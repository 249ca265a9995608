package fdl

import "time"

// FrameClock measures wall-clock time between successive ticks of a host
// loop driving an Engine in real time (as opposed to the fixed-Dt batch
// mode used by tests and headless runs). It clamps the measured delta so a
// debugger pause or a slow frame can't hand the physics kernel a huge dt.
type FrameClock struct {
	last       time.Time
	maxDt      float32
	FrameCount uint64
}

// NewFrameClock returns a FrameClock with the given maximum per-frame delta
// in seconds. A maxDt of 0 defaults to 0.1 (10fps floor).
func NewFrameClock(maxDt float32) *FrameClock {
	if maxDt <= 0 {
		maxDt = 0.1
	}
	return &FrameClock{last: time.Now(), maxDt: maxDt}
}

// Tick returns the clamped elapsed time in seconds since the previous call
// to Tick (or since the clock was created, for the first call).
func (c *FrameClock) Tick() float32 {
	now := time.Now()
	dt := float32(now.Sub(c.last).Seconds())
	if dt > c.maxDt {
		dt = c.maxDt
	}
	c.last = now
	c.FrameCount++
	return dt
}
