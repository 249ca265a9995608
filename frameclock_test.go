package fdl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameClockClampsLargeDelta(t *testing.T) {
	c := NewFrameClock(0.05)
	c.last = time.Now().Add(-time.Second)

	dt := c.Tick()
	assert.LessOrEqual(t, dt, float32(0.05))
}

func TestFrameClockCountsFrames(t *testing.T) {
	c := NewFrameClock(0.1)
	c.Tick()
	c.Tick()
	c.Tick()
	assert.EqualValues(t, 3, c.FrameCount)
}

func TestFrameClockDefaultsMaxDt(t *testing.T) {
	c := NewFrameClock(0)
	assert.Equal(t, float32(0.1), c.maxDt)
}
