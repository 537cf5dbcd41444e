package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockElapsedSeconds(t *testing.T) {
	c := NewClock()
	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()

	assert.Greater(t, c.Elapsed(), float64(0))
	assert.InDelta(t, c.Elapsed()/float64(time.Second), c.ElapsedSeconds(), 1e-9)
}

func TestClockDeltaAdvancesWithUpdates(t *testing.T) {
	c := NewClock()
	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()

	first := c.Delta()
	assert.Greater(t, first, float64(0))

	// Without a new Update the frame time has not moved.
	assert.Equal(t, float64(0), c.Delta())

	time.Sleep(5 * time.Millisecond)
	c.Update()
	assert.Greater(t, c.Delta(), float64(0))
}

func TestClockUpdateHasNoEffectWhenStopped(t *testing.T) {
	c := NewClock()
	c.Update()

	assert.Equal(t, float64(0), c.Elapsed())
}
