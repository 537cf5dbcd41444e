package core

import "time"

type Clock struct {
	startTime float64
	elapsed   float64
	lastFrame float64
}

func NewClock() *Clock {
	return &Clock{}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.startTime != 0 {
		c.elapsed = float64(time.Now().UnixNano()) - c.startTime
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = float64(time.Now().UnixNano())
	c.elapsed = 0
	c.lastFrame = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.startTime = 0
}

// Elapsed returns the nanoseconds since the clock was started.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// ElapsedSeconds returns the seconds since the clock was started.
func (c *Clock) ElapsedSeconds() float64 {
	return c.elapsed / float64(time.Second)
}

// Delta returns the seconds elapsed since the previous call to Delta.
// Used to advance animation playback by frame time.
func (c *Clock) Delta() float64 {
	d := c.elapsed - c.lastFrame
	c.lastFrame = c.elapsed
	return d / float64(time.Second)
}
