package glterm

import "time"

// FrameCounter counts frames per wall-clock second. The reported value is
// committed once per second and is 0 until the first second has passed.
type FrameCounter struct {
	frames    int
	lastCheck time.Time
	fps       float32
	now       func() time.Time
}

// NewFrameCounter creates a counter whose first one-second window starts
// now. A nil clock uses time.Now.
func NewFrameCounter(now func() time.Time) *FrameCounter {
	if now == nil {
		now = time.Now
	}
	return &FrameCounter{lastCheck: now(), now: now}
}

// Update records one frame. Once a second or more has elapsed since the
// last checkpoint, the tally including this frame becomes the FPS value and
// the tally restarts from zero.
func (c *FrameCounter) Update() {
	c.frames++
	now := c.now()
	if now.Sub(c.lastCheck) >= time.Second {
		c.fps = float32(c.frames)
		c.frames = 0
		c.lastCheck = now
	}
}

// FPS returns the frame count of the last completed one-second window.
func (c *FrameCounter) FPS() float32 {
	return c.fps
}

// Pending returns the frames counted in the current, uncommitted window.
func (c *FrameCounter) Pending() int {
	return c.frames
}
