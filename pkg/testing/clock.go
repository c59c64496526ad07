package testing

import (
	"sync"
	"time"
)

// Stepper is advanced one frame at a time. *widgets.Scene satisfies it.
type Stepper interface {
	Step(dt time.Duration)
}

// FrameClock provides controllable time for deterministic fling tests. Time
// only moves when Advance is called, and every whole frame it covers steps
// the target once. Now is safe for concurrent use.
type FrameClock struct {
	mu      sync.Mutex
	now     time.Time
	pending time.Duration
	frame   time.Duration
	target  Stepper
}

// NewFrameClock returns a FrameClock starting at a fixed epoch that steps
// target every frame. A non-positive frame means 60 frames per second.
func NewFrameClock(target Stepper, frame time.Duration) *FrameClock {
	if frame <= 0 {
		frame = time.Second / 60
	}
	return &FrameClock{
		now:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		frame:  frame,
		target: target,
	}
}

// Now returns the current fake time.
func (c *FrameClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Frame returns the frame duration.
func (c *FrameClock) Frame() time.Duration {
	return c.frame
}

// Advance moves the clock forward by d and steps the target for every whole
// frame elapsed. Partial frames carry over to the next call. It returns the
// number of frames stepped.
func (c *FrameClock) Advance(d time.Duration) int {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.pending += d
	frames := int(c.pending / c.frame)
	c.pending -= time.Duration(frames) * c.frame
	c.mu.Unlock()

	if c.target != nil {
		for range frames {
			c.target.Step(c.frame)
		}
	}
	return frames
}

// Pump advances the clock by exactly n frames.
func (c *FrameClock) Pump(n int) {
	c.Advance(time.Duration(n) * c.frame)
}
