package engine

import "time"

// FrameClock turns wall time into per-tick dt for the simulation
// Paused time is never delivered; deltas are capped at maxDelta so stalls don't explode a tick
// Goroutine-confined, owned by the loop that drives the simulation
type FrameClock struct {
	provider TimeProvider
	last     time.Time
	maxDelta time.Duration
	paused   bool

	frames  uint64
	elapsed time.Duration // Simulated time delivered so far
}

// NewFrameClock creates a running clock anchored at the provider's current time
func NewFrameClock(provider TimeProvider, maxDelta time.Duration) *FrameClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &FrameClock{
		provider: provider,
		last:     provider.Now(),
		maxDelta: maxDelta,
	}
}

// Tick returns seconds since the previous Tick, 0 while paused
func (c *FrameClock) Tick() float64 {
	now := c.provider.Now()
	d := now.Sub(c.last)
	c.last = now

	if c.paused || d <= 0 {
		return 0
	}
	if c.maxDelta > 0 && d > c.maxDelta {
		d = c.maxDelta
	}

	c.frames++
	c.elapsed += d
	return d.Seconds()
}

// Pause stops dt delivery
func (c *FrameClock) Pause() {
	c.paused = true
}

// Resume continues dt delivery without replaying the paused interval
func (c *FrameClock) Resume() {
	if !c.paused {
		return
	}
	c.paused = false
	c.last = c.provider.Now()
}

// Toggle flips pause state and returns the new state
func (c *FrameClock) Toggle() bool {
	if c.paused {
		c.Resume()
	} else {
		c.Pause()
	}
	return c.paused
}

// IsPaused returns current pause state
func (c *FrameClock) IsPaused() bool {
	return c.paused
}

// Frames returns the number of non-zero deltas delivered
func (c *FrameClock) Frames() uint64 {
	return c.frames
}

// Elapsed returns total simulated time delivered
func (c *FrameClock) Elapsed() time.Duration {
	return c.elapsed
}
