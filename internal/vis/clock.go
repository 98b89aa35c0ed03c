package vis

import "time"

// Clock paces the render loop.
type Clock interface {
	// Tick blocks until at least 1/fps has passed since the previous Tick and
	// returns the time since the previous Tick. fps <= 0 never blocks.
	Tick(fps int) time.Duration
}

// FrameClock is the wall-clock Clock.
type FrameClock struct {
	last  time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

func NewFrameClock() *FrameClock {
	return &FrameClock{now: time.Now, sleep: time.Sleep}
}

func (c *FrameClock) Tick(fps int) time.Duration {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	if fps > 0 {
		budget := time.Second / time.Duration(fps)
		if wait := budget - now.Sub(c.last); wait > 0 {
			c.sleep(wait)
			now = c.now()
		}
	}
	elapsed := now.Sub(c.last)
	c.last = now
	return elapsed
}

// nopClock never sleeps.
type nopClock struct{}

func (nopClock) Tick(int) time.Duration { return 0 }

// NoopClock returns a Clock that never blocks, for headless runs and tests.
func NoopClock() Clock { return nopClock{} }
