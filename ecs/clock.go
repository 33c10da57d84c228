package ecs

// MaxDeltaSeconds caps a single frame so a stall does not fast-forward the
// simulation by seconds at once.
const MaxDeltaSeconds = 0.25

// Clock is the world's monotonic game time.
type Clock struct {
	time  float64
	delta float64
	frame uint64
}

// Advance moves time forward and returns the delta actually applied.
func (c *Clock) Advance(dt float64) float64 {
	if dt < 0 {
		dt = 0
	}
	if dt > MaxDeltaSeconds {
		dt = MaxDeltaSeconds
	}
	c.time += dt
	c.delta = dt
	c.frame++
	return dt
}

func (c *Clock) TimeSeconds() float64 {
	return c.time
}

func (c *Clock) DeltaSeconds() float64 {
	return c.delta
}

func (c *Clock) Frame() uint64 {
	return c.frame
}
