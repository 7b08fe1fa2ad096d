package sim

import "fmt"

// SystemClock is the discrete-time counter driven by the Kernel.
// Every tick is accounted as either busy or idle.
type SystemClock struct {
	GlobalTime int64
	BusyTime   int64
	IdleTime   int64
}

// NewSystemClock returns a clock at time zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Tick advances the clock by one unit.
func (c *SystemClock) Tick(busy bool) {
	c.GlobalTime++
	if busy {
		c.BusyTime++
	} else {
		c.IdleTime++
	}
}

// Advance is n calls to Tick with the same busy flag, applied at once.
// Non-positive n is a no-op.
func (c *SystemClock) Advance(n int64, busy bool) {
	if n <= 0 {
		return
	}
	c.GlobalTime += n
	if busy {
		c.BusyTime += n
	} else {
		c.IdleTime += n
	}
}

// Utilization returns busy time as a percentage of global time (0 when no time has elapsed).
func (c *SystemClock) Utilization() float64 {
	if c.GlobalTime == 0 {
		return 0
	}
	return float64(c.BusyTime) / float64(c.GlobalTime) * 100
}

// Reset zeroes all counters.
func (c *SystemClock) Reset() {
	c.GlobalTime = 0
	c.BusyTime = 0
	c.IdleTime = 0
}

func (c *SystemClock) String() string {
	return fmt.Sprintf("Clock: (Time: %d, Busy: %d, Idle: %d, Utilization: %.2f%%)",
		c.GlobalTime, c.BusyTime, c.IdleTime, c.Utilization())
}
