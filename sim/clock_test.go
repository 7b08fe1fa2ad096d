package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemClock_Tick_SplitsBusyAndIdle(t *testing.T) {
	c := NewSystemClock()

	c.Tick(true)
	c.Tick(false)
	c.Advance(2, true)

	assert.Equal(t, int64(4), c.GlobalTime)
	assert.Equal(t, int64(3), c.BusyTime)
	assert.Equal(t, int64(1), c.IdleTime)
	assert.Equal(t, c.GlobalTime, c.BusyTime+c.IdleTime)
	assert.InDelta(t, 75.0, c.Utilization(), 1e-9)
}

func TestSystemClock_Utilization_ZeroTime(t *testing.T) {
	assert.Zero(t, NewSystemClock().Utilization())
}

func TestSystemClock_Reset(t *testing.T) {
	c := NewSystemClock()
	c.Advance(5, false)

	c.Reset()

	assert.Equal(t, SystemClock{}, *c)
	assert.Contains(t, c.String(), "Time: 0")
}

func TestSystemClock_Advance_MatchesRepeatedTicks(t *testing.T) {
	ticked, advanced := NewSystemClock(), NewSystemClock()
	for i := 0; i < 7; i++ {
		ticked.Tick(i%3 == 0)
	}

	advanced.Advance(3, true)
	advanced.Advance(4, false)
	advanced.Advance(0, true)
	advanced.Advance(-2, false)

	assert.Equal(t, ticked.GlobalTime, advanced.GlobalTime)
	assert.Equal(t, ticked.BusyTime, advanced.BusyTime)
	assert.Equal(t, ticked.IdleTime, advanced.IdleTime)
}

func TestSystemClock_Advance_LargeSpanIsConstantTime(t *testing.T) {
	c := NewSystemClock()

	c.Advance(1_000_000_000_000_000, true)
	c.Advance(5, false)

	assert.Equal(t, int64(1_000_000_000_000_005), c.GlobalTime)
	assert.Equal(t, int64(1_000_000_000_000_000), c.BusyTime)
	assert.Equal(t, int64(5), c.IdleTime)
}
