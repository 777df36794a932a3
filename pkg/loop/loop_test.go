package loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances only when asked to, giving deterministic control over
// what Next sees without depending on wall-clock time.
type fakeClock struct {
	t float64
}

func (c *fakeClock) now() float64 { return c.t }

func TestNextRunsOneTickPerSkipInterval(t *testing.T) {
	clock := &fakeClock{}
	l := New(20, false) // skipTicks = 0.05s

	var ticks int
	var draws int

	clock.t = 0.05
	l.Next(clock.now, func(float64) { ticks++ }, func(float64, float32) { draws++ })

	assert.Equal(t, 1, ticks)
	assert.Equal(t, 1, draws)
	assert.EqualValues(t, 1, l.TotalTicks())
	assert.EqualValues(t, 1, l.TotalFrames())
}

func TestNextCapsCatchUpAtMaxFrameskip(t *testing.T) {
	clock := &fakeClock{}
	l := New(20, false) // skipTicks = 0.05s, maxFrameskip = 5

	clock.t = 10.0 // wildly behind schedule
	var ticks int
	l.Next(clock.now, func(float64) { ticks++ }, func(float64, float32) {})

	assert.Equal(t, 5, ticks, "tick count must be bounded by maxFrameskip regardless of how far behind the clock is")
}

func TestNextRunsNoTicksWhenAheadOfSchedule(t *testing.T) {
	clock := &fakeClock{}
	l := New(20, false) // skipTicks = 0.05s

	clock.t = 0.05
	l.Next(clock.now, func(float64) {}, func(float64, float32) {}) // prime: runs the tick scheduled at 0; the next is scheduled at 0.05

	clock.t = 0.05 // clock has not advanced past the next scheduled tick yet
	var ticks, draws int
	l.Next(clock.now, func(float64) { ticks++ }, func(float64, float32) { draws++ })

	assert.Equal(t, 0, ticks)
	assert.Equal(t, 1, draws, "draw always runs exactly once regardless of tick count")
}

func TestInterpolationFactorIsWithinExpectedRange(t *testing.T) {
	clock := &fakeClock{}
	l := New(20, false) // skipTicks = 0.05s

	clock.t = 0.05
	l.Next(clock.now, func(float64) {}, func(float64, float32) {}) // prime: runs the tick scheduled at 0; the next is scheduled at 0.05

	var gotInterp float32
	clock.t = 0.07 // runs the 0.05 tick (next at 0.10); 40% of the way into the 0.05-0.10 interval
	l.Next(clock.now, func(float64) {}, func(_ float64, interp float32) { gotInterp = interp })

	assert.InDelta(t, 0.4, gotInterp, 0.001)
}
