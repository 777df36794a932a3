// Package loop implements the fixed-timestep game loop: it runs zero or
// more simulation ticks at a fixed rate (catching up after a stall, up to a
// bounded number of ticks per call) and then draws exactly once, handing the
// draw callback an interpolation factor between the last tick and the next.
package loop

import (
	"log"
	"os"
)

var logger = log.New(os.Stderr, "[loop] ", log.LstdFlags)

// Loop tracks fixed-timestep bookkeeping: the next scheduled tick time,
// catch-up bounds, and rolling frames/ticks-per-second counters.
type Loop struct {
	skipTicks     float64
	maxFrameskip  int
	nextGameTick  float64
	loops         int
	interpolation float32

	frameTime   float64
	frameCount  int
	tickCount   int
	totalFrames uint64
	totalTicks  uint64

	lastCheck float64
	lastFPS   float64
	lastTPS   float64

	printTimers bool
}

// New returns a loop targeting ticksPerSecond simulation ticks per second.
// When printTimers is true, the loop logs a rolling FPS/TPS measurement
// roughly once a second.
func New(ticksPerSecond int, printTimers bool) *Loop {
	return &Loop{
		skipTicks:    1.0 / float64(ticksPerSecond),
		maxFrameskip: 5,
		printTimers:  printTimers,
	}
}

// Next runs the fixed-timestep step: it calls now to read the current time
// (seconds, monotonic), runs tick for every scheduled tick that has come due
// (up to maxFrameskip catch-up ticks), then calls draw exactly once with the
// current time and the interpolation factor between the last completed tick
// and the next scheduled one.
func (l *Loop) Next(now func() float64, tick func(t float64), draw func(t float64, interpolation float32)) {
	frameStart := now()
	l.loops = 0

	for now() > l.nextGameTick && l.loops < l.maxFrameskip {
		tick(now())

		l.nextGameTick += l.skipTicks
		l.loops++
		l.tickCount++
		l.totalTicks++
	}

	t := now()
	delta := t - l.nextGameTick
	l.interpolation = float32((delta + l.skipTicks) / l.skipTicks)
	draw(t, l.interpolation)

	frameEnd := now()
	l.frameTime = frameEnd - frameStart
	l.frameCount++
	l.totalFrames++

	if frameEnd-l.lastCheck > 1.0 && l.frameCount > 10 {
		elapsed := frameEnd - l.lastCheck
		l.lastFPS = float64(l.frameCount) / elapsed
		l.lastTPS = float64(l.tickCount) / elapsed

		l.frameCount = 0
		l.tickCount = 0
		l.lastCheck = frameEnd

		if l.printTimers {
			logger.Printf("%.1f FPS, %.1f TPS", l.lastFPS, l.lastTPS)
		}
	}
}

// SetTicksPerSecond changes the fixed tick rate, taking effect from the
// next call to Next (the in-flight catch-up schedule is left alone).
// Backs the stdin command channel's "set-tps" command.
func (l *Loop) SetTicksPerSecond(ticksPerSecond int) {
	l.skipTicks = 1.0 / float64(ticksPerSecond)
}

// TotalTicks returns the total number of ticks run since the loop started.
func (l *Loop) TotalTicks() uint64 { return l.totalTicks }

// TotalFrames returns the total number of frames drawn since the loop
// started.
func (l *Loop) TotalFrames() uint64 { return l.totalFrames }

// FrameTime returns the measured wall-clock length, in seconds, of the last
// call to Next.
func (l *Loop) FrameTime() float64 { return l.frameTime }

// FramesPerSecond returns the most recently measured average frame rate.
func (l *Loop) FramesPerSecond() float64 { return l.lastFPS }

// TicksPerSecond returns the most recently measured average tick rate.
func (l *Loop) TicksPerSecond() float64 { return l.lastTPS }
