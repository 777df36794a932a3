package voxel

import "time"

// processStart anchors last-update timestamps to process start rather than
// the wall clock, matching the data model's "nanoseconds since process
// epoch" definition and keeping values small enough to stay well clear of
// int64 overflow for any realistic process lifetime.
var processStart = time.Now()

// nowNanos returns a monotonically increasing nanosecond timestamp suitable
// for Chunk.lastUpdate. time.Since uses the runtime's monotonic clock
// reading, so this is safe against wall-clock adjustments.
func nowNanos() int64 {
	return int64(time.Since(processStart))
}
