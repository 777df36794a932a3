package voxel

import (
	"sync/atomic"

	"github.com/talonforge/voxelcore/pkg/block"
)

// Chunk owns a dense N³ array of block states plus a monotonically
// increasing last-update timestamp used by the render manager to detect
// staleness. The array is never resized after construction; every cell
// always holds a valid state (air by default).
type Chunk struct {
	Coord      ChunkCoord
	blocks     [ChunkSize * ChunkSize * ChunkSize]block.State
	lastUpdate atomic.Int64
}

// NewChunk allocates a chunk filled with air at the given coordinate.
func NewChunk(coord ChunkCoord) *Chunk {
	c := &Chunk{Coord: coord}
	c.lastUpdate.Store(nowNanos())
	return c
}

// GetBlock reads the state at local coordinates (x,y,z), each in
// [0, ChunkSize). Coordinates are not range-checked: an out-of-range value
// reads a different cell or panics on the array bound, so callers are
// expected to have already decomposed a world coordinate via
// BlockCoord.Local, which always produces values in range.
func (c *Chunk) GetBlock(x, y, z int32) block.State {
	return c.blocks[localIndex(x, y, z)]
}

// SetBlock writes the state at local coordinates (x,y,z). It returns true
// iff the cell's value actually changed, in which case LastUpdate is bumped
// to a fresh timestamp; a no-op write (same state already present) does not
// bump it, per the chunk's staleness-tracking invariant.
func (c *Chunk) SetBlock(x, y, z int32, s block.State) bool {
	idx := localIndex(x, y, z)
	if c.blocks[idx].Equal(s) {
		return false
	}
	c.blocks[idx] = s
	c.Touch()
	return true
}

// LastUpdate returns the chunk's current staleness timestamp.
func (c *Chunk) LastUpdate() int64 {
	return c.lastUpdate.Load()
}

// Touch bumps the chunk's last-update timestamp without changing any block
// value. Used by chunk storage to propagate dirtiness to axis-adjacent
// chunks when a neighbour's edge-visible geometry may have changed.
func (c *Chunk) Touch() {
	// Guarantee strict monotonicity even if called twice within the same
	// clock tick: bump by at least 1ns past whatever was last recorded.
	for {
		prev := c.lastUpdate.Load()
		next := nowNanos()
		if next <= prev {
			next = prev + 1
		}
		if c.lastUpdate.CompareAndSwap(prev, next) {
			return
		}
	}
}
