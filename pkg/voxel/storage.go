package voxel

import (
	"sync"

	"github.com/talonforge/voxelcore/pkg/block"
	"github.com/talonforge/voxelcore/pkg/raycast"
)

// EdgeSize is the edge length of the padded cube GetChunkWithEdges returns:
// the chunk's own N³ cells plus a one-cell border on every side.
const EdgeSize = ChunkSize + 2

// Storage is the sparse map ChunkCoord → Chunk. Chunks are mutated only on
// the main thread (per the concurrency model); the mutex here guards the
// map structure itself (insertions during world setup, lookups from the
// render/mesh path) rather than individual cell writes.
type Storage struct {
	mu     sync.RWMutex
	chunks map[ChunkCoord]*Chunk
}

// NewStorage returns an empty chunk storage.
func NewStorage() *Storage {
	return &Storage{chunks: make(map[ChunkCoord]*Chunk)}
}

// CreateChunk inserts a fresh, all-air chunk at coord if one is not already
// present, and returns it either way.
func (s *Storage) CreateChunk(coord ChunkCoord) *Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.chunks[coord]; ok {
		return c
	}
	c := NewChunk(coord)
	s.chunks[coord] = c
	return c
}

// Chunk returns the chunk at coord, if one exists.
func (s *Storage) Chunk(coord ChunkCoord) (*Chunk, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chunks[coord]
	return c, ok
}

// Chunks returns a snapshot slice of every resident chunk, for callers that
// need to walk the whole world (the render manager's per-frame pass).
func (s *Storage) Chunks() []*Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Chunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		out = append(out, c)
	}
	return out
}

// GetBlock reads the state at a world block coordinate. ok is false when no
// chunk exists at that position.
func (s *Storage) GetBlock(b BlockCoord) (block.State, bool) {
	c, ok := s.Chunk(b.Chunk())
	if !ok {
		return block.State{}, false
	}
	lx, ly, lz := b.Local()
	return c.GetBlock(lx, ly, lz), true
}

// SetBlock writes the state at a world block coordinate. It returns true iff
// a chunk existed there and the cell's value changed; on success it bumps
// last_update on the owning chunk and on all six axis-adjacent chunks (those
// neighbours may need to cull/uncull a shared face next remesh), matching
// the dirty-propagation invariant.
func (s *Storage) SetBlock(b BlockCoord, state block.State) bool {
	cc := b.Chunk()
	c, ok := s.Chunk(cc)
	if !ok {
		return false
	}

	lx, ly, lz := b.Local()
	if !c.SetBlock(lx, ly, lz, state) {
		return false
	}

	for _, d := range axisNeighbourOffsets {
		if n, ok := s.Chunk(cc.Add(d[0], d[1], d[2])); ok {
			n.Touch()
		}
	}
	return true
}

var axisNeighbourOffsets = [6][3]int32{
	{+1, 0, 0}, {-1, 0, 0},
	{0, +1, 0}, {0, -1, 0},
	{0, 0, +1}, {0, 0, -1},
}

// EdgeBlocks is the dense (N+2)³ cube of block states centred on a chunk,
// returned by GetChunkWithEdges: index [x+1][y+1][z+1] is the chunk's own
// local cell (x,y,z); index 0 / EdgeSize-1 on an axis is the one-cell border
// sourced from the corresponding neighbour, or air if no such neighbour is
// resident.
type EdgeBlocks struct {
	Coord  ChunkCoord
	Blocks [EdgeSize][EdgeSize][EdgeSize]block.State
}

// At reads the padded array at local offset (x,y,z) in [-1, ChunkSize].
func (e *EdgeBlocks) At(x, y, z int32) block.State {
	return e.Blocks[x+1][y+1][z+1]
}

// GetChunkWithEdges builds the edge-padded cube for the chunk at coord. Used
// exclusively by the mesher. The border is filled in the order the data
// model specifies: the 6 faces, then the 12 edges, then the 8 corners.
func (s *Storage) GetChunkWithEdges(coord ChunkCoord) (*EdgeBlocks, bool) {
	c, ok := s.Chunk(coord)
	if !ok {
		return nil, false
	}

	out := &EdgeBlocks{Coord: coord}

	// Interior: the chunk's own N³ cells, offset by +1 on each axis.
	for x := int32(0); x < ChunkSize; x++ {
		for y := int32(0); y < ChunkSize; y++ {
			for z := int32(0); z < ChunkSize; z++ {
				out.Blocks[x+1][y+1][z+1] = c.GetBlock(x, y, z)
			}
		}
	}

	// Faces: six axis-adjacent chunks, each contributing one N×N slab.
	s.fillFace(out, coord, +1, 0, 0)
	s.fillFace(out, coord, -1, 0, 0)
	s.fillFace(out, coord, 0, +1, 0)
	s.fillFace(out, coord, 0, -1, 0)
	s.fillFace(out, coord, 0, 0, +1)
	s.fillFace(out, coord, 0, 0, -1)

	// Edges: twelve diagonal-on-two-axes neighbours, each contributing one
	// N-length line.
	for _, d := range edgeNeighbourOffsets {
		s.fillEdge(out, coord, d)
	}

	// Corners: eight diagonal-on-three-axes neighbours, each contributing a
	// single cell.
	for _, d := range cornerNeighbourOffsets {
		s.fillCorner(out, coord, d)
	}

	return out, true
}

func (s *Storage) fillFace(out *EdgeBlocks, coord ChunkCoord, dx, dy, dz int32) {
	neighbour, ok := s.Chunk(coord.Add(dx, dy, dz))

	// Local (u,v) ranges over the face; the normal axis is fixed at the
	// border cell (0 or ChunkSize-1 in the neighbour, 0 or ChunkSize+1 in
	// the padded output).
	for u := int32(0); u < ChunkSize; u++ {
		for v := int32(0); v < ChunkSize; v++ {
			var nx, ny, nz int32 // coordinate read from neighbour
			var ox, oy, oz int32 // coordinate written in out

			switch {
			case dx != 0:
				nx, ny, nz = faceEdgeCoord(dx), u, v
				ox, oy, oz = faceOutCoord(dx), u+1, v+1
			case dy != 0:
				nx, ny, nz = u, faceEdgeCoord(dy), v
				ox, oy, oz = u+1, faceOutCoord(dy), v+1
			default:
				nx, ny, nz = u, v, faceEdgeCoord(dz)
				ox, oy, oz = u+1, v+1, faceOutCoord(dz)
			}

			state := block.AirState
			if ok {
				state = neighbour.GetBlock(nx, ny, nz)
			}
			out.Blocks[ox][oy][oz] = state
		}
	}
}

// faceEdgeCoord returns which local coordinate in the neighbour chunk
// borders us, given the step direction towards that neighbour.
func faceEdgeCoord(d int32) int32 {
	if d > 0 {
		return 0
	}
	return ChunkSize - 1
}

// faceOutCoord returns the padded-array coordinate for that same border.
func faceOutCoord(d int32) int32 {
	if d > 0 {
		return EdgeSize - 1
	}
	return 0
}

var edgeNeighbourOffsets = [12][3]int32{
	{+1, +1, 0}, {+1, -1, 0}, {-1, +1, 0}, {-1, -1, 0},
	{+1, 0, +1}, {+1, 0, -1}, {-1, 0, +1}, {-1, 0, -1},
	{0, +1, +1}, {0, +1, -1}, {0, -1, +1}, {0, -1, -1},
}

func (s *Storage) fillEdge(out *EdgeBlocks, coord ChunkCoord, d [3]int32) {
	neighbour, ok := s.Chunk(coord.Add(d[0], d[1], d[2]))

	for w := int32(0); w < ChunkSize; w++ {
		var nx, ny, nz, ox, oy, oz int32
		switch {
		case d[2] == 0: // offset on X and Y, free axis is Z
			nx, ny, nz = faceEdgeCoord(d[0]), faceEdgeCoord(d[1]), w
			ox, oy, oz = faceOutCoord(d[0]), faceOutCoord(d[1]), w+1
		case d[1] == 0: // offset on X and Z, free axis is Y
			nx, ny, nz = faceEdgeCoord(d[0]), w, faceEdgeCoord(d[2])
			ox, oy, oz = faceOutCoord(d[0]), w+1, faceOutCoord(d[2])
		default: // offset on Y and Z, free axis is X
			nx, ny, nz = w, faceEdgeCoord(d[1]), faceEdgeCoord(d[2])
			ox, oy, oz = w+1, faceOutCoord(d[1]), faceOutCoord(d[2])
		}

		state := block.AirState
		if ok {
			state = neighbour.GetBlock(nx, ny, nz)
		}
		out.Blocks[ox][oy][oz] = state
	}
}

var cornerNeighbourOffsets = [8][3]int32{
	{+1, +1, +1}, {+1, +1, -1}, {+1, -1, +1}, {+1, -1, -1},
	{-1, +1, +1}, {-1, +1, -1}, {-1, -1, +1}, {-1, -1, -1},
}

func (s *Storage) fillCorner(out *EdgeBlocks, coord ChunkCoord, d [3]int32) {
	state := block.AirState
	if neighbour, ok := s.Chunk(coord.Add(d[0], d[1], d[2])); ok {
		state = neighbour.GetBlock(faceEdgeCoord(d[0]), faceEdgeCoord(d[1]), faceEdgeCoord(d[2]))
	}
	out.Blocks[faceOutCoord(d[0])][faceOutCoord(d[1])][faceOutCoord(d[2])] = state
}

// RaycastResult is returned by Raycast: the last empty cell traversed before
// the hit, the hit cell itself, and the state found there.
type RaycastResult struct {
	Prev  BlockCoord
	Hit   BlockCoord
	State block.State
}

// Raycast steps r until it crosses a non-air cell or exhausts, returning the
// last traversed empty cell and the hit cell. It returns false if the ray
// exhausts without ever hitting a non-air cell.
func (s *Storage) Raycast(r *raycast.Raycaster) (RaycastResult, bool) {
	var prev BlockCoord
	havePrev := false

	for {
		cell, ok := r.Step()
		if !ok {
			return RaycastResult{}, false
		}

		cur := BlockCoord{X: int32(cell[0]), Y: int32(cell[1]), Z: int32(cell[2])}
		state, exists := s.GetBlock(cur)
		if !exists {
			state = block.AirState
		}

		if state.ID != block.AirID {
			if !havePrev {
				prev = cur
			}
			return RaycastResult{Prev: prev, Hit: cur, State: state}, true
		}

		prev = cur
		havePrev = true
	}
}
