package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talonforge/voxelcore/pkg/block"
	"github.com/talonforge/voxelcore/pkg/raycast"
)

func TestPlaceAndRemoveBlock(t *testing.T) {
	s := NewStorage()
	s.CreateChunk(ChunkCoord{0, 0, 0})

	bedrock := block.State{ID: 7}
	pos := BlockCoord{X: 1, Y: 2, Z: 3}

	changed := s.SetBlock(pos, bedrock)
	require.True(t, changed)

	got, ok := s.GetBlock(pos)
	require.True(t, ok)
	assert.Equal(t, bedrock, got)

	empty, ok := s.GetBlock(BlockCoord{X: 1, Y: 2, Z: 4})
	require.True(t, ok)
	assert.Equal(t, block.AirState, empty)

	c, ok := s.Chunk(ChunkCoord{0, 0, 0})
	require.True(t, ok)
	firstUpdate := c.LastUpdate()

	changed = s.SetBlock(pos, block.AirState)
	require.True(t, changed)
	assert.Greater(t, c.LastUpdate(), firstUpdate)

	got, ok = s.GetBlock(pos)
	require.True(t, ok)
	assert.Equal(t, block.AirState, got)
}

func TestSetBlockBumpsAxisNeighbours(t *testing.T) {
	s := NewStorage()
	s.CreateChunk(ChunkCoord{0, 0, 0})
	nx := s.CreateChunk(ChunkCoord{1, 0, 0})
	diag := s.CreateChunk(ChunkCoord{1, 1, 0})

	before := nx.LastUpdate()
	beforeDiag := diag.LastUpdate()

	s.SetBlock(BlockCoord{X: 5, Y: 5, Z: 5}, block.State{ID: 3})

	assert.Greater(t, nx.LastUpdate(), before)
	assert.Equal(t, beforeDiag, diag.LastUpdate(), "diagonal neighbours are not axis-adjacent and must not be touched")
}

func TestEdgeSetEquivalence(t *testing.T) {
	s := NewStorage()
	center := s.CreateChunk(ChunkCoord{0, 0, 0})
	s.CreateChunk(ChunkCoord{1, 0, 0})
	s.CreateChunk(ChunkCoord{-1, 0, 0})

	center.SetBlock(5, 5, 5, block.State{ID: 9})
	east, _ := s.Chunk(ChunkCoord{1, 0, 0})
	east.SetBlock(0, 3, 3, block.State{ID: 11})

	edges, ok := s.GetChunkWithEdges(ChunkCoord{0, 0, 0})
	require.True(t, ok)

	for lx := int32(0); lx < ChunkSize; lx++ {
		for ly := int32(0); ly < ChunkSize; ly++ {
			for lz := int32(0); lz < ChunkSize; lz++ {
				assert.Equal(t, center.GetBlock(lx, ly, lz), edges.At(lx, ly, lz))
			}
		}
	}

	// The +X face border should mirror the east chunk's x=0 slab.
	assert.Equal(t, block.State{ID: 11}, edges.At(ChunkSize, 3, 3))
}

func TestRaycastThroughStorageHitsFirstSolid(t *testing.T) {
	s := NewStorage()
	s.CreateChunk(ChunkCoord{0, 0, 0})

	solid := block.State{ID: 4}
	s.SetBlock(BlockCoord{X: 5, Y: 0, Z: 0}, solid)

	r := raycast.NewFromSrcDirLen(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 10)
	result, ok := s.Raycast(r)
	require.True(t, ok)

	assert.Equal(t, BlockCoord{X: 4, Y: 0, Z: 0}, result.Prev)
	assert.Equal(t, BlockCoord{X: 5, Y: 0, Z: 0}, result.Hit)
	assert.Equal(t, solid, result.State)
}
