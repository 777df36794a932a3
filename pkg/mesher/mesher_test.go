package mesher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talonforge/voxelcore/pkg/bakery"
	"github.com/talonforge/voxelcore/pkg/block"
	"github.com/talonforge/voxelcore/pkg/voxel"
)

type fakeAtlas map[string]bakery.UVRect

func (a fakeAtlas) Lookup(name string) (bakery.UVRect, bool) {
	r, ok := a[name]
	return r, ok
}

func newBakery(t *testing.T) (*bakery.Bakery, *block.Registry, block.ID) {
	t.Helper()
	reg := block.NewRegistry()
	stone, err := reg.Register("stone")
	require.NoError(t, err)

	atlas := fakeAtlas{"stone": {UMin: 0, VMin: 0, UMax: 1, VMax: 1}}
	bk, err := bakery.Bake(reg, atlas, map[block.ID]bakery.Model{stone.ID: bakery.UnitCubeModel("stone")})
	require.NoError(t, err)
	return bk, reg, stone.ID
}

func TestBuildSingleBlockEmitsAllSixFaces(t *testing.T) {
	bk, _, stone := newBakery(t)

	s := voxel.NewStorage()
	s.CreateChunk(voxel.ChunkCoord{0, 0, 0})
	s.SetBlock(voxel.BlockCoord{X: 5, Y: 5, Z: 5}, block.State{ID: stone})

	edges, ok := s.GetChunkWithEdges(voxel.ChunkCoord{0, 0, 0})
	require.True(t, ok)

	mesh := Build(edges, bk)
	assert.Equal(t, 6*4, mesh.VertexCount)
	assert.Len(t, mesh.Data, mesh.VertexCount*VertexStride)
	assert.False(t, mesh.Empty())
}

func TestBuildAdjacentBlocksCullSharedFace(t *testing.T) {
	bk, _, stone := newBakery(t)

	s := voxel.NewStorage()
	s.CreateChunk(voxel.ChunkCoord{0, 0, 0})
	s.SetBlock(voxel.BlockCoord{X: 5, Y: 5, Z: 5}, block.State{ID: stone})
	s.SetBlock(voxel.BlockCoord{X: 6, Y: 5, Z: 5}, block.State{ID: stone})

	edges, ok := s.GetChunkWithEdges(voxel.ChunkCoord{0, 0, 0})
	require.True(t, ok)

	mesh := Build(edges, bk)
	// Each block has 5 unoccluded faces: the shared +X/-X pair is culled.
	assert.Equal(t, 2*5*4, mesh.VertexCount)
}

func TestBuildEmptyChunkProducesEmptyMesh(t *testing.T) {
	bk, _, _ := newBakery(t)

	s := voxel.NewStorage()
	s.CreateChunk(voxel.ChunkCoord{0, 0, 0})

	edges, ok := s.GetChunkWithEdges(voxel.ChunkCoord{0, 0, 0})
	require.True(t, ok)

	mesh := Build(edges, bk)
	assert.True(t, mesh.Empty())
	assert.Empty(t, mesh.Data)
}

func TestBuildSolidCubeEmitsOnlyExteriorFaces(t *testing.T) {
	bk, _, stone := newBakery(t)

	s := voxel.NewStorage()
	s.CreateChunk(voxel.ChunkCoord{0, 0, 0})
	for x := int32(4); x < 7; x++ {
		for y := int32(4); y < 7; y++ {
			for z := int32(4); z < 7; z++ {
				s.SetBlock(voxel.BlockCoord{X: x, Y: y, Z: z}, block.State{ID: stone})
			}
		}
	}

	edges, ok := s.GetChunkWithEdges(voxel.ChunkCoord{0, 0, 0})
	require.True(t, ok)

	mesh := Build(edges, bk)
	// A solid 3x3x3 cube has 9 exposed unit faces per side, 6 sides, and no
	// interior faces at all: every face between two solid neighbours is culled.
	assert.Equal(t, 6*9*4, mesh.VertexCount)
}

func TestBuildCullsAgainstNeighbourChunk(t *testing.T) {
	bk, _, stone := newBakery(t)

	s := voxel.NewStorage()
	s.CreateChunk(voxel.ChunkCoord{0, 0, 0})
	s.CreateChunk(voxel.ChunkCoord{1, 0, 0})
	s.SetBlock(voxel.BlockCoord{X: voxel.ChunkSize - 1, Y: 0, Z: 0}, block.State{ID: stone})
	s.SetBlock(voxel.BlockCoord{X: voxel.ChunkSize, Y: 0, Z: 0}, block.State{ID: stone})

	edges, ok := s.GetChunkWithEdges(voxel.ChunkCoord{0, 0, 0})
	require.True(t, ok)

	mesh := Build(edges, bk)
	assert.Equal(t, 5*4, mesh.VertexCount, "the +X face is culled by the block in the neighbour chunk")
}
