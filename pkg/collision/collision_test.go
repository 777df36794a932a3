package collision

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talonforge/voxelcore/pkg/block"
	"github.com/talonforge/voxelcore/pkg/voxel"
)

func newFloorStorage(t *testing.T) *voxel.Storage {
	t.Helper()
	s := voxel.NewStorage()
	s.CreateChunk(voxel.ChunkCoord{0, 0, 0})
	for x := int32(0); x < 8; x++ {
		for z := int32(0); z < 8; z++ {
			s.SetBlock(voxel.BlockCoord{X: x, Y: 0, Z: z}, block.State{ID: 1})
		}
	}
	return s
}

func TestResolveStopsFallOnFloor(t *testing.T) {
	s := newFloorStorage(t)

	box := AABB{Center: mgl32.Vec3{2, 2.4, 2}, Size: mgl32.Vec3{0.6, 1.8, 0.6}}
	box = Resolve(s, box, mgl32.Vec3{0, -1, 0})

	assert.InDelta(t, 1.0, box.MinY(), 0.001, "the box should come to rest with its bottom on top of the floor at y=1")
}

func TestResolveSlidesAlongWallWithoutVerticalChange(t *testing.T) {
	s := voxel.NewStorage()
	s.CreateChunk(voxel.ChunkCoord{0, 0, 0})
	s.SetBlock(voxel.BlockCoord{X: 3, Y: 5, Z: 5}, block.State{ID: 1})

	box := AABB{Center: mgl32.Vec3{2, 5.5, 5}, Size: mgl32.Vec3{0.6, 1.8, 0.6}}
	box = Resolve(s, box, mgl32.Vec3{1, 0, 0})

	assert.Less(t, box.MaxX(), float32(3), "horizontal movement into a wall must be blocked")
	assert.InDelta(t, 5.5, box.Center.Y(), 0.0001, "the vertical position must be unaffected by a horizontal collision")
}

func TestResolveNoCollisionMovesFreely(t *testing.T) {
	s := voxel.NewStorage()
	s.CreateChunk(voxel.ChunkCoord{0, 0, 0})

	box := AABB{Center: mgl32.Vec3{5, 5, 5}, Size: mgl32.Vec3{0.6, 1.8, 0.6}}
	moved := Resolve(s, box, mgl32.Vec3{1, 2, 3})

	assert.InDelta(t, 6, moved.Center.X(), 0.0001)
	assert.InDelta(t, 7, moved.Center.Y(), 0.0001)
	assert.InDelta(t, 8, moved.Center.Z(), 0.0001)
}

func TestBlockAABBIsUnitCubeCenteredOnCell(t *testing.T) {
	a := BlockAABB(voxel.BlockCoord{X: 2, Y: 3, Z: 4})
	require.InDelta(t, 2.5, a.Center.X(), 0.0001)
	require.InDelta(t, 3.5, a.Center.Y(), 0.0001)
	require.InDelta(t, 4.5, a.Center.Z(), 0.0001)
	assert.InDelta(t, 2, a.MinX(), 0.0001)
	assert.InDelta(t, 3, a.MaxX(), 0.0001)
}
