package player

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

func TestFreeMovementIgnoresGravityAndHasNoCollision(t *testing.T) {
	p := New(mgl32.Vec3{0, 50, 0}, StyleFree)
	p.Yaw = -90 // facing -Z

	for i := 0; i < 10; i++ {
		p.Tick(1.0/60.0, Input{Forward: true}, nil)
	}

	assert.Less(t, p.Position.Z(), float32(0), "free movement should travel in the look direction")
	assert.InDelta(t, 50, p.Position.Y(), 0.001, "free movement applies no gravity")
}

func TestGroundedMovementFallsUnderGravity(t *testing.T) {
	s := voxel.NewStorage()
	s.CreateChunk(voxel.ChunkCoord{0, 0, 0})

	p := New(mgl32.Vec3{2, 50, 2}, StyleGrounded)
	p.Tick(1.0/60.0, Input{}, s)

	assert.Less(t, p.Velocity.Y(), float32(0), "gravity must pull a grounded player downward")
	assert.Less(t, p.Position.Y(), float32(50))
}

func TestGroundedMovementRestsOnFloor(t *testing.T) {
	s := newFloorStorage(t)
	p := New(mgl32.Vec3{2, 5, 2}, StyleGrounded)

	for i := 0; i < 120; i++ {
		p.Tick(1.0/60.0, Input{}, s)
	}

	assert.InDelta(t, 1.0, p.Position.Y(), 0.01, "the player's feet should come to rest on top of the floor (at y=1)")
	assert.True(t, p.OnGround)
}

func TestJumpImpulseOnlyAppliesWhileOnGround(t *testing.T) {
	s := voxel.NewStorage()
	s.CreateChunk(voxel.ChunkCoord{0, 0, 0})

	p := New(mgl32.Vec3{2, 50, 2}, StyleGrounded)
	p.OnGround = false

	p.Tick(1.0/60.0, Input{Jump: true}, s)
	assert.Equal(t, mgl32.Vec3{}, p.Impulse, "jump must be ignored while airborne")

	p.OnGround = true
	p.Tick(1.0/60.0, Input{Jump: true}, s)
	require.Greater(t, p.Impulse.Y(), float32(0), "jump while grounded must add upward impulse")
}

func TestImpulseDecaysEachTick(t *testing.T) {
	s := voxel.NewStorage()
	s.CreateChunk(voxel.ChunkCoord{0, 0, 0})

	p := New(mgl32.Vec3{2, 50, 2}, StyleGrounded)
	p.OnGround = true
	p.Tick(1.0/60.0, Input{Jump: true}, s)

	first := p.Impulse.Y()
	p.OnGround = false
	p.Tick(1.0/60.0, Input{}, s)

	assert.Less(t, p.Impulse.Y(), first, "impulse must decay toward zero each tick once airborne")
}
