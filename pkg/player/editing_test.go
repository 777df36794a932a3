package player

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talonforge/voxelcore/pkg/backbone"
	"github.com/talonforge/voxelcore/pkg/block"
	"github.com/talonforge/voxelcore/pkg/voxel"
)

// newLevelEditor returns an editor for a player standing at the origin,
// looking straight down +X at eye height 0.5, with a stone block placed at
// BlockCoord{5,0,0} and nothing else in the world.
func newLevelEditor(t *testing.T) (*BlockEditor, *voxel.Storage, block.ID) {
	t.Helper()

	registry := block.NewRegistry()
	stone := registry.MustRegister("stone")

	storage := voxel.NewStorage()
	storage.CreateChunk(voxel.ChunkCoord{X: 0, Y: 0, Z: 0})
	ok := storage.SetBlock(voxel.BlockCoord{X: 5, Y: 0, Z: 0}, stone.DefaultState)
	require.True(t, ok)

	p := New(mgl32.Vec3{0, -1.12, 0}, StyleFree)
	p.Rotate(-DefaultYaw, -DefaultPitch) // face straight down +X: yaw=0, pitch=0
	require.InDelta(t, float32(0.5), p.EyePosition().Y(), 0.01)

	editor := NewBlockEditor(p, storage, registry)
	editor.SelectBlock(stone.ID)
	return editor, storage, stone.ID
}

func TestLeftClickRemovesTheTargetedBlock(t *testing.T) {
	editor, storage, _ := newLevelEditor(t)

	editor.edit(ButtonLeft)

	state, ok := storage.GetBlock(voxel.BlockCoord{X: 5, Y: 0, Z: 0})
	require.True(t, ok)
	assert.True(t, block.IsAir(state.ID), "the hit block must be cleared to air")
}

func TestRightClickPlacesTheSelectedBlockAdjacentToTheHit(t *testing.T) {
	editor, storage, stoneID := newLevelEditor(t)

	editor.edit(ButtonRight)

	placed, ok := storage.GetBlock(voxel.BlockCoord{X: 4, Y: 0, Z: 0})
	require.True(t, ok)
	assert.Equal(t, stoneID, placed.ID, "placement must land on the empty cell just before the hit")

	target, ok := storage.GetBlock(voxel.BlockCoord{X: 5, Y: 0, Z: 0})
	require.True(t, ok)
	assert.False(t, block.IsAir(target.ID), "right click must not disturb the block it targeted")
}

func TestRightClickRefusesToTrapThePlayer(t *testing.T) {
	registry := block.NewRegistry()
	stone := registry.MustRegister("stone")

	storage := voxel.NewStorage()
	storage.CreateChunk(voxel.ChunkCoord{X: 0, Y: 0, Z: 0})
	require.True(t, storage.SetBlock(voxel.BlockCoord{X: 1, Y: 0, Z: 0}, stone.DefaultState))

	// Standing right where the adjacency cell (0,0,0) would be placed into.
	p := New(mgl32.Vec3{0, -1.12, 0}, StyleFree)
	p.Rotate(-DefaultYaw, -DefaultPitch)

	editor := NewBlockEditor(p, storage, registry)
	editor.SelectBlock(stone.ID)
	editor.edit(ButtonRight)

	placed, ok := storage.GetBlock(voxel.BlockCoord{X: 0, Y: 0, Z: 0})
	require.True(t, ok)
	assert.True(t, block.IsAir(placed.ID), "placement overlapping the player's own box must be refused")
}

func TestBlockEditorOnEventEditsOnAFiredClick(t *testing.T) {
	editor, storage, _ := newLevelEditor(t)

	b := backbone.New()
	b.SetRootHandler(editor)
	require.NoError(t, b.SetLocation("/"))
	b.UpdateUntilIdle()

	b.FireEvent(InputMouseButton{Button: ButtonLeft})

	state, ok := storage.GetBlock(voxel.BlockCoord{X: 5, Y: 0, Z: 0})
	require.True(t, ok)
	assert.True(t, block.IsAir(state.ID), "a fired InputMouseButton event must reach the editor's Action-phase handling")
}
