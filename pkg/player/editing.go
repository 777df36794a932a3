package player

import (
	"github.com/talonforge/voxelcore/pkg/backbone"
	"github.com/talonforge/voxelcore/pkg/block"
	"github.com/talonforge/voxelcore/pkg/collision"
	"github.com/talonforge/voxelcore/pkg/raycast"
	"github.com/talonforge/voxelcore/pkg/voxel"
)

// MouseButton names which button an InputMouseButton event reports.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
)

// DefaultReach is the default distance, in blocks, a click can reach.
const DefaultReach = 6.0

// InputMouseButton is fired through the backbone when the window reports a
// mouse-button press, so the editing handler reacts the same way any other
// backbone-routed input does.
type InputMouseButton struct {
	Button MouseButton
}

// IsPassive reports false: a click changes world state and must only be
// dispatched while the backbone is Idle.
func (InputMouseButton) IsPassive() bool { return false }

func (InputMouseButton) TypeName() string { return "input_mouse_button" }

// BlockEditor is the root scene handler that turns mouse clicks into block
// edits: left click removes the targeted block, right click places the
// currently selected block type at the adjacent cell.
type BlockEditor struct {
	Player   *Player
	Storage  *voxel.Storage
	Registry *block.Registry
	Reach    float32
	Selected block.ID
}

// NewBlockEditor returns an editor reaching DefaultReach blocks, with air
// selected for placement until SelectBlock is called.
func NewBlockEditor(p *Player, storage *voxel.Storage, registry *block.Registry) *BlockEditor {
	return &BlockEditor{
		Player:   p,
		Storage:  storage,
		Registry: registry,
		Reach:    DefaultReach,
		Selected: block.AirID,
	}
}

// SelectBlock changes which block type a right click places.
func (e *BlockEditor) SelectBlock(id block.ID) { e.Selected = id }

// OnEvent implements backbone.Handler. Editing only happens during the
// Action phase, at the node the click was fired at.
func (e *BlockEditor) OnEvent(w *backbone.EventWrapper, ctx *backbone.Context) {
	if w.Phase() != backbone.PhaseAction {
		return
	}
	click, ok := w.Event().(InputMouseButton)
	if !ok {
		return
	}
	e.edit(click.Button)
}

// edit raycasts from the player's eye along its look vector and, on the
// first solid cell within reach, removes it (left click) or places the
// selected block type at the empty cell immediately before it (right
// click), refusing a placement that would overlap the player's own box.
func (e *BlockEditor) edit(button MouseButton) {
	eye := e.Player.EyePosition()
	dir := e.Player.LookVector()
	rc := raycast.NewFromSrcDirLen(eye, dir, e.Reach)

	var prev voxel.BlockCoord
	havePrev := false

	for {
		cell, ok := rc.Step()
		if !ok {
			return
		}
		coord := voxel.BlockCoord{X: int32(cell[0]), Y: int32(cell[1]), Z: int32(cell[2])}

		state, exists := e.Storage.GetBlock(coord)
		if !exists || block.IsAir(state.ID) {
			prev = coord
			havePrev = true
			continue
		}

		switch button {
		case ButtonLeft:
			e.Storage.SetBlock(coord, block.AirState)
		case ButtonRight:
			if havePrev && !e.playerOccupies(prev) {
				e.Storage.SetBlock(prev, e.Registry.DefaultState(e.Selected))
			}
		}
		return
	}
}

// playerOccupies reports whether placing a block at coord would overlap the
// player's current bounding box, preventing the player from trapping itself
// inside newly placed geometry.
func (e *BlockEditor) playerOccupies(coord voxel.BlockCoord) bool {
	return e.Player.AABB().Intersects(collision.BlockAABB(coord))
}
