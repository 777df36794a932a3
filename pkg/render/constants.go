// Package render implements the shared GL material the chunk render
// manager draws with (shader program, atlas texture, frame uniforms) and
// the selection-cube overlay drawn over the block the player is targeting.
package render

import (
	"log"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var logger = log.New(os.Stderr, "[render] ", log.LstdFlags)

// Key constants for the keys the orchestrator polls every tick. Camera/
// movement tuning constants live in pkg/player, not here.
const (
	KeyW        = glfw.KeyW
	KeyA        = glfw.KeyA
	KeyS        = glfw.KeyS
	KeyD        = glfw.KeyD
	KeySpace    = glfw.KeySpace
	KeyEscape   = glfw.KeyEscape
	KeyLeftCtrl = glfw.KeyLeftControl
)

// Action constants for key/button states.
const (
	Press   = glfw.Press
	Release = glfw.Release
	Repeat  = glfw.Repeat
)
