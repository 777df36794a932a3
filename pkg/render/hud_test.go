package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestToNDCMapsScreenCornersToClipSpace(t *testing.T) {
	h := &HUD{screenW: 800, screenH: 600}

	x, y := h.toNDC(0, 0)
	assert.InDelta(t, -1, x, 1e-6)
	assert.InDelta(t, 1, y, 1e-6)

	x, y = h.toNDC(800, 600)
	assert.InDelta(t, 1, x, 1e-6)
	assert.InDelta(t, -1, y, 1e-6)

	x, y = h.toNDC(400, 300)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
}

func TestHUDDrawOnNilReceiverIsANoOp(t *testing.T) {
	var h *HUD
	assert.NotPanics(t, func() { h.Draw("unused when no font is loaded", 0, 0, mgl32.Vec3{}) })
}
