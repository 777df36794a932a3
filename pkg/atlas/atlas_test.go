package atlas

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridAtlasLookupDividesTilesEvenly(t *testing.T) {
	a := NewGridAtlas(4, 2, []string{"stone", "dirt", "grass_top", "grass_side"})

	rect, ok := a.Lookup("dirt")
	assert.True(t, ok)
	assert.InDelta(t, 0.25, rect.UMin, 1e-6)
	assert.InDelta(t, 0.0, rect.VMin, 1e-6)
	assert.InDelta(t, 0.5, rect.UMax, 1e-6)
	assert.InDelta(t, 0.5, rect.VMax, 1e-6)
}

func TestGridAtlasLookupFallsBackToMissingTexture(t *testing.T) {
	a := NewGridAtlas(2, 1, []string{"stone", MissingTexture})

	rect, ok := a.Lookup("nonexistent")
	assert.True(t, ok)

	missing, ok := a.Lookup(MissingTexture)
	assert.True(t, ok)
	assert.Equal(t, missing, rect)
}

func TestGridAtlasLookupReportsFalseWithNoFallback(t *testing.T) {
	a := NewGridAtlas(1, 1, []string{"stone"})

	_, ok := a.Lookup("nonexistent")
	assert.False(t, ok)
}

func TestGenerateDebugAtlasProducesOneTilePerColor(t *testing.T) {
	colors := []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
	}
	a, img := GenerateDebugAtlas(8, colors, []string{"red", "green", "blue"})

	assert.Equal(t, 24, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())

	rect, ok := a.Lookup("green")
	assert.True(t, ok)
	assert.InDelta(t, float32(1.0)/3.0, rect.UMin, 1e-6)
}
