package font

import (
	"image"
	"image/color"

	"golang.org/x/image/math/fixed"
)

// GenerateDebugIndex builds a minimal index and matching page image for use
// when no real BMFont asset is available: one square tile, every printable
// ASCII codepoint mapped onto it, so the HUD overlay has something to draw
// instead of nothing — the same "procedural stand-in" idiom as
// pkg/atlas.GenerateDebugAtlas for the block texture atlas.
func GenerateDebugIndex(tileSize int) (*Index, image.Image) {
	img := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
	for y := 0; y < tileSize; y++ {
		for x := 0; x < tileSize; x++ {
			// A filled square with a one-pixel transparent border, so
			// consecutive glyphs in a run are visually distinguishable.
			if x == 0 || y == 0 || x == tileSize-1 || y == tileSize-1 {
				img.SetRGBA(x, y, color.RGBA{})
			} else {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}

	idx := &Index{
		Size:       float32(tileSize),
		LineHeight: float32(tileSize),
		Base:       float32(tileSize),
		Pages:      map[uint32]Page{0: {ID: 0, File: ""}},
		Glyphs:     make(map[rune]Glyph),
	}

	advance := fixed.Int26_6(tileSize * 64)
	for r := rune(' '); r <= rune('~'); r++ {
		idx.Glyphs[r] = Glyph{
			ID:       r,
			X:        0,
			Y:        0,
			Width:    uint32(tileSize),
			Height:   uint32(tileSize),
			XAdvance: advance,
			Page:     0,
		}
	}
	return idx, img
}
