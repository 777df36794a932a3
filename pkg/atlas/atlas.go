// Package atlas builds the block model bakery's texture-name-to-UV mapping
// from a single grid-packed image: square tiles laid out left-to-right,
// top-to-bottom, assigned to names in the order the caller supplies them.
package atlas

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"

	"github.com/talonforge/voxelcore/pkg/bakery"
)

// MissingTexture is the name Lookup falls back to when asked for a name it
// has no tile for, per the "atlas falls back to missingno" policy.
const MissingTexture = "missingno"

// GridAtlas implements bakery.Atlas over a fixed grid of equally sized
// tiles.
type GridAtlas struct {
	cols, rows int
	index      map[string]int
}

// NewGridAtlas returns an atlas with cols*rows tiles, assigning names to
// tile indices in order. Names beyond the tile count are dropped.
func NewGridAtlas(cols, rows int, names []string) *GridAtlas {
	a := &GridAtlas{cols: cols, rows: rows, index: make(map[string]int, len(names))}
	for i, name := range names {
		if i >= cols*rows {
			break
		}
		a.index[name] = i
	}
	return a
}

// Decode decodes a grid-packed atlas image (PNG or any format registered
// with the image package) whose dimensions must divide evenly by tileSize,
// and assigns names to tiles in reading order.
func Decode(r io.Reader, tileSize int, names []string) (*GridAtlas, image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, nil, fmt.Errorf("atlas: decoding image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if tileSize <= 0 || w%tileSize != 0 || h%tileSize != 0 {
		return nil, nil, fmt.Errorf("atlas: image %dx%d does not divide evenly into %d-pixel tiles", w, h, tileSize)
	}

	return NewGridAtlas(w/tileSize, h/tileSize, names), img, nil
}

// Lookup implements bakery.Atlas: it returns the UV rectangle for name, or
// for MissingTexture if name has no tile of its own.
func (a *GridAtlas) Lookup(name string) (bakery.UVRect, bool) {
	i, ok := a.index[name]
	if !ok {
		i, ok = a.index[MissingTexture]
		if !ok {
			return bakery.UVRect{}, false
		}
	}

	col := i % a.cols
	row := i / a.cols
	return bakery.UVRect{
		UMin: float32(col) / float32(a.cols),
		VMin: float32(row) / float32(a.rows),
		UMax: float32(col+1) / float32(a.cols),
		VMax: float32(row+1) / float32(a.rows),
	}, true
}

// GenerateDebugAtlas builds a flat-color grid image in memory, one tile per
// color, for use when no atlas asset is available on disk: a trivial
// test-pattern texture in the same spirit as the world generator's trivial
// test-pattern terrain.
func GenerateDebugAtlas(tileSize int, colors []color.RGBA, names []string) (*GridAtlas, image.Image) {
	cols := len(colors)
	img := image.NewRGBA(image.Rect(0, 0, cols*tileSize, tileSize))
	for i, c := range colors {
		for y := 0; y < tileSize; y++ {
			for x := 0; x < tileSize; x++ {
				img.SetRGBA(i*tileSize+x, y, c)
			}
		}
	}
	return NewGridAtlas(cols, 1, names), img
}
