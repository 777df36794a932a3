package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateDebugIndexCoversPrintableASCII(t *testing.T) {
	idx, img := GenerateDebugIndex(16)

	assert.Equal(t, float32(16), idx.Size)
	bounds := img.Bounds()
	assert.Equal(t, 16, bounds.Dx())
	assert.Equal(t, 16, bounds.Dy())

	for r := rune(' '); r <= rune('~'); r++ {
		glyph, ok := idx.Glyphs[r]
		assert.Truef(t, ok, "missing glyph for %q", r)
		assert.EqualValues(t, 16, glyph.Width)
		assert.EqualValues(t, 16, glyph.Height)
	}

	_, ok := idx.Glyphs['\n']
	assert.False(t, ok, "control characters should have no glyph entry")
}
