package raycast

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(r *Raycaster) [][3]int {
	var cells [][3]int
	for {
		c, ok := r.Step()
		if !ok {
			break
		}
		cells = append(cells, c)
	}
	return cells
}

func TestRaycastCompletenessAlongAxis(t *testing.T) {
	r := NewFromSrcDirLen(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 10)
	cells := drain(r)

	require.NotEmpty(t, cells)
	assert.Equal(t, [3]int{0, 0, 0}, cells[0])
	assert.Equal(t, [3]int{10, 0, 0}, cells[len(cells)-1])

	seen := map[[3]int]bool{}
	for i, c := range cells {
		assert.False(t, seen[c], "cell %v visited twice", c)
		seen[c] = true
		if i == 0 {
			continue
		}
		prev := cells[i-1]
		dx := abs(c[0] - prev[0])
		dy := abs(c[1] - prev[1])
		dz := abs(c[2] - prev[2])
		assert.Equal(t, 1, dx+dy+dz, "consecutive cells must differ by exactly one axis step")
	}
}

func TestRaycastDiagonal(t *testing.T) {
	r := NewFromSrcDst(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{3.5, 2.5, 1.5})
	cells := drain(r)

	assert.Equal(t, [3]int{0, 0, 0}, cells[0])
	assert.Equal(t, [3]int{3, 2, 1}, cells[len(cells)-1])
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
