// Package raycast implements the single canonical voxel-grid traversal used
// by both world-storage picking and any other call site that needs it, per
// the design note against duplicating this type across layers.
package raycast

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Raycaster steps through the integer grid cells a line segment from src to
// dst crosses, using the Amanatides & Woo incremental-error algorithm: all
// axis comparisons are scaled multiplications rather than divisions.
type Raycaster struct {
	gx, gy, gz    float32
	lx, ly, lz    float32
	gx1, gy1, gz1 float32
	errX, errY, errZ float32
	sx, sy, sz    float32
	derrX, derrY, derrZ float32

	done    bool
	started bool
}

// NewFromSrcDst builds a Raycaster stepping from src to dst inclusive.
func NewFromSrcDst(src, dst mgl32.Vec3) *Raycaster {
	gx0 := floorf(src.X())
	gy0 := floorf(src.Y())
	gz0 := floorf(src.Z())

	gx1 := floorf(dst.X())
	gy1 := floorf(dst.Y())
	gz1 := floorf(dst.Z())

	sx := psign(gx0, gx1)
	sy := psign(gy0, gy1)
	sz := psign(gz0, gz1)

	gxp := gx0
	if gx1 > gx0 {
		gxp++
	}
	gyp := gy0
	if gy1 > gy0 {
		gyp++
	}
	gzp := gz0
	if gz1 > gz0 {
		gzp++
	}

	vx := dst.X() - src.X()
	if dst.X() == src.X() {
		vx = 1
	}
	vy := dst.Y() - src.Y()
	if dst.Y() == src.Y() {
		vy = 1
	}
	vz := dst.Z() - src.Z()
	if dst.Z() == src.Z() {
		vz = 1
	}

	vxvy := vx * vy
	vxvz := vx * vz
	vyvz := vy * vz

	return &Raycaster{
		gx: gx0, gy: gy0, gz: gz0,
		lx: gx0, ly: gy0, lz: gz0,
		gx1: gx1, gy1: gy1, gz1: gz1,
		errX: (gxp - src.X()) * vyvz,
		errY: (gyp - src.Y()) * vxvz,
		errZ: (gzp - src.Z()) * vxvy,
		sx:   sx, sy: sy, sz: sz,
		derrX: sx * vyvz,
		derrY: sy * vxvz,
		derrZ: sz * vxvy,
	}
}

// NewFromSrcDirLen builds a Raycaster travelling from src in direction dir
// (not required to be normalized) for the given length.
func NewFromSrcDirLen(src, dir mgl32.Vec3, length float32) *Raycaster {
	dst := src.Add(dir.Mul(length))
	return NewFromSrcDst(src, dst)
}

// Current returns the raycaster's present cell.
func (r *Raycaster) Current() [3]int {
	return [3]int{int(r.gx), int(r.gy), int(r.gz)}
}

// Previous returns the cell visited immediately before the present one.
func (r *Raycaster) Previous() [3]int {
	return [3]int{int(r.lx), int(r.ly), int(r.lz)}
}

// Step returns the current cell then advances, picking the axis whose
// absolute error is smallest (ties broken X < Y < Z). It returns ok=false
// once the destination cell has already been returned.
func (r *Raycaster) Step() (cell [3]int, ok bool) {
	if r.done {
		return [3]int{}, false
	}

	ret := [3]int{int(r.gx), int(r.gy), int(r.gz)}

	if r.gx == r.gx1 && r.gy == r.gy1 && r.gz == r.gz1 {
		r.done = true
	}

	r.stepCompute()
	r.started = true
	return ret, true
}

func (r *Raycaster) stepCompute() {
	r.lx, r.ly, r.lz = r.gx, r.gy, r.gz

	xr := absf(r.errX)
	yr := absf(r.errY)
	zr := absf(r.errZ)

	switch {
	case r.sx != 0 && (r.sy == 0 || xr <= yr) && (r.sz == 0 || xr <= zr):
		r.gx += r.sx
		r.errX += r.derrX
	case r.sy != 0 && (r.sz == 0 || yr <= zr):
		r.gy += r.sy
		r.errY += r.derrY
	case r.sz != 0:
		r.gz += r.sz
		r.errZ += r.derrZ
	}
}

func psign(a, b float32) float32 {
	switch {
	case b > a:
		return 1
	case b < a:
		return -1
	default:
		return 0
	}
}

func floorf(v float32) float32 {
	i := float32(int64(v))
	if v < 0 && i != v {
		return i - 1
	}
	return i
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
