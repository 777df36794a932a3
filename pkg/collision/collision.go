// Package collision implements voxel-vs-AABB collision resolution: sweeping
// a moving axis-aligned box against the solid cells of a chunk storage, one
// axis at a time, in the order the data model specifies (Y, then X, then
// Z) so an entity settles onto a floor before it is deflected by a wall.
package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/talonforge/voxelcore/pkg/block"
	"github.com/talonforge/voxelcore/pkg/voxel"
)

// AABB is an axis-aligned bounding box described by its center and full
// size along each axis.
type AABB struct {
	Center mgl32.Vec3
	Size   mgl32.Vec3
}

func (a AABB) MinX() float32 { return a.Center.X() - a.Size.X()/2 }
func (a AABB) MaxX() float32 { return a.Center.X() + a.Size.X()/2 }
func (a AABB) MinY() float32 { return a.Center.Y() - a.Size.Y()/2 }
func (a AABB) MaxY() float32 { return a.Center.Y() + a.Size.Y()/2 }
func (a AABB) MinZ() float32 { return a.Center.Z() - a.Size.Z()/2 }
func (a AABB) MaxZ() float32 { return a.Center.Z() + a.Size.Z()/2 }

// Offset returns a copy of the box translated by delta.
func (a AABB) Offset(delta mgl32.Vec3) AABB {
	a.Center = a.Center.Add(delta)
	return a
}

// Intersects reports whether two boxes overlap on every axis.
func (a AABB) Intersects(b AABB) bool {
	return a.MinX() < b.MaxX() && a.MaxX() > b.MinX() &&
		a.MinY() < b.MaxY() && a.MaxY() > b.MinY() &&
		a.MinZ() < b.MaxZ() && a.MaxZ() > b.MinZ()
}

// IntersectionX returns the signed penetration depth along X needed to
// separate a from b, nudged outward by one ULP so that repeated resolution
// converges instead of leaving the boxes touching exactly.
func (a AABB) IntersectionX(b AABB) float32 {
	if a.MaxX()-b.MinX() < b.MaxX()-a.MinX() {
		return math.Nextafter32(a.MaxX()-b.MinX(), float32(math.Inf(1)))
	}
	return math.Nextafter32(a.MinX()-b.MaxX(), float32(math.Inf(-1)))
}

// IntersectionY is IntersectionX for the Y axis.
func (a AABB) IntersectionY(b AABB) float32 {
	if a.MaxY()-b.MinY() < b.MaxY()-a.MinY() {
		return math.Nextafter32(a.MaxY()-b.MinY(), float32(math.Inf(1)))
	}
	return math.Nextafter32(a.MinY()-b.MaxY(), float32(math.Inf(-1)))
}

// IntersectionZ is IntersectionX for the Z axis.
func (a AABB) IntersectionZ(b AABB) float32 {
	if a.MaxZ()-b.MinZ() < b.MaxZ()-a.MinZ() {
		return math.Nextafter32(a.MaxZ()-b.MinZ(), float32(math.Inf(1)))
	}
	return math.Nextafter32(a.MinZ()-b.MaxZ(), float32(math.Inf(-1)))
}

// BlockAABB returns the unit-cube bounding box occupying the world cell at
// coord.
func BlockAABB(coord voxel.BlockCoord) AABB {
	return AABB{
		Center: mgl32.Vec3{float32(coord.X) + 0.5, float32(coord.Y) + 0.5, float32(coord.Z) + 0.5},
		Size:   mgl32.Vec3{1, 1, 1},
	}
}

type axis int

const (
	axisY axis = iota
	axisX
	axisZ
)

// Resolve moves box by delta and resolves any resulting overlap with solid
// (non-air) cells in storage, one axis at a time in Y, X, Z order: the
// entity is settled vertically before horizontal sliding is resolved, so it
// comes to rest on a floor rather than being pushed sideways off it.
func Resolve(storage *voxel.Storage, box AABB, delta mgl32.Vec3) AABB {
	box = box.Offset(mgl32.Vec3{0, delta.Y(), 0})
	box = resolveAxis(storage, box, axisY)

	box = box.Offset(mgl32.Vec3{delta.X(), 0, 0})
	box = resolveAxis(storage, box, axisX)

	box = box.Offset(mgl32.Vec3{0, 0, delta.Z()})
	box = resolveAxis(storage, box, axisZ)

	return box
}

func resolveAxis(storage *voxel.Storage, box AABB, a axis) AABB {
	x1, y1, z1 := floor32(box.MinX()), floor32(box.MinY()), floor32(box.MinZ())
	x2, y2, z2 := floor32(box.MaxX()), floor32(box.MaxY()), floor32(box.MaxZ())

	for x := x1; x <= x2; x++ {
		for y := y1; y <= y2; y++ {
			for z := z1; z <= z2; z++ {
				coord := voxel.BlockCoord{X: x, Y: y, Z: z}
				state, ok := storage.GetBlock(coord)
				if !ok || block.IsAir(state.ID) {
					continue
				}

				other := BlockAABB(coord)
				if !box.Intersects(other) {
					continue
				}

				switch a {
				case axisX:
					box = box.Offset(mgl32.Vec3{-box.IntersectionX(other), 0, 0})
				case axisY:
					box = box.Offset(mgl32.Vec3{0, -box.IntersectionY(other), 0})
				case axisZ:
					box = box.Offset(mgl32.Vec3{0, 0, -box.IntersectionZ(other)})
				}
			}
		}
	}
	return box
}

func floor32(v float32) int32 {
	f := math.Floor(float64(v))
	return int32(f)
}
