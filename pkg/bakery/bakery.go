// Package bakery implements the block model bakery: the one-time
// precomputation stage that turns each registered block's model description
// into per-face vertex lists, so that meshing a chunk becomes a pure memory
// copy per visible face.
package bakery

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/talonforge/voxelcore/pkg/block"
)

// Face identifies one of the six axis directions a quad can face, plus the
// Omni bucket for geometry that must never be culled. The numeric values
// double as indices into Context.Occluded.
type Face int

const (
	FaceXpos Face = iota
	FaceXneg
	FaceYpos
	FaceYneg
	FaceZpos
	FaceZneg
	faceAxisCount
	FaceOmni = 7 // matches Context.Occluded[7] ("omni occluded") in the data model
)

// Vertex is one corner of a baked quad: position in [0,1] local coordinates,
// atlas UV, and a unit-length face normal. The mesher quantizes the normal
// into signed bytes and the position/UV into half floats when it assembles
// the final GPU vertex format; the bakery itself stays in plain float32 so
// it has no dependency on that packing.
type Vertex struct {
	X, Y, Z    float32
	U, V       float32
	NX, NY, NZ float32
}

// UVRect is an atlas region in normalized [0,1] texture coordinates.
type UVRect struct {
	UMin, VMin, UMax, VMax float32
}

// Atlas maps a texture name to its UV rectangle within the shared block
// atlas. Implemented by pkg/atlas's GridAtlas over a grid-packed atlas
// image; the bakery only ever reads from it.
type Atlas interface {
	Lookup(name string) (UVRect, bool)
}

// FaceDef describes one face of a model box: which atlas region to sample
// and whether the mesher is allowed to cull it against an opaque neighbour.
type FaceDef struct {
	Texture  string
	Cullable bool
}

// Box is one axis-aligned sub-box of a block's model, in [0,1] local
// coordinates, with one FaceDef per direction.
type Box struct {
	Min, Max mgl32.Vec3
	Faces    [faceAxisCount]FaceDef
}

// Model is a block's full geometry description: one or more sub-boxes. Most
// blocks use a single full-cube box; multi-box models (e.g. a fence post)
// are supported by the same bake path.
type Model struct {
	Boxes []Box
}

// BakedBlock holds, for one block id, the seven vertex buckets the data
// model specifies: six directional (only emitted when that side is not
// occluded) and one Omni bucket (always emitted).
type BakedBlock struct {
	sides [8][]Vertex
}

// Bakery is the immutable, shared result of baking every registered block's
// model. It is built once at startup and never mutated afterwards, so it is
// safe to share across goroutines by reference even though nothing in this
// runtime actually meshes off the main thread.
type Bakery struct {
	blocks map[block.ID]*BakedBlock
}

// Bake builds a Bakery from a block registry and a model description per
// block id. Blocks with no entry in models (including air) simply bake to
// an empty BakedBlock and contribute no geometry.
func Bake(reg *block.Registry, atlas Atlas, models map[block.ID]Model) (*Bakery, error) {
	bk := &Bakery{blocks: make(map[block.ID]*BakedBlock, reg.Len())}

	for id := block.ID(0); int(id) < reg.Len(); id++ {
		if block.IsAir(id) {
			bk.blocks[id] = &BakedBlock{}
			continue
		}

		model, ok := models[id]
		if !ok {
			bk.blocks[id] = &BakedBlock{}
			continue
		}

		baked, err := bakeModel(atlas, model)
		if err != nil {
			t, _ := reg.ByID(id)
			return nil, fmt.Errorf("bakery: block %q: %w", t.Name, err)
		}
		bk.blocks[id] = baked
	}

	return bk, nil
}

func bakeModel(atlas Atlas, model Model) (*BakedBlock, error) {
	bb := &BakedBlock{}

	for _, box := range model.Boxes {
		for dir := Face(0); dir < faceAxisCount; dir++ {
			face := box.Faces[dir]
			if face.Texture == "" {
				continue
			}

			uv, ok := atlas.Lookup(face.Texture)
			if !ok {
				return nil, fmt.Errorf("texture %q not found in atlas", face.Texture)
			}

			quad := faceQuad(box.Min, box.Max, dir, uv)

			bucket := dir
			if !face.Cullable {
				bucket = FaceOmni
			}
			bb.sides[bucket] = append(bb.sides[bucket], quad[:]...)
		}
	}

	return bb, nil
}

// faceQuad builds the four vertices of one box face in a fixed winding such
// that the quad→triangle split (0,1,3)(1,2,3) produces a correctly facing
// triangle pair, matching the table the original static block bakery uses.
func faceQuad(min, max mgl32.Vec3, dir Face, uv UVRect) [4]Vertex {
	n := dir.Normal()
	corners := faceCorners(min, max, dir)
	uvs := [4][2]float32{
		{uv.UMin, uv.VMin},
		{uv.UMax, uv.VMin},
		{uv.UMax, uv.VMax},
		{uv.UMin, uv.VMax},
	}

	var out [4]Vertex
	for i := 0; i < 4; i++ {
		out[i] = Vertex{
			X: corners[i].X(), Y: corners[i].Y(), Z: corners[i].Z(),
			U: uvs[i][0], V: uvs[i][1],
			NX: n.X(), NY: n.Y(), NZ: n.Z(),
		}
	}
	return out
}

// Normal returns the unit outward normal for a directional face. Omni has no
// single normal and is never passed here.
func (f Face) Normal() mgl32.Vec3 {
	switch f {
	case FaceXpos:
		return mgl32.Vec3{1, 0, 0}
	case FaceXneg:
		return mgl32.Vec3{-1, 0, 0}
	case FaceYpos:
		return mgl32.Vec3{0, 1, 0}
	case FaceYneg:
		return mgl32.Vec3{0, -1, 0}
	case FaceZpos:
		return mgl32.Vec3{0, 0, 1}
	case FaceZneg:
		return mgl32.Vec3{0, 0, -1}
	default:
		return mgl32.Vec3{}
	}
}

// faceCorners returns the four corners of one face of the box [min,max], in
// the fixed winding order the (0,1,3)(1,2,3) split expects.
func faceCorners(min, max mgl32.Vec3, dir Face) [4]mgl32.Vec3 {
	switch dir {
	case FaceYpos:
		return [4]mgl32.Vec3{
			{min.X(), max.Y(), max.Z()},
			{max.X(), max.Y(), max.Z()},
			{max.X(), max.Y(), min.Z()},
			{min.X(), max.Y(), min.Z()},
		}
	case FaceYneg:
		return [4]mgl32.Vec3{
			{min.X(), min.Y(), min.Z()},
			{max.X(), min.Y(), min.Z()},
			{max.X(), min.Y(), max.Z()},
			{min.X(), min.Y(), max.Z()},
		}
	case FaceZneg:
		return [4]mgl32.Vec3{
			{min.X(), max.Y(), min.Z()},
			{max.X(), max.Y(), min.Z()},
			{max.X(), min.Y(), min.Z()},
			{min.X(), min.Y(), min.Z()},
		}
	case FaceZpos:
		return [4]mgl32.Vec3{
			{min.X(), min.Y(), max.Z()},
			{max.X(), min.Y(), max.Z()},
			{max.X(), max.Y(), max.Z()},
			{min.X(), max.Y(), max.Z()},
		}
	case FaceXneg:
		return [4]mgl32.Vec3{
			{min.X(), max.Y(), max.Z()},
			{min.X(), max.Y(), min.Z()},
			{min.X(), min.Y(), min.Z()},
			{min.X(), min.Y(), max.Z()},
		}
	default: // FaceXpos
		return [4]mgl32.Vec3{
			{max.X(), min.Y(), max.Z()},
			{max.X(), min.Y(), min.Z()},
			{max.X(), max.Y(), min.Z()},
			{max.X(), max.Y(), max.Z()},
		}
	}
}

// Context carries, for one cell being meshed, whether each of the six
// directional buckets is occluded by a solid neighbour and whether Omni
// emission itself is suppressed (index 7). Index 6 is unused; it mirrors
// the original engine's 8-slot layout rather than a tight 7-slot one so a
// future occlusion kind has a home without reshuffling indices.
type Context struct {
	Occluded [8]bool
}

// SetAxisOcclusion sets the six directional occlusion flags from whether
// each axis neighbour is solid.
func (c *Context) SetAxisOcclusion(xpos, xneg, ypos, yneg, zpos, zneg bool) {
	c.Occluded[FaceXpos] = xpos
	c.Occluded[FaceXneg] = xneg
	c.Occluded[FaceYpos] = ypos
	c.Occluded[FaceYneg] = yneg
	c.Occluded[FaceZpos] = zpos
	c.Occluded[FaceZneg] = zneg
}

// RenderBlock emits, into out, every face bucket of the baked block for id
// that survives the context's occlusion flags: each directional bucket only
// when not occluded, then the Omni bucket unless omni emission itself is
// disabled. Open Question 1 (DESIGN.md) keeps Occluded[FaceOmni] always
// false in this implementation, so Omni is always emitted.
func (bk *Bakery) RenderBlock(ctx *Context, id block.ID, out *[]Vertex) {
	bb, ok := bk.blocks[id]
	if !ok {
		return
	}

	for dir := Face(0); dir < faceAxisCount; dir++ {
		if ctx.Occluded[dir] {
			continue
		}
		*out = append(*out, bb.sides[dir]...)
	}

	if !ctx.Occluded[FaceOmni] {
		*out = append(*out, bb.sides[FaceOmni]...)
	}
}

// UnitCubeModel is a convenience constructor for the common case: a single
// full [0,1]³ box with the same texture on every cullable face.
func UnitCubeModel(texture string) Model {
	var faces [faceAxisCount]FaceDef
	for i := range faces {
		faces[i] = FaceDef{Texture: texture, Cullable: true}
	}
	return Model{
		Boxes: []Box{{
			Min:   mgl32.Vec3{0, 0, 0},
			Max:   mgl32.Vec3{1, 1, 1},
			Faces: faces,
		}},
	}
}
