package bakery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talonforge/voxelcore/pkg/block"
)

type fakeAtlas map[string]UVRect

func (a fakeAtlas) Lookup(name string) (UVRect, bool) {
	r, ok := a[name]
	return r, ok
}

func newTestRegistry(t *testing.T) (*block.Registry, block.ID) {
	t.Helper()
	reg := block.NewRegistry()
	stone, err := reg.Register("stone")
	require.NoError(t, err)
	return reg, stone.ID
}

func TestBakeEmitsOneQuadPerCullableFace(t *testing.T) {
	reg, stone := newTestRegistry(t)
	atlas := fakeAtlas{"stone": {UMin: 0, VMin: 0, UMax: 1, VMax: 1}}

	bk, err := Bake(reg, atlas, map[block.ID]Model{stone: UnitCubeModel("stone")})
	require.NoError(t, err)

	var verts []Vertex
	ctx := &Context{}
	bk.RenderBlock(ctx, stone, &verts)

	assert.Len(t, verts, 6*4, "six faces, four vertices each, with nothing occluded")
}

func TestOccludedFacesAreNotEmitted(t *testing.T) {
	reg, stone := newTestRegistry(t)
	atlas := fakeAtlas{"stone": {UMin: 0, VMin: 0, UMax: 1, VMax: 1}}

	bk, err := Bake(reg, atlas, map[block.ID]Model{stone: UnitCubeModel("stone")})
	require.NoError(t, err)

	ctx := &Context{}
	ctx.SetAxisOcclusion(true, false, true, false, true, false)

	var verts []Vertex
	bk.RenderBlock(ctx, stone, &verts)

	assert.Len(t, verts, 3*4, "three of six faces occluded")
}

func TestAirBakesToNoGeometry(t *testing.T) {
	reg := block.NewRegistry()
	atlas := fakeAtlas{}

	bk, err := Bake(reg, atlas, map[block.ID]Model{})
	require.NoError(t, err)

	var verts []Vertex
	bk.RenderBlock(&Context{}, block.AirID, &verts)
	assert.Empty(t, verts)
}

func TestBakeMissingTextureFails(t *testing.T) {
	reg, stone := newTestRegistry(t)
	atlas := fakeAtlas{}

	_, err := Bake(reg, atlas, map[block.ID]Model{stone: UnitCubeModel("stone")})
	assert.Error(t, err)
}

func TestNonCullableFaceGoesToOmniBucket(t *testing.T) {
	reg, stone := newTestRegistry(t)
	atlas := fakeAtlas{"glass": {UMin: 0, VMin: 0, UMax: 1, VMax: 1}}

	model := UnitCubeModel("")
	model.Boxes[0].Faces[FaceYpos] = FaceDef{Texture: "glass", Cullable: false}

	bk, err := Bake(reg, atlas, map[block.ID]Model{stone: model})
	require.NoError(t, err)

	ctx := &Context{}
	ctx.SetAxisOcclusion(true, true, true, true, true, true)

	var verts []Vertex
	bk.RenderBlock(ctx, stone, &verts)
	assert.Len(t, verts, 4, "omni bucket is emitted even though every directional face is occluded")
}
