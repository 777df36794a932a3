// Package mesher implements the chunk mesher: it walks a chunk's cells in
// the same (y, z, x) order the storage package indexes them in, looks up
// each baked block's unoccluded faces via the block model bakery, and packs
// the result into the compact GPU vertex buffer format the render manager
// uploads verbatim.
package mesher

import (
	"github.com/talonforge/voxelcore/internal/half"
	"github.com/talonforge/voxelcore/pkg/bakery"
	"github.com/talonforge/voxelcore/pkg/block"
	"github.com/talonforge/voxelcore/pkg/voxel"
)

// VertexStride is the size in bytes of one packed vertex: 5 half-precision
// floats (position xyz, uv) plus 4 signed bytes (normal xyz, reserved AO).
const VertexStride = 14

// ChunkMesh is the packed output of meshing one chunk: a tightly-packed
// vertex buffer ready for upload with no further per-vertex transformation,
// in chunk-local coordinates (the renderer positions the whole buffer with
// a per-chunk origin uniform or transform).
type ChunkMesh struct {
	Data        []byte
	VertexCount int
}

// Empty reports whether the chunk produced no visible geometry at all, in
// which case the render manager should not allocate a GPU buffer for it.
func (m *ChunkMesh) Empty() bool {
	return m.VertexCount == 0
}

// scratch is the mesher's reusable vertex accumulator. The mesher is
// single-threaded, so Build clears and refills this one backing array on
// every call instead of allocating a fresh slice per chunk.
var scratch []bakery.Vertex

// Build meshes one chunk from its edge-padded neighbourhood. Cells are
// visited in (y, z, x) order to match the storage's own flat indexing, which
// keeps cache behaviour consistent with how GetBlock/SetBlock walk a chunk
// elsewhere, though the order has no effect on the resulting geometry.
func Build(edges *voxel.EdgeBlocks, bk *bakery.Bakery) *ChunkMesh {
	verts := scratch[:0]
	var faces []bakery.Vertex

	for y := int32(0); y < voxel.ChunkSize; y++ {
		for z := int32(0); z < voxel.ChunkSize; z++ {
			for x := int32(0); x < voxel.ChunkSize; x++ {
				cell := edges.At(x, y, z)
				if block.IsAir(cell.ID) {
					continue
				}

				var ctx bakery.Context
				ctx.SetAxisOcclusion(
					!block.IsAir(edges.At(x+1, y, z).ID),
					!block.IsAir(edges.At(x-1, y, z).ID),
					!block.IsAir(edges.At(x, y+1, z).ID),
					!block.IsAir(edges.At(x, y-1, z).ID),
					!block.IsAir(edges.At(x, y, z+1).ID),
					!block.IsAir(edges.At(x, y, z-1).ID),
				)

				faces = faces[:0]
				bk.RenderBlock(&ctx, cell.ID, &faces)
				for _, v := range faces {
					verts = append(verts, offset(v, x, y, z))
				}
			}
		}
	}

	scratch = verts
	return pack(verts)
}

func offset(v bakery.Vertex, x, y, z int32) bakery.Vertex {
	v.X += float32(x)
	v.Y += float32(y)
	v.Z += float32(z)
	return v
}

func pack(verts []bakery.Vertex) *ChunkMesh {
	buf := make([]byte, len(verts)*VertexStride)
	for i, v := range verts {
		off := i * VertexStride
		putHalf(buf[off:], half.FromFloat32(v.X))
		putHalf(buf[off+2:], half.FromFloat32(v.Y))
		putHalf(buf[off+4:], half.FromFloat32(v.Z))
		putHalf(buf[off+6:], half.FromFloat32(v.U))
		putHalf(buf[off+8:], half.FromFloat32(v.V))
		buf[off+10] = byte(quantizeNormal(v.NX))
		buf[off+11] = byte(quantizeNormal(v.NY))
		buf[off+12] = byte(quantizeNormal(v.NZ))
		buf[off+13] = 0 // reserved for ambient occlusion, unused
	}
	return &ChunkMesh{Data: buf, VertexCount: len(verts)}
}

func putHalf(b []byte, h uint16) {
	b[0] = byte(h)
	b[1] = byte(h >> 8)
}

func quantizeNormal(n float32) int8 {
	v := n * 127
	switch {
	case v > 127:
		v = 127
	case v < -127:
		v = -127
	}
	return int8(v)
}
