// Package rendermgr implements the chunk render manager: a bounded cache
// mapping chunk coordinates to GPU-resident meshes, each owning its vertex
// array and buffer until evicted or explicitly removed.
package rendermgr

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	lru "github.com/hashicorp/golang-lru/v2"

	"openglhelper"

	"github.com/talonforge/voxelcore/pkg/bakery"
	"github.com/talonforge/voxelcore/pkg/mesher"
	"github.com/talonforge/voxelcore/pkg/render"
	"github.com/talonforge/voxelcore/pkg/voxel"
)

// DefaultMaxUploadsPerFrame is the default remesh/upload budget Render
// spends per call: a remesh and a first-time mesh both cost 1.
const DefaultMaxUploadsPerFrame = 2

// ChunkBuffer owns the GPU resources for one chunk's mesh: a vertex array
// object and the immutable-storage vertex buffer it wraps, plus the
// chunk.LastUpdate() timestamp this mesh was built from (the cache's
// observed_last_update, compared against the live chunk each frame to
// decide whether the entry is stale). Release must run at least once,
// either directly or implicitly through the manager's eviction path, or the
// handles leak; later calls are no-ops.
type ChunkBuffer struct {
	vao            *openglhelper.VertexArrayObject
	vbo            *openglhelper.BufferObject
	VertexCount    int
	ObservedUpdate int64
}

// Release deletes the buffer's GPU handles. Safe to call more than once.
func (b *ChunkBuffer) Release() {
	if b.vao != nil {
		b.vao.Delete()
		b.vao = nil
	}
	if b.vbo != nil {
		b.vbo.Delete()
		b.vbo = nil
	}
}

// Bind binds the chunk's vertex array for drawing.
func (b *ChunkBuffer) Bind() {
	b.vao.Bind()
}

// Manager is a bounded, least-recently-used cache of chunk GPU buffers. The
// capacity bounds resident GPU memory for worlds with more loaded chunks
// than the frame budget can mesh from cold; evicted entries release their
// handles exactly as an explicit Remove would.
type Manager struct {
	cache *lru.Cache[voxel.ChunkCoord, *ChunkBuffer]

	// MaxUploadsPerFrame bounds how many chunks Render may mesh and upload
	// in a single call; defaults to DefaultMaxUploadsPerFrame.
	MaxUploadsPerFrame int
}

// NewManager returns a render manager holding at most capacity chunk buffers
// at once.
func NewManager(capacity int) (*Manager, error) {
	m := &Manager{MaxUploadsPerFrame: DefaultMaxUploadsPerFrame}
	cache, err := lru.NewWithEvict(capacity, func(_ voxel.ChunkCoord, buf *ChunkBuffer) {
		buf.Release()
	})
	if err != nil {
		return nil, err
	}
	m.cache = cache
	return m, nil
}

// Upload builds a new GPU buffer from a freshly meshed chunk and installs it
// in the cache, replacing and releasing any prior buffer at that coordinate,
// tagged with the chunk timestamp it was built from. An empty mesh removes
// the chunk from the cache instead of uploading nothing: there is no point
// in an entry with no geometry to draw.
func (m *Manager) Upload(coord voxel.ChunkCoord, mesh *mesher.ChunkMesh, observedUpdate int64) {
	if mesh.Empty() {
		m.Remove(coord)
		return
	}

	buf := buildBuffer(mesh)
	buf.ObservedUpdate = observedUpdate
	if old, ok := m.cache.Peek(coord); ok {
		old.Release()
	}
	m.cache.Add(coord, buf)
}

// Render implements the chunk render manager's per-frame contract: bind the
// shared material, then for every chunk resident in storage either draw its
// cached mesh or, if it is new or the chunk has been touched since the mesh
// was built, remesh and upload it — spending at most MaxUploadsPerFrame
// remesh/upload operations this call so a frame with many dirty chunks never
// stalls on meshing all of them at once. Chunks a remesh/upload budget
// couldn't reach this frame simply draw their last-known mesh (or nothing,
// if they have never been meshed) and are retried next frame.
func (m *Manager) Render(storage *voxel.Storage, bk *bakery.Bakery, material *render.Material, viewProj mgl32.Mat4) {
	material.Bind(viewProj)

	budget := m.MaxUploadsPerFrame
	for _, c := range storage.Chunks() {
		buf, ok := m.cache.Get(c.Coord)
		stale := !ok || c.LastUpdate() > buf.ObservedUpdate

		if stale && budget > 0 {
			if edges, has := storage.GetChunkWithEdges(c.Coord); has {
				m.Upload(c.Coord, mesher.Build(edges, bk), c.LastUpdate())
				budget--
				buf, ok = m.cache.Get(c.Coord)
			}
		}

		if !ok {
			continue
		}

		origin := c.Coord.Origin()
		material.SetModel(mgl32.Translate3D(float32(origin.X), float32(origin.Y), float32(origin.Z)))
		buf.Bind()
		gl.DrawArrays(gl.TRIANGLES, 0, int32(buf.VertexCount))
	}
}

// Remove evicts and releases the buffer at coord, if one is resident.
func (m *Manager) Remove(coord voxel.ChunkCoord) {
	if old, ok := m.cache.Peek(coord); ok {
		old.Release()
		m.cache.Remove(coord)
	}
}

// Get returns the resident buffer for coord, marking it as recently used.
func (m *Manager) Get(coord voxel.ChunkCoord) (*ChunkBuffer, bool) {
	return m.cache.Get(coord)
}

// Len returns the number of chunk buffers currently resident.
func (m *Manager) Len() int {
	return m.cache.Len()
}

// Purge releases every resident buffer and empties the cache, for shutdown
// or a full world reset.
func (m *Manager) Purge() {
	m.cache.Purge()
}

func buildBuffer(mesh *mesher.ChunkMesh) *ChunkBuffer {
	vbo := openglhelper.NewImmutableBuffer(gl.ARRAY_BUFFER, unsafe.Pointer(&mesh.Data[0]), len(mesh.Data))

	vao := openglhelper.NewVAO()
	vao.Bind()
	vbo.Bind()

	const stride = int32(mesher.VertexStride)
	vao.SetVertexAttribPointer(0, 3, gl.HALF_FLOAT, false, stride, 0)  // position
	vao.SetVertexAttribPointer(1, 2, gl.HALF_FLOAT, false, stride, 6)  // uv
	vao.SetVertexAttribPointer(2, 3, gl.BYTE, true, stride, 10)        // normal

	vao.Unbind()

	return &ChunkBuffer{vao: vao, vbo: vbo, VertexCount: mesh.VertexCount}
}
