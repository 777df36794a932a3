package render

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/talonforge/voxelcore/pkg/voxel"
	"openglhelper"
)

// SelectionOverlay draws a slightly oversized wireframe cube around the
// block coordinate the player's raycast currently targets, built from
// openglhelper's demo cube mesh repurposed as a real debug feature instead
// of sample code nothing calls.
type SelectionOverlay struct {
	mesh   *openglhelper.Mesh
	shader *openglhelper.Shader

	// Scale is the overlay cube's edge length relative to a unit block; a
	// touch over 1 so the wireframe doesn't z-fight the block's own faces.
	Scale float32
}

const overlayVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;
uniform mat4 viewProj;
uniform mat4 model;
void main() {
	gl_Position = viewProj * model * vec4(aPos, 1.0);
}
`

const overlayFragmentShader = `
#version 410 core
out vec4 FragColor;
uniform vec3 color;
void main() {
	FragColor = vec4(color, 1.0);
}
`

// NewSelectionOverlay compiles the overlay's own tiny shader (it draws flat
// lines, not textured block faces, so it has no business sharing the block
// Material) and builds the cube mesh.
func NewSelectionOverlay() (*SelectionOverlay, error) {
	shader, err := openglhelper.NewShader(overlayVertexShader, overlayFragmentShader)
	if err != nil {
		return nil, err
	}

	return &SelectionOverlay{
		mesh:   openglhelper.NewCube(shader),
		shader: shader,
		Scale:  1.01,
	}, nil
}

// Draw renders the wireframe cube centred on coord's block, given this
// frame's view-projection matrix.
func (o *SelectionOverlay) Draw(coord voxel.BlockCoord, viewProj mgl32.Mat4) {
	center := mgl32.Vec3{
		float32(coord.X) + 0.5,
		float32(coord.Y) + 0.5,
		float32(coord.Z) + 0.5,
	}
	model := mgl32.Translate3D(center.X(), center.Y(), center.Z()).
		Mul4(mgl32.Scale3D(o.Scale, o.Scale, o.Scale))

	o.shader.Use()
	o.shader.SetMat4("viewProj", viewProj)
	o.shader.SetMat4("model", model)
	o.shader.SetVec3("color", mgl32.Vec3{0, 0, 0})

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	o.mesh.Draw()
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

// Delete releases the overlay's GL resources.
func (o *SelectionOverlay) Delete() {
	o.mesh.Delete()
	o.shader.Delete()
}
