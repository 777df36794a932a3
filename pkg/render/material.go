package render

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"openglhelper"
)

// Material is the shared block shader, atlas texture, and sun direction
// every chunk mesh renders with — the data model's "shared block material
// (shader program + atlas texture + uniform locations)".
type Material struct {
	Shader   *openglhelper.Shader
	AtlasTex uint32
	SunDir   mgl32.Vec3
}

// NewMaterial returns a material over an already-linked shader and an
// already-uploaded atlas texture.
func NewMaterial(shader *openglhelper.Shader, atlasTex uint32) *Material {
	return &Material{
		Shader:   shader,
		AtlasTex: atlasTex,
		SunDir:   mgl32.Vec3{0.4, 1, 0.3}.Normalize(),
	}
}

// Bind activates the shader, binds the atlas texture to unit 0, and
// uploads this frame's view-projection matrix, matching the data model's
// per-frame bind step ("bind shader, set uniforms, bind atlas").
func (m *Material) Bind(viewProj mgl32.Mat4) {
	m.Shader.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, m.AtlasTex)
	m.Shader.SetInt("atlasSampler", 0)
	m.Shader.SetMat4("viewProj", viewProj)
	m.Shader.SetVec3("sunDir", m.SunDir)
}

// SetModel uploads the per-chunk model transform (translation to the
// chunk's world origin, since chunk meshes are built in chunk-local
// coordinates).
func (m *Material) SetModel(model mgl32.Mat4) {
	m.Shader.SetMat4("model", model)
}
