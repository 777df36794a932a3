package render

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/talonforge/voxelcore/pkg/font"
	"openglhelper"
)

// HUD is the debug-text overlay: it lays a string out as one textured quad
// per glyph against a BMFont page image, in screen-pixel space. This is the
// Font Index Format's only consumer — without it pkg/font would parse an
// index nothing ever renders.
type HUD struct {
	shader *openglhelper.Shader
	tex    uint32
	index  *font.Index
	pageW  float32
	pageH  float32

	vao *openglhelper.VertexArrayObject
	vbo *openglhelper.BufferObject

	screenW, screenH int

	quads []float32 // scratch buffer reused across Draw calls
}

const hudVertexShader = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
out vec2 vUV;
void main() {
	vUV = aUV;
	gl_Position = vec4(aPos, 0.0, 1.0);
}
`

const hudFragmentShader = `
#version 410 core
in vec2 vUV;
out vec4 FragColor;
uniform sampler2D glyphAtlas;
uniform vec3 textColor;
void main() {
	float a = texture(glyphAtlas, vUV).a;
	FragColor = vec4(textColor, a);
}
`

// maxHUDGlyphs bounds the scratch vertex buffer; a debug overlay never
// needs to lay out more than a couple of short lines per frame.
const maxHUDGlyphs = 256

// NewHUD builds a HUD over a parsed font index and its first glyph page,
// already decoded to an image (the caller reads it through pkg/resource,
// same as the block atlas).
func NewHUD(index *font.Index, page image.Image, screenW, screenH int) *HUD {
	bounds := page.Bounds()

	vao := openglhelper.NewVAO()
	vao.Bind()
	vbo := openglhelper.NewBufferObject(gl.ARRAY_BUFFER, maxHUDGlyphs*6*4*4, nil, openglhelper.DynamicDraw)
	vao.SetVertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, 0)
	vao.SetVertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, 2*4)
	vao.Unbind()

	shader, err := openglhelper.NewShader(hudVertexShader, hudFragmentShader)
	if err != nil {
		logger.Printf("compiling HUD shader: %v", err)
		return nil
	}

	return &HUD{
		shader:  shader,
		tex:     openglhelper.NewTexture2D(page),
		index:   index,
		pageW:   float32(bounds.Dx()),
		pageH:   float32(bounds.Dy()),
		vao:     vao,
		vbo:     vbo,
		screenW: screenW,
		screenH: screenH,
		quads:   make([]float32, 0, maxHUDGlyphs*6*4),
	}
}

// Resize updates the pixel-to-NDC conversion after a window resize.
func (h *HUD) Resize(screenW, screenH int) {
	h.screenW, h.screenH = screenW, screenH
}

// Draw lays text out starting at the pixel position (x, y), top-left
// origin, and renders it in color. Glyphs the font index has no entry for
// are skipped, per the data model's "unknown char line ignored" leniency.
func (h *HUD) Draw(text string, x, y float32, color mgl32.Vec3) {
	if h == nil {
		return
	}

	h.quads = h.quads[:0]
	cursor := x
	for _, r := range text {
		glyph, ok := h.index.Glyphs[r]
		if !ok {
			continue
		}

		gx := cursor + float32(glyph.XOffset)/64
		gy := y + float32(glyph.YOffset)/64
		gw := float32(glyph.Width)
		gh := float32(glyph.Height)

		u0 := float32(glyph.X) / h.pageW
		v0 := float32(glyph.Y) / h.pageH
		u1 := float32(glyph.X+glyph.Width) / h.pageW
		v1 := float32(glyph.Y+glyph.Height) / h.pageH

		x0, y0 := h.toNDC(gx, gy)
		x1, y1 := h.toNDC(gx+gw, gy+gh)

		h.quads = append(h.quads,
			x0, y0, u0, v0,
			x1, y0, u1, v0,
			x1, y1, u1, v1,

			x1, y1, u1, v1,
			x0, y1, u0, v1,
			x0, y0, u0, v0,
		)

		cursor += float32(glyph.XAdvance) / 64

		if len(h.quads)/24 >= maxHUDGlyphs {
			break
		}
	}

	if len(h.quads) == 0 {
		return
	}

	h.shader.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, h.tex)
	h.shader.SetInt("glyphAtlas", 0)
	h.shader.SetVec3("textColor", color)

	h.vbo.Bind()
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(h.quads)*4, unsafe.Pointer(&h.quads[0]))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	h.vao.Bind()
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(h.quads)/4))
	h.vao.Unbind()

	gl.Disable(gl.BLEND)
}

func (h *HUD) toNDC(px, py float32) (x, y float32) {
	x = (px/float32(h.screenW))*2 - 1
	y = 1 - (py/float32(h.screenH))*2
	return x, y
}

// Delete releases the HUD's GL resources.
func (h *HUD) Delete() {
	h.vao.Delete()
	h.vbo.Delete()
	h.shader.Delete()
}
