package main

import (
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path"
	"path/filepath"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/talonforge/voxelcore/pkg/atlas"
	"github.com/talonforge/voxelcore/pkg/backbone"
	"github.com/talonforge/voxelcore/pkg/bakery"
	"github.com/talonforge/voxelcore/pkg/block"
	"github.com/talonforge/voxelcore/pkg/font"
	"github.com/talonforge/voxelcore/pkg/player"
	"github.com/talonforge/voxelcore/pkg/render"
	"github.com/talonforge/voxelcore/pkg/resource"
	"github.com/talonforge/voxelcore/pkg/voxel"

	"openglhelper"
)

const atlasTileSize = 16

// newAssetProvider composes the filesystem provider rooted at
// <exe_dir>/assets/ over an (empty, for now) embedded fallback, per spec
// §6's "two concrete providers ... in priority order".
func newAssetProvider() resource.Provider {
	return resource.NewCompositeProvider(
		resource.NewFilesystemProvider(filepath.Join(exeDir(), "assets")),
		resource.NewEmbeddedProvider(nil),
	)
}

func exeDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// buildBlockRegistry registers the handful of block types the world
// generator draws from and returns each type's unit-cube bakery model,
// keyed by its freshly assigned id.
func buildBlockRegistry() (*block.Registry, map[block.ID]bakery.Model) {
	reg := block.NewRegistry()
	names := []string{"stone", "dirt", "grass", "water", "gold"}

	models := make(map[block.ID]bakery.Model, len(names))
	for _, name := range names {
		t := reg.MustRegister(name)
		models[t.ID] = bakery.UnitCubeModel(name)
	}
	return reg, models
}

func registeredBlockNames(reg *block.Registry) []string {
	names := make([]string, 0, reg.Len()-1)
	for id := block.ID(1); int(id) < reg.Len(); id++ {
		t, _ := reg.ByID(id)
		names = append(names, t.Name)
	}
	return names
}

// loadBlockAtlas tries a real packed atlas image under the asset provider
// first, falling back to a procedurally generated one (one flat-colour tile
// per registered block) when no such asset exists.
func loadBlockAtlas(p resource.Provider, reg *block.Registry) (bakery.Atlas, image.Image) {
	names := registeredBlockNames(reg)

	if r, err := p.Open("textures/atlas.png"); err == nil {
		a, img, decodeErr := atlas.Decode(r, atlasTileSize, names)
		r.Close()
		if decodeErr == nil {
			return a, img
		}
		logger.Printf("decoding textures/atlas.png: %v, falling back to a procedural atlas", decodeErr)
	}

	colors := make([]color.RGBA, len(names))
	for i, name := range names {
		colors[i] = debugBlockColor(name)
	}
	return atlas.GenerateDebugAtlas(atlasTileSize, colors, names)
}

func debugBlockColor(name string) color.RGBA {
	switch name {
	case "stone":
		return color.RGBA{R: 130, G: 130, B: 130, A: 255}
	case "dirt":
		return color.RGBA{R: 121, G: 85, B: 58, A: 255}
	case "grass":
		return color.RGBA{R: 86, G: 156, B: 62, A: 255}
	case "water":
		return color.RGBA{R: 64, G: 105, B: 225, A: 200}
	case "gold":
		return color.RGBA{R: 255, G: 215, B: 0, A: 255}
	default:
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
}

const defaultBlockVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aUV;
layout (location = 2) in vec3 aNormal;

uniform mat4 viewProj;
uniform mat4 model;

out vec2 vUV;
out vec3 vNormal;

void main() {
	vUV = aUV;
	vNormal = aNormal;
	gl_Position = viewProj * model * vec4(aPos, 1.0);
}
`

const defaultBlockFragmentShader = `
#version 410 core
in vec2 vUV;
in vec3 vNormal;
out vec4 FragColor;

uniform sampler2D atlasSampler;
uniform vec3 sunDir;

void main() {
	vec4 texel = texture(atlasSampler, vUV);
	if (texel.a < 0.01) discard;
	float diffuse = max(dot(normalize(vNormal), normalize(sunDir)), 0.25);
	FragColor = vec4(texel.rgb * diffuse, texel.a);
}
`

// loadBlockShader tries the named resources spec §6 requires
// ("shaders/block.vert"/"shaders/block.frag") before falling back to a
// built-in shader exposing the same uniform names Material.Bind expects.
func loadBlockShader(p resource.Provider) (*openglhelper.Shader, error) {
	vert, vertErr := resource.UTF8String(p, "shaders/block.vert")
	frag, fragErr := resource.UTF8String(p, "shaders/block.frag")
	if vertErr != nil || fragErr != nil {
		vert, frag = defaultBlockVertexShader, defaultBlockFragmentShader
	}
	return openglhelper.NewShader(vert, frag)
}

// loadFontIndex tries a real BMFont asset ("fonts/debug.fnt" plus its first
// page image) before falling back to font.GenerateDebugIndex.
func loadFontIndex(p resource.Provider) (*font.Index, image.Image) {
	r, err := p.Open("fonts/debug.fnt")
	if err != nil {
		return font.GenerateDebugIndex(16)
	}
	defer r.Close()

	idx, err := font.Parse(r)
	if err != nil {
		logger.Printf("parsing fonts/debug.fnt: %v, falling back to a procedural font", err)
		return font.GenerateDebugIndex(16)
	}

	page, ok := idx.Pages[0]
	if !ok {
		logger.Printf("fonts/debug.fnt has no page 0, falling back to a procedural font")
		return font.GenerateDebugIndex(16)
	}

	pr, err := p.Open(path.Join("fonts", page.File))
	if err != nil {
		logger.Printf("opening font page %q: %v, falling back to a procedural font", page.File, err)
		return font.GenerateDebugIndex(16)
	}
	defer pr.Close()

	img, err := decodePNG(pr)
	if err != nil {
		logger.Printf("decoding font page %q: %v, falling back to a procedural font", page.File, err)
		return font.GenerateDebugIndex(16)
	}
	return idx, img
}

func decodePNG(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

// worldRadius is how many chunks out from the origin generateWorld fills,
// on the horizontal axes only; a trivial test-pattern world has no business
// growing dynamically.
const worldRadius = 2

// generateWorld fills a fixed grid of chunks with a sine-wave heightmap, the
// same trivial test-pattern terrain idiom the teacher's own fillChunk used,
// adapted to this module's block registry and chunk storage.
func generateWorld(storage *voxel.Storage, reg *block.Registry) {
	stone, _ := reg.ByName("stone")
	dirt, _ := reg.ByName("dirt")
	grass, _ := reg.ByName("grass")
	water, _ := reg.ByName("water")

	for cx := int32(-worldRadius); cx <= worldRadius; cx++ {
		for cz := int32(-worldRadius); cz <= worldRadius; cz++ {
			coord := voxel.ChunkCoord{X: cx, Y: 0, Z: cz}
			storage.CreateChunk(coord)
			fillChunk(storage, coord, stone.ID, dirt.ID, grass.ID, water.ID)
		}
	}
}

func fillChunk(storage *voxel.Storage, coord voxel.ChunkCoord, stone, dirt, grass, water block.ID) {
	origin := coord.Origin()

	for lx := int32(0); lx < voxel.ChunkSize; lx++ {
		for lz := int32(0); lz < voxel.ChunkSize; lz++ {
			wx := origin.X + lx
			wz := origin.Z + lz

			height := int32(math.Sin(float64(wx)/5.0)*3.0+math.Cos(float64(wz)/5.0)*3.0) + 8
			if height < 0 {
				height = 0
			}
			if height >= voxel.ChunkSize {
				height = voxel.ChunkSize - 1
			}

			for y := int32(0); y < height; y++ {
				id := stone
				switch {
				case y == height-1:
					id = grass
				case y > height-4:
					id = dirt
				}
				storage.SetBlock(voxel.BlockCoord{X: wx, Y: y, Z: wz}, block.State{ID: id})
			}
			for y := height; y < 5; y++ {
				storage.SetBlock(voxel.BlockCoord{X: wx, Y: y, Z: wz}, block.State{ID: water})
			}
		}
	}
}

// inputState tracks the edge-triggered state poll needs across frames: the
// last mouse button states, so a held button fires InputMouseButton once,
// not every frame. The last cursor position for relative mouse look is kept
// by Player.HandleMouseMovement, not here.
type inputState struct {
	win                 *openglhelper.Window
	prevLeft, prevRight glfw.Action
}

func newInputState(win *openglhelper.Window) *inputState {
	return &inputState{win: win}
}

// poll reads this frame's mouse movement and button edges, updating p's
// orientation directly and firing a backbone InputMouseButton event on each
// button's press edge.
func (in *inputState) poll(p *player.Player, bb *backbone.Backbone) {
	glfwWin := in.win.GLFWWindow()

	x, y := glfwWin.GetCursorPos()
	p.HandleMouseMovement(x, y)

	left := glfwWin.GetMouseButton(glfw.MouseButtonLeft)
	if left == glfw.Press && in.prevLeft != glfw.Press {
		bb.FireEvent(player.InputMouseButton{Button: player.ButtonLeft})
	}
	in.prevLeft = left

	right := glfwWin.GetMouseButton(glfw.MouseButtonRight)
	if right == glfw.Press && in.prevRight != glfw.Press {
		bb.FireEvent(player.InputMouseButton{Button: player.ButtonRight})
	}
	in.prevRight = right
}

// playerInput reads this frame's held-key state into a player.Input, the
// shape Player.Tick consumes regardless of input backend.
func (in *inputState) playerInput() player.Input {
	held := func(key glfw.Key) bool { return in.win.GetKeyState(key) != glfw.Release }

	return player.Input{
		Forward:          held(render.KeyW),
		Back:             held(render.KeyS),
		Left:             held(render.KeyA),
		Right:            held(render.KeyD),
		Jump:             held(render.KeySpace),
		SprintMultiplier: 1,
	}
}
