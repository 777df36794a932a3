// Command voxels is the orchestrator: it owns the window, the fixed-step
// loop, and the stdin command channel, and wires every other package
// together into a single running world.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/talonforge/voxelcore/pkg/backbone"
	"github.com/talonforge/voxelcore/pkg/bakery"
	"github.com/talonforge/voxelcore/pkg/loop"
	"github.com/talonforge/voxelcore/pkg/player"
	"github.com/talonforge/voxelcore/pkg/raycast"
	"github.com/talonforge/voxelcore/pkg/render"
	"github.com/talonforge/voxelcore/pkg/rendermgr"
	"github.com/talonforge/voxelcore/pkg/voxel"

	"openglhelper"
)

var logger = log.New(os.Stderr, "[voxels] ", log.LstdFlags)

func init() {
	// Required so every GL call below happens on the thread that owns the
	// context, matching the teacher's own init().
	runtime.LockOSThread()
}

func main() {
	width := flag.Uint("width", 1024, "window width in pixels")
	height := flag.Uint("height", 768, "window height in pixels")
	multisample := flag.Uint("gl_multisample", 0, "MSAA sample count (0 disables)")
	glDebug := flag.Bool("gl_debug", false, "request a debug GL context")
	flag.Parse()

	initialLocation := "/"
	if flag.NArg() > 0 {
		initialLocation = flag.Arg(0)
	}
	if flag.NArg() > 1 {
		logger.Fatalf("unexpected extra arguments: %v", flag.Args()[1:])
	}

	win, err := openglhelper.NewWindowWithOptions(openglhelper.Options{
		Width:       int(*width),
		Height:      int(*height),
		Title:       "voxelcore",
		VSync:       true,
		Multisample: int(*multisample),
		Debug:       *glDebug,
	})
	if err != nil {
		logger.Fatalf("creating window: %v", err)
	}
	defer win.Close()

	provider := newAssetProvider()

	registry, models := buildBlockRegistry()

	blockAtlas, atlasImg := loadBlockAtlas(provider, registry)
	bk, err := bakery.Bake(registry, blockAtlas, models)
	if err != nil {
		logger.Fatalf("baking block models: %v", err)
	}

	shader, err := loadBlockShader(provider)
	if err != nil {
		logger.Fatalf("loading block shader: %v", err)
	}
	material := render.NewMaterial(shader, openglhelper.NewTexture2D(atlasImg))

	overlay, err := render.NewSelectionOverlay()
	if err != nil {
		logger.Fatalf("building selection overlay: %v", err)
	}
	defer overlay.Delete()

	fontIndex, fontPage := loadFontIndex(provider)
	hud := render.NewHUD(fontIndex, fontPage, int(*width), int(*height))
	if hud != nil {
		defer hud.Delete()
	}

	storage := voxel.NewStorage()
	generateWorld(storage, registry)

	renderMgr, err := rendermgr.NewManager(1024)
	if err != nil {
		logger.Fatalf("creating render manager: %v", err)
	}
	defer renderMgr.Purge()

	p := player.New(mgl32.Vec3{0, 20, 16}, player.StyleGrounded)

	bb := backbone.New()
	editor := player.NewBlockEditor(p, storage, registry)
	if id, ok := registry.ByName("stone"); ok {
		editor.SelectBlock(id.ID)
	}
	bb.SetRootHandler(editor)
	if err := bb.SetLocation(initialLocation); err != nil {
		logger.Printf("rejecting initial location %q: %v", initialLocation, err)
	}
	bb.UpdateUntilIdle()

	l := loop.New(60, false)

	in := newInputState(win)
	cmds := startStdinReader()

	glfw.SetTime(0)

	for !win.ShouldClose() {
		win.PollEvents()
		in.poll(p, bb)
		drainCommands(cmds, win, l, bb)
		if win.ShouldClose() {
			break
		}

		l.Next(
			glfw.GetTime,
			func(t float64) {
				dt := float32(l.FrameTime())
				if dt <= 0 || dt > 0.25 {
					dt = 1.0 / 60.0
				}
				p.Tick(dt, in.playerInput(), storage)
				bb.Update()
			},
			func(t float64, interpolation float32) {
				draw(win, p, storage, bk, renderMgr, material, overlay, hud, l, bb)
			},
		)

		win.SwapBuffers()
	}
}

// draw renders one frame: the render manager's budgeted remesh-and-draw pass
// over every resident chunk, the selection overlay over the player's current
// raycast target, and the HUD last (it alpha-blends over everything else).
func draw(
	win *openglhelper.Window,
	p *player.Player,
	storage *voxel.Storage,
	bk *bakery.Bakery,
	renderMgr *rendermgr.Manager,
	material *render.Material,
	overlay *render.SelectionOverlay,
	hud *render.HUD,
	l *loop.Loop,
	bb *backbone.Backbone,
) {
	w, h := win.Size()
	win.Clear(mgl32.Vec4{0.53, 0.81, 0.92, 1.0})
	gl.Viewport(0, 0, int32(w), int32(h))

	viewProj := p.ProjectionMatrix(float32(w) / float32(h)).Mul4(p.ViewMatrix())

	renderMgr.Render(storage, bk, material, viewProj)

	if hit, ok := currentTarget(p, storage); ok {
		overlay.Draw(hit, viewProj)
	}

	if hud != nil {
		hud.Resize(w, h)
		hud.Draw(fmt.Sprintf("%.0f FPS %.0f TPS", l.FramesPerSecond(), l.TicksPerSecond()), 8, 8, mgl32.Vec3{0, 0, 0})
		hud.Draw(bb.LocationString(), 8, 28, mgl32.Vec3{0, 0, 0})
	}
}

// currentTarget raycasts from the player's eye along its look vector,
// mirroring player.BlockEditor's own reach so the overlay always highlights
// exactly the block an edit click would act on.
func currentTarget(p *player.Player, storage *voxel.Storage) (voxel.BlockCoord, bool) {
	rc := raycast.NewFromSrcDirLen(p.EyePosition(), p.LookVector(), player.DefaultReach)
	result, ok := storage.Raycast(rc)
	if !ok {
		return voxel.BlockCoord{}, false
	}
	return result.Hit, true
}
