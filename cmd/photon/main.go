// Command photon is the ray tracer's CLI and live-preview entry point. It
// owns the window and keyboard input (the spec's preview collaborator),
// launches the offline renderer on demand, and blits the progressively
// refined image every frame, generalized from the teacher's cmd/render
// main flow (a Game struct wrapping a tile worker pool) to drive
// pkg/render.Controller instead of directly rendering tiles.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"photon/pkg/camera"
	"photon/pkg/encode"
	"photon/pkg/loader"
	rtmath "photon/pkg/math"
	"photon/pkg/render"
	"photon/pkg/scene"
)

const (
	previewWidth  = 960
	previewHeight = 540
)

func main() {
	scenePath := flag.String("scene", "", "path to a scene JSON file (uses a built-in default scene if omitted)")
	headless := flag.Bool("headless", false, "render once to the output path and exit, without opening the preview window")
	flag.Parse()

	outputPath := "output.png"
	if flag.NArg() > 0 {
		outputPath = flag.Arg(0)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "photon: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	sc, cam, err := loadScene(*scenePath, log)
	if err != nil {
		log.Fatalw("init failed", "error", err)
	}

	game := newGame(sc, cam, outputPath, log)

	if *headless {
		game.startRender()
		<-game.renderDone
		os.Exit(0)
	}

	ebiten.SetWindowSize(previewWidth, previewHeight)
	ebiten.SetWindowTitle("photon")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalw("preview terminated", "error", err)
	}
}

// loadScene loads a scene from scenePath, or builds the built-in default
// scene when scenePath is empty, matching spec.md §6's CLI contract (an
// optional positional output path, otherwise sensible defaults).
func loadScene(scenePath string, log *zap.SugaredLogger) (*scene.Scene, *camera.Camera, error) {
	if scenePath == "" {
		log.Infow("no -scene given, rendering the built-in default scene")
		sc, cam := defaultScene()
		return sc, cam, nil
	}
	sc, cam, err := loader.LoadScene(scenePath)
	if err != nil {
		return nil, nil, fmt.Errorf("load scene %s: %w", scenePath, err)
	}
	return sc, cam, nil
}

// Game is the ebiten.Game implementation hosting the spec's §6 keyboard
// control surface: r starts/cancels a render, l repositions light 0 from
// stdin, q/Q/Escape cancels and exits, Space toggles a preview-only
// wireframe overlay with no effect on the ray tracer.
type Game struct {
	log *zap.SugaredLogger

	sceneMu sync.Mutex
	scene   *scene.Scene
	cam     *camera.Camera

	config     render.Config
	outputPath string

	frameMu sync.Mutex
	frame   *image.RGBA

	running    int32 // atomic bool, set while a render goroutine is in flight
	quit       *render.CancelFlag
	renderDone chan struct{}

	wireframe bool
	stdin     *bufio.Reader
}

func newGame(sc *scene.Scene, cam *camera.Camera, outputPath string, log *zap.SugaredLogger) *Game {
	return &Game{
		log:        log,
		scene:      sc,
		cam:        cam,
		config:     loader.DefaultConfig(),
		outputPath: outputPath,
		quit:       &render.CancelFlag{},
		renderDone: make(chan struct{}, 1),
		stdin:      bufio.NewReader(os.Stdin),
	}
}

// Update polls the control surface once per tick.
func (g *Game) Update() error {
	switch {
	case ebiten.IsKeyJustPressed(ebiten.KeyR):
		g.onR()
	case ebiten.IsKeyJustPressed(ebiten.KeyL):
		go g.onL()
	case ebiten.IsKeyJustPressed(ebiten.KeyQ), ebiten.IsKeyJustPressed(ebiten.KeyEscape):
		g.onQuit()
	case ebiten.IsKeyJustPressed(ebiten.KeySpace):
		g.wireframe = !g.wireframe
	}
	return nil
}

// onR starts an offline render if idle, or requests cancellation at the
// next sample boundary if one is already running.
func (g *Game) onR() {
	if atomic.LoadInt32(&g.running) != 0 {
		g.log.Info("cancellation requested")
		g.quit.Request()
		return
	}
	g.startRender()
}

func (g *Game) startRender() {
	atomic.StoreInt32(&g.running, 1)
	go func() {
		defer func() { atomic.StoreInt32(&g.running, 0); g.renderDone <- struct{}{} }()

		ctx := context.Background()
		enc := &previewEncoder{game: g, file: encode.PNGEncoder{}}
		controller := render.NewController(g.config, newSeed(), enc)

		// Snapshot the scene's lights before handing it to the controller:
		// "l" may reposition light 0 while a render is in flight, and the
		// render must see a stable scene for its whole run rather than
		// racing with that mutation mid-sample.
		g.sceneMu.Lock()
		sc := g.scene.Snapshot(append([]scene.Light(nil), g.scene.Lights...))
		cam := g.cam
		g.sceneMu.Unlock()

		samples, cancelled, err := controller.Run(ctx, sc, cam, g.quit, g.outputPath)
		if err != nil {
			g.log.Errorw("render failed", "error", err, "samplesRun", samples)
			return
		}
		g.log.Infow("render finished", "samplesRun", samples, "cancelled", cancelled, "output", g.outputPath)
	}()
}

// onL blocks on stdin reading four floats, per spec.md §6's "l" handler.
// It runs off the Update goroutine so a slow or absent stdin read never
// stalls the preview's frame loop.
func (g *Game) onL() {
	var x, y, z, w float64
	if _, err := fmt.Fscan(g.stdin, &x, &y, &z, &w); err != nil {
		g.log.Warnw("failed to read light position from stdin", "error", err)
		return
	}
	if math.Abs(w) < 1e-7 {
		w = 0
	} else {
		w = 1
	}

	g.sceneMu.Lock()
	defer g.sceneMu.Unlock()
	if len(g.scene.Lights) == 0 {
		g.scene.Lights = append(g.scene.Lights, scene.Light{})
	}
	g.scene.Lights[0].Position = rtmath.Vec4{x, y, z, w}
	g.log.Infow("light 0 repositioned", "x", x, "y", y, "z", z, "w", w)
}

func (g *Game) onQuit() {
	if atomic.LoadInt32(&g.running) != 0 {
		g.quit.Request()
	}
	g.log.Info("exiting")
	os.Exit(0)
}

// Draw blits the latest progressively-refined frame, scaled to fill the
// preview window, and overlays a wireframe border when toggled.
func (g *Game) Draw(screen *ebiten.Image) {
	g.frameMu.Lock()
	frame := g.frame
	g.frameMu.Unlock()

	if frame == nil {
		ebitenutil.DebugPrint(screen, "press r to render")
		return
	}

	img := ebiten.NewImageFromImage(frame)
	opts := &ebiten.DrawImageOptions{}
	sx := float64(previewWidth) / float64(frame.Bounds().Dx())
	sy := float64(previewHeight) / float64(frame.Bounds().Dy())
	opts.GeoM.Scale(sx, sy)
	screen.DrawImage(img, opts)

	if g.wireframe {
		vector.StrokeRect(screen, 1, 1, previewWidth-2, previewHeight-2, 2, color.White, false)
	}

	status := "idle"
	if atomic.LoadInt32(&g.running) != 0 {
		status = "sampling"
	}
	ebitenutil.DebugPrint(screen, "[r] render/cancel  [l] move light  [space] wireframe  [q] quit  -- "+status)
}

// Layout fixes the preview window's logical size independent of the
// offline render's own width/height, per spec.md §4.3: the preview
// viewport only ever contributes an aspect ratio to the camera, never the
// render's pixel grid.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return previewWidth, previewHeight
}

// previewEncoder fans a resolved frame out to both the preview window and
// the real PNG file, so write_image's "persisted state" contract (spec.md
// §6) and the live preview are served by the same Controller callback.
type previewEncoder struct {
	game *Game
	file encode.PNGEncoder
}

func (p *previewEncoder) WriteImage(path string, pix []byte, width, height int) error {
	p.game.frameMu.Lock()
	if p.game.frame == nil || p.game.frame.Bounds().Dx() != width || p.game.frame.Bounds().Dy() != height {
		p.game.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	copy(p.game.frame.Pix, pix)
	p.game.frameMu.Unlock()

	return p.file.WriteImage(path, pix, width, height)
}
