package main

import (
	"context"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/folio/assets"
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/levels"
	"github.com/milk9111/folio/obj"
	"github.com/milk9111/folio/render"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

// Options configure a Game. Zero values use the embedded world and assets.
type Options struct {
	WorldPath string
	AssetsDir string
	Debug     bool
	Watch     bool
	// Clipboard is set once clipboard.Init succeeded.
	Clipboard bool
}

type Game struct {
	opts Options

	frames  int
	assets  *assets.Registry
	spec    *levels.World
	world   *obj.World
	input   *obj.Input
	surface *render.EbitenSurface
	ctx     obj.Context

	paused     bool
	pauseUI    *ebitenui.UI
	transition *obj.Transition
	watcher    *levels.Watcher
	cancel     context.CancelFunc
}

func NewGame(opts Options) (*Game, error) {
	spec, err := levels.Load(opts.WorldPath)
	if err != nil {
		return nil, err
	}

	var fsys fs.FS = assets.Embedded()
	if opts.AssetsDir != "" {
		fsys = os.DirFS(opts.AssetsDir)
	}
	manifest, err := assets.LoadManifest(fsys)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:    opts,
		assets:  assets.NewRegistry(),
		spec:    spec,
		input:   obj.NewInput(int(spec.Viewport.Width)),
		surface: render.NewEbitenSurface(nil),

		transition: obj.NewTransition(20),
	}
	g.ctx = obj.Context{
		Surface: g.surface,
		Images:  g.assets,
		Sounds:  g.assets,
		Input:   g.input,
	}
	g.pauseUI = NewPauseUI(g)

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	if err := g.assets.Load(ctx, fsys, manifest); err != nil {
		cancel()
		return nil, err
	}

	if opts.Watch && opts.WorldPath != "" {
		w, err := levels.NewWatcher(opts.WorldPath)
		if err != nil {
			log.Printf("watch %s: %v", opts.WorldPath, err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// Close stops background loading and the world watcher.
func (g *Game) Close() {
	g.cancel()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// restart rebuilds the world from the current description.
func (g *Game) restart() error {
	w, err := levels.Build(g.spec, levels.Deps{Images: g.assets, Sounds: g.assets})
	if err != nil {
		return err
	}
	w.Debug = g.opts.Debug
	g.world = w
	g.input.Release()
	return nil
}

// fadeRestart rebuilds the world behind a fade to black.
func (g *Game) fadeRestart() {
	g.transition.Start(func() {
		if err := g.restart(); err != nil {
			log.Printf("restart: %v", err)
		}
	})
}

// reload re-reads the world file. A broken file keeps the running world.
func (g *Game) reload() {
	spec, err := levels.Load(g.opts.WorldPath)
	if err != nil {
		log.Printf("reload: %v", err)
		return
	}
	g.transition.Start(func() {
		prev := g.spec
		g.spec = spec
		if err := g.restart(); err != nil {
			log.Printf("reload: %v", err)
			g.spec = prev
			return
		}
		log.Printf("reloaded %s", g.opts.WorldPath)
	})
}

func (g *Game) Update() error {
	g.frames++

	if !g.assets.Ready() {
		return nil
	}
	if g.world == nil {
		if err := g.restart(); err != nil {
			return err
		}
		g.transition.FadeIn()
	}

	if g.transition.Update() {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.watcher != nil {
		changed, err := g.watcher.Drain()
		if err != nil {
			log.Printf("watch: %v", err)
		}
		if changed {
			g.reload()
		}
	}

	if g.opts.Debug && g.opts.Clipboard && inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copyPlayerPosition()
	}

	g.input.Poll()
	g.ctx.Dt = 1 / float64(ebiten.TPS())
	g.world.Update(&g.ctx)
	return nil
}

// copyPlayerPosition puts the player's coordinates on the clipboard in the
// world file's format.
func (g *Game) copyPlayerPosition() {
	p := g.world.Player
	if p == nil {
		return
	}
	s := fmt.Sprintf("x: %.0f\ny: %.0f\n", p.Position.X, p.Position.Y)
	clipboard.Write(clipboard.FmtText, []byte(s))
	log.Printf("copied player position (%.0f, %.0f)", p.Position.X, p.Position.Y)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Reset(screen)

	if g.world == nil {
		g.drawLoading(screen)
		return
	}

	g.world.Draw(&g.ctx)

	if g.opts.Debug {
		g.drawDebug(screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
	g.transition.Draw(g.surface)
}

func (g *Game) drawLoading(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	dots := (g.frames / 20) % 4
	msg := "Loading"
	for i := 0; i < dots; i++ {
		msg += "."
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	g.surface.DrawText(msg, float64(w)/2-60, float64(h)/2-15, render.TextStyle{Size: 30, Color: color.White})
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	cam := g.world.Camera
	for _, c := range g.world.Colliders() {
		strokeShape(screen, cam, c.Shape(), colornames.Lime)
	}
	p := g.world.Player
	if p == nil {
		return
	}
	strokeShape(screen, cam, p.Shape(), colornames.Red)
	if cam != nil {
		tx, ty := cam.WorldToScreen(p.Track)
		vector.FillRect(screen, float32(tx-5), float32(ty-5), 10, 10, colornames.Green, false)
	}

	hint := ""
	if g.opts.Clipboard {
		hint = "\nF2: copy position"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.2f  TPS: %.2f  frame: %d\nstate: %s  pos: (%.0f, %.0f)  vel: (%.2f, %.2f)  ground: %v%s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.world.Frame(),
		p.State(), p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y, p.OnGround, hint,
	))
}

func strokeShape(screen *ebiten.Image, cam *obj.Camera, s *common.AABB, c color.Color) {
	if s == nil {
		return
	}
	x, y := s.Position.X, s.Position.Y
	if cam != nil {
		if !cam.Shape.Intersects(s) {
			return
		}
		x, y = cam.WorldToScreen(*s.Position)
	}
	vector.StrokeRect(screen, float32(x), float32(y), float32(s.Width), float32(s.Height), 1, c, false)
}

// Layout renders at the world's viewport size and lets Ebiten scale it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.spec == nil {
		return common.BaseWidth, common.BaseHeight
	}
	return int(g.spec.Viewport.Width), int(g.spec.Viewport.Height)
}
