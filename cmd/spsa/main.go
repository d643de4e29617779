package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/folio/component"
	"github.com/milk9111/folio/render"
)

const screenSize = 512

// previewer plays one state row of a sprite sheet at a time.
type previewer struct {
	sheet   *ebiten.Image
	anim    *component.Animation
	frameW  int
	frameH  int
	scale   float64
	surface *render.EbitenSurface
	flip    bool
}

func (g *previewer) Update() error {
	states := g.anim.States()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.anim.SetState(states[(indexOf(states, g.anim.State())+1)%len(states)])
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.anim.SetState(states[(indexOf(states, g.anim.State())+len(states)-1)%len(states)])
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.anim.Stagger++
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		if g.anim.Stagger > 1 {
			g.anim.Stagger--
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.flip = !g.flip
	}
	g.anim.Update()
	return nil
}

func (g *previewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x20, 0xff})
	g.surface.Reset(screen)

	w, h := float64(g.frameW)*g.scale, float64(g.frameH)*g.scale
	g.surface.DrawImage(g.sheet, g.anim.Source(g.frameW, g.frameH), render.Rect{
		X: (screenSize - w) / 2,
		Y: (screenSize - h) / 2,
		W: w,
		H: h,
	}, &render.DrawOptions{FlipX: g.flip})

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"state: %s  frame: %d  stagger: %d\nleft/right: state  up/down: stagger  F: flip",
		g.anim.State(), g.anim.Frame(), g.anim.Stagger,
	))
}

func (g *previewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenSize, screenSize
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return 0
}

// parseStates reads "name:row:frames,..." into anim.
func parseStates(anim *component.Animation, spec string) error {
	for _, part := range strings.Split(spec, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 3 {
			return fmt.Errorf("state %q: want name:row:frames", part)
		}
		row, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("state %q: row: %w", part, err)
		}
		frames, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("state %q: frames: %w", part, err)
		}
		if err := anim.AddState(fields[0], row, frames); err != nil {
			return err
		}
	}
	return nil
}

func loadSheet(path string) (*ebiten.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func main() {
	path := flag.String("sheet", "assets/images/player.png", "sprite sheet to preview")
	frameW := flag.Int("fw", 110, "frame width")
	frameH := flag.Int("fh", 175, "frame height")
	stagger := flag.Int("stagger", 10, "ticks per frame")
	states := flag.String("states", "idle:0:4,running:1:4,jumping:2:4,falling:3:4", "comma separated name:row:frames")
	scale := flag.Float64("scale", 2, "draw scale")
	flag.Parse()

	sheet, err := loadSheet(*path)
	if err != nil {
		log.Fatal(err)
	}
	anim := component.NewAnimation(*stagger)
	if err := parseStates(anim, *states); err != nil {
		log.Fatal(err)
	}

	g := &previewer{
		sheet:   sheet,
		anim:    anim,
		frameW:  *frameW,
		frameH:  *frameH,
		scale:   *scale,
		surface: render.NewEbitenSurface(nil),
	}
	ebiten.SetWindowSize(screenSize, screenSize)
	ebiten.SetWindowTitle("spsa: " + *path)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
