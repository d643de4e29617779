package render

import (
	"bytes"
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const defaultTextSize = 20

var (
	faceSourceOnce sync.Once
	faceSource     *text.GoTextFaceSource
)

func goFaceSource() *text.GoTextFaceSource {
	faceSourceOnce.Do(func() {
		s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("render: load font: %v", err)
			return
		}
		faceSource = s
	})
	return faceSource
}

// EbitenSurface draws onto an *ebiten.Image, usually the screen passed to
// Game.Draw.
type EbitenSurface struct {
	Target *ebiten.Image

	faces map[float64]*text.GoTextFace
}

// NewEbitenSurface wraps target. Call Reset each frame with the new screen.
func NewEbitenSurface(target *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{Target: target, faces: make(map[float64]*text.GoTextFace)}
}

// Reset points the surface at a new target, keeping cached font faces.
func (s *EbitenSurface) Reset(target *ebiten.Image) {
	s.Target = target
}

func (s *EbitenSurface) Clear() {
	if s.Target == nil {
		return
	}
	s.Target.Clear()
}

func (s *EbitenSurface) Size() (int, int) {
	if s.Target == nil {
		return 0, 0
	}
	b := s.Target.Bounds()
	return b.Dx(), b.Dy()
}

func (s *EbitenSurface) DrawImage(img Image, src image.Rectangle, dst Rect, op *DrawOptions) {
	if s.Target == nil || img == nil {
		return
	}
	eimg, ok := img.(*ebiten.Image)
	if !ok {
		log.Printf("render: cannot draw %T on an ebiten surface", img)
		return
	}
	src = SourceOf(img, src)
	if src.Dx() <= 0 || src.Dy() <= 0 || dst.W <= 0 || dst.H <= 0 {
		return
	}
	sub, ok := eimg.SubImage(src).(*ebiten.Image)
	if !ok {
		return
	}

	dop := &ebiten.DrawImageOptions{}
	sx := dst.W / float64(src.Dx())
	sy := dst.H / float64(src.Dy())
	if op != nil && op.FlipX {
		dop.GeoM.Scale(-sx, sy)
		dop.GeoM.Translate(dst.X+dst.W, dst.Y)
	} else {
		dop.GeoM.Scale(sx, sy)
		dop.GeoM.Translate(dst.X, dst.Y)
	}
	if a := AlphaOf(op); a < 1 {
		dop.ColorScale.ScaleAlpha(float32(a))
	}
	dop.Filter = ebiten.FilterNearest
	s.Target.DrawImage(sub, dop)
}

func (s *EbitenSurface) face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = defaultTextSize
	}
	if f, ok := s.faces[size]; ok {
		return f
	}
	src := goFaceSource()
	if src == nil {
		return nil
	}
	if s.faces == nil {
		s.faces = make(map[float64]*text.GoTextFace)
	}
	f := &text.GoTextFace{Source: src, Size: size}
	s.faces[size] = f
	return f
}

func (s *EbitenSurface) DrawText(str string, x, y float64, style TextStyle) {
	if s.Target == nil || str == "" {
		return
	}
	f := s.face(style.Size)
	if f == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	c := style.Color
	if c == nil {
		c = color.White
	}
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.Target, str, f, op)
}

func (s *EbitenSurface) MeasureText(str string, style TextStyle) float64 {
	f := s.face(style.Size)
	if f == nil {
		return 0
	}
	w, _ := text.Measure(str, f, 0)
	return w
}

func (s *EbitenSurface) FillRect(r Rect, c color.Color) {
	if s.Target == nil || r.W <= 0 || r.H <= 0 {
		return
	}
	vector.FillRect(s.Target, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}
