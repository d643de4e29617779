package obj

import (
	"image"
	"image/color"

	"github.com/milk9111/folio/render"
)

type drawCall struct {
	kind string
	img  render.Image
	src  image.Rectangle
	dst  render.Rect
	text string
	size float64
	op   *render.DrawOptions
}

// fakeSurface records every call in order.
type fakeSurface struct {
	w, h   int
	calls  []drawCall
	clears int
}

func newFakeSurface(w, h int) *fakeSurface {
	return &fakeSurface{w: w, h: h}
}

func (s *fakeSurface) Clear() {
	s.clears++
	s.calls = append(s.calls, drawCall{kind: "clear"})
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

func (s *fakeSurface) DrawImage(img render.Image, src image.Rectangle, dst render.Rect, op *render.DrawOptions) {
	s.calls = append(s.calls, drawCall{kind: "image", img: img, src: src, dst: dst, op: op})
}

func (s *fakeSurface) DrawText(str string, x, y float64, style render.TextStyle) {
	s.calls = append(s.calls, drawCall{kind: "text", text: str, dst: render.Rect{X: x, Y: y}, size: style.Size})
}

// MeasureText treats every glyph as half the font size wide.
func (s *fakeSurface) MeasureText(str string, style render.TextStyle) float64 {
	return float64(len(str)) * style.Size / 2
}

func (s *fakeSurface) FillRect(r render.Rect, c color.Color) {
	s.calls = append(s.calls, drawCall{kind: "fill", dst: r})
}

func (s *fakeSurface) count(kind string) int {
	n := 0
	for _, c := range s.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

func (s *fakeSurface) texts() []string {
	var out []string
	for _, c := range s.calls {
		if c.kind == "text" {
			out = append(out, c.text)
		}
	}
	return out
}

func (s *fakeSurface) reset() { s.calls = nil }

type fakeImage struct {
	w, h int
}

func (i fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, i.w, i.h) }

type fakeImages map[string]render.Image

func (f fakeImages) Image(id string) (render.Image, bool) {
	img, ok := f[id]
	return img, ok
}

type fakeSound struct {
	playing bool
	plays   int
	pauses  int
	rewinds int
}

func (s *fakeSound) Play() {
	s.playing = true
	s.plays++
}

func (s *fakeSound) Pause() {
	s.playing = false
	s.pauses++
}

func (s *fakeSound) Rewind() error {
	s.rewinds++
	return nil
}

func (s *fakeSound) IsPlaying() bool { return s.playing }

type fakeSounds map[string]*fakeSound

func (f fakeSounds) Sound(id string) (Sound, bool) {
	s, ok := f[id]
	if !ok {
		return nil, false
	}
	return s, true
}

// recorder is an entity that records its calls and can be told to panic.
type recorder struct {
	Node

	name    string
	log     *[]string
	hidden  bool
	panicky bool
}

func newRecorder(name string, z, collisionZ int, log *[]string) *recorder {
	p := &recorder{name: name, log: log}
	p.Z = z
	p.CollisionZ = collisionZ
	return p
}

func (p *recorder) Update(ctx *Context) {
	if p.panicky {
		panic("recorder " + p.name)
	}
	*p.log = append(*p.log, "u:"+p.name)
	p.Node.Update(ctx)
}

func (p *recorder) Draw(ctx *Context) {
	if p.panicky {
		panic("recorder " + p.name)
	}
	ctx.Surface.DrawText(p.name, 0, 0, render.TextStyle{})
	p.Node.Draw(ctx)
}

func (p *recorder) IntersectsCamera(*Camera) bool { return !p.hidden }
