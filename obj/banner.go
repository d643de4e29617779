package obj

import (
	"image/color"

	"github.com/milk9111/folio/render"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	bannerFontSize      = 25
	bannerSmallFontSize = 20
	// bannerPadding is kept free on each side of the banner text.
	bannerPadding = 10
	bannerFade    = 0.6
)

var (
	panelBorder = color.RGBA{R: 0x77, G: 0x77, B: 0x77, A: 0xff}
	panelFill   = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
)

// Banner is a background image with a centred line of text. Text that does
// not fit at the regular size drops to the small size. It fades in the first
// time it comes on screen.
type Banner struct {
	Node

	Text       string
	Background render.Image
	Color      color.Color
	Width      float64
	Height     float64
	// FadeOnShow fades the banner in the first time it is drawn.
	FadeOnShow bool

	size     float64
	offsetX  float64
	measured bool
	fade     *gween.Tween
	alpha    float64
}

// NewBanner builds a banner over the image with id bg. Without a background
// it falls back to a w x h box.
func NewBanner(images ImageSource, bg, text string, x, y float64, z int, w, h float64) *Banner {
	b := &Banner{Text: text, Color: color.Black, Width: w, Height: h, alpha: 1}
	b.Position.SetXY(x, y)
	b.Z = z
	if img := lookupImage(images, bg); img != nil {
		b.Background = img
		r := img.Bounds()
		b.Width, b.Height = float64(r.Dx()), float64(r.Dy())
	}
	return b
}

// Alpha returns the current opacity.
func (b *Banner) Alpha() float64 { return b.alpha }

// FontSize returns the chosen text size, or 0 before the first draw.
func (b *Banner) FontSize() float64 { return b.size }

func (b *Banner) Update(ctx *Context) {
	if b.fade != nil && b.measured {
		v, done := b.fade.Update(float32(ctx.Dt))
		b.alpha = float64(v)
		if done {
			b.alpha = 1
			b.fade = nil
		}
	}
	b.Node.Update(ctx)
}

func (b *Banner) layout(s render.Surface) {
	b.size = bannerFontSize
	w := s.MeasureText(b.Text, render.TextStyle{Size: b.size})
	if w > b.Width-2*bannerPadding {
		b.size = bannerSmallFontSize
		w = s.MeasureText(b.Text, render.TextStyle{Size: b.size})
	}
	b.offsetX = (b.Width - w) / 2
	b.measured = true
	if b.FadeOnShow {
		b.alpha = 0
		b.fade = gween.New(0, 1, bannerFade, ease.OutQuad)
	}
}

func (b *Banner) Draw(ctx *Context) {
	if !b.measured {
		b.layout(ctx.Surface)
	}
	cx, cy := ctx.cameraOffset()
	x, y := b.Position.X-cx, b.Position.Y-cy
	if b.Background != nil {
		ctx.Surface.DrawImage(b.Background, b.Background.Bounds(), render.Rect{X: x, Y: y, W: b.Width, H: b.Height},
			&render.DrawOptions{Fade: 1 - b.alpha})
	}
	ctx.Surface.DrawText(b.Text, x+b.offsetX, y+(b.Height-b.size)/2, render.TextStyle{
		Size:  b.size,
		Color: withAlpha(b.Color, b.alpha),
	})
	b.Node.Draw(ctx)
}

func (b *Banner) IntersectsCamera(cam *Camera) bool {
	return cam.Shape.IntersectsRaw(b.Position.X, b.Position.Y, b.Width, b.Height)
}

// TextPanel is a bordered card with a title, a subtitle and body lines.
type TextPanel struct {
	Node

	Title    string
	Subtitle string
	Lines    []string
	Width    float64
	Height   float64
	Border   float64
}

func NewTextPanel(title, subtitle string, lines []string, x, y float64, z int) *TextPanel {
	p := &TextPanel{Title: title, Subtitle: subtitle, Lines: lines, Width: 512, Height: 256, Border: 7}
	p.Position.SetXY(x, y)
	p.Z = z
	return p
}

func (p *TextPanel) Draw(ctx *Context) {
	cx, cy := ctx.cameraOffset()
	x, y := p.Position.X-cx, p.Position.Y-cy
	s := ctx.Surface
	s.FillRect(render.Rect{X: x - p.Border, Y: y - p.Border, W: p.Width + 2*p.Border, H: p.Height + 2*p.Border}, panelBorder)
	s.FillRect(render.Rect{X: x, Y: y, W: p.Width, H: p.Height}, panelFill)

	s.DrawText(p.Title, x+20, y+20, render.TextStyle{Size: 30, Color: color.White})
	s.DrawText(p.Subtitle, x+20, y+58, render.TextStyle{Size: 20, Color: color.White})
	for i, line := range p.Lines {
		s.DrawText(line, x+20, y+100+float64(i)*30, render.TextStyle{Size: 18, Color: color.White})
	}
	p.Node.Draw(ctx)
}

func (p *TextPanel) IntersectsCamera(cam *Camera) bool {
	return cam.Shape.IntersectsRaw(p.Position.X-p.Border, p.Position.Y-p.Border, p.Width+2*p.Border, p.Height+2*p.Border)
}

// BlinkText shows its text for Period ticks, hides it for Period ticks, and
// repeats.
type BlinkText struct {
	Node

	Text   string
	Size   float64
	Color  color.Color
	Period int

	visible bool
	ticks   int
}

func NewBlinkText(text string, x, y float64, z int, size float64) *BlinkText {
	t := &BlinkText{Text: text, Size: size, Color: color.Black, Period: 30, visible: true}
	t.Position.SetXY(x, y)
	t.Z = z
	return t
}

func (t *BlinkText) Visible() bool { return t.visible }

func (t *BlinkText) Update(ctx *Context) {
	t.ticks++
	if t.Period > 0 && t.ticks%t.Period == 0 {
		t.visible = !t.visible
	}
	t.Node.Update(ctx)
}

func (t *BlinkText) Draw(ctx *Context) {
	if t.visible {
		cx, cy := ctx.cameraOffset()
		ctx.Surface.DrawText(t.Text, t.Position.X-cx, t.Position.Y-cy, render.TextStyle{Size: t.Size, Color: t.Color})
	}
	t.Node.Draw(ctx)
}

func withAlpha(c color.Color, a float64) color.Color {
	if c == nil {
		c = color.Black
	}
	if a >= 1 {
		return c
	}
	if a <= 0 {
		return color.Transparent
	}
	// RGBA is premultiplied, so every channel scales
	r, g, b, ca := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * a),
		G: uint16(float64(g) * a),
		B: uint16(float64(b) * a),
		A: uint16(float64(ca) * a),
	}
}
