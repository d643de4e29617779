package obj

import (
	"math"

	"github.com/milk9111/folio/render"
)

// ParallaxLayer is a background sprite that scrolls slower (or faster) than
// the camera and optionally tiles to cover the viewport.
type ParallaxLayer struct {
	Sprite

	// SpeedX and SpeedY scale camera movement; 1 scrolls with the world.
	SpeedX  float64
	SpeedY  float64
	RepeatX bool
	RepeatY bool
}

func NewParallaxLayer(images ImageSource, id string, x, y float64, z int, speedX, speedY float64, repeatX, repeatY bool) *ParallaxLayer {
	l := &ParallaxLayer{SpeedX: speedX, SpeedY: speedY, RepeatX: repeatX, RepeatY: repeatY}
	l.ImageID = id
	l.Position.SetXY(x, y)
	l.Z = z
	l.SetImage(lookupImage(images, id))
	return l
}

// IntersectsCamera is always true: the layer places itself relative to the
// camera.
func (l *ParallaxLayer) IntersectsCamera(*Camera) bool { return true }

func (l *ParallaxLayer) Draw(ctx *Context) {
	if l.Image == nil || l.Hidden || l.Width <= 0 || l.Height <= 0 {
		return
	}
	cx, cy := ctx.cameraOffset()
	vw, vh := ctx.Surface.Size()
	if cam := ctx.Camera(); cam != nil {
		vw, vh = int(cam.Width()), int(cam.Height())
	}

	startX, endX := tileSpan(l.Position.X-cx*l.SpeedX, l.Width, float64(vw), l.RepeatX)
	startY, endY := tileSpan(l.Position.Y-cy*l.SpeedY, l.Height, float64(vh), l.RepeatY)

	src := l.Image.Bounds()
	for y := startY; y < endY; y += l.Height {
		for x := startX; x < endX; x += l.Width {
			ctx.Surface.DrawImage(l.Image, src, render.Rect{X: x, Y: y, W: l.Width, H: l.Height}, l.Options)
		}
	}
}

// tileSpan returns the screen range [start, end) to tile along one axis. A
// non-repeating axis yields exactly one tile at base.
func tileSpan(base, size, view float64, repeat bool) (float64, float64) {
	if !repeat {
		return base, base + 1
	}
	return math.Mod(base, size) - size, view + size
}
