package obj

import (
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/component"
	"github.com/milk9111/folio/render"
)

// Sprite draws an image at its position. Its size is taken from the image
// when the image resolves, and stays zero otherwise.
type Sprite struct {
	Node

	ImageID string
	Image   render.Image
	Width   float64
	Height  float64
	Hidden  bool
	// Options is applied to every draw. nil draws plainly.
	Options *render.DrawOptions
}

// NewSprite resolves id through images. A missing image yields a sprite that
// draws nothing.
func NewSprite(images ImageSource, id string, x, y float64, z int) *Sprite {
	s := &Sprite{ImageID: id}
	s.Position.SetXY(x, y)
	s.Z = z
	s.SetImage(lookupImage(images, id))
	return s
}

// SetImage swaps the image and adopts its size.
func (s *Sprite) SetImage(img render.Image) {
	s.Image = img
	if img == nil {
		return
	}
	b := img.Bounds()
	s.Width = float64(b.Dx())
	s.Height = float64(b.Dy())
}

// Bounds returns the sprite rectangle in world space.
func (s *Sprite) Bounds() *common.AABB {
	return common.NewAABB(s.Position.Clone(), s.Width, s.Height)
}

func (s *Sprite) Draw(ctx *Context) {
	if s.Image != nil && !s.Hidden {
		cx, cy := ctx.cameraOffset()
		ctx.Surface.DrawImage(s.Image, s.Image.Bounds(), render.Rect{
			X: s.Position.X - cx,
			Y: s.Position.Y - cy,
			W: s.Width,
			H: s.Height,
		}, s.Options)
	}
	s.Node.Draw(ctx)
}

func (s *Sprite) IntersectsCamera(cam *Camera) bool {
	return cam.Shape.IntersectsRaw(s.Position.X, s.Position.Y, s.Width, s.Height)
}

// ParentMoved keeps the sprite attached to a moving parent.
func (s *Sprite) ParentMoved(delta common.Vector) {
	s.Position.Add(delta)
	s.notifyChildren(delta)
}

// AnimatedSprite draws one frame of a sprite sheet. A plain strip is a
// single "default" state on row 0.
type AnimatedSprite struct {
	Sprite

	Anim   *component.Animation
	FrameW int
	FrameH int
}

// NewAnimatedSprite builds a single-row strip animation of frames frames.
func NewAnimatedSprite(images ImageSource, id string, x, y float64, z, frameW, frameH, frames, stagger int) (*AnimatedSprite, error) {
	a := component.NewAnimation(stagger)
	if err := a.AddState("default", 0, frames); err != nil {
		return nil, err
	}
	s := &AnimatedSprite{Anim: a, FrameW: frameW, FrameH: frameH}
	s.ImageID = id
	s.Position.SetXY(x, y)
	s.Z = z
	s.Image = lookupImage(images, id)
	s.Width = float64(frameW)
	s.Height = float64(frameH)
	return s, nil
}

func (s *AnimatedSprite) Update(ctx *Context) {
	s.Anim.Update()
	s.Node.Update(ctx)
}

func (s *AnimatedSprite) Draw(ctx *Context) {
	if s.Image != nil && !s.Hidden {
		cx, cy := ctx.cameraOffset()
		ctx.Surface.DrawImage(s.Image, s.Anim.Source(s.FrameW, s.FrameH), render.Rect{
			X: s.Position.X - cx,
			Y: s.Position.Y - cy,
			W: s.Width,
			H: s.Height,
		}, s.Options)
	}
	s.Node.Draw(ctx)
}
