package render

import (
	"image"
	"image/color"
)

// Image is anything with pixel bounds. *ebiten.Image satisfies it.
type Image interface {
	Bounds() image.Rectangle
}

// Rect is a destination rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// DrawOptions tweaks a single DrawImage call. A nil *DrawOptions draws the
// image unflipped and fully opaque.
type DrawOptions struct {
	FlipX bool
	// Fade is 0 for fully opaque and 1 for fully transparent.
	Fade float64
}

// AlphaOf returns the effective alpha for op.
func AlphaOf(op *DrawOptions) float64 {
	if op == nil {
		return 1
	}
	switch {
	case op.Fade <= 0:
		return 1
	case op.Fade >= 1:
		return 0
	}
	return 1 - op.Fade
}

// TextStyle describes how DrawText renders a string.
type TextStyle struct {
	Size  float64
	Color color.Color
}

// Surface is an immediate-mode 2D canvas.
type Surface interface {
	// Clear wipes the whole surface.
	Clear()
	// Size returns the surface size in pixels.
	Size() (int, int)
	// DrawImage draws the src region of img into dst. An empty src means the
	// whole image.
	DrawImage(img Image, src image.Rectangle, dst Rect, op *DrawOptions)
	// DrawText draws s with its top-left corner at (x, y).
	DrawText(s string, x, y float64, style TextStyle)
	// MeasureText returns the rendered width of s.
	MeasureText(s string, style TextStyle) float64
	FillRect(r Rect, c color.Color)
}

// SourceOf returns the effective source rectangle for img.
func SourceOf(img Image, src image.Rectangle) image.Rectangle {
	if src.Empty() {
		return img.Bounds()
	}
	return src
}
