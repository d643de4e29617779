package obj

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/component"
)

// DefaultFollowSpeed is the fraction of the remaining distance the camera
// closes each tick.
const DefaultFollowSpeed = 0.1

// shakeSpread is the width of the horizontal shake jitter, centred on zero.
const shakeSpread = 15

// Camera is the viewport into the world. It smoothly follows a target point
// per axis and is optionally clamped to world bounds.
type Camera struct {
	// Shape is the viewport rectangle in world space.
	Shape *common.AABB
	// Target is the followed point, normally the player's tracking point.
	Target *common.Vector

	FollowX bool
	FollowY bool
	EaseX   component.EaseFunc
	EaseY   component.EaseFunc

	followSpeedX float64
	followSpeedY float64
	bounds       *cp.BB
	speed        common.Vector
	rng          *rand.Rand
}

// NewCamera creates a w x h viewport at the origin following on both axes.
func NewCamera(w, h float64) *Camera {
	return &Camera{
		Shape:        common.NewAABB(nil, w, h),
		FollowX:      true,
		FollowY:      true,
		EaseX:        component.Linear,
		EaseY:        component.Linear,
		followSpeedX: DefaultFollowSpeed,
		followSpeedY: DefaultFollowSpeed,
	}
}

func (c *Camera) Width() float64  { return c.Shape.Width }
func (c *Camera) Height() float64 { return c.Shape.Height }

// Position returns the viewport top-left.
func (c *Camera) Position() common.Vector { return *c.Shape.Position }

// SetTarget points the camera at p. A nil target freezes the camera.
func (c *Camera) SetTarget(p *common.Vector) { c.Target = p }

// SetFollowSpeed sets both axis speeds, clamped to [0, 1].
func (c *Camera) SetFollowSpeed(x, y float64) {
	c.followSpeedX = cp.Clamp01(x)
	c.followSpeedY = cp.Clamp01(y)
}

func (c *Camera) FollowSpeed() (float64, float64) {
	return c.followSpeedX, c.followSpeedY
}

// SetBounds limits the viewport to [minX, maxX] x [minY, maxY].
func (c *Camera) SetBounds(minX, minY, maxX, maxY float64) {
	c.bounds = &cp.BB{L: minX, B: minY, R: maxX, T: maxY}
	c.clamp()
}

// ClearBounds makes the camera unbounded.
func (c *Camera) ClearBounds() { c.bounds = nil }

// Bounds returns the world bounds and whether any are set.
func (c *Camera) Bounds() (cp.BB, bool) {
	if c.bounds == nil {
		return cp.BB{}, false
	}
	return *c.bounds, true
}

// SetRand replaces the shake random source, mainly for tests.
func (c *Camera) SetRand(r *rand.Rand) { c.rng = r }

// Speed returns the displacement of the last Update.
func (c *Camera) Speed() common.Vector { return c.speed }

// Update moves the viewport toward the target and clamps it to the bounds.
func (c *Camera) Update() {
	if c.Target == nil {
		c.speed = common.Vector{}
		return
	}
	prev := *c.Shape.Position
	dx, dy := c.desired()
	pos := c.Shape.Position
	if c.FollowX {
		pos.X += (dx - pos.X) * applyEase(c.EaseX, c.followSpeedX)
	}
	if c.FollowY {
		pos.Y += (dy - pos.Y) * applyEase(c.EaseY, c.followSpeedY)
	}
	c.clamp()
	c.speed = *pos
	c.speed.Sub(prev)
}

// Snap jumps straight to the target without smoothing.
func (c *Camera) Snap() {
	if c.Target == nil {
		return
	}
	dx, dy := c.desired()
	c.Shape.Position.SetXY(dx, dy)
	c.clamp()
	c.speed = common.Vector{}
}

// Shake jitters the viewport horizontally by a whole number of pixels in
// [-7, 7]. The following Update pulls it back.
func (c *Camera) Shake() {
	var n int
	if c.rng != nil {
		n = c.rng.IntN(shakeSpread)
	} else {
		n = rand.IntN(shakeSpread)
	}
	c.Shape.Position.X += float64(n - shakeSpread/2)
}

// WorldToScreen maps a world point to viewport pixels.
func (c *Camera) WorldToScreen(p common.Vector) (float64, float64) {
	return p.X - c.Shape.Position.X, p.Y - c.Shape.Position.Y
}

func (c *Camera) desired() (float64, float64) {
	return c.Target.X - c.Shape.Width/2, c.Target.Y - c.Shape.Height/2
}

func (c *Camera) clamp() {
	if c.bounds == nil {
		return
	}
	b := c.bounds
	pos := c.Shape.Position
	pos.X = math.Max(b.L, math.Min(b.R-c.Shape.Width, pos.X))
	pos.Y = math.Max(b.B, math.Min(b.T-c.Shape.Height, pos.Y))
}

func applyEase(fn component.EaseFunc, t float64) float64 {
	if fn == nil {
		return t
	}
	return fn(t)
}
