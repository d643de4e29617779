package common

import "math"

// AABB is an axis-aligned box. Position is the top-left corner and is not
// owned: callers may alias an entity's position so the box tracks it.
type AABB struct {
	Position *Vector
	Width    float64
	Height   float64
}

// NewAABB builds a box at pos. Negative sizes are clamped to zero. A nil pos
// gets a fresh vector at the origin.
func NewAABB(pos *Vector, w, h float64) *AABB {
	if pos == nil {
		pos = &Vector{}
	}
	b := &AABB{Position: pos}
	b.SetSize(w, h)
	return b
}

// SetSize updates the dimensions, clamping negatives to zero.
func (b *AABB) SetSize(w, h float64) {
	b.Width = math.Max(0, w)
	b.Height = math.Max(0, h)
}

// SetPosition copies p into the (possibly shared) position vector.
func (b *AABB) SetPosition(p Vector) {
	b.Position.Set(p)
}

func (b *AABB) Left() float64   { return b.Position.X }
func (b *AABB) Right() float64  { return b.Position.X + b.Width }
func (b *AABB) Top() float64    { return b.Position.Y }
func (b *AABB) Bottom() float64 { return b.Position.Y + b.Height }

func (b *AABB) Center() Vector {
	return Vector{X: b.Position.X + b.Width/2, Y: b.Position.Y + b.Height/2}
}

// Translate moves the box in place.
func (b *AABB) Translate(v Vector) *AABB {
	b.Position.Add(v)
	return b
}

func (b *AABB) TranslateXY(x, y float64) *AABB {
	b.Position.AddXY(x, y)
	return b
}

// Intersects is half-open: boxes sharing only an edge do not intersect.
func (b *AABB) Intersects(o *AABB) bool {
	return b.IntersectsRaw(o.Position.X, o.Position.Y, o.Width, o.Height)
}

// IntersectsRaw tests against a box given by its components.
func (b *AABB) IntersectsRaw(x, y, w, h float64) bool {
	return b.Position.X < x+w &&
		b.Position.X+b.Width > x &&
		b.Position.Y < y+h &&
		b.Position.Y+b.Height > y
}

// Contains reports whether o lies entirely inside b.
func (b *AABB) Contains(o *AABB) bool {
	return b.Position.X <= o.Position.X &&
		b.Right() >= o.Right() &&
		b.Position.Y <= o.Position.Y &&
		b.Bottom() >= o.Bottom()
}

// ContainsPoint is inclusive on all edges.
func (b *AABB) ContainsPoint(p Vector) bool {
	return p.X >= b.Position.X &&
		p.X <= b.Right() &&
		p.Y >= b.Position.Y &&
		p.Y <= b.Bottom()
}

// CollisionResolution returns the minimum translation that moves b out of o.
// It returns a zero vector when the boxes do not intersect. Ties between
// penetrations resolve left, right, top, bottom in that order. Neither box
// is modified.
func (b *AABB) CollisionResolution(o *AABB) *Vector {
	res := &Vector{}
	if !b.Intersects(o) {
		return res
	}

	penLeft := b.Right() - o.Position.X
	penRight := o.Right() - b.Position.X
	penTop := b.Bottom() - o.Position.Y
	penBottom := o.Bottom() - b.Position.Y

	minPen := math.Min(math.Min(penLeft, penRight), math.Min(penTop, penBottom))

	switch minPen {
	case penLeft:
		res.X = -penLeft
	case penRight:
		res.X = penRight
	case penTop:
		res.Y = -penTop
	default:
		res.Y = penBottom
	}
	return res
}

// Merge returns the smallest box covering both b and o. The result owns a
// new position vector.
func (b *AABB) Merge(o *AABB) *AABB {
	minX := math.Min(b.Position.X, o.Position.X)
	minY := math.Min(b.Position.Y, o.Position.Y)
	maxX := math.Max(b.Right(), o.Right())
	maxY := math.Max(b.Bottom(), o.Bottom())
	return NewAABB(&Vector{X: minX, Y: minY}, maxX-minX, maxY-minY)
}
