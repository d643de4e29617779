package obj

import (
	"image/color"

	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/render"
)

// StaticObject is a solid rectangle the player collides with: ground,
// platforms and walls. Its shape shares the node position.
type StaticObject struct {
	Node

	shape *common.AABB
	// Fill paints the shape when set. Most level geometry is invisible and
	// drawn by its sprite children instead.
	Fill color.Color
}

func NewStaticObject(x, y, w, h float64, z, collisionZ int) *StaticObject {
	o := &StaticObject{}
	o.Position.SetXY(x, y)
	o.Z = z
	o.CollisionZ = collisionZ
	o.shape = common.NewAABB(&o.Position, w, h)
	return o
}

func (o *StaticObject) Shape() *common.AABB { return o.shape }

func (o *StaticObject) Draw(ctx *Context) {
	if o.Fill != nil {
		cx, cy := ctx.cameraOffset()
		ctx.Surface.FillRect(render.Rect{
			X: o.Position.X - cx,
			Y: o.Position.Y - cy,
			W: o.shape.Width,
			H: o.shape.Height,
		}, o.Fill)
	}
	o.Node.Draw(ctx)
}

func (o *StaticObject) IntersectsCamera(cam *Camera) bool {
	return cam.Shape.Intersects(o.shape)
}

// SimpleObject is a StaticObject that drifts by a constant velocity every
// tick, carrying its children along.
type SimpleObject struct {
	StaticObject

	Velocity common.Vector
}

func NewSimpleObject(x, y, w, h float64, z, collisionZ int, velocity common.Vector) *SimpleObject {
	o := &SimpleObject{Velocity: velocity}
	o.Position.SetXY(x, y)
	o.Z = z
	o.CollisionZ = collisionZ
	o.shape = common.NewAABB(&o.Position, w, h)
	return o
}

func (o *SimpleObject) Update(ctx *Context) {
	o.Position.Add(o.Velocity)
	o.notifyChildren(o.Velocity)
	o.Node.Update(ctx)
}
