package obj

import (
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/component"
)

// MovingObject travels between two points under a Tween and carries its
// children with it. It doubles as a collider so it can be a moving platform.
type MovingObject struct {
	Node

	Tween *component.Tween
	// HiddenUntilActive keeps the object and its children invisible until
	// the tween first moves it.
	HiddenUntilActive bool

	shape    *common.AABB
	revealed bool
}

func NewMovingObject(start, end common.Vector, w, h, duration float64, oscillate bool, z, collisionZ int) *MovingObject {
	m := &MovingObject{Tween: component.NewTween(start, end, duration, oscillate)}
	m.Position.Set(start)
	m.Z = z
	m.CollisionZ = collisionZ
	m.shape = common.NewAABB(&m.Position, w, h)
	return m
}

func (m *MovingObject) Shape() *common.AABB { return m.shape }

// Revealed reports whether the tween has moved the object yet.
func (m *MovingObject) Revealed() bool { return m.revealed }

// Activate starts (or replays) the tween regardless of its predicate.
func (m *MovingObject) Activate() { m.Tween.Activate() }

func (m *MovingObject) Update(ctx *Context) {
	prev := m.Position
	if m.Tween.Step(ctx.Dt, &m.Position) {
		m.revealed = true
		delta := m.Position
		delta.Sub(prev)
		m.notifyChildren(delta)
	}
	m.Node.Update(ctx)
}

func (m *MovingObject) Draw(ctx *Context) {
	if m.HiddenUntilActive && !m.revealed {
		return
	}
	m.Node.Draw(ctx)
}

// IntersectsCamera tests the object's rectangle, so children stay drawn
// while any part of it is on screen.
func (m *MovingObject) IntersectsCamera(cam *Camera) bool {
	return cam.Shape.Intersects(m.shape)
}

// ParentMoved shifts the whole path, so a mover nested in another mover
// keeps its relative motion.
func (m *MovingObject) ParentMoved(delta common.Vector) {
	m.Position.Add(delta)
	m.Tween.Start.Add(delta)
	m.Tween.End.Add(delta)
	m.notifyChildren(delta)
}
