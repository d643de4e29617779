package obj

import (
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/component"
)

// TriggerZone is an invisible region that runs an action while its
// condition holds. The condition usually tests whether the player is inside.
type TriggerZone struct {
	Node

	Trigger component.Trigger

	shape *common.AABB
}

func NewTriggerZone(x, y, w, h float64, z int) *TriggerZone {
	t := &TriggerZone{}
	t.Position.SetXY(x, y)
	t.Z = z
	t.shape = common.NewAABB(&t.Position, w, h)
	return t
}

func (t *TriggerZone) Shape() *common.AABB { return t.shape }

// Contains reports whether b overlaps the zone.
func (t *TriggerZone) Contains(b *common.AABB) bool {
	return b != nil && t.shape.Intersects(b)
}

// PlayerInside is a ready-made condition for zones that react to the player.
func (t *TriggerZone) PlayerInside(w *World) component.Predicate {
	return func() bool {
		return w != nil && w.Player != nil && t.Contains(w.Player.Shape())
	}
}

func (t *TriggerZone) Update(ctx *Context) {
	t.Trigger.Check()
	t.Node.Update(ctx)
}

// Draw is a no-op: zones have no visual.
func (t *TriggerZone) Draw(*Context) {}

func (t *TriggerZone) IntersectsCamera(cam *Camera) bool {
	return cam.Shape.Intersects(t.shape)
}
