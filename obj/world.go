package obj

import (
	"cmp"
	"log"
	"runtime/debug"
	"slices"
)

// World owns the registries, the player and the camera, and runs one tick
// at a time: updates, player, camera, then a draw split around the player's
// z-index.
type World struct {
	Camera *Camera
	Player *Player

	draw      []Entity
	update    []Entity
	collision []Collider

	frame int
	// Debug logs stack traces of recovered panics.
	Debug bool
}

func NewWorld(cam *Camera, player *Player) *World {
	w := &World{Camera: cam, Player: player}
	if cam != nil && player != nil && cam.Target == nil {
		cam.SetTarget(&player.Track)
	}
	return w
}

func (w *World) RegisterForDraw(es ...Entity) {
	w.draw = appendEntities(w.draw, es)
}

func (w *World) RegisterForUpdate(es ...Entity) {
	w.update = appendEntities(w.update, es)
}

func (w *World) RegisterForCollision(cs ...Collider) {
	for _, c := range cs {
		if c != nil {
			w.collision = append(w.collision, c)
		}
	}
}

// SortRegistries orders the draw registry by z-index and the update and
// collision registries by collision z-index. Equal keys keep insertion order.
func (w *World) SortRegistries() {
	slices.SortStableFunc(w.draw, func(a, b Entity) int {
		return cmp.Compare(a.ZIndex(), b.ZIndex())
	})
	slices.SortStableFunc(w.update, func(a, b Entity) int {
		return cmp.Compare(a.CollisionZIndex(), b.CollisionZIndex())
	})
	slices.SortStableFunc(w.collision, func(a, b Collider) int {
		return cmp.Compare(a.CollisionZIndex(), b.CollisionZIndex())
	})
}

func (w *World) Colliders() []Collider { return w.collision }

func (w *World) DrawList() []Entity { return w.draw }

func (w *World) UpdateList() []Entity { return w.update }

// Frame returns the number of completed ticks.
func (w *World) Frame() int { return w.frame }

// Update runs one simulation tick.
func (w *World) Update(ctx *Context) {
	ctx.World = w
	if ctx.Dt <= 0 {
		ctx.Dt = DefaultDt
	}
	ctx.Frame = w.frame

	for _, e := range w.update {
		if isDestroyed(e) {
			continue
		}
		w.guard("update", e, func() { e.Update(ctx) })
	}
	if w.Player != nil {
		w.guard("update", w.Player, func() { w.Player.Update(ctx) })
	}
	if w.Camera != nil {
		w.Camera.Update()
	}
	w.prune()
	w.frame++
}

// Draw clears the surface and renders everything on camera.
func (w *World) Draw(ctx *Context) {
	ctx.World = w
	if ctx.Surface == nil {
		return
	}
	ctx.Surface.Clear()

	if w.Player == nil {
		w.drawPass(ctx, func(Entity) bool { return true })
		return
	}
	pz := w.Player.ZIndex()
	w.drawPass(ctx, func(e Entity) bool { return e.ZIndex() <= pz })
	w.guard("draw", w.Player, func() { w.Player.Draw(ctx) })
	w.drawPass(ctx, func(e Entity) bool { return e.ZIndex() > pz })
}

// drawPass draws, in registry order, the members accepted by in.
func (w *World) drawPass(ctx *Context, in func(Entity) bool) {
	for _, e := range w.draw {
		if !in(e) || isDestroyed(e) {
			continue
		}
		if w.Camera != nil && !w.Camera.visible(e) {
			continue
		}
		w.guard("draw", e, func() { e.Draw(ctx) })
	}
}

// guard isolates a panicking entity so the rest of the frame completes.
func (w *World) guard(phase string, e Entity, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("world: %s %T: %v", phase, e, r)
			if w.Debug {
				log.Printf("%s", debug.Stack())
			}
		}
	}()
	fn()
}

// prune drops destroyed entities from every registry.
func (w *World) prune() {
	dead := func(e Entity) bool { return isDestroyed(e) }
	w.draw = slices.DeleteFunc(w.draw, dead)
	w.update = slices.DeleteFunc(w.update, dead)
	w.collision = slices.DeleteFunc(w.collision, func(c Collider) bool { return isDestroyed(c) })
}

func appendEntities(dst []Entity, es []Entity) []Entity {
	for _, e := range es {
		if e != nil {
			dst = append(dst, e)
		}
	}
	return dst
}

func isDestroyed(e Entity) bool {
	d, ok := e.(Destroyer)
	return ok && d.Destroyed()
}

// visible runs the entity's culling test, treating a panic as not visible.
func (c *Camera) visible(e Entity) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("world: cull %T: %v", e, r)
			ok = false
		}
	}()
	return e.IntersectsCamera(c)
}
