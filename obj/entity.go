package obj

import (
	"slices"

	"github.com/milk9111/folio/common"
)

// Entity is anything the world can update, draw and cull.
type Entity interface {
	Update(ctx *Context)
	Draw(ctx *Context)
	IntersectsCamera(cam *Camera) bool
	ZIndex() int
	CollisionZIndex() int
}

// Collider is an entity the player resolves collisions against.
type Collider interface {
	Entity
	Shape() *common.AABB
}

// ParentFollower is notified when the entity owning it moves.
type ParentFollower interface {
	ParentMoved(delta common.Vector)
}

// Destroyer releases an entity and everything it owns.
type Destroyer interface {
	Destroy()
	Destroyed() bool
}

// Node is the plain scene-graph record embedded by concrete entities. It
// exclusively owns its children but not their positions: children that need
// to stay attached track their parent through ParentMoved.
type Node struct {
	Position   common.Vector
	Z          int
	CollisionZ int

	children  []Entity
	destroyed bool
}

func (n *Node) ZIndex() int          { return n.Z }
func (n *Node) CollisionZIndex() int { return n.CollisionZ }

// Add appends children in order.
func (n *Node) Add(children ...Entity) {
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
}

// Remove drops the given children without destroying them.
func (n *Node) Remove(children ...Entity) {
	n.children = slices.DeleteFunc(n.children, func(c Entity) bool {
		return slices.Contains(children, c)
	})
}

// Clear drops all children without destroying them.
func (n *Node) Clear() {
	clear(n.children)
	n.children = n.children[:0]
}

// Children returns the live child slice. Callers must not retain it across
// Add/Remove.
func (n *Node) Children() []Entity {
	return n.children
}

// Destroy destroys every owned child, then the node itself.
func (n *Node) Destroy() {
	for _, c := range n.children {
		if d, ok := c.(Destroyer); ok {
			d.Destroy()
		}
	}
	n.Clear()
	n.destroyed = true
}

func (n *Node) Destroyed() bool { return n.destroyed }

// Update fans out to children.
func (n *Node) Update(ctx *Context) {
	for _, c := range n.children {
		c.Update(ctx)
	}
}

// Draw fans out to children that are on camera.
func (n *Node) Draw(ctx *Context) {
	cam := ctx.Camera()
	for _, c := range n.children {
		if cam != nil && !c.IntersectsCamera(cam) {
			continue
		}
		c.Draw(ctx)
	}
}

// IntersectsCamera tests the node position against the viewport.
func (n *Node) IntersectsCamera(cam *Camera) bool {
	return cam.Shape.ContainsPoint(n.Position)
}

// ParentMoved is a no-op for bare nodes.
func (n *Node) ParentMoved(common.Vector) {}

// notifyChildren forwards a parent displacement to children that follow.
func (n *Node) notifyChildren(delta common.Vector) {
	if delta.IsZero() {
		return
	}
	for _, c := range n.children {
		if f, ok := c.(ParentFollower); ok {
			f.ParentMoved(delta)
		}
	}
}
