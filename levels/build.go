package levels

import (
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/component"
	"github.com/milk9111/folio/obj"
)

// Deps are the collaborators a world is built against.
type Deps struct {
	Images obj.ImageSource
	Sounds obj.SoundSource
	// Rand drives camera shake. Nil uses the global source.
	Rand *rand.Rand
}

// parent is any entity that can own children.
type parent interface {
	obj.Entity
	Add(children ...obj.Entity)
}

type builder struct {
	deps  Deps
	world *obj.World

	ids     map[string]bool
	movers  map[string]*obj.MovingObject
	pending []func() error
}

// Build turns a world description into a ready-to-tick world with sorted
// registries and the camera snapped onto the player.
func Build(spec *World, deps Deps) (*obj.World, error) {
	if spec == nil {
		return nil, fmt.Errorf("levels: nil world")
	}

	cfg, err := spec.Player.PlayerConfig()
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	player, err := obj.NewPlayer(deps.Images, deps.Sounds, spec.Player.Sheet, spec.Player.X, spec.Player.Y, cfg)
	if err != nil {
		return nil, fmt.Errorf("levels: player: %w", err)
	}
	player.Z = spec.Player.Z
	player.CollisionZ = spec.Player.CollisionZ

	cam, err := buildCamera(spec)
	if err != nil {
		return nil, err
	}
	if deps.Rand != nil {
		cam.SetRand(deps.Rand)
	}

	b := &builder{
		deps:   deps,
		world:  obj.NewWorld(cam, player),
		ids:    make(map[string]bool),
		movers: make(map[string]*obj.MovingObject),
	}
	for i := range spec.Objects {
		o := &spec.Objects[i]
		e, err := b.build(o, common.Vector{})
		if err != nil {
			return nil, fmt.Errorf("levels: object %s: %w", label(o, i), err)
		}
		if o.Kind != KindTrigger {
			b.world.RegisterForDraw(e)
		}
		b.world.RegisterForUpdate(e)
	}
	for _, resolve := range b.pending {
		if err := resolve(); err != nil {
			return nil, fmt.Errorf("levels: %w", err)
		}
	}

	b.world.SortRegistries()
	cam.Snap()
	return b.world, nil
}

func label(o *ObjectSpec, i int) string {
	if o.ID != "" {
		return fmt.Sprintf("%q", o.ID)
	}
	return fmt.Sprintf("#%d (%s)", i, o.Kind)
}

func buildCamera(spec *World) (*obj.Camera, error) {
	c := spec.Camera
	cam := obj.NewCamera(spec.Viewport.Width, spec.Viewport.Height)

	sx, sy := cam.FollowSpeed()
	if c.FollowSpeedX != nil {
		sx = *c.FollowSpeedX
	}
	if c.FollowSpeedY != nil {
		sy = *c.FollowSpeedY
	}
	cam.SetFollowSpeed(sx, sy)

	var err error
	if cam.EaseX, err = component.EasingByName(c.EaseX); err != nil {
		return nil, fmt.Errorf("levels: camera ease_x: %w", err)
	}
	if cam.EaseY, err = component.EasingByName(c.EaseY); err != nil {
		return nil, fmt.Errorf("levels: camera ease_y: %w", err)
	}
	if c.FollowX != nil {
		cam.FollowX = *c.FollowX
	}
	if c.FollowY != nil {
		cam.FollowY = *c.FollowY
	}
	if bb := spec.Bounds; bb != nil {
		cam.SetBounds(bb.MinX, bb.MinY, bb.MaxX, bb.MaxY)
	}
	return cam, nil
}

// build creates o and its children. origin is the parent position.
func (b *builder) build(o *ObjectSpec, origin common.Vector) (obj.Entity, error) {
	if o.ID != "" {
		if b.ids[o.ID] {
			return nil, fmt.Errorf("duplicate id")
		}
		b.ids[o.ID] = true
	}
	x, y := origin.X+o.X, origin.Y+o.Y

	var (
		e   parent
		err error
	)
	switch o.Kind {
	case KindSprite:
		e = obj.NewSprite(b.deps.Images, o.Image, x, y, o.Z)
	case KindParallax:
		e = obj.NewParallaxLayer(b.deps.Images, o.Image, x, y, o.Z, floatOr(o.SpeedX, 1), floatOr(o.SpeedY, 1), o.RepeatX, o.RepeatY)
	case KindAnimation:
		e, err = b.animation(o, x, y)
	case KindBanner:
		bn := obj.NewBanner(b.deps.Images, o.Image, o.Text, x, y, o.Z, o.Width, o.Height)
		bn.Color = colorOr(o.Color, color.White)
		bn.FadeOnShow = o.Fade
		e = bn
	case KindPanel:
		e = obj.NewTextPanel(o.Text, o.Subtitle, o.Lines, x, y, o.Z)
	case KindBlink:
		size := o.FontSize
		if size <= 0 {
			size = DefaultBlinkSize
		}
		t := obj.NewBlinkText(o.Text, x, y, o.Z, size)
		t.Color = colorOr(o.Color, t.Color)
		e = t
	case KindPlatform:
		p := obj.NewStaticObject(x, y, o.Width, o.Height, o.Z, o.CollisionZ)
		p.Fill = colorOr(o.Color, nil)
		b.world.RegisterForCollision(p)
		e = p
	case KindMover:
		m := obj.NewSimpleObject(x, y, o.Width, o.Height, o.Z, o.CollisionZ, common.Vector{X: o.VX, Y: o.VY})
		m.Fill = colorOr(o.Color, nil)
		b.world.RegisterForCollision(m)
		e = m
	case KindMoving:
		e, err = b.moving(o, origin, x, y)
	case KindTrigger:
		e, err = b.trigger(o, x, y)
	default:
		return nil, fmt.Errorf("unknown kind %q", o.Kind)
	}
	if err != nil {
		return nil, err
	}

	pos := common.Vector{X: x, Y: y}
	for i := range o.Children {
		c := &o.Children[i]
		child, err := b.build(c, pos)
		if err != nil {
			return nil, fmt.Errorf("child %s: %w", label(c, i), err)
		}
		e.Add(child)
	}
	return e, nil
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func (b *builder) animation(o *ObjectSpec, x, y float64) (*obj.AnimatedSprite, error) {
	s, err := obj.NewAnimatedSprite(b.deps.Images, o.Image, x, y, o.Z, o.FrameW, o.FrameH, o.Frames, o.Stagger)
	if err != nil {
		return nil, err
	}
	for _, st := range o.States {
		if err := s.Anim.AddState(st.Name, st.Row, st.Frames); err != nil {
			return nil, err
		}
	}
	if len(o.States) > 0 {
		s.Anim.SetState(o.States[0].Name)
	}
	return s, nil
}

// moving builds a tweened object. An image becomes a child drawn at the
// object's position, animated when frames is set; the object takes the
// image size unless width and height are given. Both ends of the path are
// relative to origin.
func (b *builder) moving(o *ObjectSpec, origin common.Vector, x, y float64) (*obj.MovingObject, error) {
	t := o.Tween
	if t == nil {
		return nil, fmt.Errorf("moving object needs a tween")
	}
	ease, err := component.EasingByName(t.Ease)
	if err != nil {
		return nil, err
	}

	var visual parent
	if o.Image != "" {
		if o.Frames > 0 {
			a, err := obj.NewAnimatedSprite(b.deps.Images, o.Image, x, y, o.Z, o.FrameW, o.FrameH, o.Frames, o.Stagger)
			if err != nil {
				return nil, err
			}
			visual = a
		} else {
			visual = obj.NewSprite(b.deps.Images, o.Image, x, y, o.Z)
		}
	}

	w, h := o.Width, o.Height
	if visual != nil && (w <= 0 || h <= 0) {
		switch v := visual.(type) {
		case *obj.AnimatedSprite:
			w, h = v.Width, v.Height
		case *obj.Sprite:
			w, h = v.Width, v.Height
		}
	}

	m := obj.NewMovingObject(common.Vector{X: x, Y: y}, common.Vector{X: origin.X + t.ToX, Y: origin.Y + t.ToY},
		w, h, t.Duration, t.Oscillate, o.Z, o.CollisionZ)
	m.Tween.Ease = ease
	m.HiddenUntilActive = t.HiddenUntilActive
	if visual != nil {
		m.Add(visual)
	}
	if t.When != "" {
		cond, err := CompileCondition(t.When)
		if err != nil {
			return nil, err
		}
		m.Tween.ShouldActivate = b.predicate(cond, m.Shape())
	}
	if o.Solid {
		b.world.RegisterForCollision(m)
	}
	if o.ID != "" {
		b.movers[o.ID] = m
	}
	return m, nil
}

// trigger builds a zone. Without a condition it fires while the player is
// inside.
func (b *builder) trigger(o *ObjectSpec, x, y float64) (*obj.TriggerZone, error) {
	ts := o.Trigger
	if ts == nil {
		return nil, fmt.Errorf("trigger zone needs a trigger")
	}
	z := obj.NewTriggerZone(x, y, o.Width, o.Height, o.Z)
	z.Trigger.Once = ts.Once
	if ts.When != "" {
		cond, err := CompileCondition(ts.When)
		if err != nil {
			return nil, err
		}
		z.Trigger.When = b.predicate(cond, z.Shape())
	} else {
		z.Trigger.When = z.PlayerInside(b.world)
	}

	switch ts.Action {
	case ActionShake:
		z.Trigger.Action = func() {
			if b.world.Camera != nil {
				b.world.Camera.Shake()
			}
		}
	case ActionPlay:
		if ts.Sound == "" {
			return nil, fmt.Errorf("play action needs a sound")
		}
		z.Trigger.Action = func() { b.play(ts.Sound) }
	case ActionActivate:
		target := ts.Target
		b.pending = append(b.pending, func() error {
			m, ok := b.movers[target]
			if !ok {
				return fmt.Errorf("trigger target %q is not a moving object", target)
			}
			z.Trigger.Action = m.Activate
			return nil
		})
	default:
		return nil, fmt.Errorf("unknown trigger action %q", ts.Action)
	}
	return z, nil
}

func (b *builder) play(id string) {
	if b.deps.Sounds == nil {
		return
	}
	snd, ok := b.deps.Sounds.Sound(id)
	if !ok {
		return
	}
	if err := snd.Rewind(); err != nil {
		log.Printf("levels: rewind %q: %v", id, err)
	}
	snd.Play()
}

// predicate binds a condition to live world state. shape decides the
// inside variable.
func (b *builder) predicate(cond *Condition, shape *common.AABB) component.Predicate {
	return func() bool {
		return cond.Eval(b.env(shape))
	}
}

func (b *builder) env(shape *common.AABB) Env {
	w := b.world
	env := Env{Frame: w.Frame(), Active: make(map[string]bool, len(b.movers))}
	for id, m := range b.movers {
		env.Active[id] = m.Tween.Active()
	}
	if p := w.Player; p != nil {
		env.PlayerX, env.PlayerY = p.Position.X, p.Position.Y
		env.Inside = shape != nil && shape.Intersects(p.Shape())
	}
	if c := w.Camera; c != nil {
		pos := c.Position()
		env.CameraX, env.CameraY = pos.X, pos.Y
	}
	return env
}
