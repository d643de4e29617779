package obj

import (
	"math"
	"testing"

	"github.com/milk9111/folio/common"
)

const epsilon = 1e-6

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

type playerRig struct {
	world *World
	p     *Player
	in    *Input
	ctx   *Context
}

// newPlayerRig puts the player's collision box at (x, y) above a ground box
// spanning {0, 1000, 5000, 500}.
func newPlayerRig(t *testing.T, x, y float64, sounds SoundSource, colliders ...Collider) *playerRig {
	t.Helper()
	p, err := NewPlayer(nil, sounds, "", 0, 0, DefaultPlayerConfig())
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	p.MoveTo(x, y)
	w := NewWorld(NewCamera(1024, 650), p)
	w.RegisterForCollision(NewStaticObject(0, 1000, 5000, 500, 0, 0))
	w.RegisterForCollision(colliders...)
	w.SortRegistries()
	in := NewInput(1024)
	return &playerRig{world: w, p: p, in: in, ctx: &Context{Input: in, Sounds: sounds}}
}

func (r *playerRig) tick() { r.world.Update(r.ctx) }

func (r *playerRig) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 200; i++ {
		r.tick()
		if r.p.OnGround {
			return
		}
	}
	t.Fatalf("player never landed, shape at %v", *r.p.Shape().Position)
}

func TestPlayerLandsOnGround(t *testing.T) {
	r := newPlayerRig(t, 100, 800, nil)
	r.settle(t)

	if got := r.p.Shape().Position.Y; !approxEqual(got, 840) {
		t.Fatalf("shape y = %f, want 840", got)
	}
	if r.p.Velocity.Y != 0 {
		t.Fatalf("vy = %f, want 0", r.p.Velocity.Y)
	}
	if r.p.State() != "idle" {
		t.Fatalf("state = %q, want idle", r.p.State())
	}
}

func TestPlayerRestingOnGroundOneTick(t *testing.T) {
	r := newPlayerRig(t, 100, 840, nil)
	r.tick()

	if !r.p.OnGround {
		t.Fatalf("expected grounded after one tick")
	}
	if r.p.Velocity.Y != 0 {
		t.Fatalf("vy = %f, want 0", r.p.Velocity.Y)
	}
	if got := r.p.Shape().Position.Y; !approxEqual(got, 840) {
		t.Fatalf("shape y = %f, want 840", got)
	}
}

func TestPlayerHeldJumpPinsVelocity(t *testing.T) {
	r := newPlayerRig(t, 100, 840, nil)
	r.settle(t)

	r.in.Set(ActionJump, true)
	for tick := 1; tick <= 20; tick++ {
		r.tick()
		if r.p.Velocity.Y != -10 {
			t.Fatalf("tick %d: vy = %f, want -10", tick, r.p.Velocity.Y)
		}
		if r.p.OnGround {
			t.Fatalf("tick %d: still grounded", tick)
		}
	}

	want := -10.0
	for tick := 21; tick <= 25; tick++ {
		r.tick()
		want += 0.7
		if !approxEqual(r.p.Velocity.Y, want) {
			t.Fatalf("tick %d: vy = %f, want %f", tick, r.p.Velocity.Y, want)
		}
	}
}

func TestPlayerEarlyReleaseCancelsJump(t *testing.T) {
	r := newPlayerRig(t, 100, 840, nil)
	r.settle(t)

	r.in.Set(ActionJump, true)
	for i := 0; i < 5; i++ {
		r.tick()
	}
	r.in.Set(ActionJump, false)
	r.tick()

	if r.p.Jumping() {
		t.Fatalf("release should cancel the jump")
	}
	// velocity is not zeroed, gravity takes over
	if !approxEqual(r.p.Velocity.Y, -10+0.7) {
		t.Fatalf("vy = %f, want %f", r.p.Velocity.Y, -10+0.7)
	}

	// holding again in the air does not restart the jump
	r.in.Set(ActionJump, true)
	r.tick()
	if r.p.Jumping() || !approxEqual(r.p.Velocity.Y, -10+1.4) {
		t.Fatalf("re-press in the air: jumping = %v vy = %f", r.p.Jumping(), r.p.Velocity.Y)
	}
}

func TestPlayerDoesNotStickToCeiling(t *testing.T) {
	// ceiling spans y 600..700, the player's head starts at 725 so the third
	// jump tick overlaps it by 5
	ceiling := NewStaticObject(0, 600, 1000, 100, 0, 0)
	r := newPlayerRig(t, 100, 840, nil)
	r.settle(t)
	r.p.MoveTo(100, 725)
	r.world.collision = nil
	r.world.RegisterForCollision(NewStaticObject(0, 885, 5000, 500, 0, 0), ceiling)
	r.settle(t)

	r.in.Set(ActionJump, true)
	hit := false
	for i := 0; i < 10; i++ {
		r.tick()
		top := r.p.Shape().Top()
		if top < 700-epsilon {
			t.Fatalf("tick %d: head at %f went through the ceiling", i+1, top)
		}
		if approxEqual(top, 700) && !hit {
			hit = true
			if r.p.Velocity.Y != 0 || r.p.Jumping() {
				t.Fatalf("ceiling hit: vy = %f jumping = %v, want 0 false", r.p.Velocity.Y, r.p.Jumping())
			}
			r.tick()
			if r.p.Velocity.Y <= 0 {
				t.Fatalf("player stuck to ceiling, vy = %f", r.p.Velocity.Y)
			}
			if r.p.State() != "falling" {
				t.Fatalf("state = %q, want falling", r.p.State())
			}
			break
		}
	}
	if !hit {
		t.Fatalf("player never reached the ceiling")
	}
}

func TestPlayerHorizontalMovement(t *testing.T) {
	r := newPlayerRig(t, 100, 840, nil)
	r.settle(t)

	r.in.Set(ActionRight, true)
	r.tick()
	if r.p.Velocity.X != 5 {
		t.Fatalf("vx = %f, want 5", r.p.Velocity.X)
	}
	for i := 0; i < 5; i++ {
		r.tick()
	}
	if r.p.Velocity.X != 10 {
		t.Fatalf("vx = %f, want capped at 10", r.p.Velocity.X)
	}
	if r.p.State() != "running" || r.p.Anim.State() != "running" {
		t.Fatalf("state = %q anim = %q, want running", r.p.State(), r.p.Anim.State())
	}

	// opposing keys fall into the friction branch
	r.in.Set(ActionLeft, true)
	r.tick()
	if !approxEqual(r.p.Velocity.X, 6) {
		t.Fatalf("vx = %f, want 6 after friction", r.p.Velocity.X)
	}
	if !r.p.FacingRight {
		t.Fatalf("facing flipped while both keys were held")
	}

	r.in.Set(ActionRight, false)
	r.in.Set(ActionLeft, false)
	for i := 0; i < 20 && r.p.Velocity.X != 0; i++ {
		r.tick()
	}
	if r.p.Velocity.X != 0 {
		t.Fatalf("vx = %f, want snapped to 0", r.p.Velocity.X)
	}
	if r.p.State() != "idle" {
		t.Fatalf("state = %q, want idle", r.p.State())
	}

	r.in.Set(ActionLeft, true)
	r.tick()
	if r.p.Velocity.X != -5 || r.p.FacingRight {
		t.Fatalf("vx = %f facingRight = %v, want -5 false", r.p.Velocity.X, r.p.FacingRight)
	}
}

func TestPlayerWallStopsHorizontal(t *testing.T) {
	wall := NewStaticObject(300, 0, 100, 1000, 0, 0)
	r := newPlayerRig(t, 100, 840, nil, wall)
	r.settle(t)

	r.in.Set(ActionRight, true)
	blocked := false
	for i := 0; i < 60; i++ {
		r.tick()
		if right := r.p.Shape().Right(); right > 300+epsilon {
			t.Fatalf("tick %d: right edge %f inside the wall", i+1, right)
		}
		if r.p.Velocity.X == 0 {
			blocked = true
		}
	}
	if !blocked {
		t.Fatalf("wall never zeroed horizontal velocity")
	}
	if !r.p.OnGround {
		t.Fatalf("pushing into a wall should keep the player grounded")
	}
}

func TestPlayerIgnoresOtherCollisionLayers(t *testing.T) {
	p, err := NewPlayer(nil, nil, "", 0, 0, DefaultPlayerConfig())
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	p.MoveTo(100, 800)
	w := NewWorld(NewCamera(1024, 650), p)
	w.RegisterForCollision(NewStaticObject(0, 1000, 5000, 500, 0, 1))
	ctx := &Context{}
	for i := 0; i < 120; i++ {
		w.Update(ctx)
	}
	if p.OnGround || p.Shape().Top() < 1000 {
		t.Fatalf("player should fall through a collider on another layer, y = %f", p.Shape().Top())
	}
}

func TestPlayerStates(t *testing.T) {
	r := newPlayerRig(t, 100, 840, nil)
	r.settle(t)

	r.in.Set(ActionJump, true)
	r.tick()
	if r.p.State() != "jumping" {
		t.Fatalf("state = %q, want jumping", r.p.State())
	}
	r.in.Set(ActionJump, false)
	for i := 0; i < 40 && r.p.Velocity.Y <= 0; i++ {
		r.tick()
	}
	if r.p.State() != "falling" || r.p.Anim.State() != "falling" {
		t.Fatalf("state = %q anim = %q, want falling", r.p.State(), r.p.Anim.State())
	}
	r.settle(t)
	if r.p.State() != "idle" {
		t.Fatalf("state = %q, want idle after landing", r.p.State())
	}
}

func TestPlayerTrackPoint(t *testing.T) {
	r := newPlayerRig(t, 100, 840, nil)
	r.settle(t)

	c := r.p.Shape().Center()
	if want := (common.Vector{X: c.X + 200, Y: c.Y}); !r.p.Track.Equals(want, epsilon) {
		t.Fatalf("track = %v, want %v", r.p.Track, want)
	}

	r.in.Set(ActionLeft, true)
	r.tick()
	c = r.p.Shape().Center()
	if !approxEqual(r.p.Track.X, c.X-200) {
		t.Fatalf("track x = %f, want %f when facing left", r.p.Track.X, c.X-200)
	}

	r.in.Set(ActionLeft, false)
	r.in.Set(ActionJump, true)
	r.tick()
	c = r.p.Shape().Center()
	if !approxEqual(r.p.Track.Y, c.Y-30) {
		t.Fatalf("track y = %f, want %f while rising", r.p.Track.Y, c.Y-30)
	}
}

func TestPlayerSounds(t *testing.T) {
	jump, steps := &fakeSound{}, &fakeSound{}
	r := newPlayerRig(t, 100, 840, fakeSounds{"jump": jump, "steps": steps})
	r.settle(t)

	r.in.Set(ActionRight, true)
	r.tick()
	if !steps.IsPlaying() {
		t.Fatalf("footsteps should play while running")
	}

	r.in.Set(ActionRight, false)
	for i := 0; i < 20 && r.p.State() == "running"; i++ {
		r.tick()
	}
	if steps.IsPlaying() || steps.pauses == 0 {
		t.Fatalf("footsteps should pause when the player stops")
	}

	r.in.Set(ActionJump, true)
	r.tick()
	r.tick()
	if jump.plays != 1 || jump.rewinds != 1 {
		t.Fatalf("jump plays = %d rewinds = %d, want 1 1", jump.plays, jump.rewinds)
	}
}

func TestPlayerDrawPlaceholderWithoutSheet(t *testing.T) {
	r := newPlayerRig(t, 100, 840, nil)
	s := newFakeSurface(1024, 650)
	r.ctx.Surface = s
	r.world.Draw(r.ctx)
	if s.count("fill") != 1 {
		t.Fatalf("fills = %d, want 1 placeholder", s.count("fill"))
	}
}

func TestPlayerDrawFlipsWhenFacingLeft(t *testing.T) {
	p, err := NewPlayer(fakeImages{"player": fakeImage{440, 700}}, nil, "player", 0, 0, DefaultPlayerConfig())
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	s := newFakeSurface(1024, 650)
	p.FacingRight = false
	p.Draw(&Context{Surface: s})
	if len(s.calls) != 1 || s.calls[0].op == nil || !s.calls[0].op.FlipX {
		t.Fatalf("calls = %+v, want one flipped image", s.calls)
	}
	if got := s.calls[0].src.Dx(); got != 110 {
		t.Fatalf("frame width = %d, want 110", got)
	}
}
