package obj

import (
	"log"
	"math"

	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/component"
	"github.com/milk9111/folio/render"
	"golang.org/x/image/colornames"
)

// playerState is implemented by each animation/audio state. States are
// derived from physics every tick, never chosen by input directly.
type playerState interface {
	Enter(p *Player)
	Exit(p *Player)
	Name() string
}

type idleState struct{}

func (idleState) Name() string    { return "idle" }
func (idleState) Enter(p *Player) { p.Anim.SetState("idle") }
func (idleState) Exit(p *Player)  {}

type runningState struct{}

func (runningState) Name() string { return "running" }
func (runningState) Enter(p *Player) {
	p.Anim.SetState("running")
	p.playStep()
}
func (runningState) Exit(p *Player) {
	if p.stepSound != nil && p.stepSound.IsPlaying() {
		p.stepSound.Pause()
	}
}

type jumpingState struct{}

func (jumpingState) Name() string    { return "jumping" }
func (jumpingState) Enter(p *Player) { p.Anim.SetState("jumping") }
func (jumpingState) Exit(p *Player)  {}

type fallingState struct{}

func (fallingState) Name() string    { return "falling" }
func (fallingState) Enter(p *Player) { p.Anim.SetState("falling") }
func (fallingState) Exit(p *Player)  {}

// singletons for each state to avoid allocating on every transition
var (
	stateIdle    playerState = &idleState{}
	stateRunning playerState = &runningState{}
	stateJumping playerState = &jumpingState{}
	stateFalling playerState = &fallingState{}
)

// PlayerConfig holds the movement tuning and sprite layout.
type PlayerConfig struct {
	// FrameWidth and FrameHeight are the sprite sheet cell size. The sheet
	// has one row per state in the order idle, running, jumping, falling.
	FrameWidth  int
	FrameHeight int
	Frames      [4]int
	Stagger     int

	// ShapeOffset places the collision box relative to the sprite origin.
	ShapeOffset common.Vector
	ShapeWidth  float64
	ShapeHeight float64

	Acceleration float64
	MaxSpeed     float64
	Friction     float64
	StopEpsilon  float64
	// RunThreshold is the horizontal speed above which a grounded player runs.
	RunThreshold float64
	Gravity      float64
	MaxFall      float64
	JumpSpeed    float64
	MaxJumpTime  int

	// LookAhead shifts the camera tracking point toward the facing side.
	LookAhead float64
	LookUp    float64
	LookDown  float64

	JumpSound string
	StepSound string
}

// DefaultPlayerConfig is the tuning of the résumé world.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		FrameWidth:   110,
		FrameHeight:  175,
		Frames:       [4]int{4, 4, 4, 4},
		Stagger:      10,
		ShapeOffset:  common.Vector{X: 22, Y: 15},
		ShapeWidth:   65,
		ShapeHeight:  160,
		Acceleration: 5,
		MaxSpeed:     10,
		Friction:     0.6,
		StopEpsilon:  0.2,
		RunThreshold: 0,
		Gravity:      0.7,
		MaxFall:      20,
		JumpSpeed:    -10,
		MaxJumpTime:  20,
		LookAhead:    200,
		LookUp:       30,
		LookDown:     50,
		JumpSound:    "jump",
		StepSound:    "steps",
	}
}

// Player is the kinematic character controller.
type Player struct {
	Node

	Config   PlayerConfig
	Velocity common.Vector
	// Track is the point the camera follows.
	Track       common.Vector
	FacingRight bool
	OnGround    bool
	Anim        *component.Animation

	SheetID string
	sheet   render.Image

	shapePos common.Vector
	shape    *common.AABB

	jumping     bool
	jumpTimer   int
	jumpStarted bool

	state     playerState
	jumpSound Sound
	stepSound Sound
	warned    map[string]bool
}

// NewPlayer places the sprite origin at (x, y). A missing sheet draws a
// placeholder box; missing sounds are skipped.
func NewPlayer(images ImageSource, sounds SoundSource, sheetID string, x, y float64, cfg PlayerConfig) (*Player, error) {
	anim := component.NewAnimation(cfg.Stagger)
	for i, s := range []playerState{stateIdle, stateRunning, stateJumping, stateFalling} {
		if err := anim.AddState(s.Name(), i, cfg.Frames[i]); err != nil {
			return nil, err
		}
	}

	p := &Player{
		Config:      cfg,
		FacingRight: true,
		Anim:        anim,
		SheetID:     sheetID,
		sheet:       lookupImage(images, sheetID),
		jumpSound:   lookupSound(sounds, cfg.JumpSound),
		stepSound:   lookupSound(sounds, cfg.StepSound),
		warned:      make(map[string]bool),
		state:       stateIdle,
	}
	p.Position.SetXY(x, y)
	p.shapePos = p.Position
	p.shapePos.Add(cfg.ShapeOffset)
	p.shape = common.NewAABB(&p.shapePos, cfg.ShapeWidth, cfg.ShapeHeight)
	if p.sheet == nil {
		p.warnOnce("sheet", "player: sprite sheet %q not found, drawing placeholder", sheetID)
	}
	p.updateTrack()
	return p, nil
}

// Shape returns the collision box.
func (p *Player) Shape() *common.AABB { return p.shape }

// State returns the current state name.
func (p *Player) State() string { return p.state.Name() }

// Jumping reports whether a held jump is still lifting the player.
func (p *Player) Jumping() bool { return p.jumping }

// JumpTimer returns how many ticks the current jump has been held.
func (p *Player) JumpTimer() int { return p.jumpTimer }

// MoveTo places the collision box top-left at (x, y).
func (p *Player) MoveTo(x, y float64) {
	p.shapePos.SetXY(x, y)
	p.Position = p.shapePos
	p.Position.Sub(p.Config.ShapeOffset)
	p.updateTrack()
}

// Translate moves sprite and shape together.
func (p *Player) Translate(v common.Vector) {
	p.Position.Add(v)
	p.shapePos.Add(v)
}

func (p *Player) Update(ctx *Context) {
	p.jumpStarted = false

	p.moveHorizontal(ctx.Held(ActionLeft), ctx.Held(ActionRight))
	p.moveVertical(ctx.Held(ActionJump))

	p.Translate(p.Velocity)
	p.resolveCollisions(ctx.World)

	p.setState(p.deriveState())
	p.Anim.Update()

	if p.jumpStarted {
		p.playJump()
	}
	if p.state == stateRunning {
		p.playStep()
	}

	p.updateTrack()
}

func (p *Player) moveHorizontal(left, right bool) {
	cfg := p.Config
	switch {
	case right && !left:
		p.FacingRight = true
		p.Velocity.X = math.Min(p.Velocity.X+cfg.Acceleration, cfg.MaxSpeed)
	case left && !right:
		p.FacingRight = false
		p.Velocity.X = math.Max(p.Velocity.X-cfg.Acceleration, -cfg.MaxSpeed)
	default:
		if math.Abs(p.Velocity.X) < cfg.StopEpsilon {
			p.Velocity.X = 0
		} else {
			p.Velocity.X *= cfg.Friction
		}
	}
}

func (p *Player) moveVertical(jumpHeld bool) {
	cfg := p.Config
	if jumpHeld && p.OnGround {
		p.jumping = true
		p.jumpTimer = 0
		p.OnGround = false
		p.jumpStarted = true
	}
	if !jumpHeld {
		p.jumping = false
	}

	p.Velocity.Y = math.Min(p.Velocity.Y+cfg.Gravity, cfg.MaxFall)

	// a held jump pins the upward speed until the hold time runs out
	if p.jumping && p.jumpTimer < cfg.MaxJumpTime {
		p.Velocity.Y = cfg.JumpSpeed
		p.jumpTimer++
	}
}

// resolveCollisions pushes the player out of every collider on its collision
// layer, applying each correction immediately.
func (p *Player) resolveCollisions(w *World) {
	p.OnGround = false
	if w == nil {
		return
	}
	for _, c := range w.Colliders() {
		if c.CollisionZIndex() != p.CollisionZ {
			continue
		}
		res := p.shape.CollisionResolution(c.Shape())
		if res.IsZero() {
			continue
		}
		p.Translate(*res)
		switch {
		case res.Y < 0:
			p.OnGround = true
			p.Velocity.Y = 0
			p.jumping = false
		case res.Y > 0:
			// ceiling: stop rising and let gravity take over
			p.Velocity.Y = 0
			p.jumping = false
		}
		if res.X != 0 {
			p.Velocity.X = 0
		}
	}
}

func (p *Player) deriveState() playerState {
	switch {
	case !p.OnGround && p.Velocity.Y < 0:
		return stateJumping
	case !p.OnGround:
		return stateFalling
	case math.Abs(p.Velocity.X) > p.Config.RunThreshold:
		return stateRunning
	}
	return stateIdle
}

func (p *Player) setState(s playerState) {
	if s == p.state {
		return
	}
	p.state.Exit(p)
	p.state = s
	p.state.Enter(p)
}

func (p *Player) updateTrack() {
	c := p.shape.Center()
	if p.FacingRight {
		c.X += p.Config.LookAhead
	} else {
		c.X -= p.Config.LookAhead
	}
	if !p.OnGround {
		if p.Velocity.Y > 0 {
			c.Y += p.Config.LookDown
		} else {
			c.Y -= p.Config.LookUp
		}
	}
	p.Track = c
}

func (p *Player) playJump() {
	if p.jumpSound == nil {
		p.warnOnce("jump", "player: jump sound %q not found", p.Config.JumpSound)
		return
	}
	if err := p.jumpSound.Rewind(); err != nil {
		log.Printf("player: rewind jump sound: %v", err)
	}
	p.jumpSound.Play()
}

// playStep keeps the footstep clip going while running.
func (p *Player) playStep() {
	if p.stepSound == nil {
		p.warnOnce("step", "player: step sound %q not found", p.Config.StepSound)
		return
	}
	if p.stepSound.IsPlaying() {
		return
	}
	if err := p.stepSound.Rewind(); err != nil {
		log.Printf("player: rewind step sound: %v", err)
	}
	p.stepSound.Play()
}

func (p *Player) warnOnce(key, format string, args ...any) {
	if p.warned[key] {
		return
	}
	p.warned[key] = true
	log.Printf(format, args...)
}

func (p *Player) Draw(ctx *Context) {
	cx, cy := ctx.cameraOffset()
	if p.sheet == nil {
		ctx.Surface.FillRect(render.Rect{
			X: p.shapePos.X - cx,
			Y: p.shapePos.Y - cy,
			W: p.shape.Width,
			H: p.shape.Height,
		}, colornames.Crimson)
		return
	}
	fw, fh := p.Config.FrameWidth, p.Config.FrameHeight
	ctx.Surface.DrawImage(p.sheet, p.Anim.Source(fw, fh), render.Rect{
		X: p.Position.X - cx,
		Y: p.Position.Y - cy,
		W: float64(fw),
		H: float64(fh),
	}, &render.DrawOptions{FlipX: !p.FacingRight})
}

// IntersectsCamera is always true: the camera follows the player.
func (p *Player) IntersectsCamera(*Camera) bool { return true }
