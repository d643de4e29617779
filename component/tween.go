package component

import "github.com/milk9111/folio/common"

// Predicate gates activation. A nil Predicate always holds.
type Predicate func() bool

// Holds evaluates p, treating nil as true.
func (p Predicate) Holds() bool {
	return p == nil || p()
}

// Tween interpolates a position between Start and End over Duration seconds.
//
// An idle tween waits for ShouldActivate to hold. Once active it ignores the
// predicate until a traversal completes. Oscillating tweens then flip
// direction and start over forever; one-shot tweens land on the end point and
// stay done until Activate is called.
type Tween struct {
	Start     common.Vector
	End       common.Vector
	Ease      EaseFunc
	Duration  float64
	Oscillate bool

	ShouldActivate Predicate

	elapsed float64
	forward bool
	active  bool
	done    bool
}

// NewTween builds an idle, forward tween with linear easing.
func NewTween(start, end common.Vector, duration float64, oscillate bool) *Tween {
	return &Tween{
		Start:     start,
		End:       end,
		Ease:      Linear,
		Duration:  duration,
		Oscillate: oscillate,
		forward:   true,
	}
}

func (t *Tween) Active() bool { return t.active }

// Done reports whether a one-shot tween finished. Oscillating tweens are
// never done.
func (t *Tween) Done() bool { return t.done }

func (t *Tween) Forward() bool { return t.forward }

func (t *Tween) Elapsed() float64 { return t.elapsed }

// Activate starts the tween regardless of its predicate. A finished tween
// replays from the start of its current direction.
func (t *Tween) Activate() {
	if t.active {
		return
	}
	if t.done {
		t.elapsed = 0
		t.done = false
	}
	t.active = true
}

// Progress returns elapsed/duration, or 1 for non-positive durations.
func (t *Tween) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return t.elapsed / t.Duration
}

// Step advances the tween by dt seconds and writes the interpolated point to
// pos. It reports whether pos was written.
func (t *Tween) Step(dt float64, pos *common.Vector) bool {
	if !t.active {
		if t.done || !t.ShouldActivate.Holds() {
			return false
		}
		t.active = true
	}

	t.elapsed += dt
	p := t.Progress()

	from, to := t.Start, t.End
	if !t.forward {
		from, to = to, from
	}

	if p >= 1 {
		if t.Oscillate {
			t.forward = !t.forward
			t.elapsed = 0
			// the old destination is the new origin
			pos.Set(to)
			return true
		}
		t.elapsed = t.Duration
		t.active = false
		t.done = true
		pos.Set(to)
		return true
	}

	ease := t.Ease
	if ease == nil {
		ease = Linear
	}
	e := ease(p)
	pos.SetXY(common.Lerp(from.X, to.X, e), common.Lerp(from.Y, to.Y, e))
	return true
}
