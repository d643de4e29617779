package obj

import (
	"image/color"

	"github.com/milk9111/folio/render"
)

const (
	transitionIdle = iota
	transitionOut
	transitionIn
)

// Transition fades the screen to black, runs a callback at full black, then
// fades back. Restarting and reloading the world go through it.
type Transition struct {
	// Duration is the length of each half in ticks.
	Duration int

	phase  int
	frames int
	onMid  func()
}

func NewTransition(duration int) *Transition {
	if duration < 1 {
		duration = 1
	}
	return &Transition{Duration: duration}
}

// Start begins a fade. onMid runs once the screen is fully black. Starting
// while a fade is running is ignored.
func (t *Transition) Start(onMid func()) {
	if t.Active() {
		return
	}
	t.phase = transitionOut
	t.frames = 0
	t.onMid = onMid
}

// FadeIn starts from black without a callback, for the first frame of a
// freshly built world.
func (t *Transition) FadeIn() {
	t.phase = transitionIn
	t.frames = 0
	t.onMid = nil
}

func (t *Transition) Active() bool { return t != nil && t.phase != transitionIdle }

// Update advances the fade. It returns true while the world should stay
// frozen, which is only the fade-out half.
func (t *Transition) Update() bool {
	if !t.Active() {
		return false
	}
	t.frames++
	switch t.phase {
	case transitionOut:
		if t.frames >= t.Duration {
			if t.onMid != nil {
				t.onMid()
				t.onMid = nil
			}
			t.phase = transitionIn
			t.frames = 0
		}
		return true
	case transitionIn:
		if t.frames >= t.Duration {
			t.phase = transitionIdle
			t.frames = 0
		}
	}
	return false
}

// Alpha is the overlay opacity in [0, 1].
func (t *Transition) Alpha() float64 {
	if !t.Active() {
		return 0
	}
	p := float64(t.frames) / float64(t.Duration)
	if p > 1 {
		p = 1
	}
	if t.phase == transitionOut {
		return p
	}
	return 1 - p
}

// Draw covers the surface with black at the current alpha.
func (t *Transition) Draw(s render.Surface) {
	a := t.Alpha()
	if a <= 0 || s == nil {
		return
	}
	w, h := s.Size()
	s.FillRect(render.Rect{W: float64(w), H: float64(h)}, color.NRGBA{A: uint8(a * 0xff)})
}
