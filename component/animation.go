package component

import (
	"fmt"
	"image"
	"log"
)

// AnimationState is one row of a sprite sheet.
type AnimationState struct {
	Row    int
	Frames int
}

// Animation is a frame-strip animator over a sprite sheet laid out with one
// state per row and frames left-to-right. Frames advance once every Stagger
// updates, independent of the render rate.
type Animation struct {
	Stagger int

	states  map[string]AnimationState
	order   []string
	state   string
	current int
	counter int
}

// NewAnimation creates an animation with no states. stagger < 1 is treated
// as 1.
func NewAnimation(stagger int) *Animation {
	if stagger < 1 {
		stagger = 1
	}
	return &Animation{
		Stagger: stagger,
		states:  make(map[string]AnimationState),
	}
}

// AddState registers a named row. The first state added becomes current.
func (a *Animation) AddState(name string, row, frames int) error {
	if name == "" {
		return fmt.Errorf("animation: empty state name")
	}
	if frames < 1 {
		return fmt.Errorf("animation: state %q needs at least one frame, got %d", name, frames)
	}
	if row < 0 {
		return fmt.Errorf("animation: state %q has negative row %d", name, row)
	}
	if _, ok := a.states[name]; ok {
		return fmt.Errorf("animation: duplicate state %q", name)
	}
	a.states[name] = AnimationState{Row: row, Frames: frames}
	a.order = append(a.order, name)
	if a.state == "" {
		a.state = name
	}
	return nil
}

// SetState switches to name, restarting at frame 0. Switching to the current
// state is a no-op so it can be called every tick. Unknown names are logged
// and ignored.
func (a *Animation) SetState(name string) {
	if a == nil || name == a.state {
		return
	}
	if _, ok := a.states[name]; !ok {
		log.Printf("animation: unknown state %q, keeping %q", name, a.state)
		return
	}
	a.state = name
	a.current = 0
	a.counter = 0
}

// Update advances the frame counter.
func (a *Animation) Update() {
	if a == nil || a.state == "" {
		return
	}
	a.counter++
	if a.counter >= a.Stagger {
		a.counter = 0
		a.current = (a.current + 1) % a.states[a.state].Frames
	}
}

// Reset goes back to the first frame of the current state.
func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.current = 0
	a.counter = 0
}

func (a *Animation) State() string { return a.state }

func (a *Animation) Frame() int { return a.current }

// States returns state names in insertion order.
func (a *Animation) States() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Lookup returns the row and frame count for name.
func (a *Animation) Lookup(name string) (AnimationState, bool) {
	s, ok := a.states[name]
	return s, ok
}

// Source returns the sheet rectangle of the current frame.
func (a *Animation) Source(frameW, frameH int) image.Rectangle {
	if a == nil || a.state == "" {
		return image.Rectangle{}
	}
	row := a.states[a.state].Row
	x := a.current * frameW
	y := row * frameH
	return image.Rect(x, y, x+frameW, y+frameH)
}
