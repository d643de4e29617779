package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Logical input actions.
const (
	ActionLeft  = "left"
	ActionRight = "right"
	ActionJump  = "jump"
)

// InputState reports which logical actions are held.
type InputState interface {
	Held(action string) bool
}

// Input holds the held state of every logical action.
type Input struct {
	held map[string]bool

	// ScreenWidth splits touches into left and right halves.
	ScreenWidth int

	touches []ebiten.TouchID
}

func NewInput(screenWidth int) *Input {
	return &Input{held: make(map[string]bool), ScreenWidth: screenWidth}
}

func (i *Input) Held(action string) bool {
	return i.held[action]
}

// Set forces an action's held state. Poll overwrites it on the next frame.
func (i *Input) Set(action string, held bool) {
	i.held[action] = held
}

// Release clears every action.
func (i *Input) Release() {
	clear(i.held)
}

// Poll reads the keyboard, the first gamepad and touches.
func (i *Input) Poll() {
	left := ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	right := ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	jump := ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) ||
		ebiten.IsKeyPressed(ebiten.KeySpace)

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		x := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if x < -0.3 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			left = true
		}
		if x > 0.3 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			right = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			jump = true
		}
	}

	// touch: a press on either half walks that way, two touches also jump
	i.touches = ebiten.AppendTouchIDs(i.touches[:0])
	if len(i.touches) > 0 && i.ScreenWidth > 0 {
		for _, id := range i.touches {
			tx, _ := ebiten.TouchPosition(id)
			if tx < i.ScreenWidth/2 {
				left = true
			} else {
				right = true
			}
		}
		if len(i.touches) > 1 {
			jump = true
		}
	}

	i.held[ActionLeft] = left
	i.held[ActionRight] = right
	i.held[ActionJump] = jump
}
