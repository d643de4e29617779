package obj

import (
	"github.com/milk9111/folio/render"
)

// DefaultDt is the simulation step used when the host does not supply one.
const DefaultDt = 1.0 / 60.0

// ImageSource resolves image handles by id.
type ImageSource interface {
	Image(id string) (render.Image, bool)
}

// Sound is a playable clip. *audio.Player satisfies it.
type Sound interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
}

// SoundSource resolves sounds by id.
type SoundSource interface {
	Sound(id string) (Sound, bool)
}

// Context is passed to every update and draw call. It replaces ambient
// globals: one is built at startup and reused every frame.
type Context struct {
	Surface render.Surface
	Images  ImageSource
	Sounds  SoundSource
	Input   InputState

	// Dt is the real time covered by one tick, in seconds.
	Dt float64
	// Frame counts world ticks since the world was built.
	Frame int

	World *World
}

// Camera returns the world camera, or nil before a world is attached.
func (c *Context) Camera() *Camera {
	if c == nil || c.World == nil {
		return nil
	}
	return c.World.Camera
}

// Player returns the world player, or nil before a world is attached.
func (c *Context) Player() *Player {
	if c == nil || c.World == nil {
		return nil
	}
	return c.World.Player
}

// Held reports whether an input action is held. A nil input holds nothing.
func (c *Context) Held(action string) bool {
	if c == nil || c.Input == nil {
		return false
	}
	return c.Input.Held(action)
}

// cameraOffset returns the camera top-left, or the origin without a camera.
func (c *Context) cameraOffset() (float64, float64) {
	cam := c.Camera()
	if cam == nil {
		return 0, 0
	}
	return cam.Shape.Position.X, cam.Shape.Position.Y
}

func lookupImage(src ImageSource, id string) render.Image {
	if src == nil || id == "" {
		return nil
	}
	img, ok := src.Image(id)
	if !ok {
		return nil
	}
	return img
}

func lookupSound(src SoundSource, id string) Sound {
	if src == nil || id == "" {
		return nil
	}
	s, ok := src.Sound(id)
	if !ok {
		return nil
	}
	return s
}
