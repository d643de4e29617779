package levels

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/folio/obj"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// World is the YAML description of a playable world.
type World struct {
	Name     string       `yaml:"name"`
	Viewport Size         `yaml:"viewport"`
	Bounds   *Bounds      `yaml:"bounds"`
	Player   PlayerSpec   `yaml:"player"`
	Camera   CameraSpec   `yaml:"camera"`
	Objects  []ObjectSpec `yaml:"objects"`
}

type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Bounds limits camera panning.
type Bounds struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// PlayerSpec places the player and overrides its tuning. Nil fields keep
// obj.DefaultPlayerConfig values, so an explicit zero is an override.
type PlayerSpec struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Z          int     `yaml:"z"`
	CollisionZ int     `yaml:"collision_z"`
	Sheet      string  `yaml:"sheet"`

	FrameW  *int  `yaml:"frame_w"`
	FrameH  *int  `yaml:"frame_h"`
	Frames  []int `yaml:"frames"`
	Stagger *int  `yaml:"stagger"`

	Width        *float64 `yaml:"width"`
	Height       *float64 `yaml:"height"`
	ShapeOffsetX *float64 `yaml:"shape_offset_x"`
	ShapeOffsetY *float64 `yaml:"shape_offset_y"`

	Acceleration *float64 `yaml:"acceleration"`
	MaxSpeed     *float64 `yaml:"max_speed"`
	Friction     *float64 `yaml:"friction"`
	StopEpsilon  *float64 `yaml:"stop_epsilon"`
	RunThreshold *float64 `yaml:"run_threshold"`
	Gravity      *float64 `yaml:"gravity"`
	MaxFall      *float64 `yaml:"max_fall"`
	JumpSpeed    *float64 `yaml:"jump_speed"`
	MaxJumpTime  *int     `yaml:"max_jump_time"`

	LookAhead *float64 `yaml:"look_ahead"`
	LookUp    *float64 `yaml:"look_up"`
	LookDown  *float64 `yaml:"look_down"`

	JumpSound string `yaml:"jump_sound"`
	StepSound string `yaml:"step_sound"`
}

// CameraSpec tunes camera following. Follow flags default to true.
type CameraSpec struct {
	FollowSpeedX *float64 `yaml:"follow_speed_x"`
	FollowSpeedY *float64 `yaml:"follow_speed_y"`
	EaseX        string   `yaml:"ease_x"`
	EaseY        string   `yaml:"ease_y"`
	FollowX      *bool    `yaml:"follow_x"`
	FollowY      *bool    `yaml:"follow_y"`
}

// ObjectSpec describes one entity. Which fields apply depends on Kind.
// Child positions are relative to the parent.
type ObjectSpec struct {
	ID         string  `yaml:"id"`
	Kind       string  `yaml:"kind"`
	Image      string  `yaml:"image"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Z          int     `yaml:"z"`
	CollisionZ int     `yaml:"collision_z"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	// Solid registers a moving object as a collider.
	Solid bool `yaml:"solid"`

	Text     string     `yaml:"text"`
	Subtitle string     `yaml:"subtitle"`
	Lines    []string   `yaml:"lines"`
	FontSize float64    `yaml:"font_size"`
	Color    *YAMLColor `yaml:"color"`
	Fade     bool       `yaml:"fade"`

	SpeedX  *float64 `yaml:"speed_x"`
	SpeedY  *float64 `yaml:"speed_y"`
	RepeatX bool     `yaml:"repeat_x"`
	RepeatY bool     `yaml:"repeat_y"`

	FrameW  int         `yaml:"frame_w"`
	FrameH  int         `yaml:"frame_h"`
	Frames  int         `yaml:"frames"`
	Stagger int         `yaml:"stagger"`
	States  []StateSpec `yaml:"states"`

	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`

	Tween    *TweenSpec   `yaml:"tween"`
	Trigger  *TriggerSpec `yaml:"trigger"`
	Children []ObjectSpec `yaml:"children"`
}

// StateSpec is an extra animation row.
type StateSpec struct {
	Name   string `yaml:"name"`
	Row    int    `yaml:"row"`
	Frames int    `yaml:"frames"`
}

// TweenSpec drives a moving object from its position to (ToX, ToY).
type TweenSpec struct {
	ToX               float64 `yaml:"to_x"`
	ToY               float64 `yaml:"to_y"`
	Duration          float64 `yaml:"duration"`
	Ease              string  `yaml:"ease"`
	Oscillate         bool    `yaml:"oscillate"`
	When              string  `yaml:"when"`
	HiddenUntilActive bool    `yaml:"hidden_until_active"`
}

// TriggerSpec runs Action while When holds.
type TriggerSpec struct {
	When   string `yaml:"when"`
	Action string `yaml:"action"`
	Sound  string `yaml:"sound"`
	Target string `yaml:"target"`
	Once   bool   `yaml:"once"`
}

const (
	KindSprite    = "sprite"
	KindParallax  = "parallax"
	KindAnimation = "animation"
	KindBanner    = "banner"
	KindPanel     = "panel"
	KindBlink     = "blink"
	KindPlatform  = "platform"
	KindMover     = "mover"
	KindMoving    = "moving"
	KindTrigger   = "trigger"
)

const (
	ActionShake    = "shake"
	ActionActivate = "activate"
	ActionPlay     = "play"
)

// Defaults for omitted world fields.
const (
	DefaultViewportWidth  = 1024
	DefaultViewportHeight = 650
	DefaultBlinkSize      = 30
)

// PlayerConfig merges the spec over obj.DefaultPlayerConfig.
func (p PlayerSpec) PlayerConfig() (obj.PlayerConfig, error) {
	cfg := obj.DefaultPlayerConfig()
	if len(p.Frames) > 0 {
		if len(p.Frames) != len(cfg.Frames) {
			return cfg, fmt.Errorf("player frames: want %d rows, got %d", len(cfg.Frames), len(p.Frames))
		}
		copy(cfg.Frames[:], p.Frames)
	}
	setInt(&cfg.FrameWidth, p.FrameW)
	setInt(&cfg.FrameHeight, p.FrameH)
	setInt(&cfg.Stagger, p.Stagger)
	setInt(&cfg.MaxJumpTime, p.MaxJumpTime)

	setFloat(&cfg.ShapeWidth, p.Width)
	setFloat(&cfg.ShapeHeight, p.Height)
	setFloat(&cfg.ShapeOffset.X, p.ShapeOffsetX)
	setFloat(&cfg.ShapeOffset.Y, p.ShapeOffsetY)
	setFloat(&cfg.Acceleration, p.Acceleration)
	setFloat(&cfg.MaxSpeed, p.MaxSpeed)
	setFloat(&cfg.Friction, p.Friction)
	setFloat(&cfg.StopEpsilon, p.StopEpsilon)
	setFloat(&cfg.RunThreshold, p.RunThreshold)
	setFloat(&cfg.Gravity, p.Gravity)
	setFloat(&cfg.MaxFall, p.MaxFall)
	setFloat(&cfg.JumpSpeed, p.JumpSpeed)
	setFloat(&cfg.LookAhead, p.LookAhead)
	setFloat(&cfg.LookUp, p.LookUp)
	setFloat(&cfg.LookDown, p.LookDown)

	if p.JumpSound != "" {
		cfg.JumpSound = p.JumpSound
	}
	if p.StepSound != "" {
		cfg.StepSound = p.StepSound
	}
	return cfg, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// YAMLColor accepts #rrggbb, #rrggbbaa or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		rgba[i] = v
	}
	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

// colorOr returns the parsed color or fallback when unset.
func colorOr(c *YAMLColor, fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
