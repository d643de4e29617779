package component

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// EaseFunc maps progress in [0, 1] to eased progress. Results may leave
// [0, 1] (back and elastic curves overshoot).
type EaseFunc func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// FromTween adapts a gween easing function to an EaseFunc.
func FromTween(fn ease.TweenFunc) EaseFunc {
	if fn == nil {
		return Linear
	}
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"inback":       ease.InBack,
	"outback":      ease.OutBack,
	"inoutback":    ease.InOutBack,
	"outbounce":    ease.OutBounce,
	"inelastic":    ease.InElastic,
	"outelastic":   ease.OutElastic,
	"inoutelastic": ease.InOutElastic,
}

// EasingByName resolves names like "outQuad" or "out-quad". An empty name is
// linear.
func EasingByName(name string) (EaseFunc, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	if key == "" {
		return Linear, nil
	}
	fn, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("easing: unknown function %q", name)
	}
	if key == "linear" {
		return Linear, nil
	}
	return FromTween(fn), nil
}
