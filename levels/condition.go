package levels

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Condition variable names visible to scripts.
const (
	VarPlayerX = "player_x"
	VarPlayerY = "player_y"
	VarCameraX = "camera_x"
	VarCameraY = "camera_y"
	VarFrame   = "frame"
	VarInside  = "inside"
	VarActive  = "active"

	resultVar = "__result"
)

// Env is the world state a condition is evaluated against.
type Env struct {
	PlayerX float64
	PlayerY float64
	CameraX float64
	CameraY float64
	Frame   int
	// Inside reports whether the player overlaps the evaluating object.
	Inside bool
	// Active maps moving object ids to whether their tween is running.
	Active map[string]bool
}

// Condition is a tengo expression compiled once and evaluated every tick.
type Condition struct {
	Source string

	compiled *tengo.Compiled
	warned   bool
}

// CompileCondition compiles expr. The stdlib modules are importable, so
// expressions like `import("math").abs(player_x - 2000) < 300` work.
func CompileCondition(expr string) (*Condition, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty condition")
	}

	script := tengo.NewScript([]byte(resultVar + " := (" + expr + ")"))
	vars := []struct {
		name  string
		value any
	}{
		{VarPlayerX, 0.0},
		{VarPlayerY, 0.0},
		{VarCameraX, 0.0},
		{VarCameraY, 0.0},
		{VarFrame, 0},
		{VarInside, false},
		{VarActive, map[string]any{}},
	}
	for _, v := range vars {
		if err := script.Add(v.name, v.value); err != nil {
			return nil, fmt.Errorf("declare %s: %w", v.name, err)
		}
	}

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, err)
	}
	return &Condition{Source: expr, compiled: compiled}, nil
}

// Eval runs the condition. Runtime errors are logged once and count as
// false.
func (c *Condition) Eval(env Env) bool {
	if c == nil || c.compiled == nil {
		return false
	}
	ok, err := c.eval(env)
	if err != nil {
		if !c.warned {
			c.warned = true
			log.Printf("levels: condition %q: %v", c.Source, err)
		}
		return false
	}
	return ok
}

func (c *Condition) eval(env Env) (bool, error) {
	active := make(map[string]any, len(env.Active))
	for id, v := range env.Active {
		active[id] = v
	}
	vars := []struct {
		name  string
		value any
	}{
		{VarPlayerX, env.PlayerX},
		{VarPlayerY, env.PlayerY},
		{VarCameraX, env.CameraX},
		{VarCameraY, env.CameraY},
		{VarFrame, env.Frame},
		{VarInside, env.Inside},
		{VarActive, active},
	}
	for _, v := range vars {
		if err := c.compiled.Set(v.name, v.value); err != nil {
			return false, err
		}
	}
	if err := c.compiled.Run(); err != nil {
		return false, err
	}
	if !c.compiled.IsDefined(resultVar) {
		return false, fmt.Errorf("no result")
	}
	return c.compiled.Get(resultVar).Bool(), nil
}
