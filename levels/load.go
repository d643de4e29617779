package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultWorld is the embedded résumé world.
const DefaultWorld = "resume.yaml"

//go:embed *.yaml
var LevelsFS embed.FS

// Parse decodes a world description and fills defaults.
func Parse(b []byte) (*World, error) {
	var w World
	if err := yaml.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if w.Viewport.Width <= 0 {
		w.Viewport.Width = DefaultViewportWidth
	}
	if w.Viewport.Height <= 0 {
		w.Viewport.Height = DefaultViewportHeight
	}
	if w.Player.Sheet == "" {
		w.Player.Sheet = "player"
	}
	return &w, nil
}

// LoadFS reads a world from fsys.
func LoadFS(fsys fs.FS, name string) (*World, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	w, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	return w, nil
}

// LoadFile reads a world from disk.
func LoadFile(path string) (*World, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	w, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", path, err)
	}
	return w, nil
}

// Load reads path from disk, or the embedded world when path is empty.
func Load(path string) (*World, error) {
	if path == "" {
		return LoadFS(LevelsFS, DefaultWorld)
	}
	return LoadFile(path)
}
