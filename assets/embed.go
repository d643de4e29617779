package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the manifest file at the root of an asset tree.
const ManifestName = "manifest.yaml"

//go:embed manifest.yaml images sounds
var assetsFS embed.FS

// Embedded returns the built-in asset tree.
func Embedded() fs.FS {
	return assetsFS
}

// Manifest maps asset ids to paths inside an asset tree.
type Manifest struct {
	Images map[string]string `yaml:"images"`
	Sounds map[string]string `yaml:"sounds"`
}

// LoadManifest reads and validates the manifest at the root of fsys.
func LoadManifest(fsys fs.FS) (*Manifest, error) {
	b, err := fs.ReadFile(fsys, ManifestName)
	if err != nil {
		return nil, fmt.Errorf("assets: read manifest: %w", err)
	}
	return ParseManifest(b)
}

// ParseManifest decodes a manifest and cleans its paths.
func ParseManifest(b []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("assets: parse manifest: %w", err)
	}
	for id, p := range m.Images {
		if id == "" || p == "" {
			return nil, fmt.Errorf("assets: image entry %q has an empty id or path", id)
		}
		m.Images[id] = cleanAssetPath(p)
	}
	for id, p := range m.Sounds {
		if id == "" || p == "" {
			return nil, fmt.Errorf("assets: sound entry %q has an empty id or path", id)
		}
		m.Sounds[id] = cleanAssetPath(p)
	}
	return &m, nil
}

// cleanAssetPath turns OS or assets-prefixed paths into fs.FS paths.
func cleanAssetPath(p string) string {
	s := filepath.ToSlash(p)
	if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
		s = s[idx+len("/assets/"):]
	}
	s = strings.TrimPrefix(s, "assets/")
	return strings.TrimPrefix(path.Clean(s), "/")
}
