package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/milk9111/folio/obj"
	"github.com/milk9111/folio/render"
)

type boundsImage struct{ r image.Rectangle }

func (b boundsImage) Bounds() image.Rectangle { return b.r }

type nopSound struct{}

func (nopSound) Play()           {}
func (nopSound) Pause()          {}
func (nopSound) Rewind() error   { return nil }
func (nopSound) IsPlaying() bool { return false }

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// testRegistry decodes image sizes without a graphics context.
func testRegistry() *Registry {
	r := NewRegistry()
	r.DecodeImage = func(name string, data []byte) (render.Image, error) {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return boundsImage{image.Rect(0, 0, cfg.Width, cfg.Height)}, nil
	}
	r.DecodeSound = func(name string, data []byte) (obj.Sound, error) {
		if len(data) == 0 {
			return nil, errors.New("empty sound")
		}
		return nopSound{}, nil
	}
	return r
}

func waitReady(t *testing.T, r *Registry) {
	t.Helper()
	select {
	case <-r.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("registry never became ready")
	}
}

func TestRegistryLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"images/player.png": {Data: pngBytes(t, 440, 700)},
		"images/ad.png":     {Data: pngBytes(t, 498, 50)},
		"images/broken.png": {Data: []byte("not a png")},
		"sounds/jump.wav":   {Data: []byte("RIFF")},
		"sounds/empty.wav":  {Data: nil},
	}
	m := &Manifest{
		Images: map[string]string{
			"player":  "images/player.png",
			"ad":      "images/ad.png",
			"broken":  "images/broken.png",
			"missing": "images/missing.png",
		},
		Sounds: map[string]string{"jump": "sounds/jump.wav", "empty": "sounds/empty.wav"},
	}

	r := testRegistry()
	if _, ok := r.Image("player"); ok {
		t.Fatalf("lookups must fail before the gate opens")
	}
	if err := r.Load(context.Background(), fsys, m); err != nil {
		t.Fatalf("Load: %v", err)
	}
	waitReady(t, r)

	if !r.Ready() || r.Err() != nil {
		t.Fatalf("ready = %v err = %v", r.Ready(), r.Err())
	}
	img, ok := r.Image("player")
	if !ok || img.Bounds().Dx() != 440 || img.Bounds().Dy() != 700 {
		t.Fatalf("player = %v, %v", img, ok)
	}
	for _, id := range []string{"broken", "missing", "nope"} {
		if _, ok := r.Image(id); ok {
			t.Fatalf("image %q should be missing", id)
		}
	}
	if _, ok := r.Sound("jump"); !ok {
		t.Fatalf("jump sound missing")
	}
	if _, ok := r.Sound("empty"); ok {
		t.Fatalf("empty sound should fail to decode")
	}
	if r.Failed() != 3 {
		t.Fatalf("failed = %d, want 3", r.Failed())
	}

	if err := r.Load(context.Background(), fsys, m); err == nil {
		t.Fatalf("second Load should fail")
	}
}

func TestRegistryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := testRegistry()
	m := &Manifest{Images: map[string]string{"a": "a.png"}}
	if err := r.Load(ctx, fstest.MapFS{"a.png": {Data: pngBytes(t, 1, 1)}}, m); err != nil {
		t.Fatalf("Load: %v", err)
	}
	waitReady(t, r)
	if !errors.Is(r.Err(), context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", r.Err())
	}
}

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "images:\n  sky: images/sky.png\n", "images/sky.png", false},
		{"assets_prefix", "images:\n  sky: assets/images/sky.png\n", "images/sky.png", false},
		{"absolute", "images:\n  sky: /home/me/folio/assets/images/sky.png\n", "images/sky.png", false},
		{"empty_path", "images:\n  sky: \"\"\n", "", true},
		{"bad_yaml", "images: [", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tc.in))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseManifest: %v", err)
			}
			if got := m.Images["sky"]; got != tc.want {
				t.Fatalf("path = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEmbeddedManifestResolves(t *testing.T) {
	m, err := LoadManifest(Embedded())
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Images) == 0 || len(m.Sounds) == 0 {
		t.Fatalf("embedded manifest is empty")
	}
	for id, p := range m.Images {
		if _, err := fs.Stat(Embedded(), p); err != nil {
			t.Fatalf("image %q: %v", id, err)
		}
	}
	for id, p := range m.Sounds {
		if _, err := fs.Stat(Embedded(), p); err != nil {
			t.Fatalf("sound %q: %v", id, err)
		}
	}
	if _, ok := m.Images["player"]; !ok {
		t.Fatalf("embedded assets must include the player sheet")
	}
}
