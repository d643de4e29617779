package assets

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"sync"
	"sync/atomic"

	"github.com/milk9111/folio/obj"
	"github.com/milk9111/folio/render"
	"golang.org/x/sync/errgroup"
)

// maxParallelDecode bounds concurrent decodes during Load.
const maxParallelDecode = 8

// ImageDecoder turns file bytes into a drawable image.
type ImageDecoder func(name string, data []byte) (render.Image, error)

// SoundDecoder turns file bytes into a playable sound.
type SoundDecoder func(name string, data []byte) (obj.Sound, error)

// Registry holds decoded assets by id. It is filled once by Load in the
// background and is read-only afterwards. Lookups before the gate opens
// report not found.
type Registry struct {
	DecodeImage ImageDecoder
	DecodeSound SoundDecoder

	mu     sync.RWMutex
	images map[string]render.Image
	sounds map[string]obj.Sound
	failed map[string]error

	warnMu sync.Mutex
	warned map[string]bool

	started atomic.Bool
	ready   atomic.Bool
	done    chan struct{}
	err     error
}

// NewRegistry returns a registry decoding through Ebiten.
func NewRegistry() *Registry {
	return &Registry{
		DecodeImage: DecodeEbitenImage,
		DecodeSound: DecodeEbitenSound,
		images:      make(map[string]render.Image),
		sounds:      make(map[string]obj.Sound),
		failed:      make(map[string]error),
		warned:      make(map[string]bool),
		done:        make(chan struct{}),
	}
}

// Load decodes every manifest entry from fsys in the background and opens
// the readiness gate when all of them finished. A broken asset is logged and
// left missing; it never fails the load. Load may only be called once.
func (r *Registry) Load(ctx context.Context, fsys fs.FS, m *Manifest) error {
	if !r.started.CompareAndSwap(false, true) {
		return fmt.Errorf("assets: registry already loading")
	}
	go func() {
		defer close(r.done)
		r.err = r.load(ctx, fsys, m)
		r.ready.Store(true)
	}()
	return nil
}

func (r *Registry) load(ctx context.Context, fsys fs.FS, m *Manifest) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelDecode)

	for id, p := range m.Images {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := r.decodeImage(fsys, p)
			if err != nil {
				r.fail("image "+id, err)
				return nil
			}
			r.mu.Lock()
			r.images[id] = img
			r.mu.Unlock()
			return nil
		})
	}
	for id, p := range m.Sounds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			snd, err := r.decodeSound(fsys, p)
			if err != nil {
				r.fail("sound "+id, err)
				return nil
			}
			r.mu.Lock()
			r.sounds[id] = snd
			r.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

func (r *Registry) decodeImage(fsys fs.FS, p string) (render.Image, error) {
	b, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, err
	}
	return r.DecodeImage(p, b)
}

func (r *Registry) decodeSound(fsys fs.FS, p string) (obj.Sound, error) {
	b, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, err
	}
	return r.DecodeSound(p, b)
}

func (r *Registry) fail(key string, err error) {
	log.Printf("assets: load %s: %v", key, err)
	r.mu.Lock()
	r.failed[key] = err
	r.mu.Unlock()
}

// Ready reports whether the readiness gate is open.
func (r *Registry) Ready() bool { return r.ready.Load() }

// Done is closed when loading finished.
func (r *Registry) Done() <-chan struct{} { return r.done }

// Err returns the load error, which is only ever a cancellation. It is valid
// once Done is closed.
func (r *Registry) Err() error {
	if !r.Ready() {
		return nil
	}
	return r.err
}

// Failed returns the number of assets that could not be decoded.
func (r *Registry) Failed() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.failed)
}

// Image looks up a decoded image. A missing id is logged once.
func (r *Registry) Image(id string) (render.Image, bool) {
	if !r.Ready() {
		return nil, false
	}
	r.mu.RLock()
	img, ok := r.images[id]
	r.mu.RUnlock()
	if !ok {
		r.warnOnce("image", id)
	}
	return img, ok
}

// Sound looks up a decoded sound. A missing id is logged once.
func (r *Registry) Sound(id string) (obj.Sound, bool) {
	if !r.Ready() {
		return nil, false
	}
	r.mu.RLock()
	snd, ok := r.sounds[id]
	r.mu.RUnlock()
	if !ok {
		r.warnOnce("sound", id)
	}
	return snd, ok
}

func (r *Registry) warnOnce(kind, id string) {
	key := kind + ":" + id
	r.warnMu.Lock()
	defer r.warnMu.Unlock()
	if r.warned[key] {
		return
	}
	r.warned[key] = true
	log.Printf("assets: %s %q not found", kind, id)
}
