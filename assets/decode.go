package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/folio/obj"
	"github.com/milk9111/folio/render"
)

// SampleRate is the audio context rate.
const SampleRate = 44100

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// AudioContext returns the shared audio context, creating it on first use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// DecodeEbitenImage decodes PNG or JPEG bytes into an *ebiten.Image.
func DecodeEbitenImage(name string, data []byte) (render.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", name, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// DecodeEbitenSound decodes WAV bytes into an audio player. Anything else
// is treated as raw PCM in the context's native format.
func DecodeEbitenSound(name string, data []byte) (obj.Sound, error) {
	ctx := AudioContext()
	if strings.HasSuffix(strings.ToLower(name), ".wav") {
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", name, err)
		}
		p, err := ctx.NewPlayer(stream)
		if err != nil {
			return nil, fmt.Errorf("audio player %q: %w", name, err)
		}
		return p, nil
	}
	return ctx.NewPlayerFromBytes(data), nil
}
