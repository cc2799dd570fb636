// Package source provides the engine's signal sources: a looping
// sample player for decoded clips, a small sine voice bank with
// attack/release envelopes, a note sequencer that plays MIDI files
// through that voice bank, and a white-noise source.
package source

import (
	"io"

	"github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/cwbudde/algo-cookbook/engine"
	"github.com/cwbudde/algo-cookbook/sample"
)

// SamplePlayer streams a clip into the engine, optionally looping.
// Its gain is ramped per sample so live changes never click.
type SamplePlayer struct {
	clip *sample.Clip
	pos  int
	loop bool
	gain *engine.Ramp
}

// NewSamplePlayer returns a player at the start of clip. A looping
// player never reports end-of-stream.
func NewSamplePlayer(clip *sample.Clip, loop bool) *SamplePlayer {
	return &SamplePlayer{
		clip: clip,
		loop: loop,
		gain: engine.NewRamp(1.0, engine.RampSamples(clip.SampleRate, engine.DefaultRampSeconds)),
	}
}

// SetGain ramps the playback gain to v in [0, 2].
func (p *SamplePlayer) SetGain(v float64) {
	p.gain.SetTarget(core.Clamp(v, 0, 2))
}

// Gain returns the gain target.
func (p *SamplePlayer) Gain() float64 { return p.gain.Target() }

// Reset rewinds to the start of the clip.
func (p *SamplePlayer) Reset() { p.pos = 0 }

// Looping reports whether the player wraps around.
func (p *SamplePlayer) Looping() bool { return p.loop }

// ReadSamples fills dst from the clip. A non-looping player returns
// io.EOF once the clip is exhausted.
func (p *SamplePlayer) ReadSamples(dst []float64) (int, error) {
	data := p.clip.Data
	if len(data) == 0 {
		return 0, io.EOF
	}

	n := 0
	for n < len(dst) {
		if p.pos >= len(data) {
			if !p.loop {
				return n, io.EOF
			}
			p.pos = 0
		}
		c := copy(dst[n:], data[p.pos:])
		for i := n; i < n+c; i++ {
			dst[i] *= p.gain.Next()
		}
		n += c
		p.pos += c
	}
	return n, nil
}
