// Package engine renders mono audio blocks through a small processing
// graph: a Source feeding an optional Processor, blended dry/wet,
// scaled by a master gain, observed by Taps, and finally pushed into a
// Sink as interleaved stereo float32.
//
// The graph is pull-based: Render produces one block on demand, Run
// loops Render into a Sink until the context is cancelled or the
// source ends. All engine-level controls (wet mix, master gain) are
// ramped so live edits never click.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

// DefaultSampleRate is the render rate used when no option overrides it.
const DefaultSampleRate = 44100.0

// Source produces mono sample blocks. ReadSamples fills dst, returning
// the number of frames written; it returns io.EOF (possibly alongside
// a short count) once the source has ended.
type Source interface {
	ReadSamples(dst []float64) (int, error)
}

// Processor transforms one mono block in place. Recipe nodes, biquad
// chains and effect kernels all fit this shape.
type Processor interface {
	ProcessBlock(buf []float64)
}

// Sink consumes interleaved stereo float32 audio rendered by Run.
type Sink interface {
	WriteAudio(samples []float32) error
	Close() error
}

// Tap observes post-mix blocks without modifying them. Implementations
// must copy anything they keep beyond the call.
type Tap interface {
	Observe(block []float64)
}

// Engine pulls blocks from a source through a processor and the
// dry/wet stage. It is not safe for concurrent use; one goroutine
// renders while others read view data through the taps.
type Engine struct {
	cfg core.ProcessorConfig
	log *slog.Logger

	source Source
	proc   Processor
	taps   []Tap

	wet  *Ramp
	gain *Ramp

	dry []float64 // scratch copy of the unprocessed block
}

// New constructs an engine with 44.1 kHz / 1024-frame defaults.
// Override via core.WithSampleRate and core.WithBlockSize.
func New(opts ...core.ProcessorOption) *Engine {
	base := append([]core.ProcessorOption{core.WithSampleRate(DefaultSampleRate)}, opts...)
	cfg := core.ApplyProcessorOptions(base...)

	ramp := RampSamples(cfg.SampleRate, DefaultRampSeconds)
	return &Engine{
		cfg:  cfg,
		log:  slog.Default(),
		wet:  NewRamp(0.5, ramp),
		gain: NewRamp(1.0, ramp),
	}
}

// SetLogger replaces the engine's logger. A nil logger discards.
func (e *Engine) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	e.log = l
}

// SampleRate returns the configured render rate.
func (e *Engine) SampleRate() float64 { return e.cfg.SampleRate }

// BlockSize returns the configured block length in frames.
func (e *Engine) BlockSize() int { return e.cfg.BlockSize }

// SetSource wires the block producer. A nil source renders silence.
func (e *Engine) SetSource(s Source) { e.source = s }

// SetProcessor wires the effect stage. A nil processor passes the
// source through untouched.
func (e *Engine) SetProcessor(p Processor) { e.proc = p }

// AddTap registers an observation point fed every post-mix block.
func (e *Engine) AddTap(t Tap) {
	if t != nil {
		e.taps = append(e.taps, t)
	}
}

// SetWetMix ramps the dry/wet balance to v in [0, 1]; 0 is fully dry,
// 1 fully processed. The blend is equal-power.
func (e *Engine) SetWetMix(v float64) {
	e.wet.SetTarget(core.Clamp(v, 0, 1))
}

// WetMix returns the wet-mix target.
func (e *Engine) WetMix() float64 { return e.wet.Target() }

// SetMasterGain ramps the output gain to v in [0, 2] (linear).
func (e *Engine) SetMasterGain(v float64) {
	e.gain.SetTarget(core.Clamp(v, 0, 2))
}

// MasterGain returns the master-gain target.
func (e *Engine) MasterGain() float64 { return e.gain.Target() }

// Render pulls one block through the graph into dst. It returns the
// number of frames the source produced; when the source ends, the tail
// of dst is zero-filled and the error is io.EOF. Render does not
// allocate after the first call at a given block size.
func (e *Engine) Render(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	n := len(dst)
	var srcErr error
	if e.source != nil {
		n, srcErr = e.source.ReadSamples(dst)
		if srcErr != nil && !errors.Is(srcErr, io.EOF) {
			return n, fmt.Errorf("engine: source: %w", srcErr)
		}
	} else {
		n = 0
	}
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}

	if cap(e.dry) < len(dst) {
		e.dry = make([]float64, len(dst))
	}
	dry := e.dry[:len(dst)]
	copy(dry, dst)

	if e.proc != nil {
		e.proc.ProcessBlock(dst)
	}

	wet := e.wet.Step(len(dst))
	gain := e.gain.Step(len(dst))
	wetGain, dryGain := equalPowerGains(wet)
	for i := range dst {
		dst[i] = gain * (dryGain*dry[i] + wetGain*dst[i])
	}

	for _, t := range e.taps {
		t.Observe(dst)
	}

	return n, srcErr
}

// Run renders blocks into sink until ctx is cancelled, the source
// ends, or the sink fails. The final short block of an ending source
// is still delivered. Errors are logged once and returned; a normal
// end of stream returns nil.
func (e *Engine) Run(ctx context.Context, sink Sink) error {
	block := make([]float64, e.cfg.BlockSize)
	out := make([]float32, 2*e.cfg.BlockSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := e.Render(block)
		if n > 0 {
			for i, v := range block[:n] {
				s := float32(v)
				out[2*i] = s
				out[2*i+1] = s
			}
			if werr := sink.WriteAudio(out[:2*n]); werr != nil {
				e.log.Error("audio sink write failed", "error", werr)
				return fmt.Errorf("engine: sink: %w", werr)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			e.log.Error("render failed", "error", err)
			return err
		}
	}
}

// equalPowerGains maps a wet fraction in [0, 1] onto constant-power
// crossfade weights, so a mid blend does not dip in loudness.
func equalPowerGains(wet float64) (wetGain, dryGain float64) {
	theta := wet * math.Pi / 2
	return math.Sin(theta), math.Cos(theta)
}
