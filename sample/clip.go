// Package sample loads audio assets into mono in-memory clips.
//
// Decoders for WAV, MP3 and Ogg Vorbis register themselves with the
// package's format registry keyed by lowercase file extension;
// multichannel input is averaged down to mono at decode time. Clips
// know their sample rate and can be resampled to match an engine.
package sample

import (
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-dsp/dsp/resample"
)

// Clip is a fully decoded mono audio buffer.
type Clip struct {
	Data       []float64
	SampleRate float64
}

// Duration returns the clip length as wall time.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(c.Data)) / c.SampleRate * float64(time.Second))
}

// Frames returns the number of samples in the clip.
func (c *Clip) Frames() int { return len(c.Data) }

// Peak returns the largest absolute sample value.
func (c *Clip) Peak() float64 {
	peak := 0.0
	for _, v := range c.Data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// Normalize scales the clip in place so its peak hits target (e.g.
// 1.0). A silent clip is left untouched.
func (c *Clip) Normalize(target float64) {
	peak := c.Peak()
	if peak == 0 || target <= 0 {
		return
	}
	g := target / peak
	for i := range c.Data {
		c.Data[i] *= g
	}
}

// Resampled returns a copy of the clip converted to rate using the
// polyphase resampler. A clip already at the target rate is returned
// as a shallow copy.
func (c *Clip) Resampled(rate float64) (*Clip, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("sample: invalid target rate %v", rate)
	}
	if c.SampleRate == rate {
		return &Clip{Data: c.Data, SampleRate: rate}, nil
	}

	r, err := resample.NewForRates(c.SampleRate, rate)
	if err != nil {
		return nil, fmt.Errorf("sample: resample %v -> %v: %w", c.SampleRate, rate, err)
	}
	return &Clip{Data: r.Process(c.Data), SampleRate: rate}, nil
}
