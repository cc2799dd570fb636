package tap

import (
	"sync"

	"github.com/cwbudde/algo-dsp/measure/loudness"
)

// LoudnessLevels is one loudness reading in LUFS.
type LoudnessLevels struct {
	Momentary  float64
	ShortTerm  float64
	Integrated float64
}

// Loudness measures EBU R128 loudness of the rendered (mono) signal.
// Integration starts immediately and runs for the life of the tap.
type Loudness struct {
	mu    sync.Mutex
	meter *loudness.Meter
}

// NewLoudness returns a loudness tap for the given render rate.
func NewLoudness(sampleRate float64) *Loudness {
	m := loudness.NewMeter(
		loudness.WithSampleRate(sampleRate),
		loudness.WithChannels(1),
	)
	m.StartIntegration()
	return &Loudness{meter: m}
}

// Observe feeds one block into the meter.
func (l *Loudness) Observe(block []float64) {
	l.mu.Lock()
	l.meter.ProcessBlock(block)
	l.mu.Unlock()
}

// Snapshot returns the current loudness readings.
func (l *Loudness) Snapshot() LoudnessLevels {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LoudnessLevels{
		Momentary:  l.meter.Momentary(),
		ShortTerm:  l.meter.ShortTerm(),
		Integrated: l.meter.Integrated(),
	}
}
