package source

import (
	"github.com/cwbudde/algo-dsp/dsp/signal"
)

// noiseLoopSamples is the length of the pre-rendered noise buffer the
// source cycles through. Long enough that the repeat is inaudible.
const noiseLoopSamples = 1 << 17

// Noise is an endless white-noise source, useful for showing off
// filters. The noise is deterministic for a given seed.
type Noise struct {
	data []float64
	pos  int
}

// NewNoise renders a noise loop with the given peak amplitude.
func NewNoise(amplitude float64, seed int64) (*Noise, error) {
	gen := signal.NewGeneratorWithOptions(nil, signal.WithSeed(seed))
	data, err := gen.WhiteNoise(amplitude, noiseLoopSamples)
	if err != nil {
		return nil, err
	}
	return &Noise{data: data}, nil
}

// ReadSamples fills dst from the loop; it never ends.
func (n *Noise) ReadSamples(dst []float64) (int, error) {
	filled := 0
	for filled < len(dst) {
		if n.pos >= len(n.data) {
			n.pos = 0
		}
		c := copy(dst[filled:], n.data[n.pos:])
		filled += c
		n.pos += c
	}
	return filled, nil
}
