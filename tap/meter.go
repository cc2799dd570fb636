package tap

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

// Levels is one meter reading. Peak and RMS are linear; PeakDB and
// RMSDB are the same values in dBFS (clamped at -120 dB for silence).
type Levels struct {
	Peak   float64
	RMS    float64
	PeakDB float64
	RMSDB  float64
}

// Meter tracks the peak and RMS level of the most recent block.
type Meter struct {
	mu     sync.Mutex
	levels Levels
}

// NewMeter returns a meter resting at silence.
func NewMeter() *Meter {
	return &Meter{levels: Levels{PeakDB: silenceDB, RMSDB: silenceDB}}
}

const silenceDB = -120.0

// Observe measures one block. Called from the render loop.
func (m *Meter) Observe(block []float64) {
	if len(block) == 0 {
		return
	}

	peak := 0.0
	sum := 0.0
	for _, v := range block {
		if a := math.Abs(v); a > peak {
			peak = a
		}
		sum += v * v
	}
	rms := math.Sqrt(sum / float64(len(block)))

	m.mu.Lock()
	m.levels = Levels{
		Peak:   peak,
		RMS:    rms,
		PeakDB: levelDB(peak),
		RMSDB:  levelDB(rms),
	}
	m.mu.Unlock()
}

// Snapshot returns the most recent reading.
func (m *Meter) Snapshot() Levels {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels
}

func levelDB(linear float64) float64 {
	if linear <= 0 {
		return silenceDB
	}
	return math.Max(core.LinearToDB(linear), silenceDB)
}
