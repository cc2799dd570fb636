package tap

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-dsp/dsp/window"
)

// Spectrum computes Hann-windowed FFT magnitudes of the rendered
// signal. Incoming blocks are accumulated until one analysis frame is
// full, then transformed; the latest magnitude frame is kept for
// Snapshot.
type Spectrum struct {
	sampleRate float64
	size       int
	win        []float64
	winSum     float64
	plan       *algofft.Plan[complex128]

	frame  []float64    // accumulation buffer, filled across blocks
	filled int          // samples accumulated so far
	fin    []complex128 // scratch FFT input
	fout   []complex128 // scratch FFT output

	mu   sync.Mutex
	mags []float64 // latest magnitudes in dB, size/2+1 bins
}

// NewSpectrum returns a spectrum tap with the given power-of-two FFT
// size (e.g. 2048).
func NewSpectrum(sampleRate float64, fftSize int) (*Spectrum, error) {
	if fftSize < 16 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("tap: fft size %d is not a power of two >= 16", fftSize)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("tap: invalid sample rate %v", sampleRate)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("tap: fft plan: %w", err)
	}

	win := window.Generate(window.TypeHann, fftSize)
	winSum := 0.0
	for _, w := range win {
		winSum += w
	}

	bins := fftSize/2 + 1
	mags := make([]float64, bins)
	for i := range mags {
		mags[i] = silenceDB
	}

	return &Spectrum{
		sampleRate: sampleRate,
		size:       fftSize,
		win:        win,
		winSum:     winSum,
		plan:       plan,
		frame:      make([]float64, fftSize),
		fin:        make([]complex128, fftSize),
		fout:       make([]complex128, fftSize),
		mags:       mags,
	}, nil
}

// Observe accumulates one block. A full analysis frame triggers an
// FFT; partial frames wait for the next block.
func (s *Spectrum) Observe(block []float64) {
	for len(block) > 0 {
		n := copy(s.frame[s.filled:], block)
		s.filled += n
		block = block[n:]
		if s.filled == s.size {
			s.analyze()
			s.filled = 0
		}
	}
}

func (s *Spectrum) analyze() {
	for i, v := range s.frame {
		s.fin[i] = complex(v*s.win[i], 0)
	}
	if err := s.plan.Forward(s.fout, s.fin); err != nil {
		return
	}

	// Amplitude normalization: 2/sum(window), except at DC and
	// Nyquist where the spectrum is not mirrored.
	scale := 2 / s.winSum

	s.mu.Lock()
	for k := range s.mags {
		c := scale
		if k == 0 || k == s.size/2 {
			c = 1 / s.winSum
		}
		mag := cmplx.Abs(s.fout[k]) * c
		if mag <= 0 {
			s.mags[k] = silenceDB
		} else {
			s.mags[k] = math.Max(20*math.Log10(mag), silenceDB)
		}
	}
	s.mu.Unlock()
}

// Snapshot copies the latest magnitude frame (dB) into dst, growing it
// if needed, and returns the slice.
func (s *Spectrum) Snapshot(dst []float64) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cap(dst) < len(s.mags) {
		dst = make([]float64, len(s.mags))
	}
	dst = dst[:len(s.mags)]
	copy(dst, s.mags)
	return dst
}

// Bins returns the number of magnitude bins (fftSize/2 + 1).
func (s *Spectrum) Bins() int { return s.size/2 + 1 }

// BinFrequency returns the center frequency of bin i in Hz.
func (s *Spectrum) BinFrequency(i int) float64 {
	return float64(i) * s.sampleRate / float64(s.size)
}
