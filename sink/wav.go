package sink

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVWriter renders the engine's stereo output into a 16-bit PCM WAV
// file. Frames are encoded as they arrive; Close finalizes the RIFF
// headers.
type WAVWriter struct {
	f   *os.File
	enc *wav.Encoder
	buf *audio.IntBuffer
}

// NewWAVWriter creates path and prepares a stereo 16-bit encoder at
// sampleRate.
func NewWAVWriter(path string, sampleRate float64) (*WAVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sink: create wav: %w", err)
	}

	rate := int(math.Round(sampleRate))
	return &WAVWriter{
		f:   f,
		enc: wav.NewEncoder(f, rate, 16, 2, 1),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 2, SampleRate: rate},
			SourceBitDepth: 16,
		},
	}, nil
}

// WriteAudio quantizes samples to 16-bit PCM and appends them to the
// file.
func (w *WAVWriter) WriteAudio(samples []float32) error {
	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}

	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = pcm16(s)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("sink: wav write: %w", err)
	}

	return nil
}

// Close finalizes the WAV headers and closes the file.
func (w *WAVWriter) Close() error {
	if err := w.enc.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("sink: wav finalize: %w", err)
	}

	if err := w.f.Close(); err != nil {
		return fmt.Errorf("sink: wav close: %w", err)
	}

	return nil
}

// pcm16 converts a float32 sample in [-1, 1] to a clipped 16-bit code.
func pcm16(s float32) int {
	v := int(math.Round(float64(s) * 32767))
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return v
}
