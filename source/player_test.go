package source

import (
	"errors"
	"io"
	"testing"

	"github.com/cwbudde/algo-cookbook/internal/testutil"
	"github.com/cwbudde/algo-cookbook/sample"
)

func rampClip(frames int) *sample.Clip {
	data := make([]float64, frames)
	for i := range data {
		data[i] = float64(i) / float64(frames)
	}
	return &sample.Clip{Data: data, SampleRate: 44100}
}

func TestSamplePlayerOneShot(t *testing.T) {
	clip := rampClip(1000)
	p := NewSamplePlayer(clip, false)

	var got []float64
	block := make([]float64, 256)
	for {
		n, err := p.ReadSamples(block)
		got = append(got, block[:n]...)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.Fatalf("ReadSamples: %v", err)
			}
			break
		}
	}

	testutil.RequireSliceClose(t, got, clip.Data, 0)

	// Exhausted player stays at EOF.
	if n, err := p.ReadSamples(block); n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("post-EOF read = (%d, %v)", n, err)
	}

	// Reset rewinds.
	p.Reset()
	if n, _ := p.ReadSamples(block); n != 256 {
		t.Fatalf("read after Reset = %d", n)
	}
}

func TestSamplePlayerLoops(t *testing.T) {
	clip := rampClip(300)
	p := NewSamplePlayer(clip, true)

	block := make([]float64, 1024)
	n, err := p.ReadSamples(block)
	if n != 1024 || err != nil {
		t.Fatalf("ReadSamples = (%d, %v)", n, err)
	}
	// Wrap point: sample 300 restarts the clip.
	if block[300] != clip.Data[0] || block[599] != clip.Data[299] {
		t.Fatalf("loop wrap mismatch: %v, %v", block[300], block[599])
	}
	if !p.Looping() {
		t.Fatal("Looping() = false")
	}
}

func TestSamplePlayerGainRamp(t *testing.T) {
	data := make([]float64, 4096)
	for i := range data {
		data[i] = 1
	}
	p := NewSamplePlayer(&sample.Clip{Data: data, SampleRate: 44100}, false)
	p.SetGain(0)

	block := make([]float64, 2048)
	if _, err := p.ReadSamples(block); err != nil {
		t.Fatalf("ReadSamples: %v", err)
	}

	if block[0] < 0.99 {
		t.Fatalf("gain dropped instantly: first sample %v", block[0])
	}
	for i := 1; i < 1000; i++ {
		if block[i] > block[i-1]+1e-12 {
			t.Fatalf("gain ramp not monotone at %d", i)
		}
	}
	// 20 ms at 44.1 kHz is 882 samples; well after that it is silent.
	if block[1500] != 0 {
		t.Fatalf("sample 1500 = %v, want 0 after ramp", block[1500])
	}

	if p.Gain() != 0 {
		t.Fatalf("Gain() = %v", p.Gain())
	}
	// Setter clamps.
	p.SetGain(5)
	if p.Gain() != 2 {
		t.Fatalf("gain not clamped: %v", p.Gain())
	}
}

func TestSamplePlayerEmptyClip(t *testing.T) {
	p := NewSamplePlayer(&sample.Clip{SampleRate: 44100}, true)
	if n, err := p.ReadSamples(make([]float64, 16)); n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("empty clip read = (%d, %v)", n, err)
	}
}
