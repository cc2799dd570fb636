package engine

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/cwbudde/algo-cookbook/internal/testutil"
)

// sliceSource plays a fixed buffer once, then reports io.EOF.
type sliceSource struct {
	data []float64
	pos  int
}

func (s *sliceSource) ReadSamples(dst []float64) (int, error) {
	n := copy(dst, s.data[s.pos:])
	s.pos += n
	if s.pos >= len(s.data) {
		return n, io.EOF
	}
	return n, nil
}

// endlessSource fills every block with a constant.
type endlessSource struct{ value float64 }

func (s *endlessSource) ReadSamples(dst []float64) (int, error) {
	for i := range dst {
		dst[i] = s.value
	}
	return len(dst), nil
}

// doubler is a trivial processor whose effect is easy to verify.
type doubler struct{}

func (doubler) ProcessBlock(buf []float64) {
	for i := range buf {
		buf[i] *= 2
	}
}

// collectSink appends everything written to it.
type collectSink struct {
	samples []float32
	closed  bool
}

func (s *collectSink) WriteAudio(samples []float32) error {
	s.samples = append(s.samples, samples...)
	return nil
}

func (s *collectSink) Close() error {
	s.closed = true
	return nil
}

// failSink rejects every write.
type failSink struct{}

func (failSink) WriteAudio([]float32) error { return errors.New("device gone") }
func (failSink) Close() error               { return nil }

// lastBlockTap keeps a copy of the most recent observed block.
type lastBlockTap struct{ block []float64 }

func (t *lastBlockTap) Observe(block []float64) {
	t.block = append(t.block[:0], block...)
}

func TestEngineDefaults(t *testing.T) {
	e := New()
	if e.SampleRate() != 44100 {
		t.Fatalf("default sample rate = %v, want 44100", e.SampleRate())
	}
	if e.BlockSize() != 1024 {
		t.Fatalf("default block size = %d, want 1024", e.BlockSize())
	}

	e = New(core.WithSampleRate(48000), core.WithBlockSize(256))
	if e.SampleRate() != 48000 || e.BlockSize() != 256 {
		t.Fatalf("options not applied: %v/%d", e.SampleRate(), e.BlockSize())
	}
}

func TestEngineWetZeroIsDryPath(t *testing.T) {
	input := testutil.Sine(440, 44100, 0.5, 2048)

	e := New()
	e.SetSource(&sliceSource{data: input})
	e.SetProcessor(doubler{})
	e.SetWetMix(0)

	// The wet ramp (20 ms = 882 samples) lands inside the first
	// 1024-frame block, so the block is rendered fully dry.
	block := make([]float64, 1024)
	n, err := e.Render(block)
	if err != nil || n != 1024 {
		t.Fatalf("Render = (%d, %v)", n, err)
	}
	for i := range block {
		if block[i] != input[i] {
			t.Fatalf("sample %d: got %v, want dry %v", i, block[i], input[i])
		}
	}
}

func TestEngineWetOneIsProcessedPath(t *testing.T) {
	input := testutil.Sine(440, 44100, 0.25, 2048)

	e := New()
	e.SetSource(&sliceSource{data: input})
	e.SetProcessor(doubler{})
	e.SetWetMix(1)

	block := make([]float64, 1024)
	if _, err := e.Render(block); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := make([]float64, 1024)
	for i := range want {
		want[i] = 2 * input[i]
	}
	testutil.RequireSliceClose(t, block, want, 1e-12)
}

func TestEngineEqualPowerMidBlend(t *testing.T) {
	input := testutil.Sine(220, 44100, 0.5, 2048)

	e := New()
	e.SetSource(&sliceSource{data: input})
	e.SetProcessor(doubler{})
	e.SetWetMix(0.5)

	block := make([]float64, 1024)
	if _, err := e.Render(block); err != nil {
		t.Fatalf("Render: %v", err)
	}
	g := math.Cos(math.Pi / 4)
	want := make([]float64, 1024)
	for i := range want {
		want[i] = g*input[i] + g*2*input[i]
	}
	testutil.RequireSliceClose(t, block, want, 1e-12)
}

func TestEngineMasterGain(t *testing.T) {
	e := New()
	e.SetSource(&endlessSource{value: 0.25})
	e.SetWetMix(0)
	e.SetMasterGain(2)

	block := make([]float64, 1024)
	if _, err := e.Render(block); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// Gain ramp lands within the block like the wet ramp.
	if got := block[len(block)-1]; math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("gained sample = %v, want 0.5", got)
	}

	if e.MasterGain() != 2 {
		t.Fatalf("MasterGain = %v", e.MasterGain())
	}

	// Out-of-range values clamp instead of erroring.
	e.SetMasterGain(99)
	if e.MasterGain() != 2 {
		t.Fatalf("gain not clamped: %v", e.MasterGain())
	}
	e.SetWetMix(-3)
	if e.WetMix() != 0 {
		t.Fatalf("wet mix not clamped: %v", e.WetMix())
	}
}

func TestEngineShortSourceZeroFillsTail(t *testing.T) {
	e := New()
	e.SetSource(&sliceSource{data: testutil.Sine(100, 44100, 1, 600)})
	e.SetWetMix(0)

	block := make([]float64, 1024)
	for i := range block {
		block[i] = math.NaN() // must be overwritten
	}
	n, err := e.Render(block)
	if n != 600 || !errors.Is(err, io.EOF) {
		t.Fatalf("Render = (%d, %v), want (600, io.EOF)", n, err)
	}
	testutil.RequireFinite(t, block)
	for i := 600; i < len(block); i++ {
		if block[i] != 0 {
			t.Fatalf("tail sample %d = %v, want 0", i, block[i])
		}
	}
}

func TestEngineNilSourceRendersSilence(t *testing.T) {
	e := New()
	block := make([]float64, 64)
	block[3] = 42
	n, err := e.Render(block)
	if n != 0 || err != nil {
		t.Fatalf("Render = (%d, %v)", n, err)
	}
	for i, v := range block {
		if v != 0 {
			t.Fatalf("sample %d = %v, want silence", i, v)
		}
	}

	if n, err := e.Render(nil); n != 0 || err != nil {
		t.Fatalf("empty Render = (%d, %v)", n, err)
	}
}

func TestEngineTapSeesPostMixBlock(t *testing.T) {
	e := New()
	e.SetSource(&endlessSource{value: 0.5})
	e.SetWetMix(0)

	tap := &lastBlockTap{}
	e.AddTap(tap)
	e.AddTap(nil) // ignored

	block := make([]float64, 512)
	if _, err := e.Render(block); err != nil {
		t.Fatalf("Render: %v", err)
	}
	testutil.RequireSliceClose(t, tap.block, block, 0)
}

func TestEngineRunDrainsSourceIntoSink(t *testing.T) {
	const frames = 3000 // not a multiple of the block size
	e := New()
	e.SetSource(&sliceSource{data: testutil.Noise(1, 0.8, frames)})
	e.SetWetMix(0)

	sink := &collectSink{}
	if err := e.Run(context.Background(), sink); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(sink.samples); got != 2*frames {
		t.Fatalf("sink received %d samples, want %d (stereo)", got, 2*frames)
	}
	// Stereo interleave duplicates the mono channel.
	for i := 0; i < len(sink.samples); i += 2 {
		if sink.samples[i] != sink.samples[i+1] {
			t.Fatalf("frame %d: L=%v R=%v", i/2, sink.samples[i], sink.samples[i+1])
		}
	}
}

func TestEngineRunStopsOnCancel(t *testing.T) {
	e := New()
	e.SetSource(&endlessSource{value: 0.1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := e.Run(ctx, &collectSink{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
}

func TestEngineRunSurfacesSinkError(t *testing.T) {
	e := New()
	e.SetLogger(nil) // exercise the discard path
	e.SetSource(&endlessSource{value: 0.1})

	err := e.Run(context.Background(), failSink{})
	if err == nil {
		t.Fatal("Run should surface the sink error")
	}
}
