package source

import (
	"errors"
	"io"
	"testing"

	"github.com/cwbudde/algo-cookbook/internal/testutil"
	"github.com/cwbudde/algo-cookbook/sample"
)

func TestLimitEndsEndlessSource(t *testing.T) {
	clip := &sample.Clip{Data: []float64{1, 2, 3, 4}, SampleRate: 44100}
	lim := Limit(NewSamplePlayer(clip, true), 10)

	block := make([]float64, 8)
	n, err := lim.ReadSamples(block)
	if n != 8 || err != nil {
		t.Fatalf("first read = (%d, %v), want (8, nil)", n, err)
	}
	testutil.RequireSliceClose(t, block, []float64{1, 2, 3, 4, 1, 2, 3, 4}, 0)

	n, err = lim.ReadSamples(block)
	if n != 2 || !errors.Is(err, io.EOF) {
		t.Fatalf("final read = (%d, %v), want (2, EOF)", n, err)
	}
	testutil.RequireSliceClose(t, block[:2], []float64{1, 2}, 0)

	n, err = lim.ReadSamples(block)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("read past end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestLimitPassesEarlyEOF(t *testing.T) {
	clip := &sample.Clip{Data: []float64{1, 2, 3}, SampleRate: 44100}
	lim := Limit(NewSamplePlayer(clip, false), 100)

	block := make([]float64, 8)
	n, err := lim.ReadSamples(block)
	if n != 3 || !errors.Is(err, io.EOF) {
		t.Fatalf("read = (%d, %v), want (3, EOF)", n, err)
	}
	if lim.Remaining() != 97 {
		t.Fatalf("Remaining = %d, want 97", lim.Remaining())
	}
}
