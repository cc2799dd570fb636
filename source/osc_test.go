package source

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-cookbook/internal/testutil"
)

func TestOscillatorSilentWhenIdle(t *testing.T) {
	o := NewOscillator(44100)
	block := make([]float64, 512)
	n, err := o.ReadSamples(block)
	if n != 512 || err != nil {
		t.Fatalf("ReadSamples = (%d, %v)", n, err)
	}
	for i, v := range block {
		if v != 0 {
			t.Fatalf("sample %d = %v, want silence", i, v)
		}
	}
}

func TestOscillatorNoteLifecycle(t *testing.T) {
	o := NewOscillator(44100)
	o.NoteOn(69, 1.0)
	if o.ActiveVoices() != 1 {
		t.Fatalf("ActiveVoices = %d", o.ActiveVoices())
	}

	// 100 ms held: the attack has finished, the tone is audible.
	held := make([]float64, 4410)
	o.ReadSamples(held)
	testutil.RequireFinite(t, held)
	if p := testutil.Peak(held); p < 0.1 || p > 0.25 {
		t.Fatalf("held peak = %v, want ~0.2", p)
	}

	o.NoteOff(69)

	// The release lasts 250 ms; after 300 ms the voice is gone.
	tail := make([]float64, 13230)
	o.ReadSamples(tail)
	if o.ActiveVoices() != 0 {
		t.Fatalf("voice still active after release: %d", o.ActiveVoices())
	}
	for i := len(tail) - 100; i < len(tail); i++ {
		if tail[i] != 0 {
			t.Fatalf("sample %d = %v, want silence after release", i, tail[i])
		}
	}
}

func TestOscillatorZeroVelocityReleases(t *testing.T) {
	o := NewOscillator(44100)
	o.NoteOn(60, 1.0)
	o.NoteOn(60, 0) // running-status style note-off

	tail := make([]float64, 13230)
	o.ReadSamples(tail)
	if o.ActiveVoices() != 0 {
		t.Fatalf("zero-velocity NoteOn did not release: %d voices", o.ActiveVoices())
	}
}

func TestOscillatorEvictsOldestVoice(t *testing.T) {
	o := NewOscillator(44100)
	for key := 20; key < 20+maxVoices+8; key++ {
		o.NoteOn(key, 0.5)
	}
	if o.ActiveVoices() != maxVoices {
		t.Fatalf("ActiveVoices = %d, want %d", o.ActiveVoices(), maxVoices)
	}
	// The survivors are the newest voices.
	if o.voices[0].key != 20+8 {
		t.Fatalf("oldest surviving key = %d, want %d", o.voices[0].key, 20+8)
	}
}

func TestKeyFrequency(t *testing.T) {
	tests := []struct {
		key  int
		want float64
	}{
		{69, 440},
		{81, 880},
		{57, 220},
		{60, 261.6256},
		{21, 27.5},
	}
	for _, tt := range tests {
		if got := KeyFrequency(tt.key); math.Abs(got-tt.want) > 1e-3 {
			t.Errorf("KeyFrequency(%d) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
