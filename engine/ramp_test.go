package engine

import (
	"math"
	"testing"
)

func TestRampReachesTargetExactly(t *testing.T) {
	r := NewRamp(0, 64)
	r.SetTarget(1)

	for i := 0; i < 63; i++ {
		r.Next()
	}
	if r.Done() {
		t.Fatal("ramp finished one sample early")
	}

	got := r.Next()
	if got != 1 {
		t.Fatalf("final value = %v, want exactly 1", got)
	}
	if !r.Done() {
		t.Fatal("ramp not done after full length")
	}

	// Stays put afterwards.
	for i := 0; i < 10; i++ {
		if v := r.Next(); v != 1 {
			t.Fatalf("value drifted to %v after completion", v)
		}
	}
}

func TestRampIsMonotone(t *testing.T) {
	tests := []struct {
		name string
		from float64
		to   float64
	}{
		{"rising", 0.0, 0.8},
		{"falling", 1.0, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRamp(tt.from, 100)
			r.SetTarget(tt.to)

			prev := tt.from
			for i := 0; i < 100; i++ {
				v := r.Next()
				if tt.to > tt.from && v < prev-1e-12 {
					t.Fatalf("sample %d: %v not rising from %v", i, v, prev)
				}
				if tt.to < tt.from && v > prev+1e-12 {
					t.Fatalf("sample %d: %v not falling from %v", i, v, prev)
				}
				prev = v
			}
			if prev != tt.to {
				t.Fatalf("ended at %v, want %v", prev, tt.to)
			}
		})
	}
}

func TestRampStepMatchesNext(t *testing.T) {
	a := NewRamp(0.2, 512)
	b := NewRamp(0.2, 512)
	a.SetTarget(-0.7)
	b.SetTarget(-0.7)

	var last float64
	for i := 0; i < 512; i++ {
		last = a.Next()
	}
	got := b.Step(512)
	if math.Abs(got-last) > 1e-12 {
		t.Fatalf("Step(512) = %v, 512×Next = %v", got, last)
	}

	// Partial stepping lands mid-ramp at the per-sample value.
	c := NewRamp(0, 100)
	d := NewRamp(0, 100)
	c.SetTarget(1)
	d.SetTarget(1)
	for i := 0; i < 40; i++ {
		last = c.Next()
	}
	if got := d.Step(40); math.Abs(got-last) > 1e-12 {
		t.Fatalf("Step(40) = %v, 40×Next = %v", got, last)
	}
}

func TestRampSetImmediate(t *testing.T) {
	r := NewRamp(0, 1000)
	r.SetTarget(1)
	r.Step(10)

	r.SetImmediate(0.5)
	if r.Value() != 0.5 || r.Target() != 0.5 || !r.Done() {
		t.Fatalf("after SetImmediate: value=%v target=%v done=%v", r.Value(), r.Target(), r.Done())
	}
}

func TestRampRetarget(t *testing.T) {
	r := NewRamp(0, 10)
	r.SetTarget(1)
	r.Step(5)

	// Redirect mid-flight; must land exactly on the new target.
	r.SetTarget(-1)
	got := r.Step(10)
	if got != -1 {
		t.Fatalf("retargeted ramp ended at %v, want -1", got)
	}
}

func TestRampSamples(t *testing.T) {
	if n := RampSamples(44100, DefaultRampSeconds); n != 882 {
		t.Fatalf("RampSamples(44100, 20ms) = %d, want 882", n)
	}
	if n := RampSamples(44100, 0); n != 1 {
		t.Fatalf("zero duration should clamp to 1 sample, got %d", n)
	}
}
