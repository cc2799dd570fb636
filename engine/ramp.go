package engine

// DefaultRampSeconds is the transition time used for parameter changes
// when no explicit ramp length is configured. 20 ms is short enough to
// feel immediate under a slider and long enough to avoid zipper noise.
const DefaultRampSeconds = 0.02

// Ramp moves a control value linearly toward a target over a fixed
// number of samples. It is the smoothing element behind every audible
// parameter in the graph: the conductor ramps recipe parameters with
// it, and the engine ramps its wet-mix and master-gain controls.
//
// A Ramp is not safe for concurrent use; callers serialize access the
// same way they serialize block processing.
type Ramp struct {
	value  float64
	target float64
	step   float64
	length int // full ramp length in samples
	left   int // samples remaining until the target is reached
}

// NewRamp returns a ramp resting at initial that takes rampSamples
// samples to reach a new target. rampSamples below 1 is treated as 1
// (effectively immediate).
func NewRamp(initial float64, rampSamples int) *Ramp {
	if rampSamples < 1 {
		rampSamples = 1
	}
	return &Ramp{value: initial, target: initial, length: rampSamples}
}

// RampSamples converts a ramp duration in seconds to a sample count at
// the given rate, never returning less than 1.
func RampSamples(sampleRate, seconds float64) int {
	n := int(sampleRate * seconds)
	if n < 1 {
		n = 1
	}
	return n
}

// SetTarget starts a transition from the current value to v.
// Setting the current target again is a no-op.
func (r *Ramp) SetTarget(v float64) {
	if v == r.target {
		return
	}
	r.target = v
	r.step = (v - r.value) / float64(r.length)
	r.left = r.length
}

// SetImmediate jumps to v without ramping.
func (r *Ramp) SetImmediate(v float64) {
	r.value = v
	r.target = v
	r.step = 0
	r.left = 0
}

// Next advances the ramp by one sample and returns the new value.
func (r *Ramp) Next() float64 {
	if r.left > 0 {
		r.left--
		if r.left == 0 {
			// Land exactly on the target, absorbing float drift.
			r.value = r.target
		} else {
			r.value += r.step
		}
	}
	return r.value
}

// Step advances the ramp by n samples at once and returns the new
// value. Block-rate consumers use this instead of n calls to Next.
func (r *Ramp) Step(n int) float64 {
	if r.left > 0 && n > 0 {
		if n >= r.left {
			r.left = 0
			r.value = r.target
		} else {
			r.left -= n
			r.value += r.step * float64(n)
		}
	}
	return r.value
}

// Value returns the current (possibly mid-ramp) value.
func (r *Ramp) Value() float64 { return r.value }

// Target returns the value the ramp is heading toward.
func (r *Ramp) Target() float64 { return r.target }

// Done reports whether the ramp has reached its target.
func (r *Ramp) Done() bool { return r.left == 0 }
