package recipe

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
)

func wrapApplyErr(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("recipe: apply: %w", err)
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12
}

// valuesEq reports whether two value sets match within float tolerance.
// Nodes use it to skip redesigns when Apply is called with unchanged
// values.
func valuesEq(a, b Values) bool {
	if len(a) != len(b) {
		return false
	}

	for k, va := range a {
		vb, ok := b[k]
		if !ok || !floatEq(va, vb) {
			return false
		}
	}

	return true
}

// clampFreq keeps a frequency parameter inside the kernel-safe band
// below Nyquist.
func clampFreq(freq, sampleRate float64) float64 {
	return core.Clamp(freq, 20, sampleRate*0.49)
}

func roundStep(v float64) int {
	return int(math.Round(v))
}

// biquadNode runs a cascade of biquad sections whose coefficients are
// redesigned from the current values. Updating an existing chain keeps
// the per-section delay state when the section count is unchanged, so
// sweeping a cutoff stays click-free.
type biquadNode struct {
	chain  *biquad.Chain
	design func(v Values) ([]biquad.Coefficients, error)
	last   Values
}

func newBiquadNode(design func(v Values) ([]biquad.Coefficients, error)) *biquadNode {
	return &biquadNode{design: design}
}

func (n *biquadNode) Apply(v Values) error {
	if n.chain != nil && valuesEq(n.last, v) {
		return nil
	}

	coeffs, err := n.design(v)
	if err != nil {
		return wrapApplyErr(err)
	}

	if n.chain == nil {
		n.chain = biquad.NewChain(coeffs)
	} else {
		n.chain.UpdateCoefficients(coeffs, n.chain.Gain())
	}

	n.last = v.Clone()

	return nil
}

func (n *biquadNode) ProcessBlock(block []float64) {
	if n.chain != nil {
		n.chain.ProcessBlock(block)
	}
}
