package recipe

import (
	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/effects/pitch"
)

func registerPitch(r *Registry) {
	r.MustRegister(Recipe{
		Name:  "pitch-time",
		Title: "Pitch shifter (time domain)",
		Group: GroupPitch,
		Doc: "SOLA-style grain splicing. Larger sequence windows favor tonal material, " +
			"shorter ones transients.",
		Params: []ParamSpec{
			{Name: "semitones", Label: "Pitch", Unit: "st", Min: -24, Max: 24, Default: 4, Step: 0.1},
			{Name: "sequence", Label: "Sequence", Unit: "ms", Min: 20, Max: 120, Default: 40, Step: 1},
			{Name: "overlap", Label: "Overlap", Unit: "ms", Min: 4, Max: 60, Default: 10, Step: 1},
			{Name: "search", Label: "Search", Unit: "ms", Min: 2, Max: 40, Default: 15, Step: 1},
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := pitch.NewPitchShifter(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &timePitchNode{fx: fx}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "pitch-spectral",
		Title: "Pitch shifter (phase vocoder)",
		Group: GroupPitch,
		Doc: "FFT-based shift. Frame size is snapped to a power of two; the hop ratio " +
			"trades smearing against phasiness.",
		Params: []ParamSpec{
			{Name: "semitones", Label: "Pitch", Unit: "st", Min: -24, Max: 24, Default: 4, Step: 0.1},
			{Name: "frameSize", Label: "Frame size", Min: 256, Max: 4096, Default: 1024, Step: 256},
			{Name: "hopRatio", Label: "Hop ratio", Min: 0.05, Max: 0.5, Default: 0.25, Step: 0.01},
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := pitch.NewSpectralPitchShifter(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &spectralPitchNode{fx: fx}, nil
		},
	})
}

type timePitchNode struct {
	fx   *pitch.PitchShifter
	last Values
}

func (n *timePitchNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	seq := core.Clamp(v.Get("sequence", 40), 20, 120)

	overlap := core.Clamp(v.Get("overlap", 10), 4, 60)
	if overlap >= seq {
		overlap = seq - 1
	}

	err := n.fx.SetPitchSemitones(core.Clamp(v.Get("semitones", 4), -24, 24))
	if err != nil {
		return wrapApplyErr(err)
	}

	// The kernel insists on overlap < sequence at every setter call.
	// Park the overlap at its floor before moving the sequence.
	err = n.fx.SetOverlap(4)
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetSequence(seq)
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetOverlap(overlap)
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetSearch(core.Clamp(v.Get("search", 15), 2, 40))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *timePitchNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}

type spectralPitchNode struct {
	fx   *pitch.SpectralPitchShifter
	last Values
}

func (n *spectralPitchNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	frame := snapFrameSize(roundStep(v.Get("frameSize", 1024)))

	hop := max(roundStep(float64(frame)*core.Clamp(v.Get("hopRatio", 0.25), 0.05, 0.5)), 1)
	if hop >= frame {
		hop = frame - 1
	}

	err := n.fx.SetPitchSemitones(core.Clamp(v.Get("semitones", 4), -24, 24))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetFrameSize(frame)
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetAnalysisHop(hop)
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *spectralPitchNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}

// snapFrameSize rounds n to the nearest power of two in [256, 4096].
func snapFrameSize(n int) int {
	if n < 256 {
		return 256
	}

	if n > 4096 {
		return 4096
	}

	if n&(n-1) == 0 {
		return n
	}

	upper := 256
	for upper < n {
		upper <<= 1
	}

	lower := upper >> 1
	if n-lower <= upper-n {
		return lower
	}

	return upper
}
