package recipe

import (
	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/effects"
	"github.com/cwbudde/algo-dsp/dsp/effects/modulation"
)

func registerEffects(r *Registry) {
	r.MustRegister(Recipe{
		Name:  "delay",
		Title: "Feedback delay",
		Group: GroupEffects,
		Doc:   "Single-tap delay line with feedback. Time changes are crossfaded by the kernel.",
		Params: []ParamSpec{
			{Name: "time", Label: "Delay time", Unit: "s", Min: 0.001, Max: 2, Default: 0.35, Step: 0.001},
			{Name: "feedback", Label: "Feedback", Min: 0, Max: 0.99, Default: 0.35, Step: 0.01},
			mixParam(0.3),
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := effects.NewDelay(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &delayNode{fx: fx}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "bitcrusher",
		Title: "Bit crusher",
		Group: GroupEffects,
		Doc:   "Quantizes amplitude to the given bit depth and holds samples for lo-fi aliasing.",
		Params: []ParamSpec{
			{Name: "bitDepth", Label: "Bit depth", Unit: "bit", Min: 1, Max: 32, Default: 8, Step: 1},
			{Name: "downsample", Label: "Downsample factor", Min: 1, Max: 256, Default: 4, Step: 1},
			mixParam(1),
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := effects.NewBitCrusher(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &bitCrusherNode{fx: fx}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "distortion",
		Title: "Distortion",
		Group: GroupEffects,
		Doc: "Waveshaping drive. Mode 0 soft clip, 1 hard clip, 2 tanh, 3-10 waveshaper " +
			"curves, 11-13 saturators. Shape and bias only affect some modes.",
		Params: []ParamSpec{
			{Name: "mode", Label: "Mode", Min: 0, Max: 13, Default: 2, Step: 1},
			{Name: "drive", Label: "Drive", Min: 0.01, Max: 20, Default: 1.8, Step: 0.01},
			{Name: "output", Label: "Output level", Min: 0, Max: 4, Default: 1, Step: 0.01},
			{Name: "shape", Label: "Shape", Min: 0, Max: 1, Default: 0.5, Step: 0.01},
			{Name: "bias", Label: "Bias", Min: -1, Max: 1, Default: 0, Step: 0.01},
			mixParam(1),
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := effects.NewDistortion(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &distortionNode{fx: fx}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "tremolo",
		Title: "Tremolo",
		Group: GroupEffects,
		Doc:   "LFO amplitude modulation with smoothing against zipper artifacts.",
		Params: []ParamSpec{
			{Name: "rateHz", Label: "Rate", Unit: "Hz", Min: 0.05, Max: 20, Default: 4, Step: 0.01},
			{Name: "depth", Label: "Depth", Min: 0, Max: 1, Default: 0.6, Step: 0.01},
			{Name: "smoothingMs", Label: "Smoothing", Unit: "ms", Min: 0, Max: 200, Default: 5, Step: 0.1},
			mixParam(1),
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := modulation.NewTremolo(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &tremoloNode{fx: fx}, nil
		},
	})
}

type tremoloNode struct {
	fx   *modulation.Tremolo
	last Values
}

func (n *tremoloNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetRateHz(core.Clamp(v.Get("rateHz", 4), 0.05, 20))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetDepth(core.Clamp(v.Get("depth", 0.6), 0, 1))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetSmoothingMs(core.Clamp(v.Get("smoothingMs", 5), 0, 200))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetMix(core.Clamp(v.Get("mix", 1), 0, 1))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *tremoloNode) ProcessBlock(block []float64) {
	_ = n.fx.ProcessInPlace(block)
}

type delayNode struct {
	fx   *effects.Delay
	last Values
}

func (n *delayNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetTime(core.Clamp(v.Get("time", 0.35), 0.001, 2))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetFeedback(core.Clamp(v.Get("feedback", 0.35), 0, 0.99))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetMix(core.Clamp(v.Get("mix", 0.3), 0, 1))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *delayNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}

type bitCrusherNode struct {
	fx   *effects.BitCrusher
	last Values
}

func (n *bitCrusherNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetBitDepth(core.Clamp(v.Get("bitDepth", 8), 1, 32))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetDownsample(min(max(roundStep(v.Get("downsample", 4)), 1), 256))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetMix(core.Clamp(v.Get("mix", 1), 0, 1))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *bitCrusherNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}

// distortionModes maps the stepped mode parameter onto the kernel's
// enumerated curves. The Chebyshev mode is left out: it needs a
// harmonic weight vector that a flat value set cannot describe.
var distortionModes = []effects.DistortionMode{
	effects.DistortionModeSoftClip,
	effects.DistortionModeHardClip,
	effects.DistortionModeTanh,
	effects.DistortionModeWaveshaper1,
	effects.DistortionModeWaveshaper2,
	effects.DistortionModeWaveshaper3,
	effects.DistortionModeWaveshaper4,
	effects.DistortionModeWaveshaper5,
	effects.DistortionModeWaveshaper6,
	effects.DistortionModeWaveshaper7,
	effects.DistortionModeWaveshaper8,
	effects.DistortionModeSaturate,
	effects.DistortionModeSaturate2,
	effects.DistortionModeSoftSat,
}

type distortionNode struct {
	fx   *effects.Distortion
	last Values
}

func (n *distortionNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	mode := min(max(roundStep(v.Get("mode", 2)), 0), len(distortionModes)-1)

	err := n.fx.SetMode(distortionModes[mode])
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetApproxMode(effects.DistortionApproxExact)
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetDrive(core.Clamp(v.Get("drive", 1.8), 0.01, 20))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetOutputLevel(core.Clamp(v.Get("output", 1), 0, 4))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetShape(core.Clamp(v.Get("shape", 0.5), 0, 1))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetBias(core.Clamp(v.Get("bias", 0), -1, 1))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetMix(core.Clamp(v.Get("mix", 1), 0, 1))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *distortionNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}
