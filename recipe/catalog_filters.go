package recipe

import (
	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
	"github.com/cwbudde/algo-dsp/dsp/filter/moog"
)

// Shared parameter descriptors. The ranges mirror the limits the
// underlying kernels accept, so a clamped value never fails Apply.

func freqParam(label string, def float64) ParamSpec {
	return ParamSpec{Name: "freq", Label: label, Unit: "Hz", Min: 20, Max: 20000, Default: def, Step: 1}
}

func qParam(def float64) ParamSpec {
	return ParamSpec{Name: "q", Label: "Q", Min: 0.2, Max: 8, Default: def, Step: 0.01}
}

func gainParam(def float64) ParamSpec {
	return ParamSpec{Name: "gain", Label: "Gain", Unit: "dB", Min: -24, Max: 24, Default: def, Step: 0.1}
}

func mixParam(def float64) ParamSpec {
	return ParamSpec{Name: "mix", Label: "Mix", Min: 0, Max: 1, Default: def, Step: 0.01}
}

func orderParam(def float64) ParamSpec {
	return ParamSpec{Name: "order", Label: "Order", Min: 1, Max: 12, Default: def, Step: 1}
}

//nolint:funlen
func registerFilters(r *Registry) {
	r.MustRegister(Recipe{
		Name:  "lowpass",
		Title: "Lowpass (RBJ biquad)",
		Group: GroupFilters,
		Doc:   "Second-order lowpass. Q above 0.707 adds a resonant bump at the cutoff.",
		Params: []ParamSpec{
			freqParam("Cutoff", 1000),
			qParam(0.707),
		},
		Build: func(ctx BuildContext) (Node, error) {
			return newBiquadNode(func(v Values) ([]biquad.Coefficients, error) {
				freq := clampFreq(v.Get("freq", 1000), ctx.SampleRate)
				q := core.Clamp(v.Get("q", 0.707), 0.2, 8)

				return []biquad.Coefficients{design.Lowpass(freq, q, ctx.SampleRate)}, nil
			}), nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "highpass",
		Title: "Highpass (RBJ biquad)",
		Group: GroupFilters,
		Doc:   "Second-order highpass.",
		Params: []ParamSpec{
			freqParam("Cutoff", 200),
			qParam(0.707),
		},
		Build: func(ctx BuildContext) (Node, error) {
			return newBiquadNode(func(v Values) ([]biquad.Coefficients, error) {
				freq := clampFreq(v.Get("freq", 200), ctx.SampleRate)
				q := core.Clamp(v.Get("q", 0.707), 0.2, 8)

				return []biquad.Coefficients{design.Highpass(freq, q, ctx.SampleRate)}, nil
			}), nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "bandpass",
		Title: "Bandpass (RBJ biquad)",
		Group: GroupFilters,
		Doc:   "Constant-skirt-gain bandpass. Higher Q narrows the band.",
		Params: []ParamSpec{
			freqParam("Center", 1000),
			qParam(1),
		},
		Build: func(ctx BuildContext) (Node, error) {
			return newBiquadNode(func(v Values) ([]biquad.Coefficients, error) {
				freq := clampFreq(v.Get("freq", 1000), ctx.SampleRate)
				q := core.Clamp(v.Get("q", 1), 0.2, 8)

				return []biquad.Coefficients{design.Bandpass(freq, q, ctx.SampleRate)}, nil
			}), nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "notch",
		Title: "Notch (RBJ biquad)",
		Group: GroupFilters,
		Doc:   "Rejects a narrow band around the center frequency.",
		Params: []ParamSpec{
			freqParam("Center", 1000),
			qParam(2),
		},
		Build: func(ctx BuildContext) (Node, error) {
			return newBiquadNode(func(v Values) ([]biquad.Coefficients, error) {
				freq := clampFreq(v.Get("freq", 1000), ctx.SampleRate)
				q := core.Clamp(v.Get("q", 2), 0.2, 8)

				return []biquad.Coefficients{design.Notch(freq, q, ctx.SampleRate)}, nil
			}), nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "peak",
		Title: "Peaking EQ (RBJ)",
		Group: GroupFilters,
		Doc:   "Classic parametric bell. Boost or cut around the center frequency.",
		Params: []ParamSpec{
			freqParam("Center", 1000),
			gainParam(6),
			qParam(1),
		},
		Build: func(ctx BuildContext) (Node, error) {
			return newBiquadNode(func(v Values) ([]biquad.Coefficients, error) {
				freq := clampFreq(v.Get("freq", 1000), ctx.SampleRate)
				gain := core.Clamp(v.Get("gain", 6), -24, 24)
				q := core.Clamp(v.Get("q", 1), 0.2, 8)

				return []biquad.Coefficients{design.Peak(freq, gain, q, ctx.SampleRate)}, nil
			}), nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "peak-orfanidis",
		Title: "Peaking EQ (Orfanidis)",
		Group: GroupFilters,
		Doc: "Decramped parametric bell with prescribed unity gain at DC and Nyquist. " +
			"Compare against the plain peak recipe at high center frequencies.",
		Params: []ParamSpec{
			freqParam("Center", 8000),
			gainParam(6),
			qParam(1),
		},
		Build: func(ctx BuildContext) (Node, error) {
			return newBiquadNode(func(v Values) ([]biquad.Coefficients, error) {
				freq := clampFreq(v.Get("freq", 8000), ctx.SampleRate)
				gain := core.Clamp(v.Get("gain", 6), -24, 24)
				q := core.Clamp(v.Get("q", 1), 0.2, 8)

				coeff := design.Peak(freq, gain, q, ctx.SampleRate,
					design.WithDCGain(1), design.WithNyquistGain(1))

				return []biquad.Coefficients{coeff}, nil
			}), nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "low-shelf",
		Title: "Low shelf",
		Group: GroupFilters,
		Doc:   "Boosts or cuts everything below the corner frequency.",
		Params: []ParamSpec{
			freqParam("Corner", 200),
			gainParam(6),
			qParam(0.707),
		},
		Build: func(ctx BuildContext) (Node, error) {
			return newBiquadNode(func(v Values) ([]biquad.Coefficients, error) {
				freq := clampFreq(v.Get("freq", 200), ctx.SampleRate)
				gain := core.Clamp(v.Get("gain", 6), -24, 24)
				q := core.Clamp(v.Get("q", 0.707), 0.2, 8)

				return []biquad.Coefficients{design.LowShelf(freq, gain, q, ctx.SampleRate)}, nil
			}), nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "high-shelf",
		Title: "High shelf",
		Group: GroupFilters,
		Doc:   "Boosts or cuts everything above the corner frequency.",
		Params: []ParamSpec{
			freqParam("Corner", 4000),
			gainParam(6),
			qParam(0.707),
		},
		Build: func(ctx BuildContext) (Node, error) {
			return newBiquadNode(func(v Values) ([]biquad.Coefficients, error) {
				freq := clampFreq(v.Get("freq", 4000), ctx.SampleRate)
				gain := core.Clamp(v.Get("gain", 6), -24, 24)
				q := core.Clamp(v.Get("q", 0.707), 0.2, 8)

				return []biquad.Coefficients{design.HighShelf(freq, gain, q, ctx.SampleRate)}, nil
			}), nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "butterworth-lp",
		Title: "Butterworth lowpass",
		Group: GroupFilters,
		Doc:   "Maximally flat passband; the order sets the rolloff steepness (6 dB/octave per order).",
		Params: []ParamSpec{
			freqParam("Cutoff", 1000),
			orderParam(4),
		},
		Build: func(ctx BuildContext) (Node, error) {
			return newBiquadNode(func(v Values) ([]biquad.Coefficients, error) {
				freq := clampFreq(v.Get("freq", 1000), ctx.SampleRate)
				order := min(max(roundStep(v.Get("order", 4)), 1), 12)

				return design.ButterworthLP(freq, order, ctx.SampleRate), nil
			}), nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "butterworth-hp",
		Title: "Butterworth highpass",
		Group: GroupFilters,
		Doc:   "Maximally flat highpass cascade.",
		Params: []ParamSpec{
			freqParam("Cutoff", 200),
			orderParam(4),
		},
		Build: func(ctx BuildContext) (Node, error) {
			return newBiquadNode(func(v Values) ([]biquad.Coefficients, error) {
				freq := clampFreq(v.Get("freq", 200), ctx.SampleRate)
				order := min(max(roundStep(v.Get("order", 4)), 1), 12)

				return design.ButterworthHP(freq, order, ctx.SampleRate), nil
			}), nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "chebyshev1",
		Title: "Chebyshev Type I lowpass",
		Group: GroupFilters,
		Doc:   "Steeper than Butterworth at the same order, traded against passband ripple.",
		Params: []ParamSpec{
			freqParam("Cutoff", 1000),
			orderParam(4),
			{Name: "ripple", Label: "Passband ripple", Unit: "dB", Min: 0.01, Max: 3, Default: 1, Step: 0.01},
		},
		Build: func(ctx BuildContext) (Node, error) {
			return newBiquadNode(func(v Values) ([]biquad.Coefficients, error) {
				freq := clampFreq(v.Get("freq", 1000), ctx.SampleRate)
				order := min(max(roundStep(v.Get("order", 4)), 1), 12)
				ripple := core.Clamp(v.Get("ripple", 1), 0.01, 3)

				return design.Chebyshev1LP(freq, order, ripple, ctx.SampleRate), nil
			}), nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "bessel",
		Title: "Bessel lowpass",
		Group: GroupFilters,
		Doc:   "Maximally flat group delay; the gentlest rolloff but the cleanest transient response.",
		Params: []ParamSpec{
			freqParam("Cutoff", 1000),
			orderParam(4),
		},
		Build: func(ctx BuildContext) (Node, error) {
			return newBiquadNode(func(v Values) ([]biquad.Coefficients, error) {
				freq := clampFreq(v.Get("freq", 1000), ctx.SampleRate)
				order := min(max(roundStep(v.Get("order", 4)), 1), 12)

				return design.BesselLP(freq, order, ctx.SampleRate), nil
			}), nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "elliptic",
		Title: "Elliptic lowpass",
		Group: GroupFilters,
		Doc:   "Sharpest cutoff per order; ripple in the passband and a bounded stopband floor.",
		Params: []ParamSpec{
			freqParam("Cutoff", 1000),
			orderParam(4),
			{Name: "ripple", Label: "Passband ripple", Unit: "dB", Min: 0.01, Max: 3, Default: 1, Step: 0.01},
			{Name: "stopband", Label: "Stopband attenuation", Unit: "dB", Min: 20, Max: 100, Default: 40, Step: 1},
		},
		Build: func(ctx BuildContext) (Node, error) {
			return newBiquadNode(func(v Values) ([]biquad.Coefficients, error) {
				freq := clampFreq(v.Get("freq", 1000), ctx.SampleRate)
				order := min(max(roundStep(v.Get("order", 4)), 1), 12)
				ripple := core.Clamp(v.Get("ripple", 1), 0.01, 3)
				stopband := core.Clamp(v.Get("stopband", 40), 20, 100)

				return design.EllipticLP(freq, order, ripple, stopband, ctx.SampleRate), nil
			}), nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "moog",
		Title: "Moog ladder",
		Group: GroupFilters,
		Doc: "Nonlinear ladder lowpass. Resonance approaches self-oscillation near 4; " +
			"variant 0 is the classic model, 1 Huovilainen, 2 ZDF.",
		Params: []ParamSpec{
			freqParam("Cutoff", 800),
			{Name: "resonance", Label: "Resonance", Min: 0, Max: 4, Default: 2.2, Step: 0.01},
			{Name: "drive", Label: "Drive", Min: 0.1, Max: 24, Default: 1, Step: 0.1},
			{Name: "oversampling", Label: "Oversampling", Min: 1, Max: 8, Default: 2, Step: 1},
			{Name: "variant", Label: "Variant", Min: 0, Max: 2, Default: 1, Step: 1},
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := moog.New(ctx.SampleRate,
				moog.WithVariant(moog.VariantHuovilainen),
				moog.WithOversampling(2),
				moog.WithCutoffHz(800),
				moog.WithResonance(2.2),
				moog.WithDrive(1),
				moog.WithNormalizeOutput(true),
			)
			if err != nil {
				return nil, err
			}

			return &moogNode{fx: fx, sampleRate: ctx.SampleRate}, nil
		},
	})
}

type moogNode struct {
	fx         *moog.Filter
	sampleRate float64
	last       Values
}

func (n *moogNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetVariant(moogVariant(v.Get("variant", 1)))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetOversampling(snapOversampling(v.Get("oversampling", 2)))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetCutoffHz(clampFreq(v.Get("freq", 800), n.sampleRate))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetResonance(core.Clamp(v.Get("resonance", 2.2), 0, 4))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetDrive(core.Clamp(v.Get("drive", 1), 0.1, 24))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *moogNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}

func moogVariant(v float64) moog.Variant {
	switch roundStep(v) {
	case 0:
		return moog.VariantClassic
	case 2:
		return moog.VariantZDF
	default:
		return moog.VariantHuovilainen
	}
}

func snapOversampling(v float64) int {
	switch n := roundStep(v); {
	case n <= 1:
		return 1
	case n <= 3:
		return 2
	case n <= 6:
		return 4
	default:
		return 8
	}
}
