package recipe

import (
	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/effects/modulation"
)

//nolint:funlen
func registerModulation(r *Registry) {
	r.MustRegister(Recipe{
		Name:  "chorus",
		Title: "Chorus",
		Group: GroupModulation,
		Doc:   "Stacked modulated delay voices; stages sets the voice count.",
		Params: []ParamSpec{
			{Name: "speedHz", Label: "Speed", Unit: "Hz", Min: 0.05, Max: 5, Default: 0.35, Step: 0.01},
			{Name: "depth", Label: "Depth", Unit: "s", Min: 0, Max: 0.01, Default: 0.003, Step: 0.0001},
			{Name: "stages", Label: "Voices", Min: 1, Max: 6, Default: 3, Step: 1},
			mixParam(0.18),
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := modulation.NewChorus()
			if err != nil {
				return nil, err
			}

			return &chorusNode{fx: fx, sampleRate: ctx.SampleRate}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "flanger",
		Title: "Flanger",
		Group: GroupModulation,
		Doc:   "Short modulated delay with feedback; negative feedback inverts the comb.",
		Params: []ParamSpec{
			{Name: "rateHz", Label: "Rate", Unit: "Hz", Min: 0.05, Max: 5, Default: 0.25, Step: 0.01},
			{Name: "baseDelay", Label: "Base delay", Unit: "s", Min: 0.0001, Max: 0.01, Default: 0.001, Step: 0.0001},
			{Name: "depth", Label: "Depth", Unit: "s", Min: 0, Max: 0.0099, Default: 0.0015, Step: 0.0001},
			{Name: "feedback", Label: "Feedback", Min: -0.99, Max: 0.99, Default: 0.25, Step: 0.01},
			mixParam(0.5),
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := modulation.NewFlanger(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &flangerNode{fx: fx}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "phaser",
		Title: "Phaser",
		Group: GroupModulation,
		Doc:   "Cascaded allpass notches swept between the two corner frequencies.",
		Params: []ParamSpec{
			{Name: "rateHz", Label: "Rate", Unit: "Hz", Min: 0.05, Max: 5, Default: 0.4, Step: 0.01},
			{Name: "minFreq", Label: "Sweep low", Unit: "Hz", Min: 20, Max: 8000, Default: 300, Step: 1},
			{Name: "maxFreq", Label: "Sweep high", Unit: "Hz", Min: 100, Max: 16000, Default: 1600, Step: 1},
			{Name: "stages", Label: "Stages", Min: 1, Max: 12, Default: 6, Step: 1},
			{Name: "feedback", Label: "Feedback", Min: -0.99, Max: 0.99, Default: 0.2, Step: 0.01},
			mixParam(0.5),
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := modulation.NewPhaser(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &phaserNode{fx: fx, sampleRate: ctx.SampleRate}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "auto-wah",
		Title: "Auto-wah",
		Group: GroupModulation,
		Doc:   "Envelope-following bandpass; sensitivity maps input level onto the sweep range.",
		Params: []ParamSpec{
			{Name: "minFreq", Label: "Sweep low", Unit: "Hz", Min: 50, Max: 2000, Default: 300, Step: 1},
			{Name: "maxFreq", Label: "Sweep high", Unit: "Hz", Min: 200, Max: 8000, Default: 2200, Step: 1},
			{Name: "q", Label: "Q", Min: 0.3, Max: 10, Default: 0.8, Step: 0.01},
			{Name: "sensitivity", Label: "Sensitivity", Min: 0.1, Max: 10, Default: 2, Step: 0.1},
			{Name: "attackMs", Label: "Attack", Unit: "ms", Min: 0.1, Max: 100, Default: 2, Step: 0.1},
			{Name: "releaseMs", Label: "Release", Unit: "ms", Min: 1, Max: 1000, Default: 80, Step: 1},
			mixParam(1),
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := modulation.NewAutoWah(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &autoWahNode{fx: fx, sampleRate: ctx.SampleRate}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "ringmod",
		Title: "Ring modulator",
		Group: GroupModulation,
		Doc:   "Multiplies the signal with a sine carrier, producing sum and difference tones.",
		Params: []ParamSpec{
			{Name: "carrierHz", Label: "Carrier", Unit: "Hz", Min: 1, Max: 16000, Default: 440, Step: 1},
			mixParam(1),
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := modulation.NewRingModulator(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &ringModNode{fx: fx, sampleRate: ctx.SampleRate}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "freq-shift",
		Title: "Frequency shifter",
		Group: GroupModulation,
		Doc: "Hilbert-based single-sideband shift. Unlike a pitch shifter it breaks " +
			"harmonic ratios, giving the classic inharmonic shimmer. down selects the " +
			"lower sideband.",
		Params: []ParamSpec{
			{Name: "shift", Label: "Shift", Unit: "Hz", Min: 1, Max: 2000, Default: 200, Step: 1},
			{Name: "down", Label: "Downshift", Min: 0, Max: 1, Default: 0, Step: 1},
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := modulation.NewFrequencyShifter(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &freqShiftNode{fx: fx}, nil
		},
	})
}

type chorusNode struct {
	fx         *modulation.Chorus
	sampleRate float64
	last       Values
}

func (n *chorusNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetSampleRate(n.sampleRate)
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetMix(core.Clamp(v.Get("mix", 0.18), 0, 1))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetDepth(core.Clamp(v.Get("depth", 0.003), 0, 0.01))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetSpeedHz(core.Clamp(v.Get("speedHz", 0.35), 0.05, 5))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetStages(min(max(roundStep(v.Get("stages", 3)), 1), 6))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *chorusNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}

type flangerNode struct {
	fx   *modulation.Flanger
	last Values
}

func (n *flangerNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetRateHz(core.Clamp(v.Get("rateHz", 0.25), 0.05, 5))
	if err != nil {
		return wrapApplyErr(err)
	}

	// The kernel caps base delay plus depth at 10 ms. Zero the depth
	// before moving the base delay, then give the depth whatever budget
	// remains.
	base := core.Clamp(v.Get("baseDelay", 0.001), 0.0001, 0.01)

	err = n.fx.SetDepthSeconds(0)
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetBaseDelaySeconds(base)
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetDepthSeconds(core.Clamp(v.Get("depth", 0.0015), 0, 0.01-base))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetFeedback(core.Clamp(v.Get("feedback", 0.25), -0.99, 0.99))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetMix(core.Clamp(v.Get("mix", 0.5), 0, 1))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *flangerNode) ProcessBlock(block []float64) {
	_ = n.fx.ProcessInPlace(block)
}

type phaserNode struct {
	fx         *modulation.Phaser
	sampleRate float64
	last       Values
}

func (n *phaserNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	minHz := core.Clamp(v.Get("minFreq", 300), 20, n.sampleRate*0.45)
	maxHz := core.Clamp(v.Get("maxFreq", 1600), minHz+1, n.sampleRate*0.49)

	err := n.fx.SetRateHz(core.Clamp(v.Get("rateHz", 0.4), 0.05, 5))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetFrequencyRangeHz(minHz, maxHz)
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetStages(min(max(roundStep(v.Get("stages", 6)), 1), 12))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetFeedback(core.Clamp(v.Get("feedback", 0.2), -0.99, 0.99))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetMix(core.Clamp(v.Get("mix", 0.5), 0, 1))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *phaserNode) ProcessBlock(block []float64) {
	_ = n.fx.ProcessInPlace(block)
}

type autoWahNode struct {
	fx         *modulation.AutoWah
	sampleRate float64
	last       Values
}

func (n *autoWahNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	minHz := core.Clamp(v.Get("minFreq", 300), 50, n.sampleRate*0.4)
	maxHz := core.Clamp(v.Get("maxFreq", 2200), 200, n.sampleRate*0.49)
	if maxHz <= minHz {
		maxHz = minHz + 10
	}

	err := n.fx.SetFrequencyRangeHz(minHz, maxHz)
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetQ(core.Clamp(v.Get("q", 0.8), 0.3, 10))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetSensitivity(core.Clamp(v.Get("sensitivity", 2), 0.1, 10))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetAttackMs(core.Clamp(v.Get("attackMs", 2), 0.1, 100))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetReleaseMs(core.Clamp(v.Get("releaseMs", 80), 1, 1000))
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

func (n *autoWahNode) ProcessBlock(block []float64) {
	_ = n.fx.ProcessInPlace(block)
}

type ringModNode struct {
	fx         *modulation.RingModulator
	sampleRate float64
	last       Values
}

func (n *ringModNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetCarrierHz(core.Clamp(v.Get("carrierHz", 440), 1, n.sampleRate*0.49))
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

func (n *ringModNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}

type freqShiftNode struct {
	fx       *modulation.FrequencyShifter
	down     bool
	upshift  []float64
	downward []float64
	last     Values
}

func (n *freqShiftNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetShiftHz(core.Clamp(v.Get("shift", 200), 1, 2000))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.down = v.Get("down", 0) >= 0.5
	n.last = v.Clone()

	return nil
}

func (n *freqShiftNode) ProcessBlock(block []float64) {
	if len(n.upshift) < len(block) {
		n.upshift = make([]float64, len(block))
		n.downward = make([]float64, len(block))
	}

	up := n.upshift[:len(block)]
	down := n.downward[:len(block)]

	if err := n.fx.ProcessBlock(block, up, down); err != nil {
		return
	}

	if n.down {
		copy(block, down)
	} else {
		copy(block, up)
	}
}
