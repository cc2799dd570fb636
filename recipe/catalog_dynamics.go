package recipe

import (
	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/effects/dynamics"
)

//nolint:funlen
func registerDynamics(r *Registry) {
	r.MustRegister(Recipe{
		Name:  "compressor",
		Title: "Compressor",
		Group: GroupDynamics,
		Doc:   "Soft-knee downward compressor with manual makeup gain.",
		Params: []ParamSpec{
			{Name: "thresholdDB", Label: "Threshold", Unit: "dB", Min: -60, Max: 0, Default: -20, Step: 0.1},
			{Name: "ratio", Label: "Ratio", Min: 1, Max: 100, Default: 4, Step: 0.1},
			{Name: "kneeDB", Label: "Knee", Unit: "dB", Min: 0, Max: 24, Default: 6, Step: 0.1},
			{Name: "attackMs", Label: "Attack", Unit: "ms", Min: 0.1, Max: 1000, Default: 10, Step: 0.1},
			{Name: "releaseMs", Label: "Release", Unit: "ms", Min: 1, Max: 5000, Default: 100, Step: 1},
			{Name: "makeupGainDB", Label: "Makeup gain", Unit: "dB", Min: 0, Max: 24, Default: 0, Step: 0.1},
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := dynamics.NewCompressor(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &compressorNode{fx: fx}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "expander",
		Title: "Expander",
		Group: GroupDynamics,
		Doc:   "Downward expander; range bounds how far quiet material is pushed down.",
		Params: []ParamSpec{
			{Name: "thresholdDB", Label: "Threshold", Unit: "dB", Min: -80, Max: 0, Default: -35, Step: 0.1},
			{Name: "ratio", Label: "Ratio", Min: 1, Max: 100, Default: 2, Step: 0.1},
			{Name: "kneeDB", Label: "Knee", Unit: "dB", Min: 0, Max: 24, Default: 6, Step: 0.1},
			{Name: "attackMs", Label: "Attack", Unit: "ms", Min: 0.1, Max: 1000, Default: 1, Step: 0.1},
			{Name: "releaseMs", Label: "Release", Unit: "ms", Min: 1, Max: 5000, Default: 100, Step: 1},
			{Name: "rangeDB", Label: "Range", Unit: "dB", Min: -120, Max: 0, Default: -60, Step: 1},
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := dynamics.NewExpander(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &expanderNode{fx: fx}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "gate",
		Title: "Noise gate",
		Group: GroupDynamics,
		Doc:   "Gate with hold time to keep decays from chattering across the threshold.",
		Params: []ParamSpec{
			{Name: "thresholdDB", Label: "Threshold", Unit: "dB", Min: -80, Max: 0, Default: -40, Step: 0.1},
			{Name: "ratio", Label: "Ratio", Min: 1, Max: 100, Default: 10, Step: 0.1},
			{Name: "attackMs", Label: "Attack", Unit: "ms", Min: 0.1, Max: 1000, Default: 0.1, Step: 0.1},
			{Name: "holdMs", Label: "Hold", Unit: "ms", Min: 0, Max: 5000, Default: 50, Step: 1},
			{Name: "releaseMs", Label: "Release", Unit: "ms", Min: 1, Max: 5000, Default: 100, Step: 1},
			{Name: "rangeDB", Label: "Range", Unit: "dB", Min: -120, Max: 0, Default: -80, Step: 1},
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := dynamics.NewGate(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &gateNode{fx: fx}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "limiter",
		Title: "Lookahead limiter",
		Group: GroupDynamics,
		Doc:   "Brickwall peak limiter; lookahead trades latency for attack transparency.",
		Params: []ParamSpec{
			{Name: "thresholdDB", Label: "Threshold", Unit: "dB", Min: -24, Max: 0, Default: -1, Step: 0.1},
			{Name: "releaseMs", Label: "Release", Unit: "ms", Min: 1, Max: 5000, Default: 100, Step: 1},
			{Name: "lookaheadMs", Label: "Lookahead", Unit: "ms", Min: 0, Max: 200, Default: 3, Step: 0.1},
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := dynamics.NewLookaheadLimiter(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &limiterNode{fx: fx}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "transient",
		Title: "Transient shaper",
		Group: GroupDynamics,
		Doc:   "Level-independent attack/sustain shaping; positive attack sharpens hits.",
		Params: []ParamSpec{
			{Name: "attack", Label: "Attack amount", Min: -1, Max: 1, Default: 0.5, Step: 0.01},
			{Name: "sustain", Label: "Sustain amount", Min: -1, Max: 1, Default: 0, Step: 0.01},
			{Name: "attackMs", Label: "Attack time", Unit: "ms", Min: 0.1, Max: 200, Default: 10, Step: 0.1},
			{Name: "releaseMs", Label: "Release time", Unit: "ms", Min: 1, Max: 2000, Default: 120, Step: 1},
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := dynamics.NewTransientShaper(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &transientNode{fx: fx}, nil
		},
	})
}

type compressorNode struct {
	fx   *dynamics.Compressor
	last Values
}

func (n *compressorNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetThreshold(core.Clamp(v.Get("thresholdDB", -20), -60, 0))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetRatio(core.Clamp(v.Get("ratio", 4), 1, 100))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetKnee(core.Clamp(v.Get("kneeDB", 6), 0, 24))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetAttack(core.Clamp(v.Get("attackMs", 10), 0.1, 1000))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetRelease(core.Clamp(v.Get("releaseMs", 100), 1, 5000))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetAutoMakeup(false)
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetMakeupGain(core.Clamp(v.Get("makeupGainDB", 0), 0, 24))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *compressorNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}

type expanderNode struct {
	fx   *dynamics.Expander
	last Values
}

func (n *expanderNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetThreshold(core.Clamp(v.Get("thresholdDB", -35), -80, 0))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetRatio(core.Clamp(v.Get("ratio", 2), 1, 100))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetKnee(core.Clamp(v.Get("kneeDB", 6), 0, 24))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetAttack(core.Clamp(v.Get("attackMs", 1), 0.1, 1000))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetRelease(core.Clamp(v.Get("releaseMs", 100), 1, 5000))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetRange(core.Clamp(v.Get("rangeDB", -60), -120, 0))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *expanderNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}

type gateNode struct {
	fx   *dynamics.Gate
	last Values
}

func (n *gateNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetThreshold(core.Clamp(v.Get("thresholdDB", -40), -80, 0))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetRatio(core.Clamp(v.Get("ratio", 10), 1, 100))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetAttack(core.Clamp(v.Get("attackMs", 0.1), 0.1, 1000))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetHold(core.Clamp(v.Get("holdMs", 50), 0, 5000))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetRelease(core.Clamp(v.Get("releaseMs", 100), 1, 5000))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetRange(core.Clamp(v.Get("rangeDB", -80), -120, 0))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *gateNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}

type limiterNode struct {
	fx   *dynamics.LookaheadLimiter
	last Values
}

func (n *limiterNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetThreshold(core.Clamp(v.Get("thresholdDB", -1), -24, 0))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetRelease(core.Clamp(v.Get("releaseMs", 100), 1, 5000))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetLookahead(core.Clamp(v.Get("lookaheadMs", 3), 0, 200))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *limiterNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}

type transientNode struct {
	fx   *dynamics.TransientShaper
	last Values
}

func (n *transientNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetAttackAmount(core.Clamp(v.Get("attack", 0.5), -1, 1))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetSustainAmount(core.Clamp(v.Get("sustain", 0), -1, 1))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetAttack(core.Clamp(v.Get("attackMs", 10), 0.1, 200))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetRelease(core.Clamp(v.Get("releaseMs", 120), 1, 2000))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *transientNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}
