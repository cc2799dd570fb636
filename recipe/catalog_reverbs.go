package recipe

import (
	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/effects"
	"github.com/cwbudde/algo-dsp/dsp/effects/reverb"
)

func registerReverbs(r *Registry) {
	r.MustRegister(Recipe{
		Name:  "reverb-room",
		Title: "Room reverb (Freeverb)",
		Group: GroupReverbs,
		Doc:   "Schroeder comb/allpass tank. Room size sets the comb feedback, damp rolls off highs in the tail.",
		Params: []ParamSpec{
			{Name: "roomSize", Label: "Room size", Min: 0, Max: 0.98, Default: 0.72, Step: 0.01},
			{Name: "damp", Label: "Damping", Min: 0, Max: 0.99, Default: 0.45, Step: 0.01},
			{Name: "wet", Label: "Wet level", Min: 0, Max: 1.5, Default: 0.3, Step: 0.01},
			{Name: "dry", Label: "Dry level", Min: 0, Max: 1.5, Default: 1, Step: 0.01},
		},
		Build: func(_ BuildContext) (Node, error) {
			return &freeverbNode{fx: effects.NewReverb()}, nil
		},
	})

	r.MustRegister(Recipe{
		Name:  "reverb-hall",
		Title: "Hall reverb (FDN)",
		Group: GroupReverbs,
		Doc: "Modulated feedback delay network. RT60 is the decay to -60 dB; a little " +
			"modulation depth keeps long tails from ringing metallically.",
		Params: []ParamSpec{
			{Name: "rt60", Label: "Decay time", Unit: "s", Min: 0.2, Max: 8, Default: 1.8, Step: 0.1},
			{Name: "preDelay", Label: "Pre-delay", Unit: "s", Min: 0, Max: 0.1, Default: 0.01, Step: 0.001},
			{Name: "damp", Label: "Damping", Min: 0, Max: 0.99, Default: 0.45, Step: 0.01},
			{Name: "modDepth", Label: "Mod depth", Min: 0, Max: 0.01, Default: 0.002, Step: 0.0001},
			{Name: "modRate", Label: "Mod rate", Unit: "Hz", Min: 0, Max: 1, Default: 0.1, Step: 0.01},
			{Name: "wet", Label: "Wet level", Min: 0, Max: 1.5, Default: 0.3, Step: 0.01},
			{Name: "dry", Label: "Dry level", Min: 0, Max: 1.5, Default: 1, Step: 0.01},
		},
		Build: func(ctx BuildContext) (Node, error) {
			fx, err := reverb.NewFDNReverb(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return &fdnNode{fx: fx}, nil
		},
	})
}

type freeverbNode struct {
	fx *effects.Reverb
}

func (n *freeverbNode) Apply(v Values) error {
	n.fx.SetWet(core.Clamp(v.Get("wet", 0.3), 0, 1.5))
	n.fx.SetDry(core.Clamp(v.Get("dry", 1), 0, 1.5))
	n.fx.SetRoomSize(core.Clamp(v.Get("roomSize", 0.72), 0, 0.98))
	n.fx.SetDamp(core.Clamp(v.Get("damp", 0.45), 0, 0.99))

	return nil
}

func (n *freeverbNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}

type fdnNode struct {
	fx   *reverb.FDNReverb
	last Values
}

func (n *fdnNode) Apply(v Values) error {
	if n.last != nil && valuesEq(n.last, v) {
		return nil
	}

	err := n.fx.SetWet(core.Clamp(v.Get("wet", 0.3), 0, 1.5))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetDry(core.Clamp(v.Get("dry", 1), 0, 1.5))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetRT60(core.Clamp(v.Get("rt60", 1.8), 0.2, 8))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetPreDelay(core.Clamp(v.Get("preDelay", 0.01), 0, 0.1))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetDamp(core.Clamp(v.Get("damp", 0.45), 0, 0.99))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetModDepth(core.Clamp(v.Get("modDepth", 0.002), 0, 0.01))
	if err != nil {
		return wrapApplyErr(err)
	}

	err = n.fx.SetModRate(core.Clamp(v.Get("modRate", 0.1), 0, 1))
	if err != nil {
		return wrapApplyErr(err)
	}

	n.last = v.Clone()

	return nil
}

func (n *fdnNode) ProcessBlock(block []float64) {
	n.fx.ProcessInPlace(block)
}
