// Package recipe is the heart of the cookbook: a catalog of named,
// grouped demonstrations of algo-dsp building blocks. Each Recipe
// describes one kernel — its title, a short doc string, and the
// honest parameter ranges the kernel accepts — and knows how to build
// a processing Node for an engine sample rate.
//
// A Conductor binds a built node to its editable values and ramps
// every edit onto the node smoothly, so a slider wired to Set never
// produces zipper noise.
package recipe

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-cookbook/engine"
)

// Group names used by the built-in catalog, in display order.
const (
	GroupFilters    = "filters"
	GroupEffects    = "effects"
	GroupModulation = "modulation"
	GroupDynamics   = "dynamics"
	GroupReverbs    = "reverbs"
	GroupPitch      = "pitch"
)

// ParamSpec describes one editable parameter of a recipe. Min and Max
// mirror the underlying kernel's documented limits; values outside the
// range are clamped, never rejected.
type ParamSpec struct {
	Name    string  // stable identifier, e.g. "cutoff"
	Label   string  // human-facing label, e.g. "Cutoff"
	Unit    string  // display unit: "Hz", "dB", "ms", "" for ratios
	Min     float64
	Max     float64
	Default float64
	Step    float64 // suggested control increment; 0 means continuous
}

// Clamp forces v into the parameter's range. NaN collapses to the
// default so a corrupt preset cannot poison a kernel.
func (p ParamSpec) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return p.Default
	}
	if v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}

// Values is a bag of parameter values keyed by ParamSpec.Name.
type Values map[string]float64

// Get returns the value for name, or def when the name is absent or
// the stored value is not finite.
func (v Values) Get(name string, def float64) float64 {
	x, ok := v[name]
	if !ok || math.IsNaN(x) || math.IsInf(x, 0) {
		return def
	}
	return x
}

// Clone returns an independent copy of the value bag.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, x := range v {
		out[k] = x
	}
	return out
}

// Node is a built recipe instance: an engine processor that can be
// reconfigured from a value bag. Apply is called with complete,
// clamped values; it must be cheap when nothing relevant changed.
type Node interface {
	engine.Processor
	Apply(v Values) error
}

// BuildContext carries what recipes need to construct their node.
type BuildContext struct {
	SampleRate float64
}

// BuildFunc constructs the node for one recipe.
type BuildFunc func(ctx BuildContext) (Node, error)

// Recipe describes one demonstrated building block.
type Recipe struct {
	Name   string // registry key, e.g. "butterworth-lp"
	Title  string // display title, e.g. "Butterworth Low-Pass"
	Group  string // one of the Group constants
	Doc    string // one or two sentences for the show command
	Params []ParamSpec
	Build  BuildFunc
}

// Param returns the spec for name.
func (r Recipe) Param(name string) (ParamSpec, bool) {
	for _, p := range r.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// DefaultValues returns a fresh value bag holding every parameter's
// default.
func (r Recipe) DefaultValues() Values {
	v := make(Values, len(r.Params))
	for _, p := range r.Params {
		v[p.Name] = p.Default
	}
	return v
}

// build constructs the node, validating the context first.
func (r Recipe) build(ctx BuildContext) (Node, error) {
	if ctx.SampleRate <= 0 {
		return nil, fmt.Errorf("recipe %s: invalid sample rate %v", r.Name, ctx.SampleRate)
	}
	if r.Build == nil {
		return nil, fmt.Errorf("recipe %s: no build function", r.Name)
	}
	node, err := r.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("recipe %s: build: %w", r.Name, err)
	}
	return node, nil
}
