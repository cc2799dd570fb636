package recipe

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-cookbook/engine"
)

// Conductor holds a recipe's built node together with its UI-editable
// parameter values. Every edit is clamped to the parameter's range and
// ramped onto the node over the engine's ramp window, one step per
// rendered block, so live changes never click.
//
// The conductor is an engine.Processor; NewConductor installs it as
// the engine's processor. Like the engine it is not safe for
// concurrent use: Set and ProcessBlock must run on the same goroutine
// (or be serialized by the caller).
type Conductor struct {
	recipe Recipe
	node   Node
	log    *slog.Logger

	ramps   map[string]*engine.Ramp
	order   []string // parameter order, for deterministic iteration
	scratch Values   // reused per Apply
	dirty   bool     // an edit landed since the last Apply
}

// NewConductor builds the recipe's node at the engine's sample rate,
// applies the default values, and installs the conductor as the
// engine's processor.
func NewConductor(rec Recipe, eng *engine.Engine) (*Conductor, error) {
	node, err := rec.build(BuildContext{SampleRate: eng.SampleRate()})
	if err != nil {
		return nil, err
	}

	rampLen := engine.RampSamples(eng.SampleRate(), engine.DefaultRampSeconds)
	c := &Conductor{
		recipe:  rec,
		node:    node,
		log:     slog.Default(),
		ramps:   make(map[string]*engine.Ramp, len(rec.Params)),
		order:   make([]string, 0, len(rec.Params)),
		scratch: make(Values, len(rec.Params)),
	}
	for _, p := range rec.Params {
		c.ramps[p.Name] = engine.NewRamp(p.Default, rampLen)
		c.order = append(c.order, p.Name)
	}

	if err := node.Apply(rec.DefaultValues()); err != nil {
		return nil, fmt.Errorf("recipe %s: apply defaults: %w", rec.Name, err)
	}

	eng.SetProcessor(c)
	return c, nil
}

// SetLogger replaces the conductor's logger. A nil logger discards.
func (c *Conductor) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	c.log = l
}

// Recipe returns the recipe this conductor runs.
func (c *Conductor) Recipe() Recipe { return c.recipe }

// Node exposes the built node, e.g. for type-asserting extras.
func (c *Conductor) Node() Node { return c.node }

// Set ramps the named parameter to value, clamped to the parameter's
// range. Unknown names are an error.
func (c *Conductor) Set(name string, value float64) error {
	spec, ok := c.recipe.Param(name)
	if !ok {
		return fmt.Errorf("recipe %s: unknown parameter %q", c.recipe.Name, name)
	}
	c.ramps[name].SetTarget(spec.Clamp(value))
	c.dirty = true
	return nil
}

// SetImmediate jumps the named parameter to value without ramping.
// Preset loading uses it so playback starts in the preset's state.
func (c *Conductor) SetImmediate(name string, value float64) error {
	spec, ok := c.recipe.Param(name)
	if !ok {
		return fmt.Errorf("recipe %s: unknown parameter %q", c.recipe.Name, name)
	}
	c.ramps[name].SetImmediate(spec.Clamp(value))
	c.dirty = true
	return nil
}

// Values returns a copy of the current parameter targets (the values
// edits are heading toward, not the mid-ramp positions).
func (c *Conductor) Values() Values {
	out := make(Values, len(c.order))
	for _, name := range c.order {
		out[name] = c.ramps[name].Target()
	}
	return out
}

// Value returns the target for one parameter.
func (c *Conductor) Value(name string) (float64, error) {
	r, ok := c.ramps[name]
	if !ok {
		return 0, fmt.Errorf("recipe %s: unknown parameter %q", c.recipe.Name, name)
	}
	return r.Target(), nil
}

// ProcessBlock advances every parameter ramp by one block, re-applies
// the values to the node when something changed, and then lets the
// node process the block. Apply failures are logged and the node keeps
// its previous configuration; the audio path never stops.
func (c *Conductor) ProcessBlock(block []float64) {
	moving := c.dirty
	for _, name := range c.order {
		r := c.ramps[name]
		if !r.Done() {
			moving = true
		}
		c.scratch[name] = r.Step(len(block))
	}

	if moving {
		if err := c.node.Apply(c.scratch); err != nil {
			c.log.Error("recipe apply failed", "recipe", c.recipe.Name, "error", err)
		}
		c.dirty = false
	}

	c.node.ProcessBlock(block)
}
