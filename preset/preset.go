// Package preset saves and restores recipe configurations as small
// YAML documents: the recipe name, its parameter values, and the
// engine mix settings.
package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-cookbook/engine"
	"github.com/cwbudde/algo-cookbook/recipe"
)

// Preset is one saved recipe configuration.
type Preset struct {
	Recipe string             `yaml:"recipe"`
	Params map[string]float64 `yaml:"params,omitempty"`
	WetMix float64            `yaml:"wet"`
	Gain   float64            `yaml:"gain"`
}

// Capture snapshots a conductor's parameter targets and its engine's
// mix settings into a saveable preset.
func Capture(c *recipe.Conductor, eng *engine.Engine) Preset {
	return Preset{
		Recipe: c.Recipe().Name,
		Params: map[string]float64(c.Values()),
		WetMix: eng.WetMix(),
		Gain:   eng.MasterGain(),
	}
}

// Load reads and validates a preset file.
func Load(path string) (Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("preset: %w", err)
	}

	var p Preset
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Preset{}, fmt.Errorf("preset: parse %s: %w", path, err)
	}
	if p.Recipe == "" {
		return Preset{}, fmt.Errorf("preset: %s: missing recipe name", path)
	}

	return p, nil
}

// Save writes the preset as YAML.
func (p Preset) Save(path string) error {
	raw, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("preset: encode: %w", err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("preset: %w", err)
	}

	return nil
}

// Apply pushes the preset onto a conductor and its engine. Parameters
// jump without ramping so playback starts in the preset's state. The
// preset must name the conductor's recipe; unknown parameters fail,
// naming the offender.
func (p Preset) Apply(c *recipe.Conductor, eng *engine.Engine) error {
	if got := c.Recipe().Name; got != p.Recipe {
		return fmt.Errorf("preset: made for recipe %q, conductor runs %q", p.Recipe, got)
	}

	for name, value := range p.Params {
		if err := c.SetImmediate(name, value); err != nil {
			return fmt.Errorf("preset: %w", err)
		}
	}

	eng.SetWetMix(p.WetMix)
	eng.SetMasterGain(p.Gain)

	return nil
}
