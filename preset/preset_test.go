package preset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-cookbook/engine"
	"github.com/cwbudde/algo-cookbook/internal/testutil"
	"github.com/cwbudde/algo-cookbook/recipe"
)

func lowpassConductor(t *testing.T) (*recipe.Conductor, *engine.Engine) {
	t.Helper()

	rec, err := recipe.Default().Lookup("lowpass")
	testutil.RequireNoError(t, err)

	eng := engine.New()
	c, err := recipe.NewConductor(rec, eng)
	testutil.RequireNoError(t, err)

	return c, eng
}

func TestPresetRoundTrip(t *testing.T) {
	c, eng := lowpassConductor(t)
	testutil.RequireNoError(t, c.Set("freq", 1234))
	testutil.RequireNoError(t, c.Set("q", 1.5))
	eng.SetWetMix(0.75)
	eng.SetMasterGain(0.5)

	path := filepath.Join(t.TempDir(), "warm.yaml")
	p := Capture(c, eng)
	testutil.RequireNoError(t, p.Save(path))

	loaded, err := Load(path)
	testutil.RequireNoError(t, err)

	if loaded.Recipe != "lowpass" {
		t.Fatalf("Recipe = %q, want lowpass", loaded.Recipe)
	}
	if loaded.Params["freq"] != 1234 || loaded.Params["q"] != 1.5 {
		t.Fatalf("Params = %v", loaded.Params)
	}
	if loaded.WetMix != 0.75 || loaded.Gain != 0.5 {
		t.Fatalf("WetMix/Gain = %g/%g, want 0.75/0.5", loaded.WetMix, loaded.Gain)
	}

	// Apply onto a fresh conductor restores the same state.
	c2, eng2 := lowpassConductor(t)
	testutil.RequireNoError(t, loaded.Apply(c2, eng2))

	if got, _ := c2.Value("freq"); got != 1234 {
		t.Fatalf("applied freq = %g, want 1234", got)
	}
	if eng2.WetMix() != 0.75 {
		t.Fatalf("applied wet = %g, want 0.75", eng2.WetMix())
	}
	if eng2.MasterGain() != 0.5 {
		t.Fatalf("applied gain = %g, want 0.5", eng2.MasterGain())
	}
}

func TestLoadHandwrittenPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hand.yaml")
	doc := strings.Join([]string{
		"recipe: lowpass",
		"params:",
		"  freq: 800",
		"wet: 1",
		"gain: 1",
		"",
	}, "\n")
	testutil.RequireNoError(t, os.WriteFile(path, []byte(doc), 0o644))

	p, err := Load(path)
	testutil.RequireNoError(t, err)

	if p.Recipe != "lowpass" || p.Params["freq"] != 800 {
		t.Fatalf("loaded %+v", p)
	}
}

func TestLoadRejectsBadPresets(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Fatal("Load accepted a missing file")
	}

	noRecipe := filepath.Join(dir, "norecipe.yaml")
	testutil.RequireNoError(t, os.WriteFile(noRecipe, []byte("params:\n  freq: 1\n"), 0o644))
	if _, err := Load(noRecipe); err == nil {
		t.Fatal("Load accepted a preset without a recipe name")
	}

	garbage := filepath.Join(dir, "garbage.yaml")
	testutil.RequireNoError(t, os.WriteFile(garbage, []byte(":\t::not yaml::"), 0o644))
	if _, err := Load(garbage); err == nil {
		t.Fatal("Load accepted malformed YAML")
	}
}

func TestApplyRejectsUnknownParameter(t *testing.T) {
	c, eng := lowpassConductor(t)

	p := Preset{
		Recipe: "lowpass",
		Params: map[string]float64{"resonance": 3},
		WetMix: 0.5,
		Gain:   1,
	}
	err := p.Apply(c, eng)
	if err == nil || !strings.Contains(err.Error(), "resonance") {
		t.Fatalf("Apply = %v, want error naming the parameter", err)
	}
}

func TestApplyRejectsRecipeMismatch(t *testing.T) {
	c, eng := lowpassConductor(t)

	p := Preset{Recipe: "moog", WetMix: 0.5, Gain: 1}
	if err := p.Apply(c, eng); err == nil {
		t.Fatal("Apply accepted a preset for a different recipe")
	}
}
