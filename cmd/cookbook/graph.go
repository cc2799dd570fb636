package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-cookbook/assets"
	"github.com/cwbudde/algo-cookbook/engine"
	"github.com/cwbudde/algo-cookbook/midifile"
	"github.com/cwbudde/algo-cookbook/preset"
	"github.com/cwbudde/algo-cookbook/recipe"
	"github.com/cwbudde/algo-cookbook/sample"
	"github.com/cwbudde/algo-cookbook/source"
)

// graphOptions are the flags play and render share: which source feeds
// the engine and how the recipe is parameterized.
type graphOptions struct {
	source     string
	loop       bool
	sets       []string
	presetPath string
	wet        float64
	gain       float64
}

func addGraphFlags(c *cobra.Command, o *graphOptions) {
	c.Flags().StringVarP(&o.source, "source", "s", assets.DefaultLoop,
		`bundled asset, audio/MIDI file path, "tone" or "noise"`)
	c.Flags().BoolVar(&o.loop, "loop", true, "loop the source")
	c.Flags().StringArrayVar(&o.sets, "set", nil, "parameter override name=value (repeatable)")
	c.Flags().StringVar(&o.presetPath, "preset", "", "preset file to apply")
	c.Flags().Float64Var(&o.wet, "wet", 0.5, "dry/wet mix in [0, 1]")
	c.Flags().Float64Var(&o.gain, "gain", 1, "master gain in [0, 2]")
}

// graphSource pairs an engine source with display metadata. endless
// marks sources that never report end-of-stream on their own.
type graphSource struct {
	src     engine.Source
	desc    string
	endless bool
}

// buildGraph assembles engine, conductor and source for the named
// recipe. A preset applies first, then --set overrides, then --wet and
// --gain when given explicitly.
func buildGraph(cmd *cobra.Command, name string, o *graphOptions) (*engine.Engine, *recipe.Conductor, *graphSource, error) {
	rec, err := recipe.Default().Lookup(name)
	if err != nil {
		return nil, nil, nil, err
	}

	eng := engine.New()
	cond, err := recipe.NewConductor(rec, eng)
	if err != nil {
		return nil, nil, nil, err
	}

	src, err := resolveSource(o.source, eng.SampleRate(), o.loop)
	if err != nil {
		return nil, nil, nil, err
	}
	eng.SetSource(src.src)

	if o.presetPath != "" {
		p, err := preset.Load(o.presetPath)
		if err != nil {
			return nil, nil, nil, err
		}
		err = p.Apply(cond, eng)
		if err != nil {
			return nil, nil, nil, err
		}
		slog.Debug("preset applied", "path", o.presetPath, "recipe", p.Recipe)
	}

	for _, kv := range o.sets {
		pname, val, err := parseSet(kv)
		if err != nil {
			return nil, nil, nil, err
		}
		err = cond.Set(pname, val)
		if err != nil {
			return nil, nil, nil, err
		}
		slog.Debug("parameter set", "name", pname, "value", val)
	}

	if cmd.Flags().Changed("wet") {
		eng.SetWetMix(o.wet)
	}
	if cmd.Flags().Changed("gain") {
		eng.SetMasterGain(o.gain)
	}

	return eng, cond, src, nil
}

// resolveSource turns a --source value into an engine source: the
// literal names "noise" and "tone", a bundled asset name, or a path on
// disk. MIDI input plays through the note sequencer.
func resolveSource(name string, rate float64, loop bool) (*graphSource, error) {
	switch name {
	case "noise":
		n, err := source.NewNoise(0.3, 1)
		if err != nil {
			return nil, err
		}
		return &graphSource{src: n, desc: "white noise", endless: true}, nil

	case "tone":
		osc := source.NewOscillator(rate)
		for _, key := range []int{45, 52, 57} { // A2, E3, A3
			osc.NoteOn(key, 0.8)
		}
		return &graphSource{src: osc, desc: "held tone (A)", endless: true}, nil
	}

	if strings.EqualFold(filepath.Ext(name), ".mid") {
		f, err := loadMIDI(name)
		if err != nil {
			return nil, err
		}
		seq := source.NewNoteSequencer(f, rate, loop)
		return &graphSource{
			src:     seq,
			desc:    fmt.Sprintf("%s (%d note events)", name, seq.Events()),
			endless: loop,
		}, nil
	}

	clip, err := loadClip(name)
	if err != nil {
		return nil, err
	}
	if clip.SampleRate != rate {
		clip, err = clip.Resampled(rate)
		if err != nil {
			return nil, err
		}
	}
	return &graphSource{
		src:     source.NewSamplePlayer(clip, loop),
		desc:    fmt.Sprintf("%s (%.2fs)", name, clip.Duration().Seconds()),
		endless: loop,
	}, nil
}

// loadMIDI prefers a bundled asset of that name over a file on disk.
func loadMIDI(name string) (*midifile.File, error) {
	if slices.Contains(assets.MIDIFiles(), name) {
		return assets.LoadMIDI(name)
	}
	return midifile.ReadFile(name)
}

// loadClip prefers a bundled loop of that name over a file on disk.
func loadClip(name string) (*sample.Clip, error) {
	if slices.Contains(assets.Loops(), name) {
		return assets.LoadClip(name)
	}
	return sample.Load(name)
}

func parseSet(kv string) (string, float64, error) {
	name, raw, ok := strings.Cut(kv, "=")
	if !ok || name == "" {
		return "", 0, fmt.Errorf("bad --set %q, want name=value", kv)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad --set %q: %w", kv, err)
	}
	return name, v, nil
}
