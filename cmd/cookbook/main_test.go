package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-cookbook/assets"
	"github.com/cwbudde/algo-cookbook/internal/testutil"
	"github.com/cwbudde/algo-cookbook/preset"
	"github.com/cwbudde/algo-cookbook/sample"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cookbook %s: %v", strings.Join(args, " "), err)
	}
	return buf.String()
}

func TestParseSet(t *testing.T) {
	cases := []struct {
		input   string
		name    string
		value   float64
		wantErr bool
	}{
		{"freq=800", "freq", 800, false},
		{"q=1.5", "q", 1.5, false},
		{"shift=-3", "shift", -3, false},
		{"freq", "", 0, true},
		{"=5", "", 0, true},
		{"freq=loud", "", 0, true},
	}
	for _, c := range cases {
		name, value, err := parseSet(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseSet(%q) succeeded, want error", c.input)
			}
			continue
		}
		if err != nil || name != c.name || value != c.value {
			t.Errorf("parseSet(%q) = (%q, %v, %v), want (%q, %v, nil)",
				c.input, name, value, err, c.name, c.value)
		}
	}
}

func TestResolveSource(t *testing.T) {
	cases := []struct {
		name    string
		loop    bool
		endless bool
	}{
		{"noise", false, true},
		{"tone", false, true},
		{assets.DefaultLoop, false, false},
		{assets.DefaultLoop, true, true},
		{assets.DefaultMIDI, false, false},
	}
	for _, c := range cases {
		src, err := resolveSource(c.name, 44100, c.loop)
		testutil.RequireNoError(t, err)
		if src.src == nil || src.endless != c.endless {
			t.Errorf("resolveSource(%q, loop=%v): endless = %v, want %v",
				c.name, c.loop, src.endless, c.endless)
		}

		block := make([]float64, 256)
		src.src.ReadSamples(block)
		testutil.RequireFinite(t, block)
	}

	if _, err := resolveSource("no-such-thing.wav", 44100, false); err == nil {
		t.Fatal("resolveSource accepted a missing file")
	}
}

func TestListCommand(t *testing.T) {
	out := runCommand(t, "list")
	for _, want := range []string{"filters:", "reverbs:", "lowpass", "reverb-room"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	out = runCommand(t, "list", "--assets")
	for _, want := range []string{"loops:", "midi:", assets.DefaultLoop, assets.DefaultMIDI} {
		if !strings.Contains(out, want) {
			t.Errorf("list --assets output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCommand(t *testing.T) {
	out := runCommand(t, "show", "lowpass")
	for _, want := range []string{"lowpass", "PARAM", "freq", "Hz"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"show", "no-such-recipe"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("show accepted an unknown recipe")
	}
}

func TestTracksCommand(t *testing.T) {
	out := runCommand(t, "tracks", "--roll")
	for _, want := range []string{"Melody", "Bass", "120 BPM", "|"} {
		if !strings.Contains(out, want) {
			t.Errorf("tracks output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	tmp := t.TempDir()
	outPath := filepath.Join(tmp, "out.wav")
	presetPath := filepath.Join(tmp, "saved.yaml")

	runCommand(t, "render", "lowpass",
		"--source", "noise",
		"--duration", "100ms",
		"--set", "freq=500",
		"--out", outPath,
		"--save-preset", presetPath)

	clip, err := sample.Load(outPath)
	testutil.RequireNoError(t, err)
	if clip.SampleRate != 44100 || clip.Frames() != 4410 {
		t.Fatalf("rendered %d frames at %v Hz, want 4410 at 44100",
			clip.Frames(), clip.SampleRate)
	}
	testutil.RequireFinite(t, clip.Data)

	p, err := preset.Load(presetPath)
	testutil.RequireNoError(t, err)
	if p.Recipe != "lowpass" || p.Params["freq"] != 500 {
		t.Fatalf("saved preset = %+v, want lowpass with freq=500", p)
	}
}

func TestRenderRejectsEndlessWithoutDuration(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "lowpass", "--source", "noise", "--duration", "0"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("render accepted an endless source without --duration")
	}
}
