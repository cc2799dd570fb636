package recipe

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-cookbook/internal/testutil"
)

func TestDefaultCatalog(t *testing.T) {
	r := Default()

	wantGroups := []string{
		GroupFilters, GroupEffects, GroupModulation,
		GroupDynamics, GroupReverbs, GroupPitch,
	}
	groups := r.Groups()
	if len(groups) != len(wantGroups) {
		t.Fatalf("Groups() = %v, want %v", groups, wantGroups)
	}
	for i, g := range wantGroups {
		if groups[i] != g {
			t.Fatalf("Groups()[%d] = %q, want %q", i, groups[i], g)
		}
	}

	for _, name := range []string{
		"lowpass", "peak-orfanidis", "butterworth-lp", "elliptic", "moog",
		"delay", "distortion",
		"chorus", "freq-shift",
		"compressor", "limiter",
		"reverb-room", "reverb-hall",
		"pitch-time", "pitch-spectral",
	} {
		if _, err := r.Lookup(name); err != nil {
			t.Fatalf("Lookup(%s): %v", name, err)
		}
	}

	total := 0
	for _, g := range groups {
		total += len(r.ByGroup(g))
	}
	if total != r.Len() {
		t.Fatalf("group sizes sum to %d, want Len() = %d", total, r.Len())
	}
}

func TestCatalogParamSpecs(t *testing.T) {
	for _, rec := range Default().All() {
		if rec.Title == "" || rec.Doc == "" {
			t.Fatalf("%s: missing title or doc", rec.Name)
		}

		seen := map[string]bool{}
		for _, p := range rec.Params {
			if p.Name == "" || p.Label == "" {
				t.Fatalf("%s: unnamed parameter %+v", rec.Name, p)
			}
			if seen[p.Name] {
				t.Fatalf("%s: duplicate parameter %q", rec.Name, p.Name)
			}
			seen[p.Name] = true

			if p.Min > p.Max {
				t.Fatalf("%s.%s: min %g > max %g", rec.Name, p.Name, p.Min, p.Max)
			}
			if p.Default < p.Min || p.Default > p.Max {
				t.Fatalf("%s.%s: default %g outside [%g, %g]",
					rec.Name, p.Name, p.Default, p.Min, p.Max)
			}
		}
	}
}

func TestCatalogBuildsAndProcesses(t *testing.T) {
	for _, rate := range []float64{44100, 48000} {
		for _, rec := range Default().All() {
			t.Run(fmt.Sprintf("%s@%v", rec.Name, rate), func(t *testing.T) {
				node, err := rec.build(BuildContext{SampleRate: rate})
				testutil.RequireNoError(t, err)
				testutil.RequireNoError(t, node.Apply(rec.DefaultValues()))

				block := testutil.Noise(1, 0.5, 2048)
				node.ProcessBlock(block)
				testutil.RequireFinite(t, block)
			})
		}
	}
}

// Every parameter pinned to an extreme still yields a working node:
// the specs promise ranges the kernels actually accept.
func TestCatalogRangeEndpoints(t *testing.T) {
	for _, rec := range Default().All() {
		t.Run(rec.Name, func(t *testing.T) {
			node, err := rec.build(BuildContext{SampleRate: 44100})
			testutil.RequireNoError(t, err)

			for _, raw := range []float64{-1e9, 1e9} {
				v := make(Values, len(rec.Params))
				for _, p := range rec.Params {
					v[p.Name] = p.Clamp(raw)
				}
				if err := node.Apply(v); err != nil {
					t.Fatalf("apply with all params at %g: %v", raw, err)
				}

				block := testutil.Sine(220, 44100, 0.5, 2048)
				node.ProcessBlock(block)
				testutil.RequireFinite(t, block)
			}
		})
	}
}

func TestCatalogRejectsZeroSampleRate(t *testing.T) {
	rec, err := Default().Lookup("lowpass")
	testutil.RequireNoError(t, err)

	if _, err := rec.build(BuildContext{}); err == nil {
		t.Fatal("build accepted a zero sample rate")
	}
}
