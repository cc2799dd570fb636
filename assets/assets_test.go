package assets

import (
	"strings"
	"testing"

	"github.com/cwbudde/algo-cookbook/internal/testutil"
)

func TestLoopsDecode(t *testing.T) {
	loops := Loops()
	if len(loops) == 0 {
		t.Fatal("no bundled loops")
	}

	foundDefault := false
	for _, name := range loops {
		clip, err := LoadClip(name)
		testutil.RequireNoError(t, err)

		if clip.SampleRate != 44100 {
			t.Fatalf("%s: SampleRate = %g, want 44100", name, clip.SampleRate)
		}
		if clip.Frames() == 0 {
			t.Fatalf("%s: empty clip", name)
		}
		if peak := clip.Peak(); peak <= 0 || peak > 1 {
			t.Fatalf("%s: peak = %g", name, peak)
		}
		testutil.RequireFinite(t, clip.Data)

		if name == DefaultLoop {
			foundDefault = true
		}
	}
	if !foundDefault {
		t.Fatalf("DefaultLoop %q not among %v", DefaultLoop, loops)
	}
}

func TestDemoMIDIParses(t *testing.T) {
	f, err := LoadMIDI(DefaultMIDI)
	testutil.RequireNoError(t, err)

	if f.Tempo != 120 {
		t.Fatalf("Tempo = %g, want 120", f.Tempo)
	}
	if len(f.Tracks) != 3 {
		t.Fatalf("Tracks = %d, want 3", len(f.Tracks))
	}
	if f.NoteCount() != 12 {
		t.Fatalf("NoteCount = %d, want 12", f.NoteCount())
	}

	byName := map[string]int{}
	for _, tr := range f.Tracks {
		byName[tr.Name] = len(tr.Notes)
	}
	if byName["Melody"] != 8 || byName["Bass"] != 4 {
		t.Fatalf("notes per track = %v", byName)
	}
}

func TestReadRejectsUnknownNames(t *testing.T) {
	if _, err := ReadLoop("nope.wav"); err == nil {
		t.Fatal("ReadLoop accepted an unknown name")
	}
	// A MIDI file is not a loop, even though it is bundled.
	if _, err := ReadLoop(DefaultMIDI); err == nil {
		t.Fatal("ReadLoop accepted a MIDI asset")
	}
	if _, err := ReadMIDI("nope.mid"); err == nil {
		t.Fatal("ReadMIDI accepted an unknown name")
	}
}

func TestListAssets(t *testing.T) {
	out := ListAssets()
	for _, want := range []string{"loops:", "midi:", DefaultLoop, DefaultMIDI} {
		if !strings.Contains(out, want) {
			t.Fatalf("ListAssets output missing %q:\n%s", want, out)
		}
	}
}
