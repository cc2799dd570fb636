// Package assets bundles the demonstration media the CLI falls back
// to: a few two-second seamless loops (drums, bass, keys) and a small
// multi-track MIDI file, all embedded in the binary.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-cookbook/midifile"
	"github.com/cwbudde/algo-cookbook/sample"
)

//go:embed media
var media embed.FS

const (
	// DefaultLoop is the clip played when no source is named.
	DefaultLoop = "drums.wav"
	// DefaultMIDI is the file the tracks command reads by default.
	DefaultMIDI = "demo.mid"
)

// Loops lists the bundled audio loops.
func Loops() []string { return list(".wav") }

// MIDIFiles lists the bundled MIDI files.
func MIDIFiles() []string { return list(".mid") }

func list(ext string) []string {
	entries, err := media.ReadDir("media")
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ext) {
			names = append(names, e.Name())
		}
	}
	return names
}

// ReadLoop returns the raw WAV bytes of one bundled loop.
func ReadLoop(name string) ([]byte, error) {
	return read(name, Loops())
}

// ReadMIDI returns the raw SMF bytes of one bundled MIDI file.
func ReadMIDI(name string) ([]byte, error) {
	return read(name, MIDIFiles())
}

func read(name string, known []string) ([]byte, error) {
	for _, k := range known {
		if k == name {
			return media.ReadFile("media/" + name)
		}
	}
	return nil, fmt.Errorf("assets: unknown asset %q (have %s)", name, strings.Join(known, ", "))
}

// LoadClip decodes a bundled loop into a mono clip.
func LoadClip(name string) (*sample.Clip, error) {
	raw, err := ReadLoop(name)
	if err != nil {
		return nil, err
	}

	clip, err := sample.Decode(bytes.NewReader(raw), "wav")
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}

	return clip, nil
}

// LoadMIDI parses a bundled MIDI file.
func LoadMIDI(name string) (*midifile.File, error) {
	raw, err := ReadMIDI(name)
	if err != nil {
		return nil, err
	}

	f, err := midifile.Read(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("assets: parse %s: %w", name, err)
	}

	return f, nil
}

// ListAssets renders the bundle as text for the CLI.
func ListAssets() string {
	var b strings.Builder

	b.WriteString("loops:\n")
	for _, n := range Loops() {
		fmt.Fprintf(&b, "  %s\n", n)
	}

	b.WriteString("midi:\n")
	for _, n := range MIDIFiles() {
		fmt.Fprintf(&b, "  %s\n", n)
	}

	return b.String()
}
