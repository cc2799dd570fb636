// Package midifile extracts note spans from standard MIDI files for
// track visualization: per-track note lists with positions in beats
// and seconds, key ranges, and a text piano roll. It reads what a
// piano-roll view needs and nothing else; actual MIDI playback
// scheduling lives in the source package.
package midifile

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"
)

// DefaultTempo is assumed when a file carries no set-tempo event.
const DefaultTempo = 120.0

// Note is one key press span within a track.
type Note struct {
	Key      int // MIDI key number, 0..127
	Velocity int // note-on velocity, 1..127
	Channel  int

	Start    float64 // onset in beats from the track start
	Duration float64 // length in beats

	StartSeconds    float64
	DurationSeconds float64
}

// End returns the note's release position in beats.
func (n Note) End() float64 { return n.Start + n.Duration }

// Track is the view model of one MIDI track.
type Track struct {
	Name    string
	Channel int // first note's channel, -1 if the track has no notes
	Program int // first program change, -1 if none

	Notes    []Note
	MinKey   int
	MaxKey   int
	EndBeats float64 // extent of the track, for roll scaling
}

// File is a parsed MIDI file reduced to visualization data.
type File struct {
	Division int     // ticks per quarter note
	Tempo    float64 // BPM from the first set-tempo event
	Tracks   []Track
}

// ErrNotMetric reports an SMPTE-timed file, which the beat-based view
// cannot represent.
var ErrNotMetric = errors.New("midifile: SMPTE time format not supported")

// ReadFile parses the MIDI file at path.
func ReadFile(path string) (*File, error) {
	s, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("midifile: %w", err)
	}
	return fromSMF(s)
}

// Read parses a MIDI file from r.
func Read(r io.Reader) (*File, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("midifile: %w", err)
	}
	return fromSMF(s)
}

// pendingNote tracks an un-released note-on while pairing.
type pendingNote struct {
	startTicks uint64
	velocity   int
}

type noteID struct {
	channel int
	key     int
}

func fromSMF(s *smf.SMF) (*File, error) {
	metric, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, ErrNotMetric
	}
	tpq := float64(metric)
	if tpq <= 0 {
		return nil, fmt.Errorf("midifile: invalid division %v", s.TimeFormat)
	}

	f := &File{
		Division: int(metric),
		Tempo:    0, // filled by the first set-tempo event
		Tracks:   make([]Track, 0, len(s.Tracks)),
	}

	for _, tr := range s.Tracks {
		track := Track{Channel: -1, Program: -1}
		pending := map[noteID]pendingNote{}
		var ticks uint64

		for _, ev := range tr {
			ticks += uint64(ev.Delta)
			msg := ev.Message

			var (
				ch, key, vel, prog uint8
				name               string
				bpm                float64
			)
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				id := noteID{int(ch), int(key)}
				// A retriggered key releases the previous press.
				if p, open := pending[id]; open {
					track.Notes = append(track.Notes, makeNote(id, p, ticks, tpq))
				}
				pending[id] = pendingNote{startTicks: ticks, velocity: int(vel)}
				if track.Channel < 0 {
					track.Channel = int(ch)
				}

			case msg.GetNoteEnd(&ch, &key):
				id := noteID{int(ch), int(key)}
				if p, open := pending[id]; open {
					track.Notes = append(track.Notes, makeNote(id, p, ticks, tpq))
					delete(pending, id)
				}

			case msg.GetMetaTrackName(&name):
				if track.Name == "" {
					track.Name = name
				}

			case msg.GetMetaTempo(&bpm):
				if f.Tempo == 0 && bpm > 0 {
					f.Tempo = bpm
				}

			case msg.GetProgramChange(&ch, &prog):
				if track.Program < 0 {
					track.Program = int(prog)
				}
			}
		}

		// Unterminated notes close at the end of the track.
		for id, p := range pending {
			track.Notes = append(track.Notes, makeNote(id, p, ticks, tpq))
		}

		sortNotes(track.Notes)
		finishTrack(&track, float64(ticks)/tpq)
		f.Tracks = append(f.Tracks, track)
	}

	if f.Tempo == 0 {
		f.Tempo = DefaultTempo
	}
	f.applyTempo()

	return f, nil
}

func makeNote(id noteID, p pendingNote, endTicks uint64, tpq float64) Note {
	start := float64(p.startTicks) / tpq
	end := float64(endTicks) / tpq
	return Note{
		Key:      id.key,
		Velocity: p.velocity,
		Channel:  id.channel,
		Start:    start,
		Duration: end - start,
	}
}

// sortNotes orders by onset, then key, so pairing map iteration order
// never leaks into the output.
func sortNotes(notes []Note) {
	sort.Slice(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		return a.Channel < b.Channel
	})
}

func finishTrack(t *Track, trackEndBeats float64) {
	t.EndBeats = trackEndBeats
	if len(t.Notes) == 0 {
		return
	}
	t.MinKey, t.MaxKey = 127, 0
	for _, n := range t.Notes {
		if n.Key < t.MinKey {
			t.MinKey = n.Key
		}
		if n.Key > t.MaxKey {
			t.MaxKey = n.Key
		}
		if end := n.End(); end > t.EndBeats {
			t.EndBeats = end
		}
	}
}

// applyTempo fills the seconds fields once the file tempo is known.
// Tempo changes beyond the first event are ignored; the visualization
// assumes a constant tempo like the rest of the cookbook.
func (f *File) applyTempo() {
	spb := 60.0 / f.Tempo
	for ti := range f.Tracks {
		notes := f.Tracks[ti].Notes
		for ni := range notes {
			notes[ni].StartSeconds = notes[ni].Start * spb
			notes[ni].DurationSeconds = notes[ni].Duration * spb
		}
	}
}

// Duration returns the playing time of the longest track.
func (f *File) Duration() float64 {
	spb := 60.0 / f.Tempo
	longest := 0.0
	for _, t := range f.Tracks {
		if end := t.EndBeats * spb; end > longest {
			longest = end
		}
	}
	return longest
}

// NoteCount returns the total number of notes across tracks.
func (f *File) NoteCount() int {
	n := 0
	for _, t := range f.Tracks {
		n += len(t.Notes)
	}
	return n
}

var keyNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// KeyName formats a MIDI key number, with middle C (60) as "C4".
func KeyName(key int) string {
	if key < 0 || key > 127 {
		return fmt.Sprintf("?%d", key)
	}
	return fmt.Sprintf("%s%d", keyNames[key%12], key/12-1)
}
