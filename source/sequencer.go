package source

import (
	"io"
	"sort"

	"github.com/cwbudde/algo-cookbook/midifile"
)

// noteEvent is one scheduled key press or release, in samples from
// the start of the sequence.
type noteEvent struct {
	at       int
	key      int
	velocity float64
	on       bool
}

// NoteSequencer plays every note of a MIDI file through an Oscillator
// at the file's tempo. A non-looping sequencer reports end-of-stream
// once the last voice has released.
type NoteSequencer struct {
	osc    *Oscillator
	events []noteEvent
	next   int
	clock  int
	loop   bool
}

// NewNoteSequencer schedules all tracks of f onto a fresh oscillator
// rendering at sampleRate.
func NewNoteSequencer(f *midifile.File, sampleRate float64, loop bool) *NoteSequencer {
	s := &NoteSequencer{
		osc:  NewOscillator(sampleRate),
		loop: loop,
	}

	for _, tr := range f.Tracks {
		for _, n := range tr.Notes {
			on := int(n.StartSeconds * sampleRate)
			off := int((n.StartSeconds + n.DurationSeconds) * sampleRate)
			if off <= on {
				off = on + 1
			}
			s.events = append(s.events,
				noteEvent{at: on, key: n.Key, velocity: float64(n.Velocity) / 127, on: true},
				noteEvent{at: off, key: n.Key, on: false},
			)
		}
	}

	sort.SliceStable(s.events, func(i, j int) bool {
		a, b := s.events[i], s.events[j]
		if a.at != b.at {
			return a.at < b.at
		}
		// Releases before presses at the same instant, so retriggers
		// of a key start a fresh voice.
		return !a.on && b.on
	})

	return s
}

// Oscillator exposes the sequencer's instrument, e.g. for gain.
func (s *NoteSequencer) Oscillator() *Oscillator { return s.osc }

// Events returns the number of scheduled note events.
func (s *NoteSequencer) Events() int { return len(s.events) }

// ReadSamples renders the sequence. After the final event a
// non-looping sequencer keeps rendering until the last release tail
// fades, then returns io.EOF.
func (s *NoteSequencer) ReadSamples(dst []float64) (int, error) {
	if len(s.events) == 0 {
		return 0, io.EOF
	}

	for i := range dst {
		s.fireDue()

		if s.next >= len(s.events) {
			if s.loop {
				// Wrap right after the last release; ringing voices
				// carry over into the next pass.
				s.next = 0
				s.clock = 0
				s.fireDue()
			} else if s.osc.ActiveVoices() == 0 {
				// Sequence done and every voice faded.
				for j := i; j < len(dst); j++ {
					dst[j] = 0
				}
				return i, io.EOF
			}
		}

		dst[i] = s.osc.nextSample()
		s.clock++
	}
	return len(dst), nil
}

// fireDue applies every event scheduled at or before the clock.
func (s *NoteSequencer) fireDue() {
	for s.next < len(s.events) && s.events[s.next].at <= s.clock {
		ev := s.events[s.next]
		if ev.on {
			s.osc.NoteOn(ev.key, ev.velocity)
		} else {
			s.osc.NoteOff(ev.key)
		}
		s.next++
	}
}
