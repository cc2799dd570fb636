package source

import (
	"math"
)

const (
	maxVoices = 64

	// Envelope endpoints for the exponential segments. The curve
	// starts and ends near silence rather than at exactly zero so the
	// ratios stay finite.
	envFloor = 0.0001

	defaultAttackSeconds  = 0.005
	defaultReleaseSeconds = 0.25
)

// Oscillator is a little sine synthesizer: each NoteOn starts a voice
// with an exponential attack, the voice sustains until NoteOff, then
// releases exponentially. It is the demo instrument behind MIDI
// playback and never reports end-of-stream.
type Oscillator struct {
	sampleRate float64
	gain       float64
	attack     int
	release    int
	voices     []oscVoice
}

type oscVoice struct {
	key       int
	phase     float64
	phaseStep float64
	amp       float64
	age       int
	releaseAt int // age at which the release began, -1 while held
}

// NewOscillator returns a voice bank rendering at sampleRate.
func NewOscillator(sampleRate float64) *Oscillator {
	attack := int(defaultAttackSeconds * sampleRate)
	if attack < 1 {
		attack = 1
	}
	release := int(defaultReleaseSeconds * sampleRate)
	if release < 1 {
		release = 1
	}
	return &Oscillator{
		sampleRate: sampleRate,
		gain:       0.2, // headroom for chords
		attack:     attack,
		release:    release,
		voices:     make([]oscVoice, 0, maxVoices),
	}
}

// SetGain sets the per-voice amplitude scale.
func (o *Oscillator) SetGain(v float64) {
	if v >= 0 {
		o.gain = v
	}
}

// NoteOn starts a voice for the MIDI key with velocity in [0, 1].
// The oldest voice is evicted when the bank is full.
func (o *Oscillator) NoteOn(key int, velocity float64) {
	if velocity <= 0 {
		o.NoteOff(key)
		return
	}
	if len(o.voices) >= maxVoices {
		copy(o.voices, o.voices[1:])
		o.voices = o.voices[:maxVoices-1]
	}
	o.voices = append(o.voices, oscVoice{
		key:       key,
		phaseStep: 2 * math.Pi * KeyFrequency(key) / o.sampleRate,
		amp:       math.Min(velocity, 1),
		releaseAt: -1,
	})
}

// NoteOff releases every held voice on the key.
func (o *Oscillator) NoteOff(key int) {
	for i := range o.voices {
		if o.voices[i].key == key && o.voices[i].releaseAt < 0 {
			o.voices[i].releaseAt = o.voices[i].age
		}
	}
}

// ActiveVoices returns the number of sounding voices.
func (o *Oscillator) ActiveVoices() int { return len(o.voices) }

// ReadSamples mixes all voices into dst. Always fills the block;
// silence when no voice is active.
func (o *Oscillator) ReadSamples(dst []float64) (int, error) {
	for i := range dst {
		dst[i] = o.nextSample()
	}
	return len(dst), nil
}

func (o *Oscillator) nextSample() float64 {
	if len(o.voices) == 0 {
		return 0
	}

	sum := 0.0
	write := 0
	for i := range o.voices {
		v := o.voices[i]

		env, alive := o.envelope(v)
		if !alive {
			continue
		}
		sum += env * v.amp * math.Sin(v.phase)

		v.phase += v.phaseStep
		if v.phase > math.Pi {
			v.phase -= 2 * math.Pi
		}
		v.age++
		o.voices[write] = v
		write++
	}
	o.voices = o.voices[:write]
	return sum * o.gain
}

// envelope returns the gain for a voice at its current age, and
// whether the voice is still audible.
func (o *Oscillator) envelope(v oscVoice) (float64, bool) {
	if v.releaseAt >= 0 {
		released := v.age - v.releaseAt
		if released >= o.release {
			return 0, false
		}
		t := float64(released) / float64(o.release)
		return o.attackLevel(v.releaseAt) * math.Pow(envFloor, t), true
	}
	return o.attackLevel(v.age), true
}

// attackLevel is the exponential rise from the floor to full level.
func (o *Oscillator) attackLevel(age int) float64 {
	if age >= o.attack {
		return 1
	}
	t := float64(age) / float64(o.attack)
	return envFloor * math.Pow(1/envFloor, t)
}

// KeyFrequency converts a MIDI key number to Hz (equal temperament,
// A4 = 440 Hz at key 69).
func KeyFrequency(key int) float64 {
	return 440 * math.Pow(2, float64(key-69)/12)
}
