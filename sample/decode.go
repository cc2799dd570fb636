package sample

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Decoder turns an encoded stream into a Clip. Implementations
// downmix to mono themselves since channel layout is format-specific.
type Decoder interface {
	Decode(r io.Reader) (*Clip, error)
}

// ErrUnknownFormat reports an extension no decoder is registered for.
var ErrUnknownFormat = errors.New("unknown audio format")

// ErrEmptyAudio reports a stream that decoded to zero samples.
var ErrEmptyAudio = errors.New("decoded audio is empty")

var decoders = map[string]Decoder{}

// Register adds a decoder for a file extension ("wav", without dot).
// Registering the same extension twice panics, as does an empty
// extension or nil decoder.
func Register(ext string, d Decoder) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		panic("sample: empty format extension")
	}
	if d == nil {
		panic("sample: nil decoder for " + ext)
	}
	if _, dup := decoders[ext]; dup {
		panic("sample: duplicate decoder for " + ext)
	}
	decoders[ext] = d
}

// Formats lists the registered extensions, sorted.
func Formats() []string {
	out := make([]string, 0, len(decoders))
	for ext := range decoders {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Decode reads one clip from r using the decoder registered for
// format (a file extension).
func Decode(r io.Reader, format string) (*Clip, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	d, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("sample: %w: %q", ErrUnknownFormat, format)
	}
	clip, err := d.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("sample: decode %s: %w", format, err)
	}
	if len(clip.Data) == 0 {
		return nil, fmt.Errorf("sample: decode %s: %w", format, ErrEmptyAudio)
	}
	return clip, nil
}

// Load decodes the file at path, picking the decoder by extension.
func Load(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	defer f.Close()
	return Decode(f, filepath.Ext(path))
}

// downmix averages interleaved multichannel samples into mono.
// Mono input is returned unchanged.
func downmix(data []float64, channels int) []float64 {
	if channels <= 1 {
		return data
	}
	frames := len(data) / channels
	out := make([]float64, frames)
	inv := 1.0 / float64(channels)
	for f := 0; f < frames; f++ {
		sum := 0.0
		base := f * channels
		for c := 0; c < channels; c++ {
			sum += data[base+c]
		}
		out[f] = sum * inv
	}
	return out
}
