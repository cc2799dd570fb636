package sample

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

func init() {
	Register("ogg", vorbisDecoder{})
}

// vorbisDecoder decodes Ogg Vorbis streams, which already arrive as
// interleaved float32.
type vorbisDecoder struct{}

func (vorbisDecoder) Decode(r io.Reader) (*Clip, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}

	channels := dec.Channels()
	var data []float64
	buf := make([]float32, 4096)
	for {
		n, err := dec.Read(buf)
		for _, v := range buf[:n] {
			data = append(data, float64(v))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("vorbis pcm: %w", err)
		}
	}

	return &Clip{
		Data:       downmix(data, channels),
		SampleRate: float64(dec.SampleRate()),
	}, nil
}
