package sample

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

func init() {
	Register("mp3", mp3Decoder{})
}

// mp3Decoder decodes MPEG audio via go-mp3, which always emits 16-bit
// little-endian stereo PCM at the stream's sample rate.
type mp3Decoder struct{}

func (mp3Decoder) Decode(r io.Reader) (*Clip, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 pcm: %w", err)
	}

	frames := len(raw) / 4 // 2 bytes × 2 channels
	data := make([]float64, 2*frames)
	for i := 0; i < 2*frames; i++ {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		data[i] = float64(v) / 32768
	}

	return &Clip{
		Data:       downmix(data, 2),
		SampleRate: float64(dec.SampleRate()),
	}, nil
}
