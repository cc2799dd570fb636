package sample

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

func init() {
	Register("wav", wavDecoder{})
}

// wavDecoder decodes RIFF/WAVE PCM via go-audio/wav. The stream is
// buffered in memory first because the decoder needs seeking.
type wavDecoder struct{}

func (wavDecoder) Decode(r io.Reader) (*Clip, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	d := wav.NewDecoder(bytes.NewReader(raw))
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("pcm: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, errors.New("missing format chunk")
	}

	bitDepth := int(d.BitDepth)
	if buf.SourceBitDepth > 0 {
		bitDepth = buf.SourceBitDepth
	}

	data := make([]float64, len(buf.Data))
	switch bitDepth {
	case 8:
		// 8-bit WAV is unsigned.
		for i, v := range buf.Data {
			data[i] = (float64(v) - 128) / 128
		}
	case 16:
		for i, v := range buf.Data {
			data[i] = float64(v) / 32768
		}
	case 24:
		for i, v := range buf.Data {
			data[i] = float64(v) / 8388608
		}
	case 32:
		for i, v := range buf.Data {
			data[i] = float64(v) / 2147483648
		}
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}

	return &Clip{
		Data:       downmix(data, buf.Format.NumChannels),
		SampleRate: float64(buf.Format.SampleRate),
	}, nil
}
