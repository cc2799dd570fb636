package sink

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto permits one context per process, created once with a fixed
// format. Later devices must match its sample rate.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoRate int
	otoErr  error
)

func otoContext(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoErr = fmt.Errorf("sink: open audio device: %w", err)
			return
		}
		<-ready

		otoCtx = ctx
		otoRate = sampleRate
	})

	if otoErr != nil {
		return nil, otoErr
	}
	if sampleRate != otoRate {
		return nil, fmt.Errorf("sink: audio device already open at %d Hz, cannot switch to %d Hz", otoRate, sampleRate)
	}

	return otoCtx, nil
}

// Device plays interleaved stereo float32 audio on the system's
// default output. The player pulls from a pipe, so WriteAudio blocks
// once the device buffer is full; that backpressure paces the render
// loop to real time.
type Device struct {
	player *oto.Player
	pw     *io.PipeWriter
	buf    []byte
}

// NewDevice opens the audio device at sampleRate and starts playback.
func NewDevice(sampleRate float64) (*Device, error) {
	ctx, err := otoContext(int(math.Round(sampleRate)))
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	player := ctx.NewPlayer(pr)
	player.Play()

	return &Device{player: player, pw: pw}, nil
}

// WriteAudio encodes samples as little-endian float32 and feeds them
// to the player, blocking while the device buffer is full.
func (d *Device) WriteAudio(samples []float32) error {
	need := 4 * len(samples)
	if cap(d.buf) < need {
		d.buf = make([]byte, need)
	}

	buf := d.buf[:need]
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(s))
	}

	if _, err := d.pw.Write(buf); err != nil {
		return fmt.Errorf("sink: device write: %w", err)
	}

	return nil
}

// Close stops accepting audio, lets the buffered tail play out, and
// releases the player. The shared device context stays open.
func (d *Device) Close() error {
	if err := d.pw.Close(); err != nil {
		return fmt.Errorf("sink: device close: %w", err)
	}

	for d.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	if err := d.player.Close(); err != nil {
		return fmt.Errorf("sink: device close: %w", err)
	}

	return nil
}
