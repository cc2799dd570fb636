package source

import (
	"io"

	"github.com/cwbudde/algo-cookbook/engine"
)

// Limited caps another source at a fixed number of frames, turning an
// endless source such as a looping player or an oscillator into a
// finite one for offline rendering.
type Limited struct {
	src  engine.Source
	left int
}

// Limit wraps src so it reports end-of-stream after frames samples.
func Limit(src engine.Source, frames int) *Limited {
	if frames < 0 {
		frames = 0
	}
	return &Limited{src: src, left: frames}
}

// Remaining returns how many frames the wrapper will still pass.
func (l *Limited) Remaining() int { return l.left }

// ReadSamples forwards to the wrapped source, shortening the final
// block and ending the stream once the budget is spent.
func (l *Limited) ReadSamples(dst []float64) (int, error) {
	if l.left == 0 {
		return 0, io.EOF
	}
	if len(dst) > l.left {
		dst = dst[:l.left]
	}

	n, err := l.src.ReadSamples(dst)
	l.left -= n
	if err == nil && l.left == 0 {
		err = io.EOF
	}
	return n, err
}
