package midifile

import (
	"fmt"
	"math"
	"strings"
)

// Rows renders the track as a text piano roll, one row per key from
// the highest used key down to the lowest, each width cells wide.
// Cells covered by a note are '#', the rest '.'. Returns nil for
// tracks without notes.
func (t *Track) Rows(width int) []string {
	if len(t.Notes) == 0 || width < 1 || t.EndBeats <= 0 {
		return nil
	}

	beatsPerCell := t.EndBeats / float64(width)
	rows := make([]string, 0, t.MaxKey-t.MinKey+1)

	for key := t.MaxKey; key >= t.MinKey; key-- {
		cells := []byte(strings.Repeat(".", width))
		for _, n := range t.Notes {
			if n.Key != key {
				continue
			}
			start := int(n.Start / beatsPerCell)
			end := int(math.Ceil(n.End() / beatsPerCell))
			if start >= width {
				start = width - 1
			}
			if end > width {
				end = width
			}
			if end <= start {
				end = start + 1
			}
			for c := start; c < end; c++ {
				cells[c] = '#'
			}
		}
		rows = append(rows, fmt.Sprintf("%4s |%s|", KeyName(key), cells))
	}

	return rows
}
