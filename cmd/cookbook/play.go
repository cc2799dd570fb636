package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-cookbook/sink"
	"github.com/cwbudde/algo-cookbook/tap"
)

func playCmd() *cobra.Command {
	var opts graphOptions
	var duration time.Duration
	var showSpectrum bool

	c := &cobra.Command{
		Use:   "play <recipe>",
		Short: "Play a recipe through the audio device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, src, err := buildGraph(cmd, args[0], &opts)
			if err != nil {
				return err
			}

			meter := tap.NewMeter()
			loud := tap.NewLoudness(eng.SampleRate())
			eng.AddTap(meter)
			eng.AddTap(loud)

			var spec *tap.Spectrum
			if showSpectrum {
				spec, err = tap.NewSpectrum(eng.SampleRate(), 2048)
				if err != nil {
					return err
				}
				eng.AddTap(spec)
			}

			dev, err := sink.NewDevice(eng.SampleRate())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			slog.Info("playing", "recipe", args[0], "source", src.desc,
				"rate", eng.SampleRate(), "duration", duration)

			err = eng.Run(ctx, dev)
			if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
				dev.Close()
				return err
			}
			err = dev.Close()
			if err != nil {
				return err
			}

			printLevels(cmd.OutOrStdout(), meter, loud)
			if spec != nil {
				printSpectrum(cmd.OutOrStdout(), spec, 8)
			}
			return nil
		},
	}

	addGraphFlags(c, &opts)
	c.Flags().DurationVar(&duration, "duration", 10*time.Second,
		"how long to play; 0 plays until the source ends")
	c.Flags().BoolVar(&showSpectrum, "spectrum", false,
		"print the loudest spectrum bins afterwards")
	return c
}

func printLevels(w io.Writer, meter *tap.Meter, loud *tap.Loudness) {
	lv := meter.Snapshot()
	lu := loud.Snapshot()
	fmt.Fprintf(w, "peak %6.1f dBFS   rms %6.1f dBFS   integrated %6.1f LUFS\n",
		lv.PeakDB, lv.RMSDB, lu.Integrated)
}

// printSpectrum lists the n loudest bins of the final spectrum frame.
func printSpectrum(w io.Writer, s *tap.Spectrum, n int) {
	mags := s.Snapshot(nil)
	order := make([]int, len(mags))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return mags[order[a]] > mags[order[b]] })

	if n > len(order) {
		n = len(order)
	}
	for _, i := range order[:n] {
		fmt.Fprintf(w, "%8.0f Hz  %6.1f dB\n", s.BinFrequency(i), mags[i])
	}
}
