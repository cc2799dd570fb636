package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-cookbook/preset"
	"github.com/cwbudde/algo-cookbook/sink"
	"github.com/cwbudde/algo-cookbook/source"
	"github.com/cwbudde/algo-cookbook/tap"
)

func renderCmd() *cobra.Command {
	var opts graphOptions
	var out string
	var duration time.Duration
	var savePreset string

	c := &cobra.Command{
		Use:   "render <recipe>",
		Short: "Render a recipe offline into a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, cond, src, err := buildGraph(cmd, args[0], &opts)
			if err != nil {
				return err
			}

			if savePreset != "" {
				err = preset.Capture(cond, eng).Save(savePreset)
				if err != nil {
					return err
				}
				slog.Info("preset saved", "path", savePreset)
			}

			feed := src.src
			if duration > 0 {
				feed = source.Limit(feed, int(duration.Seconds()*eng.SampleRate()))
			} else if src.endless {
				return fmt.Errorf("source %q never ends, set --duration", opts.source)
			}
			eng.SetSource(feed)

			meter := tap.NewMeter()
			loud := tap.NewLoudness(eng.SampleRate())
			eng.AddTap(meter)
			eng.AddTap(loud)

			path := out
			if path == "" {
				path = args[0] + ".wav"
			}
			w, err := sink.NewWAVWriter(path, eng.SampleRate())
			if err != nil {
				return err
			}

			start := time.Now()
			err = eng.Run(cmd.Context(), w)
			if err != nil {
				w.Close()
				return err
			}
			err = w.Close()
			if err != nil {
				return err
			}

			slog.Info("rendered", "recipe", args[0], "source", src.desc,
				"path", path, "took", time.Since(start).Round(time.Millisecond))

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			printLevels(cmd.OutOrStdout(), meter, loud)
			return nil
		},
	}

	addGraphFlags(c, &opts)
	c.Flags().StringVarP(&out, "out", "o", "", "output file (default <recipe>.wav)")
	c.Flags().DurationVar(&duration, "duration", 8*time.Second,
		"length to render; 0 renders until the source ends")
	c.Flags().StringVar(&savePreset, "save-preset", "",
		"write the effective parameter values to a preset file")
	return c
}
