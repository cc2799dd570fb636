// Command cookbook demonstrates the algo-dsp building blocks: filters,
// effects, reverbs and pitch shifters wired between a signal source and
// the speakers (or a WAV file), with live-rampable parameters.
//
// Usage:
//
//	cookbook list
//	cookbook show lowpass
//	cookbook play lowpass --set freq=800 --wet 1
//	cookbook play reverb-room --source demo.mid --duration 15s
//	cookbook render flanger --source bass.wav --out flanged.wav
//	cookbook tracks demo.mid --roll
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	Execute()
}

// Execute runs the command tree. Errors have already been logged by
// the time it exits non-zero.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:           "cookbook",
		Short:         "Audio effect demonstrations built on algo-dsp",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			initLogger(debug)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging")

	cmd.AddCommand(listCmd())
	cmd.AddCommand(showCmd())
	cmd.AddCommand(playCmd())
	cmd.AddCommand(renderCmd())
	cmd.AddCommand(tracksCmd())
	return cmd
}

// initLogger routes slog to stderr so command output on stdout stays
// clean for piping.
func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	slog.SetDefault(slog.New(h))
}
