package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-cookbook/assets"
	"github.com/cwbudde/algo-cookbook/midifile"
)

func tracksCmd() *cobra.Command {
	var roll bool
	var width int

	c := &cobra.Command{
		Use:   "tracks [file.mid]",
		Short: "Summarize the tracks of a MIDI file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := assets.DefaultMIDI
			if len(args) == 1 {
				name = args[0]
			}
			f, err := loadMIDI(name)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %.0f BPM, division %d, %.1fs, %d notes\n\n",
				name, f.Tempo, f.Division, f.Duration(), f.NoteCount())

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tCH\tPROG\tNOTES\tRANGE")
			for i, tr := range f.Tracks {
				rng := "-"
				if len(tr.Notes) > 0 {
					rng = midifile.KeyName(tr.MinKey) + ".." + midifile.KeyName(tr.MaxKey)
				}
				ch := "-"
				if tr.Channel >= 0 {
					ch = strconv.Itoa(tr.Channel)
				}
				prog := "-"
				if tr.Program >= 0 {
					prog = strconv.Itoa(tr.Program)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
					i, tr.Name, ch, prog, len(tr.Notes), rng)
			}
			err = tw.Flush()
			if err != nil {
				return err
			}

			if !roll {
				return nil
			}
			for _, tr := range f.Tracks {
				rows := tr.Rows(width)
				if len(rows) == 0 {
					continue
				}
				fmt.Fprintf(w, "\n%s:\n", trackTitle(tr))
				for _, row := range rows {
					fmt.Fprintln(w, row)
				}
			}
			return nil
		},
	}

	c.Flags().BoolVar(&roll, "roll", false, "print a text piano roll per track")
	c.Flags().IntVar(&width, "width", 72, "piano roll width in characters")
	return c
}

func trackTitle(tr midifile.Track) string {
	if tr.Name != "" {
		return tr.Name
	}
	if tr.Channel >= 0 {
		return fmt.Sprintf("channel %d", tr.Channel)
	}
	return "(unnamed)"
}
