package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-cookbook/recipe"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <recipe>",
		Short: "Describe a recipe and its parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := recipe.Default().Lookup(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %s [%s]\n", rec.Name, rec.Title, rec.Group)
			if rec.Doc != "" {
				fmt.Fprintf(w, "\n%s\n", rec.Doc)
			}
			if len(rec.Params) == 0 {
				return nil
			}

			fmt.Fprintln(w)
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PARAM\tLABEL\tUNIT\tRANGE\tDEFAULT\tSTEP")
			for _, p := range rec.Params {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%g..%g\t%g\t%g\n",
					p.Name, p.Label, p.Unit, p.Min, p.Max, p.Default, p.Step)
			}
			return tw.Flush()
		},
	}
}
