package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-cookbook/assets"
	"github.com/cwbudde/algo-cookbook/recipe"
)

func listCmd() *cobra.Command {
	var showAssets bool

	c := &cobra.Command{
		Use:   "list",
		Short: "List recipes by group",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if showAssets {
				fmt.Fprint(w, assets.ListAssets())
				return nil
			}

			reg := recipe.Default()
			for _, group := range reg.Groups() {
				fmt.Fprintf(w, "%s:\n", group)
				for _, rec := range reg.ByGroup(group) {
					fmt.Fprintf(w, "  %-14s %s\n", rec.Name, rec.Title)
				}
			}
			return nil
		},
	}

	c.Flags().BoolVar(&showAssets, "assets", false, "list the bundled media instead of recipes")
	return c
}
