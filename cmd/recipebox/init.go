package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and the recipe store",
		Long: `Init writes a default config.yaml if none exists, creates the database and
seeds the categories when the store has none. Running init again leaves
existing data alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := store.Categories()
			if err != nil {
				return err
			}
			if len(categories) > 0 {
				if a.jsonOut {
					return printJSON(cmd.OutOrStdout(), categories)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recipebox already initialized at %s\n", store.Path())
				return nil
			}

			path := store.Path()
			if err := store.Reseed(); err != nil {
				return err
			}
			return a.reportCategories(cmd, fmt.Sprintf("Recipebox initialized at %s", path))
		},
	}
}
