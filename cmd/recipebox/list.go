package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PikeCameron/recipebox/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every recipe",
		Long: `List shows every recipe with its category and ingredients, ordered by ID.

Example:
  recipebox list
  recipebox list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rows, err := store.Fetch()
			if err != nil {
				return err
			}
			return a.writeRecipes(cmd, rows)
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			row, found, err := store.Get(id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("recipe %d: %w", id, types.ErrNotFound)
			}

			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), row)
			}
			printRecipe(cmd.OutOrStdout(), row)
			return nil
		},
	}
}

func (a *app) writeRecipes(cmd *cobra.Command, rows []types.RecipeRow) error {
	if a.jsonOut {
		return printJSON(cmd.OutOrStdout(), rows)
	}
	printRecipes(cmd.OutOrStdout(), rows)
	return nil
}
