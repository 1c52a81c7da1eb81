package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PikeCameron/recipebox/internal/sqlite"
	"github.com/PikeCameron/recipebox/pkg/types"
)

func newCategoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "category [id|name]",
		Short: "List recipes in a category",
		Long: `Category lists the recipes filed under one category. The category is
given by ID or by name, ignoring case. Without an argument every recipe is
listed. An unknown category lists nothing.

Example:
  recipebox category 1
  recipebox category dessert`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			rows, err := recipesInCategory(store, arg)
			if err != nil {
				return err
			}
			return a.writeRecipes(cmd, rows)
		},
	}
}

// recipesInCategory lists the recipes for a category given by ID or name.
// An empty arg lists every recipe. A name that matches no category yields an
// empty list, the same as an unknown ID.
func recipesInCategory(store *sqlite.Store, arg string) ([]types.RecipeRow, error) {
	if arg == "" {
		return store.FetchByCategory(nil)
	}
	if id, err := parseID(arg); err == nil {
		return store.FetchByCategory(&id)
	}

	categories, err := store.Categories()
	if err != nil {
		return nil, err
	}
	switch matches := matchCategories(categories, arg); len(matches) {
	case 0:
		return []types.RecipeRow{}, nil
	case 1:
		return store.FetchByCategory(&matches[0].ID)
	}
	return nil, fmt.Errorf("category %q is ambiguous, use its id: %w", arg, types.ErrReferential)
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the seeded categories",
		Args:  cobra.NoArgs,
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
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), categories)
			}
			printCategories(cmd.OutOrStdout(), categories)
			return nil
		},
	}
}
