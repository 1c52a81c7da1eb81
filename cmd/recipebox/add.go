package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PikeCameron/recipebox/internal/sqlite"
	"github.com/PikeCameron/recipebox/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		name        string
		category    string
		ingredients []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe",
		Long: `Add creates a recipe in a category with an ordered ingredient list.
Ingredients are comma-separated and the flag may be repeated.

Example:
  recipebox add --name Pancakes --category Breakfast --ingredients flour,eggs,milk
  recipebox add --name Toast --category 1 -i bread -i butter`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			categoryID, err := resolveCategory(store, category)
			if err != nil {
				return err
			}
			id, err := store.Add(name, categoryID, cleanIngredients(ingredients))
			if err != nil {
				return err
			}
			return a.writeChanged(cmd, store, id, "Added")
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "recipe name (required)")
	cmd.Flags().StringVar(&category, "category", "", "category id or name (required)")
	cmd.Flags().StringSliceVarP(&ingredients, "ingredients", "i", nil, "ingredient names, comma-separated")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("category")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var (
		name             string
		category         string
		ingredients      []string
		clearIngredients bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a recipe",
		Long: `Update changes the fields given by flags and leaves the rest alone.
--ingredients replaces the whole ingredient list; --clear-ingredients removes it.

Example:
  recipebox update 3 --name "Blueberry Pancakes"
  recipebox update 3 --category Dessert --ingredients flour,eggs,milk,blueberries
  recipebox update 3 --clear-ingredients`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if clearIngredients && cmd.Flags().Changed("ingredients") {
				return fmt.Errorf("--ingredients and --clear-ingredients are mutually exclusive")
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var upd types.RecipeUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("category") {
				categoryID, err := resolveCategory(store, category)
				if err != nil {
					return err
				}
				upd.CategoryID = &categoryID
			}
			switch {
			case clearIngredients:
				upd.Ingredients = &[]string{}
			case cmd.Flags().Changed("ingredients"):
				cleaned := cleanIngredients(ingredients)
				upd.Ingredients = &cleaned
			}
			if upd.IsEmpty() {
				return fmt.Errorf("nothing to update: give --name, --category, --ingredients or --clear-ingredients")
			}

			if err := store.Update(id, upd); err != nil {
				return err
			}
			return a.writeChanged(cmd, store, id, "Updated")
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new recipe name")
	cmd.Flags().StringVar(&category, "category", "", "new category id or name")
	cmd.Flags().StringSliceVarP(&ingredients, "ingredients", "i", nil, "replacement ingredient names, comma-separated")
	cmd.Flags().BoolVar(&clearIngredients, "clear-ingredients", false, "remove every ingredient")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe and its ingredients",
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

			if err := store.Delete(id); err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]any{"id": id, "deleted": true})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %d\n", id)
			return nil
		},
	}
}

// writeChanged reports an added or updated recipe by reading it back.
func (a *app) writeChanged(cmd *cobra.Command, store *sqlite.Store, id int64, verb string) error {
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
	fmt.Fprintf(cmd.OutOrStdout(), "%s recipe %d: %s\n", verb, row.ID, row.Name)
	return nil
}
