package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/PikeCameron/recipebox/pkg/types"
)

const maxNameWidth = 40

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// printRecipes writes rows as an aligned table followed by a total line.
func printRecipes(w io.Writer, rows []types.RecipeRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No recipes found.")
		return
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tINGREDIENTS")
	fmt.Fprintln(tw, "--\t----\t--------\t-----------")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			r.ID,
			truncate(r.Name, maxNameWidth),
			r.Category,
			strings.Join(r.IngredientNames(), ", "),
		)
	}
	tw.Flush()
	writeTrimmed(w, sb.String())

	fmt.Fprintf(w, "Total: %d recipe(s)\n", len(rows))
}

// printRecipe writes one row as labelled fields.
func printRecipe(w io.Writer, r types.RecipeRow) {
	ingredients := strings.Join(r.IngredientNames(), ", ")
	if ingredients == "" {
		ingredients = "(none)"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", r.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", r.Name)
	fmt.Fprintf(tw, "Category:\t%s (%d)\n", r.Category, r.CategoryID)
	fmt.Fprintf(tw, "Ingredients:\t%s\n", ingredients)
	tw.Flush()
	writeTrimmed(w, sb.String())
}

func printCategories(w io.Writer, categories []types.Category) {
	if len(categories) == 0 {
		fmt.Fprintln(w, "No categories found. Run 'recipebox init' or 'recipebox reset'.")
		return
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	fmt.Fprintln(tw, "--\t----")
	for _, c := range categories {
		fmt.Fprintf(tw, "%d\t%s\n", c.ID, c.Name)
	}
	tw.Flush()
	writeTrimmed(w, sb.String())
}

// writeTrimmed copies tabwriter output to w without trailing padding.
func writeTrimmed(w io.Writer, s string) {
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
