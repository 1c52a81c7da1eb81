package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PikeCameron/recipebox/internal/sqlite"
	"github.com/PikeCameron/recipebox/pkg/types"
)

// parseID parses a recipe or category ID argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

// matchCategories returns the categories whose name equals name, ignoring
// case.
func matchCategories(categories []types.Category, name string) []types.Category {
	name = strings.TrimSpace(name)
	var matches []types.Category
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			matches = append(matches, c)
		}
	}
	return matches
}

// resolveCategory turns an ID or a category name into a category ID. Numeric
// arguments are returned as is and checked by the store. Names must match
// exactly one category.
func resolveCategory(store *sqlite.Store, arg string) (int64, error) {
	if id, err := parseID(arg); err == nil {
		return id, nil
	}

	categories, err := store.Categories()
	if err != nil {
		return 0, err
	}
	matches := matchCategories(categories, arg)
	switch len(matches) {
	case 0:
		if len(categories) == 0 {
			return 0, fmt.Errorf("category %q: %w (no categories seeded, run 'recipebox init')", arg, types.ErrReferential)
		}
		return 0, fmt.Errorf("category %q: %w", arg, types.ErrReferential)
	case 1:
		return matches[0].ID, nil
	}
	return 0, fmt.Errorf("category %q is ambiguous, use its id: %w", arg, types.ErrReferential)
}

// cleanIngredients trims each ingredient and drops empty entries.
func cleanIngredients(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

// splitIngredients parses a comma-separated ingredient list.
func splitIngredients(s string) []string {
	return cleanIngredients(strings.Split(s, ","))
}
