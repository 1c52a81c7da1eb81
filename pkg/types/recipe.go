package types

import "strings"

// Category classifies recipes. Categories are created only by a store reset.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Recipe is a named dish linked to exactly one category.
type Recipe struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
}

// Ingredient is a named component owned by one recipe.
type Ingredient struct {
	ID       int64  `json:"id"`
	RecipeID int64  `json:"recipe_id"`
	Name     string `json:"name"`
}

// RecipeRow is the joined read shape: a recipe with its category name and the
// comma-joined listing of its ingredient names in insertion order. Ingredients
// is empty when the recipe has none.
type RecipeRow struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CategoryID  int64  `json:"category_id"`
	Category    string `json:"category"`
	Ingredients string `json:"ingredients"`
}

// IngredientNames splits the aggregated listing back into names.
func (r RecipeRow) IngredientNames() []string {
	if r.Ingredients == "" {
		return []string{}
	}
	return strings.Split(r.Ingredients, ",")
}

// RecipeUpdate describes a partial update. A nil field leaves the stored
// value unchanged.
//
// Ingredients has three states: nil leaves the ingredient set untouched, a
// pointer to an empty slice removes every ingredient, and a non-empty slice
// replaces the set entirely.
type RecipeUpdate struct {
	Name        *string
	CategoryID  *int64
	Ingredients *[]string
}

// IsEmpty reports whether the update changes nothing.
func (u RecipeUpdate) IsEmpty() bool {
	return u.Name == nil && u.CategoryID == nil && u.Ingredients == nil
}

// ValidateName rejects empty or blank names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}
