package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/PikeCameron/recipebox/pkg/types"
)

// Add inserts a recipe with its ingredients, in the given order, and returns
// the new recipe ID. The recipe and all its ingredients are committed
// together or not at all.
//
// Add fails with ErrConstraintViolation when name is already taken,
// ErrReferential when categoryID does not exist, and ErrInvalidName when the
// name or any ingredient is blank.
func (s *Store) Add(name string, categoryID int64, ingredients []string) (int64, error) {
	if err := validateRecipe(name, ingredients); err != nil {
		return 0, s.fail("add recipe", err)
	}

	var id int64
	err := s.withTx("add recipe", func(tx *sql.Tx) error {
		if err := requireCategory(tx, categoryID); err != nil {
			return err
		}
		res, err := tx.Exec("INSERT INTO Recipes (name, category_id) VALUES (?, ?)", name, categoryID)
		if err != nil {
			return fmt.Errorf("inserting recipe %q: %w", name, err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading recipe id: %w", err)
		}
		return insertIngredients(tx, id, ingredients)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debug("added recipe", "id", id, "ingredients", len(ingredients))
	return id, nil
}

// Update applies upd to the recipe with the given ID. Nil fields are left
// unchanged; a non-nil Ingredients replaces the whole ingredient set, and an
// empty one clears it.
//
// Update fails with ErrNotFound when the recipe does not exist, and otherwise
// reports the same errors as Add.
func (s *Store) Update(id int64, upd types.RecipeUpdate) error {
	if upd.Name != nil {
		if err := types.ValidateName(*upd.Name); err != nil {
			return s.fail("update recipe", fmt.Errorf("recipe name: %w", err))
		}
	}
	if upd.Ingredients != nil {
		if err := validateIngredients(*upd.Ingredients); err != nil {
			return s.fail("update recipe", err)
		}
	}

	err := s.withTx("update recipe", func(tx *sql.Tx) error {
		if err := requireRecipe(tx, id); err != nil {
			return err
		}
		if upd.Name != nil {
			if _, err := tx.Exec("UPDATE Recipes SET name = ? WHERE id = ?", *upd.Name, id); err != nil {
				return fmt.Errorf("renaming recipe %d: %w", id, err)
			}
		}
		if upd.CategoryID != nil {
			if err := requireCategory(tx, *upd.CategoryID); err != nil {
				return err
			}
			if _, err := tx.Exec("UPDATE Recipes SET category_id = ? WHERE id = ?", *upd.CategoryID, id); err != nil {
				return fmt.Errorf("recategorizing recipe %d: %w", id, err)
			}
		}
		if upd.Ingredients != nil {
			if _, err := tx.Exec("DELETE FROM Ingredients WHERE recipe_id = ?", id); err != nil {
				return fmt.Errorf("clearing ingredients of recipe %d: %w", id, err)
			}
			if err := insertIngredients(tx, id, *upd.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("updated recipe", "id", id)
	return nil
}

// Delete removes the recipe with the given ID and all of its ingredients.
// Ingredients go first so the delete holds under foreign key enforcement.
// Delete fails with ErrNotFound when the recipe does not exist.
func (s *Store) Delete(id int64) error {
	err := s.withTx("delete recipe", func(tx *sql.Tx) error {
		if err := requireRecipe(tx, id); err != nil {
			return err
		}
		if _, err := tx.Exec("DELETE FROM Ingredients WHERE recipe_id = ?", id); err != nil {
			return fmt.Errorf("deleting ingredients of recipe %d: %w", id, err)
		}
		if _, err := tx.Exec("DELETE FROM Recipes WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting recipe %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("deleted recipe", "id", id)
	return nil
}

// Get returns the joined row for the recipe with the given ID. A missing
// recipe is not an error: Get returns found == false and a nil error.
func (s *Store) Get(id int64) (row types.RecipeRow, found bool, err error) {
	err = s.withTx("get recipe", func(tx *sql.Tx) error {
		rows, err := queryRecipeRows(tx, selectRecipeRows+" WHERE r.id = ? GROUP BY r.id", id)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			row, found = rows[0], true
		}
		return nil
	})
	if err != nil {
		return types.RecipeRow{}, false, err
	}
	return row, found, nil
}

// Fetch returns every recipe in the joined shape, ordered by ID.
func (s *Store) Fetch() ([]types.RecipeRow, error) {
	var result []types.RecipeRow
	err := s.withTx("fetch recipes", func(tx *sql.Tx) error {
		var err error
		result, err = queryRecipeRows(tx, selectRecipeRows+" GROUP BY r.id ORDER BY r.id")
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FetchByCategory returns the recipes in the given category, ordered by ID.
// A nil categoryID returns every recipe; an unknown one returns an empty
// slice.
func (s *Store) FetchByCategory(categoryID *int64) ([]types.RecipeRow, error) {
	if categoryID == nil {
		return s.Fetch()
	}

	var result []types.RecipeRow
	err := s.withTx("fetch recipes by category", func(tx *sql.Tx) error {
		var err error
		result, err = queryRecipeRows(tx,
			selectRecipeRows+" WHERE r.category_id = ? GROUP BY r.id ORDER BY r.id", *categoryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func queryRecipeRows(tx *sql.Tx, query string, args ...any) ([]types.RecipeRow, error) {
	rows, err := tx.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying recipes: %w", err)
	}
	defer rows.Close()

	result := []types.RecipeRow{}
	for rows.Next() {
		var r types.RecipeRow
		if err := rows.Scan(&r.ID, &r.Name, &r.CategoryID, &r.Category, &r.Ingredients); err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipes: %w", err)
	}
	return result, nil
}

func insertIngredients(tx *sql.Tx, recipeID int64, ingredients []string) error {
	for _, name := range ingredients {
		if _, err := tx.Exec("INSERT INTO Ingredients (recipe_id, name) VALUES (?, ?)", recipeID, name); err != nil {
			return fmt.Errorf("inserting ingredient %q: %w", name, err)
		}
	}
	return nil
}

func requireCategory(tx *sql.Tx, id int64) error {
	var one int
	err := tx.QueryRow("SELECT 1 FROM Categories WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("category %d: %w", id, types.ErrReferential)
	}
	if err != nil {
		return fmt.Errorf("checking category %d: %w", id, err)
	}
	return nil
}

func requireRecipe(tx *sql.Tx, id int64) error {
	var one int
	err := tx.QueryRow("SELECT 1 FROM Recipes WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("recipe %d: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking recipe %d: %w", id, err)
	}
	return nil
}

func validateRecipe(name string, ingredients []string) error {
	if err := types.ValidateName(name); err != nil {
		return fmt.Errorf("recipe name: %w", err)
	}
	return validateIngredients(ingredients)
}

func validateIngredients(ingredients []string) error {
	for i, ing := range ingredients {
		if err := types.ValidateName(ing); err != nil {
			return fmt.Errorf("ingredient %d: %w", i+1, err)
		}
	}
	return nil
}
