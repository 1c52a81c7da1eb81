package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/PikeCameron/recipebox/pkg/types"
)

// recipeRecord is the JSON Lines form of a recipe used by Export and Import.
// Categories are referenced by name so a file can be imported into a store
// seeded with different IDs.
type recipeRecord struct {
	ID          int64    `json:"id,omitempty"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Ingredients []string `json:"ingredients"`
}

// ImportResult reports what Import did.
type ImportResult struct {
	Imported int
	Skipped  int
}

// Export writes every recipe to path as JSON Lines, replacing the file
// atomically, and returns the number of recipes written. Ingredient names
// are read from the Ingredients table, not split from the joined listing,
// so names containing commas survive.
func (s *Store) Export(path string) (int, error) {
	var (
		rows        []types.RecipeRow
		ingredients map[int64][]string
	)
	err := s.withTx("export recipes", func(tx *sql.Tx) error {
		var err error
		if rows, err = queryRecipeRows(tx, selectRecipeRows+" GROUP BY r.id ORDER BY r.id"); err != nil {
			return err
		}
		ingredients, err = ingredientsByRecipe(tx)
		return err
	})
	if err != nil {
		return 0, err
	}

	records := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		names := ingredients[row.ID]
		if names == nil {
			names = []string{}
		}
		data, err := json.Marshal(recipeRecord{
			ID:          row.ID,
			Name:        row.Name,
			Category:    row.Category,
			Ingredients: names,
		})
		if err != nil {
			return 0, s.fail("export recipes", fmt.Errorf("marshaling recipe %d: %w", row.ID, err))
		}
		records = append(records, data)
	}

	if err := writeJSONL(path, records); err != nil {
		return 0, s.fail("export recipes", err)
	}
	s.logger.Info("exported recipes", "path", path, "count", len(records))
	return len(records), nil
}

// Import adds every recipe in the JSON Lines file at path. Each recipe is
// added in its own transaction through Add, so a failure stops the import
// but keeps the recipes already added. Lines that are not valid JSON are
// skipped. Categories are matched by exact name; an unknown one fails with
// ErrReferential.
func (s *Store) Import(path string) (ImportResult, error) {
	var result ImportResult

	raw, skipped, err := readJSONL(path)
	result.Skipped = skipped
	if err != nil {
		return result, s.fail("import recipes", err)
	}

	categories, err := s.Categories()
	if err != nil {
		return result, err
	}
	byName := make(map[string]int64, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}

	for i, line := range raw {
		var rec recipeRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			result.Skipped++
			continue
		}
		categoryID, ok := byName[rec.Category]
		if !ok {
			return result, s.fail("import recipes",
				fmt.Errorf("record %d: category %q: %w", i+1, rec.Category, types.ErrReferential))
		}
		if _, err := s.Add(rec.Name, categoryID, rec.Ingredients); err != nil {
			return result, fmt.Errorf("import recipes: record %d: %w", i+1, err)
		}
		result.Imported++
	}

	s.logger.Info("imported recipes", "path", path, "count", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// ingredientsByRecipe returns every recipe's ingredient names in insertion
// order, keyed by recipe ID.
func ingredientsByRecipe(tx *sql.Tx) (map[int64][]string, error) {
	rows, err := tx.Query("SELECT recipe_id, name FROM Ingredients ORDER BY recipe_id, id")
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]string)
	for rows.Next() {
		var (
			recipeID int64
			name     string
		)
		if err := rows.Scan(&recipeID, &name); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		result[recipeID] = append(result[recipeID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingredients: %w", err)
	}
	return result, nil
}
