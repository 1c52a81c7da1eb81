package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/PikeCameron/recipebox/pkg/types"
)

// Categories returns the seeded categories ordered by ID.
func (s *Store) Categories() ([]types.Category, error) {
	var result []types.Category
	err := s.withTx("fetch categories", func(tx *sql.Tx) error {
		rows, err := tx.Query("SELECT id, name FROM Categories ORDER BY id")
		if err != nil {
			return fmt.Errorf("querying categories: %w", err)
		}
		defer rows.Close()

		result = []types.Category{}
		for rows.Next() {
			var c types.Category
			if err := rows.Scan(&c.ID, &c.Name); err != nil {
				return fmt.Errorf("scanning category: %w", err)
			}
			result = append(result, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
