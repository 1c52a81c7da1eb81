package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/PikeCameron/recipebox/pkg/types"
)

// Reset drops every table, recreates the schema and inserts one category per
// record of seed, all in one transaction. The seed is parsed before anything
// is dropped, so a malformed source leaves the store untouched.
//
// Reset is destructive and releases the store in every case: on return the
// Store is closed, whether the reset succeeded or not. Open the database
// again to continue working with it.
func (s *Store) Reset(seed io.Reader) (err error) {
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("reset: %w", cerr)
		}
	}()

	names, err := parseSeed(seed)
	if err != nil {
		return s.fail("reset", err)
	}

	err = s.withTx("reset", func(tx *sql.Tx) error {
		for _, ddl := range dropDDL {
			if _, err := tx.Exec(ddl); err != nil {
				return fmt.Errorf("dropping tables: %w", err)
			}
		}
		if err := createSchema(tx); err != nil {
			return err
		}
		for _, name := range names {
			if _, err := tx.Exec("INSERT INTO Categories (name) VALUES (?)", name); err != nil {
				return fmt.Errorf("seeding category %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("store reset", "categories", len(names))
	return nil
}

// ResetFromFile resets the store from the seed file at path, or from the
// built-in category list when path is empty. Like Reset, it closes the store
// before returning, including when the file cannot be opened.
func (s *Store) ResetFromFile(path string) error {
	if path == "" {
		return s.Reset(DefaultSeed())
	}

	f, err := os.Open(path)
	if err != nil {
		if cerr := s.Close(); cerr != nil {
			s.logger.Warn("closing store after seed failure", "error", cerr)
		}
		return s.fail("reset", fmt.Errorf("%w: opening %s: %w", types.ErrSeedSource, path, err))
	}
	defer f.Close()

	return s.Reset(f)
}

// Reseed resets the store from the seed file it was opened with, or from the
// built-in category list when Config.SeedFile was empty.
func (s *Store) Reseed() error {
	return s.ResetFromFile(s.seedFile)
}
