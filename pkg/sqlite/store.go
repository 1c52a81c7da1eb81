// Package sqlite is the public entry point to the SQLite recipe store. It
// exposes the store type and its constructor while the implementation stays
// internal.
package sqlite

import (
	"io"
	"log/slog"

	"github.com/PikeCameron/recipebox/internal/sqlite"
	"github.com/PikeCameron/recipebox/pkg/types"
)

// Store is an open recipe database. See Open.
type Store = sqlite.Store

// ImportResult reports the outcome of Store.Import.
type ImportResult = sqlite.ImportResult

// Open opens or creates the recipe database described by cfg. Categories are
// not seeded; call Reset or ResetFromFile on a new store.
//
// Example:
//
//	store, err := sqlite.Open(types.Config{DataDir: ".recipebox-db"}, nil)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
func Open(cfg types.Config, logger *slog.Logger) (*Store, error) {
	return sqlite.Open(cfg, logger)
}

// DefaultSeed returns the built-in category seed in CSV form.
func DefaultSeed() io.Reader {
	return sqlite.DefaultSeed()
}
