// Package sqlite implements the recipe catalog on a single SQLite file.
//
// A Store owns one database handle for the life of the process. Every public
// operation runs inside its own transaction and either commits or rolls back
// before returning, so no statement from a failed call can be committed by a
// later one.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/PikeCameron/recipebox/pkg/types"
)

const driverName = "sqlite"

// Connection pragmas. foreign_keys is per connection in SQLite, so it is set
// through the DSN as well as executed once after open.
const (
	pragmaForeignKeysOn = `PRAGMA foreign_keys = ON`
	pragmaBusyTimeout   = `PRAGMA busy_timeout = 5000`
)

// Store is the handle to one recipe database file.
type Store struct {
	mu       sync.Mutex
	db       *sql.DB
	path     string
	seedFile string
	logger   *slog.Logger
}

// Open validates cfg, creates the data directory if needed, opens the
// database and creates any missing tables. Categories are not seeded; call
// Reset, ResetFromFile or Reseed for that. A nil logger discards log output.
func Open(cfg types.Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	path := cfg.Path()
	logger = logger.With("component", "store", "db", path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open store: create data dir: %w: %w", types.ErrResource, err)
	}

	db, err := sql.Open(driverName, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open store: %w: %w", types.ErrResource, err)
	}
	// One connection: the handle is the single owner of the file and the
	// pragmas above only need to hold for it.
	db.SetMaxOpenConns(1)

	if err := configureSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("open store: %w: %w", types.ErrResource, err)
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("open store: %w: %w", types.ErrResource, err)
	}

	logger.Debug("opened store")
	return &Store{db: db, path: path, seedFile: cfg.SeedFile, logger: logger}, nil
}

// Close releases the database handle. Close is idempotent; after it returns
// every operation fails with ErrResource wrapping ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("close store: %w: %w", types.ErrResource, err)
	}
	s.logger.Debug("closed store")
	return nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// withTx runs fn in a fresh transaction and commits when fn succeeds. Any
// failure rolls the transaction back before withTx returns. The error is
// classified into one of the kinds in package types and prefixed with op.
func (s *Store) withTx(op string, fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return fmt.Errorf("%s: %w: %w", op, types.ErrResource, types.ErrStoreClosed)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return s.fail(op, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return s.fail(op, err)
	}
	if err := tx.Commit(); err != nil {
		return s.fail(op, fmt.Errorf("committing: %w", err))
	}
	return nil
}

// fail classifies err and logs it: caller errors at debug, storage failures
// at warn.
func (s *Store) fail(op string, err error) error {
	classified := classify(op, err)
	level := slog.LevelWarn
	if types.IsUserError(classified) {
		level = slog.LevelDebug
	}
	s.logger.Log(context.Background(), level, "store operation failed", "op", op, "error", classified)
	return classified
}

func dsn(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func configureSQLite(db *sql.DB) error {
	for _, stmt := range []string{pragmaForeignKeysOn, pragmaBusyTimeout} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("configure sqlite %q: %w", stmt, err)
		}
	}
	return nil
}

// ensureSchema creates the tables and indexes when they do not exist yet.
func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer tx.Rollback()

	if err := createSchema(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema: %w", err)
	}
	return nil
}

func createSchema(tx *sql.Tx) error {
	for _, ddl := range schemaDDL {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
