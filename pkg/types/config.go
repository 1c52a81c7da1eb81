// Store configuration shared by the CLI and the SQLite store.
package types

import (
	"errors"
	"path/filepath"
	"strings"
)

// Config holds the parameters for opening a recipe store.
type Config struct {
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	Database string `json:"database" yaml:"database"`
	SeedFile string `json:"seed_file,omitempty" yaml:"seed_file,omitempty"`
}

// DefaultDatabase is the store file name used when Config.Database is empty.
const DefaultDatabase = "recipes.db"

// Config validation errors.
var (
	ErrDatabaseInvalid = errors.New("database must be a plain file name")
)

// Validate checks that the Config is well-formed. An empty Database is valid
// and resolves to DefaultDatabase.
func (c Config) Validate() error {
	if c.Database == "" {
		return nil
	}
	if c.Database != filepath.Base(c.Database) || strings.ContainsAny(c.Database, `/\`) {
		return ErrDatabaseInvalid
	}
	if c.Database == "." || c.Database == ".." {
		return ErrDatabaseInvalid
	}
	return nil
}

// Path returns the store file location: DataDir joined with Database.
// An empty DataDir means the current directory.
func (c Config) Path() string {
	dataDir := c.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	name := c.Database
	if name == "" {
		name = DefaultDatabase
	}
	return filepath.Join(dataDir, name)
}
