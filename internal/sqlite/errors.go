package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/PikeCameron/recipebox/pkg/types"
)

// errorKinds are the classified errors that pass through unchanged.
var errorKinds = []error{
	types.ErrConstraintViolation,
	types.ErrReferential,
	types.ErrNotFound,
	types.ErrResource,
	types.ErrSeedSource,
	types.ErrInvalidName,
}

// classify maps err onto one of the error kinds in package types and prefixes
// it with op. Errors that already carry a kind keep it; driver errors are
// mapped by SQLite result code; everything else is a resource failure.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	switch {
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: %w", op, types.ErrReferential, err)
	case isConstraintError(err):
		return fmt.Errorf("%s: %w: %w", op, types.ErrConstraintViolation, err)
	}
	return fmt.Errorf("%s: %w: %w", op, types.ErrResource, err)
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return strings.Contains(strings.ToLower(err.Error()), "constraint failed")
	}
	code := sqliteErr.Code()
	switch code {
	case sqlite3.SQLITE_CONSTRAINT,
		sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY,
		sqlite3.SQLITE_CONSTRAINT_NOTNULL,
		sqlite3.SQLITE_CONSTRAINT_CHECK:
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT
}
