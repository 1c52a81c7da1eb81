package types

import "errors"

// Error kinds reported by store operations. Operations wrap one of these with
// context, so callers branch with errors.Is.
var (
	// ErrConstraintViolation reports a uniqueness or not-null breach, such as
	// a second recipe with an existing name.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrReferential reports a reference to a category or recipe that does
	// not exist.
	ErrReferential = errors.New("referenced entity does not exist")

	// ErrNotFound reports that the target of an update or delete is absent.
	ErrNotFound = errors.New("entity not found")

	// ErrResource reports an I/O or connection failure.
	ErrResource = errors.New("storage resource failure")

	// ErrSeedSource reports a missing or malformed category seed stream.
	ErrSeedSource = errors.New("invalid seed source")
)

// Argument and lifecycle errors.
var (
	ErrInvalidName = errors.New("name must not be empty")
	ErrStoreClosed = errors.New("store is closed")
)

// IsUserError reports whether err is caused by the caller's input rather than
// the storage layer itself.
func IsUserError(err error) bool {
	switch {
	case errors.Is(err, ErrResource):
		return false
	case errors.Is(err, ErrConstraintViolation),
		errors.Is(err, ErrReferential),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrSeedSource),
		errors.Is(err, ErrInvalidName):
		return true
	}
	return false
}
