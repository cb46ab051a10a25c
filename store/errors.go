package store

import "errors"

var (
	// ErrNotFound is returned when the target of an operation does not resolve
	// and the operation is not one of the lenient no-ops.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRequest is returned for unresolvable parents and unknown kinds.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrSeedMissing is returned by Reset when no seed source can be read.
	ErrSeedMissing = errors.New("seed source unavailable")

	// ErrNoDocument is returned by a Gateway when nothing has been saved yet.
	ErrNoDocument = errors.New("no persisted document")

	// ErrCorruptDocument is returned by a Gateway when the saved document
	// cannot be decoded.
	ErrCorruptDocument = errors.New("persisted document is corrupt")
)
