// Package errs holds the error kinds shared across the storage layers
// and the HTTP surface.
package errs

import "errors"

var (
	// ErrInvalidInput is returned for a missing, empty or malformed URL.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a short code has no mapping.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable means the relational store is not connected.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrPersistenceFailure wraps a failed write to a durable store.
	ErrPersistenceFailure = errors.New("persistence failure")
	// ErrConflict is returned when a short code is already taken.
	ErrConflict = errors.New("data conflict")
	// ErrNilDependency guards constructors.
	ErrNilDependency = errors.New("nil dependency")
)
