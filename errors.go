package relaypager

import "errors"

var (
	// ErrInvalidCursor is returned when an after/before token cannot be decoded
	// into a well-formed position.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrStoreUnavailable wraps any failure of the underlying record store. The
	// original store error is kept in the chain.
	ErrStoreUnavailable = errors.New("record store unavailable")
)
