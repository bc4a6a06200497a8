package relaypager

import "context"

// Store is the record store the paginator reads from.
type Store[T any] interface {
	// Find returns at most limit records inside the window, sorted in the
	// window's direction.
	Find(ctx context.Context, w Window, limit int) ([]T, error)
	// Count returns the size of the whole collection, ignoring any window.
	Count(ctx context.Context) (int64, error)
}
