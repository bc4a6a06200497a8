// Package memstore is an in-memory relaypager.Store.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/Alp4ka/relaypager"
)

// Store keeps records in memory. It is safe for concurrent use.
type Store[T any] struct {
	mu   sync.RWMutex
	key  relaypager.KeyFunc[T]
	rows []T
}

// New creates a store holding rows.
func New[T any](key relaypager.KeyFunc[T], rows ...T) *Store[T] {
	return &Store[T]{
		key:  key,
		rows: slices.Clone(rows),
	}
}

// Insert appends records.
func (s *Store[T]) Insert(rows ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = append(s.rows, rows...)
}

// Delete removes every record whose key equals k and reports whether one was found.
func (s *Store[T]) Delete(k relaypager.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.rows)
	s.rows = slices.DeleteFunc(s.rows, func(row T) bool {
		return s.key(row).Compare(k) == 0
	})

	return len(s.rows) != n
}

// Find - implements relaypager.Store.
func (s *Store[T]) Find(ctx context.Context, w relaypager.Window, limit int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	ret := make([]T, 0, len(s.rows))
	for _, row := range s.rows {
		if w.Contains(s.key(row)) {
			ret = append(ret, row)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(ret, func(a, b T) int {
		ka, kb := s.key(a), s.key(b)
		switch {
		case w.Less(ka, kb):
			return -1
		case w.Less(kb, ka):
			return 1
		default:
			return 0
		}
	})

	if limit >= 0 && len(ret) > limit {
		ret = ret[:limit]
	}

	return ret, nil
}

// Count - implements relaypager.Store.
func (s *Store[T]) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.rows)), nil
}

var _ relaypager.Store[struct{}] = (*Store[struct{}])(nil)
