// Package gormstore implements relaypager.Store on top of gorm.
package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Alp4ka/relaypager"
)

// Scope narrows the base query, e.g. to exclude soft-deleted rows.
type Scope = func(*gorm.DB) *gorm.DB

// Store reads records of model T through gorm.
type Store[T any] struct {
	db     *gorm.DB
	table  string
	scopes []Scope
}

// New creates a store for model T. The table is derived from the model unless
// set with WithTable.
func New[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

// WithTable sets the table name explicitly.
func (s *Store[T]) WithTable(table string) *Store[T] {
	s.table = table
	return s
}

// WithScopes adds scopes applied to both the windowed query and the count.
func (s *Store[T]) WithScopes(scopes ...Scope) *Store[T] {
	s.scopes = append(s.scopes, scopes...)
	return s
}

func (s *Store[T]) base(ctx context.Context) *gorm.DB {
	db := s.db.WithContext(ctx).Model(new(T))
	if s.table != "" {
		db = db.Table(s.table)
	}

	if len(s.scopes) > 0 {
		db = db.Scopes(s.scopes...)
	}

	return db
}

// Find - implements relaypager.Store.
func (s *Store[T]) Find(ctx context.Context, w relaypager.Window, limit int) ([]T, error) {
	var rows []T

	err := w.Apply(s.base(ctx)).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}

	return rows, nil
}

// Count - implements relaypager.Store.
func (s *Store[T]) Count(ctx context.Context) (int64, error) {
	var total int64

	err := s.base(ctx).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}

	return total, nil
}

var _ relaypager.Store[struct{}] = (*Store[struct{}])(nil)
