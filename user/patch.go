package user

import (
	"bytes"
	"encoding/json"
)

type patchState uint8

const (
	patchUnspecified patchState = iota
	patchSet
	patchCleared
)

// Patch is an update value with three states: unspecified (leave the field
// alone), set to a value, or cleared. The zero value is unspecified.
//
// In JSON an absent field stays unspecified, null clears and any other value sets.
type Patch[T any] struct {
	state patchState
	value T
}

// Set returns a patch setting the field to v.
func Set[T any](v T) Patch[T] {
	return Patch[T]{state: patchSet, value: v}
}

// Clear returns a patch clearing the field.
func Clear[T any]() Patch[T] {
	return Patch[T]{state: patchCleared}
}

// Unspecified returns a patch leaving the field untouched.
func Unspecified[T any]() Patch[T] {
	return Patch[T]{}
}

func (p Patch[T]) IsSpecified() bool {
	return p.state != patchUnspecified
}

func (p Patch[T]) IsSet() bool {
	return p.state == patchSet
}

func (p Patch[T]) IsCleared() bool {
	return p.state == patchCleared
}

// Value returns the value and true for a set patch.
func (p Patch[T]) Value() (T, bool) {
	return p.value, p.state == patchSet
}

// Apply returns the new field value given the current one.
func (p Patch[T]) Apply(current *T) *T {
	switch p.state {
	case patchSet:
		v := p.value
		return &v
	case patchCleared:
		return nil
	default:
		return current
	}
}

// column returns the value to store and false if the column must not be touched.
func (p Patch[T]) column() (any, bool) {
	switch p.state {
	case patchSet:
		return p.value, true
	case patchCleared:
		return nil, true
	default:
		return nil, false
	}
}

// UnmarshalJSON - implements json.Unmarshaler.
func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = Clear[T]()
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*p = Set(v)

	return nil
}

// MarshalJSON - implements json.Marshaler. Unspecified and cleared patches
// both encode as null.
func (p Patch[T]) MarshalJSON() ([]byte, error) {
	if p.state != patchSet {
		return []byte("null"), nil
	}

	return json.Marshal(p.value)
}

var (
	_ json.Unmarshaler = (*Patch[string])(nil)
	_ json.Marshaler   = Patch[string]{}
)
