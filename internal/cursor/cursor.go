// Package cursor provides a non-empty sequence with a movable current
// position (a list zipper). Every move returns a new Cursor; a Cursor value
// is never modified after construction.
package cursor

import (
	"iter"
	"slices"
)

// Cursor is a non-empty ordered sequence focused on one element.
// before is ordered nearest-to-current last, after nearest-to-current first.
type Cursor[T any] struct {
	current T
	before  []T
	after   []T
}

// New focuses the first element of values. It panics when values is empty:
// callers must guarantee a non-empty sequence.
func New[T any](values []T) Cursor[T] {
	return At(values, 0)
}

// At focuses values[index]. It panics when values is empty or index is out
// of range.
func At[T any](values []T, index int) Cursor[T] {
	if len(values) == 0 {
		panic("cursor: empty sequence")
	}
	if index < 0 || index >= len(values) {
		panic("cursor: index out of range")
	}
	return Cursor[T]{
		current: values[index],
		before:  slices.Clone(values[:index]),
		after:   slices.Clone(values[index+1:]),
	}
}

// Current returns the focused element.
func (c Cursor[T]) Current() T {
	return c.current
}

// Index returns the position of the focused element.
func (c Cursor[T]) Index() int {
	return len(c.before)
}

// Len returns the number of elements.
func (c Cursor[T]) Len() int {
	return len(c.before) + 1 + len(c.after)
}

// IsLast reports whether the focus is on the final element.
func (c Cursor[T]) IsLast() bool {
	return len(c.after) == 0
}

// Next moves the focus one step forward. At the last element it returns c
// unchanged.
func (c Cursor[T]) Next() Cursor[T] {
	if len(c.after) == 0 {
		return c
	}
	before := make([]T, 0, len(c.before)+1)
	before = append(before, c.before...)
	before = append(before, c.current)
	return Cursor[T]{
		current: c.after[0],
		before:  before,
		after:   slices.Clone(c.after[1:]),
	}
}

// Prev moves the focus one step back. At the first element it returns c
// unchanged.
func (c Cursor[T]) Prev() Cursor[T] {
	if len(c.before) == 0 {
		return c
	}
	last := len(c.before) - 1
	after := make([]T, 0, len(c.after)+1)
	after = append(after, c.current)
	after = append(after, c.after...)
	return Cursor[T]{
		current: c.before[last],
		before:  slices.Clone(c.before[:last]),
		after:   after,
	}
}

// All yields every element in order. The sequence can be ranged over any
// number of times.
func (c Cursor[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range c.before {
			if !yield(v) {
				return
			}
		}
		if !yield(c.current) {
			return
		}
		for _, v := range c.after {
			if !yield(v) {
				return
			}
		}
	}
}

// Values returns a fresh slice holding every element in order.
func (c Cursor[T]) Values() []T {
	return slices.Collect(c.All())
}
