// Package slots implements a popcount-compressed array keyed by a single
// byte, the storage behind DenseByteNode.
package slots

import (
	"github.com/Adam-Vandervorst/PathMap/internal/bitset256"
)

// Array256 couples a 256-bit presence mask with a densely packed slice, so
// that at most popcount(mask) elements are stored for 256 possible byte
// slots.
type Array256[T any] struct {
	bitset256.Set
	Items []T
}

// MustSet on the embedded mask is forbidden; the mask and Items are
// coupled and must be mutated together via InsertAt/DeleteAt.
func (a *Array256[T]) MustSet(uint) {
	panic("forbidden, use InsertAt")
}

// MustClear on the embedded mask is forbidden, see MustSet.
func (a *Array256[T]) MustClear(uint) {
	panic("forbidden, use DeleteAt")
}

// Get returns the value stored at byte i, if any.
func (a *Array256[T]) Get(i uint) (value T, ok bool) {
	if a.Test(i) {
		return a.Items[a.Rank0(i)], true
	}
	return
}

// Len returns the number of occupied slots.
func (a *Array256[T]) Len() int {
	return len(a.Items)
}

// Copy returns a shallow copy; elements are copied by assignment.
func (a *Array256[T]) Copy() *Array256[T] {
	if a == nil {
		return nil
	}
	return &Array256[T]{
		Set:   a.Set,
		Items: append(a.Items[:0:0], a.Items...),
	}
}

// InsertAt stores value at byte i, returning true if a value already
// occupied that slot (and was overwritten).
func (a *Array256[T]) InsertAt(i uint, value T) (exists bool) {
	if a.Test(i) {
		a.Items[a.Rank0(i)] = value
		return true
	}

	a.Set.MustSet(i)
	a.insertItem(a.Rank0(i), value)

	return false
}

// DeleteAt removes the value at byte i, if present.
func (a *Array256[T]) DeleteAt(i uint) (value T, exists bool) {
	if a.Len() == 0 || !a.Test(i) {
		return
	}

	rank0 := a.Rank0(i)
	value = a.Items[rank0]

	a.deleteItem(rank0)
	a.Set.MustClear(i)

	return value, true
}

// insertItem inserts item at index i, shifting the tail one slot right.
func (a *Array256[T]) insertItem(i int, item T) {
	if len(a.Items) < cap(a.Items) {
		a.Items = a.Items[:len(a.Items)+1]
	} else {
		var zero T
		a.Items = append(a.Items, zero)
	}

	_ = a.Items[i]
	copy(a.Items[i+1:], a.Items[i:])
	a.Items[i] = item
}

// deleteItem removes the item at index i, shifting the tail one slot left.
func (a *Array256[T]) deleteItem(i int) {
	var zero T

	_ = a.Items[i]
	copy(a.Items[i:], a.Items[i+1:])

	nl := len(a.Items) - 1
	a.Items[nl] = zero
	a.Items = a.Items[:nl]
}
