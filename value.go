package pathmap

import "reflect"

// Equaler lets a value type decide its own equality, overriding the
// default reflect.DeepEqual comparison used by the algebraic layer when
// it must decide whether two elements coincide.
type Equaler[V any] interface {
	Equal(other V) bool
}

// equal compares two values of type V for equality, using V's own Equal
// method when available and falling back to reflect.DeepEqual otherwise.
func equal[V any](v1, v2 V) bool {
	if e1, ok := any(v1).(Equaler[V]); ok {
		return e1.Equal(v2)
	}
	return reflect.DeepEqual(v1, v2)
}

// Cloner lets a value type supply a deep copy. Types that hold no
// references of their own need not implement it; plain assignment is
// used as the fallback since Go values are copied by assignment already.
type Cloner[V any] interface {
	Clone() V
}

// cloneVal returns a deep clone of val when V implements Cloner[V],
// otherwise val is returned unchanged (a shallow/value copy already
// happened by virtue of passing it by value).
func cloneVal[V any](val V) V {
	c, ok := any(val).(Cloner[V])
	if !ok {
		return val
	}
	return c.Clone()
}

// Lattice is the value-level algebra required by Join and Meet: Join
// must combine two values into the value taking their place in the
// union, Meet must combine two values into the value taking their place
// in the intersection.
type Lattice[V any] interface {
	Join(other V) V
	Meet(other V) V
}

// DistributiveLattice additionally supports Subtract, the value-level
// algebra used by the map-level Subtract operation.
type DistributiveLattice[V any] interface {
	Lattice[V]
	Subtract(other V) V
}

func joinVal[V any](a, b V) (V, bool) {
	if l, ok := any(a).(Lattice[V]); ok {
		return l.Join(b), true
	}
	var zero V
	return zero, false
}

func meetVal[V any](a, b V) (V, bool) {
	if l, ok := any(a).(Lattice[V]); ok {
		return l.Meet(b), true
	}
	var zero V
	return zero, false
}

func subtractVal[V any](a, b V) (V, bool) {
	if l, ok := any(a).(DistributiveLattice[V]); ok {
		return l.Subtract(b), true
	}
	var zero V
	return zero, false
}
