package pathmap

import "github.com/Adam-Vandervorst/PathMap/internal/bitset256"

// ReadZipperCore is a cursor over a shared, read-only subtrie. Its
// position is expressed as a path relative to origin, re-walked from
// origin on every observation or movement rather than cached as a parent
// stack: the walk is linear in the path length, trading the amortised
// single-step cost of a cached cursor for a representation that is easy
// to reason about and to share safely across forks.
type ReadZipperCore[V any] struct {
	origin rootedNode[V]
	path   []byte
}

// NewReadZipper builds a read zipper rooted at origin.
func NewReadZipper[V any](origin rootedNode[V]) *ReadZipperCore[V] {
	return &ReadZipperCore[V]{origin: origin}
}

func (z *ReadZipperCore[V]) landing() landing[V] {
	if len(z.path) == 0 {
		return landing[V]{rc: z.origin.rc, node: z.origin.rc.Node(), exists: true}
	}
	return walk(z.origin.rc, z.path)
}

// Path returns the path from the zipper's origin to its current focus.
func (z *ReadZipperCore[V]) Path() []byte { return z.path }

// PathExists reports whether the current focus corresponds to a real
// trie position (as opposed to one reached by descending past the end of
// a matching prefix).
func (z *ReadZipperCore[V]) PathExists() bool {
	if len(z.path) == 0 {
		return true
	}
	return z.landing().exists
}

// Value returns the value at the focus, if any.
func (z *ReadZipperCore[V]) Value() (v V, ok bool) {
	if len(z.path) == 0 {
		return z.origin.val, z.origin.hasVal
	}
	l := z.landing()
	if !l.exists {
		return v, false
	}
	return l.value()
}

// IsValue reports whether the focus carries a value.
func (z *ReadZipperCore[V]) IsValue() bool {
	_, ok := z.Value()
	return ok
}

// ChildCount returns the number of distinct next bytes reachable from
// the focus.
func (z *ReadZipperCore[V]) ChildCount() int {
	if len(z.path) == 0 {
		return z.origin.rc.Node().ChildCount()
	}
	l := z.landing()
	if !l.exists {
		return 0
	}
	return l.childCount()
}

// ChildMask returns the set of next bytes reachable from the focus.
func (z *ReadZipperCore[V]) ChildMask() bitset256.Set {
	if len(z.path) == 0 {
		return z.origin.rc.Node().ChildMask()
	}
	l := z.landing()
	if !l.exists {
		return bitset256.Set{}
	}
	return l.childMask()
}

// DescendTo moves the focus to path/k, returning whether the destination
// is a real trie position. The focus always moves, even when it lands
// on a non-existent position; callers that need to back out on failure
// should capture Path() first.
func (z *ReadZipperCore[V]) DescendTo(k []byte) bool {
	if len(k) == 0 {
		return z.PathExists()
	}
	z.path = append(z.path, k...)
	return z.PathExists()
}

// DescendToByte moves the focus one byte down.
func (z *ReadZipperCore[V]) DescendToByte(b byte) bool {
	return z.DescendTo([]byte{b})
}

// DescendFirstByte moves to the lexicographically first child byte,
// reporting false (without moving) if the focus has no children.
func (z *ReadZipperCore[V]) DescendFirstByte() bool {
	m := z.ChildMask()
	b, ok := m.FirstSet()
	if !ok {
		return false
	}
	return z.DescendToByte(byte(b))
}

// DescendUntil descends until it reaches a value, a branch (more than
// one child), or a dead end, returning the number of bytes descended.
func (z *ReadZipperCore[V]) DescendUntil() int {
	n := 0
	for {
		if z.IsValue() || z.ChildCount() != 1 {
			return n
		}
		if !z.DescendFirstByte() {
			return n
		}
		n++
	}
}

// Ascend moves the focus up by n bytes, clamped to the zipper's origin.
func (z *ReadZipperCore[V]) Ascend(n int) {
	if n > len(z.path) {
		n = len(z.path)
	}
	z.path = z.path[:len(z.path)-n]
}

// AscendUntilBranch ascends until reaching a value, a branch point, or
// the zipper's origin.
func (z *ReadZipperCore[V]) AscendUntilBranch() {
	for len(z.path) > 0 {
		z.Ascend(1)
		if z.IsValue() || z.ChildCount() > 1 {
			return
		}
	}
}

// ToNextSiblingByte moves to the next sibling (by byte order) of the
// current focus's last byte within its parent, returning false (and
// leaving the focus unmoved) if there is none or the focus is at origin.
func (z *ReadZipperCore[V]) ToNextSiblingByte() bool {
	if len(z.path) == 0 {
		return false
	}
	cur := z.path[len(z.path)-1]
	parentPath := z.path[:len(z.path)-1]
	var mask bitset256.Set
	if len(parentPath) == 0 {
		mask = z.origin.rc.Node().ChildMask()
	} else {
		l := walk(z.origin.rc, parentPath)
		if !l.exists {
			return false
		}
		mask = l.childMask()
	}
	next, ok := mask.NextSet(uint(cur) + 1)
	if !ok {
		return false
	}
	z.path = append(append([]byte(nil), parentPath...), byte(next))
	return true
}

// ToPrevSiblingByte is the mirror of ToNextSiblingByte.
func (z *ReadZipperCore[V]) ToPrevSiblingByte() bool {
	if len(z.path) == 0 {
		return false
	}
	cur := z.path[len(z.path)-1]
	if cur == 0 {
		return false
	}
	parentPath := z.path[:len(z.path)-1]
	var mask bitset256.Set
	if len(parentPath) == 0 {
		mask = z.origin.rc.Node().ChildMask()
	} else {
		l := walk(z.origin.rc, parentPath)
		if !l.exists {
			return false
		}
		mask = l.childMask()
	}
	prev, ok := mask.PrevSet(uint(cur) - 1)
	if !ok {
		return false
	}
	z.path = append(append([]byte(nil), parentPath...), byte(prev))
	return true
}

// ForkReadZipper returns a new, independent read zipper rooted at the
// current focus. The fork shares structure with the original via
// reference counting rather than copying.
func (z *ReadZipperCore[V]) ForkReadZipper() (*ReadZipperCore[V], bool) {
	if len(z.path) == 0 {
		return NewReadZipper(z.origin.clone()), true
	}
	ref := z.landing().asRef()
	rc, hasVal, val, ok := ref.AsNodeRc()
	if !ok {
		return nil, false
	}
	return NewReadZipper(rootedNode[V]{rc: rc.Clone(), hasVal: hasVal, val: val}), true
}

// MakeMap materializes the focus's subtrie as a new, independent Map.
func (z *ReadZipperCore[V]) MakeMap() (*Map[V], bool) {
	fz, ok := z.ForkReadZipper()
	if !ok {
		return nil, false
	}
	return &Map[V]{root: fz.origin}, true
}
