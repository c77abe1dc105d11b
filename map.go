package pathmap

import "github.com/Adam-Vandervorst/PathMap/internal/bitset256"

// Map is a byte-indexed, path-compressed trie map from []byte keys to
// values of type V. The zero Map is not usable; construct one with New.
//
// All of Map's own methods re-walk from the root for every call; the
// performance-sensitive path for repeated nearby access is through a
// zipper (ReadZipper/WriteZipper/ZipperHead), which reuses Map's same
// node and arc machinery but keeps a cursor pinned at a path.
type Map[V any] struct {
	root rootedNode[V]
}

// New returns an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{root: newRootedNode[V]()}
}

// Clone returns an independent Map sharing structure with m via
// reference counting; the clone observes none of m's subsequent
// mutations and vice versa.
func (m *Map[V]) Clone() *Map[V] {
	return &Map[V]{root: m.root.clone()}
}

// IsEmpty reports whether m has no entries at all.
func (m *Map[V]) IsEmpty() bool {
	return m.root.isEmpty()
}

// ValCount returns the number of key/value pairs stored in m. It walks
// the whole trie, so it is O(n), not cached.
func (m *Map[V]) ValCount() int {
	n := 0
	if m.root.hasVal {
		n++
	}
	countValues(m.root.rc.Node(), &n)
	return n
}

func countValues[V any](n TrieNode[V], out *int) {
	for _, a := range n.Arcs() {
		if a.hasValue {
			*out++
		}
		if a.child != nil {
			countValues(a.child.Node(), out)
		}
	}
}

// Insert stores v at key, returning the previous value if any.
func (m *Map[V]) Insert(key []byte, v V) (old V, hadOld bool) {
	wz := m.WriteZipper()
	wz.DescendTo(key)
	return wz.SetValue(v)
}

// Get returns the value stored at key, if any.
func (m *Map[V]) Get(key []byte) (v V, ok bool) {
	rz := m.ReadZipper()
	if !rz.DescendTo(key) {
		return v, false
	}
	return rz.Value()
}

// Contains reports whether key has a stored value.
func (m *Map[V]) Contains(key []byte) bool {
	_, ok := m.Get(key)
	return ok
}

// ContainsPath reports whether key is a real trie position, whether or
// not it carries a value (i.e. whether it is a prefix of some stored
// key, or a stored key itself).
func (m *Map[V]) ContainsPath(key []byte) bool {
	rz := m.ReadZipper()
	return rz.DescendTo(key)
}

// Remove deletes the value at key, if any, pruning any arc chain left
// holding neither a value nor a child.
func (m *Map[V]) Remove(key []byte) (old V, hadOld bool) {
	wz := m.WriteZipper()
	wz.DescendTo(key)
	return wz.RemoveValue()
}

// ReadZipper returns a read zipper rooted at m's root.
func (m *Map[V]) ReadZipper() *ReadZipperCore[V] {
	return NewReadZipper(m.root.clone())
}

// ReadZipperAtPath returns a read zipper rooted at the subtrie under
// path, sharing structure with m via reference counting.
func (m *Map[V]) ReadZipperAtPath(path []byte) (*ReadZipperCore[V], bool) {
	rz := m.ReadZipper()
	if !rz.DescendTo(path) {
		return nil, false
	}
	return rz.ForkReadZipper()
}

// WriteZipper returns a write zipper with exclusive rights over m's
// entire root.
func (m *Map[V]) WriteZipper() *WriteZipperCore[V] {
	return NewWriteZipper(&m.root)
}

// WriteZipperAtPath returns a write zipper pinned at path below m's
// root; mutations through it are visible through m.
func (m *Map[V]) WriteZipperAtPath(path []byte) *WriteZipperCore[V] {
	wz := NewWriteZipper(&m.root)
	wz.DescendTo(path)
	return wz
}

// ZipperHead returns a coordinator for concurrently-safe read/write
// zippers into disjoint parts of m.
func (m *Map[V]) ZipperHead() *ZipperHead[V] {
	return newZipperHead(&m.root)
}

// Join returns the union of m and other: every key present in either,
// combined via V's Lattice.Join where V implements it.
func (m *Map[V]) Join(other *Map[V]) *Map[V] {
	hasVal, val := joinRootVal(m.root.hasVal, m.root.val, other.root.hasVal, other.root.val)
	return &Map[V]{root: rootedNode[V]{rc: joinNodes(m.root.rc, other.root.rc), hasVal: hasVal, val: val}}
}

// Meet returns the intersection of m and other.
func (m *Map[V]) Meet(other *Map[V]) *Map[V] {
	hasVal, val := meetRootVal(m.root.hasVal, m.root.val, other.root.hasVal, other.root.val)
	return &Map[V]{root: rootedNode[V]{rc: meetNodes(m.root.rc, other.root.rc), hasVal: hasVal, val: val}}
}

// Subtract returns m with every key present in other removed.
func (m *Map[V]) Subtract(other *Map[V]) *Map[V] {
	hasVal, val := subtractRootVal(m.root.hasVal, m.root.val, other.root.hasVal, other.root.val)
	return &Map[V]{root: rootedNode[V]{rc: subtractNodes(m.root.rc, other.root.rc), hasVal: hasVal, val: val}}
}

// Restrict returns the entries of m whose keys also hold a value in
// mask; a mask value at a shorter key does not keep the entries below it.
func (m *Map[V]) Restrict(mask *Map[V]) *Map[V] {
	hasVal, val := restrictRootVal(m.root.hasVal, m.root.val, mask.root.hasVal)
	return &Map[V]{root: rootedNode[V]{rc: restrictNodes(m.root.rc, mask.root.rc), hasVal: hasVal, val: val}}
}

// JoinInto merges other's entries into m in place, reporting whether the
// result is empty (StatusNone), structurally unchanged from one of the
// two operands (StatusIdentity), or a genuinely new structure
// (StatusElement).
func (m *Map[V]) JoinInto(other *Map[V]) AlgebraicStatus {
	wz := m.WriteZipper()
	return wz.Join(other.root.rc, other.root.hasVal, other.root.val)
}

// MeetInto intersects m with other in place.
func (m *Map[V]) MeetInto(other *Map[V]) AlgebraicStatus {
	wz := m.WriteZipper()
	return wz.Meet(other.root.rc, other.root.hasVal, other.root.val)
}

// SubtractInto removes other's entries from m in place.
func (m *Map[V]) SubtractInto(other *Map[V]) AlgebraicStatus {
	wz := m.WriteZipper()
	return wz.Subtract(other.root.rc, other.root.hasVal, other.root.val)
}

// RestrictInto keeps only the entries of m whose keys also hold a value
// in mask, in place.
func (m *Map[V]) RestrictInto(mask *Map[V]) AlgebraicStatus {
	wz := m.WriteZipper()
	return wz.Restrict(mask.root.rc, mask.root.hasVal)
}

// Iter walks every key/value pair in m in ascending byte order.
func (m *Map[V]) Iter(yield func(key []byte, val V) bool) {
	if m.root.hasVal {
		if !yield(nil, m.root.val) {
			return
		}
	}
	iterNode(m.root.rc.Node(), nil, yield)
}

func iterNode[V any](n TrieNode[V], prefix []byte, yield func(key []byte, val V) bool) bool {
	for _, a := range n.Arcs() {
		key := append(append([]byte(nil), prefix...), a.frag...)
		if a.hasValue {
			if !yield(key, a.value) {
				return false
			}
		}
		if a.child != nil {
			if !iterNode(a.child.Node(), key, yield) {
				return false
			}
		}
	}
	return true
}

// Equal reports whether m and other hold exactly the same keys mapped to
// equal values, using each value's own Equal method (via Equaler) when
// present and reflect.DeepEqual otherwise. The comparison recurses
// structurally rather than relying on NodeRc identity, so two maps built
// through different sequences of operations still compare equal.
func (m *Map[V]) Equal(other *Map[V]) bool {
	if m.root.hasVal != other.root.hasVal {
		return false
	}
	if m.root.hasVal && !equal(m.root.val, other.root.val) {
		return false
	}
	return nodesEqual(m.root.rc.Node(), other.root.rc.Node())
}

func nodesEqual[V any](a, b TrieNode[V]) bool {
	if a.ChildCount() != b.ChildCount() {
		return false
	}
	for byt, aArc := range a.Arcs() {
		bArc, ok := b.GetArc(byt)
		if !ok {
			return false
		}
		if !arcsEqual(aArc, bArc) {
			return false
		}
	}
	return true
}

func arcsEqual[V any](a, b *arc[V]) bool {
	if len(a.frag) != len(b.frag) {
		return false
	}
	for i := range a.frag {
		if a.frag[i] != b.frag[i] {
			return false
		}
	}
	if a.hasValue != b.hasValue {
		return false
	}
	if a.hasValue && !equal(a.value, b.value) {
		return false
	}
	switch {
	case a.child == nil && b.child == nil:
		return true
	case a.child == nil || b.child == nil:
		return false
	default:
		return nodesEqual(a.child.Node(), b.child.Node())
	}
}

// ChildMaskAt returns the set of next bytes reachable from path, an
// observation helper layered directly on a read zipper.
func (m *Map[V]) ChildMaskAt(path []byte) bitset256.Set {
	rz := m.ReadZipper()
	if !rz.DescendTo(path) {
		return bitset256.Set{}
	}
	return rz.ChildMask()
}
