package pathmap

import "sync/atomic"

// nodeBox is the shared, reference-counted backing store for a node.
// Go has no deterministic destructor, so NodeRc tracks ownership with an
// explicit atomic counter rather than relying on garbage collection: the
// count is what answers "am I the unique owner" for MakeMut, independent
// of whatever the collector decides to do with unreachable memory.
type nodeBox[V any] struct {
	refs atomic.Int32
	node TrieNode[V]
}

// NodeRc is a reference-counted, clone-on-write handle to a node. Pointer
// equality of two NodeRc values (same *nodeBox) is a sufficient, though
// not necessary, proof of structural equality, and is used throughout
// the algebraic layer to short-circuit join/meet/subtract without
// descending into either side.
type NodeRc[V any] struct {
	box *nodeBox[V]
}

// newNodeRc wraps n in a fresh, uniquely-owned NodeRc.
func newNodeRc[V any](n TrieNode[V]) *NodeRc[V] {
	b := &nodeBox[V]{node: n}
	b.refs.Store(1)
	return &NodeRc[V]{box: b}
}

// emptyNodeRc returns a fresh NodeRc wrapping a new empty node, owned by
// nobody else and safe to store in a map's root slot.
func emptyNodeRc[V any]() *NodeRc[V] {
	return newNodeRc[V](newNode[V]())
}

// Clone increments the refcount and returns a handle to the same
// underlying node; no data is copied.
func (r *NodeRc[V]) Clone() *NodeRc[V] {
	if r == nil {
		return nil
	}
	r.box.refs.Add(1)
	return &NodeRc[V]{box: r.box}
}

// Release decrements the refcount. PathMap does not need to recursively
// tear down children on the last release (Go's collector reclaims
// unreachable memory); Release exists so MakeMut's uniqueness test stays
// accurate across explicit handle drops such as a write zipper going out
// of scope.
func (r *NodeRc[V]) Release() {
	if r == nil {
		return
	}
	r.box.refs.Add(-1)
}

// Same reports whether a and b are handles to the identical node,
// the pointer-equality shortcut the algebraic layer relies on.
func Same[V any](a, b *NodeRc[V]) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.box == b.box
}

// Node returns a read-only view of the underlying node.
func (r *NodeRc[V]) Node() TrieNode[V] {
	if r == nil {
		return nil
	}
	return r.box.node
}

// MakeMut returns an exclusively-owned, mutable node, cloning the
// pointee first if the refcount indicates other owners. The receiver's
// own box is replaced in place so the caller's stored *NodeRc reflects
// the (possibly new) exclusive box; this is what lets the write-zipper
// core's "install replacement in parent slot" discipline work without a
// second explicit write-back step for the ordinary (non-promoting) case.
func (r *NodeRc[V]) MakeMut() TrieNode[V] {
	if r.box.refs.Load() <= 1 {
		return r.box.node
	}
	countCloneOnWrite()
	cloned := r.box.node.clone()
	r.box.refs.Add(-1)
	b := &nodeBox[V]{node: cloned}
	b.refs.Store(1)
	r.box = b
	return cloned
}

// SetNode installs a freshly built node in place of the current one,
// used after a mutator on MakeMut's result returns a replacement node to
// install (structural promotion).
func (r *NodeRc[V]) SetNode(n TrieNode[V]) {
	if r.box.refs.Load() <= 1 {
		r.box.node = n
		return
	}
	r.box.refs.Add(-1)
	b := &nodeBox[V]{node: n}
	b.refs.Store(1)
	r.box = b
}

func (r *NodeRc[V]) isUnique() bool {
	return r.box.refs.Load() <= 1
}
