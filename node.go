package pathmap

import (
	"iter"

	"github.com/Adam-Vandervorst/PathMap/internal/bitset256"
)

// arc is one edge leaving a node: a (possibly multi-byte) path-compressed
// fragment, an optional value at the end of that fragment, and an
// optional child node continuing beyond it. At least one of hasValue and
// child must hold, mirroring the "no dangling paths" invariant: a node
// either terminates at a value or leads to a non-empty subtrie.
type arc[V any] struct {
	frag     []byte
	hasValue bool
	value    V
	child    *NodeRc[V]
}

func (a *arc[V]) clone() *arc[V] {
	if a == nil {
		return nil
	}
	cp := &arc[V]{frag: a.frag, hasValue: a.hasValue}
	if a.hasValue {
		cp.value = cloneVal(a.value)
	}
	if a.child != nil {
		cp.child = a.child.Clone()
	}
	return cp
}

// TrieNode is the capability set every node representation implements.
// Observation methods never mutate; the mutation methods SetVal and
// SetBranch (and putArc) may return a non-nil replacement, which
// signals "abandon self, install replacement in my parent slot instead" —
// the structural-promotion protocol from a list node to a dense node.
type TrieNode[V any] interface {
	IsEmpty() bool

	// ChildCount is the number of arcs leaving this node.
	ChildCount() int
	// ChildMask is the set of first-fragment-bytes of every arc.
	ChildMask() bitset256.Set

	// GetArc returns the arc (if any) whose fragment starts with byte b.
	GetArc(b byte) (*arc[V], bool)
	// Arcs enumerates every arc in ascending byte order.
	Arcs() iter.Seq2[byte, *arc[V]]

	// SetVal installs v at the arc reached by the full fragment frag,
	// creating or splitting arcs as needed. hadOld/old report a
	// previously-stored value at exactly that fragment, if any.
	SetVal(frag []byte, v V) (old V, hadOld bool, replacement TrieNode[V])
	// SetBranch installs child as the continuation of the arc reached by
	// fragment frag, creating or splitting arcs as needed.
	SetBranch(frag []byte, child *NodeRc[V]) (replacement TrieNode[V])
	// RemoveVal deletes the value stored at exact fragment frag, if any.
	// empty reports whether this node has become entirely empty (no arcs
	// left) as a result, so the caller can prune its own containing arc.
	RemoveVal(frag []byte) (old V, hadOld bool, empty bool)
	// RemoveChildAt detaches the child link at exact fragment frag,
	// leaving any value stored there intact. empty reports whether this
	// node has become entirely empty as a result.
	RemoveChildAt(frag []byte) (removed *NodeRc[V], hadChild bool, empty bool)
	// RemoveArcByByte deletes the arc starting with byte b entirely
	// (value and child). Reports whether an arc was removed.
	RemoveArcByByte(b byte) bool
	// TakeArcByByte removes and returns the arc starting with byte b.
	TakeArcByByte(b byte) (*arc[V], bool)
	// ReplaceArcByByte overwrites the arc starting with byte b, used by
	// write-zipper install-on-promotion.
	ReplaceArcByByte(b byte, a *arc[V])
	// putArc inserts a brand-new arc whose first byte is not yet present
	// in this node (the caller guarantees this), used when splitting a
	// fragment into a fresh intermediate node.
	putArc(a *arc[V]) TrieNode[V]

	// clone returns a deep-enough copy suitable for copy-on-write: arcs
	// are copied, children are ref-counted clones (not deep copies).
	clone() TrieNode[V]
}

// newNode returns an empty node of the default starting representation.
func newNode[V any]() TrieNode[V] {
	return newLineListNode[V]()
}
