package pathmap

import (
	"iter"
	"sync/atomic"

	"github.com/Adam-Vandervorst/PathMap/internal/bitset256"
)

// cellByteNode is the dense, fixed-array counterpart of denseByteNode
// whose 256 slots are each an independent atomic.Pointer. A
// popcount-compressed array couples its bitset and backing slice so
// tightly that inserting into one byte's slot can shift every other
// slot's index — exactly the property the zipper-head protocol cannot
// tolerate, since it hands out independent write access to individual
// children of the same node. cellByteNode trades that compression for
// per-byte addressability: two goroutines each holding an exclusive
// WriteZipper pinned to distinct bytes of the same cellByteNode can swap
// their own cell without any coordination, because they never touch the
// same atomic.Pointer.
//
// Nodes are converted to this representation only by
// convertToCellNode, driven by ZipperHead.prepareExclusiveWritePath; it
// is never demoted back automatically (§4.6).
type cellByteNode[V any] struct {
	cells [256]atomic.Pointer[arc[V]]
	count atomic.Int32
}

func newCellByteNode[V any]() *cellByteNode[V] {
	return &cellByteNode[V]{}
}

// convertToCellNode builds a cellByteNode holding the same arcs as n,
// used by the zipper head when a path must be prepared for exclusive
// per-child borrowing.
func convertToCellNode[V any](n TrieNode[V]) *cellByteNode[V] {
	c := newCellByteNode[V]()
	for b, a := range n.Arcs() {
		c.cells[b].Store(a)
		c.count.Add(1)
	}
	return c
}

func (n *cellByteNode[V]) IsEmpty() bool   { return n.count.Load() == 0 }
func (n *cellByteNode[V]) ChildCount() int { return int(n.count.Load()) }

func (n *cellByteNode[V]) ChildMask() (m bitset256.Set) {
	for b := 0; b < 256; b++ {
		if n.cells[b].Load() != nil {
			m.MustSet(uint(b))
		}
	}
	return
}

func (n *cellByteNode[V]) GetArc(b byte) (*arc[V], bool) {
	a := n.cells[b].Load()
	return a, a != nil
}

func (n *cellByteNode[V]) Arcs() iter.Seq2[byte, *arc[V]] {
	return func(yield func(byte, *arc[V]) bool) {
		for b := 0; b < 256; b++ {
			if a := n.cells[b].Load(); a != nil {
				if !yield(byte(b), a) {
					return
				}
			}
		}
	}
}

func (n *cellByteNode[V]) SetVal(frag []byte, v V) (old V, hadOld bool, replacement TrieNode[V]) {
	b := frag[0]
	existing := n.cells[b].Load()
	if existing == nil {
		n.cells[b].Store(&arc[V]{frag: frag, hasValue: true, value: v})
		n.count.Add(1)
		return old, false, nil
	}
	var updated *arc[V]
	old, hadOld, updated = arcSetVal(existing, frag, v)
	n.cells[b].Store(updated)
	return old, hadOld, nil
}

func (n *cellByteNode[V]) SetBranch(frag []byte, child *NodeRc[V]) (replacement TrieNode[V]) {
	b := frag[0]
	existing := n.cells[b].Load()
	if existing == nil {
		n.cells[b].Store(&arc[V]{frag: frag, child: child})
		n.count.Add(1)
		return nil
	}
	n.cells[b].Store(arcSetBranch(existing, frag, child))
	return nil
}

func (n *cellByteNode[V]) RemoveVal(frag []byte) (old V, hadOld bool, empty bool) {
	b := frag[0]
	existing := n.cells[b].Load()
	if existing == nil {
		return old, false, n.IsEmpty()
	}
	old, hadOld, updated, gone := arcRemoveVal(existing, frag)
	if !hadOld {
		return old, false, n.IsEmpty()
	}
	if gone {
		n.cells[b].Store(nil)
		n.count.Add(-1)
	} else {
		n.cells[b].Store(updated)
	}
	return old, true, n.IsEmpty()
}

func (n *cellByteNode[V]) RemoveChildAt(frag []byte) (removed *NodeRc[V], hadChild bool, empty bool) {
	b := frag[0]
	existing := n.cells[b].Load()
	if existing == nil {
		return nil, false, n.IsEmpty()
	}
	removed, hadChild, updated, gone := arcRemoveChild(existing, frag)
	if !hadChild {
		return nil, false, n.IsEmpty()
	}
	if gone {
		n.cells[b].Store(nil)
		n.count.Add(-1)
	} else {
		n.cells[b].Store(updated)
	}
	return removed, true, n.IsEmpty()
}

func (n *cellByteNode[V]) RemoveArcByByte(b byte) bool {
	if n.cells[b].Load() == nil {
		return false
	}
	n.cells[b].Store(nil)
	n.count.Add(-1)
	return true
}

func (n *cellByteNode[V]) TakeArcByByte(b byte) (*arc[V], bool) {
	a := n.cells[b].Load()
	if a == nil {
		return nil, false
	}
	n.cells[b].Store(nil)
	n.count.Add(-1)
	return a, true
}

func (n *cellByteNode[V]) ReplaceArcByByte(b byte, a *arc[V]) {
	if n.cells[b].Load() == nil && a != nil {
		n.count.Add(1)
	}
	n.cells[b].Store(a)
}

func (n *cellByteNode[V]) putArc(a *arc[V]) TrieNode[V] {
	b := a.frag[0]
	if n.cells[b].Load() == nil {
		n.count.Add(1)
	}
	n.cells[b].Store(a)
	return n
}

func (n *cellByteNode[V]) clone() TrieNode[V] {
	cp := newCellByteNode[V]()
	for b, a := range n.Arcs() {
		cp.cells[b].Store(a.clone())
		cp.count.Add(1)
	}
	return cp
}
