package pathmap

import (
	"iter"

	"github.com/Adam-Vandervorst/PathMap/internal/bitset256"
	"github.com/Adam-Vandervorst/PathMap/internal/slots"
)

// denseByteNode stores one arc per possible first byte in a
// popcount-compressed slot array, the representation a lineListNode is
// promoted to once its arc count exceeds nodeCapacity.
type denseByteNode[V any] struct {
	slots slots.Array256[*arc[V]]
}

func newDenseByteNode[V any]() *denseByteNode[V] {
	countNodeCreated()
	return &denseByteNode[V]{}
}

func (n *denseByteNode[V]) IsEmpty() bool   { return n.slots.Len() == 0 }
func (n *denseByteNode[V]) ChildCount() int { return n.slots.Len() }

func (n *denseByteNode[V]) ChildMask() bitset256.Set { return n.slots.Set }

func (n *denseByteNode[V]) GetArc(b byte) (*arc[V], bool) {
	return n.slots.Get(uint(b))
}

func (n *denseByteNode[V]) Arcs() iter.Seq2[byte, *arc[V]] {
	return func(yield func(byte, *arc[V]) bool) {
		buf := make([]uint, 0, n.slots.Len())
		for _, b := range n.slots.AsSlice(buf) {
			a, _ := n.slots.Get(b)
			if !yield(byte(b), a) {
				return
			}
		}
	}
}

func (n *denseByteNode[V]) SetVal(frag []byte, v V) (old V, hadOld bool, replacement TrieNode[V]) {
	if existing, ok := n.slots.Get(uint(frag[0])); ok {
		var updated *arc[V]
		old, hadOld, updated = arcSetVal(existing, frag, v)
		n.slots.InsertAt(uint(frag[0]), updated)
		return old, hadOld, nil
	}
	n.slots.InsertAt(uint(frag[0]), &arc[V]{frag: frag, hasValue: true, value: v})
	return old, false, nil
}

func (n *denseByteNode[V]) SetBranch(frag []byte, child *NodeRc[V]) (replacement TrieNode[V]) {
	if existing, ok := n.slots.Get(uint(frag[0])); ok {
		n.slots.InsertAt(uint(frag[0]), arcSetBranch(existing, frag, child))
		return nil
	}
	n.slots.InsertAt(uint(frag[0]), &arc[V]{frag: frag, child: child})
	return nil
}

func (n *denseByteNode[V]) RemoveVal(frag []byte) (old V, hadOld bool, empty bool) {
	existing, ok := n.slots.Get(uint(frag[0]))
	if !ok {
		return old, false, n.IsEmpty()
	}
	old, hadOld, updated, gone := arcRemoveVal(existing, frag)
	if !hadOld {
		return old, false, n.IsEmpty()
	}
	if gone {
		n.slots.DeleteAt(uint(frag[0]))
	} else {
		n.slots.InsertAt(uint(frag[0]), updated)
	}
	return old, true, n.IsEmpty()
}

func (n *denseByteNode[V]) RemoveChildAt(frag []byte) (removed *NodeRc[V], hadChild bool, empty bool) {
	existing, ok := n.slots.Get(uint(frag[0]))
	if !ok {
		return nil, false, n.IsEmpty()
	}
	removed, hadChild, updated, gone := arcRemoveChild(existing, frag)
	if !hadChild {
		return nil, false, n.IsEmpty()
	}
	if gone {
		n.slots.DeleteAt(uint(frag[0]))
	} else {
		n.slots.InsertAt(uint(frag[0]), updated)
	}
	return removed, true, n.IsEmpty()
}

func (n *denseByteNode[V]) RemoveArcByByte(b byte) bool {
	_, ok := n.slots.DeleteAt(uint(b))
	return ok
}

func (n *denseByteNode[V]) TakeArcByByte(b byte) (*arc[V], bool) {
	return n.slots.DeleteAt(uint(b))
}

func (n *denseByteNode[V]) ReplaceArcByByte(b byte, a *arc[V]) {
	n.slots.InsertAt(uint(b), a)
}

func (n *denseByteNode[V]) putArc(a *arc[V]) TrieNode[V] {
	n.slots.InsertAt(uint(a.frag[0]), a)
	return n
}

func (n *denseByteNode[V]) clone() TrieNode[V] {
	cp := &denseByteNode[V]{slots: *n.slots.Copy()}
	for i, a := range cp.slots.Items {
		cp.slots.Items[i] = a.clone()
	}
	return cp
}
