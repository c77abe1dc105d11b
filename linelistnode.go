package pathmap

import (
	"iter"
	"sort"

	"github.com/Adam-Vandervorst/PathMap/internal/bitset256"
)

// lineListNode keeps a small, linearly-scanned list of arcs. It favors
// low overhead and cheap insertion when a node's fan-out is small; once
// it would exceed nodeCapacity entries, or an incompatible edit forces a
// structural promotion, SetVal/SetBranch return a denseByteNode in its
// place for the caller to install.
type lineListNode[V any] struct {
	arcs []*arc[V]
}

func newLineListNode[V any]() *lineListNode[V] {
	countNodeCreated()
	return &lineListNode[V]{}
}

func (n *lineListNode[V]) IsEmpty() bool   { return len(n.arcs) == 0 }
func (n *lineListNode[V]) ChildCount() int { return len(n.arcs) }

func (n *lineListNode[V]) ChildMask() (m bitset256.Set) {
	for _, a := range n.arcs {
		m.MustSet(uint(a.frag[0]))
	}
	return
}

func (n *lineListNode[V]) indexOf(b byte) int {
	for i, a := range n.arcs {
		if a.frag[0] == b {
			return i
		}
	}
	return -1
}

func (n *lineListNode[V]) GetArc(b byte) (*arc[V], bool) {
	if i := n.indexOf(b); i >= 0 {
		return n.arcs[i], true
	}
	return nil, false
}

func (n *lineListNode[V]) Arcs() iter.Seq2[byte, *arc[V]] {
	ordered := append([]*arc[V](nil), n.arcs...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].frag[0] < ordered[j].frag[0] })
	return func(yield func(byte, *arc[V]) bool) {
		for _, a := range ordered {
			if !yield(a.frag[0], a) {
				return
			}
		}
	}
}

func (n *lineListNode[V]) promoteIfNeeded() TrieNode[V] {
	if len(n.arcs) <= nodeCapacity {
		return nil
	}
	countPromotion()
	d := newDenseByteNode[V]()
	for _, a := range n.arcs {
		d.putArc(a)
	}
	return d
}

func (n *lineListNode[V]) SetVal(frag []byte, v V) (old V, hadOld bool, replacement TrieNode[V]) {
	if i := n.indexOf(frag[0]); i >= 0 {
		old, hadOld, n.arcs[i] = arcSetVal(n.arcs[i], frag, v)
		return old, hadOld, nil
	}
	n.arcs = append(n.arcs, &arc[V]{frag: frag, hasValue: true, value: v})
	return old, false, n.promoteIfNeeded()
}

func (n *lineListNode[V]) SetBranch(frag []byte, child *NodeRc[V]) (replacement TrieNode[V]) {
	if i := n.indexOf(frag[0]); i >= 0 {
		n.arcs[i] = arcSetBranch(n.arcs[i], frag, child)
		return nil
	}
	n.arcs = append(n.arcs, &arc[V]{frag: frag, child: child})
	return n.promoteIfNeeded()
}

func (n *lineListNode[V]) RemoveVal(frag []byte) (old V, hadOld bool, empty bool) {
	i := n.indexOf(frag[0])
	if i < 0 {
		return old, false, n.IsEmpty()
	}
	var updated *arc[V]
	var gone bool
	old, hadOld, updated, gone = arcRemoveVal(n.arcs[i], frag)
	if !hadOld {
		return old, false, n.IsEmpty()
	}
	if gone {
		n.arcs = append(n.arcs[:i], n.arcs[i+1:]...)
	} else {
		n.arcs[i] = updated
	}
	return old, true, n.IsEmpty()
}

func (n *lineListNode[V]) RemoveChildAt(frag []byte) (removed *NodeRc[V], hadChild bool, empty bool) {
	i := n.indexOf(frag[0])
	if i < 0 {
		return nil, false, n.IsEmpty()
	}
	var updated *arc[V]
	var gone bool
	removed, hadChild, updated, gone = arcRemoveChild(n.arcs[i], frag)
	if !hadChild {
		return nil, false, n.IsEmpty()
	}
	if gone {
		n.arcs = append(n.arcs[:i], n.arcs[i+1:]...)
	} else {
		n.arcs[i] = updated
	}
	return removed, true, n.IsEmpty()
}

func (n *lineListNode[V]) RemoveArcByByte(b byte) bool {
	i := n.indexOf(b)
	if i < 0 {
		return false
	}
	n.arcs = append(n.arcs[:i], n.arcs[i+1:]...)
	return true
}

func (n *lineListNode[V]) TakeArcByByte(b byte) (*arc[V], bool) {
	i := n.indexOf(b)
	if i < 0 {
		return nil, false
	}
	a := n.arcs[i]
	n.arcs = append(n.arcs[:i], n.arcs[i+1:]...)
	return a, true
}

func (n *lineListNode[V]) ReplaceArcByByte(b byte, a *arc[V]) {
	if i := n.indexOf(b); i >= 0 {
		n.arcs[i] = a
		return
	}
	n.arcs = append(n.arcs, a)
}

func (n *lineListNode[V]) putArc(a *arc[V]) TrieNode[V] {
	n.arcs = append(n.arcs, a)
	if repl := n.promoteIfNeeded(); repl != nil {
		return repl
	}
	return n
}

func (n *lineListNode[V]) clone() TrieNode[V] {
	cp := &lineListNode[V]{arcs: make([]*arc[V], len(n.arcs))}
	for i, a := range n.arcs {
		cp.arcs[i] = a.clone()
	}
	return cp
}
