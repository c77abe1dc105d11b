package pathmap

import "github.com/Adam-Vandervorst/PathMap/internal/bitset256"

// rootedNode pairs a subtrie's node with the value (if any) sitting at
// that subtrie's own root, the one position no arc can address since an
// arc is always keyed by at least one byte.
type rootedNode[V any] struct {
	rc     *NodeRc[V]
	hasVal bool
	val    V
}

func newRootedNode[V any]() rootedNode[V] {
	return rootedNode[V]{rc: emptyNodeRc[V]()}
}

func (n rootedNode[V]) clone() rootedNode[V] {
	return rootedNode[V]{rc: n.rc.Clone(), hasVal: n.hasVal, val: n.val}
}

func (n rootedNode[V]) isEmpty() bool {
	return !n.hasVal && n.rc.Node().IsEmpty()
}

func (n rootedNode[V]) childMask() bitset256.Set {
	return n.rc.Node().ChildMask()
}
