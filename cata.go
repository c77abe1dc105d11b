package pathmap

// Cata folds a Map bottom-up into a single result R, given fold, which
// combines the value (if any) at a position with the already-folded
// results of its children, keyed by the byte leading to each child.
//
// The fold result for a node is cached by the node's underlying identity
// (its *nodeBox), so subtries shared by reference counting — the result
// of Clone, or of Join/Meet/Subtract/Restrict's Same shortcut — are
// folded exactly once no matter how many places in the trie reference
// them.
func Cata[V any, R any](m *Map[V], fold func(hasVal bool, val V, children map[byte]R) R) R {
	cache := make(map[*nodeBox[V]]map[byte]R)
	children := cataChildren(m.root.rc, fold, cache)
	return fold(m.root.hasVal, m.root.val, children)
}

// CataAt is Cata starting from a zipper's current focus rather than a
// Map's root.
func CataAt[V any, R any](rz *ReadZipperCore[V], fold func(hasVal bool, val V, children map[byte]R) R) R {
	hasVal, val := rz.Value()
	fz, ok := rz.ForkReadZipper()
	if !ok {
		return fold(hasVal, val, nil)
	}
	cache := make(map[*nodeBox[V]]map[byte]R)
	children := cataChildren(fz.origin.rc, fold, cache)
	return fold(hasVal, val, children)
}

func cataChildren[V any, R any](rc *NodeRc[V], fold func(hasVal bool, val V, children map[byte]R) R, cache map[*nodeBox[V]]map[byte]R) map[byte]R {
	if cached, ok := cache[rc.box]; ok {
		return cached
	}
	node := rc.Node()
	out := make(map[byte]R, node.ChildCount())
	for b, a := range node.Arcs() {
		var deeper map[byte]R
		if a.child != nil {
			deeper = cataChildren(a.child, fold, cache)
		}
		out[b] = fold(a.hasValue, a.value, deeper)
	}
	cache[rc.box] = out
	return out
}
