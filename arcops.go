package pathmap

import "github.com/Adam-Vandervorst/PathMap/internal/prefixscan"

// arcSetVal installs v at the end of fragment suffix, given an existing
// arc whose own fragment shares byte suffix[0] with it. It implements
// the PATRICIA-style 4-way split on the longest common prefix of the two
// fragments: exact match, suffix extends past the arc (descend into its
// child), suffix is a strict prefix of the arc (can't happen once split
// is applied — folded into the general split case below), or a partial
// overlap requiring a new intermediate node.
func arcSetVal[V any](existing *arc[V], suffix []byte, v V) (old V, hadOld bool, updated *arc[V]) {
	n := prefixscan.Overlap(existing.frag, suffix)

	switch {
	case n == len(existing.frag) && n == len(suffix):
		// exact match: overwrite the value, keep any child untouched.
		old, hadOld = existing.value, existing.hasValue
		return old, hadOld, &arc[V]{frag: existing.frag, hasValue: true, value: v, child: existing.child}

	case n == len(existing.frag):
		// suffix continues beyond this arc's fragment; descend.
		remaining := suffix[n:]
		child := existing.child
		if child == nil {
			child = emptyNodeRc[V]()
		}
		childNode := child.MakeMut()
		_, _, repl := childNode.SetVal(remaining, v)
		if repl != nil {
			child.SetNode(repl)
		}
		return old, false, &arc[V]{frag: existing.frag, hasValue: existing.hasValue, value: existing.value, child: child}

	default:
		// partial overlap (n < len(existing.frag)): split into a new
		// intermediate node holding the two divergent remainders.
		existingRem := existing.frag[n:]
		suffixRem := suffix[n:]

		mid := newLineListNode[V]()
		midNode := mid.putArc(&arc[V]{frag: existingRem, hasValue: existing.hasValue, value: existing.value, child: existing.child})

		result := &arc[V]{frag: suffix[:n]}
		if len(suffixRem) == 0 {
			result.hasValue = true
			result.value = v
			result.child = newNodeRc[V](midNode)
			return old, false, result
		}

		_, _, repl2 := midNode.SetVal(suffixRem, v)
		if repl2 != nil {
			midNode = repl2
		}
		result.child = newNodeRc[V](midNode)
		return old, false, result
	}
}

// arcSetBranch installs child as the continuation at the end of suffix,
// mirroring arcSetVal but for grafting a whole subtree rather than a
// single value.
func arcSetBranch[V any](existing *arc[V], suffix []byte, newChild *NodeRc[V]) (updated *arc[V]) {
	n := prefixscan.Overlap(existing.frag, suffix)

	switch {
	case n == len(existing.frag) && n == len(suffix):
		return &arc[V]{frag: existing.frag, hasValue: existing.hasValue, value: existing.value, child: newChild}

	case n == len(existing.frag):
		remaining := suffix[n:]
		child := existing.child
		if child == nil {
			child = emptyNodeRc[V]()
		}
		childNode := child.MakeMut()
		repl := childNode.SetBranch(remaining, newChild)
		if repl != nil {
			child.SetNode(repl)
		}
		return &arc[V]{frag: existing.frag, hasValue: existing.hasValue, value: existing.value, child: child}

	default:
		existingRem := existing.frag[n:]
		suffixRem := suffix[n:]

		if len(suffixRem) == 0 {
			// the graft point falls exactly at the split: newChild
			// subsumes everything existing used to carry below it.
			return &arc[V]{frag: suffix[:n], hasValue: false, child: newChild}
		}

		mid := newLineListNode[V]()
		midNode := mid.putArc(&arc[V]{frag: existingRem, hasValue: existing.hasValue, value: existing.value, child: existing.child})
		repl2 := midNode.SetBranch(suffixRem, newChild)
		if repl2 != nil {
			midNode = repl2
		}
		return &arc[V]{frag: suffix[:n], hasValue: false, child: newNodeRc[V](midNode)}
	}
}

// arcRemoveVal removes the value stored at exact fragment suffix within
// existing. ok reports whether a value was actually removed; arcGone
// reports whether the whole arc became dangling (no value, no child) and
// must be dropped from the containing node.
func arcRemoveVal[V any](existing *arc[V], suffix []byte) (old V, ok bool, updated *arc[V], arcGone bool) {
	n := prefixscan.Overlap(existing.frag, suffix)

	if n == len(existing.frag) && n == len(suffix) {
		if !existing.hasValue {
			return old, false, existing, false
		}
		old = existing.value
		if existing.child == nil {
			return old, true, nil, true
		}
		return old, true, &arc[V]{frag: existing.frag, hasValue: false, child: existing.child}, false
	}

	if n == len(existing.frag) && existing.child != nil {
		remaining := suffix[n:]
		childNode := existing.child.MakeMut()
		removedVal, removed, childEmpty := childNode.RemoveVal(remaining)
		if !removed {
			return old, false, existing, false
		}
		if childEmpty {
			if !existing.hasValue {
				return removedVal, true, nil, true
			}
			return removedVal, true, &arc[V]{frag: existing.frag, hasValue: true, value: existing.value}, false
		}
		return removedVal, true, existing, false
	}

	return old, false, existing, false
}

// arcRemoveChild detaches the child link at exact fragment suffix,
// leaving any stored value in place.
func arcRemoveChild[V any](existing *arc[V], suffix []byte) (removed *NodeRc[V], ok bool, updated *arc[V], arcGone bool) {
	n := prefixscan.Overlap(existing.frag, suffix)

	if n == len(existing.frag) && n == len(suffix) {
		if existing.child == nil {
			return nil, false, existing, false
		}
		removed = existing.child
		if !existing.hasValue {
			return removed, true, nil, true
		}
		return removed, true, &arc[V]{frag: existing.frag, hasValue: true, value: existing.value}, false
	}

	if n == len(existing.frag) && existing.child != nil {
		remaining := suffix[n:]
		childNode := existing.child.MakeMut()
		removedChild, ok2, childEmpty := childNode.RemoveChildAt(remaining)
		if !ok2 {
			return nil, false, existing, false
		}
		if childEmpty {
			if !existing.hasValue {
				return removedChild, true, nil, true
			}
			return removedChild, true, &arc[V]{frag: existing.frag, hasValue: true, value: existing.value}, false
		}
		return removedChild, true, existing, false
	}

	return nil, false, existing, false
}
