package pathmap

import (
	"fmt"

	"github.com/Adam-Vandervorst/PathMap/internal/prefixscan"
)

// This file implements the bulk algebraic operations (join, meet,
// subtract, restrict) as free functions recursing over pairs of
// *NodeRc[V], rather than as methods every TrieNode implementation would
// otherwise have to carry. The recursion walks both sides' Arcs() in
// byte order and only ever has to reconcile the region where the two
// arcs' fragments actually overlap, via mergeArcPair; node-kind-specific
// promotion is handled for free by reusing putArc/SetBranch on a fresh
// lineListNode for the merged result, the same promotion path ordinary
// mutation already goes through.
//
// Root-level values (the one position no arc can address) are combined
// by the RootVal helpers below and applied by the caller, not by these
// functions.

// pickDeterministic resolves a value conflict without a Lattice
// implementation: equal values trivially agree, and otherwise the pick is
// made by a total order over each value's Go-syntax representation
// (which, unlike fmt's default verb, folds in the type) rather than by
// argument position, so the result does not depend on which operand is
// "a" and which is "b". This keeps Join and Meet commutative for any V,
// not just Lattice-typed V, short of two unequal values that happen to
// share a %#v representation.
func pickDeterministic[V any](a, b V) V {
	if equal(a, b) {
		return a
	}
	as, bs := fmt.Sprintf("%#v", a), fmt.Sprintf("%#v", b)
	if as <= bs {
		return a
	}
	return b
}

// on conflict without a Lattice implementation, join falls back to
// pickDeterministic so the result stays independent of argument order.
func joinRootVal[V any](aHas bool, aVal V, bHas bool, bVal V) (bool, V) {
	switch {
	case aHas && bHas:
		if v, ok := joinVal(aVal, bVal); ok {
			return true, v
		}
		return true, pickDeterministic(aVal, bVal)
	case aHas:
		return true, aVal
	case bHas:
		return true, bVal
	default:
		var zero V
		return false, zero
	}
}

func meetRootVal[V any](aHas bool, aVal V, bHas bool, bVal V) (bool, V) {
	if aHas && bHas {
		if v, ok := meetVal(aVal, bVal); ok {
			return true, v
		}
		return true, pickDeterministic(aVal, bVal)
	}
	var zero V
	return false, zero
}

// without a DistributiveLattice implementation, subtract falls back to
// removing any key present on both sides outright.
func subtractRootVal[V any](aHas bool, aVal V, bHas bool, bVal V) (bool, V) {
	if !aHas {
		var zero V
		return false, zero
	}
	if !bHas {
		return true, aVal
	}
	if sub, ok := subtractVal(aVal, bVal); ok {
		return true, sub
	}
	var zero V
	return false, zero
}

func restrictRootVal[V any](aHas bool, aVal V, maskHas bool) (bool, V) {
	if aHas && maskHas {
		return true, aVal
	}
	var zero V
	return false, zero
}

// joinNodes returns the union of a and b: every path present in either.
func joinNodes[V any](a, b *NodeRc[V]) *NodeRc[V] {
	if Same(a, b) {
		return a.Clone()
	}
	an, bn := a.Node(), b.Node()
	if an.IsEmpty() {
		return b.Clone()
	}
	if bn.IsEmpty() {
		return a.Clone()
	}

	out := newLineListNode[V]()
	var built TrieNode[V] = out
	seen := make(map[byte]bool, an.ChildCount()+bn.ChildCount())

	for byt, aArc := range an.Arcs() {
		seen[byt] = true
		if bArc, ok := bn.GetArc(byt); ok {
			built = attachArc(built, mergeArcPair(aArc, bArc, joinNodes[V], joinRootVal[V]))
		} else {
			built = attachArc(built, aArc.clone())
		}
	}
	for byt, bArc := range bn.Arcs() {
		if seen[byt] {
			continue
		}
		built = attachArc(built, bArc.clone())
	}
	return newNodeRc[V](built)
}

// meetNodes returns the intersection of a and b: only paths present in
// both, value-bearing only where both sides carry a value at that exact
// path (or an ancestor leading to a deeper shared value).
func meetNodes[V any](a, b *NodeRc[V]) *NodeRc[V] {
	if Same(a, b) {
		return a.Clone()
	}
	an, bn := a.Node(), b.Node()
	out := newLineListNode[V]()
	var built TrieNode[V] = out

	for byt, aArc := range an.Arcs() {
		bArc, ok := bn.GetArc(byt)
		if !ok {
			continue
		}
		if merged, keep := mergeArcPairFiltered(aArc, bArc, meetNodes[V], meetRootVal[V]); keep {
			built = attachArc(built, merged)
		}
	}
	return newNodeRc[V](built)
}

// subtractNodes returns a with every path present in b removed.
func subtractNodes[V any](a, b *NodeRc[V]) *NodeRc[V] {
	if Same(a, b) {
		return emptyNodeRc[V]()
	}
	an, bn := a.Node(), b.Node()
	out := newLineListNode[V]()
	var built TrieNode[V] = out

	for byt, aArc := range an.Arcs() {
		bArc, ok := bn.GetArc(byt)
		if !ok {
			built = attachArc(built, aArc.clone())
			continue
		}
		if merged, keep := mergeArcPairFiltered(aArc, bArc, subtractNodes[V], subtractRootVal[V]); keep {
			built = attachArc(built, merged)
		}
	}
	return newNodeRc[V](built)
}

// restrictNodes keeps a's values only at paths where mask also holds a
// value, discarding mask's own values. A mask value at a shorter path
// does not keep a's entries below it, and a mask branch that merely
// passes through one of a's values does not keep that value.
func restrictNodes[V any](a, mask *NodeRc[V]) *NodeRc[V] {
	if Same(a, mask) {
		return a.Clone()
	}
	an, mn := a.Node(), mask.Node()
	out := newLineListNode[V]()
	var built TrieNode[V] = out

	for byt, aArc := range an.Arcs() {
		mArc, ok := mn.GetArc(byt)
		if !ok {
			continue
		}
		if merged, keep := mergeArcPairFiltered(aArc, mArc, restrictNodes[V], restrictRootVal[V]); keep {
			built = attachArc(built, merged)
		}
	}
	return newNodeRc[V](built)
}

func attachArc[V any](n TrieNode[V], a *arc[V]) TrieNode[V] {
	if a == nil {
		return n
	}
	return n.putArc(a)
}

// mergeArcPair reconciles two arcs that share a first byte for a
// value-preserving merge (join): on partial fragment overlap it must
// build a genuinely new intermediate node, since neither side's split
// point need coincide with the other's.
func mergeArcPair[V any](a, b *arc[V], mergeChildren func(x, y *NodeRc[V]) *NodeRc[V], mergeVal func(aHas bool, aVal V, bHas bool, bVal V) (bool, V)) *arc[V] {
	n := prefixscan.Overlap(a.frag, b.frag)
	switch {
	case n == len(a.frag) && n == len(b.frag):
		hasVal, val := mergeVal(a.hasValue, a.value, b.hasValue, b.value)
		child := mergeChildPair(a.child, b.child, mergeChildren)
		return &arc[V]{frag: a.frag, hasValue: hasVal, value: val, child: child}

	case n == len(a.frag):
		// b continues past a's fragment: recurse with a's child playing
		// the role of "a" one level down, against the residual of b.
		bSub := &arc[V]{frag: b.frag[n:], hasValue: b.hasValue, value: b.value, child: b.child}
		var aChildRc *NodeRc[V]
		if a.child != nil {
			aChildRc = a.child
		} else {
			aChildRc = emptyNodeRc[V]()
		}
		bNode := newLineListNode[V]()
		var bBuilt TrieNode[V] = bNode.putArc(bSub)
		merged := mergeChildren(aChildRc, newNodeRc[V](bBuilt))
		return &arc[V]{frag: a.frag, hasValue: a.hasValue, value: a.value, child: merged}

	case n == len(b.frag):
		aSub := &arc[V]{frag: a.frag[n:], hasValue: a.hasValue, value: a.value, child: a.child}
		var bChildRc *NodeRc[V]
		if b.child != nil {
			bChildRc = b.child
		} else {
			bChildRc = emptyNodeRc[V]()
		}
		aNode := newLineListNode[V]()
		var aBuilt TrieNode[V] = aNode.putArc(aSub)
		merged := mergeChildren(newNodeRc[V](aBuilt), bChildRc)
		return &arc[V]{frag: b.frag, hasValue: b.hasValue, value: b.value, child: merged}

	default:
		// genuine partial overlap: build a fresh split node holding both
		// divergent remainders, recursively merged.
		aRem := &arc[V]{frag: a.frag[n:], hasValue: a.hasValue, value: a.value, child: a.child}
		bRem := &arc[V]{frag: b.frag[n:], hasValue: b.hasValue, value: b.value, child: b.child}
		mid := newLineListNode[V]()
		var built TrieNode[V] = mid
		built = attachArc(built, aRem)
		built = attachArc(built, bRem)
		return &arc[V]{frag: a.frag[:n], child: newNodeRc[V](built)}
	}
}

// mergeArcPairFiltered is mergeArcPair's counterpart for meet/subtract/
// restrict, where a divergent pair can legitimately vanish entirely
// (meet of disjoint fragments has nothing to keep).
func mergeArcPairFiltered[V any](a, b *arc[V], mergeChildren func(x, y *NodeRc[V]) *NodeRc[V], mergeVal func(aHas bool, aVal V, bHas bool, bVal V) (bool, V)) (result *arc[V], keep bool) {
	n := prefixscan.Overlap(a.frag, b.frag)
	switch {
	case n == len(a.frag) && n == len(b.frag):
		hasVal, val := mergeVal(a.hasValue, a.value, b.hasValue, b.value)
		child := mergeChildPair(a.child, b.child, mergeChildren)
		if !hasVal && (child == nil || child.Node().IsEmpty()) {
			return nil, false
		}
		return &arc[V]{frag: a.frag, hasValue: hasVal, value: val, child: child}, true

	case n == len(a.frag):
		bSub := &arc[V]{frag: b.frag[n:], hasValue: b.hasValue, value: b.value, child: b.child}
		var aChildRc *NodeRc[V]
		if a.child != nil {
			aChildRc = a.child
		} else {
			aChildRc = emptyNodeRc[V]()
		}
		bNode := newLineListNode[V]()
		var bBuilt TrieNode[V] = bNode.putArc(bSub)
		merged := mergeChildren(aChildRc, newNodeRc[V](bBuilt))
		hasVal, val := mergeVal(a.hasValue, a.value, false, b.value)
		if !hasVal && merged.Node().IsEmpty() {
			return nil, false
		}
		return &arc[V]{frag: a.frag, hasValue: hasVal, value: val, child: merged}, true

	case n == len(b.frag):
		aSub := &arc[V]{frag: a.frag[n:], hasValue: a.hasValue, value: a.value, child: a.child}
		var bChildRc *NodeRc[V]
		if b.child != nil {
			bChildRc = b.child
		} else {
			bChildRc = emptyNodeRc[V]()
		}
		aNode := newLineListNode[V]()
		var aBuilt TrieNode[V] = aNode.putArc(aSub)
		merged := mergeChildren(newNodeRc[V](aBuilt), bChildRc)
		hasVal, val := mergeVal(false, a.value, b.hasValue, b.value)
		if !hasVal && merged.Node().IsEmpty() {
			return nil, false
		}
		return &arc[V]{frag: b.frag, hasValue: hasVal, value: val, child: merged}, true

	default:
		// fragments diverge entirely: nothing in common to keep.
		return nil, false
	}
}

func mergeChildPair[V any](a, b *NodeRc[V], merge func(x, y *NodeRc[V]) *NodeRc[V]) *NodeRc[V] {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		a = emptyNodeRc[V]()
	}
	if b == nil {
		b = emptyNodeRc[V]()
	}
	merged := merge(a, b)
	if merged.Node().IsEmpty() {
		return nil
	}
	return merged
}
