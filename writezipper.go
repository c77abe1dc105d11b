package pathmap

import "github.com/Adam-Vandervorst/PathMap/internal/bitset256"

// WriteZipperCore is a cursor with exclusive mutation rights over a
// subtrie. Like ReadZipperCore it re-walks from its origin for every
// observation rather than caching a parent stack, but its mutations
// reach all the way to origin.rc through the ordinary MakeMut/SetNode
// clone-on-write discipline every node kind already implements, so a
// single SetVal/RemoveVal call handles however many levels the path
// spans.
type WriteZipperCore[V any] struct {
	origin *rootedNode[V]
	path   []byte
}

// NewWriteZipper builds a write zipper with exclusive rights over origin.
func NewWriteZipper[V any](origin *rootedNode[V]) *WriteZipperCore[V] {
	return &WriteZipperCore[V]{origin: origin}
}

func (z *WriteZipperCore[V]) landing() landing[V] {
	if len(z.path) == 0 {
		return landing[V]{rc: z.origin.rc, node: z.origin.rc.Node(), exists: true}
	}
	return walk(z.origin.rc, z.path)
}

// Path returns the path from the zipper's origin to its current focus.
func (z *WriteZipperCore[V]) Path() []byte { return z.path }

// PathExists reports whether the focus is an EXISTING position (one with
// a value, a child, or both) as opposed to a DANGLING one a set_value
// call would have to splice into place.
func (z *WriteZipperCore[V]) PathExists() bool {
	if len(z.path) == 0 {
		return true
	}
	return z.landing().exists
}

// Value returns the value at the focus, if any.
func (z *WriteZipperCore[V]) Value() (v V, ok bool) {
	if len(z.path) == 0 {
		return z.origin.val, z.origin.hasVal
	}
	l := z.landing()
	if !l.exists {
		return v, false
	}
	return l.value()
}

func (z *WriteZipperCore[V]) IsValue() bool {
	_, ok := z.Value()
	return ok
}

func (z *WriteZipperCore[V]) ChildCount() int {
	if len(z.path) == 0 {
		return z.origin.rc.Node().ChildCount()
	}
	l := z.landing()
	if !l.exists {
		return 0
	}
	return l.childCount()
}

func (z *WriteZipperCore[V]) ChildMask() bitset256.Set {
	if len(z.path) == 0 {
		return z.origin.rc.Node().ChildMask()
	}
	l := z.landing()
	if !l.exists {
		return bitset256.Set{}
	}
	return l.childMask()
}

// DescendTo moves the focus down by k; see ReadZipperCore.DescendTo for
// the always-moves contract.
func (z *WriteZipperCore[V]) DescendTo(k []byte) bool {
	if len(k) == 0 {
		return z.PathExists()
	}
	z.path = append(z.path, k...)
	return z.PathExists()
}

func (z *WriteZipperCore[V]) DescendToByte(b byte) bool { return z.DescendTo([]byte{b}) }

func (z *WriteZipperCore[V]) Ascend(n int) {
	if n > len(z.path) {
		n = len(z.path)
	}
	z.path = z.path[:len(z.path)-n]
}

// DescendFirstByte moves to the lexicographically first child byte.
func (z *WriteZipperCore[V]) DescendFirstByte() bool {
	b, ok := z.ChildMask().FirstSet()
	if !ok {
		return false
	}
	return z.DescendToByte(byte(b))
}

// DescendUntil descends until it reaches a value, a branch, or a dead
// end, returning the number of bytes descended.
func (z *WriteZipperCore[V]) DescendUntil() int {
	n := 0
	for {
		if z.IsValue() || z.ChildCount() != 1 {
			return n
		}
		if !z.DescendFirstByte() {
			return n
		}
		n++
	}
}

// AscendUntilBranch ascends until reaching a value, a branch point, or
// the zipper's origin.
func (z *WriteZipperCore[V]) AscendUntilBranch() {
	for len(z.path) > 0 {
		z.Ascend(1)
		if z.IsValue() || z.ChildCount() > 1 {
			return
		}
	}
}

// SetValue installs v at the focus, splicing a new arc chain into place
// if the focus was DANGLING, and returns the previous value if any.
func (z *WriteZipperCore[V]) SetValue(v V) (old V, hadOld bool) {
	if len(z.path) == 0 {
		old, hadOld = z.origin.val, z.origin.hasVal
		z.origin.hasVal, z.origin.val = true, v
		return
	}
	node := z.origin.rc.MakeMut()
	old, hadOld, repl := node.SetVal(z.path, v)
	if repl != nil {
		z.origin.rc.SetNode(repl)
	}
	return old, hadOld
}

// RemoveValue removes the value at the focus, if any, pruning any arc
// left holding neither a value nor a child.
func (z *WriteZipperCore[V]) RemoveValue() (old V, hadOld bool) {
	if len(z.path) == 0 {
		old, hadOld = z.origin.val, z.origin.hasVal
		z.origin.hasVal = false
		var zero V
		z.origin.val = zero
		return
	}
	node := z.origin.rc.MakeMut()
	old, hadOld, _ = node.RemoveVal(z.path)
	return
}

// Graft installs child as the subtrie rooted exactly at the focus,
// replacing whatever was there, with rootVal/hasRootVal becoming the
// value at the focus itself.
func (z *WriteZipperCore[V]) Graft(child *NodeRc[V], hasRootVal bool, rootVal V) {
	if len(z.path) == 0 {
		z.origin.rc = child
		z.origin.hasVal = hasRootVal
		z.origin.val = rootVal
		return
	}
	node := z.origin.rc.MakeMut()
	if hasRootVal {
		if _, _, repl := node.SetVal(z.path, rootVal); repl != nil {
			z.origin.rc.SetNode(repl)
		}
	} else {
		node.RemoveVal(z.path)
	}
	node = z.origin.rc.MakeMut()
	if repl := node.SetBranch(z.path, child); repl != nil {
		z.origin.rc.SetNode(repl)
	}
}

// GraftMap installs m's contents as the subtrie rooted at the focus.
func (z *WriteZipperCore[V]) GraftMap(m *Map[V]) {
	z.Graft(m.root.rc.Clone(), m.root.hasVal, m.root.val)
}

// RemoveBranches detaches any child at the focus, leaving the focus's
// own value (if any) untouched.
func (z *WriteZipperCore[V]) RemoveBranches() (removed *NodeRc[V], had bool) {
	if len(z.path) == 0 {
		removed, had = z.origin.rc, !z.origin.rc.Node().IsEmpty()
		z.origin.rc = emptyNodeRc[V]()
		return
	}
	node := z.origin.rc.MakeMut()
	removed, had, _ = node.RemoveChildAt(z.path)
	return
}

// DropHead strips the first n bytes from every downstream path below the
// focus, joining together whatever subtries land on the same position
// once their n leading bytes are gone, and regrafts the result at the
// focus without moving it. A downstream path exactly n bytes long lands
// on the focus itself, so its value (if any) is joined into the focus's
// own value rather than discarded.
func (z *WriteZipperCore[V]) DropHead(n int) bool {
	if n < 0 {
		return false
	}
	if n == 0 {
		return true
	}
	base, curHasVal, curVal := z.baseSubtree()
	droppedHasVal, droppedVal, sub := dropHeadNode(base.Node(), n)
	mergedHasVal, mergedVal := joinRootVal(curHasVal, curVal, droppedHasVal, droppedVal)
	z.Graft(sub, mergedHasVal, mergedVal)
	return true
}

// dropHeadNode strips the first n bytes from every path held by node,
// joining the contributions of every arc that land on the same position
// afterward. It reports the value (if any) landing exactly n bytes in,
// alongside the subtrie continuing past it.
func dropHeadNode[V any](node TrieNode[V], n int) (hasVal bool, val V, sub *NodeRc[V]) {
	sub = emptyNodeRc[V]()
	for _, a := range node.Arcs() {
		ah, av, contributed := dropHeadArc(a, n)
		if ah {
			hasVal, val = joinRootVal(hasVal, val, true, av)
		}
		if contributed != nil && !contributed.Node().IsEmpty() {
			sub = joinNodes(sub, contributed)
		}
	}
	return
}

// dropHeadArc is dropHeadNode's per-arc case: it strips n bytes from the
// front of a's fragment, recursing into a's child when the fragment is
// shorter than n.
func dropHeadArc[V any](a *arc[V], n int) (hasVal bool, val V, sub *NodeRc[V]) {
	flen := len(a.frag)
	switch {
	case n < flen:
		rem := a.clone()
		rem.frag = rem.frag[n:]
		ln := newLineListNode[V]()
		var built TrieNode[V] = ln.putArc(rem)
		return false, val, newNodeRc[V](built)
	case n == flen:
		if a.child == nil {
			return a.hasValue, a.value, emptyNodeRc[V]()
		}
		return a.hasValue, a.value, a.child.Clone()
	default:
		if a.child == nil {
			return false, val, emptyNodeRc[V]()
		}
		return dropHeadNode(a.child.Node(), n-flen)
	}
}

// InsertPrefix prepends prefix to every key in the focus's subtrie by
// grafting the current subtrie below a freshly built arc chain.
func (z *WriteZipperCore[V]) InsertPrefix(prefix []byte) bool {
	if len(prefix) == 0 {
		return true
	}
	var childRc *NodeRc[V]
	var hasVal bool
	var val V
	if len(z.path) == 0 {
		childRc, hasVal, val = z.origin.rc, z.origin.hasVal, z.origin.val
	} else {
		l := z.landing()
		if !l.exists {
			return false
		}
		ref := l.asRef()
		var ok bool
		childRc, hasVal, val, ok = ref.AsNodeRc()
		if !ok {
			return false
		}
		if !z.RemoveSubtree() {
			return false
		}
	}
	chain := newLineListNode[V]()
	var built TrieNode[V] = chain.putArc(&arc[V]{frag: prefix, hasValue: hasVal, value: val, child: childRc})
	z.Graft(newNodeRc[V](built), false, val)
	return true
}

// RemoveSubtree detaches everything at the focus, value included.
func (z *WriteZipperCore[V]) RemoveSubtree() bool {
	if len(z.path) == 0 {
		z.origin.rc = emptyNodeRc[V]()
		z.origin.hasVal = false
		var zero V
		z.origin.val = zero
		return true
	}
	node := z.origin.rc.MakeMut()
	node.RemoveVal(z.path)
	node = z.origin.rc.MakeMut()
	node.RemoveChildAt(z.path)
	return true
}

// RemovePrefix is the inverse of InsertPrefix: it detaches the subtrie
// currently found at focus+prefix and grafts it directly at the focus,
// stripping prefix from the front of every key below the focus.
func (z *WriteZipperCore[V]) RemovePrefix(prefix []byte) bool {
	saved := append([]byte(nil), z.path...)
	if !z.DescendTo(prefix) {
		z.path = saved
		return false
	}
	rc, hasVal, val := z.baseSubtree()
	rc = rc.Clone()
	z.RemoveSubtree()
	z.path = saved
	z.Graft(rc, hasVal, val)
	return true
}

func (z *WriteZipperCore[V]) baseSubtree() (*NodeRc[V], bool, V) {
	if len(z.path) == 0 {
		return z.origin.rc, z.origin.hasVal, z.origin.val
	}
	ref := z.landing().asRef()
	rc, hasVal, val, ok := ref.AsNodeRc()
	if !ok {
		var zero V
		return emptyNodeRc[V](), false, zero
	}
	return rc, hasVal, val
}

// statusFor reduces a freshly computed subtrie against the receiver's
// prior subtrie (base) and the counterparty (other) to the AlgebraicStatus
// the public in-place combinators report, so callers can tell an
// unchanged result from one that actually absorbed new structure without
// walking the result themselves.
func statusFor[V any](result, base, other *NodeRc[V]) AlgebraicStatus {
	if result.Node().IsEmpty() {
		return StatusNone
	}
	if Same(result, base) {
		return StatusIdentity
	}
	if Same(result, other) {
		return StatusIdentity
	}
	return StatusElement
}

// Join merges other's subtrie into the focus's subtrie in place, using
// V's Lattice.Join where V implements it, falling back to a deterministic,
// order-independent pick on conflict otherwise (see pickDeterministic).
func (z *WriteZipperCore[V]) Join(other *NodeRc[V], otherHasVal bool, otherVal V) AlgebraicStatus {
	base, hasVal, val := z.baseSubtree()
	mergedHasVal, mergedVal := joinRootVal(hasVal, val, otherHasVal, otherVal)
	result := joinNodes(base, other)
	z.Graft(result, mergedHasVal, mergedVal)
	return statusFor(result, base, other)
}

// Meet intersects the focus's subtrie with other's in place.
func (z *WriteZipperCore[V]) Meet(other *NodeRc[V], otherHasVal bool, otherVal V) AlgebraicStatus {
	base, hasVal, val := z.baseSubtree()
	mergedHasVal, mergedVal := meetRootVal(hasVal, val, otherHasVal, otherVal)
	result := meetNodes(base, other)
	z.Graft(result, mergedHasVal, mergedVal)
	return statusFor(result, base, other)
}

// Subtract removes from the focus's subtrie everything present in other.
func (z *WriteZipperCore[V]) Subtract(other *NodeRc[V], otherHasVal bool, otherVal V) AlgebraicStatus {
	base, hasVal, val := z.baseSubtree()
	mergedHasVal, mergedVal := subtractRootVal(hasVal, val, otherHasVal, otherVal)
	result := subtractNodes(base, other)
	z.Graft(result, mergedHasVal, mergedVal)
	return statusFor(result, base, other)
}

// Restrict keeps only the values of the focus's subtrie at paths where
// mask also holds a value; a mask value at a shorter path does not keep
// the entries below it.
func (z *WriteZipperCore[V]) Restrict(mask *NodeRc[V], maskHasVal bool) AlgebraicStatus {
	base, hasVal, val := z.baseSubtree()
	mergedHasVal, mergedVal := restrictRootVal(hasVal, val, maskHasVal)
	result := restrictNodes(base, mask)
	z.Graft(result, mergedHasVal, mergedVal)
	return statusFor(result, base, mask)
}

// TakeMap detaches the focus's subtrie into a new Map, leaving an empty
// subtrie behind.
func (z *WriteZipperCore[V]) TakeMap() *Map[V] {
	var rc *NodeRc[V]
	var hasVal bool
	var val V
	if len(z.path) == 0 {
		rc, hasVal, val = z.origin.rc, z.origin.hasVal, z.origin.val
		z.origin.rc = emptyNodeRc[V]()
		z.origin.hasVal = false
		var zero V
		z.origin.val = zero
	} else {
		ref := z.landing().asRef()
		var ok bool
		rc, hasVal, val, ok = ref.AsNodeRc()
		if !ok {
			rc, hasVal = emptyNodeRc[V](), false
		}
		z.RemoveSubtree()
	}
	return &Map[V]{root: rootedNode[V]{rc: rc, hasVal: hasVal, val: val}}
}
