package pathmap

import (
	"github.com/Adam-Vandervorst/PathMap/internal/bitset256"
	"github.com/Adam-Vandervorst/PathMap/internal/prefixscan"
)

// landing describes where path lands relative to a root NodeRc. Three
// distinct shapes are possible:
//
//   - arc == nil: path consumed exactly to a node boundary (including the
//     empty path at the root itself); node/rc describe that node.
//   - arc != nil && consumed == len(arc.frag): path consumed exactly to
//     this arc's logical end, a value and/or child boundary.
//   - arc != nil && consumed < len(arc.frag): path stops mid-arc, a
//     position with exactly one possible continuation byte.
//
// exists is false when path does not correspond to any real position: it
// diverges from every arc, or runs past a childless arc.
type landing[V any] struct {
	rc       *NodeRc[V] // the NodeRc whose Node() == node; nil at a mid-arc or arc-end landing
	node     TrieNode[V]
	arc      *arc[V]
	consumed int
	exists   bool
}

func walk[V any](root *NodeRc[V], path []byte) landing[V] {
	rc := root
	node := root.Node()
	var a *arc[V]
	consumed := 0
	rest := path

	for len(rest) > 0 {
		if a == nil {
			next, ok := node.GetArc(rest[0])
			if !ok {
				return landing[V]{rc: rc, node: node, exists: false}
			}
			a = next
			consumed = 0
		}

		remFrag := a.frag[consumed:]
		m := prefixscan.Overlap(remFrag, rest)
		consumed += m
		rest = rest[m:]

		if m < len(remFrag) {
			return landing[V]{arc: a, consumed: consumed, exists: len(rest) == 0}
		}
		if len(rest) == 0 {
			return landing[V]{arc: a, consumed: consumed, exists: true}
		}
		if a.child == nil {
			return landing[V]{arc: a, consumed: consumed, exists: false}
		}
		rc = a.child
		node = a.child.Node()
		a = nil
		consumed = 0
	}

	return landing[V]{rc: rc, node: node, exists: true}
}

// value reports the value (if any) the landing sits on.
func (l landing[V]) value() (v V, ok bool) {
	if l.arc != nil && l.consumed == len(l.arc.frag) {
		return l.arc.value, l.arc.hasValue
	}
	return
}

func (l landing[V]) childCount() int {
	switch {
	case l.arc == nil:
		if l.node == nil {
			return 0
		}
		return l.node.ChildCount()
	case l.consumed == len(l.arc.frag):
		if l.arc.child != nil {
			return l.arc.child.Node().ChildCount()
		}
		return 0
	default:
		return 1
	}
}

func (l landing[V]) childMask() (m bitset256.Set) {
	switch {
	case l.arc == nil:
		if l.node != nil {
			return l.node.ChildMask()
		}
		return m
	case l.consumed == len(l.arc.frag):
		if l.arc.child != nil {
			return l.arc.child.Node().ChildMask()
		}
		return m
	default:
		m.MustSet(uint(l.arc.frag[l.consumed]))
		return m
	}
}

// asRef packages a landing as an AbstractNodeRef, sharing the underlying
// NodeRc when the landing sits exactly on a node boundary and otherwise
// materializing a fresh one-arc node for the remaining suffix.
func (l landing[V]) asRef() AbstractNodeRef[V] {
	if !l.exists {
		return AbstractNodeRef[V]{found: false}
	}
	if l.arc == nil {
		return AbstractNodeRef[V]{found: true, rc: l.rc}
	}
	if l.consumed == len(l.arc.frag) {
		if l.arc.child != nil {
			return AbstractNodeRef[V]{found: true, rc: l.arc.child, hasVal: l.arc.hasValue, val: l.arc.value}
		}
		return AbstractNodeRef[V]{found: true, rc: emptyNodeRc[V](), hasVal: l.arc.hasValue, val: l.arc.value}
	}
	suffix := l.arc.frag[l.consumed:]
	ln := newLineListNode[V]()
	ln.arcs = append(ln.arcs, &arc[V]{frag: suffix, hasValue: l.arc.hasValue, value: l.arc.value, child: l.arc.child})
	return AbstractNodeRef[V]{found: true, rc: newNodeRc[V](ln)}
}
