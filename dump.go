package pathmap

import (
	"fmt"
	"strings"
)

// Dump renders m as an indented tree, one arc per line, for debugging
// and test failure messages. The value formatter defaults to fmt.Sprint
// when stringify is nil.
func Dump[V any](m *Map[V], stringify func(V) string) string {
	if stringify == nil {
		stringify = func(v V) string { return fmt.Sprint(v) }
	}
	var b strings.Builder
	if m.root.hasVal {
		fmt.Fprintf(&b, "• = %s\n", stringify(m.root.val))
	}
	dumpNode(&b, m.root.rc.Node(), "", stringify)
	return b.String()
}

func dumpNode[V any](b *strings.Builder, n TrieNode[V], indent string, stringify func(V) string) {
	for byt, a := range n.Arcs() {
		marker := ""
		if a.hasValue {
			marker = fmt.Sprintf(" = %s", stringify(a.value))
		}
		fmt.Fprintf(b, "%s%02x %q%s\n", indent, byt, a.frag, marker)
		if a.child != nil {
			dumpNode(b, a.child.Node(), indent+"  ", stringify)
		}
	}
}
