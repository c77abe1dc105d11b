//go:build alldense

package pathmap

// nodeCapacity is zero under the alldense build tag: a lineListNode
// promotes to denseByteNode on the first arc added through its mutation
// methods. The one-arc node that asRef (walk.go) builds directly for a
// mid-arc landing is the only non-empty lineListNode in this build.
const nodeCapacity = 0
