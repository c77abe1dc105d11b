//go:build !alldense

package pathmap

// nodeCapacity is the promotion threshold: a lineListNode holding more
// than this many arcs is replaced by a denseByteNode. Building with the
// alldense tag drops this to zero, so every node is dense from its
// first arc, trading the small-fanout case's lower overhead for
// uniformly predictable probe cost.
const nodeCapacity = 8
