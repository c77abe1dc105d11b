package pathmap

import (
	"errors"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"
)

// ErrOverlap is returned by WriteZipperAtExclusivePath when the
// requested path overlaps (is a prefix of, extends, or equals) a path
// already checked out for exclusive writing.
var ErrOverlap = errors.New("pathmap: exclusive write path overlaps an already checked-out path")

// ZipperHead coordinates concurrent read and write zippers into disjoint
// parts of a single Map, so independent goroutines can each mutate their
// own subtrie without taking a lock over the whole structure.
//
// The tracker's fast-reject bitmap (first byte of every checked-out
// path) lets the common "obviously disjoint" case skip the full overlap
// scan; on every checkout, prepareExclusiveWritePath promotes the
// existing nodes along the path to cellByteNode, whose per-byte atomic.Pointer
// cells are safe to hand out independently to concurrent writers without
// further coordination once checked out.
//
// Every WriteZipperCore returned here shares the same *rootedNode[V], so
// two checked-out paths with the same first byte both still route their
// mutations through the shared root's NodeRc on the way down. That is
// race-free only because prepareExclusiveWritePath finishes converting
// every shared ancestor to cellByteNode before either zipper is handed
// back, and a cellByteNode never asks its parent to replace it once
// promoted. It is not an independently-verified lock-free protocol: see
// the ZipperHead entry in DESIGN.md for what this does and does not
// cover.
type ZipperHead[V any] struct {
	root *rootedNode[V]

	mu      sync.Mutex
	tracker bitset.BitSet
	counts  [256]int
	checked [][]byte
	log     *zap.Logger
}

func newZipperHead[V any](root *rootedNode[V]) *ZipperHead[V] {
	return &ZipperHead[V]{root: root, log: zap.NewNop()}
}

// SetLogger attaches a zap logger for debug tracing of checkouts,
// releases, and overlap rejections. A nil logger disables tracing.
func (zh *ZipperHead[V]) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	zh.log = l
}

// ReadZipperAtPath returns a read zipper forked at path, safe to use
// concurrently with any number of other read zippers and with exclusive
// write zippers at disjoint paths.
func (zh *ZipperHead[V]) ReadZipperAtPath(path []byte) (*ReadZipperCore[V], bool) {
	zh.mu.Lock()
	origin := zh.root.clone()
	zh.mu.Unlock()

	rz := NewReadZipper(origin)
	if !rz.DescendTo(path) {
		return nil, false
	}
	return rz.ForkReadZipper()
}

// ReadZipperAtBorrowedPath is ReadZipperAtPath without the defensive
// clone of the map's root: the returned zipper still shares structure
// via reference counting, but is cheaper to construct when the caller
// can guarantee the head outlives the zipper.
func (zh *ZipperHead[V]) ReadZipperAtBorrowedPath(path []byte) (*ReadZipperCore[V], bool) {
	zh.mu.Lock()
	rz := NewReadZipper(*zh.root)
	zh.mu.Unlock()

	if !rz.DescendTo(path) {
		return nil, false
	}
	return rz.ForkReadZipper()
}

func overlaps(a, b []byte) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// WriteZipperAtExclusivePath checks out path for exclusive mutation,
// returning ErrOverlap if any other currently checked-out path overlaps
// it. The returned release func must be called when the caller is done,
// or the path (and every path it overlaps) remains checked out forever.
func (zh *ZipperHead[V]) WriteZipperAtExclusivePath(path []byte) (wz *WriteZipperCore[V], release func(), err error) {
	zh.mu.Lock()
	defer zh.mu.Unlock()

	// Bit 256, past every byte value, marks a live empty-path checkout,
	// which overlaps every other path.
	firstByte := uint(256)
	hasFirstByte := len(path) > 0
	if hasFirstByte {
		firstByte = uint(path[0])
	}

	if !hasFirstByte || zh.tracker.Test(firstByte) || zh.tracker.Test(256) {
		for _, other := range zh.checked {
			if overlaps(path, other) {
				zh.log.Debug("pathmap: exclusive write path rejected", zap.Binary("path", path), zap.Binary("with", other))
				return nil, nil, ErrOverlap
			}
		}
	}

	zh.prepareExclusiveWritePath(path)

	cp := append([]byte(nil), path...)
	zh.checked = append(zh.checked, cp)
	zh.tracker.Set(firstByte)
	if hasFirstByte {
		zh.counts[firstByte]++
	}
	zh.log.Debug("pathmap: exclusive write path checked out", zap.Binary("path", path))

	released := false
	release = func() {
		zh.mu.Lock()
		defer zh.mu.Unlock()
		if released {
			return
		}
		released = true
		for i, other := range zh.checked {
			if string(other) == string(cp) {
				zh.checked = append(zh.checked[:i], zh.checked[i+1:]...)
				break
			}
		}
		if hasFirstByte {
			zh.counts[firstByte]--
			if zh.counts[firstByte] == 0 {
				zh.tracker.Clear(firstByte)
			}
		} else {
			zh.tracker.Clear(firstByte)
		}
		zh.log.Debug("pathmap: exclusive write path released", zap.Binary("path", path))
	}

	wz = NewWriteZipper(zh.root)
	wz.DescendTo(path)
	return wz, release, nil
}

// prepareExclusiveWritePath converts every node along path (that already
// exists and is not a cellByteNode yet) to a cellByteNode, so the per-byte atomic cells can later be
// handed out to independent concurrent writers without a shared lock.
// Nodes that do not yet exist are left alone; they are created in
// whatever representation ordinary SetVal/SetBranch promotion produces,
// and only gain cell representation on a future path preparation that
// passes through them.
func (zh *ZipperHead[V]) prepareExclusiveWritePath(path []byte) {
	if len(path) == 0 {
		zh.root.rc.SetNode(convertToCellNode[V](zh.root.rc.Node()))
		return
	}

	cur := zh.root.rc
	rest := path
	for len(rest) > 0 {
		node := cur.MakeMut()
		cellNode, isCell := node.(*cellByteNode[V])
		if !isCell {
			cellNode = convertToCellNode[V](node)
			cur.SetNode(cellNode)
		}

		a, ok := cellNode.GetArc(rest[0])
		if !ok {
			return
		}
		m := commonPrefixLen(a.frag, rest)
		if m < len(a.frag) {
			return
		}
		rest = rest[m:]
		if len(rest) == 0 || a.child == nil {
			return
		}
		cur = a.child
	}
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
