package pathmap

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"golang.org/x/sync/errgroup"
)

// TestZipperHeadConcurrentDisjointWrites checks out one exclusive write
// path per top-level letter and fans the actual mutation out across
// goroutines, the concurrency shape ZipperHead exists to support.
func TestZipperHeadConcurrentDisjointWrites(t *testing.T) {
	c := qt.New(t)
	m := New[int]()
	zh := m.ZipperHead()

	words := [][]byte{[]byte("apple"), []byte("banana"), []byte("cherry"), []byte("date")}

	var g errgroup.Group
	for i, w := range words {
		i, w := i, w
		wz, release, err := zh.WriteZipperAtExclusivePath(w[:1])
		c.Assert(err, qt.IsNil)
		g.Go(func() error {
			defer release()
			wz.DescendTo(w[1:])
			wz.SetValue(i)
			return nil
		})
	}
	c.Assert(g.Wait(), qt.IsNil)

	for i, w := range words {
		v, ok := m.Get(w)
		c.Assert(ok, qt.IsTrue)
		c.Assert(v, qt.Equals, i)
	}
}
