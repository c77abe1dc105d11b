package pathmap

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func buildSample() *Map[int] {
	m := New[int]()
	for i, w := range []string{"rust", "rustacean", "ruby", "rake", "rocket"} {
		m.Insert([]byte(w), i)
	}
	return m
}

func TestReadZipperDescendAscend(t *testing.T) {
	c := qt.New(t)
	m := buildSample()
	rz := m.ReadZipper()

	c.Assert(rz.DescendTo([]byte("ru")), qt.IsTrue)
	c.Assert(rz.IsValue(), qt.IsFalse)
	c.Assert(rz.ChildCount() >= 2, qt.IsTrue)

	c.Assert(rz.DescendTo([]byte("st")), qt.IsTrue)
	v, ok := rz.Value()
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 0)

	rz.Ascend(2)
	c.Assert(string(rz.Path()), qt.Equals, "ru")

	c.Assert(rz.DescendTo([]byte("zzz")), qt.IsFalse)
	c.Assert(rz.PathExists(), qt.IsFalse)
}

func TestReadZipperSiblingNavigation(t *testing.T) {
	c := qt.New(t)
	m := New[int]()
	m.Insert([]byte("a"), 1)
	m.Insert([]byte("m"), 2)
	m.Insert([]byte("z"), 3)

	rz := m.ReadZipper()
	c.Assert(rz.DescendFirstByte(), qt.IsTrue)
	c.Assert(string(rz.Path()), qt.Equals, "a")

	c.Assert(rz.ToNextSiblingByte(), qt.IsTrue)
	c.Assert(string(rz.Path()), qt.Equals, "m")

	c.Assert(rz.ToNextSiblingByte(), qt.IsTrue)
	c.Assert(string(rz.Path()), qt.Equals, "z")

	c.Assert(rz.ToNextSiblingByte(), qt.IsFalse)

	c.Assert(rz.ToPrevSiblingByte(), qt.IsTrue)
	c.Assert(string(rz.Path()), qt.Equals, "m")
}

func TestForkReadZipperAndMakeMap(t *testing.T) {
	c := qt.New(t)
	m := buildSample()
	rz := m.ReadZipper()
	c.Assert(rz.DescendTo([]byte("ru")), qt.IsTrue)

	sub, ok := rz.MakeMap()
	c.Assert(ok, qt.IsTrue)
	c.Assert(sub.Contains([]byte("st")), qt.IsTrue)
	c.Assert(sub.Contains([]byte("by")), qt.IsTrue)
	c.Assert(sub.Contains([]byte("rust")), qt.IsFalse)

	sub.Insert([]byte("st"), 999)
	v, _ := m.Get([]byte("rust"))
	c.Assert(v, qt.Equals, 0)
}

func TestWriteZipperAtPathMutatesMap(t *testing.T) {
	c := qt.New(t)
	m := buildSample()
	wz := m.WriteZipperAtPath([]byte("ru"))
	wz.DescendTo([]byte("n"))
	wz.SetValue(42)

	v, ok := m.Get([]byte("run"))
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 42)
}

// TestWriteZipperGraftAndDropHead drops the two bytes separating the
// focus "ru" from its downstream keys ("st" -> 0, "stacean" -> 1,
// "by" -> 2). Stripping those two bytes lands both "st" and "by"
// exactly on the focus, colliding values 0 and 2 with no Lattice on
// int, while "stacean" becomes "acean" one byte under the focus. The
// focus itself must not move.
func TestWriteZipperGraftAndDropHead(t *testing.T) {
	c := qt.New(t)
	m := buildSample()
	wz := m.WriteZipper()
	c.Assert(wz.DescendTo([]byte("ru")), qt.IsTrue)

	ok := wz.DropHead(2)
	c.Assert(ok, qt.IsTrue)
	c.Assert(string(wz.Path()), qt.Equals, "ru")

	v, has := wz.Value()
	c.Assert(has, qt.IsTrue)
	c.Assert(v, qt.Equals, pickDeterministic(0, 2))

	c.Assert(m.Contains([]byte("ruacean")), qt.IsTrue)
	av, _ := m.Get([]byte("ruacean"))
	c.Assert(av, qt.Equals, 1)

	c.Assert(m.Contains([]byte("rust")), qt.IsFalse)
	c.Assert(m.Contains([]byte("rustacean")), qt.IsFalse)
	c.Assert(m.Contains([]byte("ruby")), qt.IsFalse)
}

func TestWriteZipperInsertRemovePrefix(t *testing.T) {
	c := qt.New(t)
	m := New[int]()
	m.Insert([]byte("st"), 1)
	m.Insert([]byte("stacean"), 2)

	wz := m.WriteZipper()
	c.Assert(wz.InsertPrefix([]byte("ru")), qt.IsTrue)

	c.Assert(m.Contains([]byte("rust")), qt.IsTrue)
	c.Assert(m.Contains([]byte("rustacean")), qt.IsTrue)
	c.Assert(m.Contains([]byte("st")), qt.IsFalse)

	wz2 := m.WriteZipper()
	c.Assert(wz2.RemovePrefix([]byte("ru")), qt.IsTrue)
	c.Assert(m.Contains([]byte("st")), qt.IsTrue)
	c.Assert(m.Contains([]byte("stacean")), qt.IsTrue)
	c.Assert(m.Contains([]byte("rust")), qt.IsFalse)
}

func TestZipperHeadOverlapRejection(t *testing.T) {
	c := qt.New(t)
	m := buildSample()
	zh := m.ZipperHead()

	wz1, release1, err := zh.WriteZipperAtExclusivePath([]byte("ru"))
	c.Assert(err, qt.IsNil)
	defer release1()

	_, _, err = zh.WriteZipperAtExclusivePath([]byte("rust"))
	c.Assert(err, qt.Equals, ErrOverlap)

	_, release2, err := zh.WriteZipperAtExclusivePath([]byte("rake"))
	c.Assert(err, qt.IsNil)
	defer release2()

	wz1.DescendTo([]byte("by"))
	wz1.SetValue(777)
	v, ok := m.Get([]byte("ruby"))
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 777)
}

func TestZipperHeadReleaseAllowsReacquire(t *testing.T) {
	c := qt.New(t)
	m := buildSample()
	zh := m.ZipperHead()

	_, release, err := zh.WriteZipperAtExclusivePath([]byte("ru"))
	c.Assert(err, qt.IsNil)
	release()

	_, release2, err := zh.WriteZipperAtExclusivePath([]byte("ru"))
	c.Assert(err, qt.IsNil)
	release2()
}

func TestCataCountsValues(t *testing.T) {
	c := qt.New(t)
	m := buildSample()

	count := Cata[int, int](m, func(hasVal bool, _ int, children map[byte]int) int {
		n := 0
		if hasVal {
			n = 1
		}
		for _, c := range children {
			n += c
		}
		return n
	})
	c.Assert(count, qt.Equals, m.ValCount())
}
