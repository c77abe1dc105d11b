package pathmap

import (
	"encoding/binary"
	"sort"
	"testing"

	qt "github.com/frankban/quicktest"
)

func keys[V any](m *Map[V]) []string {
	var out []string
	m.Iter(func(k []byte, _ V) bool {
		out = append(out, string(k))
		return true
	})
	sort.Strings(out)
	return out
}

func TestInsertGetRemove(t *testing.T) {
	c := qt.New(t)
	m := New[int]()

	_, hadOld := m.Insert([]byte("rust"), 1)
	c.Assert(hadOld, qt.IsFalse)

	_, hadOld = m.Insert([]byte("rustacean"), 2)
	c.Assert(hadOld, qt.IsFalse)

	_, hadOld = m.Insert([]byte("ruby"), 3)
	c.Assert(hadOld, qt.IsFalse)

	v, ok := m.Get([]byte("rust"))
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 1)

	v, ok = m.Get([]byte("rustacean"))
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 2)

	_, ok = m.Get([]byte("rus"))
	c.Assert(ok, qt.IsFalse)
	c.Assert(m.ContainsPath([]byte("rus")), qt.IsTrue)

	old, hadOld := m.Insert([]byte("rust"), 100)
	c.Assert(hadOld, qt.IsTrue)
	c.Assert(old, qt.Equals, 1)

	old, hadOld = m.Remove([]byte("rust"))
	c.Assert(hadOld, qt.IsTrue)
	c.Assert(old, qt.Equals, 100)
	c.Assert(m.Contains([]byte("rust")), qt.IsFalse)
	c.Assert(m.Contains([]byte("rustacean")), qt.IsTrue)

	c.Assert(keys(m), qt.DeepEquals, []string{"ruby", "rustacean"})
}

func TestValCountAndIsEmpty(t *testing.T) {
	c := qt.New(t)
	m := New[int]()
	c.Assert(m.IsEmpty(), qt.IsTrue)
	c.Assert(m.ValCount(), qt.Equals, 0)

	m.Insert(nil, 0)
	c.Assert(m.IsEmpty(), qt.IsFalse)
	c.Assert(m.ValCount(), qt.Equals, 1)

	for i, w := range []string{"a", "ab", "abc", "b"} {
		m.Insert([]byte(w), i+1)
	}
	c.Assert(m.ValCount(), qt.Equals, 5)
}

func TestCloneIsIndependent(t *testing.T) {
	c := qt.New(t)
	m := New[int]()
	m.Insert([]byte("x"), 1)

	m2 := m.Clone()
	m2.Insert([]byte("y"), 2)
	m2.Insert([]byte("x"), 99)

	c.Assert(m.Contains([]byte("y")), qt.IsFalse)
	v, _ := m.Get([]byte("x"))
	c.Assert(v, qt.Equals, 1)

	v2, _ := m2.Get([]byte("x"))
	c.Assert(v2, qt.Equals, 99)
}

func TestPromotionAcrossCapacity(t *testing.T) {
	c := qt.New(t)
	m := New[int]()
	for b := 0; b < 32; b++ {
		m.Insert([]byte{byte(b)}, b)
	}
	c.Assert(m.ValCount(), qt.Equals, 32)
	for b := 0; b < 32; b++ {
		v, ok := m.Get([]byte{byte(b)})
		c.Assert(ok, qt.IsTrue)
		c.Assert(v, qt.Equals, b)
	}
}

func TestJoinMeetSubtractRestrict(t *testing.T) {
	c := qt.New(t)
	a := New[int]()
	for i, w := range []string{"rust", "ruby", "rake"} {
		a.Insert([]byte(w), i)
	}
	b := New[int]()
	for i, w := range []string{"ruby", "rocket"} {
		b.Insert([]byte(w), 100+i)
	}

	j := a.Join(b)
	c.Assert(keys(j), qt.DeepEquals, []string{"rake", "rocket", "ruby", "rust"})

	me := a.Meet(b)
	c.Assert(keys(me), qt.DeepEquals, []string{"ruby"})

	s := a.Subtract(b)
	c.Assert(keys(s), qt.DeepEquals, []string{"rake", "rust"})

	r := a.Restrict(b)
	c.Assert(keys(r), qt.DeepEquals, []string{"ruby"})
}

func TestInPlaceAlgebraStatus(t *testing.T) {
	c := qt.New(t)
	a := New[int]()
	a.Insert([]byte("rust"), 1)
	b := New[int]()
	b.Insert([]byte("ruby"), 2)

	c.Assert(a.JoinInto(b), qt.Equals, StatusElement)
	c.Assert(a.Contains([]byte("ruby")), qt.IsTrue)

	empty := New[int]()
	c.Assert(a.MeetInto(empty), qt.Equals, StatusNone)
	c.Assert(a.IsEmpty(), qt.IsTrue)
}

func TestEqual(t *testing.T) {
	c := qt.New(t)
	a := New[int]()
	a.Insert([]byte("rust"), 1)
	a.Insert([]byte("ruby"), 2)

	b := New[int]()
	b.Insert([]byte("ruby"), 2)
	b.Insert([]byte("rust"), 1)

	c.Assert(a.Equal(b), qt.IsTrue)

	b.Insert([]byte("rust"), 99)
	c.Assert(a.Equal(b), qt.IsFalse)

	b.Insert([]byte("rust"), 1)
	b.Insert([]byte("rake"), 3)
	c.Assert(a.Equal(b), qt.IsFalse)
}

func TestRangeBuildsArithmeticSequenceKeys(t *testing.T) {
	c := qt.New(t)
	m := Range[uint16](binary.BigEndian, 10, 20, 2, "x")
	c.Assert(m.ValCount(), qt.Equals, 5)

	for _, n := range []uint16{10, 12, 14, 16, 18} {
		key := make([]byte, 2)
		binary.BigEndian.PutUint16(key, n)
		v, ok := m.Get(key)
		c.Assert(ok, qt.IsTrue)
		c.Assert(v, qt.Equals, "x")
	}

	key := make([]byte, 2)
	binary.BigEndian.PutUint16(key, 20)
	c.Assert(m.Contains(key), qt.IsFalse)

	c.Assert(Range[uint16](binary.BigEndian, 0, 10, 0, "y").IsEmpty(), qt.IsTrue)
}

func TestDumpDoesNotPanic(t *testing.T) {
	m := New[int]()
	m.Insert([]byte("abc"), 1)
	m.Insert([]byte("abd"), 2)
	out := Dump(m, nil)
	qt.New(t).Assert(len(out) > 0, qt.IsTrue)
}
