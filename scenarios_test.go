package pathmap

import (
	"sort"
	"testing"

	qt "github.com/frankban/quicktest"
)

// These tests implement the literal end-to-end scenarios S1-S6 from
// spec.md section 8, word for word against the keys and values the
// spec spells out, so a failure here points at the exact scenario that
// regressed rather than at a paraphrase of it.

func buildArrowBow() *Map[int] {
	m := New[int]()
	for i, w := range []string{
		"arrow", "bow", "cannon", "roman", "romane", "romanus",
		"romulus", "rubens", "ruber", "rubicon", "rubicundus", "rom'i",
	} {
		m.Insert([]byte(w), i)
	}
	return m
}

func TestScenarioS1GraftUnderRo(t *testing.T) {
	c := qt.New(t)
	m := buildArrowBow()
	c.Assert(m.ValCount(), qt.Equals, 12)

	src := New[int]()
	for i, w := range []string{"ad", "d", "ll", "of", "om", "ot", "ugh", "und"} {
		src.Insert([]byte(w), 1000+i)
	}
	srz := src.ReadZipper()

	wz := m.WriteZipperAtPath([]byte("ro"))
	wz.Graft(srz.origin.rc.Clone(), srz.origin.hasVal, srz.origin.val)

	v, ok := m.Get([]byte("arrow"))
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 0)

	_, ok = m.Get([]byte("roman"))
	c.Assert(ok, qt.IsFalse)

	v, ok = m.Get([]byte("road"))
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 1000)

	v, ok = m.Get([]byte("rubens"))
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 7)
}

func TestScenarioS2JoinUnderRo(t *testing.T) {
	c := qt.New(t)
	a := buildArrowBow()
	b := New[int]()
	for i, w := range []string{"road", "rod", "roll", "roof", "room", "root", "rough", "round"} {
		b.Insert([]byte(w), 1000+i)
	}

	wzA := a.WriteZipperAtPath([]byte("ro"))
	rzB, ok := b.ReadZipperAtPath([]byte("ro"))
	c.Assert(ok, qt.IsTrue)

	wzA.Join(rzB.origin.rc, rzB.origin.hasVal, rzB.origin.val)

	c.Assert(a.ValCount(), qt.Equals, 20)

	v, ok := a.Get([]byte("roman"))
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 3)

	v, ok = a.Get([]byte("road"))
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 1000)
}

func TestScenarioS3ZipperHeadExclusivity(t *testing.T) {
	c := qt.New(t)
	m := New[int]()
	for i, k := range []string{
		"123:dog:Bob:Fido", "123:cat:Jim:Felix",
		"123:dog:Pam:Bandit", "123:owl:Sue:Cornelius",
	} {
		m.Insert([]byte(k), i)
	}

	zh := m.ZipperHead()

	_, releaseDog, err := zh.WriteZipperAtExclusivePath([]byte("123:dog:"))
	c.Assert(err, qt.IsNil)
	_, releaseCat, err := zh.WriteZipperAtExclusivePath([]byte("123:cat:"))
	c.Assert(err, qt.IsNil)

	_, _, err = zh.WriteZipperAtExclusivePath([]byte("123:"))
	c.Assert(err, qt.Equals, ErrOverlap)

	releaseCat()

	_, releaseCa, err := zh.WriteZipperAtExclusivePath([]byte("123:ca"))
	c.Assert(err, qt.IsNil)

	releaseDog()
	releaseCa()
}

func TestScenarioS4DropHead(t *testing.T) {
	c := qt.New(t)
	m := New[int]()
	for i, k := range []string{
		"123:abc:Bob", "123:def:Jim", "123:ghi:Pam", "123:jkl:Sue",
		"123:dog:Bob:Fido", "123:cat:Jim:Felix",
		"123:dog:Pam:Bandit", "123:owl:Sue:Cornelius",
	} {
		m.Insert([]byte(k), i)
	}

	wz := m.WriteZipperAtPath([]byte("123:"))
	c.Assert(wz.DropHead(4), qt.IsTrue)

	var got []string
	m.Iter(func(k []byte, _ int) bool {
		got = append(got, string(k))
		return true
	})
	sort.Strings(got)

	want := []string{
		"123:Bob", "123:Bob:Fido", "123:Jim", "123:Jim:Felix",
		"123:Pam", "123:Pam:Bandit", "123:Sue", "123:Sue:Cornelius",
	}
	sort.Strings(want)
	c.Assert(got, qt.DeepEquals, want)
}

func TestScenarioS5MeetYieldsSingleSharedKey(t *testing.T) {
	c := qt.New(t)
	a := New[int]()
	for i, w := range []string{"12345", "1aaaa", "1bbbb", "1cccc", "1dddd"} {
		a.Insert([]byte(w), i)
	}
	b := New[int]()
	b.Insert([]byte("12345"), 100)
	b.Insert([]byte("1zzzz"), 101)

	wzB := b.WriteZipper()
	status := wzB.Meet(a.root.rc, a.root.hasVal, a.root.val)

	c.Assert(status, qt.Equals, StatusElement)
	var gotKeys []string
	b.Iter(func(k []byte, _ int) bool {
		gotKeys = append(gotKeys, string(k))
		return true
	})
	c.Assert(gotKeys, qt.DeepEquals, []string{"12345"})
}

func TestScenarioS6CartesianGraft(t *testing.T) {
	c := qt.New(t)

	top := New[int]()
	for i := 0; i < 4; i++ {
		top.Insert([]byte{'X', '-', 't', 'o', 'p', byte('0' + i)}, i)
	}

	stems := []byte{'k', 'p'}
	midKeys := []string{"one", "two"}

	mid := New[int]()
	for _, mk := range midKeys {
		wz := mid.WriteZipperAtPath([]byte(mk))
		wz.GraftMap(top.Clone())
	}
	c.Assert(mid.ValCount(), qt.Equals, len(midKeys)*4)

	topLevel := New[int]()
	for _, s := range stems {
		wz := topLevel.WriteZipperAtPath([]byte{s})
		wz.GraftMap(mid.Clone())
	}

	c.Assert(topLevel.ValCount(), qt.Equals, len(stems)*len(midKeys)*4)

	rz, ok := topLevel.ReadZipperAtPath([]byte{'k'})
	c.Assert(ok, qt.IsTrue)
	sub, ok := rz.MakeMap()
	c.Assert(ok, qt.IsTrue)
	c.Assert(sub.ValCount(), qt.Equals, len(midKeys)*4)
	for _, mk := range midKeys {
		for i := 0; i < 4; i++ {
			key := append([]byte(mk), 'X', '-', 't', 'o', 'p', byte('0'+i))
			c.Assert(sub.Contains(key), qt.IsTrue)
		}
	}
}

// TestInvariantZipperAscendDescendIdentity covers spec.md §8 invariant 3:
// descend_to(p); ascend(len(p)) is the identity on the focus.
func TestInvariantZipperAscendDescendIdentity(t *testing.T) {
	c := qt.New(t)
	m := buildArrowBow()
	rz := m.ReadZipper()
	rz.DescendTo([]byte("roman"))
	rz.Ascend(len("roman"))
	c.Assert(string(rz.Path()), qt.Equals, "")

	rz2 := m.ReadZipper()
	rz2.DescendTo([]byte("rom"))
	rz2.DescendTo([]byte("an"))
	rz3 := m.ReadZipper()
	rz3.DescendTo([]byte("roman"))
	c.Assert(string(rz2.Path()), qt.Equals, string(rz3.Path()))
	v2, ok2 := rz2.Value()
	v3, ok3 := rz3.Value()
	c.Assert(ok2, qt.Equals, ok3)
	c.Assert(v2, qt.Equals, v3)
}

// TestInvariantAlgebraicLaws covers spec.md §8 invariant 7: commutativity
// and idempotence of join/meet, subtract(x,x)==empty, restrict(x,x)==x.
func TestInvariantAlgebraicLaws(t *testing.T) {
	c := qt.New(t)
	a := buildArrowBow()
	b := New[int]()
	for i, w := range []string{"ruby", "rocket", "cannon"} {
		b.Insert([]byte(w), 100+i)
	}

	c.Assert(a.Join(b).Equal(b.Join(a)), qt.IsTrue)
	c.Assert(a.Meet(b).Equal(b.Meet(a)), qt.IsTrue)
	c.Assert(a.Join(a).Equal(a), qt.IsTrue)
	c.Assert(a.Meet(a).Equal(a), qt.IsTrue)
	c.Assert(a.Subtract(a).IsEmpty(), qt.IsTrue)
	c.Assert(a.Restrict(a).Equal(a), qt.IsTrue)

	join := a.Join(b)
	meet := a.Meet(b)
	var missing bool
	meet.Iter(func(k []byte, _ int) bool {
		if !join.Contains(k) {
			missing = true
			return false
		}
		return true
	})
	c.Assert(missing, qt.IsFalse)
}

// TestInvariantCloneSharesUntouchedStructure covers spec.md §8
// invariant 9: after m2 := m1.Clone(); m2.Insert(...), any path not
// touched by the insert resolves to nodes pointer-equal between m1 and
// m2 (clone-on-write correctness).
func TestInvariantCloneSharesUntouchedStructure(t *testing.T) {
	c := qt.New(t)
	m1 := buildArrowBow()

	m2 := m1.Clone()
	m2.Insert([]byte("roman"), 999)

	rz1, ok := m1.ReadZipperAtPath([]byte("rub"))
	c.Assert(ok, qt.IsTrue)
	rz2, ok := m2.ReadZipperAtPath([]byte("rub"))
	c.Assert(ok, qt.IsTrue)
	c.Assert(Same(rz1.origin.rc, rz2.origin.rc), qt.IsTrue)

	v1, _ := m1.Get([]byte("roman"))
	c.Assert(v1, qt.Equals, 3)
	v2, _ := m2.Get([]byte("roman"))
	c.Assert(v2, qt.Equals, 999)
}
