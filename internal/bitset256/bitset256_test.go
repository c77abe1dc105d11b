package bitset256

import "testing"

func TestSetClearTest(t *testing.T) {
	t.Parallel()
	var s Set
	s.MustSet(0)
	s.MustSet(63)
	s.MustSet(64)
	s.MustSet(255)

	for _, bit := range []uint{0, 63, 64, 255} {
		if !s.Test(bit) {
			t.Errorf("Test(%d) = false, want true", bit)
		}
	}
	if s.Test(1) {
		t.Errorf("Test(1) = true, want false")
	}

	s.MustClear(64)
	if s.Test(64) {
		t.Errorf("Test(64) = true after MustClear, want false")
	}
}

func TestFirstSetLastSet(t *testing.T) {
	t.Parallel()
	var s Set
	if _, ok := s.FirstSet(); ok {
		t.Errorf("FirstSet on empty set: ok = true, want false")
	}

	s.MustSet(5)
	s.MustSet(200)

	first, ok := s.FirstSet()
	if !ok || first != 5 {
		t.Errorf("FirstSet() = (%d, %v), want (5, true)", first, ok)
	}
	last, ok := s.LastSet()
	if !ok || last != 200 {
		t.Errorf("LastSet() = (%d, %v), want (200, true)", last, ok)
	}
}

func TestNextSetPrevSet(t *testing.T) {
	t.Parallel()
	var s Set
	for _, b := range []uint{3, 70, 130, 250} {
		s.MustSet(b)
	}

	got := []uint{}
	b, ok := s.NextSet(0)
	for ok {
		got = append(got, b)
		b, ok = s.NextSet(b + 1)
	}
	want := []uint{3, 70, 130, 250}
	if len(got) != len(want) {
		t.Fatalf("NextSet walk = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NextSet walk[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	prev, ok := s.PrevSet(255)
	if !ok || prev != 250 {
		t.Errorf("PrevSet(255) = (%d, %v), want (250, true)", prev, ok)
	}
}

func TestUnionIntersectionDifference(t *testing.T) {
	t.Parallel()
	var a, b Set
	a.MustSet(1)
	a.MustSet(2)
	b.MustSet(2)
	b.MustSet(3)

	u := a.Union(&b)
	for _, bit := range []uint{1, 2, 3} {
		if !u.Test(bit) {
			t.Errorf("Union missing bit %d", bit)
		}
	}

	i := a.Intersection(&b)
	if !i.Test(2) || i.Test(1) || i.Test(3) {
		t.Errorf("Intersection = %v, want only bit 2 set", i)
	}

	d := a.Difference(&b)
	if !d.Test(1) || d.Test(2) {
		t.Errorf("Difference = %v, want only bit 1 set", d)
	}
}

func TestRank0AndSize(t *testing.T) {
	t.Parallel()
	var s Set
	s.MustSet(5)
	s.MustSet(10)
	s.MustSet(15)

	if r := s.Rank0(10); r != 1 {
		t.Errorf("Rank0(10) = %d, want 1", r)
	}
	if sz := s.Size(); sz != 3 {
		t.Errorf("Size() = %d, want 3", sz)
	}
	if s.IsEmpty() {
		t.Errorf("IsEmpty() = true, want false")
	}
}

func TestAsSlice(t *testing.T) {
	t.Parallel()
	var s Set
	s.MustSet(2)
	s.MustSet(9)
	s.MustSet(200)

	got := s.AsSlice(make([]uint, 0, 3))
	want := []uint{2, 9, 200}
	if len(got) != len(want) {
		t.Fatalf("AsSlice() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AsSlice()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
