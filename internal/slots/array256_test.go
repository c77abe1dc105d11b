package slots

import "testing"

func TestInsertGetDelete(t *testing.T) {
	t.Parallel()
	var a Array256[string]

	if a.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", a.Len())
	}

	a.InsertAt(5, "five")
	a.InsertAt(200, "two-hundred")
	a.InsertAt(1, "one")

	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}

	v, ok := a.Get(5)
	if !ok || v != "five" {
		t.Errorf("Get(5) = (%q, %v), want (\"five\", true)", v, ok)
	}

	if _, ok := a.Get(6); ok {
		t.Errorf("Get(6) ok = true, want false")
	}

	existed := a.InsertAt(5, "FIVE")
	if !existed {
		t.Errorf("InsertAt(5, ...) existed = false, want true")
	}
	v, _ = a.Get(5)
	if v != "FIVE" {
		t.Errorf("Get(5) after overwrite = %q, want FIVE", v)
	}

	dv, existed := a.DeleteAt(1)
	if !existed || dv != "one" {
		t.Errorf("DeleteAt(1) = (%q, %v), want (\"one\", true)", dv, existed)
	}
	if a.Len() != 2 {
		t.Fatalf("Len() after delete = %d, want 2", a.Len())
	}
	if _, ok := a.Get(1); ok {
		t.Errorf("Get(1) after delete: ok = true, want false")
	}
}

func TestCopyIsIndependent(t *testing.T) {
	t.Parallel()
	var a Array256[int]
	a.InsertAt(3, 3)
	a.InsertAt(9, 9)

	b := a.Copy()
	b.InsertAt(3, 300)
	b.DeleteAt(9)

	v, _ := a.Get(3)
	if v != 3 {
		t.Errorf("original mutated through copy: Get(3) = %d, want 3", v)
	}
	if _, ok := a.Get(9); !ok {
		t.Errorf("original mutated through copy: Get(9) missing")
	}
}

func TestMustSetPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Errorf("MustSet on Array256 did not panic")
		}
	}()
	var a Array256[int]
	a.MustSet(0)
}
