package prefixscan

import "testing"

func TestOverlap(t *testing.T) {
	t.Parallel()
	cases := []struct {
		a, b []byte
		want int
	}{
		{[]byte("rust"), []byte("rustacean"), 4},
		{[]byte("rustacean"), []byte("rust"), 4},
		{[]byte("ruby"), []byte("rake"), 1},
		{[]byte(""), []byte("abc"), 0},
		{[]byte("abc"), []byte("abc"), 3},
		{[]byte("abcdefgh"), []byte("abcdefgx"), 7},
		{[]byte("abcdefghij"), []byte("abcdefghij"), 10},
	}
	for _, c := range cases {
		if got := Overlap(c.a, c.b); got != c.want {
			t.Errorf("Overlap(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestOverlapNeverReadsPastShorter(t *testing.T) {
	t.Parallel()
	short := []byte("ab")
	long := append([]byte("ab"), make([]byte, 64)...)
	if n := Overlap(short, long); n != len(short) {
		t.Errorf("Overlap(short, long) = %d, want %d", n, len(short))
	}
}
