package pathmap

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type entry struct {
	Key string
	Val int
}

func entries[V any](m *Map[V], toInt func(V) int) []entry {
	var out []entry
	m.Iter(func(k []byte, v V) bool {
		out = append(out, entry{Key: string(k), Val: toInt(v)})
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// TestJoinMatchesManualUnion cross-checks Join's output against a
// hand-built union, using cmp.Diff to pinpoint any mismatch by key.
func TestJoinMatchesManualUnion(t *testing.T) {
	a := New[int]()
	for i, w := range []string{"rust", "ruby", "rake"} {
		a.Insert([]byte(w), i)
	}
	b := New[int]()
	for i, w := range []string{"ruby", "rocket"} {
		b.Insert([]byte(w), 100+i)
	}

	got := entries(a.Join(b), func(v int) int { return v })
	want := []entry{
		{Key: "rake", Val: 2},
		{Key: "rocket", Val: 101},
		{Key: "ruby", Val: 1}, // deterministic pick on conflict, no Lattice on int
		{Key: "rust", Val: 0},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Join result mismatch (-want +got):\n%s", diff)
	}
}
