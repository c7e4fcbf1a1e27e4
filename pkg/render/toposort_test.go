package render

import (
	"reflect"
	"testing"
)

func TestTopoSortChain(t *testing.T) {
	// 2 before 1 before 0.
	before := [][]int{{1}, {2}, {}}
	got := topoSort(before)
	want := []int{2, 1, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("topoSort = %v, want %v", got, want)
	}
}

func TestTopoSortRespectsAllConstraints(t *testing.T) {
	before := [][]int{{2, 3}, {0}, {}, {2}, {1}}
	got := topoSort(before)
	pos := make(map[int]int, len(got))
	for i, n := range got {
		pos[n] = i
	}
	if len(got) != 5 {
		t.Fatalf("emitted %d nodes, want 5", len(got))
	}
	for node, deps := range before {
		for _, d := range deps {
			if pos[d] > pos[node] {
				t.Errorf("node %d placed before its dependency %d", node, d)
			}
		}
	}
}

func TestTopoSortCycle(t *testing.T) {
	// 0 before 1 before 2 before 0: impossible to satisfy fully, but the
	// sort must terminate, emit every node once, and be repeatable.
	before := [][]int{{2}, {0}, {1}}
	first := topoSort(before)
	if len(first) != 3 {
		t.Fatalf("emitted %d nodes, want 3", len(first))
	}
	seen := map[int]bool{}
	for _, n := range first {
		if seen[n] {
			t.Fatalf("node %d emitted twice", n)
		}
		seen[n] = true
	}
	for i := 0; i < 10; i++ {
		if again := topoSort(before); !reflect.DeepEqual(again, first) {
			t.Fatalf("cycle resolution not deterministic: %v vs %v", again, first)
		}
	}
}

func TestTopoSortUnrelated(t *testing.T) {
	before := [][]int{{}, {}, {}}
	got := topoSort(before)
	if len(got) != 3 {
		t.Errorf("unrelated nodes must all be emitted, got %v", got)
	}
}
