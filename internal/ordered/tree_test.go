package ordered

import (
	"math/rand"
	"sort"
	"testing"
)

func intCompare(a, b int) int { return a - b }

func TestTreeGetMissingKey(t *testing.T) {
	tr := New[int, string](intCompare)
	if _, ok := tr.Get(1); ok {
		t.Fatal("Get() on empty tree reported found")
	}
}

func TestTreeInsertAndGet(t *testing.T) {
	tr := New[int, string](intCompare)
	tr.Insert(5, "five")
	tr.Insert(1, "one")
	tr.Insert(3, "three")

	if v, ok := tr.Get(3); !ok || v != "three" {
		t.Errorf("Get(3) = %q, %v, want \"three\", true", v, ok)
	}
	if tr.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tr.Len())
	}
}

func TestTreeInsertOverwritesWithoutGrowingSize(t *testing.T) {
	tr := New[int, string](intCompare)
	tr.Insert(1, "a")
	tr.Insert(1, "b")
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
	if v, _ := tr.Get(1); v != "b" {
		t.Errorf("Get(1) = %q, want \"b\"", v)
	}
}

func TestTreeGetOrInsert(t *testing.T) {
	tr := New[int, string](intCompare)
	calls := 0
	make1 := func() string { calls++; return "made" }

	v := tr.GetOrInsert(1, make1)
	if v != "made" || calls != 1 {
		t.Fatalf("first GetOrInsert() = %q, calls = %d", v, calls)
	}
	v = tr.GetOrInsert(1, make1)
	if v != "made" || calls != 1 {
		t.Fatalf("second GetOrInsert() should not call makeValue again, calls = %d", calls)
	}
}

func TestTreeInOrderIsAscending(t *testing.T) {
	tr := New[int, struct{}](intCompare)
	src := rand.New(rand.NewSource(1))
	seen := map[int]bool{}
	for len(seen) < 200 {
		k := src.Intn(10000)
		seen[k] = true
		tr.Insert(k, struct{}{})
	}

	var got []int
	tr.InOrder(func(k int, _ struct{}) bool {
		got = append(got, k)
		return true
	})
	if !sort.IntsAreSorted(got) {
		t.Fatal("InOrder() did not yield ascending keys")
	}
	if len(got) != len(seen) {
		t.Fatalf("InOrder() yielded %d keys, want %d", len(got), len(seen))
	}
}

func TestTreeInOrderStopsEarly(t *testing.T) {
	tr := New[int, struct{}](intCompare)
	for i := 0; i < 10; i++ {
		tr.Insert(i, struct{}{})
	}
	var visited []int
	tr.InOrder(func(k int, _ struct{}) bool {
		visited = append(visited, k)
		return k < 4
	})
	if len(visited) != 5 {
		t.Fatalf("visited %v, want early stop after key 4 (5 entries)", visited)
	}
}

func TestTreeKeysAndValues(t *testing.T) {
	tr := New[int, string](intCompare)
	tr.Insert(2, "b")
	tr.Insert(1, "a")
	tr.Insert(3, "c")

	keys := tr.Keys()
	values := tr.Values()
	wantKeys := []int{1, 2, 3}
	wantValues := []string{"a", "b", "c"}
	for i := range wantKeys {
		if keys[i] != wantKeys[i] {
			t.Errorf("Keys()[%d] = %d, want %d", i, keys[i], wantKeys[i])
		}
		if values[i] != wantValues[i] {
			t.Errorf("Values()[%d] = %q, want %q", i, values[i], wantValues[i])
		}
	}
}
