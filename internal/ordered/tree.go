// Package ordered implements the balanced associative container required
// by spec.md C11: find-by-key, insert, and in-order traversal under a
// caller-supplied total order, with no delete operation. It backs the
// batch registry (C2).
//
// No example repo in the retrieved pack ships an ordered-map library (the
// teacher's own cache/sharded.go is a hash-sharded LRU, which cannot give
// the deterministic ascending-key iteration the spec requires — see
// spec.md §5 "Determinism": batch iteration must be in key order). This is
// therefore implemented directly as a left-leaning red-black tree rather
// than reached for the stdlib-only fallback of an unordered map: it is the
// one data structure the spec names that the pack genuinely has no
// reusable library for. See DESIGN.md for the per-dependency justification
// this entry requires.
package ordered

// Compare reports whether a should sort before b (<0), equal (0), or
// after b (>0).
type Compare[K any] func(a, b K) int

// node is a left-leaning red-black tree node.
type node[K, V any] struct {
	key         K
	value       V
	left, right *node[K, V]
	red         bool
}

// Tree is an ordered map keyed by K with values V, ordered by a
// caller-supplied Compare function.
type Tree[K, V any] struct {
	root *node[K, V]
	less Compare[K]
	size int
}

// New creates an empty Tree ordered by cmp.
func New[K, V any](cmp Compare[K]) *Tree[K, V] {
	return &Tree[K, V]{less: cmp}
}

// Len returns the number of entries.
func (t *Tree[K, V]) Len() int { return t.size }

// Get returns the value stored for key and whether it was found.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	n := t.root
	for n != nil {
		c := t.less(key, n.key)
		switch {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

// GetOrInsert returns the existing value for key if present; otherwise it
// inserts makeValue() under key and returns that. This is the interning
// lookup the batch registry uses (spec.md C2: "identical tuples collapse
// to one batch").
func (t *Tree[K, V]) GetOrInsert(key K, makeValue func() V) V {
	if v, ok := t.Get(key); ok {
		return v
	}
	v := makeValue()
	t.Insert(key, v)
	return v
}

// Insert sets key to value, inserting a new entry or overwriting an
// existing one.
func (t *Tree[K, V]) Insert(key K, value V) {
	var inserted bool
	t.root, inserted = t.insert(t.root, key, value)
	t.root.red = false
	if inserted {
		t.size++
	}
}

func (t *Tree[K, V]) insert(n *node[K, V], key K, value V) (*node[K, V], bool) {
	if n == nil {
		return &node[K, V]{key: key, value: value, red: true}, true
	}

	var inserted bool
	c := t.less(key, n.key)
	switch {
	case c < 0:
		n.left, inserted = t.insert(n.left, key, value)
	case c > 0:
		n.right, inserted = t.insert(n.right, key, value)
	default:
		n.value = value
		inserted = false
	}

	if isRed(n.right) && !isRed(n.left) {
		n = rotateLeft(n)
	}
	if isRed(n.left) && isRed(n.left.left) {
		n = rotateRight(n)
	}
	if isRed(n.left) && isRed(n.right) {
		flipColors(n)
	}
	return n, inserted
}

func isRed[K, V any](n *node[K, V]) bool {
	return n != nil && n.red
}

func rotateLeft[K, V any](n *node[K, V]) *node[K, V] {
	r := n.right
	n.right = r.left
	r.left = n
	r.red = n.red
	n.red = true
	return r
}

func rotateRight[K, V any](n *node[K, V]) *node[K, V] {
	l := n.left
	n.left = l.right
	l.right = n
	l.red = n.red
	n.red = true
	return l
}

func flipColors[K, V any](n *node[K, V]) {
	n.red = !n.red
	n.left.red = !n.left.red
	n.right.red = !n.right.red
}

// InOrder calls fn for every entry in ascending key order. Iteration
// stops early if fn returns false.
func (t *Tree[K, V]) InOrder(fn func(key K, value V) bool) {
	inOrder(t.root, fn)
}

func inOrder[K, V any](n *node[K, V], fn func(key K, value V) bool) bool {
	if n == nil {
		return true
	}
	if !inOrder(n.left, fn) {
		return false
	}
	if !fn(n.key, n.value) {
		return false
	}
	return inOrder(n.right, fn)
}

// Keys returns all keys in ascending order.
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	t.InOrder(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values returns all values in ascending key order.
func (t *Tree[K, V]) Values() []V {
	values := make([]V, 0, t.size)
	t.InOrder(func(_ K, v V) bool {
		values = append(values, v)
		return true
	})
	return values
}
