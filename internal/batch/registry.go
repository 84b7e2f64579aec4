package batch

import "github.com/gogpu/cadscene/internal/ordered"

// Registry is the ordered batch map of spec.md C2: batches are looked up
// by Key, with identical keys collapsing to one batch (interning by
// value), and iteration visits keys in strictly ascending order.
type Registry struct {
	tree *ordered.Tree[Key, *Batch]
}

// NewRegistry creates an empty batch registry.
func NewRegistry() *Registry {
	return &Registry{tree: ordered.New[Key, *Batch](Compare)}
}

// Get returns the batch for key, creating and interning a new one on
// first use.
func (r *Registry) Get(key Key) *Batch {
	return r.tree.GetOrInsert(key, func() *Batch { return newBatch(key) })
}

// Len returns the number of distinct batches registered.
func (r *Registry) Len() int { return r.tree.Len() }

// InOrder visits every batch in ascending key order (spec.md §5, §8
// invariant 7).
func (r *Registry) InOrder(fn func(key Key, b *Batch) bool) {
	r.tree.InOrder(fn)
}

// Batches returns every batch in ascending key order.
func (r *Registry) Batches() []*Batch {
	return r.tree.Values()
}
