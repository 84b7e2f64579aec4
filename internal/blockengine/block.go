// Package blockengine implements spec.md C5: usage statistics, the
// flattening-versus-instancing decision, block-definition vs.
// instantiation contexts, nested-block inlining, and insertion-transform
// composition.
//
// The usage-counting / threshold-fallback shape (count occurrences, fall
// back to a cheaper strategy past a threshold) follows the same pattern
// the teacher's damage-tracking code uses to decide between incremental
// redraw and a full repaint once too many regions have changed; here the
// "cheaper strategy" is flattening a block's geometry into the scene
// instead of paying per-instance transform overhead for a rarely-reused
// block.
package blockengine

import (
	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/internal/batch"
	"github.com/gogpu/cadscene/internal/geom"
)

// flattenVertexBudget is the useCount*verticesCount ceiling under which a
// multiply-referenced block is still flattened rather than instanced
// (spec.md §4.5, §8 invariant 5).
const flattenVertexBudget = 1024

// Block is one block definition's engine-side bookkeeping (spec.md §3
// "Block object").
type Block struct {
	Name string
	Raw  *dxf.RawBlock

	// UseCount is the number of top-level INSERTs referencing this block
	// directly; it doubles as the block's "instance-count" in spec.md's
	// wording.
	UseCount int
	// NestedUseCount is the number of times this block is inserted from
	// within another block's definition.
	NestedUseCount int

	// VertexCount is the cumulative vertex count across every entity
	// this block's definition pass stores (including inlined nested
	// blocks).
	VertexCount int
	HasGeometry bool

	// Offset is set to the first vertex encountered while building this
	// block's definition; every subsequent vertex is stored relative to
	// it (spec.md "vertex origin discipline").
	Offset    geom.Point
	offsetSet bool

	// Flatten is decided once, after the stats + definition passes
	// complete (spec.md §4.5, §8 invariant 5).
	Flatten bool

	// Registry holds this block's own definition batches (spec.md's
	// "list of pointers to its definition batches", realized as a scratch
	// registry scoped to the block rather than sharing the engine's
	// top-level one). Keeping it private to the block means a flattened
	// block's geometry never has to be removed from anywhere once
	// flattenInsert copies it out: it simply never entered the shared
	// registry serialize walks (spec.md §4.5 / S3).
	Registry *batch.Registry

	built bool // definition pass has completed
}

func newBlock(name string, raw *dxf.RawBlock) *Block {
	return &Block{Name: name, Raw: raw, Registry: batch.NewRegistry()}
}

// storeVertex applies the block's offset discipline: the first vertex
// this block ever sees becomes its Offset, and every vertex (including
// that first one) is returned relative to it.
func (b *Block) storeVertex(p geom.Point) geom.Point {
	if !b.offsetSet {
		b.Offset = p
		b.offsetSet = true
	}
	return p.Sub(b.Offset)
}

// decideFlatten applies spec.md §4.5 / §8 invariant 5:
// flatten <=> hasGeometry && (useCount == 1 || useCount*verticesCount <= 1024).
func (b *Block) decideFlatten() {
	if !b.HasGeometry {
		b.Flatten = false
		return
	}
	b.Flatten = b.UseCount == 1 || b.UseCount*b.VertexCount <= flattenVertexBudget
}
