package batch

import (
	"errors"
)

// ErrInstancedMerge is returned by Merge when either batch is instanced;
// instanced batches hold per-instance transforms, not raw geometry, so
// there is nothing to flatten into another batch (spec.md §7).
var ErrInstancedMerge = errors.New("batch: cannot merge an instanced batch")

// ErrKindMismatch is returned by Merge when the two batches' kinds are
// not both indexed or both non-indexed (spec.md §7: "indexed-batch merge
// type-mismatch ... fatal").
var ErrKindMismatch = errors.New("batch: merge source/target kind mismatch")

// Transform maps one source (x,y) vertex to its position in the target
// batch, e.g. the block-insertion affine composed by internal/blockengine.
type Transform func(x, y float32) (float32, float32)

// Merge copies every vertex of src into dst, applying transform to each
// (pass nil for an identity copy). Used to flatten a block's definition
// batches into a top-level batch under the instance's own key.
//
// For indexed batches, one target chunk is allocated per source chunk so
// that rebased indices remain valid (spec.md C2). Instanced batches
// cannot be merged.
func Merge(dst, src *Batch, transform Transform) error {
	if dst.Key.Kind.Instanced() || src.Key.Kind.Instanced() {
		return ErrInstancedMerge
	}
	if dst.Key.Kind.Indexed() != src.Key.Kind.Indexed() {
		return ErrKindMismatch
	}

	apply := transform
	if apply == nil {
		apply = func(x, y float32) (float32, float32) { return x, y }
	}

	if !src.Key.Kind.Indexed() {
		verts := src.Vertices.Slice()
		for i := 0; i+1 < len(verts); i += 2 {
			x, y := apply(verts[i], verts[i+1])
			dst.AppendVertex(x, y)
		}
		return nil
	}

	for _, chunk := range src.Packer.Chunks() {
		n := chunk.VertexCount()
		if n == 0 {
			continue
		}
		res := dst.Packer.reserveExact(n)
		verts := chunk.Vertices()
		for i := 0; i+1 < len(verts); i += 2 {
			x, y := apply(verts[i], verts[i+1])
			res.AppendVertex(x, y)
		}
		for _, idx := range chunk.Indices() {
			// chunk.Indices() are already rebased to [0, n); the new
			// reservation's base is 0, so they carry over unchanged.
			if err := res.AppendIndex(idx); err != nil {
				return err
			}
		}
		if err := res.Commit(); err != nil {
			return err
		}
	}
	return nil
}
