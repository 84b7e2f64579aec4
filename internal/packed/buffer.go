// Package packed implements the typed growable buffer primitive (spec C1)
// that every downstream batch and chunk builds on: vertices (f32), indices
// (u16), and instance transforms (f32) are all accumulated through one of
// these before being copied into the scene's final contiguous regions.
//
// The growth discipline mirrors the teacher repo's buffer/cache sizing
// convention (capacity doubles from an explicit minimum, see
// internal/gpu/buffer.go's BufferDescriptor and text/glyph_cache.go's
// default-then-override config pattern) generalized from a single element
// kind to any of u8/u16/u32/f32/f64 via Go generics.
package packed

// minCapacity is the floor on any buffer's initial capacity, regardless of
// what the caller requests.
const minCapacity = 16

// Number is the set of element kinds a Buffer may hold.
type Number interface {
	~uint8 | ~uint16 | ~uint32 | ~float32 | ~float64
}

// Buffer is a dynamically grown typed sequence. Appends never move
// previously appended elements within the same growth epoch; a returned
// append position (from Append) remains stable until the buffer grows
// again, per spec.md §4.1.
type Buffer[T Number] struct {
	data []T
}

// NewBuffer creates an empty buffer with at least the given initial
// capacity (minimum 16).
func NewBuffer[T Number](initialCapacity int) *Buffer[T] {
	if initialCapacity < minCapacity {
		initialCapacity = minCapacity
	}
	return &Buffer[T]{data: make([]T, 0, initialCapacity)}
}

// Append adds v to the end of the buffer and returns its index.
func (b *Buffer[T]) Append(v T) int {
	b.Reserve(1)
	b.data = append(b.data, v)
	return len(b.data) - 1
}

// AppendAll appends every element of vs, returning the index of the first
// appended element.
func (b *Buffer[T]) AppendAll(vs ...T) int {
	start := len(b.data)
	b.Reserve(len(vs))
	b.data = append(b.data, vs...)
	return start
}

// Reserve grows the backing array so that at least n more elements can be
// appended without reallocating, doubling capacity as needed.
func (b *Buffer[T]) Reserve(n int) {
	need := len(b.data) + n
	if need <= cap(b.data) {
		return
	}
	newCap := cap(b.data)
	if newCap < minCapacity {
		newCap = minCapacity
	}
	for newCap < need {
		newCap *= 2
	}
	grown := make([]T, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// At returns the element at index i.
func (b *Buffer[T]) At(i int) T {
	return b.data[i]
}

// Set overwrites the element at index i.
func (b *Buffer[T]) Set(i int, v T) {
	b.data[i] = v
}

// Len returns the number of appended elements.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Slice returns the live backing slice (not a copy); callers must not
// retain it across further Append calls on the same buffer.
func (b *Buffer[T]) Slice() []T {
	return b.data
}

// CopyRangeTo writes b's full contents into dst starting at dstOffset.
// dst must have enough room (len(dst) >= dstOffset+b.Len()).
func (b *Buffer[T]) CopyRangeTo(dst []T, dstOffset int) {
	copy(dst[dstOffset:], b.data)
}
