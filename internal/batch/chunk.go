package batch

import (
	"errors"
	"fmt"

	"github.com/gogpu/cadscene/internal/packed"
)

// MaxChunkVertices is the 16-bit index-space ceiling for one chunk
// (spec.md: "a chunk is self-contained and can be drawn independently").
const MaxChunkVertices = 65536

// Sentinel errors for the packer's fatal conditions (spec.md §7:
// "invariant violations inside packers ... fatal, indicate a bug in the
// decomposer"), named and wrapped the way the teacher's internal/gpu
// buffer package names its Err* sentinels.
var (
	ErrChunkOverflow       = errors.New("batch: requested vertex count meets or exceeds the 65536-vertex chunk limit")
	ErrReservationMismatch = errors.New("batch: committed vertex count does not match the reservation")
	ErrIndexOutOfRange     = errors.New("batch: index out of range for chunk")
)

// Chunk is one indexed-batch chunk: a vertex buffer (interleaved x,y) and
// a u16 index buffer, whose vertex count never exceeds MaxChunkVertices.
type Chunk struct {
	vertices *packed.Buffer[float32]
	indices  *packed.Buffer[uint16]
}

func newChunk(initialVertices int) *Chunk {
	if initialVertices < 1 {
		initialVertices = 1
	}
	return &Chunk{
		vertices: packed.NewBuffer[float32](initialVertices * 2),
		indices:  packed.NewBuffer[uint16](initialVertices * 2), // average two indices per vertex
	}
}

// VertexCount returns the number of vertices committed to the chunk.
func (c *Chunk) VertexCount() int {
	return c.vertices.Len() / 2
}

// Vertices returns the chunk's interleaved x,y vertex data.
func (c *Chunk) Vertices() []float32 { return c.vertices.Slice() }

// Indices returns the chunk's rebased index data.
func (c *Chunk) Indices() []uint16 { return c.indices.Slice() }

func (c *Chunk) remainingSlack() int {
	return MaxChunkVertices - c.VertexCount()
}

// Reservation is a handle to a pending write into a chunk, returned by
// Packer.Reserve. The caller must append exactly the reserved vertex
// count before calling Commit; any mismatch is a programmer error and
// Commit returns ErrReservationMismatch (spec.md: "writing fewer or more
// vertices than reserved is a programmer error (must fail loudly)").
type Reservation struct {
	chunk    *Chunk
	base     int // vertex index this reservation's data starts at within the chunk
	want     int
	appended int
}

// Base returns the vertex index, within the chunk, this reservation's
// first vertex will occupy. Indices written via AppendIndex are rebased
// against this automatically.
func (r *Reservation) Base() int { return r.base }

// AppendVertex appends one (x,y) vertex to the reservation's chunk.
func (r *Reservation) AppendVertex(x, y float32) {
	r.chunk.vertices.AppendAll(x, y)
	r.appended++
}

// AppendIndex appends a local index (relative to this reservation's first
// vertex) to the chunk, rebased to the chunk's vertex space as
// local_index + chunk_vertex_base per spec.md C2.
func (r *Reservation) AppendIndex(localIndex uint16) error {
	if int(localIndex) >= r.want {
		return fmt.Errorf("%w: local index %d, reservation size %d", ErrIndexOutOfRange, localIndex, r.want)
	}
	r.chunk.indices.Append(localIndex + uint16(r.base))
	return nil
}

// Commit finalizes the reservation, failing if the caller appended a
// different number of vertices than reserved.
func (r *Reservation) Commit() error {
	if r.appended != r.want {
		return fmt.Errorf("%w: reserved %d, appended %d", ErrReservationMismatch, r.want, r.appended)
	}
	return nil
}

// Packer owns a batch's indexed chunks and implements the best-fit chunk
// selection policy of spec.md C2.
type Packer struct {
	chunks []*Chunk
}

// Chunks returns the packer's chunks in allocation order.
func (p *Packer) Chunks() []*Chunk { return p.chunks }

// Reserve finds the existing chunk with the smallest remaining slack that
// can still hold n more vertices (best fit), or allocates a new chunk if
// none fits.
func (p *Packer) Reserve(n int) (*Reservation, error) {
	if n >= MaxChunkVertices {
		return nil, fmt.Errorf("%w: requested %d vertices", ErrChunkOverflow, n)
	}

	var best *Chunk
	bestSlack := -1
	for _, c := range p.chunks {
		slack := c.remainingSlack()
		if slack < n {
			continue
		}
		if best == nil || slack < bestSlack {
			best = c
			bestSlack = slack
		}
	}

	if best == nil {
		best = newChunk(n)
		p.chunks = append(p.chunks, best)
	}

	return &Reservation{chunk: best, base: best.VertexCount(), want: n}, nil
}

// reserveExact allocates a brand-new chunk sized exactly for n vertices,
// used by Merge so that one source chunk always maps to one target chunk
// (spec.md C2: "reserve one target chunk per source chunk so indices stay
// valid").
func (p *Packer) reserveExact(n int) *Reservation {
	c := newChunk(n)
	p.chunks = append(p.chunks, c)
	return &Reservation{chunk: c, base: 0, want: n}
}
