package blockengine

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/internal/batch"
	"github.com/gogpu/cadscene/internal/decompose"
	"github.com/gogpu/cadscene/internal/dxfcolor"
	"github.com/gogpu/cadscene/internal/entitysink"
	"github.com/gogpu/cadscene/internal/geom"
	"github.com/gogpu/cadscene/internal/glyphcache"
	"github.com/gogpu/cadscene/internal/ientity"
	"github.com/gogpu/cadscene/internal/patterntable"
	"github.com/gogpu/cadscene/sceneopts"
)

// VertexFinalizer is the scene assembler's vertex-finalization path
// (spec.md §4.9 step 5), reused here for the positions that a flattened
// block instance or a BLOCK_INSTANCE/POINT_INSTANCE transform's
// translation component must land in: it lazily sets the scene origin
// on first call, folds the point into the running bounds, and returns
// the origin-relative position to actually store.
type VertexFinalizer func(geom.Point) geom.Point

// Engine implements spec.md C5 against one drawing's block table and a
// shared top-level batch registry. Each block also keeps its own scratch
// registry for its definition geometry (Block.Registry); only
// non-flattened blocks' definitions are promoted into the shared
// registry (keyed with a non-nil Key.Block), so a flattened block's
// definition never appears there directly — flattenInsert merges it
// straight from the block's own registry into the instance's top-level
// batch instead (spec.md §4.5 / S3).
type Engine struct {
	Drawing  *dxf.Drawing
	Registry *batch.Registry
	Options  sceneopts.Options
	Cache    *glyphcache.Cache
	Patterns *patterntable.Table
	Logger   *slog.Logger
	Finalize VertexFinalizer

	blocks           map[string]*Block
	pointShapeHasDot bool
}

// New creates a block engine over drawing's block table. finalize may be
// nil, in which case positions are left in world space untouched.
func New(drawing *dxf.Drawing, registry *batch.Registry, options sceneopts.Options, cache *glyphcache.Cache, patterns *patterntable.Table, finalize VertexFinalizer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		Drawing:  drawing,
		Registry: registry,
		Options:  options,
		Cache:    cache,
		Patterns: patterns,
		Finalize: finalize,
		Logger:   logger,
		blocks:   make(map[string]*Block, len(drawing.Blocks)),
	}
	for _, name := range drawing.BlockOrder {
		if raw, ok := drawing.Blocks[name]; ok {
			e.blocks[name] = newBlock(name, raw)
		}
	}
	return e
}

// Block returns the engine's bookkeeping for a named block, if known.
func (e *Engine) Block(name string) (*Block, bool) {
	b, ok := e.blocks[name]
	return b, ok
}

// PointShapeHasDot reports whether the synthetic point-shape block, if
// it was ever built, includes the center dot (spec.md §3 scene field
// "pointShapeHasDot").
func (e *Engine) PointShapeHasDot() bool { return e.pointShapeHasDot }

// Prepare runs spec.md §4.5's stats + definition passes: count top-level
// INSERT usage per block, build every block's definition batches
// (recursively inlining nested INSERTs), then decide Flatten for each
// block (spec.md §8 invariant 5).
func (e *Engine) Prepare() error {
	for _, ent := range e.Drawing.Entities {
		if ent.Type == dxf.TypeInsert {
			if b, ok := e.blocks[ent.BlockName]; ok {
				b.UseCount++
			} else {
				e.Logger.Warn("blockengine: INSERT references unknown block", "block", ent.BlockName)
			}
		}
	}

	for _, name := range e.Drawing.BlockOrder {
		b, ok := e.blocks[name]
		if !ok || b.built {
			continue
		}
		if err := e.buildDefinition(b, map[string]bool{name: true}); err != nil {
			return err
		}
	}

	for _, b := range e.blocks {
		b.decideFlatten()
	}

	// Promote non-flattened blocks' definitions into the shared registry
	// so consumers (BLOCK_INSTANCE rendering, serialization) can find
	// them under their Block-scoped key. A flattened block's definition
	// stays in its own scratch registry and is never copied into the
	// shared one directly; flattenInsert reads it from there instead, so
	// its geometry only ever reaches the shared registry already merged
	// under the instance's own top-level key (spec.md §4.5 / S3).
	for _, b := range e.blocks {
		if b.Flatten {
			continue
		}
		if err := e.promoteDefinition(b); err != nil {
			return err
		}
	}
	return nil
}

// promoteDefinition copies b's scratch-registry definition batches into
// the shared registry under their own keys, making them visible to
// BLOCK_INSTANCE rendering and serialization.
func (e *Engine) promoteDefinition(b *Block) error {
	var promoteErr error
	b.Registry.InOrder(func(key batch.Key, src *batch.Batch) bool {
		dst := e.Registry.Get(key)
		if err := batch.Merge(dst, src, nil); err != nil {
			promoteErr = fmt.Errorf("blockengine: promoting block %q definition: %w", b.Name, err)
			return false
		}
		return true
	})
	return promoteErr
}

func (e *Engine) buildDefinition(b *Block, path map[string]bool) error {
	b.built = true
	return e.walkDefinitionEntities(b, b.Raw.Entities, geom.Identity(), Definition, path)
}

func (e *Engine) walkDefinitionEntities(target *Block, entities []dxf.Entity, transform geom.Matrix, mode Mode, path map[string]bool) error {
	for _, ent := range entities {
		if ent.Type == dxf.TypeInsert {
			if err := e.inlineNestedInsert(target, ent, transform, path); err != nil {
				return err
			}
			continue
		}
		if err := e.decomposeIntoBlock(target, ent, transform); err != nil {
			return err
		}
	}
	return nil
}

// inlineNestedInsert resolves a nested INSERT encountered while building
// target's definition, recursively walking the nested block's own
// entities under a composed transform rather than referencing the
// nested block's already-built batches — each nested use gets its own
// transformed copy inlined directly into target (spec.md §4.5 "Nested
// inserts").
func (e *Engine) inlineNestedInsert(target *Block, ins dxf.Entity, parentTransform geom.Matrix, path map[string]bool) error {
	nested, ok := e.blocks[ins.BlockName]
	if !ok {
		e.Logger.Warn("blockengine: unresolved nested block reference", "block", ins.BlockName, "in", target.Name)
		return nil
	}
	if path[nested.Name] {
		e.Logger.Warn("blockengine: recursive block reference skipped", "block", nested.Name)
		return nil
	}
	nested.NestedUseCount++

	insT := insertionTransform(ins, geom.Pt(nested.Raw.BasePoint.X, nested.Raw.BasePoint.Y), geom.Point{}, NestedDefinition)
	composed := parentTransform.Mul(insT)

	nextPath := make(map[string]bool, len(path)+1)
	for k := range path {
		nextPath[k] = true
	}
	nextPath[nested.Name] = true

	return e.walkDefinitionEntities(target, nested.Raw.Entities, composed, NestedDefinition, nextPath)
}

// decomposeIntoBlock runs one non-INSERT raw entity through C4 in block
// context (color sentinel preserved, layer nil — spec.md §4.4) and
// stores every resulting internal entity into target's definition
// batches.
func (e *Engine) decomposeIntoBlock(target *Block, ent dxf.Entity, transform geom.Matrix) error {
	color := dxfcolor.Resolve(ent.HasColorIndex, ent.ColorIndex, ent.Color)
	var lineType *uint32
	if ent.HasLineType {
		id := decompose.LineTypeID(ent.LineType)
		lineType = &id
	}

	res, err := decompose.Decompose(ent, decompose.Context{
		Header:   e.Drawing.Header,
		Options:  e.Options,
		Cache:    e.Cache,
		Patterns: e.Patterns,
		Layer:    nil,
		Color:    color,
		LineType: lineType,
	})
	if err != nil {
		e.Logger.Warn("blockengine: skipping entity inside block definition", "block", target.Name, "type", ent.Type, "err", err)
		return nil
	}

	for _, ie := range res.Entities {
		if err := e.storeEntity(target, ie, transform); err != nil {
			return fmt.Errorf("blockengine: storing entity into block %q: %w", target.Name, err)
		}
	}

	if res.PointInstanceAt != nil {
		// A SHAPE-mode POINT inside a block definition is expanded
		// in place rather than instanced a second time (spec.md leaves
		// nested point-shape instancing inside block definitions
		// unspecified — see DESIGN.md's Open Question decision).
		mode := e.Drawing.Header.PointDisplayMode()
		size := e.Drawing.Header.PointDisplaySize()
		shapeEntities, _ := decompose.PointShapeGeometry(mode, size, color, lineType)
		origin := *res.PointInstanceAt
		for _, se := range shapeEntities {
			se = se.Clone()
			for i := range se.Vertices {
				se.Vertices[i] = se.Vertices[i].Add(origin)
			}
			if err := e.storeEntity(target, se, transform); err != nil {
				return fmt.Errorf("blockengine: storing point-shape geometry into block %q: %w", target.Name, err)
			}
		}
	}

	return nil
}

func (e *Engine) storeEntity(target *Block, ie ientity.Entity, transform geom.Matrix) error {
	_, _, err := entitysink.Push(target.Registry, ie, &target.Name, func(p geom.Point) geom.Point {
		wp := transform.Apply(p)
		stored := target.storeVertex(wp)
		target.VertexCount++
		target.HasGeometry = true
		return stored
	})
	return err
}

// ProcessInsert handles one top-level INSERT entity (spec.md §4.5
// "Flattening vs. instancing"). layer is the target layer name
// (resolved, defaulting to "0" upstream), instanceColor is the INSERT
// entity's own resolved color (replaces BYBLOCK when flattening),
// layerColor is layer's color (replaces BYLAYER when flattening).
func (e *Engine) ProcessInsert(ins dxf.Entity, layer *string, instanceColor int32, layerColor int32, lineType *uint32) error {
	block, ok := e.blocks[ins.BlockName]
	if !ok {
		e.Logger.Warn("blockengine: unresolved top-level block reference", "block", ins.BlockName)
		return nil
	}

	t := insertionTransform(ins, geom.Pt(block.Raw.BasePoint.X, block.Raw.BasePoint.Y), block.Offset, Instantiation)

	if block.Flatten {
		return e.flattenInsert(block, t, layer, instanceColor, layerColor)
	}
	return e.instanceInsert(block, t, layer, instanceColor, lineType)
}

func (e *Engine) flattenInsert(block *Block, t geom.Matrix, layer *string, instanceColor, layerColor int32) error {
	var mergeErr error
	block.Registry.InOrder(func(srcKey batch.Key, srcBatch *batch.Batch) bool {
		targetColor := dxfcolor.DereferenceInstance(srcKey.Color, instanceColor, layerColor)
		dstKey := batch.NewKey(layer, nil, srcKey.Kind, targetColor, srcKey.LineType)
		dstBatch := e.Registry.Get(dstKey)

		transform := func(x, y float32) (float32, float32) {
			wp := t.Apply(geom.Pt(float64(x), float64(y)))
			if e.Finalize != nil {
				wp = e.Finalize(wp)
			}
			return float32(wp.X), float32(wp.Y)
		}
		if err := batch.Merge(dstBatch, srcBatch, transform); err != nil {
			mergeErr = fmt.Errorf("blockengine: flattening block %q: %w", block.Name, err)
			return false
		}
		return true
	})
	return mergeErr
}

func (e *Engine) instanceInsert(block *Block, t geom.Matrix, layer *string, instanceColor int32, lineType *uint32) error {
	key := batch.NewKey(layer, &block.Name, batch.KindBlockInstance, instanceColor, lineType)
	b := e.Registry.Get(key)
	b.AppendInstance(e.finalizeRow(t))
	return nil
}

// finalizeRow runs t's translation component through Finalize, leaving
// the linear part untouched (only positions are origin-relative in the
// scene's coordinate space; the rotation/scale block of an instance
// transform is unaffected by a pure translation of the coordinate
// system).
func (e *Engine) finalizeRow(t geom.Matrix) [6]float32 {
	m := t.Row32()
	if e.Finalize == nil {
		return m
	}
	shifted := e.Finalize(geom.Pt(float64(m[2]), float64(m[5])))
	m[2], m[5] = float32(shifted.X), float32(shifted.Y)
	return m
}

// EnsurePointShapeBlock lazily builds the synthetic __point_shape block
// definition from the drawing's $PDMODE/$PDSIZE (spec.md §4.4: "a
// synthetic block ... whose definition is built lazily from the current
// mode"). $PDMODE/$PDSIZE are global header variables, so the block is
// built once regardless of which POINT entity triggers it.
func (e *Engine) EnsurePointShapeBlock() (*Block, error) {
	name := decompose.PointShapeBlockName
	if b, ok := e.blocks[name]; ok {
		return b, nil
	}

	mode := e.Drawing.Header.PointDisplayMode()
	size := e.Drawing.Header.PointDisplaySize()
	shapeEntities, hasDot := decompose.PointShapeGeometry(mode, size, dxfcolor.ByBlock, nil)
	e.pointShapeHasDot = hasDot

	b := newBlock(name, &dxf.RawBlock{Name: name})
	b.built = true
	b.Flatten = false // POINT_INSTANCE is always instanced, never flattened
	e.blocks[name] = b

	for _, se := range shapeEntities {
		if err := e.storeEntity(b, se, geom.Identity()); err != nil {
			return b, fmt.Errorf("blockengine: building point-shape block: %w", err)
		}
	}

	// Built after Prepare()'s own promotion pass already ran, so this
	// block's (never-flattened) definition has to be promoted here too.
	if err := e.promoteDefinition(b); err != nil {
		return b, err
	}
	return b, nil
}

// PushPointInstance records one SHAPE-mode POINT entity's world position
// as a POINT_INSTANCE transform (spec.md §4.4: "the point's world
// position becomes the instance translation").
func (e *Engine) PushPointInstance(pos geom.Point, layer *string, color int32, lineType *uint32) error {
	block, err := e.EnsurePointShapeBlock()
	if err != nil {
		return err
	}
	key := batch.NewKey(layer, &block.Name, batch.KindPointInstance, color, lineType)
	b := e.Registry.Get(key)
	b.AppendInstance(e.finalizeRow(geom.Translate(pos.X, pos.Y)))
	return nil
}
