package scene

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/internal/batch"
	"github.com/gogpu/cadscene/internal/blockengine"
	"github.com/gogpu/cadscene/internal/decompose"
	"github.com/gogpu/cadscene/internal/dxfcolor"
	"github.com/gogpu/cadscene/internal/entitysink"
	"github.com/gogpu/cadscene/internal/geom"
	"github.com/gogpu/cadscene/internal/glyphcache"
	"github.com/gogpu/cadscene/internal/patterntable"
	"github.com/gogpu/cadscene/sceneopts"
)

// Config configures a Builder (spec.md §6 "Options" plus the font/pattern
// collaborators named in §6's external-interfaces list).
type Config struct {
	Options sceneopts.Options

	// Fonts are consulted in order for every glyph lookup (spec.md §6
	// "Font interface"); nil means every glyph is reported missing.
	Fonts            []glyphcache.Face
	GlyphCacheConfig glyphcache.Config

	// Patterns resolves named HATCH patterns (spec.md §6 "Pattern
	// table"); nil falls back to each HATCH entity's own inline
	// definition lines.
	Patterns *patterntable.Table

	// Logger receives the recovered, non-fatal warnings of spec.md §7
	// ("data anomalies ... recovered locally ... and logging a
	// warning"). Defaults to slog.Default().
	Logger *slog.Logger
}

// Builder implements spec.md C9. One Builder builds exactly one Scene;
// its internal state (registry, running bounds/origin) is not reusable
// across builds (spec.md §3 "Lifecycle": "serialization ... is
// destructive").
type Builder struct {
	cfg    Config
	logger *slog.Logger

	registry *batch.Registry
	cache    *glyphcache.Cache
	engine   *blockengine.Engine

	origin    geom.Point
	originSet bool
	bounds    Bounds

	hasMissingChars bool
	layers          []LayerInfo
}

// NewBuilder creates a Builder from cfg, filling in defaults.
func NewBuilder(cfg Config) *Builder {
	cfg.Options = cfg.Options.WithDefaults()
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Builder{cfg: cfg, logger: cfg.Logger}
}

// Build runs the full pipeline over drawing (spec.md §4.9 "Scene
// assembler"): register layers, prepare block definitions and flatten
// decisions (C5), walk the top-level entity stream in order, then
// serialize every batch into the three packed buffers.
func (b *Builder) Build(drawing *dxf.Drawing) (*Scene, error) {
	b.registry = batch.NewRegistry()
	b.cache = glyphcache.New(b.cfg.Fonts, b.cfg.GlyphCacheConfig)
	b.origin = geom.Point{}
	b.originSet = false
	b.bounds = Bounds{}
	b.hasMissingChars = false

	b.registerLayers(drawing)

	b.engine = blockengine.New(drawing, b.registry, b.cfg.Options, b.cache, b.cfg.Patterns, b.finalizeVertex, b.logger)
	if err := b.engine.Prepare(); err != nil {
		return nil, fmt.Errorf("scene: preparing block definitions: %w", err)
	}

	for _, ent := range drawing.Entities {
		if err := b.processTopLevel(ent, drawing); err != nil {
			return nil, err
		}
	}

	b.hasMissingChars = b.hasMissingChars || b.cache.HasMissingChars()

	return b.serialize(), nil
}

func (b *Builder) registerLayers(drawing *dxf.Drawing) {
	names := make([]string, 0, len(drawing.Tables.Layer.Layers))
	for name := range drawing.Tables.Layer.Layers {
		names = append(names, name)
	}
	sort.Strings(names)
	b.layers = make([]LayerInfo, 0, len(names))
	for _, name := range names {
		l := drawing.Tables.Layer.Layers[name]
		b.layers = append(b.layers, LayerInfo{Name: l.Name, Color: l.Color})
	}
}

// finalizeVertex implements spec.md §4.9 step 5: the first vertex this
// builder ever sees (outside a block definition) becomes the scene
// origin; bounds are tracked in world space, and the returned value is
// the origin-relative position actually stored.
func (b *Builder) finalizeVertex(p geom.Point) geom.Point {
	if !b.originSet {
		b.origin = p
		b.originSet = true
		b.bounds = Bounds{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y}
	} else {
		if p.X < b.bounds.MinX {
			b.bounds.MinX = p.X
		}
		if p.X > b.bounds.MaxX {
			b.bounds.MaxX = p.X
		}
		if p.Y < b.bounds.MinY {
			b.bounds.MinY = p.Y
		}
		if p.Y > b.bounds.MaxY {
			b.bounds.MaxY = p.Y
		}
	}
	return p.Sub(b.origin)
}

// resolvedLayerAndColor resolves an entity's target layer name (falling
// back to "0") and its dereferenced color (spec.md C10: BYLAYER/BYBLOCK
// resolve to the layer color outside any block context).
func (b *Builder) resolvedLayerAndColor(ent dxf.Entity, drawing *dxf.Drawing) (string, dxf.Layer, int32) {
	name := ent.Layer
	if name == "" {
		name = "0"
	}
	layer := drawing.Layer(name)
	color := dxfcolor.Dereference(dxfcolor.Resolve(ent.HasColorIndex, ent.ColorIndex, ent.Color), int32(layer.Color))
	return name, layer, color
}

func lineTypeOf(ent dxf.Entity) *uint32 {
	if !ent.HasLineType {
		return nil
	}
	id := decompose.LineTypeID(ent.LineType)
	return &id
}

func (b *Builder) processTopLevel(ent dxf.Entity, drawing *dxf.Drawing) error {
	name, layer, color := b.resolvedLayerAndColor(ent, drawing)
	lineType := lineTypeOf(ent)

	if ent.Type == dxf.TypeInsert {
		return b.engine.ProcessInsert(ent, &name, color, int32(layer.Color), lineType)
	}

	res, err := decompose.Decompose(ent, decompose.Context{
		Header:   drawing.Header,
		Options:  b.cfg.Options,
		Cache:    b.cache,
		Patterns: b.cfg.Patterns,
		Layer:    &name,
		Color:    color,
		LineType: lineType,
	})
	if err != nil {
		b.logger.Warn("scene: skipping unhandled entity", "type", ent.Type, "err", err)
		return nil
	}

	for _, ie := range res.Entities {
		if _, _, err := entitysink.Push(b.registry, ie, nil, b.finalizeVertex); err != nil {
			return fmt.Errorf("scene: storing %s entity: %w", ent.Type, err)
		}
	}

	if res.PointInstanceAt != nil {
		if err := b.engine.PushPointInstance(*res.PointInstanceAt, &name, color, lineType); err != nil {
			return fmt.Errorf("scene: pushing point-shape instance: %w", err)
		}
	}

	return nil
}
