package dxf

// EntityType tags the DXF entity variant. Field names and group-code
// derived attributes used below are fixed by spec.md §6.
type EntityType string

const (
	TypeLine      EntityType = "LINE"
	TypePolyline  EntityType = "POLYLINE"
	TypeLWPolyline EntityType = "LWPOLYLINE"
	TypeArc       EntityType = "ARC"
	TypeCircle    EntityType = "CIRCLE"
	TypeEllipse   EntityType = "ELLIPSE"
	TypePoint     EntityType = "POINT"
	TypeSpline    EntityType = "SPLINE"
	TypeText      EntityType = "TEXT"
	TypeMText     EntityType = "MTEXT"
	Type3DFace    EntityType = "3DFACE"
	TypeSolid     EntityType = "SOLID"
	TypeHatch     EntityType = "HATCH"
	TypeInsert    EntityType = "INSERT"
)

// PolylineVertex is one vertex of a POLYLINE/LWPOLYLINE, carrying the
// optional bulge and curve/spline-fit flags spec.md §6 names.
type PolylineVertex struct {
	X, Y               float64
	Bulge              float64
	HasBulge           bool
	SplineVertex       bool
	CurveFittingVertex bool
}

// HatchBoundaryLoop is one closed boundary loop of a HATCH, already
// resolved to a polygon by the (external) DXF parser.
type HatchBoundaryLoop struct {
	Points   []Vec2
	IsOuter  bool // outermost loop per the external parser's topology pass
}

// HatchDefinitionLine is one pattern-generation line from the HATCH's
// pattern definition (used only for non-solid custom patterns; for named
// patterns the pattern table in internal/patterntable is authoritative).
type HatchDefinitionLine struct {
	Angle       float64
	BaseX, BaseY     float64
	OffsetX, OffsetY float64
	Dashes      []float64
}

// HatchStyle mirrors spec.md C6's area-fill style enum.
type HatchStyle int

const (
	HatchStyleOddParity HatchStyle = iota
	HatchStyleOutermost
	HatchStyleThroughEntireArea
)

// Entity is one DXF entity from the flat top-level stream, or one member
// of a block definition's entity list. Not every field applies to every
// Type; the decomposer (internal/decompose) reads only the fields its
// switch case needs, mirroring the source's per-type field access instead
// of a shared polymorphic geometry interface (spec.md §9: "dynamic
// property probing ... replaced by an explicit, fully typed entity
// representation").
type Entity struct {
	Type  EntityType
	Layer string

	// Color resolution inputs (spec.md C10).
	ColorIndex int // 0 => BYBLOCK, 256 => BYLAYER, else the AutoCAD color index
	HasColorIndex bool
	Color      int32 // explicit true-color override, if HasColorIndex is false

	LineType      string
	HasLineType   bool

	Extrusion Vec3
	HasExtrusion bool

	// LINE
	Start, End Vec2

	// POLYLINE / LWPOLYLINE
	Vertices []PolylineVertex
	Closed   bool

	// ARC / CIRCLE / ELLIPSE
	Center       Vec2
	Radius       float64 // CIRCLE/ARC
	RadiusX      float64 // ELLIPSE major axis length (or full radius if no MajorAxisEnd)
	RadiusRatio  float64 // ELLIPSE minor/major ratio
	MajorAxisEnd Vec2    // ELLIPSE, relative to Center; defines rotation
	StartAngle   float64
	HasStartAngle bool
	EndAngle     float64
	HasEndAngle  bool

	// POINT
	Position Vec2

	// SPLINE
	ControlPoints []Vec2
	Weights       []float64
	Knots         []float64
	Degree        int

	// TEXT
	Text           string
	InsertionPoint Vec2
	AlignPoint     Vec2
	HasAlignPoint  bool
	Height         float64
	Rotation       float64
	WidthFactor    float64
	ObliqueAngle   float64
	HAlign         int
	VAlign         int
	Style          string

	// TEXT ALIGNED/FIT
	EndPoint    Vec2
	HasEndPoint bool

	// MTEXT
	AttachmentPoint int
	RefRectWidth    float64
	LineSpacingFactor float64
	DirectionX, DirectionY float64
	HasDirection    bool

	// 3DFACE / SOLID
	Vertices3 [4]Vec2
	NumVertices3 int // 3 or 4
	Wireframe    bool

	// HATCH
	BoundaryLoops   []HatchBoundaryLoop
	DefinitionLines []HatchDefinitionLine
	SeedPoints      []Vec2
	IsSolid         bool
	PatternName     string
	PatternAngle    float64
	PatternScale    float64
	HatchStyleValue HatchStyle

	// INSERT
	BlockName   string
	XScale      float64
	YScale      float64
	HasScale    bool
}
