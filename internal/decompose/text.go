package decompose

import (
	"math"

	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/internal/geom"
	"github.com/gogpu/cadscene/internal/textlayout"
)

// dxfHAlign/dxfVAlign mirror the DXF group-code enumerations for TEXT's
// horizontal/vertical justification (spec.md §6).
func dxfHAlign(v int) textlayout.HAlign {
	switch v {
	case 1:
		return textlayout.HAlignCenter
	case 2:
		return textlayout.HAlignRight
	case 3:
		return textlayout.HAlignAligned
	case 4:
		return textlayout.HAlignMiddle
	case 5:
		return textlayout.HAlignFit
	default:
		return textlayout.HAlignLeft
	}
}

func dxfVAlign(v int) textlayout.VAlign {
	switch v {
	case 1:
		return textlayout.VAlignBottom
	case 2:
		return textlayout.VAlignMiddle
	case 3:
		return textlayout.VAlignTop
	default:
		return textlayout.VAlignBaseline
	}
}

func dxfAttachment(v int) textlayout.Attachment {
	if v < int(textlayout.AttachTopLeft) || v > int(textlayout.AttachBottomRight) {
		return textlayout.AttachTopLeft
	}
	return textlayout.Attachment(v)
}

func decomposeText(e dxf.Entity, ctx Context) Result {
	insertion := geom.Pt(e.InsertionPoint.X, e.InsertionPoint.Y)
	hAlign := dxfHAlign(e.HAlign)

	// Group-code 72/73 justification other than left/baseline relocates
	// the insertion point to the alignment point (common DXF convention).
	if e.HasAlignPoint && (hAlign != textlayout.HAlignLeft || dxfVAlign(e.VAlign) != textlayout.VAlignBaseline) {
		insertion = geom.Pt(e.AlignPoint.X, e.AlignPoint.Y)
	}

	end := geom.Pt(e.EndPoint.X, e.EndPoint.Y)
	if !e.HasEndPoint {
		end = insertion
	}

	entities := textlayout.Render(textlayout.TextParams{
		Text:           e.Text,
		InsertionPoint: insertion,
		EndPoint:       end,
		HasEndPoint:    e.HasEndPoint,
		Height:         e.Height,
		Rotation:       e.Rotation * math.Pi / 180,
		WidthFactor:    e.WidthFactor,
		HAlign:         hAlign,
		VAlign:         dxfVAlign(e.VAlign),
		Layer:          ctx.Layer,
		Color:          ctx.Color,
		LineType:       ctx.LineType,
	}, ctx.Cache)

	return Result{Entities: entities}
}

func decomposeMText(e dxf.Entity, ctx Context) Result {
	columns := textlayout.ColumnLayout{ColumnWidth: e.RefRectWidth}

	entities := textlayout.RenderMText(textlayout.MTextParams{
		Content:        e.Text,
		InsertionPoint: geom.Pt(e.InsertionPoint.X, e.InsertionPoint.Y),
		Height:         e.Height,
		RefRectWidth:   e.RefRectWidth,
		Rotation:       e.Rotation * math.Pi / 180,
		Direction:      geom.Pt(e.DirectionX, e.DirectionY),
		HasDirection:   e.HasDirection,
		Attachment:     dxfAttachment(e.AttachmentPoint),
		Columns:        columns,
		Layer:          ctx.Layer,
		Color:          ctx.Color,
		LineType:       ctx.LineType,
	}, ctx.Cache)

	return Result{Entities: entities}
}
