// Package textlayout implements spec.md C8: single-line TEXT rendering
// and MTEXT paragraph/column layout, on top of internal/glyphcache's
// glyph outlines and internal/mtext's parsed format tree.
//
// The per-glyph cursor/kerning accumulation loop and the "build in
// nominal glyph space, then apply one trailing affine" shape mirror the
// teacher's text/layout.go and text/wrap.go (kerning-aware run
// positioning, break-opportunity-driven line building) adapted from
// screen-space glyph runs to the spec's justification/attachment-point
// and MTEXT column model.
package textlayout

// HAlign is the horizontal justification of a single-line TEXT entity.
type HAlign int

const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
	HAlignAligned
	HAlignMiddle
	HAlignFit
)

// VAlign is the vertical justification of a single-line TEXT entity.
type VAlign int

const (
	VAlignBaseline VAlign = iota
	VAlignBottom
	VAlignMiddle
	VAlignTop
)

// Attachment is the MTEXT box attachment point (9 values: one of
// TOP/MIDDLE/BOTTOM crossed with LEFT/CENTER/RIGHT).
type Attachment int

const (
	AttachTopLeft Attachment = iota
	AttachTopCenter
	AttachTopRight
	AttachMiddleLeft
	AttachMiddleCenter
	AttachMiddleRight
	AttachBottomLeft
	AttachBottomCenter
	AttachBottomRight
)

func (a Attachment) verticalFraction() float64 {
	switch a {
	case AttachTopLeft, AttachTopCenter, AttachTopRight:
		return 0
	case AttachBottomLeft, AttachBottomCenter, AttachBottomRight:
		return 1
	default:
		return 0.5
	}
}

func (a Attachment) horizontalFraction() float64 {
	switch a {
	case AttachTopLeft, AttachMiddleLeft, AttachBottomLeft:
		return 0
	case AttachTopRight, AttachMiddleRight, AttachBottomRight:
		return 1
	default:
		return 0.5
	}
}
