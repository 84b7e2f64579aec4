// Package mtext implements spec.md C7: the MTEXT inline formatting
// sub-language, parsed into a flat tree of typed nodes that
// internal/textlayout lays out into paragraphs, lines, and columns.
//
// The hand-rolled scanner with a small explicit state enum follows the
// teacher's own escape-driven text parsing precedent in text/parser.go
// (tag/format scanning over a rune stream with local lookahead) rather
// than reaching for a general-purpose parser-combinator library — no
// example repo in the pack ships one suited to this inline mini-language.
package mtext

import (
	"strconv"
	"strings"
)

// NodeType tags one parsed MTEXT construct.
type NodeType int

const (
	NodeText NodeType = iota
	NodeScope
	NodeParagraph
	NodeNonBreakingSpace
	NodeParagraphAlignment
	NodeParagraphLineSpacing
	NodeTab
)

// Alignment is the paragraph alignment set by \pxq.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignDistribute
	AlignJustifyDefault
)

// LineSpacingType is the paragraph line-spacing mode set by \pxs.
type LineSpacingType int

const (
	SpacingAtLeast LineSpacingType = iota
	SpacingExactly
	SpacingMultiple
	SpacingReset
)

// Node is one parsed MTEXT construct.
type Node struct {
	Type NodeType

	Text string // NodeText

	Children []Node // NodeScope

	Alignment Alignment // NodeParagraphAlignment

	SpacingType   LineSpacingType // NodeParagraphLineSpacing
	SpacingFactor float64
}

// Flatten concatenates every NodeText (recursing into NodeScope) in
// document order, the operation spec.md invariant 10 round-trips against
// the original string (minus recognized format codes).
func Flatten(nodes []Node) string {
	var sb strings.Builder
	flattenInto(&sb, nodes)
	return sb.String()
}

func flattenInto(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n.Type {
		case NodeText:
			sb.WriteString(n.Text)
		case NodeScope:
			flattenInto(sb, n.Children)
		case NodeNonBreakingSpace:
			sb.WriteRune(' ')
		}
	}
}

// Parse parses an MTEXT content string into its top-level node list.
func Parse(s string) []Node {
	p := &parser{runes: []rune(s)}
	return p.parseScope()
}

type parser struct {
	runes []rune
	pos   int
}

func (p *parser) eof() bool { return p.pos >= len(p.runes) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.runes[p.pos]
}

func (p *parser) next() rune {
	r := p.runes[p.pos]
	p.pos++
	return r
}

// parseScope parses nodes until a matching '}' (consumed) or EOF.
func (p *parser) parseScope() []Node {
	var nodes []Node
	var sb strings.Builder

	flush := func() {
		if sb.Len() > 0 {
			nodes = append(nodes, Node{Type: NodeText, Text: expandSpecials(sb.String())})
			sb.Reset()
		}
	}

	for !p.eof() {
		r := p.next()
		switch r {
		case '{':
			flush()
			children := p.parseScope()
			nodes = append(nodes, Node{Type: NodeScope, Children: children})
		case '}':
			flush()
			return nodes
		case '\\':
			flush()
			nodes = p.parseEscape(nodes)
		case '^':
			flush()
			nodes = p.parseCaret(nodes)
		default:
			sb.WriteRune(r)
		}
	}
	flush()
	return nodes
}

func (p *parser) parseEscape(nodes []Node) []Node {
	if p.eof() {
		return nodes
	}
	c := p.next()
	switch c {
	case 'P':
		return append(nodes, Node{Type: NodeParagraph})
	case '~':
		return append(nodes, Node{Type: NodeNonBreakingSpace})
	case '\\', '{', '}':
		return append(nodes, Node{Type: NodeText, Text: string(c)})
	case 'p':
		return p.parseParagraphProps(nodes)
	case 'U':
		return p.parseUnicodeEscape(nodes)
	case 'f', 'F', 'H', 'W', 'S', 'A', 'C', 'T', 'Q':
		p.skipUntilSemicolon()
		return nodes
	case 'L', 'l', 'O', 'o', 'K', 'k', 'J', 'X':
		return nodes
	default:
		return nodes
	}
}

func (p *parser) parseParagraphProps(nodes []Node) []Node {
	if p.peek() != 'x' {
		p.skipUntilSemicolon()
		return nodes
	}
	p.next() // consume literal 'x'
	if p.eof() {
		return nodes
	}
	switch p.next() {
	case 'q':
		if p.eof() {
			return nodes
		}
		align := alignmentFromCode(p.next())
		p.skipUntilSemicolon()
		return append(nodes, Node{Type: NodeParagraphAlignment, Alignment: align})
	case 's':
		if p.eof() {
			return nodes
		}
		spacingType := spacingTypeFromCode(p.next())
		numStr := p.readUntilSemicolon()
		factor, _ := strconv.ParseFloat(strings.TrimSpace(numStr), 64)
		return append(nodes, Node{Type: NodeParagraphLineSpacing, SpacingType: spacingType, SpacingFactor: factor})
	default:
		p.skipUntilSemicolon()
		return nodes
	}
}

func (p *parser) parseUnicodeEscape(nodes []Node) []Node {
	if p.peek() != '+' {
		return nodes
	}
	p.next() // consume '+'
	var hex strings.Builder
	for i := 0; i < 4 && !p.eof() && isHexDigit(p.peek()); i++ {
		hex.WriteRune(p.next())
	}
	val, err := strconv.ParseInt(hex.String(), 16, 32)
	if err != nil {
		return nodes
	}
	return append(nodes, Node{Type: NodeText, Text: string(rune(val))})
}

func (p *parser) parseCaret(nodes []Node) []Node {
	if p.eof() {
		return nodes
	}
	switch p.next() {
	case 'I':
		return append(nodes, Node{Type: NodeTab})
	case 'J':
		return append(nodes, Node{Type: NodeParagraph})
	default:
		return nodes
	}
}

func (p *parser) skipUntilSemicolon() {
	for !p.eof() {
		if p.next() == ';' {
			return
		}
	}
}

func (p *parser) readUntilSemicolon() string {
	var sb strings.Builder
	for !p.eof() {
		r := p.next()
		if r == ';' {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func alignmentFromCode(c rune) Alignment {
	switch c {
	case 'l':
		return AlignLeft
	case 'c':
		return AlignCenter
	case 'r':
		return AlignRight
	case 'd':
		return AlignDistribute
	case 'j':
		return AlignJustifyDefault
	default:
		return AlignLeft
	}
}

func spacingTypeFromCode(c rune) LineSpacingType {
	switch c {
	case 'a':
		return SpacingAtLeast
	case 'e':
		return SpacingExactly
	case 'm':
		return SpacingMultiple
	case '*':
		return SpacingReset
	default:
		return SpacingAtLeast
	}
}

// expandSpecials applies the %%d / %%p / %%c / %%% special-character
// expansion to plain text (spec.md C7). \U+XXXX is handled separately in
// parseUnicodeEscape since it is escape-driven, not scanned as plain text.
func expandSpecials(s string) string {
	var sb strings.Builder
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		if runes[i] == '%' && i+2 < len(runes) && runes[i+1] == '%' {
			switch runes[i+2] {
			case 'd', 'D':
				sb.WriteRune('°')
				i += 3
				continue
			case 'p', 'P':
				sb.WriteRune('±')
				i += 3
				continue
			case 'c', 'C':
				sb.WriteRune('⌀')
				i += 3
				continue
			case '%':
				sb.WriteRune('%')
				i += 3
				continue
			}
		}
		sb.WriteRune(runes[i])
		i++
	}
	return sb.String()
}
