package patterntable

import (
	"strings"
	"testing"
)

const samplePat = `; sample pattern library
*ANSI31,ANSI Iron, Brick, Stone masonry
45, 0,0, 0,3.175
*LINE,Parallel horizontal line pattern
0, 0,0, 0,1
`

func TestLoadParsesMultiplePatterns(t *testing.T) {
	table, err := Load(strings.NewReader(samplePat))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	ansi, ok := table.Lookup("ansi31")
	if !ok {
		t.Fatal("expected ANSI31 to be registered (case-insensitive lookup)")
	}
	if len(ansi.Lines) != 1 || ansi.Lines[0].Angle != 45 {
		t.Errorf("ANSI31 lines = %+v, want one 45-degree line", ansi.Lines)
	}

	line, ok := table.Lookup("LINE")
	if !ok || len(line.Lines) != 1 {
		t.Fatalf("LINE pattern = %+v, ok=%v", line, ok)
	}
}

func TestLoadRejectsDescriptorBeforeHeader(t *testing.T) {
	_, err := Load(strings.NewReader("45, 0,0, 0,1\n"))
	if err == nil {
		t.Fatal("expected an error for a descriptor line with no preceding pattern header")
	}
}
