// Command scenebuild reads a JSON-encoded dxf.Drawing and emits a packed
// scene: three binary buffers (vertices, indices, transforms) plus a JSON
// manifest locating every batch within them, following spec.md §6
// "Output scene" and the ggdemo precedent of a small flag-driven
// CLI wrapping the library's own entry point.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gogpu/cadscene/dxf"
	"github.com/gogpu/cadscene/scene"
	"github.com/gogpu/cadscene/sceneopts"
)

func main() {
	var (
		input  = flag.String("input", "", "path to a JSON-encoded dxf.Drawing (required)")
		outDir = flag.String("out", ".", "directory to write the packed scene into")
		prefix = flag.String("prefix", "scene", "output file name prefix")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("scenebuild: -input is required")
	}

	drawing, err := readDrawing(*input)
	if err != nil {
		log.Fatalf("scenebuild: %v", err)
	}

	b := scene.NewBuilder(scene.Config{Options: sceneopts.DefaultOptions()})
	s, err := b.Build(drawing)
	if err != nil {
		log.Fatalf("scenebuild: building scene: %v", err)
	}

	if err := writeScene(*outDir, *prefix, s); err != nil {
		log.Fatalf("scenebuild: %v", err)
	}

	log.Printf("scenebuild: wrote %d batches (%d vertex bytes, %d index bytes, %d transform bytes) to %s",
		len(s.Batches), len(s.Vertices), len(s.Indices), len(s.Transforms), *outDir)
}

func readDrawing(path string) (*dxf.Drawing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var d dxf.Drawing
	if err := json.NewDecoder(f).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &d, nil
}

// manifest is the JSON-serializable sibling of the three raw byte buffers
// in a scene.Scene; the buffers themselves are written as separate
// ".bin" files rather than base64-inflated into the manifest.
type manifest struct {
	Batches []scene.SerializedBatch `json:"batches"`
	Layers  []scene.LayerInfo       `json:"layers"`

	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`
	Bounds  scene.Bounds `json:"bounds"`

	HasMissingChars  bool `json:"hasMissingChars"`
	PointShapeHasDot bool `json:"pointShapeHasDot"`

	VerticesFile   string `json:"verticesFile"`
	IndicesFile    string `json:"indicesFile"`
	TransformsFile string `json:"transformsFile"`
}

func writeScene(dir, prefix string, s *scene.Scene) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	verticesFile := prefix + ".vertices.bin"
	indicesFile := prefix + ".indices.bin"
	transformsFile := prefix + ".transforms.bin"

	if err := os.WriteFile(filepath.Join(dir, verticesFile), s.Vertices, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", verticesFile, err)
	}
	if err := os.WriteFile(filepath.Join(dir, indicesFile), s.Indices, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", indicesFile, err)
	}
	if err := os.WriteFile(filepath.Join(dir, transformsFile), s.Transforms, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", transformsFile, err)
	}

	m := manifest{
		Batches:          s.Batches,
		Layers:           s.Layers,
		OriginX:          s.Origin.X,
		OriginY:          s.Origin.Y,
		Bounds:           s.Bounds,
		HasMissingChars:  s.HasMissingChars,
		PointShapeHasDot: s.PointShapeHasDot,
		VerticesFile:     verticesFile,
		IndicesFile:      indicesFile,
		TransformsFile:   transformsFile,
	}

	manifestPath := filepath.Join(dir, prefix+".manifest.json")
	f, err := os.Create(manifestPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", manifestPath, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
