package export_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/vastuforge/floorplan/pkg/export"
	"github.com/vastuforge/floorplan/pkg/solver"
)

func TestExportSVG_ProducesWellFormedDocument(t *testing.T) {
	data, err := export.ExportSVG(sampleResponse(), export.DefaultSVGOptions())
	if err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("output does not contain an <svg> tag")
	}
	if !bytes.Contains(data, []byte("</svg>")) {
		t.Error("output is not closed with </svg>")
	}
	if !bytes.Contains(data, []byte("living")) {
		t.Error("expected a room id label in the output")
	}
}

func TestExportSVG_RejectsNilResponse(t *testing.T) {
	if _, err := export.ExportSVG(nil, export.DefaultSVGOptions()); err == nil {
		t.Fatal("expected an error for a nil response")
	}
}

func TestExportSVG_RejectsEmptyRooms(t *testing.T) {
	resp := &solver.Response{}
	if _, err := export.ExportSVG(resp, export.DefaultSVGOptions()); err == nil {
		t.Fatal("expected an error for a response with no rooms")
	}
}

func TestExportSVG_FillsInZeroedOptions(t *testing.T) {
	data, err := export.ExportSVG(sampleResponse(), export.SVGOptions{})
	if err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("expected valid output even with a zero-value SVGOptions")
	}
}

func TestSaveSVGToFile_WritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.svg")
	if err := export.SaveSVGToFile(sampleResponse(), path, export.DefaultSVGOptions()); err != nil {
		t.Fatalf("SaveSVGToFile: %v", err)
	}
}
