package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"bonk/internal/diag"
	"bonk/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("blok f {\n  bonk \"unterminated\n}")
	fileID := fs.AddVirtual("dir/test.bonk", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 16, End: 29}, "unterminated string").
		WithNote(source.Span{File: fileID, Start: 0, End: 4}, "in this blok"))
	bag.Add(diag.New(diag.SevWarning, diag.SemaNeverReturns,
		source.Span{File: fileID, Start: 5, End: 6}, "blok 'f' never returns a value"))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 2 || output.Errors != 1 || output.Warnings != 1 {
		t.Fatalf("count=%d errors=%d warnings=%d", output.Count, output.Errors, output.Warnings)
	}
	first := output.Diagnostics[0]
	if first.Severity != "ERROR" || first.Code != "LEX1002" || first.Title != "Unterminated string literal" {
		t.Fatalf("unexpected first diagnostic %+v", first)
	}
	if first.Location.File != "test.bonk" || first.Location.StartLine != 2 || first.Location.StartCol != 8 {
		t.Fatalf("unexpected location %+v", first.Location)
	}
	if len(first.Notes) != 1 || first.Notes[0].Location.StartLine != 1 {
		t.Fatalf("unexpected notes %+v", first.Notes)
	}
}

func TestJSONMaxAndNoPositions(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.bonk", []byte("x y z"))
	bag := diag.NewBag(0)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.NewError(diag.SemaUnresolvedSymbol, source.Span{File: id, Start: i * 2, End: i*2 + 1}, "undefined"))
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("count = %d, want 2", out.Count)
	}
	if out.Diagnostics[1].Location.StartLine != 0 || out.Diagnostics[1].Location.StartByte != 2 {
		t.Fatalf("unexpected location %+v", out.Diagnostics[1].Location)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Fatalf("notes included without IncludeNotes")
	}
}
