package source

import "testing"

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.bonk", []byte("bowl x = 1;\nx *= 2;\n"))
	start, _ := fs.Resolve(Span{File: id, Start: 12, End: 18})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("expected 2:1, got %d:%d", start.Line, start.Col)
	}
	start, _ = fs.Resolve(Span{File: id, Start: 5, End: 6})
	if start.Line != 1 || start.Col != 6 {
		t.Fatalf("expected 1:6, got %d:%d", start.Line, start.Col)
	}
	// the newline itself belongs to the line it terminates
	start, _ = fs.Resolve(Span{File: id, Start: 11, End: 11})
	if start.Line != 1 || start.Col != 12 {
		t.Fatalf("expected 1:12, got %d:%d", start.Line, start.Col)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.bonk", []byte("one\ntwo\nthree"))
	f := fs.Get(id)
	for i, want := range []string{"one", "two", "three"} {
		if got := f.GetLine(uint32(i + 1)); got != want {
			t.Fatalf("line %d: expected %q, got %q", i+1, want, got)
		}
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("expected empty line, got %q", got)
	}
}

func TestNormalizeCRLFAndBOM(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(out) != "a\nb\rc" {
		t.Fatalf("unexpected normalization %q", out)
	}
	out, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !had || string(out) != "x" {
		t.Fatalf("expected BOM removal, got %q", out)
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("bowl")
	b := in.Intern("bowl")
	if a != b || a == NoStringID {
		t.Fatalf("expected stable non-zero ids, got %d and %d", a, b)
	}
	if got := in.MustLookup(a); got != "bowl" {
		t.Fatalf("lookup mismatch: %q", got)
	}
	if _, ok := in.Find("missing"); ok {
		t.Fatalf("find must not intern")
	}
}
