package types

import (
	"errors"
	"testing"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Flot == NoTypeID || b.Never == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	if in.Kind(b.Strg) != KindStrg {
		t.Fatalf("expected strg kind, got %v", in.Kind(b.Strg))
	}
	if in.Primitive(KindDobl) != b.Dobl {
		t.Fatalf("primitive lookup must return the builtin")
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	a := in.Many(in.Builtins().Strg)
	b := in.Many(in.Builtins().Strg)
	if a != b {
		t.Fatalf("many types should be deduplicated")
	}
	if in.Many(a) == a {
		t.Fatalf("nested many must differ from its element")
	}
}

func TestBlokIdentityIsNominal(t *testing.T) {
	in := NewInterner()
	f := DeclRef{File: 1, Node: 10}
	g := DeclRef{File: 1, Node: 20}
	in.DeclareBlok(f, "f", nil)
	in.DeclareBlok(g, "g", nil)
	flot := in.Builtins().Flot
	if in.Blok(f, flot) == in.Blok(g, flot) {
		t.Fatalf("bloks with different declarations must differ")
	}
	if in.Blok(f, flot) != in.Blok(f, flot) {
		t.Fatalf("same declaration and result must be equal")
	}
	if in.Blok(f, flot) == in.Blok(f, in.Builtins().Never) {
		t.Fatalf("return type is part of blok identity")
	}
}

func TestContainsNever(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	f := DeclRef{File: 1, Node: 1}
	in.DeclareBlok(f, "f", []Param{{Name: "x", Type: b.Flot}})
	cases := []struct {
		id   TypeID
		want bool
	}{
		{b.Never, true},
		{b.Flot, false},
		{in.Many(b.Never), true},
		{in.Blok(f, b.Never), true},
		{in.Many(in.Blok(f, b.Never)), true},
		{in.Blok(f, b.Strg), false},
	}
	for _, tc := range cases {
		if got := in.ContainsNever(tc.id); got != tc.want {
			t.Fatalf("ContainsNever(%s) = %v, want %v", Label(in, tc.id), got, tc.want)
		}
	}
}

func TestFootprint(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	want := map[TypeID]uint32{
		b.Buul: 1, b.Shrt: 2, b.Nubr: 4, b.Long: 8, b.Flot: 4, b.Dobl: 8,
		b.Strg: 8, b.Null: 8, in.Many(b.Buul): 8,
		b.Nothing: 0, b.Never: 0, b.Error: 0,
	}
	for id, size := range want {
		if got := in.Footprint(id); got != size {
			t.Fatalf("footprint(%s) = %d, want %d", Label(in, id), got, size)
		}
	}
	ext := in.RegisterExternal("lib", "x", func() (TypeID, error) { return b.Shrt, nil })
	if got := in.Footprint(ext); got != 2 {
		t.Fatalf("external footprint must follow the resolved type, got %d", got)
	}
}

func TestExternalResolvesOnce(t *testing.T) {
	in := NewInterner()
	calls := 0
	ext := in.RegisterExternal("lib", "x", func() (TypeID, error) {
		calls++
		return in.Builtins().Long, nil
	})
	if again := in.RegisterExternal("lib", "x", nil); again != ext {
		t.Fatalf("externals are interned by module and name")
	}
	for range 3 {
		got, err := in.Resolve(ext)
		if err != nil || got != in.Builtins().Long {
			t.Fatalf("unexpected resolution %v, %v", got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("loader must run once, ran %d times", calls)
	}
}

func TestExternalWithNeverIsRetried(t *testing.T) {
	in := NewInterner()
	calls := 0
	ext := in.RegisterExternal("lib", "f", func() (TypeID, error) {
		calls++
		if calls == 1 {
			return in.Builtins().Never, nil
		}
		return in.Builtins().Nubr, nil
	})
	first, _ := in.Resolve(ext)
	second, _ := in.Resolve(ext)
	if first != in.Builtins().Never || second != in.Builtins().Nubr {
		t.Fatalf("expected never then nubr, got %s then %s", Label(in, first), Label(in, second))
	}
}

func TestExternalCycleIsReported(t *testing.T) {
	in := NewInterner()
	var ext TypeID
	ext = in.RegisterExternal("lib", "loop", func() (TypeID, error) {
		return in.Resolve(ext)
	})
	if _, err := in.Resolve(ext); !errors.Is(err, ErrExternalCycle) {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestImportKeepsNominalIdentity(t *testing.T) {
	lib := NewInterner()
	decl := DeclRef{File: 2, Node: 5}
	point := lib.RegisterHive(decl, "point")
	fdecl := DeclRef{File: 2, Node: 9}
	lib.DeclareBlok(fdecl, "make", []Param{{Name: "p", Type: point}})
	fn := lib.Blok(fdecl, lib.Many(point))

	app := NewInterner()
	got, err := app.Import(lib, fn)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if Label(app, got) != "blok make[p: point]: many point" {
		t.Fatalf("unexpected label %q", Label(app, got))
	}
	if local := app.RegisterHive(decl, "point"); app.Kind(local) != KindHive {
		t.Fatalf("hive not registered")
	} else if info, _ := app.BlokInfo(got); info.Params[0].Type != local {
		t.Fatalf("imported param must share the hive identity")
	}
}

func TestLabels(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if Label(in, in.Many(in.Many(b.Strg))) != "many many strg" {
		t.Fatalf("unexpected many label")
	}
	ext := in.RegisterExternal("lib", "x", nil)
	if Label(in, ext) != "x of lib" {
		t.Fatalf("unexpected external label %q", Label(in, ext))
	}
	if Label(in, NoTypeID) != "?" {
		t.Fatalf("missing type label")
	}
}
