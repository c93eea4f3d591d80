package symbols

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/parser"
	"bonk/internal/source"
)

func parseSnippet(t *testing.T, src string) *ast.Builder {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.bonk", []byte(src))
	bag := diag.NewBag(16)
	b := ast.NewBuilder(ast.Hints{}, nil)
	parser.ParseFile(fs.Get(id), b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("unexpected parse diagnostics: %s", summary(bag))
	}
	return b
}

func summary(bag *diag.Bag) string {
	parts := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		parts = append(parts, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(parts, "; ")
}

func resolveSnippet(t *testing.T, src string, modules ModuleResolver) (*ast.Builder, Result, *diag.Bag) {
	t.Helper()
	b := parseSnippet(t, src)
	bag := diag.NewBag(16)
	res := Resolve(b, ResolveOptions{Reporter: diag.BagReporter{Bag: bag}, Modules: modules})
	return b, res, bag
}

// identUses collects identifier nodes by name in source order.
func identUses(b *ast.Builder, name string) []ast.NodeID {
	var out []ast.NodeID
	b.Nodes.Inspect(b.Root, func(id ast.NodeID) bool {
		if ident, ok := b.Nodes.Ident(id); ok && b.Name(ident.Name) == name {
			out = append(out, id)
		}
		return true
	})
	return out
}

func findDecl(b *ast.Builder, kind ast.NodeKind, name string) ast.NodeID {
	found := ast.NoNodeID
	b.Nodes.Inspect(b.Root, func(id ast.NodeID) bool {
		if b.Nodes.Kind(id) == kind {
			if n, _, ok := b.DeclName(id); ok && b.Name(n) == name && !found.IsValid() {
				found = id
			}
		}
		return true
	})
	return found
}

func TestForwardReferenceToLaterSibling(t *testing.T) {
	b, res, bag := resolveSnippet(t, `
blok first { bonk @second; }
blok second { bonk 1; }
hive h {
	blok get { bonk x; }
	bowl x = 2;
}
`, nil)
	if !res.OK || bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(bag))
	}
	def := res.Table.Definition(identUses(b, "second")[0])
	if !def.IsLocal() || def.Node != findDecl(b, ast.NodeBlok, "second") {
		t.Fatalf("expected 'second' to resolve to the later blok, got %+v", def)
	}
	def = res.Table.Definition(identUses(b, "x")[0])
	if def.Node != findDecl(b, ast.NodeBowl, "x") {
		t.Fatalf("expected hive field to be visible before its definition")
	}
}

func TestNestedDefinitionsAreNotForwardVisible(t *testing.T) {
	_, res, bag := resolveSnippet(t, `
blok a { bonk @inner; }
blok outer { blok inner { bonk 1; } }
`, nil)
	if res.OK || bag.Count(diag.SemaUnresolvedSymbol) != 1 {
		t.Fatalf("expected one unresolved symbol, got %s", summary(bag))
	}
}

func TestBlockVariablesAreNotForwardVisible(t *testing.T) {
	_, res, bag := resolveSnippet(t, `
blok f { bonk y; bowl y = 1; }
`, nil)
	if res.OK || bag.Count(diag.SemaUnresolvedSymbol) != 1 {
		t.Fatalf("expected use before declaration to fail, got %s", summary(bag))
	}
}

func TestRedefinitionKeepsFirst(t *testing.T) {
	b, res, bag := resolveSnippet(t, `
bowl value = 1;
bowl value = "two";
value;
`, nil)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SemaDuplicateSymbol {
		t.Fatalf("expected exactly one redefinition, got %s", summary(bag))
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected a note at the previous definition")
	}
	first := findDecl(b, ast.NodeBowl, "value")
	if def := res.Table.Definition(identUses(b, "value")[0]); def.Node != first {
		t.Fatalf("expected use to resolve to the first definition")
	}
}

func TestShadowingInNestedScopeIsAllowed(t *testing.T) {
	_, res, bag := resolveSnippet(t, `
bowl x = 1;
blok f[bowl x: flot] { bowl y = x; { bowl x = 2; } }
`, nil)
	if !res.OK {
		t.Fatalf("shadowing must not be an error: %s", summary(bag))
	}
}

func TestParamsBindFromBody(t *testing.T) {
	b, res, _ := resolveSnippet(t, "blok f[bowl x: flot] { bonk x + 1; }", nil)
	def := res.Table.Definition(identUses(b, "x")[0])
	bowl, ok := b.Nodes.Bowl(def.Node)
	if !ok || !bowl.IsParam {
		t.Fatalf("expected x to resolve to the parameter")
	}
}

func TestMemberResolvesOnlyTarget(t *testing.T) {
	b, res, bag := resolveSnippet(t, `
hive point { bowl x = 1; }
bowl p: point;
x of p;
`, nil)
	if !res.OK {
		t.Fatalf("unexpected diagnostics: %s", summary(bag))
	}
	if res.Table.Definition(identUses(b, "p")[0]).Node != findDecl(b, ast.NodeBowl, "p") {
		t.Fatalf("member target must be resolved")
	}
}

func TestTypeNamesMustBeHives(t *testing.T) {
	_, _, bag := resolveSnippet(t, `
blok f { bonk 1; }
bowl a: f;
bowl b: ghost;
`, nil)
	if bag.Count(diag.SemaNotAType) != 1 || bag.Count(diag.SemaUnresolvedSymbol) != 1 {
		t.Fatalf("unexpected diagnostics: %s", summary(bag))
	}
}

func TestLoopControlOutsideLoop(t *testing.T) {
	_, _, bag := resolveSnippet(t, `
loop { brek; blok f { rebonk; } }
brek;
`, nil)
	if bag.Count(diag.SemaLoopControlOutsideLoop) != 2 {
		t.Fatalf("expected two loop-control errors, got %s", summary(bag))
	}
}

func TestDisplayNames(t *testing.T) {
	b, res, _ := resolveSnippet(t, `
hive shape {
	blok area { blok helper { bonk 1; } bonk 2; }
	bowl sides = 3;
}
`, nil)
	cases := map[ast.NodeID]string{
		findDecl(b, ast.NodeBlok, "area"):   "area of shape",
		findDecl(b, ast.NodeBlok, "helper"): "helper of area of shape",
		findDecl(b, ast.NodeBowl, "sides"):  "sides",
		findDecl(b, ast.NodeHive, "shape"):  "shape",
	}
	for node, want := range cases {
		if got := res.Table.DisplayName(node); got != want {
			t.Fatalf("display name: got %q, want %q", got, want)
		}
	}
}

type fakeScope struct {
	file  source.FileID
	names map[string]bool
}

func (s fakeScope) File() source.FileID   { return s.file }
func (s fakeScope) Has(name string) bool { return s.names[name] }

type fakeModules map[string]fakeScope

func (m fakeModules) ResolveModule(name string, _ source.FileID) (ExternalScope, error) {
	if s, ok := m[name]; ok {
		return s, nil
	}
	return nil, errors.New("not found")
}

func TestHelpedModulesResolveExternally(t *testing.T) {
	mods := fakeModules{
		"geo":  {file: 7, names: map[string]bool{"area": true}},
		"more": {file: 8, names: map[string]bool{"area": true, "perimeter": true}},
	}
	b, res, bag := resolveSnippet(t, `
help "geo";
help "more";
help "missing";
bowl area = 3;
@perimeter;
blok f { bonk area; }
`, mods)
	if bag.Count(diag.SemaExternalResolution) != 1 || bag.Len() != 1 {
		t.Fatalf("expected only the missing module to fail, got %s", summary(bag))
	}
	if def := res.Table.Definition(identUses(b, "perimeter")[0]); !def.IsExternal() || def.Module != "more" || def.File != 8 {
		t.Fatalf("expected perimeter from 'more', got %+v", def)
	}
	if def := res.Table.Definition(identUses(b, "area")[0]); !def.IsLocal() {
		t.Fatalf("local definitions must win over helped modules")
	}
	if len(res.Table.Helps) != 3 || res.Table.Helps[2].Scope != nil {
		t.Fatalf("expected three help entries with the last unresolved")
	}
}

func TestInternalErrorAbortsResolution(t *testing.T) {
	b := parseSnippet(t, "bowl x = 1;")
	b.Root = ast.NoNodeID
	bag := diag.NewBag(4)
	res := Resolve(b, ResolveOptions{Reporter: diag.BagReporter{Bag: bag}})
	if res.OK || bag.Count(diag.FatalInternal) != 1 {
		t.Fatalf("expected fatal internal diagnostic, got %s", summary(bag))
	}
}
