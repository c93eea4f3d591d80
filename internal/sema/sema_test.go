package sema

import (
	"fmt"
	"strings"
	"testing"

	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/parser"
	"bonk/internal/source"
	"bonk/internal/symbols"
	"bonk/internal/types"
)

type fixture struct {
	tree   *ast.Builder
	engine *Engine
	bag    *diag.Bag
	ok     bool
}

func checkSnippet(t *testing.T, src string) *fixture {
	t.Helper()
	f := prepare(t, src)
	f.ok = f.engine.Check()
	return f
}

// prepare parses and resolves src but leaves inference to the test.
func prepare(t *testing.T, src string) *fixture {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.bonk", []byte(src))
	bag := diag.NewBag(32)
	b := ast.NewBuilder(ast.Hints{}, nil)
	parser.ParseFile(fs.Get(id), b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("unexpected parse diagnostics: %s", summary(bag))
	}
	res := symbols.Resolve(b, symbols.ResolveOptions{Reporter: diag.BagReporter{Bag: bag}})
	if !res.OK {
		t.Fatalf("unexpected resolve diagnostics: %s", summary(bag))
	}
	engine := NewEngine(Options{Reporter: diag.BagReporter{Bag: bag}, Symbols: res.Table})
	return &fixture{tree: b, engine: engine, bag: bag}
}

func summary(bag *diag.Bag) string {
	parts := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		parts = append(parts, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(parts, "; ")
}

func (f *fixture) find(kind ast.NodeKind, name string) ast.NodeID {
	found := ast.NoNodeID
	f.tree.Nodes.Inspect(f.tree.Root, func(id ast.NodeID) bool {
		if found.IsValid() || f.tree.Nodes.Kind(id) != kind {
			return true
		}
		if n, _, ok := f.tree.DeclName(id); ok && f.tree.Name(n) == name {
			found = id
		}
		return true
	})
	if !found.IsValid() {
		panic("no " + kind.String() + " named " + name)
	}
	return found
}

func (f *fixture) all(kind ast.NodeKind) []ast.NodeID {
	var out []ast.NodeID
	f.tree.Nodes.Inspect(f.tree.Root, func(id ast.NodeID) bool {
		if f.tree.Nodes.Kind(id) == kind {
			out = append(out, id)
		}
		return true
	})
	return out
}

func (f *fixture) label(node ast.NodeID) string {
	return types.Label(f.engine.Types(), f.engine.Infer(node))
}

func (f *fixture) result(blok string) types.TypeID {
	res, ok := f.engine.Types().Result(f.engine.Infer(f.find(ast.NodeBlok, blok)))
	if !ok {
		panic(blok + " is not a blok")
	}
	return res
}

func expectClean(t *testing.T, f *fixture) {
	t.Helper()
	if !f.ok || f.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", summary(f.bag))
	}
}

func expectCodes(t *testing.T, f *fixture, codes ...diag.Code) {
	t.Helper()
	got := make([]diag.Code, 0, f.bag.Len())
	for _, d := range f.bag.Items() {
		got = append(got, d.Code)
	}
	if fmt.Sprint(got) != fmt.Sprint(codes) {
		t.Fatalf("expected codes %v, got %v: %s", codes, got, summary(f.bag))
	}
}

func TestScenarioLiteralReturn(t *testing.T) {
	f := checkSnippet(t, "blok f { bonk 1; }")
	expectClean(t, f)
	if got := f.label(f.find(ast.NodeBlok, "f")); got != "blok f: flot" {
		t.Fatalf("f: got %q", got)
	}
}

func TestScenarioCallThroughParameter(t *testing.T) {
	f := checkSnippet(t, "blok f[bowl x: flot] { bonk x + 1; } blok main { @f[x = 1 + 5]; }")
	expectClean(t, f)
	calls := f.all(ast.NodeCall)
	if len(calls) != 1 {
		t.Fatalf("expected one call, got %d", len(calls))
	}
	if f.engine.Infer(calls[0]) != f.engine.Types().Builtins().Flot {
		t.Fatalf("call: got %s", f.label(calls[0]))
	}
	if f.result("main") != f.engine.Types().Builtins().Nothing {
		t.Fatalf("main should return nothing")
	}
	// аргумент связан с параметром
	args := f.all(ast.NodeCallArg)
	def := f.engine.Symbols().Definition(args[0])
	if !def.IsLocal() || f.tree.Nodes.Kind(def.Node) != ast.NodeBowl {
		t.Fatalf("argument not bound to its parameter: %+v", def)
	}
}

func TestScenarioCompoundAssignMismatch(t *testing.T) {
	src := "bowl x = 1 + 2;\nx *= \"hey\";"
	f := checkSnippet(t, src)
	expectCodes(t, f, diag.SemaInvalidBinaryOperands)
	d := f.bag.Items()[0]
	if d.Message != "Cannot perform '*=' between flot and strg" {
		t.Fatalf("message: %q", d.Message)
	}
	if int(d.Primary.Start) != strings.Index(src, "x *=") {
		t.Fatalf("diagnostic at offset %d", d.Primary.Start)
	}
	if f.ok {
		t.Fatalf("check should fail")
	}
}

func TestScenarioMutualRecursionInHive(t *testing.T) {
	f := checkSnippet(t, `
hive h {
	blok a { bonk @b; }
	blok b { bonk @a; }
}
bowl n = 1;
`)
	if f.bag.HasErrors() || !f.ok {
		t.Fatalf("unexpected errors: %s", summary(f.bag))
	}
	never := f.engine.Types().Builtins().Never
	if f.result("a") != never || f.result("b") != never {
		t.Fatalf("a: %s, b: %s", f.label(f.find(ast.NodeBlok, "a")), f.label(f.find(ast.NodeBlok, "b")))
	}
	expectCodes(t, f, diag.SemaNeverReturns, diag.SemaNeverReturns)
	if f.engine.Stats().Cycles == 0 {
		t.Fatalf("expected the guard to fire")
	}
}

func TestRecursionWithBaseCase(t *testing.T) {
	f := checkSnippet(t, `
blok fact[bowl n: flot] {
	n < 1 and { bonk 1; };
	bonk n * @fact[n = n - 1];
}
`)
	expectClean(t, f)
	flot := f.engine.Types().Builtins().Flot
	if f.result("fact") != flot {
		t.Fatalf("fact: %s", f.label(f.find(ast.NodeBlok, "fact")))
	}
	for _, call := range f.all(ast.NodeCall) {
		if f.engine.Infer(call) != flot {
			t.Fatalf("recursive call typed %s after check", f.label(call))
		}
	}
	if f.engine.Stats().Dropped == 0 {
		t.Fatalf("never-tainted entries should have been dropped")
	}
}

func TestDeepMutualRecursionTerminates(t *testing.T) {
	const n = 40
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "blok f%d { bonk @f%d; }\n", i, (i+1)%n)
	}
	f := checkSnippet(t, sb.String())
	if f.bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", summary(f.bag))
	}
	for i := 0; i < n; i++ {
		if res := f.result(fmt.Sprintf("f%d", i)); res != f.engine.Types().Builtins().Never {
			t.Fatalf("f%d returns %s", i, types.Label(f.engine.Types(), res))
		}
	}
}

func TestDeepRecursionWithExitSettles(t *testing.T) {
	const n = 25
	var sb strings.Builder
	for i := 0; i < n-1; i++ {
		fmt.Fprintf(&sb, "blok f%d { bonk @f%d; }\n", i, i+1)
	}
	fmt.Fprintf(&sb, "blok f%d { bonk \"done\"; bonk @f0; }\n", n-1)
	f := checkSnippet(t, sb.String())
	expectClean(t, f)
	strg := f.engine.Types().Builtins().Strg
	for i := 0; i < n; i++ {
		if res := f.result(fmt.Sprintf("f%d", i)); res != strg {
			t.Fatalf("f%d returns %s", i, types.Label(f.engine.Types(), res))
		}
	}
}

func TestReturnMismatchFirstTypeWins(t *testing.T) {
	f := checkSnippet(t, `blok f { bonk 1; bonk "two"; }`)
	expectCodes(t, f, diag.SemaReturnTypeMismatch)
	if f.result("f") != f.engine.Types().Builtins().Flot {
		t.Fatalf("f: %s", f.label(f.find(ast.NodeBlok, "f")))
	}
	if notes := f.bag.Items()[0].Notes; len(notes) != 1 {
		t.Fatalf("expected a note at the first bonk, got %d", len(notes))
	}
}

func TestRecursionDoesNotHideMismatches(t *testing.T) {
	cases := []struct {
		name  string
		decls []string
		code  diag.Code
	}{
		{
			name:  "return",
			decls: []string{"blok A { bonk 1; bonk B; }", "blok B { bonk A; }"},
			code:  diag.SemaReturnTypeMismatch,
		},
		{
			name:  "initializer",
			decls: []string{"blok A { bowl x: nubr = B; bonk x; }", "blok B { bonk A; }"},
			code:  diag.SemaInvalidBinaryOperands,
		},
		{
			name:  "argument",
			decls: []string{"blok g[bowl v: nubr] { bonk v; }", "blok A { bonk @g[v = B]; }", "blok B { bonk A; }"},
			code:  diag.SemaArgumentTypeMismatch,
		},
	}
	for _, tc := range cases {
		forward := strings.Join(tc.decls, "\n")
		reversed := make([]string, len(tc.decls))
		for i, d := range tc.decls {
			reversed[len(tc.decls)-1-i] = d
		}
		backward := strings.Join(reversed, "\n")
		for order, src := range map[string]string{"forward": forward, "backward": backward} {
			t.Run(tc.name+"/"+order, func(t *testing.T) {
				f := checkSnippet(t, src)
				expectCodes(t, f, tc.code)
				if f.ok {
					t.Fatalf("check should fail")
				}
				if f.engine.Stats().Deferred == 0 {
					t.Fatalf("expected the check to be deferred")
				}
			})
		}
	}
}

func TestDeferredChecksStayQuietWhenTypesAgree(t *testing.T) {
	f := checkSnippet(t, `
blok A { bowl x: flot = @B; bonk x; }
blok B { bonk 1; bonk @A; }
blok g[bowl v: flot] { bonk v; }
blok C { bonk @g[v = @B]; }
`)
	expectClean(t, f)
}

func TestInferIsIdempotent(t *testing.T) {
	f := prepare(t, `bowl s = "a"; s -= 1;`)
	bin := f.all(ast.NodeBinary)[0]
	first := f.engine.Infer(bin)
	count := f.bag.Len()
	second := f.engine.Infer(bin)
	if first != second || f.bag.Len() != count || count != 1 {
		t.Fatalf("second infer changed something: %v/%v, %d/%d diagnostics", first, second, count, f.bag.Len())
	}
	f.ok = f.engine.Check()
	if f.bag.Len() != 1 {
		t.Fatalf("check re-reported: %s", summary(f.bag))
	}
}

func TestNoBonkMeansNothing(t *testing.T) {
	f := checkSnippet(t, "blok f { bowl x = 1; }")
	expectClean(t, f)
	if f.result("f") != f.engine.Types().Builtins().Nothing {
		t.Fatalf("f: %s", f.label(f.find(ast.NodeBlok, "f")))
	}
}

func TestBonksInsideNestedBloksDoNotCount(t *testing.T) {
	f := checkSnippet(t, `blok outer { blok inner { bonk "x"; } loop { bonk 1; } }`)
	expectClean(t, f)
	b := f.engine.Types().Builtins()
	if f.result("outer") != b.Flot || f.result("inner") != b.Strg {
		t.Fatalf("outer %s, inner %s", f.label(f.find(ast.NodeBlok, "outer")), f.label(f.find(ast.NodeBlok, "inner")))
	}
}

func TestAnnotatedBlok(t *testing.T) {
	f := checkSnippet(t, `blok f: strg { bonk 1; } blok g: dobl;`)
	expectCodes(t, f, diag.SemaReturnTypeMismatch)
	b := f.engine.Types().Builtins()
	if f.result("f") != b.Strg || f.result("g") != b.Dobl {
		t.Fatalf("annotations ignored")
	}
}

func TestMissingBodyAndAnnotation(t *testing.T) {
	f := checkSnippet(t, `blok f; bowl y = @f;`)
	expectCodes(t, f, diag.SemaMissingReturnAnnotation)
}

func TestArrays(t *testing.T) {
	f := checkSnippet(t, `bowl a = [1, 2, 3]; bowl b = [[1.5], [2.5]];`)
	expectClean(t, f)
	if got := f.label(f.find(ast.NodeBowl, "a")); got != "many flot" {
		t.Fatalf("a: %s", got)
	}
	if got := f.label(f.find(ast.NodeBowl, "b")); got != "many many dobl" {
		t.Fatalf("b: %s", got)
	}

	f = checkSnippet(t, `bowl c = [1, "x", 2]; bowl d = [];`)
	expectCodes(t, f, diag.SemaArrayElementMismatch, diag.SemaEmptyArray)
}

func TestArrayOfErrorsStaysQuiet(t *testing.T) {
	f := checkSnippet(t, `bowl c = [1 + "x", 2];`)
	expectCodes(t, f, diag.SemaInvalidBinaryOperands)
}

func TestVariableInference(t *testing.T) {
	f := checkSnippet(t, `
hive p { bowl x: flot = 1; }
bowl ok: p = null;
bowl bad = null;
bowl mismatch: strg = 1;
`)
	expectCodes(t, f, diag.SemaCannotInferVariable, diag.SemaInvalidBinaryOperands)
	if got := f.bag.Items()[1].Message; got != "Cannot perform '=' between strg and flot" {
		t.Fatalf("message: %q", got)
	}
	if got := f.label(f.find(ast.NodeBowl, "ok")); got != "p" {
		t.Fatalf("ok: %s", got)
	}
}

func TestSelfDependentFields(t *testing.T) {
	f := checkSnippet(t, `hive s { bowl a = b; bowl b = a; }`)
	expectCodes(t, f, diag.SemaCannotInferVariable)
}

func TestMemberAccess(t *testing.T) {
	f := checkSnippet(t, `
hive point {
	bowl x: flot;
	blok norm { bonk x * x; }
}
bowl p: point;
bowl a = x of p;
bowl n = @norm of p;
`)
	expectClean(t, f)
	b := f.engine.Types().Builtins()
	if f.engine.Infer(f.find(ast.NodeBowl, "a")) != b.Flot || f.engine.Infer(f.find(ast.NodeBowl, "n")) != b.Flot {
		t.Fatalf("a: %s, n: %s", f.label(f.find(ast.NodeBowl, "a")), f.label(f.find(ast.NodeBowl, "n")))
	}
	member := f.all(ast.NodeMember)[0]
	if def := f.engine.Symbols().Definition(member); !def.IsLocal() || def.Node != f.find(ast.NodeBowl, "x") {
		t.Fatalf("member not bound to field: %+v", def)
	}
}

func TestMemberErrors(t *testing.T) {
	f := checkSnippet(t, `
hive point { bowl x: flot; }
bowl p: point;
bowl a = y of p;
bowl b = x of 1;
`)
	expectCodes(t, f, diag.SemaUnknownMember, diag.SemaNonAggregateMember)
}

func TestCallErrors(t *testing.T) {
	f := checkSnippet(t, `
blok g[bowl a: flot] { bonk a; }
hive h { bowl v: flot; }
bowl k = 1;
bowl r1 = @g[b = 1];
bowl r2 = @g[a = "s"];
bowl r3 = @k;
bowl r4 = @h;
`)
	expectCodes(t, f, diag.SemaUnknownMember, diag.SemaArgumentTypeMismatch, diag.SemaNonCallable, diag.SemaNonCallable)
	if f.engine.Infer(f.find(ast.NodeBowl, "r2")) != f.engine.Types().Builtins().Flot {
		t.Fatalf("mismatched arguments must not change the result type")
	}
}

func TestCastTakesTargetType(t *testing.T) {
	f := checkSnippet(t, `bowl c = 1 as strg; bowl d = c as many nubr;`)
	expectClean(t, f)
	if got := f.label(f.find(ast.NodeBowl, "d")); got != "many nubr" {
		t.Fatalf("d: %s", got)
	}
}

func TestNotAssignable(t *testing.T) {
	f := checkSnippet(t, `1 = 2;`)
	expectCodes(t, f, diag.SemaNotAssignable)

	// broken operands are already reported
	f = checkSnippet(t, `1 = 1 + "x";`)
	expectCodes(t, f, diag.SemaInvalidBinaryOperands)
}

func TestUnaryOperators(t *testing.T) {
	f := checkSnippet(t, `bowl a = -1; bowl b = -"s";`)
	expectCodes(t, f, diag.SemaInvalidUnaryOperand)
}

func TestShortCircuitWithNeverRight(t *testing.T) {
	f := checkSnippet(t, `blok f[bowl c: buul] { c or bonk 1; bonk 2; }`)
	expectClean(t, f)
	ors := f.all(ast.NodeBinary)
	if f.engine.Infer(ors[0]) != f.engine.Types().Builtins().Buul {
		t.Fatalf("or: %s", f.label(ors[0]))
	}
}

func TestResultFootprints(t *testing.T) {
	f := prepare(t, `bowl a: buul; bowl b: shrt; bowl c: long; bowl d: many flot; bowl e = 1;`)
	res := f.engine.Result(f.engine.Check())
	want := map[string]uint32{"a": 1, "b": 2, "c": 8, "d": types.PointerSize, "e": 4}
	for name, size := range want {
		if got := res.Footprint(res.TypeOf(f.find(ast.NodeBowl, name))); got != size {
			t.Fatalf("%s: footprint %d, want %d", name, got, size)
		}
	}
	if !res.OK {
		t.Fatalf("unexpected failure: %s", summary(f.bag))
	}
}

func TestTypeTableSink(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	root := newTypeTable(nil)
	spec := newTypeTable(root)
	spec.Commit(1, b.Flot)
	spec.Commit(2, b.Never)
	spec.Commit(3, in.Many(b.Never))
	if spec.Commit(1, b.Strg) != b.Flot {
		t.Fatalf("entries must be write-once")
	}
	if ty, ok := spec.Lookup(1); !ok || ty != b.Flot {
		t.Fatalf("lookup through chain failed")
	}
	kept, dropped := spec.sink(in)
	if kept != 1 || dropped != 2 {
		t.Fatalf("kept %d dropped %d", kept, dropped)
	}
	if _, ok := root.Lookup(2); ok {
		t.Fatalf("never leaked into parent")
	}
	if ty, ok := root.Lookup(1); !ok || ty != b.Flot {
		t.Fatalf("flot not sunk")
	}
}
