package sema

import (
	"strconv"

	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/source"
	"bonk/internal/symbols"
	"bonk/internal/trace"
	"bonk/internal/types"
)

// ModuleResolver answers type queries about other modules. Returned types
// are imported into the interner passed as into.
type ModuleResolver interface {
	ExportType(file source.FileID, name string, into *types.Interner) (types.TypeID, error)
	MemberType(hive types.DeclRef, name string, into *types.Interner) (types.TypeID, error)
}

// Options configure an inference engine over one module.
type Options struct {
	Reporter diag.Reporter
	Symbols  *symbols.Table
	Types    *types.Interner // nil: a fresh interner
	Modules  ModuleResolver  // nil: every external reference fails to resolve
	Tracer   trace.Tracer
}

// Stats counts the work done by the speculative machinery.
type Stats struct {
	Speculations int
	Cycles       int
	Kept         int
	Dropped      int
	Deferred     int // проверки, отложенные до конца спекуляции
}

// Engine is the memoizing type inference engine of one module.
type Engine struct {
	tree    *ast.Builder
	nodes   *ast.Nodes
	file    source.FileID
	syms    *symbols.Table
	types   *types.Interner
	modules ModuleResolver
	tracer  trace.Tracer

	tracker  *diag.Tracker
	reporter diag.Reporter // dedup поверх tracker

	root   *TypeTable
	active *TypeTable
	guard  []ast.NodeID            // bloks being speculated, innermost last
	busy   map[ast.NodeID]struct{} // bowls being inferred
	stats  Stats

	// checks that met an unfinished recursion; Check reruns them
	pending map[ast.NodeID]struct{}
	retries []func()
	first   map[ast.NodeID]ast.NodeID // blok -> bonk that fixed its return type
}

// NewEngine prepares an engine; no inference happens until Infer is called.
func NewEngine(opts Options) *Engine {
	if opts.Symbols == nil || opts.Symbols.Tree == nil {
		panic("sema: engine needs a resolved symbol table")
	}
	in := opts.Types
	if in == nil {
		in = types.NewInterner()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	tracker := diag.NewTracker(opts.Reporter)
	root := newTypeTable(nil)
	return &Engine{
		tree:     opts.Symbols.Tree,
		nodes:    opts.Symbols.Tree.Nodes,
		file:     opts.Symbols.Tree.File,
		syms:     opts.Symbols,
		types:    in,
		modules:  opts.Modules,
		tracer:   tracer,
		tracker:  tracker,
		reporter: diag.NewDedupReporter(tracker),
		root:     root,
		active:   root,
		busy:     make(map[ast.NodeID]struct{}),
		pending:  make(map[ast.NodeID]struct{}),
		first:    make(map[ast.NodeID]ast.NodeID),
	}
}

// Types returns the module's interner.
func (e *Engine) Types() *types.Interner { return e.types }

// Symbols returns the module's symbol table.
func (e *Engine) Symbols() *symbols.Table { return e.syms }

// File returns the module's source file.
func (e *Engine) File() source.FileID { return e.file }

// Stats returns speculation counters.
func (e *Engine) Stats() Stats { return e.stats }

// Failed reports whether any error diagnostic was emitted.
func (e *Engine) Failed() bool { return e.tracker.Failed() }

// Infer returns the type of node, computing it on first request. Results
// are memoized in the innermost active table and never recomputed there.
func (e *Engine) Infer(node ast.NodeID) types.TypeID {
	if !node.IsValid() {
		return e.types.Builtins().Nothing
	}
	if ty, ok := e.active.Lookup(node); ok {
		return ty
	}
	if e.onGuard(node) {
		e.stats.Cycles++
		e.point("cycle", node, nil)
		return e.types.Builtins().Never
	}
	ty := e.compute(node)
	return e.active.Commit(node, ty)
}

// Query infers node inside a throw-away speculative table, keeping only
// the results that do not depend on an unfinished recursion. Queries from
// other modules go through here because their caller may be speculating.
func (e *Engine) Query(node ast.NodeID) types.TypeID {
	spec := newTypeTable(e.active)
	e.active = spec
	ty := e.Infer(node)
	e.active = spec.parent
	spec.sink(e.types)
	return ty
}

func (e *Engine) onGuard(node ast.NodeID) bool {
	for _, g := range e.guard {
		if g == node {
			return true
		}
	}
	return false
}

func (e *Engine) compute(id ast.NodeID) types.TypeID {
	b := e.types.Builtins()
	switch e.nodes.Kind(id) {
	case ast.NodeProgram:
		prog, _ := e.nodes.Program(id)
		for _, item := range prog.Items {
			e.Infer(item)
		}
		return b.Nothing
	case ast.NodeHelp:
		return b.Nothing
	case ast.NodeHive:
		return e.inferHive(id)
	case ast.NodeBlok:
		return e.inferBlok(id)
	case ast.NodeBowl:
		return e.inferBowl(id)
	case ast.NodeIdent:
		return e.inferIdent(id)
	case ast.NodeBlock:
		block, _ := e.nodes.Block(id)
		for _, stmt := range block.Stmts {
			e.Infer(stmt)
		}
		return b.Nothing
	case ast.NodeLoop:
		loop, _ := e.nodes.Loop(id)
		e.Infer(loop.Body)
		return b.Nothing
	case ast.NodeNumber:
		num, _ := e.nodes.Number(id)
		if num.Fractional {
			return b.Dobl
		}
		return b.Flot
	case ast.NodeString:
		return b.Strg
	case ast.NodeNull:
		return b.Null
	case ast.NodeArray:
		return e.inferArray(id)
	case ast.NodeBinary:
		return e.inferBinary(id)
	case ast.NodeUnary:
		return e.inferUnary(id)
	case ast.NodeCall:
		return e.inferCall(id)
	case ast.NodeCallArg:
		arg, _ := e.nodes.CallArg(id)
		return e.Infer(arg.Value)
	case ast.NodeMember:
		return e.inferMember(id)
	case ast.NodeCast:
		cast, _ := e.nodes.Cast(id)
		e.Infer(cast.Operand)
		return e.Infer(cast.Type)
	case ast.NodeBonk:
		bonk, _ := e.nodes.Bonk(id)
		e.Infer(bonk.Value)
		return b.Never
	case ast.NodeBrek, ast.NodeRebonk:
		return b.Never
	case ast.NodeTypeExpr:
		return e.inferTypeExpr(id)
	default:
		diag.Internalf(e.nodes.Span(id), "cannot infer %s node", e.nodes.Kind(id))
		return b.Error
	}
}

// resolved forces external types; a failed load is reported at span.
func (e *Engine) resolved(ty types.TypeID, span source.Span) types.TypeID {
	if e.types.Kind(ty) != types.KindExternal {
		return ty
	}
	out, err := e.types.Resolve(ty)
	if err != nil {
		diag.ReportError(e.reporter, diag.SemaExternalResolution, span, "cannot resolve "+e.label(ty)+": "+err.Error()).Emit()
		return e.types.Builtins().Error
	}
	return out
}

func (e *Engine) label(ty types.TypeID) string {
	return types.Label(e.types, ty)
}

func (e *Engine) decl(node ast.NodeID) types.DeclRef {
	return types.DeclRef{File: e.file, Node: node}
}

func (e *Engine) point(name string, node ast.NodeID, extra map[string]string) {
	if !e.tracer.Level().ShouldEmit(trace.ScopeNode) {
		return
	}
	detail := e.nodes.Kind(node).String() + "#" + strconv.FormatUint(uint64(node), 10)
	if n, _, ok := e.tree.DeclName(node); ok {
		detail = e.tree.Name(n)
	}
	trace.Point(e.tracer, trace.ScopeNode, name, detail, extra)
}

// deferCheck queues retry to run once no blok is speculated. A node is
// queued at most once.
func (e *Engine) deferCheck(node ast.NodeID, retry func()) {
	if _, ok := e.pending[node]; ok {
		return
	}
	e.pending[node] = struct{}{}
	e.retries = append(e.retries, retry)
	e.stats.Deferred++
	e.point("defer", node, nil)
}

// settle runs deferred checks; a retry may queue further ones.
func (e *Engine) settle() {
	for len(e.retries) > 0 {
		retry := e.retries[0]
		e.retries = e.retries[1:]
		retry()
	}
}
