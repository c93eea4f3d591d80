package sema

import (
	"bonk/internal/ast"
	"bonk/internal/symbols"
	"bonk/internal/types"
)

// Result is the read-only view handed to code generation once Check ran.
type Result struct {
	engine *Engine
	OK     bool
}

// Check resolves nothing itself: opts.Symbols must come from a finished
// symbols.Resolve. It builds an engine and runs a full check.
func Check(opts Options) Result {
	e := NewEngine(opts)
	ok := e.Check()
	return Result{engine: e, OK: ok}
}

// Result wraps the engine after Check.
func (e *Engine) Result(ok bool) Result { return Result{engine: e, OK: ok} }

// Definition returns what an identifier, member access or call argument
// resolved to.
func (r Result) Definition(node ast.NodeID) symbols.Definition {
	return r.engine.syms.Definition(node)
}

// TypeOf returns the committed type of node.
func (r Result) TypeOf(node ast.NodeID) types.TypeID {
	return r.engine.Infer(node)
}

// Footprint returns the byte size of values of type ty.
func (r Result) Footprint(ty types.TypeID) uint32 {
	return r.engine.types.Footprint(ty)
}

// Label renders ty for humans.
func (r Result) Label(ty types.TypeID) string {
	return types.Label(r.engine.types, ty)
}

func (r Result) Types() *types.Interner  { return r.engine.types }
func (r Result) Symbols() *symbols.Table { return r.engine.syms }
func (r Result) Engine() *Engine         { return r.engine }
