package sema

import (
	"strconv"

	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/symbols"
	"bonk/internal/trace"
	"bonk/internal/types"
)

// Check infers every node of the module and reports what inference alone
// cannot see: bloks that never return and bonks that contradict an
// annotated return type. It returns false if any error was reported or
// analysis was aborted by an internal failure.
func (e *Engine) Check() (ok bool) {
	span := trace.Begin(e.tracer, trace.ScopePass, "sema_check", 0)
	aborted := false
	defer func() {
		if aborted {
			ok = false
		}
		span.WithExtra("speculations", strconv.Itoa(e.stats.Speculations)).
			WithExtra("cycles", strconv.Itoa(e.stats.Cycles)).
			WithExtra("deferred", strconv.Itoa(e.stats.Deferred)).
			End(checkDetail(ok))
	}()
	defer diag.RecoverInternal(e.reporter, &aborted)

	var bloks []ast.NodeID
	e.nodes.Inspect(e.tree.Root, func(id ast.NodeID) bool {
		e.Infer(id)
		if e.nodes.Kind(id) == ast.NodeBlok {
			bloks = append(bloks, id)
		}
		return true
	})
	e.settle()
	for _, blok := range bloks {
		e.checkBlok(blok)
	}
	return !e.tracker.Failed()
}

func checkDetail(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

func (e *Engine) checkBlok(id ast.NodeID) {
	blok, _ := e.nodes.Blok(id)
	ty := e.Infer(id)
	result, _ := e.types.Result(ty)

	if blok.Return.IsValid() {
		e.checkAnnotatedBonks(id, blok, result)
		return
	}
	if !e.types.IsNever(result) {
		return
	}
	scope := e.syms.Scopes.Get(e.syms.DeclScope(id))
	if scope == nil || (scope.Kind != symbols.ScopeProgram && scope.Kind != symbols.ScopeHive) {
		return
	}
	diag.ReportWarning(e.reporter, diag.SemaNeverReturns, blok.NameSpan,
		"blok '"+e.syms.DisplayName(id)+"' never returns a value").Emit()
}

// checkAnnotatedBonks checks every bonk of an annotated blok against the
// annotation.
func (e *Engine) checkAnnotatedBonks(id ast.NodeID, blok *ast.BlokData, want types.TypeID) {
	if !blok.Body.IsValid() || e.types.IsError(want) {
		return
	}
	want = e.resolved(want, e.nodes.Span(blok.Return))
	for _, bonk := range e.collectBonks(blok.Body) {
		got := e.bonkValue(bonk)
		if e.types.IsError(got) || e.types.IsNever(got) || e.types.Assignable(want, got) {
			continue
		}
		diag.ReportError(e.reporter, diag.SemaReturnTypeMismatch, e.nodes.Span(bonk),
			"blok '"+e.syms.DisplayName(id)+"' returns "+e.label(got)+", expected "+e.label(want)).
			WithNote(e.nodes.Span(blok.Return), "return type declared here").
			Emit()
	}
}
