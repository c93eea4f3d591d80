package sema

import (
	"strconv"

	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/types"
)

func (e *Engine) inferHive(id ast.NodeID) types.TypeID {
	hive, _ := e.nodes.Hive(id)
	return e.types.RegisterHive(e.decl(id), e.tree.Name(hive.Name))
}

// inferBlok is the return-type algorithm. Callers guarantee id is not on
// the guard (Infer checks it).
func (e *Engine) inferBlok(id ast.NodeID) types.TypeID {
	blok, _ := e.nodes.Blok(id)
	b := e.types.Builtins()
	decl := e.decl(id)

	params := make([]types.Param, 0, len(blok.Params))
	for _, p := range blok.Params {
		bowl, _ := e.nodes.Bowl(p)
		params = append(params, types.Param{
			Name: e.tree.Name(bowl.Name),
			Type: e.Infer(p),
			Decl: e.decl(p),
		})
	}
	e.types.DeclareBlok(decl, e.tree.Name(blok.Name), params)

	if blok.Return.IsValid() {
		return e.types.Blok(decl, e.Infer(blok.Return))
	}
	if !blok.Body.IsValid() {
		diag.ReportError(e.reporter, diag.SemaMissingReturnAnnotation, e.nodes.Span(id),
			"blok '"+e.syms.DisplayName(id)+"' needs a return type or a body").Emit()
		return e.types.Blok(decl, b.Error)
	}

	bonks := e.collectBonks(blok.Body)
	if len(bonks) == 0 {
		return e.types.Blok(decl, b.Nothing)
	}

	e.guard = append(e.guard, id)
	spec := newTypeTable(e.active)
	e.active = spec
	e.stats.Speculations++
	e.point("speculate", id, nil)

	result := e.unifyBonks(id, bonks)

	e.active = spec.parent
	e.guard = e.guard[:len(e.guard)-1]
	kept, dropped := spec.sink(e.types)
	e.stats.Kept += kept
	e.stats.Dropped += dropped
	e.point("sink", id, map[string]string{
		"kept":    strconv.Itoa(kept),
		"dropped": strconv.Itoa(dropped),
		"result":  e.label(result),
	})

	return e.types.Blok(decl, result)
}

// collectBonks lists bonk statements of body in source order, nested
// blocks and loops included, nested bloks and hives excluded.
func (e *Engine) collectBonks(body ast.NodeID) []ast.NodeID {
	var out []ast.NodeID
	e.nodes.Inspect(body, func(n ast.NodeID) bool {
		switch e.nodes.Kind(n) {
		case ast.NodeBlok, ast.NodeHive:
			return false
		case ast.NodeBonk:
			out = append(out, n)
		}
		return true
	})
	return out
}

// bonkValue returns the type a bonk hands back to its blok.
func (e *Engine) bonkValue(bonk ast.NodeID) types.TypeID {
	e.Infer(bonk)
	data, _ := e.nodes.Bonk(bonk)
	if !data.Value.IsValid() {
		return e.types.Builtins().Nothing
	}
	return e.resolved(e.Infer(data.Value), e.nodes.Span(data.Value))
}

// unifyBonks: the first type that is neither Error nor Never wins, every
// other one must equal it.
func (e *Engine) unifyBonks(blok ast.NodeID, bonks []ast.NodeID) types.TypeID {
	b := e.types.Builtins()
	candidate := types.NoTypeID
	sawError := false
	for _, bonk := range bonks {
		ty := e.bonkValue(bonk)
		switch {
		case e.types.IsError(ty):
			sawError = true
			continue
		case e.types.IsNever(ty):
			e.deferBonk(blok, bonk)
			continue
		}
		if candidate == types.NoTypeID {
			candidate = ty
			e.first[blok] = bonk
			continue
		}
		if ty == candidate {
			continue
		}
		if e.uncertain(candidate, ty) {
			e.deferBonk(blok, bonk)
			continue
		}
		e.returnMismatch(blok, bonk, ty, candidate)
	}
	switch {
	case candidate != types.NoTypeID:
		return candidate
	case sawError:
		return b.Error
	default:
		return b.Never
	}
}

func (e *Engine) returnMismatch(blok, bonk ast.NodeID, got, want types.TypeID) {
	rb := diag.ReportError(e.reporter, diag.SemaReturnTypeMismatch, e.nodes.Span(bonk),
		"blok '"+e.syms.DisplayName(blok)+"' returns "+e.label(got)+", expected "+e.label(want))
	if first, ok := e.first[blok]; ok && first != bonk {
		rb = rb.WithNote(e.nodes.Span(first), "first return has type "+e.label(want))
	}
	rb.Emit()
}

// deferBonk queues a bonk whose type is not final yet; once every blok is
// committed it is compared against the blok's return type.
func (e *Engine) deferBonk(blok, bonk ast.NodeID) {
	e.deferCheck(bonk, func() {
		want, ok := e.types.Result(e.Infer(blok))
		got := e.bonkValue(bonk)
		if !ok || got == want || e.settled(want, got) {
			return
		}
		e.returnMismatch(blok, bonk, got, want)
	})
}

// settled reports whether any of tys makes a deferred check moot.
func (e *Engine) settled(tys ...types.TypeID) bool {
	for _, ty := range tys {
		if e.types.IsError(ty) || e.types.IsNever(ty) {
			return true
		}
	}
	return false
}

// uncertain reports whether a failed check may be caused by a recursion
// that is still being speculated. Such checks go through deferCheck.
func (e *Engine) uncertain(tys ...types.TypeID) bool {
	if len(e.guard) == 0 {
		return false
	}
	for _, ty := range tys {
		if e.types.ContainsNever(ty) {
			return true
		}
	}
	return false
}

// checkInit verifies that an annotated bowl's initializer fits its type.
func (e *Engine) checkInit(id ast.NodeID, declared, value types.TypeID) {
	if e.types.IsError(declared) || e.types.IsError(value) {
		return
	}
	fits := e.types.IsNever(value) || e.types.Assignable(declared, value)
	if e.uncertain(value) && (!fits || e.types.IsNever(value)) {
		e.deferCheck(id, func() {
			bowl, _ := e.nodes.Bowl(id)
			declared := e.resolved(e.Infer(bowl.Type), e.nodes.Span(bowl.Type))
			value := e.resolved(e.Infer(bowl.Value), e.nodes.Span(bowl.Value))
			e.checkInit(id, declared, value)
		})
		return
	}
	if fits {
		return
	}
	diag.ReportError(e.reporter, diag.SemaInvalidBinaryOperands, e.nodes.Span(id),
		e.cannotPerform(ast.BinaryAssign, declared, value)).Emit()
}

func (e *Engine) inferBowl(id ast.NodeID) types.TypeID {
	bowl, _ := e.nodes.Bowl(id)
	b := e.types.Builtins()
	name := e.tree.Name(bowl.Name)

	if _, busy := e.busy[id]; busy {
		diag.ReportError(e.reporter, diag.SemaCannotInferVariable, bowl.NameSpan,
			"type of '"+name+"' depends on itself").Emit()
		return b.Error
	}
	e.busy[id] = struct{}{}
	defer delete(e.busy, id)

	switch {
	case bowl.Type.IsValid() && bowl.Value.IsValid():
		declared := e.resolved(e.Infer(bowl.Type), e.nodes.Span(bowl.Type))
		value := e.resolved(e.Infer(bowl.Value), e.nodes.Span(bowl.Value))
		e.checkInit(id, declared, value)
		return declared
	case bowl.Type.IsValid():
		return e.resolved(e.Infer(bowl.Type), e.nodes.Span(bowl.Type))
	case bowl.Value.IsValid():
		value := e.resolved(e.Infer(bowl.Value), e.nodes.Span(bowl.Value))
		switch e.types.Kind(value) {
		case types.KindNull, types.KindNothing:
			diag.ReportError(e.reporter, diag.SemaCannotInferVariable, bowl.NameSpan,
				"cannot infer type of '"+name+"' from "+e.label(value)).
				WithNote(e.nodes.Span(bowl.Value), "initializer is here").
				Emit()
			return b.Error
		}
		return value
	default:
		diag.ReportError(e.reporter, diag.SemaCannotInferVariable, bowl.NameSpan,
			"'"+name+"' needs a type or an initializer").Emit()
		return b.Error
	}
}
