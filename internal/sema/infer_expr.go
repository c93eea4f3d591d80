package sema

import (
	"errors"
	"fmt"

	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/source"
	"bonk/internal/symbols"
	"bonk/internal/types"
)

var errNoModules = errors.New("no module resolver configured")

func (e *Engine) inferIdent(id ast.NodeID) types.TypeID {
	def := e.syms.Definition(id)
	switch def.Kind {
	case symbols.DefLocal:
		return e.Infer(def.Node)
	case symbols.DefExternal:
		return e.external(def)
	default:
		// уже сообщено резолвером
		return e.types.Builtins().Error
	}
}

// external interns a lazy reference to a definition of a helped module.
func (e *Engine) external(def symbols.Definition) types.TypeID {
	file, name, into := def.File, def.Name, e.types
	modules := e.modules
	return e.types.RegisterExternal(def.Module, def.Name, func() (types.TypeID, error) {
		if modules == nil {
			return into.Builtins().Error, errNoModules
		}
		return modules.ExportType(file, name, into)
	})
}

func (e *Engine) cannotPerform(op ast.BinaryOp, left, right types.TypeID) string {
	return fmt.Sprintf("Cannot perform '%s' between %s and %s", op, e.label(left), e.label(right))
}

func (e *Engine) inferBinary(id ast.NodeID) types.TypeID {
	bin, _ := e.nodes.Binary(id)
	b := e.types.Builtins()

	left := e.resolved(e.Infer(bin.Left), e.nodes.Span(bin.Left))
	right := e.resolved(e.Infer(bin.Right), e.nodes.Span(bin.Right))

	if e.types.IsError(left) || e.types.IsError(right) {
		return b.Error
	}
	if bin.Op.IsAssignment() {
		switch e.nodes.Kind(bin.Left) {
		case ast.NodeIdent, ast.NodeMember:
		default:
			diag.ReportError(e.reporter, diag.SemaNotAssignable, e.nodes.Span(bin.Left),
				"left side of '"+bin.Op.String()+"' is not assignable").Emit()
			return b.Error
		}
	}

	switch {
	case e.types.IsNever(left):
		return b.Never
	case e.types.IsNever(right):
		if bin.Op.IsShortCircuit() {
			return left
		}
		return b.Never
	}

	if result, ok := e.types.AllowsBinary(bin.Op, left, right); ok {
		return result
	}
	if e.uncertain(left, right) {
		return b.Never
	}
	diag.ReportError(e.reporter, diag.SemaInvalidBinaryOperands, e.nodes.Span(id),
		e.cannotPerform(bin.Op, left, right)).Emit()
	return b.Error
}

func (e *Engine) inferUnary(id ast.NodeID) types.TypeID {
	un, _ := e.nodes.Unary(id)
	b := e.types.Builtins()
	operand := e.resolved(e.Infer(un.Operand), e.nodes.Span(un.Operand))
	switch {
	case e.types.IsError(operand):
		return b.Error
	case e.types.IsNever(operand):
		return b.Never
	}
	if result, ok := e.types.AllowsUnary(un.Op, operand); ok {
		return result
	}
	diag.ReportError(e.reporter, diag.SemaInvalidUnaryOperand, e.nodes.Span(id),
		fmt.Sprintf("Cannot apply unary '%s' to %s", un.Op, e.label(operand))).Emit()
	return b.Error
}

func (e *Engine) inferArray(id ast.NodeID) types.TypeID {
	arr, _ := e.nodes.Array(id)
	b := e.types.Builtins()
	if len(arr.Elems) == 0 {
		diag.ReportError(e.reporter, diag.SemaEmptyArray, e.nodes.Span(id),
			"cannot infer the element type of an empty array").Emit()
		return b.Error
	}

	elems := make([]types.TypeID, len(arr.Elems))
	sawError, sawNever := false, false
	for i, el := range arr.Elems {
		elems[i] = e.resolved(e.Infer(el), e.nodes.Span(el))
		sawError = sawError || e.types.IsError(elems[i])
		sawNever = sawNever || e.types.IsNever(elems[i])
	}
	switch {
	case sawError:
		return b.Error
	case sawNever:
		return b.Never
	}

	first := elems[0]
	mismatch := false
	for i := 1; i < len(elems); i++ {
		if elems[i] == first {
			continue
		}
		if e.uncertain(first, elems[i]) {
			return b.Never
		}
		mismatch = true
		diag.ReportError(e.reporter, diag.SemaArrayElementMismatch, e.nodes.Span(arr.Elems[i]),
			"array element has type "+e.label(elems[i])+", expected "+e.label(first)).
			WithNote(e.nodes.Span(arr.Elems[0]), "first element has type "+e.label(first)).
			Emit()
	}
	if mismatch {
		return b.Error
	}
	return e.types.Many(first)
}

func (e *Engine) inferMember(id ast.NodeID) types.TypeID {
	member, _ := e.nodes.Member(id)
	b := e.types.Builtins()
	field := e.tree.Name(member.Field)

	target := e.resolved(e.Infer(member.Target), e.nodes.Span(member.Target))
	switch {
	case e.types.IsError(target):
		return b.Error
	case e.types.IsNever(target):
		return b.Never
	case e.types.Kind(target) != types.KindHive:
		diag.ReportError(e.reporter, diag.SemaNonAggregateMember, e.nodes.Span(member.Target),
			"cannot access '"+field+"' of non-hive type "+e.label(target)).Emit()
		return b.Error
	}

	decl := e.types.MustLookup(target).Decl
	if decl.File == e.file {
		node, ok := e.syms.Member(decl.Node, field)
		if !ok {
			e.unknownMember(member.FieldSpan, target, field)
			return b.Error
		}
		e.syms.Bind(id, symbols.Local(node))
		return e.resolved(e.Infer(node), member.FieldSpan)
	}

	if e.modules == nil {
		diag.ReportError(e.reporter, diag.SemaExternalResolution, member.FieldSpan,
			"cannot resolve '"+field+"' of "+e.label(target)+": "+errNoModules.Error()).Emit()
		return b.Error
	}
	ty, err := e.modules.MemberType(decl, field, e.types)
	switch {
	case errors.Is(err, ErrUnknownMember):
		e.unknownMember(member.FieldSpan, target, field)
		return b.Error
	case err != nil:
		diag.ReportError(e.reporter, diag.SemaExternalResolution, member.FieldSpan,
			"cannot resolve '"+field+"' of "+e.label(target)+": "+err.Error()).Emit()
		return b.Error
	}
	return ty
}

func (e *Engine) unknownMember(span source.Span, hive types.TypeID, name string) {
	diag.ReportError(e.reporter, diag.SemaUnknownMember, span,
		"hive "+e.label(hive)+" has no member '"+name+"'").Emit()
}

func (e *Engine) inferCall(id ast.NodeID) types.TypeID {
	call, _ := e.nodes.Call(id)
	b := e.types.Builtins()

	callee := e.resolved(e.Infer(call.Callee), e.nodes.Span(call.Callee))
	args := make([]types.TypeID, len(call.Args))
	for i, arg := range call.Args {
		args[i] = e.resolved(e.Infer(arg), e.nodes.Span(arg))
	}

	switch {
	case e.types.IsError(callee):
		return b.Error
	case e.types.IsNever(callee):
		// рекурсивный вызов, тип ещё выясняется
		return b.Never
	case e.types.Kind(callee) != types.KindBlok:
		diag.ReportError(e.reporter, diag.SemaNonCallable, e.nodes.Span(call.Callee),
			"value of type "+e.label(callee)+" is not callable").Emit()
		return b.Error
	}

	info, _ := e.types.BlokInfo(callee)
	for i, argID := range call.Args {
		arg, _ := e.nodes.CallArg(argID)
		name := e.tree.Name(arg.Name)
		param, ok := findParam(info.Params, name)
		if !ok {
			diag.ReportError(e.reporter, diag.SemaUnknownMember, arg.NameSpan,
				"blok '"+info.Name+"' has no parameter '"+name+"'").Emit()
			continue
		}
		if param.Decl.File == e.file {
			e.syms.Bind(argID, symbols.Local(param.Decl.Node))
		}
		e.checkArg(id, argID, name, param, args[i])
	}

	result, _ := e.types.Result(callee)
	return result
}

// checkArg verifies one named argument against its parameter.
func (e *Engine) checkArg(call, argID ast.NodeID, name string, param types.Param, got types.TypeID) {
	arg, _ := e.nodes.CallArg(argID)
	if e.types.IsError(got) {
		return
	}
	want := e.resolved(param.Type, arg.NameSpan)
	if e.types.IsError(want) {
		return
	}
	fits := e.types.IsNever(got) || e.types.Assignable(want, got)
	if e.uncertain(want, got) && (!fits || e.types.IsNever(got)) {
		e.deferCheck(argID, func() { e.recheckArg(call, argID) })
		return
	}
	if fits {
		return
	}
	rb := diag.ReportError(e.reporter, diag.SemaArgumentTypeMismatch, e.nodes.Span(arg.Value),
		"argument '"+name+"' expects "+e.label(want)+", got "+e.label(got))
	if param.Decl.File == e.file {
		rb = rb.WithNote(e.nodes.Span(param.Decl.Node), "parameter declared here")
	}
	rb.Emit()
}

func (e *Engine) recheckArg(callID, argID ast.NodeID) {
	call, _ := e.nodes.Call(callID)
	callee := e.resolved(e.Infer(call.Callee), e.nodes.Span(call.Callee))
	info, ok := e.types.BlokInfo(callee)
	if !ok {
		return
	}
	arg, _ := e.nodes.CallArg(argID)
	name := e.tree.Name(arg.Name)
	param, ok := findParam(info.Params, name)
	if !ok {
		return
	}
	e.checkArg(callID, argID, name, param, e.resolved(e.Infer(argID), e.nodes.Span(argID)))
}

func findParam(params []types.Param, name string) (types.Param, bool) {
	for _, p := range params {
		if p.Name == name {
			return p, true
		}
	}
	return types.Param{}, false
}

func (e *Engine) inferTypeExpr(id ast.NodeID) types.TypeID {
	te, _ := e.nodes.TypeExpr(id)
	b := e.types.Builtins()
	switch te.Kind {
	case ast.TypeExprPrim:
		return e.types.Primitive(types.PrimKind(te.Prim))
	case ast.TypeExprMany:
		elem := e.resolved(e.Infer(te.Elem), e.nodes.Span(te.Elem))
		if e.types.IsError(elem) {
			return b.Error
		}
		return e.types.Many(elem)
	case ast.TypeExprNamed:
		def := e.syms.Definition(id)
		switch def.Kind {
		case symbols.DefLocal:
			return e.Infer(def.Node)
		case symbols.DefExternal:
			ty := e.resolved(e.external(def), e.nodes.Span(id))
			if e.types.IsError(ty) {
				return b.Error
			}
			if e.types.Kind(ty) != types.KindHive {
				diag.ReportError(e.reporter, diag.SemaNotAType, e.nodes.Span(id),
					"'"+def.Name+" of "+def.Module+"' is not a type").Emit()
				return b.Error
			}
			return ty
		}
		return b.Error
	default:
		diag.Internalf(e.nodes.Span(id), "unknown type expression kind %d", te.Kind)
		return b.Error
	}
}
