package symbols

import (
	"fmt"

	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/source"
)

// ExternalScope is the top-level scope of another module.
type ExternalScope interface {
	File() source.FileID
	Has(name string) bool
}

// ModuleResolver locates helped modules. from is the file that contains
// the `help` statement.
type ModuleResolver interface {
	ResolveModule(name string, from source.FileID) (ExternalScope, error)
}

// Resolver drives scope management and declaration/lookup routines.
type Resolver struct {
	table    *Table
	reporter diag.Reporter
	stack    []ScopeID
}

// NewResolver wires a resolver to a table with an empty scope stack.
func NewResolver(table *Table, reporter diag.Reporter) *Resolver {
	return &Resolver{
		table:    table,
		reporter: reporter,
		stack:    make([]ScopeID, 0, 8),
	}
}

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// Enter creates the scope of a scope-opening node and pushes it.
func (r *Resolver) Enter(owner ast.NodeID) ScopeID {
	kind := scopeKindOf(r.table.Tree.Nodes.Kind(owner))
	if kind == ScopeInvalid {
		diag.Internalf(r.table.Tree.Nodes.Span(owner), "%s does not open a scope", r.table.Tree.Nodes.Kind(owner))
	}
	scope := r.table.Scopes.New(kind, r.CurrentScope(), owner)
	r.table.scopeOf[owner] = scope
	r.stack = append(r.stack, scope)
	return scope
}

// Leave pops the current scope, validating against the expected one.
func (r *Resolver) Leave(expected ScopeID) {
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	if expected.IsValid() && top != expected {
		diag.Internalf(source.Span{}, "scope mismatch: leaving %d, top is %d", expected, top)
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Declare installs decl into the current scope. A name already present in
// the same scope is reported and the first definition is kept.
func (r *Resolver) Declare(decl ast.NodeID) bool {
	scopeID := r.CurrentScope()
	scope := r.table.Scopes.Get(scopeID)
	if scope == nil {
		return false
	}
	name, span, ok := r.table.Tree.DeclName(decl)
	if !ok || name == source.NoStringID {
		return false
	}
	if prev, exists := scope.NameIndex[name]; exists {
		if prev != decl {
			r.reportDuplicate(name, span, prev)
		}
		return false
	}
	scope.NameIndex[name] = decl
	scope.Names = append(scope.Names, name)
	r.table.declScope[decl] = scopeID
	return true
}

// Lookup walks the scope chain, innermost first.
func (r *Resolver) Lookup(name source.StringID) (ast.NodeID, bool) {
	for scopeID := r.CurrentScope(); scopeID.IsValid(); {
		scope := r.table.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		if node, ok := scope.NameIndex[name]; ok {
			return node, true
		}
		scopeID = scope.Parent
	}
	return ast.NoNodeID, false
}

// lookupHelped consults helped modules in declaration order.
func (r *Resolver) lookupHelped(name string) (Definition, bool) {
	for _, h := range r.table.Helps {
		if h.Scope != nil && h.Scope.Has(name) {
			return External(h.Name, h.Scope.File(), name), true
		}
	}
	return Definition{}, false
}

// inLoop reports whether the current position is inside a loop of the
// innermost blok (or top-level code).
func (r *Resolver) inLoop() bool {
	for i := len(r.stack) - 1; i >= 0; i-- {
		switch r.table.Scopes.Get(r.stack[i]).Kind {
		case ScopeLoop:
			return true
		case ScopeBlok, ScopeHive:
			return false
		}
	}
	return false
}

func (r *Resolver) reportDuplicate(name source.StringID, span source.Span, prev ast.NodeID) {
	if r.reporter == nil {
		return
	}
	msg := fmt.Sprintf("'%s' is already defined in this scope", r.table.Tree.Name(name))
	b := diag.ReportError(r.reporter, diag.SemaDuplicateSymbol, span, msg)
	if _, prevSpan, ok := r.table.Tree.DeclName(prev); ok {
		b.WithNote(prevSpan, "previous definition here")
	}
	b.Emit()
}
