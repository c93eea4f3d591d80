package symbols

import (
	"strings"

	"bonk/internal/ast"
)

// DisplayName returns the printable name of a definition. Bloks and hives
// are qualified by their enclosing bloks and hives: `area of shape`.
func (t *Table) DisplayName(decl ast.NodeID) string {
	name, _, ok := t.Tree.DeclName(decl)
	if !ok {
		return "?"
	}
	own := t.Tree.Name(name)
	switch t.Tree.Nodes.Kind(decl) {
	case ast.NodeBlok, ast.NodeHive:
	default:
		return own
	}
	parts := []string{own}
	for scope := t.declScope[decl]; scope.IsValid(); {
		s := t.Scopes.Get(scope)
		if s == nil {
			break
		}
		if s.Kind == ScopeBlok || s.Kind == ScopeHive {
			if owner, _, ok := t.Tree.DeclName(s.Owner); ok {
				parts = append(parts, t.Tree.Name(owner))
			}
		}
		scope = s.Parent
	}
	return strings.Join(parts, " of ")
}
