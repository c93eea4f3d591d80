package symbols

import (
	"bonk/internal/ast"
	"bonk/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes uint32 }

// HelpModule is one `help "name";` of the module, in declaration order.
type HelpModule struct {
	Name  string
	Node  ast.NodeID
	Scope ExternalScope // nil when the module could not be loaded
}

// Table aggregates scopes and identifier bindings of one module.
type Table struct {
	Scopes *Scopes
	Tree   *ast.Builder
	Root   ScopeID
	Helps  []HelpModule

	bindings  map[ast.NodeID]Definition
	scopeOf   map[ast.NodeID]ScopeID // scope-opening node -> its scope
	declScope map[ast.NodeID]ScopeID // definition node -> scope it lives in
}

// NewTable builds a fresh table over tree.
func NewTable(h Hints, tree *ast.Builder) *Table {
	return &Table{
		Scopes:    NewScopes(h.Scopes),
		Tree:      tree,
		bindings:  make(map[ast.NodeID]Definition),
		scopeOf:   make(map[ast.NodeID]ScopeID),
		declScope: make(map[ast.NodeID]ScopeID),
	}
}

// Definition returns what node resolved to. Unresolved nodes yield DefNone.
func (t *Table) Definition(node ast.NodeID) Definition {
	return t.bindings[node]
}

// Bind records a resolution for node. The first binding wins.
func (t *Table) Bind(node ast.NodeID, def Definition) {
	if _, ok := t.bindings[node]; ok {
		return
	}
	t.bindings[node] = def
}

// Bindings reports the number of recorded resolutions.
func (t *Table) Bindings() int { return len(t.bindings) }

// ScopeOf returns the scope opened by a program, hive, blok, block or loop node.
func (t *Table) ScopeOf(node ast.NodeID) ScopeID {
	return t.scopeOf[node]
}

// DeclScope returns the scope a definition node was registered in.
func (t *Table) DeclScope(node ast.NodeID) ScopeID {
	return t.declScope[node]
}

// LookupIn searches a single scope.
func (t *Table) LookupIn(scope ScopeID, name source.StringID) (ast.NodeID, bool) {
	s := t.Scopes.Get(scope)
	if s == nil {
		return ast.NoNodeID, false
	}
	node, ok := s.NameIndex[name]
	return node, ok
}

// Member returns the field or blok named name declared in hive.
func (t *Table) Member(hive ast.NodeID, name string) (ast.NodeID, bool) {
	id, ok := t.Tree.Strings.Find(name)
	if !ok {
		return ast.NoNodeID, false
	}
	return t.LookupIn(t.scopeOf[hive], id)
}

// Export returns the top-level definition named name.
func (t *Table) Export(name string) (ast.NodeID, bool) {
	id, ok := t.Tree.Strings.Find(name)
	if !ok {
		return ast.NoNodeID, false
	}
	return t.LookupIn(t.Root, id)
}

// Exports lists top-level definitions in declaration order.
func (t *Table) Exports() []ast.NodeID {
	root := t.Scopes.Get(t.Root)
	if root == nil {
		return nil
	}
	out := make([]ast.NodeID, 0, len(root.Names))
	for _, name := range root.Names {
		out = append(out, root.NameIndex[name])
	}
	return out
}
