package symbols

import (
	"bonk/internal/ast"
	"bonk/internal/source"
)

// ScopeKind enumerates supported scope categories. It mirrors the kind of
// node that opened the scope.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeProgram
	ScopeHive
	ScopeBlok
	ScopeBlock
	ScopeLoop
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeProgram:
		return "program"
	case ScopeHive:
		return "hive"
	case ScopeBlok:
		return "blok"
	case ScopeBlock:
		return "block"
	case ScopeLoop:
		return "loop"
	default:
		return "invalid"
	}
}

func scopeKindOf(k ast.NodeKind) ScopeKind {
	switch k {
	case ast.NodeProgram:
		return ScopeProgram
	case ast.NodeHive:
		return ScopeHive
	case ast.NodeBlok:
		return ScopeBlok
	case ast.NodeBlock:
		return ScopeBlock
	case ast.NodeLoop:
		return ScopeLoop
	default:
		return ScopeInvalid
	}
}

// Scope models a lexical scope with a parent-child hierarchy. Names map to
// their defining node; the first definition of a name wins.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     ast.NodeID
	NameIndex map[source.StringID]ast.NodeID
	Names     []source.StringID // declaration order
	Children  []ScopeID
}
