package symbols

import (
	"bonk/internal/ast"
	"bonk/internal/source"
)

// DefKind tags the SymbolDefinition variant.
type DefKind uint8

const (
	DefNone DefKind = iota
	DefLocal
	DefExternal
)

func (k DefKind) String() string {
	switch k {
	case DefLocal:
		return "local"
	case DefExternal:
		return "external"
	default:
		return "none"
	}
}

// Definition is what an identifier use resolves to.
//
//	DefLocal    -> Node is the defining node in this module
//	DefExternal -> Module/File name the helped module, Name the symbol
//	DefNone     -> unresolved
type Definition struct {
	Kind   DefKind
	Node   ast.NodeID
	Module string
	File   source.FileID
	Name   string
}

func Local(node ast.NodeID) Definition { return Definition{Kind: DefLocal, Node: node} }

func External(module string, file source.FileID, name string) Definition {
	return Definition{Kind: DefExternal, Module: module, File: file, Name: name}
}

func (d Definition) IsLocal() bool    { return d.Kind == DefLocal }
func (d Definition) IsExternal() bool { return d.Kind == DefExternal }
func (d Definition) IsValid() bool    { return d.Kind != DefNone }
