package modules

import (
	"fmt"

	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/sema"
	"bonk/internal/source"
	"bonk/internal/symbols"
	"bonk/internal/types"
)

// State tracks how far a module got.
type State uint8

const (
	StateLoading  State = iota + 1 // parsing or resolving
	StateResolved                  // engine ready, types inferred on demand
	StateChecked                   // full sema.Check done
	StateBroken                    // syntax errors, no analysis
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateResolved:
		return "resolved"
	case StateChecked:
		return "checked"
	case StateBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// Module is one loaded source file.
type Module struct {
	Name    string // as written in `help`, or the file stem for the root
	Path    string
	Tree    *ast.Builder
	Symbols *symbols.Table
	Engine  *sema.Engine
	Bag     *diag.Bag
	State   State
	OK      bool // resolution and check both clean

	file     source.FileID
	resolved bool
}

// File implements symbols.ExternalScope.
func (m *Module) File() source.FileID { return m.file }

// Has implements symbols.ExternalScope.
func (m *Module) Has(name string) bool {
	if m.Symbols == nil {
		return false
	}
	_, ok := m.Symbols.Export(name)
	return ok
}

// ExportType returns the type of a top-level definition imported into into.
func (m *Module) ExportType(name string, into *types.Interner) (types.TypeID, error) {
	if m.Engine == nil {
		return types.NoTypeID, fmt.Errorf("module %s: %w", m.Name, ErrNotReady)
	}
	node, ok := m.Symbols.Export(name)
	if !ok {
		return types.NoTypeID, fmt.Errorf("'%s' in module %s: %w", name, m.Name, sema.ErrUnknownExport)
	}
	return m.imported(node, into)
}

// MemberType returns the type of a member of hive imported into into.
func (m *Module) MemberType(hive ast.NodeID, name string, into *types.Interner) (types.TypeID, error) {
	if m.Engine == nil {
		return types.NoTypeID, fmt.Errorf("module %s: %w", m.Name, ErrNotReady)
	}
	node, ok := m.Symbols.Member(hive, name)
	if !ok {
		return types.NoTypeID, sema.ErrUnknownMember
	}
	return m.imported(node, into)
}

func (m *Module) imported(node ast.NodeID, into *types.Interner) (types.TypeID, error) {
	// вызывающий модуль может сам находиться в спекуляции
	ty := m.Engine.Query(node)
	return into.Import(m.Engine.Types(), ty)
}

// Check runs full inference once and records the outcome.
func (m *Module) Check() bool {
	switch m.State {
	case StateChecked:
		return m.OK
	case StateBroken, StateLoading:
		return false
	}
	ok := m.Engine.Check()
	m.OK = m.resolved && ok
	m.State = StateChecked
	return m.OK
}

// Result exposes the codegen-facing queries of a checked module.
func (m *Module) Result() sema.Result {
	return m.Engine.Result(m.OK)
}
