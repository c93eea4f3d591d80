package sema

import (
	"bonk/internal/ast"
	"bonk/internal/types"
)

// TypeTable caches node types. Tables form a chain through parent; lookups
// go innermost first. Entries are write-once per table.
type TypeTable struct {
	parent  *TypeTable
	entries map[ast.NodeID]types.TypeID
	order   []ast.NodeID
}

func newTypeTable(parent *TypeTable) *TypeTable {
	return &TypeTable{
		parent:  parent,
		entries: make(map[ast.NodeID]types.TypeID),
	}
}

// Lookup searches the chain starting at t.
func (t *TypeTable) Lookup(node ast.NodeID) (types.TypeID, bool) {
	for tbl := t; tbl != nil; tbl = tbl.parent {
		if ty, ok := tbl.entries[node]; ok {
			return ty, true
		}
	}
	return types.NoTypeID, false
}

// Commit stores ty for node unless this table already has an entry.
func (t *TypeTable) Commit(node ast.NodeID, ty types.TypeID) types.TypeID {
	if prev, ok := t.entries[node]; ok {
		return prev
	}
	t.entries[node] = ty
	t.order = append(t.order, node)
	return ty
}

// Len reports the number of entries owned by this table (not the chain).
func (t *TypeTable) Len() int { return len(t.entries) }

// sink moves every entry whose type does not contain Never into the parent
// and drops the rest. The table must not be used afterwards.
func (t *TypeTable) sink(in *types.Interner) (kept, dropped int) {
	for _, node := range t.order {
		ty := t.entries[node]
		if in.ContainsNever(ty) {
			dropped++
			continue
		}
		t.parent.Commit(node, ty)
		kept++
	}
	t.entries, t.order = nil, nil
	return kept, dropped
}
