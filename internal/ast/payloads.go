package ast

import "bonk/internal/source"

type ProgramData struct {
	Items []NodeID
}

// HelpData is `help "module";`.
type HelpData struct {
	Module   string
	NameSpan source.Span
}

type HiveData struct {
	Name     source.StringID
	NameSpan source.Span
	Members  []NodeID // bowl and blok nodes
}

type BlokData struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []NodeID // bowl nodes with IsParam set
	Return   NodeID   // type expression, NoNodeID when not annotated
	Body     NodeID   // block, NoNodeID for declarations without body
}

type BowlData struct {
	Name     source.StringID
	NameSpan source.Span
	Type     NodeID // type expression or NoNodeID
	Value    NodeID // initializer or NoNodeID
	IsParam  bool
}

type IdentData struct {
	Name source.StringID
}

type BlockData struct {
	Stmts []NodeID
}

type LoopData struct {
	Body NodeID
}

type NumberData struct {
	Text string
	// Fractional is set when the literal was written with a fraction or exponent.
	Fractional bool
}

type StringData struct {
	Value string
}

type ArrayData struct {
	Elems []NodeID
}

type BinaryData struct {
	Op    BinaryOp
	Left  NodeID
	Right NodeID
}

type UnaryData struct {
	Op      UnaryOp
	Operand NodeID
}

type CallData struct {
	Callee NodeID
	Args   []NodeID // NodeCallArg
}

type CallArgData struct {
	Name     source.StringID
	NameSpan source.Span
	Value    NodeID
}

// MemberData is `Field of Target`.
type MemberData struct {
	Field     source.StringID
	FieldSpan source.Span
	Target    NodeID
}

type CastData struct {
	Operand NodeID // may be NoNodeID
	Type    NodeID
}

type BonkData struct {
	Value NodeID // NoNodeID for a bare `bonk`
}

type TypeExprData struct {
	Kind TypeExprKind
	Prim PrimKind
	Name source.StringID // TypeExprNamed
	Elem NodeID          // TypeExprMany
}
