package ast

import (
	"bonk/internal/source"
)

// Node is the tagged header of every tree node. Payload indexes the arena
// that belongs to Kind; kinds without data keep NoPayloadID.
type Node struct {
	Kind    NodeKind
	Span    source.Span
	Payload PayloadID
}

// Nodes manages allocation of nodes and their per-kind payloads.
type Nodes struct {
	Arena     *Arena[Node]
	Programs  *Arena[ProgramData]
	Helps     *Arena[HelpData]
	Hives     *Arena[HiveData]
	Bloks     *Arena[BlokData]
	Bowls     *Arena[BowlData]
	Idents    *Arena[IdentData]
	Blocks    *Arena[BlockData]
	Loops     *Arena[LoopData]
	Numbers   *Arena[NumberData]
	StringLits *Arena[StringData]
	Arrays    *Arena[ArrayData]
	Binaries  *Arena[BinaryData]
	Unaries   *Arena[UnaryData]
	Calls     *Arena[CallData]
	CallArgs  *Arena[CallArgData]
	Members   *Arena[MemberData]
	Casts     *Arena[CastData]
	Bonks     *Arena[BonkData]
	TypeExprs *Arena[TypeExprData]
}

// NewNodes creates per-kind arenas preallocated with capHint (default 256).
func NewNodes(capHint uint) *Nodes {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Nodes{
		Arena:     NewArena[Node](capHint),
		Programs:  NewArena[ProgramData](1),
		Helps:     NewArena[HelpData](small),
		Hives:     NewArena[HiveData](small),
		Bloks:     NewArena[BlokData](small),
		Bowls:     NewArena[BowlData](small),
		Idents:    NewArena[IdentData](capHint),
		Blocks:    NewArena[BlockData](small),
		Loops:     NewArena[LoopData](small),
		Numbers:   NewArena[NumberData](small),
		StringLits: NewArena[StringData](small),
		Arrays:    NewArena[ArrayData](small),
		Binaries:  NewArena[BinaryData](small),
		Unaries:   NewArena[UnaryData](small),
		Calls:     NewArena[CallData](small),
		CallArgs:  NewArena[CallArgData](small),
		Members:   NewArena[MemberData](small),
		Casts:     NewArena[CastData](small),
		Bonks:     NewArena[BonkData](small),
		TypeExprs: NewArena[TypeExprData](small),
	}
}

func (n *Nodes) new(kind NodeKind, span source.Span, payload uint32) NodeID {
	return NodeID(n.Arena.Allocate(Node{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

// Get returns the node header or nil.
func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}

// Kind returns the kind of id, NodeInvalid for unknown IDs.
func (n *Nodes) Kind(id NodeID) NodeKind {
	if node := n.Get(id); node != nil {
		return node.Kind
	}
	return NodeInvalid
}

// Span returns the source span of id.
func (n *Nodes) Span(id NodeID) source.Span {
	if node := n.Get(id); node != nil {
		return node.Span
	}
	return source.Span{}
}

// Len reports the number of allocated nodes.
func (n *Nodes) Len() uint32 { return n.Arena.Len() }

func payload[T any](n *Nodes, id NodeID, kind NodeKind, arena *Arena[T]) (*T, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != kind {
		return nil, false
	}
	return arena.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewProgram(span source.Span, items []NodeID) NodeID {
	return n.new(NodeProgram, span, n.Programs.Allocate(ProgramData{Items: items}))
}

func (n *Nodes) Program(id NodeID) (*ProgramData, bool) {
	return payload(n, id, NodeProgram, n.Programs)
}

func (n *Nodes) NewHelp(span source.Span, module string, nameSpan source.Span) NodeID {
	return n.new(NodeHelp, span, n.Helps.Allocate(HelpData{Module: module, NameSpan: nameSpan}))
}

func (n *Nodes) Help(id NodeID) (*HelpData, bool) {
	return payload(n, id, NodeHelp, n.Helps)
}

func (n *Nodes) NewHive(span source.Span, name source.StringID, nameSpan source.Span, members []NodeID) NodeID {
	return n.new(NodeHive, span, n.Hives.Allocate(HiveData{Name: name, NameSpan: nameSpan, Members: members}))
}

func (n *Nodes) Hive(id NodeID) (*HiveData, bool) {
	return payload(n, id, NodeHive, n.Hives)
}

func (n *Nodes) NewBlok(span source.Span, data BlokData) NodeID {
	return n.new(NodeBlok, span, n.Bloks.Allocate(data))
}

func (n *Nodes) Blok(id NodeID) (*BlokData, bool) {
	return payload(n, id, NodeBlok, n.Bloks)
}

func (n *Nodes) NewBowl(span source.Span, data BowlData) NodeID {
	return n.new(NodeBowl, span, n.Bowls.Allocate(data))
}

func (n *Nodes) Bowl(id NodeID) (*BowlData, bool) {
	return payload(n, id, NodeBowl, n.Bowls)
}

func (n *Nodes) NewIdent(span source.Span, name source.StringID) NodeID {
	return n.new(NodeIdent, span, n.Idents.Allocate(IdentData{Name: name}))
}

func (n *Nodes) Ident(id NodeID) (*IdentData, bool) {
	return payload(n, id, NodeIdent, n.Idents)
}

func (n *Nodes) NewBlock(span source.Span, stmts []NodeID) NodeID {
	return n.new(NodeBlock, span, n.Blocks.Allocate(BlockData{Stmts: stmts}))
}

func (n *Nodes) Block(id NodeID) (*BlockData, bool) {
	return payload(n, id, NodeBlock, n.Blocks)
}

func (n *Nodes) NewLoop(span source.Span, body NodeID) NodeID {
	return n.new(NodeLoop, span, n.Loops.Allocate(LoopData{Body: body}))
}

func (n *Nodes) Loop(id NodeID) (*LoopData, bool) {
	return payload(n, id, NodeLoop, n.Loops)
}

func (n *Nodes) NewNumber(span source.Span, text string, fractional bool) NodeID {
	return n.new(NodeNumber, span, n.Numbers.Allocate(NumberData{Text: text, Fractional: fractional}))
}

func (n *Nodes) Number(id NodeID) (*NumberData, bool) {
	return payload(n, id, NodeNumber, n.Numbers)
}

func (n *Nodes) NewString(span source.Span, value string) NodeID {
	return n.new(NodeString, span, n.StringLits.Allocate(StringData{Value: value}))
}

func (n *Nodes) StringLit(id NodeID) (*StringData, bool) {
	return payload(n, id, NodeString, n.StringLits)
}

func (n *Nodes) NewArray(span source.Span, elems []NodeID) NodeID {
	return n.new(NodeArray, span, n.Arrays.Allocate(ArrayData{Elems: elems}))
}

func (n *Nodes) Array(id NodeID) (*ArrayData, bool) {
	return payload(n, id, NodeArray, n.Arrays)
}

func (n *Nodes) NewBinary(span source.Span, op BinaryOp, left, right NodeID) NodeID {
	return n.new(NodeBinary, span, n.Binaries.Allocate(BinaryData{Op: op, Left: left, Right: right}))
}

func (n *Nodes) Binary(id NodeID) (*BinaryData, bool) {
	return payload(n, id, NodeBinary, n.Binaries)
}

func (n *Nodes) NewUnary(span source.Span, op UnaryOp, operand NodeID) NodeID {
	return n.new(NodeUnary, span, n.Unaries.Allocate(UnaryData{Op: op, Operand: operand}))
}

func (n *Nodes) Unary(id NodeID) (*UnaryData, bool) {
	return payload(n, id, NodeUnary, n.Unaries)
}

func (n *Nodes) NewCall(span source.Span, callee NodeID, args []NodeID) NodeID {
	return n.new(NodeCall, span, n.Calls.Allocate(CallData{Callee: callee, Args: args}))
}

func (n *Nodes) Call(id NodeID) (*CallData, bool) {
	return payload(n, id, NodeCall, n.Calls)
}

func (n *Nodes) NewCallArg(span source.Span, name source.StringID, nameSpan source.Span, value NodeID) NodeID {
	return n.new(NodeCallArg, span, n.CallArgs.Allocate(CallArgData{Name: name, NameSpan: nameSpan, Value: value}))
}

func (n *Nodes) CallArg(id NodeID) (*CallArgData, bool) {
	return payload(n, id, NodeCallArg, n.CallArgs)
}

func (n *Nodes) NewMember(span source.Span, field source.StringID, fieldSpan source.Span, target NodeID) NodeID {
	return n.new(NodeMember, span, n.Members.Allocate(MemberData{Field: field, FieldSpan: fieldSpan, Target: target}))
}

func (n *Nodes) Member(id NodeID) (*MemberData, bool) {
	return payload(n, id, NodeMember, n.Members)
}

func (n *Nodes) NewCast(span source.Span, operand, typ NodeID) NodeID {
	return n.new(NodeCast, span, n.Casts.Allocate(CastData{Operand: operand, Type: typ}))
}

func (n *Nodes) Cast(id NodeID) (*CastData, bool) {
	return payload(n, id, NodeCast, n.Casts)
}

func (n *Nodes) NewNull(span source.Span) NodeID {
	return n.new(NodeNull, span, 0)
}

func (n *Nodes) NewBonk(span source.Span, value NodeID) NodeID {
	return n.new(NodeBonk, span, n.Bonks.Allocate(BonkData{Value: value}))
}

func (n *Nodes) Bonk(id NodeID) (*BonkData, bool) {
	return payload(n, id, NodeBonk, n.Bonks)
}

func (n *Nodes) NewBrek(span source.Span) NodeID {
	return n.new(NodeBrek, span, 0)
}

func (n *Nodes) NewRebonk(span source.Span) NodeID {
	return n.new(NodeRebonk, span, 0)
}

func (n *Nodes) NewTypeExpr(span source.Span, data TypeExprData) NodeID {
	return n.new(NodeTypeExpr, span, n.TypeExprs.Allocate(data))
}

func (n *Nodes) TypeExpr(id NodeID) (*TypeExprData, bool) {
	return payload(n, id, NodeTypeExpr, n.TypeExprs)
}
