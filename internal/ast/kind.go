package ast

// NodeKind tags the closed set of Bonk syntax nodes.
type NodeKind uint8

const (
	NodeInvalid NodeKind = iota
	NodeProgram
	NodeHelp
	NodeHive
	NodeBlok
	NodeBowl
	NodeIdent
	NodeBlock
	NodeLoop
	NodeNumber
	NodeString
	NodeArray
	NodeBinary
	NodeUnary
	NodeCall
	NodeCallArg
	NodeMember
	NodeCast
	NodeNull
	NodeBonk
	NodeBrek
	NodeRebonk
	NodeTypeExpr
)

var nodeKindNames = [...]string{
	NodeInvalid:  "invalid",
	NodeProgram:  "program",
	NodeHelp:     "help",
	NodeHive:     "hive",
	NodeBlok:     "blok",
	NodeBowl:     "bowl",
	NodeIdent:    "identifier",
	NodeBlock:    "block",
	NodeLoop:     "loop",
	NodeNumber:   "number",
	NodeString:   "string",
	NodeArray:    "array",
	NodeBinary:   "binary",
	NodeUnary:    "unary",
	NodeCall:     "call",
	NodeCallArg:  "argument",
	NodeMember:   "member",
	NodeCast:     "cast",
	NodeNull:     "null",
	NodeBonk:     "bonk",
	NodeBrek:     "brek",
	NodeRebonk:   "rebonk",
	NodeTypeExpr: "type",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "unknown"
}

// OpensScope reports whether nodes of this kind push a lexical scope.
func (k NodeKind) OpensScope() bool {
	switch k {
	case NodeProgram, NodeHive, NodeBlok, NodeBlock, NodeLoop:
		return true
	default:
		return false
	}
}

// BinaryOp enumerates binary operators, assignments included.
type BinaryOp uint8

const (
	BinaryInvalid BinaryOp = iota
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryAssign
	BinaryAddAssign
	BinarySubAssign
	BinaryMulAssign
	BinaryDivAssign
	BinaryEq
	BinaryNotEq
	BinaryLess
	BinaryLessEq
	BinaryGreater
	BinaryGreaterEq
	BinaryAnd
	BinaryOr
)

var binaryOpText = [...]string{
	BinaryInvalid:   "?",
	BinaryAdd:       "+",
	BinarySub:       "-",
	BinaryMul:       "*",
	BinaryDiv:       "/",
	BinaryAssign:    "=",
	BinaryAddAssign: "+=",
	BinarySubAssign: "-=",
	BinaryMulAssign: "*=",
	BinaryDivAssign: "/=",
	BinaryEq:        "==",
	BinaryNotEq:     "!=",
	BinaryLess:      "<",
	BinaryLessEq:    "<=",
	BinaryGreater:   ">",
	BinaryGreaterEq: ">=",
	BinaryAnd:       "and",
	BinaryOr:        "or",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsComparison reports whether the operator yields buul.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case BinaryEq, BinaryNotEq, BinaryLess, BinaryLessEq, BinaryGreater, BinaryGreaterEq:
		return true
	default:
		return false
	}
}

// IsAssignment reports whether the operator writes its left operand.
func (op BinaryOp) IsAssignment() bool {
	switch op {
	case BinaryAssign, BinaryAddAssign, BinarySubAssign, BinaryMulAssign, BinaryDivAssign:
		return true
	default:
		return false
	}
}

// IsShortCircuit reports whether the right operand may not be evaluated.
func (op BinaryOp) IsShortCircuit() bool {
	return op == BinaryAnd || op == BinaryOr
}

type UnaryOp uint8

const (
	UnaryInvalid UnaryOp = iota
	UnaryPlus
	UnaryMinus
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	default:
		return "?"
	}
}

// PrimKind names a primitive type keyword.
type PrimKind uint8

const (
	PrimInvalid PrimKind = iota
	PrimBuul
	PrimShrt
	PrimNubr
	PrimLong
	PrimFlot
	PrimDobl
	PrimStrg
)

// TypeExprKind distinguishes the shapes of written type annotations.
type TypeExprKind uint8

const (
	TypeExprInvalid TypeExprKind = iota
	TypeExprPrim
	TypeExprNamed
	TypeExprMany
)
