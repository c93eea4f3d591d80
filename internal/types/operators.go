package types

import "bonk/internal/ast"

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint32

const (
	FamilyNone FamilyMask = 0
	FamilyBool FamilyMask = 1 << iota
	FamilyArith
	FamilyString
	FamilyMany
	FamilyNominal // hive and blok
	FamilyNull
	FamilyNothing
)

// BinaryResult describes how to derive the result type for an operator.
type BinaryResult uint8

const (
	BinaryResultUnknown BinaryResult = iota
	BinaryResultLeft
	BinaryResultBool
)

// BinaryFlags annotate special handling for binary operators.
type BinaryFlags uint8

const (
	BinaryFlagNone     BinaryFlags = 0
	BinaryFlagSameType BinaryFlags = 1 << iota // right must equal left
	BinaryFlagNullable                         // right may also be null
)

// BinarySpec lists operand families and expected result for an operation.
type BinarySpec struct {
	Left   FamilyMask
	Right  FamilyMask
	Result BinaryResult
	Flags  BinaryFlags
}

func arith(result BinaryResult) []BinarySpec {
	return []BinarySpec{{Left: FamilyArith, Right: FamilyArith, Result: result}}
}

var binarySpecTable = map[ast.BinaryOp][]BinarySpec{
	ast.BinaryAdd: {
		{Left: FamilyArith, Right: FamilyArith, Result: BinaryResultLeft},
		{Left: FamilyString, Right: FamilyString, Result: BinaryResultLeft},
	},
	ast.BinarySub: arith(BinaryResultLeft),
	ast.BinaryMul: arith(BinaryResultLeft),
	ast.BinaryDiv: arith(BinaryResultLeft),
	ast.BinaryAssign: {
		{Left: FamilyArith, Right: FamilyArith, Result: BinaryResultLeft},
		{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultLeft},
		{Left: FamilyString, Right: FamilyString, Result: BinaryResultLeft},
		{Left: FamilyMany, Right: FamilyMany, Result: BinaryResultLeft, Flags: BinaryFlagSameType},
		{Left: FamilyNominal, Right: FamilyNominal, Result: BinaryResultLeft, Flags: BinaryFlagSameType | BinaryFlagNullable},
	},
	ast.BinaryAddAssign: {
		{Left: FamilyArith, Right: FamilyArith, Result: BinaryResultLeft},
		{Left: FamilyString, Right: FamilyString, Result: BinaryResultLeft},
		{Left: FamilyMany, Right: FamilyMany, Result: BinaryResultLeft, Flags: BinaryFlagSameType},
	},
	ast.BinarySubAssign: arith(BinaryResultLeft),
	ast.BinaryMulAssign: arith(BinaryResultLeft),
	ast.BinaryDivAssign: arith(BinaryResultLeft),
	ast.BinaryEq:        equality,
	ast.BinaryNotEq:     equality,
	ast.BinaryLess:      arith(BinaryResultBool),
	ast.BinaryLessEq:    arith(BinaryResultBool),
	ast.BinaryGreater:   arith(BinaryResultBool),
	ast.BinaryGreaterEq: arith(BinaryResultBool),
	ast.BinaryAnd: {
		{Left: FamilyBool, Right: FamilyBool | FamilyNothing, Result: BinaryResultLeft},
	},
	ast.BinaryOr: {
		{Left: FamilyBool, Right: FamilyBool | FamilyNothing, Result: BinaryResultLeft},
	},
}

var equality = []BinarySpec{
	{Left: FamilyArith, Right: FamilyArith, Result: BinaryResultBool},
	{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool},
	{Left: FamilyString, Right: FamilyString, Result: BinaryResultBool},
	{Left: FamilyNominal, Right: FamilyNominal, Result: BinaryResultBool, Flags: BinaryFlagSameType | BinaryFlagNullable},
	{Left: FamilyNull, Right: FamilyNominal | FamilyNull, Result: BinaryResultBool},
}

// UnarySpec describes operand expectations for unary operators.
type UnarySpec struct {
	Operand FamilyMask
}

var unarySpecTable = map[ast.UnaryOp]UnarySpec{
	ast.UnaryPlus:  {Operand: FamilyArith},
	ast.UnaryMinus: {Operand: FamilyArith},
}

// BinarySpecs returns the permitted operand shapes for op.
func BinarySpecs(op ast.BinaryOp) []BinarySpec {
	return binarySpecTable[op]
}

// UnarySpecFor returns the operand shape accepted by op.
func UnarySpecFor(op ast.UnaryOp) (UnarySpec, bool) {
	spec, ok := unarySpecTable[op]
	return spec, ok
}

// Family classifies a resolved type.
func (in *Interner) Family(id TypeID) FamilyMask {
	k := in.Kind(id)
	switch {
	case k == KindBuul:
		return FamilyBool
	case k.IsArithmetic():
		return FamilyArith
	case k == KindStrg:
		return FamilyString
	case k == KindMany:
		return FamilyMany
	case k == KindHive || k == KindBlok:
		return FamilyNominal
	case k == KindNull:
		return FamilyNull
	case k == KindNothing:
		return FamilyNothing
	default:
		return FamilyNone
	}
}

// AllowsBinary checks `left op right` for resolved, non-sentinel operands
// and returns the result type.
func (in *Interner) AllowsBinary(op ast.BinaryOp, left, right TypeID) (TypeID, bool) {
	lf, rf := in.Family(left), in.Family(right)
	for _, spec := range binarySpecTable[op] {
		if spec.Left&lf == 0 {
			continue
		}
		rightOK := spec.Right&rf != 0
		if rightOK && spec.Flags&BinaryFlagSameType != 0 && left != right {
			rightOK = false
		}
		if !rightOK && spec.Flags&BinaryFlagNullable != 0 && rf == FamilyNull {
			rightOK = true
		}
		if !rightOK {
			continue
		}
		if spec.Result == BinaryResultBool {
			return in.builtins.Buul, true
		}
		return left, true
	}
	return NoTypeID, false
}

// AllowsUnary checks `op operand` and returns the result type.
func (in *Interner) AllowsUnary(op ast.UnaryOp, operand TypeID) (TypeID, bool) {
	spec, ok := unarySpecTable[op]
	if !ok || spec.Operand&in.Family(operand) == 0 {
		return NoTypeID, false
	}
	return operand, true
}

// Assignable reports whether a value of type src may be stored in dst.
func (in *Interner) Assignable(dst, src TypeID) bool {
	_, ok := in.AllowsBinary(ast.BinaryAssign, dst, src)
	return ok
}
