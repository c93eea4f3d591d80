package parser

import (
	"bonk/internal/ast"
	"bonk/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1 // = += -= *= /=
	precLogicalOr      = 2 // or
	precLogicalAnd     = 3 // and
	precComparison     = 4 // == != < <= > >=
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * /
)

// binaryPrec возвращает приоритет и правоассоциативность оператора.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign:
		return precAssignment, true
	case token.KwOr:
		return precLogicalOr, false
	case token.KwAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash:
		return precMultiplicative, false
	default:
		return -1, false // не бинарный оператор
	}
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.Plus:        ast.BinaryAdd,
	token.Minus:       ast.BinarySub,
	token.Star:        ast.BinaryMul,
	token.Slash:       ast.BinaryDiv,
	token.Assign:      ast.BinaryAssign,
	token.PlusAssign:  ast.BinaryAddAssign,
	token.MinusAssign: ast.BinarySubAssign,
	token.StarAssign:  ast.BinaryMulAssign,
	token.SlashAssign: ast.BinaryDivAssign,
	token.EqEq:        ast.BinaryEq,
	token.BangEq:      ast.BinaryNotEq,
	token.Lt:          ast.BinaryLess,
	token.LtEq:        ast.BinaryLessEq,
	token.Gt:          ast.BinaryGreater,
	token.GtEq:        ast.BinaryGreaterEq,
	token.KwAnd:       ast.BinaryAnd,
	token.KwOr:        ast.BinaryOr,
}
