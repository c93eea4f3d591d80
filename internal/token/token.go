package token

import (
	"bonk/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a number or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == NumberLit || t.Kind == StringLit
}

// IsPrimitiveType reports whether the token names a primitive type.
func (t Token) IsPrimitiveType() bool {
	return t.Kind >= KwBuul && t.Kind <= KwStrg
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwHelp && t.Kind <= KwStrg
}

// IsAssignment reports whether the token is '=' or a compound assignment.
func (t Token) IsAssignment() bool {
	switch t.Kind {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign:
		return true
	default:
		return false
	}
}

func (t Token) IsIdent() bool { return t.Kind == Ident }
