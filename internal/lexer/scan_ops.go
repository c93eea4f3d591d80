package lexer

import (
	"bonk/internal/diag"
	"bonk/internal/token"
)

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Off
	ch := lx.cursor.Bump()
	kind := token.Invalid
	switch ch {
	case '+':
		kind = lx.withAssign(token.Plus, token.PlusAssign)
	case '-':
		kind = lx.withAssign(token.Minus, token.MinusAssign)
	case '*':
		kind = lx.withAssign(token.Star, token.StarAssign)
	case '/':
		kind = lx.withAssign(token.Slash, token.SlashAssign)
	case '=':
		kind = lx.withAssign(token.Assign, token.EqEq)
	case '<':
		kind = lx.withAssign(token.Lt, token.LtEq)
	case '>':
		kind = lx.withAssign(token.Gt, token.GtEq)
	case '!':
		if lx.cursor.Eat('=') {
			kind = token.BangEq
		}
	case '@':
		kind = token.At
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	}
	sp := lx.cursor.SpanFrom(start)
	if kind == token.Invalid {
		lx.report(diag.LexUnknownChar, start, "unknown character '"+lx.text(sp)+"'")
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) withAssign(plain, withEq token.Kind) token.Kind {
	if lx.cursor.Eat('=') {
		return withEq
	}
	return plain
}
