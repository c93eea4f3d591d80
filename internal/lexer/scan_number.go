package lexer

import (
	"bonk/internal/diag"
	"bonk/internal/token"
)

// scanNumber: digits ('.' digits)? ([eE] [+-]? digits)?
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if c := lx.cursor.Peek(); c == 'e' || c == 'E' {
		lx.cursor.Bump()
		if c := lx.cursor.Peek(); c == '+' || c == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			lx.report(diag.LexBadNumber, start, "exponent has no digits")
			return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.report(diag.LexBadNumber, start, "malformed number literal")
		return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
}
