package lexer

import (
	"strings"

	"bonk/internal/diag"
	"bonk/internal/token"
)

// scanString читает "..." с escape-последовательностями \n \t \" \\.
// Text содержит уже раскрытое значение без кавычек.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // открывающая кавычка
	var b strings.Builder
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			lx.report(diag.LexUnterminatedString, start, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(start), Text: b.String()}
		}
		ch := lx.cursor.Bump()
		switch ch {
		case '"':
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(start), Text: b.String()}
		case '\\':
			switch esc := lx.cursor.Bump(); esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(esc)
			}
		default:
			b.WriteByte(ch)
		}
	}
}
