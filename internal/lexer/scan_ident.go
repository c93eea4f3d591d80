package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"bonk/internal/diag"
	"bonk/internal/token"
)

// scanIdentOrKeyword читает идентификатор (ASCII или Unicode-буквы).
// Текст нормализуется в NFC, чтобы визуально одинаковые имена совпадали в scope.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	ascii := true
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		if r == utf8.RuneError || !(unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)) {
			break
		}
		ascii = false
		for i := 0; i < size; i++ {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	if sp.Empty() {
		// одиночный не-буквенный Unicode символ
		_, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		for i := 0; i < size; i++ {
			lx.cursor.Bump()
		}
		lx.report(diag.LexUnknownChar, start, "unknown character")
		return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
	}
	text := lx.text(sp)
	if !ascii {
		text = norm.NFC.String(text)
	}
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
