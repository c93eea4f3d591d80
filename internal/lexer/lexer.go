package lexer

import (
	"bonk/internal/source"
	"bonk/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	for {
		lx.skipTrivia()
		if lx.cursor.EOF() {
			return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(lx.cursor.Off)}
		}
		ch := lx.cursor.Peek()
		var tok token.Token
		switch {
		case isIdentStartByte(ch) || ch >= utf8RuneSelf:
			tok = lx.scanIdentOrKeyword()
		case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
			tok = lx.scanNumber()
		case ch == '"':
			tok = lx.scanString()
		default:
			tok = lx.scanOperatorOrPunct()
		}
		if tok.Kind == token.Invalid {
			// ошибка уже зарепорчена, пропускаем мусор
			continue
		}
		return tok
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		t := lx.Next()
		lx.look = &t
	}
	return *lx.look
}

// All лексит файл до конца, EOF включительно.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, 64)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
