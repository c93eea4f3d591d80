package parser

import (
	"bonk/internal/diag"
	"bonk/internal/source"
	"bonk/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan — лучший span для диагностики. На EOF указываем
// сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.lx.Peek().Text}, false
}

// expectClose закрывает скобку; в заметке указываем, где она открылась.
func (p *Parser) expectClose(k token.Kind, code diag.Code, open source.Span) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	if p.opts.admit(diag.SevError) {
		diag.ReportError(p.opts.Reporter, code, sp, "expected '"+k.String()+"', got \""+p.describe(p.lx.Peek())+"\"").
			WithNote(open, "opened here").
			Emit()
	}
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

func (p *Parser) expectSemicolon() bool {
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';', got \""+p.describe(p.lx.Peek())+"\"")
	return ok
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if !p.opts.admit(sev) {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// spanFrom покрывает диапазон от start до последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.lastSpan.End < start.Start {
		return start
	}
	return start.Cover(p.lastSpan)
}
