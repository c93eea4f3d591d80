package parser

import (
	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/token"
)

// parseStmt разбирает оператор: объявление, цикл, блок или выражение с ';'.
func (p *Parser) parseStmt() (ast.NodeID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwBowl:
		id, ok := p.parseBowl()
		if !ok || !p.expectSemicolon() {
			return ast.NoNodeID, false
		}
		return id, true
	case token.KwBlok:
		return p.parseBlok()
	case token.KwHive:
		return p.parseHive()
	case token.KwLoop:
		return p.parseLoop()
	case token.LBrace:
		return p.parseBlock()
	case token.KwHelp:
		p.err(diag.SynUnexpectedToken, "'help' is only allowed at the top level")
		return ast.NoNodeID, false
	}
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoNodeID, false
	}
	if !p.expectSemicolon() {
		return ast.NoNodeID, false
	}
	return expr, true
}

func (p *Parser) parseLoop() (ast.NodeID, bool) {
	kw := p.advance()
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' after 'loop'")
		return ast.NoNodeID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoNodeID, false
	}
	return p.b.Nodes.NewLoop(p.spanFrom(kw.Span), body), true
}

// parseBlock разбирает `{ stmt* }`; ошибки внутри не рвут блок.
func (p *Parser) parseBlock() (ast.NodeID, bool) {
	open := p.advance()
	var stmts []ast.NodeID
	for !p.atOr(token.RBrace, token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		id, ok := p.parseStmt()
		if !ok {
			p.resync(true)
			continue
		}
		stmts = append(stmts, id)
	}
	if _, ok := p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span); !ok {
		return ast.NoNodeID, false
	}
	return p.b.Nodes.NewBlock(p.spanFrom(open.Span), stmts), true
}
