package parser

import (
	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/token"
)

// parseHelp разбирает `help "module";`.
func (p *Parser) parseHelp() (ast.NodeID, bool) {
	kw := p.advance()
	if !p.at(token.StringLit) {
		p.err(diag.SynExpectString, "expected module name string after 'help'")
		return ast.NoNodeID, false
	}
	name := p.advance()
	if !p.expectSemicolon() {
		return ast.NoNodeID, false
	}
	return p.b.Nodes.NewHelp(p.spanFrom(kw.Span), name.Text, name.Span), true
}

// parseHive разбирает `hive Name { bowl...; blok... }`.
func (p *Parser) parseHive() (ast.NodeID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoNodeID, false
	}
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after hive name")
	if !ok {
		return ast.NoNodeID, false
	}
	var members []ast.NodeID
	for !p.atOr(token.RBrace, token.EOF) {
		switch p.lx.Peek().Kind {
		case token.KwBowl:
			id, ok := p.parseBowl()
			if ok && p.expectSemicolon() {
				members = append(members, id)
				continue
			}
			p.resync(true)
		case token.KwBlok:
			id, ok := p.parseBlok()
			if ok {
				members = append(members, id)
				continue
			}
			p.resync(true)
		case token.Semicolon:
			p.advance()
		default:
			p.err(diag.SynUnexpectedToken, "expected 'bowl' or 'blok' inside hive, got \""+p.describe(p.lx.Peek())+"\"")
			p.advance()
			p.resync(true)
		}
	}
	if _, ok := p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span); !ok {
		return ast.NoNodeID, false
	}
	return p.b.Nodes.NewHive(p.spanFrom(kw.Span), name, nameSpan, members), true
}

// parseBlok разбирает `blok name[bowl a: T, ...] : R { ... }` либо
// объявление без тела, оканчивающееся ';'.
func (p *Parser) parseBlok() (ast.NodeID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoNodeID, false
	}
	data := ast.BlokData{Name: name, NameSpan: nameSpan}
	if p.at(token.LBracket) {
		params, ok := p.parseParams()
		if !ok {
			return ast.NoNodeID, false
		}
		data.Params = params
	}
	if p.at(token.Colon) {
		p.advance()
		ret, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		data.Return = ret
	}
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.at(token.LBrace):
		body, ok := p.parseBlock()
		if !ok {
			return ast.NoNodeID, false
		}
		data.Body = body
	default:
		p.err(diag.SynUnexpectedToken, "expected blok body or ';', got \""+p.describe(p.lx.Peek())+"\"")
		return ast.NoNodeID, false
	}
	return p.b.Nodes.NewBlok(p.spanFrom(kw.Span), data), true
}

func (p *Parser) parseParams() ([]ast.NodeID, bool) {
	open := p.advance()
	var params []ast.NodeID
	for !p.atOr(token.RBracket, token.EOF) {
		start, ok := p.expect(token.KwBowl, diag.SynUnexpectedToken, "expected 'bowl' to start a parameter")
		if !ok {
			return nil, false
		}
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectType, "parameter needs a type annotation"); !ok {
			return nil, false
		}
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		params = append(params, p.b.Nodes.NewBowl(p.spanFrom(start.Span), ast.BowlData{
			Name:     name,
			NameSpan: nameSpan,
			Type:     typ,
			IsParam:  true,
		}))
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expectClose(token.RBracket, diag.SynUnclosedBracket, open.Span); !ok {
		return nil, false
	}
	return params, true
}

// parseBowl разбирает `bowl name (: T)? (= expr)?` без завершающей ';'.
func (p *Parser) parseBowl() (ast.NodeID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoNodeID, false
	}
	data := ast.BowlData{Name: name, NameSpan: nameSpan}
	if p.at(token.Colon) {
		p.advance()
		if data.Type, ok = p.parseType(); !ok {
			return ast.NoNodeID, false
		}
	}
	if p.at(token.Assign) {
		p.advance()
		if data.Value, ok = p.parseExpr(); !ok {
			return ast.NoNodeID, false
		}
	}
	return p.b.Nodes.NewBowl(p.spanFrom(kw.Span), data), true
}
