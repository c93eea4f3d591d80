package parser

import (
	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/token"
)

var primitives = map[token.Kind]ast.PrimKind{
	token.KwBuul: ast.PrimBuul,
	token.KwShrt: ast.PrimShrt,
	token.KwNubr: ast.PrimNubr,
	token.KwLong: ast.PrimLong,
	token.KwFlot: ast.PrimFlot,
	token.KwDobl: ast.PrimDobl,
	token.KwStrg: ast.PrimStrg,
}

// parseType разбирает аннотацию типа: примитив, `many T` или имя hive/blok.
func (p *Parser) parseType() (ast.NodeID, bool) {
	tok := p.lx.Peek()
	if prim, ok := primitives[tok.Kind]; ok {
		p.advance()
		return p.b.Nodes.NewTypeExpr(tok.Span, ast.TypeExprData{Kind: ast.TypeExprPrim, Prim: prim}), true
	}
	switch tok.Kind {
	case token.KwMany:
		p.advance()
		elem, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		return p.b.Nodes.NewTypeExpr(p.spanFrom(tok.Span), ast.TypeExprData{Kind: ast.TypeExprMany, Elem: elem}), true
	case token.Ident:
		p.advance()
		return p.b.Nodes.NewTypeExpr(tok.Span, ast.TypeExprData{Kind: ast.TypeExprNamed, Name: p.b.Intern(tok.Text)}), true
	default:
		p.err(diag.SynExpectType, "expected type, got \""+p.describe(tok)+"\"")
		return ast.NoNodeID, false
	}
}
