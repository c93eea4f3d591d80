package parser

import (
	"strings"

	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/token"
)

func (p *Parser) parseExpr() (ast.NodeID, bool) {
	return p.parseBinary(precAssignment)
}

// parseBinary — precedence climbing над таблицей binaryPrec.
func (p *Parser) parseBinary(minPrec int) (ast.NodeID, bool) {
	start := p.lx.Peek().Span
	left, ok := p.parseCast()
	if !ok {
		return ast.NoNodeID, false
	}
	for {
		kind := p.lx.Peek().Kind
		prec, rightAssoc := binaryPrec(kind)
		if prec < minPrec {
			return left, true
		}
		p.advance()
		next := prec + 1
		if rightAssoc {
			next = prec
		}
		right, ok := p.parseBinary(next)
		if !ok {
			return ast.NoNodeID, false
		}
		left = p.b.Nodes.NewBinary(p.spanFrom(start), binaryOps[kind], left, right)
	}
}

// parseCast разбирает `unary (as T)*`.
func (p *Parser) parseCast() (ast.NodeID, bool) {
	start := p.lx.Peek().Span
	expr, ok := p.parseUnary()
	if !ok {
		return ast.NoNodeID, false
	}
	for p.at(token.KwAs) {
		p.advance()
		typ, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		expr = p.b.Nodes.NewCast(p.spanFrom(start), expr, typ)
	}
	return expr, true
}

func (p *Parser) parseUnary() (ast.NodeID, bool) {
	tok := p.lx.Peek()
	var op ast.UnaryOp
	switch tok.Kind {
	case token.Plus:
		op = ast.UnaryPlus
	case token.Minus:
		op = ast.UnaryMinus
	default:
		return p.parseMember()
	}
	p.advance()
	operand, ok := p.parseUnary()
	if !ok {
		return ast.NoNodeID, false
	}
	return p.b.Nodes.NewUnary(p.spanFrom(tok.Span), op, operand), true
}

// parseMember разбирает `field of target`; `of` правоассоциативен,
// слева от него допустимо только имя поля.
func (p *Parser) parseMember() (ast.NodeID, bool) {
	tok := p.lx.Peek()
	if tok.Kind == token.Ident {
		p.advance()
		if !p.at(token.KwOf) {
			return p.b.Nodes.NewIdent(tok.Span, p.b.Intern(tok.Text)), true
		}
		p.advance()
		target, ok := p.parseMember()
		if !ok {
			return ast.NoNodeID, false
		}
		return p.b.Nodes.NewMember(p.spanFrom(tok.Span), p.b.Intern(tok.Text), tok.Span, target), true
	}
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoNodeID, false
	}
	if p.at(token.KwOf) {
		p.err(diag.SynExpectIdentifier, "left side of 'of' must be a field name")
		return ast.NoNodeID, false
	}
	return expr, true
}

func (p *Parser) parsePrimary() (ast.NodeID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.NumberLit:
		p.advance()
		return p.b.Nodes.NewNumber(tok.Span, tok.Text, isFractional(tok.Text)), true
	case token.StringLit:
		p.advance()
		return p.b.Nodes.NewString(tok.Span, tok.Text), true
	case token.KwNull:
		p.advance()
		return p.b.Nodes.NewNull(tok.Span), true
	case token.Ident:
		return p.parseMember()
	case token.LParen:
		open := p.advance()
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoNodeID, false
		}
		if _, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span); !ok {
			return ast.NoNodeID, false
		}
		return expr, true
	case token.LBracket:
		return p.parseArray()
	case token.LBrace:
		return p.parseBlock()
	case token.At:
		return p.parseCall()
	case token.KwBonk:
		p.advance()
		value := ast.NoNodeID
		if !p.atOr(token.Semicolon, token.RBrace, token.RParen, token.RBracket, token.Comma, token.EOF) {
			v, ok := p.parseExpr()
			if !ok {
				return ast.NoNodeID, false
			}
			value = v
		}
		return p.b.Nodes.NewBonk(p.spanFrom(tok.Span), value), true
	case token.KwBrek:
		p.advance()
		return p.b.Nodes.NewBrek(tok.Span), true
	case token.KwRebonk:
		p.advance()
		return p.b.Nodes.NewRebonk(tok.Span), true
	default:
		p.err(diag.SynExpectExpression, "expected expression, got \""+p.describe(tok)+"\"")
		return ast.NoNodeID, false
	}
}

// parseArray разбирает `[e, ...]`; завершающая запятая допустима.
func (p *Parser) parseArray() (ast.NodeID, bool) {
	open := p.advance()
	var elems []ast.NodeID
	for !p.atOr(token.RBracket, token.EOF) {
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoNodeID, false
		}
		elems = append(elems, e)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expectClose(token.RBracket, diag.SynUnclosedBracket, open.Span); !ok {
		return ast.NoNodeID, false
	}
	return p.b.Nodes.NewArray(p.spanFrom(open.Span), elems), true
}

// parseCall разбирает `@callee[name = e, ...]`. Список аргументов
// необязателен: `@f` — вызов без аргументов.
func (p *Parser) parseCall() (ast.NodeID, bool) {
	at := p.advance()
	callee, ok := p.parseMember()
	if !ok {
		return ast.NoNodeID, false
	}
	var args []ast.NodeID
	if p.at(token.LBracket) {
		open := p.advance()
		for !p.atOr(token.RBracket, token.EOF) {
			name, nameSpan, ok := p.parseIdent()
			if !ok {
				return ast.NoNodeID, false
			}
			if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after argument name"); !ok {
				return ast.NoNodeID, false
			}
			value, ok := p.parseExpr()
			if !ok {
				return ast.NoNodeID, false
			}
			args = append(args, p.b.Nodes.NewCallArg(p.spanFrom(nameSpan), name, nameSpan, value))
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expectClose(token.RBracket, diag.SynUnclosedBracket, open.Span); !ok {
			return ast.NoNodeID, false
		}
	}
	return p.b.Nodes.NewCall(p.spanFrom(at.Span), callee, args), true
}

func isFractional(text string) bool {
	return strings.ContainsAny(text, ".eE")
}
