package parser

import (
	"slices"

	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/lexer"
	"bonk/internal/source"
	"bonk/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// admit считает ошибку и решает, отдавать ли её в Reporter.
func (o *Options) admit(sev diag.Severity) bool {
	if sev < diag.SevError {
		return o.Reporter != nil
	}
	over := o.Enough()
	o.CurrentErrors++
	return o.Reporter != nil && !over
}

type Result struct {
	Root   ast.NodeID
	Errors uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	b        *ast.Builder
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
}

// ParseFile разбирает файл целиком и записывает корень программы в b.Root.
// Лексические ошибки идут в тот же Reporter.
func ParseFile(file *source.File, b *ast.Builder, opts Options) Result {
	p := Parser{
		b:        b,
		file:     file,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}
	// лексер делит счётчик ошибок с парсером
	p.lx = lexer.New(file, lexer.Options{Reporter: &countingReporter{opts: &p.opts}})

	root := p.parseProgram()
	b.File = file.ID
	b.Root = root
	return Result{Root: root, Errors: p.opts.CurrentErrors}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseProgram — основной цикл верхнего уровня: пока не EOF — parseItem.
func (p *Parser) parseProgram() ast.NodeID {
	start := p.lx.Peek().Span
	var items []ast.NodeID
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		id, ok := p.parseItem()
		if !ok {
			p.resync(false)
			continue
		}
		items = append(items, id)
	}
	span := source.Span{File: p.file.ID, Start: 0, End: start.End}
	span = span.Cover(p.lx.Peek().Span)
	return p.b.Nodes.NewProgram(span, items)
}

// parseItem выбирает распознаватель по первому токену.
func (p *Parser) parseItem() (ast.NodeID, bool) {
	if p.at(token.KwHelp) {
		return p.parseHelp()
	}
	return p.parseStmt()
}

// resync — восстановление после ошибки: прокручиваем до ';', '}' или
// начала следующего объявления. Внутри блока '}' не съедаем.
func (p *Parser) resync(inBlock bool) {
	for {
		switch p.lx.Peek().Kind {
		case token.EOF:
			return
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace:
			if inBlock {
				return
			}
			p.advance()
			return
		case token.KwHelp, token.KwHive, token.KwBlok, token.KwBowl, token.KwLoop:
			return
		}
		p.advance()
	}
}

// parseIdent ожидает Ident и интернирует его.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.b.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.describe(p.lx.Peek())+"\"")
	return source.NoStringID, p.getDiagnosticSpan(), false
}

func (p *Parser) describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return tok.Kind.String()
	}
	if tok.Text != "" {
		return tok.Text
	}
	return tok.Kind.String()
}

// countingReporter пропускает диагностики лексера через лимит парсера.
type countingReporter struct {
	opts *Options
}

func (r *countingReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if !r.opts.admit(sev) {
		return
	}
	r.opts.Reporter.Report(code, sev, primary, msg, notes)
}
