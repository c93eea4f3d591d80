package symbols

import (
	"bonk/internal/ast"
	"bonk/internal/diag"
)

// ResolveOptions configures a resolution run.
type ResolveOptions struct {
	Reporter diag.Reporter
	Modules  ModuleResolver // nil: every `help` fails to load
	Hints    Hints
}

// Result carries the table and whether resolution finished without errors.
type Result struct {
	Table *Table
	OK    bool
}

// Resolve runs two-pass name resolution over tree.Root.
func Resolve(tree *ast.Builder, opts ResolveOptions) Result {
	return ResolveInto(NewTable(opts.Hints, tree), opts)
}

// ResolveInto resolves into a table the caller already holds, so a module
// that is still being resolved can be consulted by its helpers.
func ResolveInto(table *Table, opts ResolveOptions) (res Result) {
	tracker := diag.NewTracker(opts.Reporter)
	res.Table = table
	aborted := false
	defer func() { res.OK = !aborted && !tracker.Failed() }()
	defer diag.RecoverInternal(tracker, &aborted)

	w := walker{
		r:       NewResolver(table, tracker),
		table:   table,
		nodes:   table.Tree.Nodes,
		modules: opts.Modules,
		report:  tracker,
	}
	w.program(table.Tree.Root)
	return res
}

type walker struct {
	r       *Resolver
	table   *Table
	nodes   *ast.Nodes
	modules ModuleResolver
	report  diag.Reporter
}

func (w *walker) program(root ast.NodeID) {
	prog, ok := w.nodes.Program(root)
	if !ok {
		diag.Internalf(w.nodes.Span(root), "resolve expects a program, got %s", w.nodes.Kind(root))
	}
	scope := w.r.Enter(root)
	w.table.Root = scope
	w.forward(prog.Items, false)
	w.helps(prog.Items)
	for _, item := range prog.Items {
		w.walk(item)
	}
	w.r.Leave(scope)
}

// forward — первый проход: объявляет bloks и hives текущего уровня, а в
// теле hive ещё и поля. Вложенные тела не посещаются.
func (w *walker) forward(items []ast.NodeID, inHive bool) {
	for _, item := range items {
		switch w.nodes.Kind(item) {
		case ast.NodeBlok, ast.NodeHive:
			w.r.Declare(item)
		case ast.NodeBowl:
			if inHive {
				w.r.Declare(item)
			}
		}
	}
}

func (w *walker) helps(items []ast.NodeID) {
	for _, item := range items {
		help, ok := w.nodes.Help(item)
		if !ok {
			continue
		}
		entry := HelpModule{Name: help.Module, Node: item}
		if w.modules == nil {
			diag.ReportError(w.report, diag.SemaExternalResolution, help.NameSpan,
				"cannot load module '"+help.Module+"': no module resolver").Emit()
		} else if scope, err := w.modules.ResolveModule(help.Module, w.table.Tree.File); err != nil {
			diag.ReportError(w.report, diag.SemaExternalResolution, help.NameSpan,
				"cannot load module '"+help.Module+"': "+err.Error()).Emit()
		} else {
			entry.Scope = scope
		}
		w.table.Helps = append(w.table.Helps, entry)
	}
}

// walk — второй проход. Каждый вид узла явно решает, куда спускаться.
func (w *walker) walk(id ast.NodeID) {
	if !id.IsValid() {
		return
	}
	switch w.nodes.Kind(id) {
	case ast.NodeHive:
		hive, _ := w.nodes.Hive(id)
		scope := w.r.Enter(id)
		w.forward(hive.Members, true)
		for _, m := range hive.Members {
			w.member(m)
		}
		w.r.Leave(scope)
	case ast.NodeBlok:
		w.blok(id)
	case ast.NodeBlock:
		block, _ := w.nodes.Block(id)
		scope := w.r.Enter(id)
		w.stmts(block.Stmts)
		w.r.Leave(scope)
	case ast.NodeLoop:
		loop, _ := w.nodes.Loop(id)
		scope := w.r.Enter(id)
		if body, ok := w.nodes.Block(loop.Body); ok {
			w.table.scopeOf[loop.Body] = scope
			w.stmts(body.Stmts)
		}
		w.r.Leave(scope)
	case ast.NodeBowl:
		bowl, _ := w.nodes.Bowl(id)
		w.walk(bowl.Type)
		w.walk(bowl.Value)
		w.r.Declare(id)
	case ast.NodeIdent:
		w.ident(id)
	case ast.NodeMember:
		// поле резолвится при выводе типов
		member, _ := w.nodes.Member(id)
		w.walk(member.Target)
	case ast.NodeCall:
		call, _ := w.nodes.Call(id)
		w.walk(call.Callee)
		for _, arg := range call.Args {
			w.walk(arg)
		}
	case ast.NodeCallArg:
		arg, _ := w.nodes.CallArg(id)
		w.walk(arg.Value)
	case ast.NodeTypeExpr:
		w.typeExpr(id)
	case ast.NodeBrek, ast.NodeRebonk:
		if !w.r.inLoop() {
			diag.ReportError(w.report, diag.SemaLoopControlOutsideLoop, w.nodes.Span(id),
				"'"+w.nodes.Kind(id).String()+"' outside of a loop").Emit()
		}
	case ast.NodeHelp:
		// обработан до обхода
	default:
		for _, child := range w.nodes.Children(id) {
			w.walk(child)
		}
	}
}

func (w *walker) stmts(stmts []ast.NodeID) {
	w.forward(stmts, false)
	for _, stmt := range stmts {
		w.walk(stmt)
	}
}

// member обходит член hive: поля уже объявлены первым проходом.
func (w *walker) member(id ast.NodeID) {
	if bowl, ok := w.nodes.Bowl(id); ok {
		w.walk(bowl.Type)
		w.walk(bowl.Value)
		return
	}
	w.walk(id)
}

func (w *walker) blok(id ast.NodeID) {
	blok, _ := w.nodes.Blok(id)
	scope := w.r.Enter(id)
	for _, param := range blok.Params {
		w.walk(param)
	}
	w.walk(blok.Return)
	if body, ok := w.nodes.Block(blok.Body); ok {
		// тело живёт в scope самого blok, рядом с параметрами
		w.table.scopeOf[blok.Body] = scope
		w.stmts(body.Stmts)
	}
	w.r.Leave(scope)
}

func (w *walker) ident(id ast.NodeID) {
	ident, _ := w.nodes.Ident(id)
	if node, ok := w.r.Lookup(ident.Name); ok {
		w.table.Bind(id, Local(node))
		return
	}
	name := w.table.Tree.Name(ident.Name)
	if def, ok := w.r.lookupHelped(name); ok {
		w.table.Bind(id, def)
		return
	}
	diag.ReportError(w.report, diag.SemaUnresolvedSymbol, w.nodes.Span(id), "'"+name+"' is not defined").Emit()
}

func (w *walker) typeExpr(id ast.NodeID) {
	te, _ := w.nodes.TypeExpr(id)
	switch te.Kind {
	case ast.TypeExprMany:
		w.walk(te.Elem)
	case ast.TypeExprNamed:
		name := w.table.Tree.Name(te.Name)
		if node, ok := w.r.Lookup(te.Name); ok {
			if w.nodes.Kind(node) != ast.NodeHive {
				diag.ReportError(w.report, diag.SemaNotAType, w.nodes.Span(id), "'"+name+"' is not a type").
					WithNote(w.nodes.Span(node), "defined here").
					Emit()
				return
			}
			w.table.Bind(id, Local(node))
			return
		}
		if def, ok := w.r.lookupHelped(name); ok {
			w.table.Bind(id, def)
			return
		}
		diag.ReportError(w.report, diag.SemaUnresolvedSymbol, w.nodes.Span(id), "type '"+name+"' is not defined").Emit()
	}
}
