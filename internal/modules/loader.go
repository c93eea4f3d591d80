package modules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bonk/internal/ast"
	"bonk/internal/diag"
	"bonk/internal/parser"
	"bonk/internal/sema"
	"bonk/internal/source"
	"bonk/internal/symbols"
	"bonk/internal/trace"
	"bonk/internal/types"
)

// Ext is the source file extension.
const Ext = ".bonk"

var (
	ErrModuleNotFound = errors.New("module not found")
	ErrNotReady       = errors.New("module is still being resolved")
	ErrBroken         = errors.New("module has syntax errors")
)

// Options configure a Loader.
type Options struct {
	Files          *source.FileSet // nil: a fresh set
	HelpPaths      []string        // searched after the importing file's directory
	MaxDiagnostics int             // per module, 0: unlimited
	Tracer         trace.Tracer
	Parent         uint64 // trace span that module spans nest under
}

// Loader implements symbols.ModuleResolver and sema.ModuleResolver over the
// file system. It is not safe for concurrent use.
type Loader struct {
	files   *source.FileSet
	paths   []string
	maxDiag int
	tracer  trace.Tracer
	span    uint64 // текущий родитель для module:* спанов

	byPath map[string]*Module
	byFile map[source.FileID]*Module
	order  []*Module
}

func NewLoader(opts Options) *Loader {
	files := opts.Files
	if files == nil {
		files = source.NewFileSet()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Loader{
		files:   files,
		paths:   opts.HelpPaths,
		maxDiag: opts.MaxDiagnostics,
		tracer:  tracer,
		span:    opts.Parent,
		byPath:  make(map[string]*Module),
		byFile:  make(map[source.FileID]*Module),
	}
}

// Files returns the session's file set.
func (l *Loader) Files() *source.FileSet { return l.files }

// Modules lists loaded modules in load order; the root comes first.
func (l *Loader) Modules() []*Module { return l.order }

// Load reads path from disk and analyzes it as a root module.
func (l *Loader) Load(path string) (*Module, error) {
	key := canonical(path)
	if m, ok := l.byPath[key]; ok {
		return m, nil
	}
	id, err := l.files.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return l.open(stem(path), key, id), nil
}

// LoadFile analyzes a file already registered in the session's file set.
func (l *Loader) LoadFile(id source.FileID) (*Module, error) {
	f := l.files.Get(id)
	if f == nil {
		return nil, fmt.Errorf("file %d: %w", id, ErrModuleNotFound)
	}
	key := canonical(f.Path)
	if m, ok := l.byPath[key]; ok {
		return m, nil
	}
	return l.open(stem(f.Path), key, id), nil
}

// LoadSource analyzes in-memory content registered under path.
func (l *Loader) LoadSource(path string, content []byte) *Module {
	key := canonical(path)
	if m, ok := l.byPath[key]; ok {
		return m
	}
	return l.open(stem(path), key, l.files.AddVirtual(path, content))
}

// ResolveModule implements symbols.ModuleResolver.
func (l *Loader) ResolveModule(name string, from source.FileID) (symbols.ExternalScope, error) {
	path, err := l.locate(name, from)
	if err != nil {
		return nil, err
	}
	m, ok := l.byPath[canonical(path)]
	if !ok {
		id, err := l.fileFor(path)
		if err != nil {
			return nil, err
		}
		m = l.open(name, canonical(path), id)
	}
	if m.State == StateBroken {
		return nil, fmt.Errorf("%s: %w", m.Path, ErrBroken)
	}
	return m, nil
}

// ExportType implements sema.ModuleResolver.
func (l *Loader) ExportType(file source.FileID, name string, into *types.Interner) (types.TypeID, error) {
	m, ok := l.byFile[file]
	if !ok {
		return types.NoTypeID, fmt.Errorf("file %d: %w", file, ErrModuleNotFound)
	}
	return m.ExportType(name, into)
}

// MemberType implements sema.ModuleResolver.
func (l *Loader) MemberType(hive types.DeclRef, name string, into *types.Interner) (types.TypeID, error) {
	m, ok := l.byFile[hive.File]
	if !ok {
		return types.NoTypeID, fmt.Errorf("file %d: %w", hive.File, ErrModuleNotFound)
	}
	return m.MemberType(hive.Node, name, into)
}

// CheckAll runs a full check over every loaded module not checked yet and
// reports whether all of them are clean.
func (l *Loader) CheckAll() bool {
	ok := true
	// Check может подгрузить новые модули, поэтому без range
	for i := 0; i < len(l.order); i++ {
		if !l.order[i].Check() {
			ok = false
		}
	}
	return ok
}

// fileFor prefers an in-memory file registered with AddSource.
func (l *Loader) fileFor(path string) (source.FileID, error) {
	if id, ok := l.files.GetLatest(path); ok {
		if f := l.files.Get(id); f != nil && f.Flags&source.FileVirtual != 0 {
			return id, nil
		}
	}
	id, err := l.files.Load(path)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	return id, nil
}

// AddSource registers in-memory content that `help` may find at path.
func (l *Loader) AddSource(path string, content []byte) {
	l.files.AddVirtual(path, content)
}

// locate searches the importing file's directory, then the help paths.
func (l *Loader) locate(name string, from source.FileID) (string, error) {
	file := name
	if !strings.HasSuffix(file, Ext) {
		file += Ext
	}
	file = filepath.FromSlash(file)
	if filepath.IsAbs(file) {
		if fileExists(file) {
			return file, nil
		}
		return "", fmt.Errorf("%s: %w", file, ErrModuleNotFound)
	}

	var dirs []string
	if f := l.files.Get(from); f != nil {
		dirs = append(dirs, filepath.Dir(filepath.FromSlash(f.Path)))
	}
	dirs = append(dirs, l.paths...)
	for _, dir := range dirs {
		candidate := filepath.Join(dir, file)
		if fileExists(candidate) {
			return candidate, nil
		}
		// виртуальные файлы (тесты, stdin)
		if _, ok := l.files.GetLatest(candidate); ok {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%q (searched %s): %w", name, strings.Join(dirs, ", "), ErrModuleNotFound)
}

// open parses and resolves a module. The module is cached before its helps
// are resolved so a cycle finds it in StateLoading.
func (l *Loader) open(name, key string, id source.FileID) *Module {
	span := trace.Begin(l.tracer, trace.ScopeModule, "module:"+name, l.span)
	defer span.End("")
	if span.ID() != 0 {
		// helps, загруженные во время resolve, вкладываются в этот спан
		outer := l.span
		l.span = span.ID()
		defer func() { l.span = outer }()
	}

	m := &Module{
		Name:  name,
		Path:  key,
		Bag:   diag.NewBag(l.maxDiag),
		State: StateLoading,
		file:  id,
	}
	l.byPath[key] = m
	l.byFile[id] = m
	l.order = append(l.order, m)
	reporter := diag.BagReporter{Bag: m.Bag}

	m.Tree = ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(l.files.Get(id), m.Tree, parser.Options{Reporter: reporter})
	if parsed.Errors > 0 {
		m.State = StateBroken
		span.WithExtra("state", m.State.String())
		return m
	}

	m.Symbols = symbols.NewTable(symbols.Hints{}, m.Tree)
	res := symbols.ResolveInto(m.Symbols, symbols.ResolveOptions{Reporter: reporter, Modules: l})
	m.resolved = res.OK
	m.Engine = sema.NewEngine(sema.Options{
		Reporter: reporter,
		Symbols:  m.Symbols,
		Modules:  l,
		Tracer:   l.tracer,
	})
	m.State = StateResolved
	span.WithExtra("state", m.State.String())
	return m
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.ToSlash(filepath.Clean(path))
}

func stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), Ext)
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
