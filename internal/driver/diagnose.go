package driver

import (
	"context"
	"fmt"
	"time"

	"bonk/internal/buildpipeline"
	"bonk/internal/diag"
	"bonk/internal/modules"
	"bonk/internal/observ"
	"bonk/internal/source"
	"bonk/internal/trace"
)

// DiagnoseOptions настраивают одну проверку.
type DiagnoseOptions struct {
	MaxDiagnostics int      // на весь результат, 0 - без лимита
	HelpPaths      []string // дополнительные каталоги для `help`
	Timings        bool
	Cache          *DiskCache // nil - без кэша
	Progress       buildpipeline.ProgressSink
	Jobs           int // только для DiagnoseDir, 0 - GOMAXPROCS
}

// DiagnoseResult is the outcome of checking one root file and everything it helps.
type DiagnoseResult struct {
	Path    string
	FileSet *source.FileSet
	Root    *modules.Module   // nil when served from the cache
	Modules []*modules.Module // root first, then helped modules in load order
	Bag     *diag.Bag         // sorted diagnostics of all modules
	Timer   *observ.Timer     // nil unless Timings
	Cached  bool
}

// HasErrors reports whether any module produced an error.
func (r *DiagnoseResult) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// DiagnoseFile checks the file at path.
func DiagnoseFile(ctx context.Context, path string, opts DiagnoseOptions) (*DiagnoseResult, error) {
	timer := newTimer(opts)
	fs := source.NewFileSet()

	started := time.Now()
	notify(opts, path, buildpipeline.StageLoad, buildpipeline.StatusWorking, 0, nil)
	idx := timer.Begin("load")
	id, err := fs.Load(path)
	timer.End(idx, "")
	if err != nil {
		err = fmt.Errorf("load %s: %w", path, err)
		notify(opts, path, buildpipeline.StageLoad, buildpipeline.StatusError, time.Since(started), err)
		return nil, err
	}
	notify(opts, path, buildpipeline.StageLoad, buildpipeline.StatusDone, time.Since(started), nil)
	return diagnose(ctx, fs, id, opts, timer, true)
}

// DiagnoseSource checks in-memory content registered under path. Helped
// modules are still looked up on disk relative to path. The disk cache is
// never consulted.
func DiagnoseSource(ctx context.Context, path string, content []byte, opts DiagnoseOptions) (*DiagnoseResult, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, content)
	return diagnose(ctx, fs, id, opts, newTimer(opts), false)
}

func diagnose(ctx context.Context, fs *source.FileSet, id source.FileID, opts DiagnoseOptions, timer *observ.Timer, cacheable bool) (*DiagnoseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	file := fs.Get(id)
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "diagnose")
	span.WithExtra("file", file.Path)
	defer span.End("")

	res := &DiagnoseResult{Path: file.Path, FileSet: fs, Timer: timer}

	var key cacheKey
	if cacheable && opts.Cache != nil {
		key = keyFor(file, opts)
		started := time.Now()
		idx := timer.Begin("cache")
		bag, hit := opts.Cache.lookup(fs, key, opts.MaxDiagnostics)
		timer.End(idx, hitNote(hit))
		if hit {
			span.WithExtra("cache", "hit")
			res.Bag = bag
			res.Cached = true
			notify(opts, file.Path, buildpipeline.StageCache, statusFor(bag), time.Since(started), nil)
			return res, nil
		}
	}

	loader := modules.NewLoader(modules.Options{
		Files:          fs,
		HelpPaths:      opts.HelpPaths,
		MaxDiagnostics: opts.MaxDiagnostics,
		Tracer:         tracer,
		Parent:         span.ID(),
	})

	started := time.Now()
	notify(opts, file.Path, buildpipeline.StageParse, buildpipeline.StatusWorking, 0, nil)
	pass := span.Child(trace.ScopePass, "parse")
	idx := timer.Begin("parse")
	root, err := loader.LoadFile(id)
	timer.End(idx, fmt.Sprintf("modules=%d", len(loader.Modules())))
	pass.End("")
	if err != nil {
		notify(opts, file.Path, buildpipeline.StageParse, buildpipeline.StatusError, time.Since(started), err)
		return nil, err
	}
	notify(opts, file.Path, buildpipeline.StageParse, buildpipeline.StatusDone, time.Since(started), nil)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started = time.Now()
	notify(opts, file.Path, buildpipeline.StageSema, buildpipeline.StatusWorking, 0, nil)
	pass = span.Child(trace.ScopePass, "sema")
	idx = timer.Begin("sema")
	ok := loader.CheckAll()
	timer.End(idx, fmt.Sprintf("modules=%d", len(loader.Modules())))
	pass.End(okDetail(ok))

	res.Root = root
	res.Modules = loader.Modules()
	res.Bag = collect(res.Modules, opts.MaxDiagnostics)
	notify(opts, file.Path, buildpipeline.StageSema, statusFor(res.Bag), time.Since(started), nil)

	if cacheable && opts.Cache != nil {
		// ошибка записи кэша не ломает проверку
		if err := opts.Cache.store(fs, key, res); err != nil {
			trace.PointIn(tracer, trace.ScopeDriver, span.ID(), "cache_store_failed", err.Error(), nil)
		}
	}
	return res, nil
}

// collect merges per-module bags into one sorted bag honoring max.
func collect(mods []*modules.Module, max int) *diag.Bag {
	bag := diag.NewBag(max)
	for _, m := range mods {
		for _, d := range m.Bag.Items() {
			if !bag.Add(d) {
				break
			}
		}
	}
	bag.Sort()
	bag.Dedup()
	return bag
}

func newTimer(opts DiagnoseOptions) *observ.Timer {
	if !opts.Timings {
		return nil
	}
	return observ.NewTimer()
}

func notify(opts DiagnoseOptions, file string, stage buildpipeline.Stage, status buildpipeline.Status, elapsed time.Duration, err error) {
	buildpipeline.Notify(opts.Progress, buildpipeline.Event{
		File:    file,
		Stage:   stage,
		Status:  status,
		Err:     err,
		Elapsed: elapsed,
	})
}

func statusFor(bag *diag.Bag) buildpipeline.Status {
	if bag != nil && bag.HasErrors() {
		return buildpipeline.StatusError
	}
	return buildpipeline.StatusDone
}

func okDetail(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

func hitNote(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
