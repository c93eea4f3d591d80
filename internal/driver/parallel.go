package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"bonk/internal/buildpipeline"
	"bonk/internal/modules"
	"bonk/internal/trace"
)

// ListFiles returns every *.bonk file under dir, sorted.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги (.git, .cache) не обходим
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, modules.Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// DiagnoseDir checks every *.bonk file under dir as its own root, up to
// opts.Jobs at a time. Each file gets a private file set and loader, so a
// module helped by several roots is analyzed once per root. Results follow
// ListFiles order. The first IO error cancels the remaining work.
func DiagnoseDir(ctx context.Context, dir string, opts DiagnoseOptions) ([]*DiagnoseResult, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "diagnose_dir")
	span.WithExtra("files", fmt.Sprint(len(files)))
	defer span.End("")

	for _, path := range files {
		notify(opts, path, buildpipeline.StageLoad, buildpipeline.StatusQueued, 0, nil)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*DiagnoseResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			res, err := DiagnoseFile(gctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
