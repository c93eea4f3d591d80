package diagfmt

import (
	"os"
	"path/filepath"

	"bonk/internal/source"
)

const autoPathLimit = 40

func displayPath(f *source.File, mode PathMode, baseDir string) string {
	if f == nil {
		return "<unknown>"
	}
	path := filepath.FromSlash(f.Path)
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			break
		}
		if rel, err := filepath.Rel(baseDir, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		if len(f.Path) >= autoPathLimit && filepath.IsAbs(path) {
			return filepath.Base(path)
		}
	}
	return f.Path
}
