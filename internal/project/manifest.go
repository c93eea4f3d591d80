package project

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var ErrManifestExists = errors.New("project already initialized")

// Manifest is a decoded bonk.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Help    HelpConfig    `toml:"help"`
	Check   CheckConfig   `toml:"check"`
	Trace   TraceConfig   `toml:"trace"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type HelpConfig struct {
	Paths []string `toml:"paths"` // relative to the manifest directory
}

type CheckConfig struct {
	MaxDiagnostics int  `toml:"max_diagnostics"`
	Jobs           int  `toml:"jobs"`
	DiskCache      bool `toml:"disk_cache"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// DefaultConfig is what `bonk init` writes.
func DefaultConfig(name string) Config {
	return Config{
		Package: PackageConfig{Name: name},
		Help:    HelpConfig{Paths: []string{}},
		Check:   CheckConfig{MaxDiagnostics: 100},
		Trace:   TraceConfig{Level: "off", Output: "-"},
	}
}

// Load finds and decodes the manifest governing startDir. ok is false when
// there is none.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(path, cfg, meta); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(path string, cfg Config, meta toml.MetaData) error {
	if !meta.IsDefined("package") {
		return fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return fmt.Errorf("%s: missing [package].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	if cfg.Check.Jobs < 0 {
		return fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	return nil
}

// HelpPaths returns [help].paths made absolute against the manifest root.
func (m *Manifest) HelpPaths() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.Config.Help.Paths))
	for _, p := range m.Config.Help.Paths {
		p = filepath.FromSlash(p)
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, p)
		}
		out = append(out, p)
	}
	return out
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	if _, err := io.WriteString(w, "# Bonk project manifest\n"); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(cfg)
}

// Init writes a starter bonk.toml into dir. An existing manifest is never
// overwritten.
func Init(dir, name string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s: %w", path, ErrManifestExists)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create manifest: %w", err)
	}
	if err := Encode(f, DefaultConfig(name)); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
