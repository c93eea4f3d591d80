package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"bonk/internal/diag"
	"bonk/internal/project"
	"bonk/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит диагностики проверенных файлов на диске, ключ - хеш
// содержимого корня и опций. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of one DiagnoseFile run.
type DiskPayload struct {
	Schema uint16

	Root string
	// Every loaded module except the root, with the content hash seen at check time.
	DepPaths  []string
	DepHashes []project.Digest

	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic stores spans by path since FileIDs are per session.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Span     CachedSpan
	Notes    []CachedNote
}

type CachedSpan struct {
	Path       string
	Start, End uint32
}

type CachedNote struct {
	Span CachedSpan
	Msg  string
}

type cacheKey = project.Digest

// OpenDiskCache opens (creating if needed) the cache under $XDG_CACHE_HOME/app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key cacheKey) string {
	return filepath.Join(c.dir, "checks", hex.EncodeToString(key[:])+".mp")
}

// keyFor binds the root content to everything else that changes the result.
func keyFor(file *source.File, opts DiagnoseOptions) cacheKey {
	parts := []string{fmt.Sprintf("schema=%d", diskCacheSchemaVersion), file.Path, fmt.Sprintf("max=%d", opts.MaxDiagnostics)}
	parts = append(parts, opts.HelpPaths...)
	return project.Combine(project.Digest(file.Hash), project.HashStrings(parts...))
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key cacheKey, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads a payload. A missing entry is (false, nil).
func (c *DiskCache) Get(key cacheKey, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "checks"))
}

// lookup returns cached diagnostics when the entry exists and every helped
// module still has the recorded content.
func (c *DiskCache) lookup(fs *source.FileSet, key cacheKey, max int) (*diag.Bag, bool) {
	var payload DiskPayload
	ok, err := c.Get(key, &payload)
	if err != nil || !ok || payload.Schema != diskCacheSchemaVersion || len(payload.DepPaths) != len(payload.DepHashes) {
		return nil, false
	}
	ids := make(map[string]source.FileID)
	if root, ok := fs.GetLatest(payload.Root); ok {
		ids[payload.Root] = root
	}
	for i, dep := range payload.DepPaths {
		id, err := fs.Load(dep)
		if err != nil || project.Digest(fs.Get(id).Hash) != payload.DepHashes[i] {
			return nil, false
		}
		ids[dep] = id
	}
	bag := diag.NewBag(max)
	for _, cd := range payload.Diagnostics {
		d, ok := cd.restore(ids)
		if !ok {
			return nil, false
		}
		bag.Add(d)
	}
	bag.Sort()
	return bag, true
}

// store records res under key. Results with virtual helped modules are skipped.
func (c *DiskCache) store(fs *source.FileSet, key cacheKey, res *DiagnoseResult) error {
	payload := &DiskPayload{Schema: diskCacheSchemaVersion, Root: res.Path}
	for _, m := range res.Modules[1:] {
		f := fs.Get(m.File())
		if f == nil || f.Flags&source.FileVirtual != 0 {
			return nil
		}
		payload.DepPaths = append(payload.DepPaths, f.Path)
		payload.DepHashes = append(payload.DepHashes, project.Digest(f.Hash))
	}
	for _, d := range res.Bag.Items() {
		payload.Diagnostics = append(payload.Diagnostics, cacheDiagnostic(fs, d))
	}
	return c.Put(key, payload)
}

func cacheDiagnostic(fs *source.FileSet, d diag.Diagnostic) CachedDiagnostic {
	cd := CachedDiagnostic{
		Severity: uint8(d.Severity),
		Code:     uint16(d.Code),
		Message:  d.Message,
		Span:     cacheSpan(fs, d.Primary),
	}
	for _, n := range d.Notes {
		cd.Notes = append(cd.Notes, CachedNote{Span: cacheSpan(fs, n.Span), Msg: n.Msg})
	}
	return cd
}

func cacheSpan(fs *source.FileSet, sp source.Span) CachedSpan {
	out := CachedSpan{Start: sp.Start, End: sp.End}
	if f := fs.Get(sp.File); f != nil {
		out.Path = f.Path
	}
	return out
}

func (cd CachedDiagnostic) restore(ids map[string]source.FileID) (diag.Diagnostic, bool) {
	primary, ok := cd.Span.restore(ids)
	if !ok {
		return diag.Diagnostic{}, false
	}
	d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), primary, cd.Message)
	for _, n := range cd.Notes {
		sp, ok := n.Span.restore(ids)
		if !ok {
			return diag.Diagnostic{}, false
		}
		d = d.WithNote(sp, n.Msg)
	}
	return d, true
}

func (s CachedSpan) restore(ids map[string]source.FileID) (source.Span, bool) {
	if s.Path == "" {
		return source.Span{Start: s.Start, End: s.End}, true
	}
	id, ok := ids[s.Path]
	if !ok {
		return source.Span{}, false
	}
	return source.Span{File: id, Start: s.Start, End: s.End}, true
}
