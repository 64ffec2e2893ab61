package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/devdeck/devdeck/internal/filesystem"
	"github.com/devdeck/devdeck/internal/models"
)

const (
	// maxDirEntries caps any directory listing so a scan cannot degenerate
	// on huge build output directories
	maxDirEntries = 200

	// maxFileSize caps how much of a single file is read during a scan
	maxFileSize = 100_000

	// defaultBackendPort is emitted only when a backend framework tag was
	// detected and no other port source matched
	defaultBackendPort = 8000
)

// conventionalSubdirs is the fixed set of subdirectory names inspected in
// addition to the root. This bounds recursion for monorepos.
var conventionalSubdirs = []string{"frontend", "client", "web", "ui", "app", "backend", "server", "api", "src", "docs"}

// frontendSubdirs is the subset checked for frontend manifests.
var frontendSubdirs = []string{"frontend", "client", "web", "ui", "app"}

// Scanner classifies a project directory without executing any of its code.
// All reads are best-effort: an unreadable or malformed file skips that
// detector and degrades the result instead of failing the scan.
type Scanner struct {
	fs  filesystem.FileSystem
	log *slog.Logger
}

// New creates a new Scanner
func New(fs filesystem.FileSystem, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{fs: fs, log: log}
}

// Scan inspects the directory at root and returns the detected tags, ports
// and documentation. The only error condition is a root that does not exist
// or is not a directory; everything below that is absorbed.
func (s *Scanner) Scan(root string) (*models.ScanResult, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to scan %s: not a directory", root)
	}

	snap := newSnapshot(s.fs, root, s.log)
	b := newResultBuilder()
	b.result.Name = filepath.Base(root)

	for _, rule := range tagRules {
		rule.apply(snap, b)
	}

	resolveBackendPort(snap, b)
	resolveFrontend(snap, b)
	discoverDocs(snap, b)
	synthesizeAPIDocs(b)
	findWorkspaceFile(snap, b)

	return b.result, nil
}

// snapshot is a read-only, cached view of the scanned directory. Detection
// rules only see the filesystem through it, which keeps them pure and keeps
// repeated listings cheap.
type snapshot struct {
	fs   filesystem.FileSystem
	root string
	log  *slog.Logger

	dirCache map[string][]fs.DirEntry
}

func newSnapshot(fsys filesystem.FileSystem, root string, log *slog.Logger) *snapshot {
	return &snapshot{
		fs:       fsys,
		root:     root,
		log:      log,
		dirCache: make(map[string][]fs.DirEntry),
	}
}

// path joins path elements under the scan root.
func (s *snapshot) path(elem ...string) string {
	return filepath.Join(append([]string{s.root}, elem...)...)
}

// exists reports whether the given path exists under the root.
func (s *snapshot) exists(elem ...string) bool {
	return s.fs.Exists(s.path(elem...))
}

// entries lists a directory under the root, capped at maxDirEntries.
// Failures are logged and yield an empty listing.
func (s *snapshot) entries(elem ...string) []fs.DirEntry {
	dir := s.path(elem...)
	if cached, ok := s.dirCache[dir]; ok {
		return cached
	}

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		s.log.Debug("scan: unreadable directory", "dir", dir, "err", err)
		entries = nil
	}
	if len(entries) > maxDirEntries {
		entries = entries[:maxDirEntries]
	}

	s.dirCache[dir] = entries
	return entries
}

// read returns up to maxFileSize bytes of a file under the root, or nil when
// the file is missing, oversized or unreadable.
func (s *snapshot) read(elem ...string) []byte {
	path := s.path(elem...)

	info, err := s.fs.Stat(path)
	if err != nil || info.IsDir() {
		return nil
	}
	if info.Size() > maxFileSize {
		s.log.Debug("scan: file exceeds size cap, skipped", "file", path, "size", info.Size())
		return nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		s.log.Debug("scan: unreadable file", "file", path, "err", err)
		return nil
	}
	return data
}

// resultBuilder accumulates detections. Tags keep insertion order and are
// deduplicated on add.
type resultBuilder struct {
	result *models.ScanResult
	seen   map[string]struct{}
}

func newResultBuilder() *resultBuilder {
	return &resultBuilder{
		result: &models.ScanResult{Tags: []string{}},
		seen:   make(map[string]struct{}),
	}
}

func (b *resultBuilder) addTag(tag string) {
	if _, dup := b.seen[tag]; dup {
		return
	}
	b.seen[tag] = struct{}{}
	b.result.Tags = append(b.result.Tags, tag)
}

func (b *resultBuilder) hasTag(tag string) bool {
	_, ok := b.seen[tag]
	return ok
}

func (b *resultBuilder) addDoc(doc models.DocRef) {
	b.result.Docs = append(b.result.Docs, doc)
}

// findWorkspaceFile records the first editor workspace descriptor at the
// root, if any.
func findWorkspaceFile(snap *snapshot, b *resultBuilder) {
	for _, entry := range snap.entries() {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".code-workspace") {
			b.result.WorkspaceFile = snap.path(entry.Name())
			return
		}
	}
}
