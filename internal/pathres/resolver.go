package pathres

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/devdeck/devdeck/internal/filesystem"
)

// Resolver normalizes paths and resolves them against the casing actually
// stored on disk. On case-insensitive filesystems the same directory can be
// referred to with arbitrary casing; the store needs one canonical spelling
// per path so duplicate detection works.
type Resolver struct {
	fs filesystem.FileSystem
}

// NewResolver creates a new Resolver
func NewResolver(fs filesystem.FileSystem) *Resolver {
	return &Resolver{fs: fs}
}

// Normalize cleans a path without touching the filesystem.
func Normalize(path string) string {
	return filepath.Clean(path)
}

// Resolve makes the path absolute and rewrites every segment to the casing
// of the matching on-disk entry. A segment matches exactly first; when no
// exact entry exists, a single case-insensitive match is used instead.
//
// Returns fs.ErrNotExist (wrapped) when a segment cannot be matched at all.
func (r *Resolver) Resolve(path string) (string, error) {
	abs, err := r.fs.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to make path absolute: %w", err)
	}
	abs = filepath.Clean(abs)

	sep := string(filepath.Separator)
	volume := filepath.VolumeName(abs)
	rest := strings.TrimPrefix(abs, volume)
	rest = strings.TrimPrefix(rest, sep)

	current := volume + sep
	if rest == "" {
		return current, nil
	}

	for _, segment := range strings.Split(rest, sep) {
		resolved, err := r.resolveSegment(current, segment)
		if err != nil {
			return "", err
		}
		current = filepath.Join(current, resolved)
	}

	return current, nil
}

func (r *Resolver) resolveSegment(dir, segment string) (string, error) {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", dir, err)
	}

	// Exact match wins over a case-variant one.
	for _, entry := range entries {
		if entry.Name() == segment {
			return segment, nil
		}
	}

	for _, entry := range entries {
		if strings.EqualFold(entry.Name(), segment) {
			return entry.Name(), nil
		}
	}

	return "", fmt.Errorf("path segment %q not found under %s: %w", segment, dir, fs.ErrNotExist)
}
