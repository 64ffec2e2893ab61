package scanner

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	gitignore "github.com/denormal/go-gitignore"

	"github.com/devdeck/devdeck/internal/models"
)

// maxDocs caps how many documentation references a single scan emits.
const maxDocs = 50

// docsDirDepth bounds recursion inside the docs folder.
const docsDirDepth = 2

// discoverDocs finds markdown documentation at the root and inside a docs/
// folder, plus OpenAPI/Swagger definitions at the root.
func discoverDocs(snap *snapshot, b *resultBuilder) {
	for _, entry := range snap.entries() {
		if len(b.result.Docs) >= maxDocs {
			return
		}
		if entry.IsDir() || !isMarkdown(entry.Name()) {
			continue
		}
		b.addDoc(markdownDoc(snap, snap.path(entry.Name())))
	}

	discoverDocsDir(snap, b)

	for _, name := range []string{"openapi.json", "swagger.json"} {
		if len(b.result.Docs) >= maxDocs {
			return
		}
		if !snap.exists(name) {
			continue
		}
		kind := models.DocKindOpenAPI
		if name == "swagger.json" {
			kind = models.DocKindSwagger
		}
		b.addDoc(models.DocRef{Name: name, Path: snap.path(name), Kind: kind})
	}
}

// discoverDocsDir walks the docs/ folder up to docsDirDepth levels, pruning
// anything the project's .gitignore excludes.
func discoverDocsDir(snap *snapshot, b *resultBuilder) {
	docsRoot := snap.path("docs")
	info, err := snap.fs.Stat(docsRoot)
	if err != nil || !info.IsDir() {
		return
	}

	ignore := loadGitIgnore(snap)

	err = snap.fs.WalkDir(docsRoot, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if path == docsRoot {
			return nil
		}

		rel, relErr := filepath.Rel(snap.root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if ignore != nil {
			if match := ignore.Relative(rel, entry.IsDir()); match != nil && match.Ignore() {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		depth := strings.Count(rel, "/")
		if entry.IsDir() {
			if depth >= docsDirDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if len(b.result.Docs) >= maxDocs {
			return filepath.SkipAll
		}
		if isMarkdown(entry.Name()) {
			b.addDoc(markdownDoc(snap, path))
		}
		return nil
	})
	if err != nil {
		snap.log.Debug("scan: docs walk aborted", "dir", docsRoot, "err", err)
	}
}

func loadGitIgnore(snap *snapshot) gitignore.GitIgnore {
	data := snap.read(".gitignore")
	if data == nil {
		return nil
	}
	return gitignore.New(bytes.NewReader(data), snap.root, nil)
}

func isMarkdown(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".md")
}

// markdownDoc builds a DocRef for a markdown file, preferring a frontmatter
// title over the file name.
func markdownDoc(snap *snapshot, path string) models.DocRef {
	name := filepath.Base(path)

	if data, err := snap.fs.ReadFile(path); err == nil && len(data) <= maxFileSize {
		var matter struct {
			Title string `yaml:"title"`
		}
		if _, err := frontmatter.Parse(bytes.NewReader(data), &matter); err == nil && strings.TrimSpace(matter.Title) != "" {
			name = strings.TrimSpace(matter.Title)
		}
	}

	return models.DocRef{Name: name, Path: path, Kind: models.DocKindMarkdown}
}

// synthesizeAPIDocs adds the conventional interactive API doc links when an
// API framework was detected and a backend port resolved. Without a port the
// links would be guesses, so they are omitted.
func synthesizeAPIDocs(b *resultBuilder) {
	if !hasAPIDocFramework(b) {
		return
	}
	port := b.result.BackendPort
	if port == 0 {
		return
	}

	base := fmt.Sprintf("http://localhost:%d", port)
	b.addDoc(models.DocRef{Name: "Swagger UI", Path: base + "/docs", Kind: models.DocKindLink})
	b.addDoc(models.DocRef{Name: "ReDoc", Path: base + "/redoc", Kind: models.DocKindLink})
	b.addDoc(models.DocRef{Name: "OpenAPI JSON", Path: base + "/openapi.json", Kind: models.DocKindLink})
}
