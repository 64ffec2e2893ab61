package models

import (
	"time"
)

// DocKind classifies how a DocRef should be opened.
type DocKind string

const (
	DocKindFile     DocKind = "file"
	DocKindLink     DocKind = "link"
	DocKindMarkdown DocKind = "markdown"
	DocKindOpenAPI  DocKind = "openapi"
	DocKindSwagger  DocKind = "swagger"
)

// DocRef points at a piece of project documentation, either a local file or
// a URL.
type DocRef struct {
	// Name is the display name (file name, or frontmatter title when present)
	Name string `json:"name"`

	// Path is a filesystem path or a URL, depending on Kind
	Path string `json:"path"`

	// Kind indicates how the reference should be opened
	Kind DocKind `json:"kind"`
}

// CustomLink is a user-added URL attached to a project. Never touched by
// refresh.
type CustomLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CustomDoc is a user-added local document attached to a project. Never
// touched by refresh.
type CustomDoc struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Project represents an indexed project directory.
type Project struct {
	// ID is the unique identifier, immutable once created
	ID string `json:"id"`

	// Name is the display name (defaults to the directory name)
	Name string `json:"name"`

	// Path is the canonical, case-resolved filesystem path. Unique within
	// a store.
	Path string `json:"path"`

	// Tags are detected technology labels, insertion-ordered, deduplicated
	Tags []string `json:"tags"`

	// Docs are scanner-discovered documentation references. Replaced on
	// refresh.
	Docs []DocRef `json:"docs,omitempty"`

	// CustomLinks and CustomDocs are user-managed and survive refresh
	CustomLinks []CustomLink `json:"customLinks,omitempty"`
	CustomDocs  []CustomDoc  `json:"customDocs,omitempty"`

	// FrontendURL is the detected dev-server URL, if any
	FrontendURL string `json:"frontendUrl,omitempty"`

	// BackendPort and FrontendPort are scanner-detected ports (0 = none)
	BackendPort  int `json:"backendPort,omitempty"`
	FrontendPort int `json:"frontendPort,omitempty"`

	// Port overrides set by the user; they win over detected values and
	// survive refresh
	BackendPortOverride  int `json:"backendPortOverride,omitempty"`
	FrontendPortOverride int `json:"frontendPortOverride,omitempty"`

	// WorkspaceFile is a companion editor workspace descriptor found at the
	// project root (e.g. *.code-workspace), if any
	WorkspaceFile string `json:"workspaceFile,omitempty"`

	// Position is the explicit sort key for user-controlled ordering.
	// Gaps are tolerated; sort, don't index.
	Position int `json:"position"`

	// LastOpenedAt is the time of the last user-initiated open, used only
	// for palette ranking
	LastOpenedAt *time.Time `json:"lastOpenedAt,omitempty"`
}

// EffectiveBackendPort returns the override when set, otherwise the detected
// port. Zero means no port is known.
func (p *Project) EffectiveBackendPort() int {
	if p.BackendPortOverride != 0 {
		return p.BackendPortOverride
	}
	return p.BackendPort
}

// EffectiveFrontendPort returns the override when set, otherwise the detected
// port.
func (p *Project) EffectiveFrontendPort() int {
	if p.FrontendPortOverride != 0 {
		return p.FrontendPortOverride
	}
	return p.FrontendPort
}

// Clone returns a deep copy of the project so callers can hand records out
// without sharing slices with the store.
func (p *Project) Clone() *Project {
	clone := *p
	clone.Tags = append([]string(nil), p.Tags...)
	clone.Docs = append([]DocRef(nil), p.Docs...)
	clone.CustomLinks = append([]CustomLink(nil), p.CustomLinks...)
	clone.CustomDocs = append([]CustomDoc(nil), p.CustomDocs...)
	if p.LastOpenedAt != nil {
		t := *p.LastOpenedAt
		clone.LastOpenedAt = &t
	}
	return &clone
}

// ApplyScan merges a fresh scan into the project, preserving user-managed
// fields (custom links/docs, port overrides, position, recency).
func (p *Project) ApplyScan(result *ScanResult) {
	p.Tags = append([]string(nil), result.Tags...)
	p.Docs = append([]DocRef(nil), result.Docs...)
	p.FrontendURL = result.FrontendURL
	p.BackendPort = result.BackendPort
	p.FrontendPort = result.FrontendPort
	p.WorkspaceFile = result.WorkspaceFile
}

// ScanResult is the ephemeral output of a single scan. It is never persisted
// on its own, only merged into a Project.
type ScanResult struct {
	// Name is the inferred display name (base of the scanned path)
	Name string

	// Tags are deduplicated, in detection order
	Tags []string

	// Docs are discovered documentation references
	Docs []DocRef

	// BackendPort is the resolved backend port (0 = none)
	BackendPort int

	// FrontendPort is the resolved frontend dev-server port (0 = none)
	FrontendPort int

	// FrontendURL is the dev-server URL derived from FrontendPort or a
	// framework default
	FrontendURL string

	// WorkspaceFile is an editor workspace descriptor found at the root
	WorkspaceFile string
}
