package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/devdeck/devdeck/internal/filesystem"
	"github.com/devdeck/devdeck/internal/models"
	"github.com/devdeck/devdeck/internal/pathres"
)

var (
	// ErrDuplicatePath is returned by Add when the case-resolved path is
	// already indexed
	ErrDuplicatePath = errors.New("project path already indexed")

	// ErrNotFound is returned when no project has the given id
	ErrNotFound = errors.New("project not found")
)

// Scanner is the slice of the scanner the store depends on.
type Scanner interface {
	Scan(root string) (*models.ScanResult, error)
}

// Store owns the durable list of projects. All mutations are serialized
// behind a single lock because position allocation and path-uniqueness
// checks are check-then-act sequences; reads run concurrently.
type Store struct {
	fs       filesystem.FileSystem
	resolver *pathres.Resolver
	scanner  Scanner
	dataFile string

	// now and newID are injectable for tests
	now   func() time.Time
	newID func() (string, error)

	mu       sync.RWMutex
	projects []*models.Project

	// refreshGroup coalesces concurrent Refresh calls per project id so
	// two writers never race on the same record
	refreshGroup singleflight.Group
}

// New creates a Store backed by the JSON file at dataFile and loads any
// existing records.
func New(fs filesystem.FileSystem, scanner Scanner, dataFile string) (*Store, error) {
	s := &Store{
		fs:       fs,
		resolver: pathres.NewResolver(fs),
		scanner:  scanner,
		dataFile: dataFile,
		now:      time.Now,
		newID:    newProjectID,
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the data file, replacing the in-memory project list.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fs.Exists(s.dataFile) {
		s.projects = []*models.Project{}
		return nil
	}

	data, err := s.fs.ReadFile(s.dataFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.dataFile, err)
	}

	var projects []*models.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return fmt.Errorf("failed to parse %s: %w", s.dataFile, err)
	}

	s.projects = projects
	return nil
}

// DataFile returns the path of the backing JSON file.
func (s *Store) DataFile() string {
	return s.dataFile
}

// persist writes the project list to disk. Caller must hold the write lock.
func (s *Store) persist() error {
	dir := filepath.Dir(s.dataFile)
	if !s.fs.Exists(dir) {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(s.projects, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}

	if err := s.fs.WriteFile(s.dataFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.dataFile, err)
	}
	return nil
}

// findLocked returns the project with the given id. Caller must hold a lock.
func (s *Store) findLocked(id string) (*models.Project, error) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// findIndexLocked returns the slice index of the project with the given id.
// Caller must hold a lock.
func (s *Store) findIndexLocked(id string) (int, error) {
	for i, p := range s.projects {
		if p.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Add indexes the project at path. The path is case-resolved first; adding
// a case-variant of an already indexed path fails with ErrDuplicatePath.
func (s *Store) Add(path string) (*models.Project, error) {
	resolved, err := s.resolver.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.projects {
		if p.Path == resolved {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, resolved)
		}
	}

	result, err := s.scanner.Scan(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", resolved, err)
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	maxPos := -1
	for _, p := range s.projects {
		if p.Position > maxPos {
			maxPos = p.Position
		}
	}

	project := &models.Project{
		ID:       id,
		Name:     result.Name,
		Path:     resolved,
		Position: maxPos + 1,
	}
	project.ApplyScan(result)

	s.projects = append(s.projects, project)
	if err := s.persist(); err != nil {
		s.projects = s.projects[:len(s.projects)-1]
		return nil, err
	}

	return project.Clone(), nil
}

// Get returns the project with the given id.
func (s *Store) Get(id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.findLocked(id)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// List returns all projects sorted by position (the user-controlled order).
func (s *Store) List() []*models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Clone())
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}

// ListByRecency returns all projects most-recently-opened first; never
// opened projects follow in position order. This is the palette ranking.
func (s *Store) ListByRecency() []*models.Project {
	out := s.List()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].LastOpenedAt, out[j].LastOpenedAt
		switch {
		case a != nil && b != nil:
			return a.After(*b)
		case a != nil:
			return true
		default:
			return false
		}
	})
	return out
}

// Refresh re-scans the project's path and merges the result, preserving
// custom links/docs and port overrides. Concurrent calls for the same id
// coalesce into a single scan; every caller observes the same record. A
// failed scan leaves the stored record untouched.
func (s *Store) Refresh(id string) (*models.Project, error) {
	v, err, _ := s.refreshGroup.Do(id, func() (interface{}, error) {
		s.mu.RLock()
		p, findErr := s.findLocked(id)
		if findErr != nil {
			s.mu.RUnlock()
			return nil, findErr
		}
		path := p.Path
		s.mu.RUnlock()

		result, scanErr := s.scanner.Scan(path)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to refresh %s: %w", id, scanErr)
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		// Mutate a copy and swap it in only once the write succeeded, so a
		// failed persist leaves the stored record untouched.
		i, findErr := s.findIndexLocked(id)
		if findErr != nil {
			return nil, findErr
		}
		prior := s.projects[i]

		updated := prior.Clone()
		updated.ApplyScan(result)
		s.projects[i] = updated

		if persistErr := s.persist(); persistErr != nil {
			s.projects[i] = prior
			return nil, persistErr
		}
		return updated.Clone(), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Project), nil
}

// Delete removes the project. Remaining positions are not renumbered; gaps
// are fine because ordering always sorts by position.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.findIndexLocked(id)
	if err != nil {
		return err
	}

	removed := s.projects[i]
	s.projects = append(s.projects[:i], s.projects[i+1:]...)

	if err := s.persist(); err != nil {
		s.projects = append(s.projects[:i], append([]*models.Project{removed}, s.projects[i:]...)...)
		return err
	}
	return nil
}

// Reorder assigns position = index for every id in orderedIDs. Ids not in
// the list keep their prior position; callers wanting a deterministic total
// order must pass the full id set. Unknown ids are ignored.
func (s *Store) Reorder(orderedIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		index[id] = i
	}

	prior := make(map[string]int)
	for _, p := range s.projects {
		if pos, ok := index[p.ID]; ok {
			prior[p.ID] = p.Position
			p.Position = pos
		}
	}

	if err := s.persist(); err != nil {
		for _, p := range s.projects {
			if pos, ok := prior[p.ID]; ok {
				p.Position = pos
			}
		}
		return err
	}
	return nil
}

// BumpRecency marks the project as just opened. Recency only ranks the
// palette; it is independent of position.
func (s *Store) BumpRecency(id string) error {
	_, err := s.mutate(id, func(p *models.Project) error {
		t := s.now()
		p.LastOpenedAt = &t
		return nil
	})
	return err
}

// AddLink attaches a user link to the project. Custom links survive refresh.
func (s *Store) AddLink(id string, link models.CustomLink) (*models.Project, error) {
	return s.mutate(id, func(p *models.Project) error {
		p.CustomLinks = append(p.CustomLinks, link)
		return nil
	})
}

// RemoveLink removes the named user link.
func (s *Store) RemoveLink(id, name string) (*models.Project, error) {
	return s.mutate(id, func(p *models.Project) error {
		for i, l := range p.CustomLinks {
			if l.Name == name {
				p.CustomLinks = append(p.CustomLinks[:i], p.CustomLinks[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("link %q not found on %s", name, id)
	})
}

// AddDoc attaches a user document to the project. Custom docs survive
// refresh.
func (s *Store) AddDoc(id string, doc models.CustomDoc) (*models.Project, error) {
	return s.mutate(id, func(p *models.Project) error {
		p.CustomDocs = append(p.CustomDocs, doc)
		return nil
	})
}

// RemoveDoc removes the named user document.
func (s *Store) RemoveDoc(id, name string) (*models.Project, error) {
	return s.mutate(id, func(p *models.Project) error {
		for i, d := range p.CustomDocs {
			if d.Name == name {
				p.CustomDocs = append(p.CustomDocs[:i], p.CustomDocs[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("doc %q not found on %s", name, id)
	})
}

// SetPortOverrides sets the user port overrides (0 clears an override).
func (s *Store) SetPortOverrides(id string, backend, frontend int) (*models.Project, error) {
	return s.mutate(id, func(p *models.Project) error {
		p.BackendPortOverride = backend
		p.FrontendPortOverride = frontend
		return nil
	})
}

// mutate applies fn to a copy of the record and swaps the copy in only when
// the write succeeds, so a failed persist leaves the stored record untouched.
func (s *Store) mutate(id string, fn func(p *models.Project) error) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.findIndexLocked(id)
	if err != nil {
		return nil, err
	}
	prior := s.projects[i]

	updated := prior.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	s.projects[i] = updated

	if err := s.persist(); err != nil {
		s.projects[i] = prior
		return nil, err
	}
	return updated.Clone(), nil
}
