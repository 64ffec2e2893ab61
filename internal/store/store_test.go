package store

import (
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devdeck/devdeck/internal/filesystem"
	"github.com/devdeck/devdeck/internal/models"
)

// stubScanner returns canned results per path and counts calls.
type stubScanner struct {
	mu      sync.Mutex
	calls   int
	results map[string]*models.ScanResult
	err     error
	delay   time.Duration
}

func (s *stubScanner) Scan(root string) (*models.ScanResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	if result, ok := s.results[root]; ok {
		clone := *result
		return &clone, nil
	}
	return &models.ScanResult{Name: "stub", Tags: []string{}}, nil
}

func (s *stubScanner) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

const dataFile = "/data/projects.json"

func newTestStore(t *testing.T, fs filesystem.FileSystem, sc Scanner) *Store {
	t.Helper()
	st, err := New(fs, sc, dataFile)
	require.NoError(t, err)

	seq := 0
	st.newID = func() (string, error) {
		seq++
		return fmt.Sprintf("proj_%d", seq), nil
	}
	return st
}

func TestAdd_ScansAndPersists(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/home/dev/shop")

	sc := &stubScanner{results: map[string]*models.ScanResult{
		"/home/dev/shop": {Name: "shop", Tags: []string{"node", "react"}, FrontendURL: "http://localhost:3000"},
	}}
	st := newTestStore(t, fs, sc)

	project, err := st.Add("/home/dev/shop")
	require.NoError(t, err)
	require.Equal(t, "shop", project.Name)
	require.Equal(t, []string{"node", "react"}, project.Tags)
	require.Equal(t, 0, project.Position)

	data, err := fs.ReadFile(dataFile)
	require.NoError(t, err)

	var persisted []*models.Project
	require.NoError(t, json.Unmarshal(data, &persisted))
	require.Len(t, persisted, 1)
	require.Equal(t, project.ID, persisted[0].ID)
}

func TestAdd_CaseVariantPathIsDuplicate(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/home/dev/Shop")

	st := newTestStore(t, fs, &stubScanner{})

	_, err := st.Add("/home/dev/Shop")
	require.NoError(t, err)

	_, err = st.Add("/home/dev/shop")
	require.ErrorIs(t, err, ErrDuplicatePath)

	require.Len(t, st.List(), 1)
}

func TestAdd_MissingPath(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	st := newTestStore(t, fs, &stubScanner{})

	_, err := st.Add("/nowhere")
	require.Error(t, err)
	require.Empty(t, st.List())
}

func TestAdd_PositionsAppend(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/p/a")
	fs.AddDir("/p/b")

	st := newTestStore(t, fs, &stubScanner{})

	first, err := st.Add("/p/a")
	require.NoError(t, err)
	second, err := st.Add("/p/b")
	require.NoError(t, err)

	require.Equal(t, 0, first.Position)
	require.Equal(t, 1, second.Position)
}

func TestRefresh_PreservesCustomFields(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/p/app")

	sc := &stubScanner{results: map[string]*models.ScanResult{
		"/p/app": {Name: "app", Tags: []string{"python"}},
	}}
	st := newTestStore(t, fs, sc)

	project, err := st.Add("/p/app")
	require.NoError(t, err)

	_, err = st.AddLink(project.ID, models.CustomLink{Name: "Dashboard", URL: "https://grafana.local"})
	require.NoError(t, err)
	_, err = st.AddDoc(project.ID, models.CustomDoc{Name: "Runbook", Path: "/wiki/runbook.md"})
	require.NoError(t, err)
	_, err = st.SetPortOverrides(project.ID, 9999, 0)
	require.NoError(t, err)

	// A re-scan now reports different tags.
	sc.results["/p/app"] = &models.ScanResult{Name: "app", Tags: []string{"python", "fastapi"}, BackendPort: 8000}

	refreshed, err := st.Refresh(project.ID)
	require.NoError(t, err)

	require.Equal(t, []string{"python", "fastapi"}, refreshed.Tags)
	require.Len(t, refreshed.CustomLinks, 1)
	require.Equal(t, "Dashboard", refreshed.CustomLinks[0].Name)
	require.Len(t, refreshed.CustomDocs, 1)
	require.Equal(t, 9999, refreshed.BackendPortOverride)
	require.Equal(t, 9999, refreshed.EffectiveBackendPort())
}

func TestRefresh_FailedScanLeavesRecordUntouched(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/p/app")

	sc := &stubScanner{results: map[string]*models.ScanResult{
		"/p/app": {Name: "app", Tags: []string{"go"}},
	}}
	st := newTestStore(t, fs, sc)

	project, err := st.Add("/p/app")
	require.NoError(t, err)

	sc.err = errors.New("disk gone")
	_, err = st.Refresh(project.ID)
	require.Error(t, err)

	kept, err := st.Get(project.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"go"}, kept.Tags)
}

func TestRefresh_ConcurrentCallsCoalesce(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/p/app")

	sc := &stubScanner{
		results: map[string]*models.ScanResult{"/p/app": {Name: "app", Tags: []string{"go"}}},
	}
	st := newTestStore(t, fs, sc)

	project, err := st.Add("/p/app")
	require.NoError(t, err)

	before := sc.callCount()
	sc.delay = 50 * time.Millisecond

	errs := make(chan error, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.Refresh(project.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.Less(t, sc.callCount()-before, 8, "concurrent refreshes should share scans")
}

func TestRefresh_UnknownID(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	st := newTestStore(t, fs, &stubScanner{})

	_, err := st.Refresh("ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestList_OrderedByPosition(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	for _, dir := range []string{"/p/a", "/p/b", "/p/c"} {
		fs.AddDir(dir)
	}
	st := newTestStore(t, fs, &stubScanner{})

	var ids []string
	for _, dir := range []string{"/p/a", "/p/b", "/p/c"} {
		p, err := st.Add(dir)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	require.NoError(t, st.Reorder([]string{ids[2], ids[0], ids[1]}))

	got := st.List()
	require.Equal(t, ids[2], got[0].ID)
	require.Equal(t, ids[0], got[1].ID)
	require.Equal(t, ids[1], got[2].ID)
}

func TestReorder_UnknownIDsIgnored(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/p/a")
	st := newTestStore(t, fs, &stubScanner{})

	p, err := st.Add("/p/a")
	require.NoError(t, err)

	require.NoError(t, st.Reorder([]string{"ghost", p.ID}))

	got, err := st.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Position)
}

func TestDelete_KeepsPositionGaps(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/p/a")
	fs.AddDir("/p/b")
	st := newTestStore(t, fs, &stubScanner{})

	a, err := st.Add("/p/a")
	require.NoError(t, err)
	b, err := st.Add("/p/b")
	require.NoError(t, err)

	require.NoError(t, st.Delete(a.ID))

	got := st.List()
	require.Len(t, got, 1)
	require.Equal(t, b.ID, got[0].ID)
	require.Equal(t, 1, got[0].Position)
}

func TestBumpRecency_RanksPalette(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/p/a")
	fs.AddDir("/p/b")
	fs.AddDir("/p/c")
	st := newTestStore(t, fs, &stubScanner{})

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	a, _ := st.Add("/p/a")
	b, _ := st.Add("/p/b")
	c, _ := st.Add("/p/c")

	require.NoError(t, st.BumpRecency(b.ID))
	require.NoError(t, st.BumpRecency(a.ID))

	ranked := st.ListByRecency()
	require.Equal(t, a.ID, ranked[0].ID)
	require.Equal(t, b.ID, ranked[1].ID)
	// Never opened: trails in position order.
	require.Equal(t, c.ID, ranked[2].ID)
}

func TestReload_ReplacesInMemoryState(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/p/a")
	st := newTestStore(t, fs, &stubScanner{})

	_, err := st.Add("/p/a")
	require.NoError(t, err)

	// Simulate an external edit emptying the collection.
	require.NoError(t, fs.WriteFile(dataFile, []byte("[]"), 0644))
	require.NoError(t, st.Reload())

	require.Empty(t, st.List())
}

func TestReload_MalformedFile(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile(dataFile, []byte("{corrupt"))

	_, err := New(fs, &stubScanner{}, dataFile)
	require.Error(t, err)
}

func TestMutators_UnknownID(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	st := newTestStore(t, fs, &stubScanner{})

	_, err := st.AddLink("ghost", models.CustomLink{Name: "x", URL: "y"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = st.SetPortOverrides("ghost", 1, 2)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, st.BumpRecency("ghost"), ErrNotFound)
}

func TestRemoveLink_Missing(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/p/a")
	st := newTestStore(t, fs, &stubScanner{})

	p, err := st.Add("/p/a")
	require.NoError(t, err)

	_, err = st.RemoveLink(p.ID, "nope")
	require.Error(t, err)
}

// failingFS fails writes on demand so persist-error paths can be exercised.
type failingFS struct {
	*filesystem.MockFileSystem
	failWrites bool
}

func (f *failingFS) WriteFile(path string, data []byte, perm iofs.FileMode) error {
	if f.failWrites {
		return errors.New("disk full")
	}
	return f.MockFileSystem.WriteFile(path, data, perm)
}

func TestRefresh_FailedPersistRollsBack(t *testing.T) {
	fs := &failingFS{MockFileSystem: filesystem.NewMockFileSystem()}
	fs.AddDir("/p/app")

	sc := &stubScanner{results: map[string]*models.ScanResult{
		"/p/app": {Name: "app", Tags: []string{"go"}},
	}}
	st := newTestStore(t, fs, sc)

	project, err := st.Add("/p/app")
	require.NoError(t, err)

	sc.results["/p/app"] = &models.ScanResult{Name: "app", Tags: []string{"go", "gin"}}
	fs.failWrites = true

	_, err = st.Refresh(project.ID)
	require.Error(t, err)

	// Memory and disk must agree on the pre-refresh record.
	kept, err := st.Get(project.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"go"}, kept.Tags)

	data, err := fs.ReadFile(dataFile)
	require.NoError(t, err)
	var persisted []*models.Project
	require.NoError(t, json.Unmarshal(data, &persisted))
	require.Equal(t, []string{"go"}, persisted[0].Tags)
}

func TestAddLink_FailedPersistRollsBack(t *testing.T) {
	fs := &failingFS{MockFileSystem: filesystem.NewMockFileSystem()}
	fs.AddDir("/p/app")
	st := newTestStore(t, fs, &stubScanner{})

	project, err := st.Add("/p/app")
	require.NoError(t, err)

	fs.failWrites = true
	_, err = st.AddLink(project.ID, models.CustomLink{Name: "Dashboard", URL: "https://grafana.local"})
	require.Error(t, err)

	kept, err := st.Get(project.ID)
	require.NoError(t, err)
	require.Empty(t, kept.CustomLinks)
}

func TestDelete_FailedPersistRestoresRecord(t *testing.T) {
	fs := &failingFS{MockFileSystem: filesystem.NewMockFileSystem()}
	fs.AddDir("/p/a")
	fs.AddDir("/p/b")
	st := newTestStore(t, fs, &stubScanner{})

	a, err := st.Add("/p/a")
	require.NoError(t, err)
	_, err = st.Add("/p/b")
	require.NoError(t, err)

	fs.failWrites = true
	require.Error(t, st.Delete(a.ID))

	got := st.List()
	require.Len(t, got, 2)
	require.Equal(t, a.ID, got[0].ID)
}

func TestReorder_FailedPersistRestoresPositions(t *testing.T) {
	fs := &failingFS{MockFileSystem: filesystem.NewMockFileSystem()}
	fs.AddDir("/p/a")
	fs.AddDir("/p/b")
	st := newTestStore(t, fs, &stubScanner{})

	a, err := st.Add("/p/a")
	require.NoError(t, err)
	b, err := st.Add("/p/b")
	require.NoError(t, err)

	fs.failWrites = true
	require.Error(t, st.Reorder([]string{b.ID, a.ID}))

	got := st.List()
	require.Equal(t, a.ID, got[0].ID)
	require.Equal(t, b.ID, got[1].ID)
}

func TestList_ReturnsCopies(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/p/a")
	sc := &stubScanner{results: map[string]*models.ScanResult{
		"/p/a": {Name: "a", Tags: []string{"go"}},
	}}
	st := newTestStore(t, fs, sc)

	_, err := st.Add("/p/a")
	require.NoError(t, err)

	got := st.List()
	got[0].Name = "mutated"
	got[0].Tags[0] = "mutated"

	again := st.List()
	require.Equal(t, "a", again[0].Name)
	require.Equal(t, "go", again[0].Tags[0])
}
