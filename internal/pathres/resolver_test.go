package pathres

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/devdeck/devdeck/internal/filesystem"
)

func TestResolve_ExactPath(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/home/dev/Projects/shop")

	resolved, err := NewResolver(mfs).Resolve("/home/dev/Projects/shop")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved != "/home/dev/Projects/shop" {
		t.Fatalf("unexpected resolved path: %s", resolved)
	}
}

func TestResolve_CaseVariant(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/home/dev/Projects/shop")

	resolved, err := NewResolver(mfs).Resolve("/home/dev/projects/SHOP")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved != "/home/dev/Projects/shop" {
		t.Fatalf("expected on-disk casing, got %s", resolved)
	}
}

func TestResolve_ExactMatchWinsOverCaseMatch(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/srv/app")
	mfs.AddDir("/srv/App")

	resolved, err := NewResolver(mfs).Resolve("/srv/app")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved != "/srv/app" {
		t.Fatalf("exact casing should win, got %s", resolved)
	}
}

func TestResolve_MissingSegment(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/home/dev")

	_, err := NewResolver(mfs).Resolve("/home/dev/ghost")
	if err == nil {
		t.Fatal("expected error for missing path")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestResolve_RelativePath(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.SetCurrentDir("/home/dev")
	mfs.AddDir("/home/dev/Tools")

	resolved, err := NewResolver(mfs).Resolve("tools")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved != "/home/dev/Tools" {
		t.Fatalf("unexpected resolved path: %s", resolved)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("/a/b/../c/./d/"); got != "/a/c/d" {
		t.Fatalf("Normalize() = %s", got)
	}
}
