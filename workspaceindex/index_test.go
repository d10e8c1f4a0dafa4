package workspaceindex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jbearak/rlsp/location"
)

// diskContentSource reads directly from disk, mirroring what
// *content.Provider would do for a closed file.
type diskContentSource struct{}

func (diskContentSource) Get(file location.FileID) (string, bool) {
	cp, ok := file.CanonicalPath()
	if !ok {
		return "", false
	}
	raw, err := os.ReadFile(cp.String())
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func writeIndexedFile(t *testing.T, dir, name, text string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEnumerateAndProcessIndexesRFiles(t *testing.T) {
	dir := t.TempDir()
	writeIndexedFile(t, dir, "a.R", "foo <- function() 1\n")
	writeIndexedFile(t, dir, "b.r", "bar <- function() 2\n")
	writeIndexedFile(t, dir, "notes.txt", "not R\n")

	root := location.MustCanonicalPath(dir)
	idx := New(root, diskContentSource{}, nil, 0)

	result, err := idx.Enumerate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Discovered != 2 {
		t.Fatalf("expected 2 discovered .R/.r files, got %d", result.Discovered)
	}

	if err := idx.DrainAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	aFile := location.MustFileIDFromPath(filepath.Join(dir, "a.R"))
	entry, ok := idx.Lookup(aFile)
	if !ok {
		t.Fatal("expected a.R to be indexed")
	}
	if len(entry.Artifacts.ExportedInterface()) == 0 {
		t.Fatal("expected a.R's exported interface to contain foo")
	}
	if idx.Version() == 0 {
		t.Fatal("expected version to advance past zero after indexing files")
	}
}

func TestEnumerateRespectsMatcher(t *testing.T) {
	dir := t.TempDir()
	writeIndexedFile(t, dir, "keep.R", "x <- 1\n")
	writeIndexedFile(t, dir, "build/generated.R", "y <- 2\n")

	matcher, err := NewMatcher([]string{"build/**"})
	if err != nil {
		t.Fatal(err)
	}

	root := location.MustCanonicalPath(dir)
	idx := New(root, diskContentSource{}, matcher, 0)

	result, err := idx.Enumerate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Discovered != 1 {
		t.Fatalf("expected 1 discovered file (build/ excluded), got %d", result.Discovered)
	}
}

func TestRemoveAdvancesVersion(t *testing.T) {
	dir := t.TempDir()
	writeIndexedFile(t, dir, "a.R", "x <- 1\n")
	root := location.MustCanonicalPath(dir)
	idx := New(root, diskContentSource{}, nil, 0)

	if _, err := idx.Enumerate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := idx.DrainAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	v1 := idx.Version()

	aFile := location.MustFileIDFromPath(filepath.Join(dir, "a.R"))
	idx.Remove(aFile)

	if idx.Version() <= v1 {
		t.Fatal("expected version to advance on removal")
	}
	if _, ok := idx.Lookup(aFile); ok {
		t.Fatal("expected a.R to no longer be indexed")
	}
}

func TestLoadImplementsArtifactsLoaderContract(t *testing.T) {
	dir := t.TempDir()
	writeIndexedFile(t, dir, "a.R", "x <- 1\n")
	root := location.MustCanonicalPath(dir)
	idx := New(root, diskContentSource{}, nil, 0)

	if _, err := idx.Enumerate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := idx.DrainAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	aFile := location.MustFileIDFromPath(filepath.Join(dir, "a.R"))
	art, found, err := idx.Load(context.Background(), aFile)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected a.R to be found via Load")
	}
	if art.File() != aFile {
		t.Fatal("expected returned artifacts to be for a.R")
	}
}

func TestQueueOverflowReportsDropped(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		writeIndexedFile(t, dir, filepath.Join("pkg", string(rune('a'+i))+".R"), "x <- 1\n")
	}
	root := location.MustCanonicalPath(dir)
	idx := New(root, diskContentSource{}, nil, 2)

	result, err := idx.Enumerate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Dropped) == 0 {
		t.Fatal("expected some files dropped once the 2-entry queue overflowed")
	}
}
