package workspaceindex

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jbearak/rlsp/artifacts"
	"github.com/jbearak/rlsp/location"
	"github.com/jbearak/rlsp/metadata"
	"github.com/jbearak/rlsp/resolve"
)

// ContentSource supplies a file's current text, open-buffer-first then
// disk, per component H. *content.Provider satisfies this directly; it
// is accepted as an interface here (rather than imported concretely) so
// workspaceindex never needs to know whether a file came from a buffer
// or disk.
type ContentSource interface {
	Get(file location.FileID) (text string, ok bool)
}

// Entry is one file's indexed facts.
type Entry struct {
	File      location.FileID
	Metadata  metadata.CrossFileMetadata
	Artifacts artifacts.ScopeArtifacts
}

// Index enumerates *.R/*.r files under a workspace root and computes
// metadata and artifacts for each, so closed files can still contribute
// to cross-file scope resolution. Grounded on the teacher's fsnotify-
// driven cache-refresh loop in buflsp/lsp.go, generalized from a single
// file-write trigger to a full enumerate-filter-queue-process pipeline,
// and on the Mutagen-style ignore matcher (graph/duplicate.go's sibling
// package, pkg/synchronization/core/ignore/mutagen) for the exclude-list
// semantics.
type Index struct {
	root    location.CanonicalPath
	content ContentSource
	matcher *Matcher

	mu      sync.RWMutex
	entries map[location.FileID]Entry
	version uint64
	queue   *boundedQueue
}

// New creates an Index rooted at root. matcher may be nil to disable
// filtering beyond the *.R/*.r suffix check. maxQueueSize bounds the
// pending-file queue (see boundedQueue); non-positive values default to
// 1024.
func New(root location.CanonicalPath, content ContentSource, matcher *Matcher, maxQueueSize int) *Index {
	if maxQueueSize <= 0 {
		maxQueueSize = 1024
	}
	return &Index{
		root:    root,
		content: content,
		matcher: matcher,
		entries: make(map[location.FileID]Entry),
		queue:   newBoundedQueue(maxQueueSize),
	}
}

// Version returns the current workspace_index_version: it increases by
// one each time a file enters or leaves the index.
func (idx *Index) Version() uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.version
}

// Lookup returns the indexed Entry for file, if any.
func (idx *Index) Lookup(file location.FileID) (Entry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	e, ok := idx.entries[file]
	return e, ok
}

// Entries returns every currently indexed Entry, in no particular order,
// for callers that need to scan the whole workspace (e.g. workspace/symbol
// search) rather than look up one file.
func (idx *Index) Entries() []Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]Entry, 0, len(idx.entries))
	for _, e := range idx.entries {
		out = append(out, e)
	}
	return out
}

// Load implements scope.ArtifactsLoader, so a Resolver can consult an
// Index directly for files that are not open in any editor buffer.
func (idx *Index) Load(_ context.Context, file location.FileID) (artifacts.ScopeArtifacts, bool, error) {
	e, ok := idx.Lookup(file)
	if !ok {
		return artifacts.ScopeArtifacts{}, false, nil
	}
	return e.Artifacts, true, nil
}

// Refresh immediately (re)computes file's entry from its current content
// (open buffer if any, else disk) and installs it, bumping Version if
// the file is new to the index. Unlike ProcessNext, it bypasses the
// pending queue entirely: callers use it to keep a single file's entry
// current right after an edit, rather than waiting for a background
// drain, per spec.md §6's crossFile.onDemandIndexing.
func (idx *Index) Refresh(ctx context.Context, file location.FileID) error {
	entry, err := idx.computeEntry(ctx, file)
	if err != nil {
		return err
	}

	idx.mu.Lock()
	_, existed := idx.entries[file]
	idx.entries[file] = entry
	if !existed {
		idx.version++
	}
	idx.mu.Unlock()
	return nil
}

// EnumerateResult reports the outcome of a filesystem walk: how many new
// files were discovered and queued, and which files (if any) were
// dropped from the pending queue to stay within its capacity. Callers
// own logging the dropped set, since only they hold the real logger.
type EnumerateResult struct {
	Discovered int
	Dropped    []location.FileID
}

// Enumerate walks root, queuing every *.R/*.r file not excluded by
// matcher and not already indexed or queued. It does not compute
// metadata or artifacts itself; call ProcessNext (directly or in a
// background loop) to drain the queue.
func (idx *Index) Enumerate(ctx context.Context) (EnumerateResult, error) {
	var result EnumerateResult

	err := filepath.WalkDir(idx.root.String(), func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(idx.root.String(), path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if idx.matcher != nil && idx.matcher.Excluded(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isRSourceFile(path) {
			return nil
		}
		if idx.matcher != nil && idx.matcher.Excluded(rel, false) {
			return nil
		}

		file, idErr := location.FileIDFromPath(path)
		if idErr != nil {
			return nil
		}

		idx.mu.Lock()
		_, alreadyIndexed := idx.entries[file]
		idx.mu.Unlock()
		if alreadyIndexed {
			return nil
		}

		idx.mu.Lock()
		dropped, didDrop := idx.queue.enqueue(file)
		idx.mu.Unlock()
		result.Discovered++
		if didDrop {
			result.Dropped = append(result.Dropped, dropped)
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("workspaceindex: enumerate %s: %w", idx.root.String(), err)
	}
	return result, nil
}

func isRSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".r"
}

// ProcessNext pops one file from the pending queue and computes its
// metadata and artifacts, installing the result and bumping Version.
// Returns false if the queue was empty.
func (idx *Index) ProcessNext(ctx context.Context) (bool, error) {
	idx.mu.Lock()
	file, ok := idx.queue.dequeue()
	idx.mu.Unlock()
	if !ok {
		return false, nil
	}

	entry, err := idx.computeEntry(ctx, file)
	if err != nil {
		return true, err
	}

	idx.mu.Lock()
	_, existed := idx.entries[file]
	idx.entries[file] = entry
	if !existed {
		idx.version++
	}
	idx.mu.Unlock()
	return true, nil
}

// Remove drops file from the index, advancing Version if it was
// present. Call when a file is deleted from the workspace.
func (idx *Index) Remove(file location.FileID) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, ok := idx.entries[file]; ok {
		delete(idx.entries, file)
		idx.version++
	}
}

func (idx *Index) computeEntry(_ context.Context, file location.FileID) (Entry, error) {
	text, ok := idx.content.Get(file)
	if !ok {
		return Entry{}, fmt.Errorf("workspaceindex: content unavailable for %s", file.String())
	}

	md := metadata.Extract(file, text)

	cp, _ := file.CanonicalPath()
	fileCtx := resolve.FromMetadata(cp.Dir(), location.CanonicalPath{}, idx.root)

	forward := md.ForwardSources()
	resolved := make([]artifacts.ResolvedChild, len(forward))
	for i, fwd := range forward {
		child, ok := resolve.Resolve(fwd.RawPath, fileCtx)
		resolved[i] = artifacts.ResolvedChild{File: child, OK: ok}
	}

	art, err := artifacts.Build(file, text, md, resolved)
	if err != nil {
		return Entry{}, fmt.Errorf("workspaceindex: build artifacts for %s: %w", file.String(), err)
	}

	return Entry{File: file, Metadata: md, Artifacts: art}, nil
}

// DrainAll repeatedly calls ProcessNext until the queue is empty,
// stopping early on error or context cancellation. Intended for tests
// and small workspaces; a production background loop should call
// ProcessNext in a rate-limited or worker-pool loop instead.
func (idx *Index) DrainAll(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		more, err := idx.ProcessNext(ctx)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}
