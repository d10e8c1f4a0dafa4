package lsp

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/jbearak/rlsp/cache"
	"github.com/jbearak/rlsp/config"
	"github.com/jbearak/rlsp/content"
	"github.com/jbearak/rlsp/depgraph"
	"github.com/jbearak/rlsp/location"
	"github.com/jbearak/rlsp/revalidate"
	"github.com/jbearak/rlsp/scope"
	"github.com/jbearak/rlsp/workspaceindex"
)

// Workspace ties components H (content), the dependency graph, E-F-G
// (artifacts/scope/parent-selection, via cache and scope.Resolver), I
// (workspaceindex), and J (revalidate.Engine) together behind a single
// root, the way the teacher's lsp/workspace.go Workspace ties its
// document map, analyzer, and debounce state together behind a set of
// workspace folders.
//
// One Workspace exists per workspace root. Multi-root clients get one
// Workspace per folder; Server picks the right one by file path prefix.
type Workspace struct {
	root    location.CanonicalPath
	opts    config.Options
	logger  *slog.Logger
	content *content.Provider
	index   *workspaceindex.Index
	graph   *depgraph.Graph
	cache   *cache.Cache

	resolver *scope.Resolver
	engine   *revalidate.Engine
	notify   *diagnosticsPublisher

	watcher     *workspaceindex.DirWatcher
	watchCancel context.CancelFunc
	closeOnce   sync.Once
}

// NewWorkspace constructs a Workspace rooted at root, configured by opts.
// It wires a fresh content.Provider, workspaceindex.Index, depgraph.Graph,
// cache.Cache, scope.Resolver, and revalidate.Engine, mirroring the
// pipeline spec.md §4 lays out end to end (H -> E/F -> D/depgraph -> G/J),
// and starts a workspaceindex.DirWatcher over root's directory tree so
// files created or deleted outside the editor are picked up without
// waiting for the next indexWorkspace pass.
//
// Package export lookups (scope.PackageExports) are intentionally left
// nil: no SPEC_FULL.md component implements an rPath subprocess that
// enumerates a package's exported symbols, so package *names* enter
// scope (via LibraryLoad events) but their member symbols don't resolve
// to completions or definitions. See DESIGN.md.
func NewWorkspace(root location.CanonicalPath, opts config.Options, logger *slog.Logger) (*Workspace, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "workspace"), slog.String("root", root.String()))

	matcher, err := workspaceindex.NewMatcher(nil)
	if err != nil {
		return nil, fmt.Errorf("lsp: building workspace matcher: %w", err)
	}

	contentProvider := content.NewProvider(0)
	index := workspaceindex.New(root, contentProvider, matcher, opts.CrossFile.OnDemandIndexing.MaxQueueSize)
	graph := depgraph.New()
	c := cache.New()
	resolver := scope.New(index, nil, scope.Config{
		MaxChainDepth: opts.CrossFile.MaxChainDepth,
	})

	w := &Workspace{
		root:    root,
		opts:    opts,
		logger:  logger,
		content: contentProvider,
		index:   index,
		graph:   graph,
		cache:   c,

		resolver: resolver,
		notify:   newDiagnosticsPublisher(),
	}

	w.engine = revalidate.New(graph, c, contentProvider, w, w.notify, root, revalidate.Config{
		MaxRevalidationsPerTrigger: opts.CrossFile.MaxRevalidationsPerTrigger,
		RevalidationDebounceMs:     opts.CrossFile.RevalidationDebounceMs,
		MaxChainDepth:              opts.CrossFile.MaxChainDepth,
	})

	w.startWatcher(matcher)
	return w, nil
}

// startWatcher adds every non-excluded directory under root to a
// DirWatcher and runs it in the background, re-enumerating the
// workspace whenever a directory entry is created or removed. A watcher
// that fails to start (platform without inotify/FSEvents support, fd
// exhaustion) only disables live filesystem pickup; indexWorkspace and
// on-demand refresh on open/change still work.
func (w *Workspace) startWatcher(matcher *workspaceindex.Matcher) {
	watcher, err := workspaceindex.NewDirWatcher()
	if err != nil {
		w.logger.Warn("directory watcher unavailable", slog.Any("error", err))
		return
	}

	walkErr := filepath.WalkDir(w.root.String(), func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.root.String(), path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && matcher.Excluded(rel, true) {
			return filepath.SkipDir
		}
		if addErr := watcher.Add(path); addErr != nil {
			w.logger.Warn("failed to watch directory", slog.String("dir", path), slog.Any("error", addErr))
		}
		return nil
	})
	if walkErr != nil {
		w.logger.Warn("directory walk for watcher failed", slog.Any("error", walkErr))
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.watcher = watcher
	w.watchCancel = cancel

	go watcher.Run(ctx,
		func(event fsnotify.Event) {
			if _, err := w.index.Enumerate(ctx); err != nil {
				w.logger.Warn("re-enumerate after filesystem event failed", slog.Any("error", err))
				return
			}
			if err := w.index.DrainAll(ctx); err != nil {
				w.logger.Warn("drain after filesystem event failed", slog.Any("error", err))
			}
		},
		func(err error) {
			w.logger.Warn("directory watcher error", slog.Any("error", err))
		},
	)
}

// Root returns the workspace's canonical root path.
func (w *Workspace) Root() location.CanonicalPath { return w.root }

// setNotify installs the glsp notification function used to publish
// diagnostics, captured from the server's first request context.
func (w *Workspace) setNotify(notify notifyFunc) { w.notify.setNotify(notify) }

// DocumentOpened records a newly opened document, refreshes its index
// entry so scope resolution can see it immediately, and schedules its
// initial diagnostic pass.
func (w *Workspace) DocumentOpened(ctx context.Context, file location.FileID, text string, version int32) error {
	w.content.OpenDocument(file, text, version)
	if err := w.index.Refresh(ctx, file); err != nil {
		w.logger.Warn("index refresh on open failed", slog.String("file", file.String()), slog.Any("error", err))
	}
	_, err := w.engine.OnDocumentChange(ctx, file, text)
	return err
}

// DocumentChanged records a full-text change to an already-open document,
// refreshes its index entry, and re-runs component J's revalidation
// pipeline for it.
func (w *Workspace) DocumentChanged(ctx context.Context, file location.FileID, text string, version int32) error {
	w.content.ChangeDocument(file, text, version)
	if err := w.index.Refresh(ctx, file); err != nil {
		w.logger.Warn("index refresh on change failed", slog.String("file", file.String()), slog.Any("error", err))
	}
	_, err := w.engine.OnDocumentChange(ctx, file, text)
	return err
}

// DocumentClosed drops file's open buffer and cancels any revalidation
// job still pending for it; later content reads fall back to disk. The
// file's index entry is left as it is.
func (w *Workspace) DocumentClosed(file location.FileID) {
	w.content.CloseDocument(file)
	w.engine.CancelPending(file)
}

// Enumerate walks the workspace root, queues every *.R/*.r file, and
// drains the queue so the index is immediately queryable, for
// crossFile.indexWorkspace support. Call once at startup (after
// initialize) when opts.CrossFile.IndexWorkspace is set.
func (w *Workspace) Enumerate(ctx context.Context) error {
	if _, err := w.index.Enumerate(ctx); err != nil {
		return err
	}
	return w.index.DrainAll(ctx)
}

// Index exposes the workspace's file index for the workspace/symbol
// provider's whole-workspace scan.
func (w *Workspace) Index() *workspaceindex.Index { return w.index }

// CancelAllPending cancels every revalidation job still pending for this
// workspace's open documents, for use on connection shutdown.
func (w *Workspace) CancelAllPending() {
	for _, file := range w.content.OpenFiles() {
		w.engine.CancelPending(file)
	}
}

// Close stops the directory watcher. Idempotent.
func (w *Workspace) Close() {
	w.closeOnce.Do(func() {
		if w.watchCancel != nil {
			w.watchCancel()
		}
		if w.watcher != nil {
			if err := w.watcher.Close(); err != nil {
				w.logger.Warn("closing directory watcher failed", slog.Any("error", err))
			}
		}
	})
}
