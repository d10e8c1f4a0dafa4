package workspaceindex

import (
	"context"

	"github.com/fsnotify/fsnotify"
)

// DirWatcher watches workspace directories for create/remove/rename events
// and invokes a callback so the Index can be re-enumerated. Grounded on the
// fsnotify event loop in the teacher's buflsp/lsp.go (NewBufLsp's
// fileWatcher goroutine), generalized from "any write refreshes one
// cached file" to "any entry created, removed or renamed in a watched
// directory triggers a rebuild", per spec.md §4.I.
type DirWatcher struct {
	fs *fsnotify.Watcher
}

// NewDirWatcher creates a DirWatcher with no directories added yet.
func NewDirWatcher() (*DirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &DirWatcher{fs: w}, nil
}

// Add starts watching dir for filesystem events.
func (w *DirWatcher) Add(dir string) error {
	return w.fs.Add(dir)
}

// Close stops the watcher and releases its resources.
func (w *DirWatcher) Close() error {
	return w.fs.Close()
}

// Run drains events until ctx is cancelled or the watcher is closed,
// calling onRebuild for every create, remove or rename event on a file or
// directory in a watched directory. Errors
// from the underlying watcher are passed to onError; Run does not stop
// on an error since fsnotify errors are typically transient (e.g. a
// dropped inotify event).
func (w *DirWatcher) Run(ctx context.Context, onRebuild func(event fsnotify.Event), onError func(error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				if onRebuild != nil {
					onRebuild(event)
				}
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}
