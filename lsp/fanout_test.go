package lsp

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbearak/rlsp/config"
	"github.com/jbearak/rlsp/location"
)

// fanoutRecorder counts textDocument/publishDiagnostics notifications per
// file, captured by installing a notifyFunc in place of a real
// glsp.Context.Notify (there is none in this test).
type fanoutRecorder struct {
	mu    sync.Mutex
	count map[location.FileID]int
}

func newFanoutRecorder() *fanoutRecorder {
	return &fanoutRecorder{count: make(map[location.FileID]int)}
}

func (r *fanoutRecorder) notify(method string, params any) {
	if method != protocol.ServerTextDocumentPublishDiagnostics {
		return
	}
	p, ok := params.(protocol.PublishDiagnosticsParams)
	if !ok {
		return
	}
	file, err := fileIDFromURI(p.URI)
	if err != nil {
		return
	}
	r.mu.Lock()
	r.count[file]++
	r.mu.Unlock()
}

func (r *fanoutRecorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.count {
		n += c
	}
	return n
}

func (r *fanoutRecorder) countFor(file location.FileID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count[file]
}

// TestDebouncedFanOutPublishesOncePerOpenDescendant exercises the sixth
// end-to-end scenario named in spec.md §8: editing a library file with
// three open descendants produces one diagnostic publish per descendant
// within revalidationDebounceMs, and a second edit inside that window
// replaces the first scheduled job rather than doubling the publish
// count — component J's debounce-then-fan-out pipeline driven through
// the real Workspace wiring instead of revalidate.Engine in isolation.
func TestDebouncedFanOutPublishesOncePerOpenDescendant(t *testing.T) {
	opts := config.Default()
	opts.CrossFile.RevalidationDebounceMs = 20
	root := location.MustCanonicalPath(t.TempDir())
	ws, err := NewWorkspace(root, opts, nil)
	require.NoError(t, err)
	defer ws.Close()

	rec := newFanoutRecorder()
	ws.setNotify(rec.notify)

	lib := location.MustFileIDFromPath(filepath.Join(root.String(), "lib.R"))
	d1 := location.MustFileIDFromPath(filepath.Join(root.String(), "d1.R"))
	d2 := location.MustFileIDFromPath(filepath.Join(root.String(), "d2.R"))
	d3 := location.MustFileIDFromPath(filepath.Join(root.String(), "d3.R"))

	ctx := context.Background()
	require.NoError(t, ws.DocumentOpened(ctx, lib, "helper <- function() 1\n", 1))
	for _, d := range []location.FileID{d1, d2, d3} {
		require.NoError(t, ws.DocumentOpened(ctx, d, "source(\"lib.R\")\ny <- helper()\n", 1))
	}

	waitForCount(t, func() int { return rec.total() }, 4)

	// Second edit replaces the pending job rather than adding to it: fire
	// two changes back to back, well inside the 20ms debounce window, and
	// confirm each descendant still sees exactly one more publish, not two.
	before := map[location.FileID]int{d1: rec.countFor(d1), d2: rec.countFor(d2), d3: rec.countFor(d3)}

	require.NoError(t, ws.DocumentChanged(ctx, lib, "helper <- function() 2\nhelper2 <- function() 3\n", 2))
	require.NoError(t, ws.DocumentChanged(ctx, lib, "helper <- function() 2\nhelper2 <- function() 4\n", 3))

	waitForCount(t, func() int { return rec.countFor(d1) }, before[d1]+1)
	waitForCount(t, func() int { return rec.countFor(d2) }, before[d2]+1)
	waitForCount(t, func() int { return rec.countFor(d3) }, before[d3]+1)

	// Give any accidental duplicate publish a chance to land before
	// asserting it didn't.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, before[d1]+1, rec.countFor(d1), "expected exactly one more publish for d1.R, not a duplicate from the superseded job")
	assert.Equal(t, before[d2]+1, rec.countFor(d2))
	assert.Equal(t, before[d3]+1, rec.countFor(d3))
}

func waitForCount(t *testing.T, read func() int, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if read() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before timeout: wanted >= %d, got %d", want, read())
}
