package e2e

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbearak/rlsp/config"
	"github.com/jbearak/rlsp/diag"
	"github.com/jbearak/rlsp/location"
	"github.com/jbearak/rlsp/lsp"
)

// TestCycleDetectedAcrossTwoFiles exercises the third end-to-end scenario:
// a.R sources b.R and b.R sources a.R right back, a plain two-file cycle
// built entirely from ordinary top-level source() calls. ComputeDiagnostics
// on either file reports E_CYCLE_DETECTED rather than recursing forever.
func TestCycleDetectedAcrossTwoFiles(t *testing.T) {
	root := location.MustCanonicalPath(t.TempDir())
	ws, err := lsp.NewWorkspace(root, config.Default(), nil)
	require.NoError(t, err)
	defer ws.Close()

	ctx := context.Background()
	fileA := location.MustFileIDFromPath(filepath.Join(root.String(), "a.R"))
	fileB := location.MustFileIDFromPath(filepath.Join(root.String(), "b.R"))

	require.NoError(t, ws.DocumentOpened(ctx, fileA, "source(\"b.R\")\n", 1))
	require.NoError(t, ws.DocumentOpened(ctx, fileB, "source(\"a.R\")\n", 1))

	result, err := ws.ComputeDiagnostics(ctx, fileA)
	require.NoError(t, err)
	assert.False(t, result.OK())

	var sawCycle bool
	for _, issue := range result.IssuesSlice() {
		if issue.Code() == diag.E_CYCLE_DETECTED {
			sawCycle = true
		}
	}
	assert.True(t, sawCycle, "expected an E_CYCLE_DETECTED diagnostic among %+v", result.IssuesSlice())
}
