package e2e

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBasicChainHoverIsPositionAware exercises the first end-to-end
// scenario: main.R calls helper() once before sourcing util.R and once
// after. Hover on the first call finds nothing (helper isn't in scope
// yet at that line); hover on the second call resolves to util.R's
// function, demonstrating that scope resolution is position-aware
// across a real source() chain rather than whole-file.
func TestBasicChainHoverIsPositionAware(t *testing.T) {
	root := t.TempDir()
	utilPath := filepath.Join(root, "util.R")
	require.NoError(t, os.WriteFile(utilPath, []byte("helper <- function() 1\n"), 0o644))

	handler := newInitializedServer(t, root)

	mainPath := filepath.Join(root, "main.R")
	mainText := "x <- helper()\n" +
		"source(\"util.R\")\n" +
		"y <- helper()\n"
	openDoc(t, handler, mainPath, mainText)

	before := hoverAt(t, handler, mainPath, 0, 6)
	assert.Nil(t, before, "helper should not resolve before the source() call")

	after := hoverAt(t, handler, mainPath, 2, 6)
	require.NotNil(t, after, "helper should resolve after the source() call")
	assert.Contains(t, after.Contents.Value, "function() 1")
}

// TestBasicChainDefinitionCrossesFiles extends the same chain with a
// go-to-definition request: jumping from main.R's second helper() call
// lands back in util.R, at the line that actually defines it.
func TestBasicChainDefinitionCrossesFiles(t *testing.T) {
	root := t.TempDir()
	utilPath := filepath.Join(root, "util.R")
	require.NoError(t, os.WriteFile(utilPath, []byte("helper <- function() 1\n"), 0o644))

	handler := newInitializedServer(t, root)

	mainPath := filepath.Join(root, "main.R")
	mainText := "source(\"util.R\")\n" +
		"y <- helper()\n"
	openDoc(t, handler, mainPath, mainText)

	loc, ok := definitionAt(t, handler, mainPath, 1, 6)
	require.True(t, ok, "expected a resolved definition location")
	assert.Contains(t, loc.URI, "util.R")
	assert.Equal(t, 0, int(loc.Range.Start.Line))
}
