package e2e

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbearak/rlsp/depgraph"
	"github.com/jbearak/rlsp/location"
	"github.com/jbearak/rlsp/metadata"
	"github.com/jbearak/rlsp/resolve"
)

// applyFile extracts file's metadata, resolves its forward and backward
// candidates the way revalidate.Engine does, and applies the result to g.
// It mirrors the unexported resolveEdges/ApplyMetadata pairing in
// revalidate/engine.go, built here from exported pieces only.
func applyFile(t *testing.T, g *depgraph.Graph, root location.CanonicalPath, file location.FileID, text string) {
	t.Helper()
	cp, ok := file.CanonicalPath()
	require.True(t, ok)
	fileDir := cp.Dir()

	md := metadata.Extract(file, text)

	var edges depgraph.FileEdges
	fwdCtx := resolve.FromMetadata(fileDir, location.CanonicalPath{}, root)
	for _, fwd := range md.ForwardSources() {
		child, ok := resolve.Resolve(fwd.RawPath, fwdCtx)
		if !ok {
			continue
		}
		edges.Forward = append(edges.Forward, depgraph.ForwardCandidate{
			Child:    child,
			CallSite: fwd.CallSite,
			Local:    fwd.Local,
		})
	}

	bwdCtx := resolve.FileRelative(fileDir, root)
	for _, bwd := range md.BackwardDirectives() {
		parent, ok := resolve.Resolve(bwd.RawParentPath, bwdCtx)
		if !ok {
			continue
		}
		edges.Backward = append(edges.Backward, depgraph.BackwardCandidate{
			Parent:       parent,
			CallSiteLine: bwd.CallSiteLine,
			MatchPattern: bwd.MatchPattern,
		})
	}

	_, err := g.ApplyMetadata(context.Background(), file, depgraph.FileEdges{}, edges)
	require.NoError(t, err)
}

// TestBackwardDirectiveRegistersEdgeInvisibleToStaticScan exercises the
// second end-to-end scenario: child.R is sourced from inside an if block
// in main.R, a call site the top-level-only AST scan never records as a
// forward edge (spec.md §4.B). Its own @lsp-sourced-by directive
// re-establishes the edge from the other direction, and the graph picks
// it up as a real parent/child pair — demonstrably different from "no
// edge at all" because main.R now appears in child.R's upstream set, and
// combined with an ordinary AST source() call back from child.R to
// main.R the pair forms a real cycle the graph records.
func TestBackwardDirectiveRegistersEdgeInvisibleToStaticScan(t *testing.T) {
	root := location.MustCanonicalPath(t.TempDir())
	g := depgraph.New()

	mainFile := location.MustFileIDFromPath(filepath.Join(root.String(), "main.R"))
	childFile := location.MustFileIDFromPath(filepath.Join(root.String(), "child.R"))

	mainText := "if (TRUE) {\n  source(\"child.R\")\n}\n"
	childText := "# @lsp-sourced-by main.R line=1\nsource(\"main.R\")\n"

	applyFile(t, g, root, mainFile, mainText)
	applyFile(t, g, root, childFile, childText)

	parents := g.Parents(childFile)
	var sawDirectiveParent bool
	for _, e := range parents {
		if e.Parent() == mainFile && e.Origin() == depgraph.OriginDirective {
			sawDirectiveParent = true
		}
	}
	assert.True(t, sawDirectiveParent, "expected main.R to be recorded as child.R's directive-origin parent despite the non-top-level source() call")

	ancestors, err := g.TransitiveUpstream(context.Background(), childFile, 10)
	require.NoError(t, err)
	assert.Contains(t, ancestors, mainFile, "main.R should be reachable as an upstream consumer of child.R via the directive edge")
}
