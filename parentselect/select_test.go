package parentselect

import (
	"context"
	"testing"

	"github.com/jbearak/rlsp/depgraph"
	"github.com/jbearak/rlsp/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edgeFor(t *testing.T, g *depgraph.Graph, parent, child location.FileID, line int, origin depgraph.Origin) depgraph.Edge {
	t.Helper()
	pos := location.NewPosition(line, 0, -1)
	if origin == depgraph.OriginDirective {
		_, err := g.ApplyMetadata(testCtx(), child, depgraph.FileEdges{}, depgraph.FileEdges{
			Backward: []depgraph.BackwardCandidate{{Parent: parent, CallSiteLine: line}},
		})
		require.NoError(t, err)
	} else {
		_, err := g.ApplyMetadata(testCtx(), parent, depgraph.FileEdges{}, depgraph.FileEdges{
			Forward: []depgraph.ForwardCandidate{{Child: child, CallSite: pos}},
		})
		require.NoError(t, err)
	}

	for _, e := range g.Parents(child) {
		if e.Parent() == parent && e.Origin() == origin {
			return e
		}
	}
	t.Fatalf("edge from %s to %s with origin %s not found", parent, child, origin)
	return depgraph.Edge{}
}

func testCtx() context.Context { return context.Background() }

func TestSelectPrefersDirectiveOverAST(t *testing.T) {
	g := depgraph.New()
	child := location.MustFileIDFromPath("/workspace/child.R")
	astParent := location.MustFileIDFromPath("/workspace/ast_parent.R")
	directiveParent := location.MustFileIDFromPath("/workspace/directive_parent.R")

	astEdge := edgeFor(t, g, astParent, child, 3, depgraph.OriginAST)
	directiveEdge := edgeFor(t, g, directiveParent, child, 1, depgraph.OriginDirective)

	res := Select([]Candidate{
		{Edge: astEdge, Distance: 0},
		{Edge: directiveEdge, Distance: 5},
	})

	require.True(t, res.Found)
	assert.Equal(t, directiveParent, res.Chosen)
	assert.False(t, res.Ambiguous)
}

func TestSelectPrefersOpenOverClosedWhenOriginsTie(t *testing.T) {
	g := depgraph.New()
	child := location.MustFileIDFromPath("/workspace/child.R")
	closedParent := location.MustFileIDFromPath("/workspace/closed.R")
	openParent := location.MustFileIDFromPath("/workspace/open.R")

	closedEdge := edgeFor(t, g, closedParent, child, 1, depgraph.OriginAST)
	openEdge := edgeFor(t, g, openParent, child, 2, depgraph.OriginAST)

	res := Select([]Candidate{
		{Edge: closedEdge, Open: false, Distance: 0},
		{Edge: openEdge, Open: true, Distance: 10},
	})

	assert.Equal(t, openParent, res.Chosen)
}

func TestSelectPrefersShortestDistanceWhenOriginAndOpenTie(t *testing.T) {
	g := depgraph.New()
	child := location.MustFileIDFromPath("/workspace/child.R")
	far := location.MustFileIDFromPath("/workspace/far.R")
	near := location.MustFileIDFromPath("/workspace/near.R")

	farEdge := edgeFor(t, g, far, child, 1, depgraph.OriginAST)
	nearEdge := edgeFor(t, g, near, child, 2, depgraph.OriginAST)

	res := Select([]Candidate{
		{Edge: farEdge, Distance: 5},
		{Edge: nearEdge, Distance: 1},
	})

	assert.Equal(t, near, res.Chosen)
}

func TestSelectLexicographicTiebreakAndAmbiguity(t *testing.T) {
	g := depgraph.New()
	child := location.MustFileIDFromPath("/workspace/child.R")
	b := location.MustFileIDFromPath("/workspace/b_parent.R")
	a := location.MustFileIDFromPath("/workspace/a_parent.R")

	bEdge := edgeFor(t, g, b, child, 1, depgraph.OriginAST)
	aEdge := edgeFor(t, g, a, child, 1, depgraph.OriginAST)

	res := Select([]Candidate{
		{Edge: bEdge, Distance: 1},
		{Edge: aEdge, Distance: 1},
	})

	require.True(t, res.Found)
	assert.Equal(t, a, res.Chosen, "a_parent.R sorts before b_parent.R lexicographically")
	assert.True(t, res.Ambiguous, "two distinct parents tied all the way to the final tiebreak")
	assert.Len(t, res.Tied, 2)
}

func TestSelectSameParentMultipleCallSitesNotAmbiguous(t *testing.T) {
	g := depgraph.New()
	child := location.MustFileIDFromPath("/workspace/child.R")
	parent := location.MustFileIDFromPath("/workspace/parent.R")

	_, err := g.ApplyMetadata(testCtx(), parent, depgraph.FileEdges{}, depgraph.FileEdges{
		Forward: []depgraph.ForwardCandidate{
			{Child: child, CallSite: location.NewPosition(1, 0, -1)},
			{Child: child, CallSite: location.NewPosition(5, 0, -1)},
		},
	})
	require.NoError(t, err)

	var cands []Candidate
	for _, e := range g.Parents(child) {
		cands = append(cands, Candidate{Edge: e, Distance: 0})
	}
	require.Len(t, cands, 2)

	res := Select(cands)
	assert.False(t, res.Ambiguous, "both edges share the same parent file, so there is no real ambiguity")
}

func TestSelectNoCandidates(t *testing.T) {
	res := Select(nil)
	assert.False(t, res.Found)
}

func TestFingerprintStableAcrossOrderAndSensitiveToInputs(t *testing.T) {
	g := depgraph.New()
	child := location.MustFileIDFromPath("/workspace/child.R")
	parent := location.MustFileIDFromPath("/workspace/parent.R")
	edge := edgeFor(t, g, parent, child, 1, depgraph.OriginAST)
	openA := location.MustFileIDFromPath("/workspace/a.R")
	openB := location.MustFileIDFromPath("/workspace/b.R")

	fp1 := Fingerprint([]depgraph.Edge{edge}, []location.FileID{openA, openB}, 7)
	fp2 := Fingerprint([]depgraph.Edge{edge}, []location.FileID{openB, openA}, 7)
	assert.Equal(t, fp1, fp2, "fingerprint must not depend on input slice order")

	fp3 := Fingerprint([]depgraph.Edge{edge}, []location.FileID{openA, openB}, 8)
	assert.NotEqual(t, fp1, fp3, "a workspace index version bump must change the fingerprint")
}
