package depgraph

import (
	"context"
	"testing"

	"github.com/jbearak/rlsp/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(t *testing.T) (*Graph, location.FileID, location.FileID, location.FileID) {
	t.Helper()
	g := New()
	a, b, c := fileID("a.R"), fileID("b.R"), fileID("c.R")
	ctx := context.Background()

	_, err := g.ApplyMetadata(ctx, a, FileEdges{}, FileEdges{Forward: []ForwardCandidate{{Child: b}}})
	require.NoError(t, err)
	_, err = g.ApplyMetadata(ctx, b, FileEdges{}, FileEdges{Forward: []ForwardCandidate{{Child: c}}})
	require.NoError(t, err)
	return g, a, b, c
}

func TestOutgoingEdgeAtExactCallSite(t *testing.T) {
	g := New()
	parent, child := fileID("main.R"), fileID("helper.R")
	site := location.Position{Line: 4, Column: 1, Byte: -1}

	_, err := g.ApplyMetadata(context.Background(), parent, FileEdges{}, FileEdges{
		Forward: []ForwardCandidate{{Child: child, CallSite: site}},
	})
	require.NoError(t, err)

	edge, ok := g.OutgoingEdgeAt(parent, site)
	require.True(t, ok)
	assert.Equal(t, child, edge.Child())

	_, ok = g.OutgoingEdgeAt(parent, location.Position{Line: 99, Column: 0, Byte: -1})
	assert.False(t, ok)
}

func TestTransitiveUpstreamBreadthOrderAndDepthBound(t *testing.T) {
	g, a, b, c := chain(t)
	ctx := context.Background()

	ancestors, err := g.TransitiveUpstream(ctx, c, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []location.FileID{b}, ancestors)

	ancestors, err = g.TransitiveUpstream(ctx, c, 5)
	require.NoError(t, err)
	assert.ElementsMatch(t, []location.FileID{a, b}, ancestors)
}

func TestTransitiveUpstreamTerminatesOnCycle(t *testing.T) {
	g := New()
	a, b := fileID("a.R"), fileID("b.R")
	ctx := context.Background()

	_, err := g.ApplyMetadata(ctx, a, FileEdges{}, FileEdges{Forward: []ForwardCandidate{{Child: b}}})
	require.NoError(t, err)
	_, err = g.ApplyMetadata(ctx, b, FileEdges{}, FileEdges{Forward: []ForwardCandidate{{Child: a}}})
	require.NoError(t, err)

	ancestors, err := g.TransitiveUpstream(ctx, a, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []location.FileID{b}, ancestors)
}

func TestTransitiveUpstreamZeroDepthReturnsNil(t *testing.T) {
	g, _, _, c := chain(t)
	ancestors, err := g.TransitiveUpstream(context.Background(), c, 0)
	require.NoError(t, err)
	assert.Nil(t, ancestors)
}

func TestChildrenAndParentsNilGraph(t *testing.T) {
	var g *Graph
	assert.Nil(t, g.Children(fileID("x.R")))
	assert.Nil(t, g.Parents(fileID("x.R")))
}
