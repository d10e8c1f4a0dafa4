package depgraph

import (
	"context"
	"sort"

	"github.com/jbearak/rlsp/location"
)

// Children returns the edges where file is the parent (the files file
// sources), sorted by (child path, call-site line, call-site column) for
// deterministic iteration. Returns nil if file has no outgoing edges.
func (g *Graph) Children(file location.FileID) []Edge {
	if g == nil {
		return nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Edge
	for k, edges := range g.pairs {
		if k.parent != file {
			continue
		}
		for _, e := range edges {
			out = append(out, *e)
		}
	}
	sortEdges(out)
	return out
}

// Parents returns the edges where file is the child (the files that
// source file), sorted the same way as [Graph.Children]. Returns nil if
// file has no inbound edges.
func (g *Graph) Parents(file location.FileID) []Edge {
	if g == nil {
		return nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Edge
	for k, edges := range g.pairs {
		if k.child != file {
			continue
		}
		for _, e := range edges {
			out = append(out, *e)
		}
	}
	sortEdges(out)
	return out
}

// OutgoingEdgeAt returns the edge from file whose call site exactly
// matches position, used to decide which child's symbols contribute at a
// given point in file. Returns (zero Edge, false) if no outgoing edge has
// that exact call site.
func (g *Graph) OutgoingEdgeAt(file location.FileID, position location.Position) (Edge, bool) {
	if g == nil {
		return Edge{}, false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	for k, edges := range g.pairs {
		if k.parent != file {
			continue
		}
		for _, e := range edges {
			if e.callSite == position {
				return *e, true
			}
		}
	}
	return Edge{}, false
}

// TransitiveUpstream yields file's ancestors (files that, directly or
// transitively, source file) in breadth order, bounded by maxDepth hops.
// A file is visited at most once even if reachable by multiple paths or
// the graph contains a cycle; TransitiveUpstream always terminates.
//
// maxDepth <= 0 returns nil immediately (no ancestors visited).
func (g *Graph) TransitiveUpstream(ctx context.Context, file location.FileID, maxDepth int) ([]location.FileID, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if ctx == nil {
		panic("depgraph.TransitiveUpstream: nil context")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxDepth <= 0 {
		return nil, nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	visited := map[location.FileID]bool{file: true}
	frontier := []location.FileID{file}
	var ancestors []location.FileID

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return ancestors, err
		}
		var next []location.FileID
		for _, f := range frontier {
			for k := range g.pairs {
				if k.child != f || visited[k.parent] {
					continue
				}
				visited[k.parent] = true
				ancestors = append(ancestors, k.parent)
				next = append(next, k.parent)
			}
		}
		frontier = next
	}

	return ancestors, nil
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.child != b.child {
			return a.child.String() < b.child.String()
		}
		if a.parent != b.parent {
			return a.parent.String() < b.parent.String()
		}
		if a.callSite.Line != b.callSite.Line {
			return a.callSite.Line < b.callSite.Line
		}
		return a.callSite.Column < b.callSite.Column
	})
}
