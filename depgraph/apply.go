package depgraph

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jbearak/rlsp/diag"
	"github.com/jbearak/rlsp/internal/trace"
	"github.com/jbearak/rlsp/location"
)

// ApplyResult reports the outcome of one ApplyMetadata call.
type ApplyResult struct {
	// Diagnostics holds any ambiguous-parent issues raised while applying
	// file's backward directives. Empty unless two or more directives in
	// the new metadata name the same parent.
	Diagnostics diag.Result

	// EdgesChanged reports whether file's contributed edge set (its
	// outgoing AST edges, its inbound directive edges, and any AST edges
	// it suppressed on other parents) differs after this call from
	// before it. The revalidation engine uses this to decide whether to
	// invalidate the cached parent selections of file and its forward
	// children.
	EdgesChanged bool
}

// ApplyMetadata recomputes file's contribution to the graph: its outgoing
// source() edges (from newEdges.Forward) and its inbound backward-directive
// edges (from newEdges.Backward), replacing whatever file previously
// contributed.
//
// oldEdges is accepted for interface fidelity with the edge-diff contract
// this operation is specified against; the implementation recomputes
// file's full contribution from newEdges and diffs the result against
// the graph's prior state, which is equivalent to (and simpler than)
// patching in a structural diff against oldEdges, and is exposed via
// EdgesChanged.
//
// A backward directive with a line= hint that matches an existing AST
// edge from the same parent at that call site replaces it (the AST edge
// is removed, one Directive-origin edge remains, its call site taken
// from the match). A directive without a hint suppresses every AST edge
// from that parent to file. Two or more directives naming the same
// parent are all retained, and an E_AMBIGUOUS_PARENT diagnostic notes
// the duplication.
func (g *Graph) ApplyMetadata(ctx context.Context, file location.FileID, oldEdges, newEdges FileEdges) (ApplyResult, error) {
	if g == nil {
		return ApplyResult{Diagnostics: diag.OK()}, ErrNilGraph
	}
	if ctx == nil {
		panic("depgraph.ApplyMetadata: nil context")
	}
	if file.IsZero() {
		return ApplyResult{Diagnostics: diag.OK()}, ErrZeroFile
	}

	op := trace.Begin(ctx, g.config.logger, "rlsp.depgraph.apply_metadata",
		slog.String("file", file.String()),
		slog.Int("forward_count", len(newEdges.Forward)),
		slog.Int("backward_count", len(newEdges.Backward)),
	)
	var retErr error
	defer func() { op.End(retErr) }()

	if err := ctx.Err(); err != nil {
		retErr = err
		return ApplyResult{Diagnostics: diag.OK()}, retErr
	}

	collector := diag.NewCollector(diag.NoLimit)

	g.mu.Lock()
	defer g.mu.Unlock()

	before := g.contributionSignature(file)

	g.removeOutgoingAST(file)
	g.removeInboundDirectives(file)
	g.insertForward(file, newEdges.Forward)
	g.resolveBackward(ctx, file, newEdges.Backward, collector)
	g.pruneEmptyPairs()

	after := g.contributionSignature(file)

	return ApplyResult{
		Diagnostics:  collector.Result(),
		EdgesChanged: before != after,
	}, nil
}

// removeOutgoingAST deletes every AST-origin edge previously contributed
// by file acting as parent. Must be called with g.mu held.
func (g *Graph) removeOutgoingAST(file location.FileID) {
	for k, edges := range g.pairs {
		if k.parent != file {
			continue
		}
		g.pairs[k] = filterEdges(edges, func(e *Edge) bool {
			return e.origin != OriginAST
		})
	}
}

// removeInboundDirectives deletes every Directive-origin edge previously
// contributed by file acting as child (i.e. file's own backward
// directives). AST edges into file from its actual parents are untouched;
// those belong to the parents' own metadata. Must be called with g.mu
// held.
func (g *Graph) removeInboundDirectives(file location.FileID) {
	for k, edges := range g.pairs {
		if k.child != file {
			continue
		}
		g.pairs[k] = filterEdges(edges, func(e *Edge) bool {
			return e.origin != OriginDirective
		})
	}
}

// insertForward adds one AST edge per forward candidate, file acting as
// parent. Must be called with g.mu held.
func (g *Graph) insertForward(file location.FileID, candidates []ForwardCandidate) {
	for _, c := range candidates {
		e := &Edge{
			parent:      file,
			child:       c.Child,
			callSite:    c.CallSite,
			local:       c.Local,
			chdir:       c.Chdir,
			isSysSource: c.IsSysSource,
			origin:      OriginAST,
		}
		k := pairKey{parent: file, child: c.Child}
		g.pairs[k] = append(g.pairs[k], e)
	}
}

// resolveBackward applies file's backward directives: matching or
// suppressing existing AST edges from the named parent, inserting the
// resulting Directive edges, and flagging ambiguous parentage when two or
// more directives name the same parent. Must be called with g.mu held.
func (g *Graph) resolveBackward(ctx context.Context, file location.FileID, candidates []BackwardCandidate, collector *diag.Collector) {
	if len(candidates) == 0 {
		return
	}

	byParent := make(map[location.FileID][]BackwardCandidate, len(candidates))
	for _, c := range candidates {
		byParent[c.Parent] = append(byParent[c.Parent], c)
	}

	parents := make([]location.FileID, 0, len(byParent))
	for p := range byParent {
		parents = append(parents, p)
	}
	sort.Slice(parents, func(i, j int) bool { return parents[i].String() < parents[j].String() })

	for _, parent := range parents {
		cands := byParent[parent]
		if len(cands) > 1 {
			g.emitAmbiguousParent(file, parent, cands, collector)
		}
		for _, c := range cands {
			g.resolveOneBackwardCandidate(file, parent, c)
		}
		trace.Debug(ctx, g.config.logger, "backward directive resolved",
			slog.String("file", file.String()),
			slog.String("parent", parent.String()),
			slog.Int("directive_count", len(cands)),
		)
	}
}

// resolveOneBackwardCandidate resolves a single backward directive against
// the graph's current edges for (parent, file). Must be called with g.mu
// held.
func (g *Graph) resolveOneBackwardCandidate(file, parent location.FileID, c BackwardCandidate) {
	k := pairKey{parent: parent, child: file}
	existing := g.pairs[k]

	var callSite location.Position
	switch {
	case c.HasCallSiteHint():
		matchedIdx := -1
		for i, e := range existing {
			if e.origin == OriginAST && e.callSite.Line == c.CallSiteLine {
				matchedIdx = i
				break
			}
		}
		if matchedIdx >= 0 {
			callSite = existing[matchedIdx].callSite
			existing = append(existing[:matchedIdx:matchedIdx], existing[matchedIdx+1:]...)
		} else {
			callSite = location.Position{Line: c.CallSiteLine, Column: 0, Byte: -1}
		}
	default:
		// No call-site hint: suppress every AST edge for this pair. The
		// synthetic call site is the caller's to refine (it has the file
		// text; depgraph does not) — see assumeCallSite in the design
		// notes.
		callSite = location.UnknownPosition()
		existing = filterEdges(existing, func(e *Edge) bool {
			return e.origin != OriginAST
		})
	}

	directiveEdge := &Edge{
		parent:   parent,
		child:    file,
		callSite: callSite,
		origin:   OriginDirective,
	}
	g.pairs[k] = append(existing, directiveEdge)
}

func (g *Graph) emitAmbiguousParent(file, parent location.FileID, cands []BackwardCandidate, collector *diag.Collector) {
	details := []diag.Detail{
		{Key: diag.DetailKeyPath, Value: file.String()},
		{Key: diag.DetailKeyCandidate, Value: parent.String()},
	}
	issue := diag.NewIssue(diag.Error, diag.E_AMBIGUOUS_PARENT,
		"multiple @lsp-sourced-by directives in this file name the same parent").
		WithSpan(location.Point(file, 0, 0)).
		WithDetails(details...).
		Build()
	collector.Collect(issue)
}

// contributionSignature summarizes every edge touching file, sorted
// deterministically, so two calls can cheaply be compared for equality.
// Must be called with g.mu held.
func (g *Graph) contributionSignature(file location.FileID) string {
	var sig []string
	for k, edges := range g.pairs {
		if k.parent != file && k.child != file {
			continue
		}
		for _, e := range edges {
			sig = append(sig, edgeSignature(e))
		}
	}
	sort.Strings(sig)
	return strings.Join(sig, "\n")
}

// edgeSignature renders an edge's identity (everything but its pointer
// address) as a comparable string.
func edgeSignature(e *Edge) string {
	return fmt.Sprintf("%s>%s@%d:%d/%s/%t/%t/%t",
		e.parent.String(), e.child.String(),
		e.callSite.Line, e.callSite.Column,
		e.origin.String(), e.local, e.chdir, e.isSysSource)
}

func filterEdges(edges []*Edge, keep func(*Edge) bool) []*Edge {
	if len(edges) == 0 {
		return edges
	}
	out := edges[:0:0]
	for _, e := range edges {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// pruneEmptyPairs removes map entries left with no edges, so Parents and
// Children never iterate dead pairs. Must be called with g.mu held.
func (g *Graph) pruneEmptyPairs() {
	for k, edges := range g.pairs {
		if len(edges) == 0 {
			delete(g.pairs, k)
		}
	}
}
