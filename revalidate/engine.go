package revalidate

import (
	"context"
	"sync"

	"github.com/jbearak/rlsp/artifacts"
	"github.com/jbearak/rlsp/cache"
	"github.com/jbearak/rlsp/depgraph"
	"github.com/jbearak/rlsp/diag"
	"github.com/jbearak/rlsp/location"
	"github.com/jbearak/rlsp/metadata"
)

// OpenDocuments reports which files currently have live editor buffers,
// for intersecting the affected set with open documents per spec.md
// §4.J step 4. *content.Provider satisfies this directly.
type OpenDocuments interface {
	IsOpen(file location.FileID) bool
	OpenFiles() []location.FileID
}

// DiagnosticComputer recomputes a file's diagnostics against the current
// snapshot. The actual analysis (undefined-variable checks, scope
// resolution) lives above this package, in the LSP surface, which has
// access to the scope.Resolver and the file's current text; the engine
// only owns when to call it.
type DiagnosticComputer interface {
	ComputeDiagnostics(ctx context.Context, file location.FileID) (diag.Result, error)
}

// Publisher delivers a recomputed diagnostic set for a file to the
// editor. Implementations typically wrap a glsp notification.
type Publisher interface {
	Publish(ctx context.Context, file location.FileID, diagnostics diag.Result)
}

// Engine implements component J. Construct one per workspace root.
type Engine struct {
	graph       *depgraph.Graph
	cache       *cache.Cache
	open        OpenDocuments
	diagnostics DiagnosticComputer
	publisher   Publisher
	root        location.CanonicalPath
	cfg         Config

	mu               sync.Mutex
	versions         map[location.FileID]int64
	lastPublished    map[location.FileID]int64
	jobs             map[location.FileID]*scheduledJob
	overflow         []location.FileID
	overflowSet      map[location.FileID]bool
	graphDiagnostics map[location.FileID]diag.Result
}

// New creates an Engine. root is the workspace root used to resolve
// forward source() calls and backward directives against.
func New(graph *depgraph.Graph, c *cache.Cache, open OpenDocuments, diagnostics DiagnosticComputer, publisher Publisher, root location.CanonicalPath, cfg Config) *Engine {
	return &Engine{
		graph:            graph,
		cache:            c,
		open:             open,
		diagnostics:      diagnostics,
		publisher:        publisher,
		root:             root,
		cfg:              cfg,
		versions:         make(map[location.FileID]int64),
		lastPublished:    make(map[location.FileID]int64),
		jobs:             make(map[location.FileID]*scheduledJob),
		overflowSet:      make(map[location.FileID]bool),
		graphDiagnostics: make(map[location.FileID]diag.Result),
	}
}

// GraphDiagnostics returns the diag.Result depgraph.ApplyMetadata
// produced the last time file's metadata was applied (e.g.
// E_AMBIGUOUS_PARENT when two backward directives name the same
// parent). Callers building a full diagnostic set for file (the LSP
// surface's DiagnosticComputer implementation) merge this in alongside
// whatever scope.Resolver reports fresh at query time.
func (e *Engine) GraphDiagnostics(file location.FileID) diag.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graphDiagnostics[file]
}

// Version returns file's current version (0 if never changed through
// this engine).
func (e *Engine) Version(file location.FileID) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.versions[file]
}

// OnDocumentChange runs spec.md §4.J's steps 1-5 for a change to file,
// whose new content is text. It returns the files that were actually
// scheduled for debounced diagnostic recomputation (for tests and
// logging); files beyond MaxRevalidationsPerTrigger are queued instead,
// see DrainOverflow.
func (e *Engine) OnDocumentChange(ctx context.Context, file location.FileID, text string) ([]location.FileID, error) {
	e.mu.Lock()
	e.versions[file]++
	e.mu.Unlock()

	md := metadata.Extract(file, text)
	edges, resolvedForward := resolveEdges(file, md, e.root)

	applyResult, err := e.graph.ApplyMetadata(ctx, file, depgraph.FileEdges{}, edges)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.graphDiagnostics[file] = applyResult.Diagnostics
	e.mu.Unlock()

	oldArt, hadOld := e.cache.Artifacts.Peek(file)
	newArt, err := artifacts.Build(file, text, md, resolvedForward)
	if err != nil {
		return nil, err
	}
	interfaceChanged := !hadOld || oldArt.InterfaceHash() != newArt.InterfaceHash()

	e.invalidate(ctx, file, edges, applyResult, newArt, interfaceChanged)

	affected, err := e.affectedSet(ctx, file, interfaceChanged)
	if err != nil {
		return nil, err
	}

	toSchedule, queued := e.capToLimit(affected)
	e.mu.Lock()
	for _, f := range queued {
		if !e.overflowSet[f] {
			e.overflowSet[f] = true
			e.overflow = append(e.overflow, f)
		}
	}
	e.mu.Unlock()

	for _, f := range toSchedule {
		e.schedule(ctx, f)
	}
	return toSchedule, nil
}

// invalidate applies spec.md §4.G's rules and installs the
// already-computed metadata/artifacts so the recomputation the engine
// just did isn't thrown away.
func (e *Engine) invalidate(ctx context.Context, file location.FileID, edges depgraph.FileEdges, applyResult depgraph.ApplyResult, newArt artifacts.ScopeArtifacts, interfaceChanged bool) {
	e.cache.InvalidateChanged(file)

	e.mu.Lock()
	version := e.versions[file]
	e.mu.Unlock()
	fp := cache.Fingerprint(version)

	_, _ = e.cache.Artifacts.Get(ctx, file, fp, func(context.Context) (artifacts.ScopeArtifacts, cache.Fingerprint, error) {
		return newArt, fp, nil
	})

	if applyResult.EdgesChanged {
		e.cache.InvalidateParentSelection(file)
		for _, fwd := range edges.Forward {
			e.cache.InvalidateParentSelection(fwd.Child)
		}
	}

	if interfaceChanged {
		consumers, err := e.graph.TransitiveUpstream(ctx, file, e.cfg.MaxChainDepth)
		if err == nil {
			e.cache.InvalidateDownstreamArtifacts(consumers)
		}
	}
}

// affectedSet computes ({file} ∪ downstream-if-interface-changed) ∩
// currently-open documents, per spec.md §4.J step 4.
func (e *Engine) affectedSet(ctx context.Context, file location.FileID, interfaceChanged bool) ([]location.FileID, error) {
	candidates := []location.FileID{file}
	if interfaceChanged {
		consumers, err := e.graph.TransitiveUpstream(ctx, file, e.cfg.MaxChainDepth)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, consumers...)
	}

	seen := make(map[location.FileID]bool, len(candidates))
	var affected []location.FileID
	for _, f := range candidates {
		if seen[f] || !e.open.IsOpen(f) {
			continue
		}
		seen[f] = true
		affected = append(affected, f)
	}
	return affected, nil
}

// capToLimit splits affected into the files to schedule now and the
// files to defer to the next tick, per MaxRevalidationsPerTrigger.
func (e *Engine) capToLimit(affected []location.FileID) (toSchedule, queued []location.FileID) {
	limit := e.cfg.MaxRevalidationsPerTrigger
	if limit <= 0 || len(affected) <= limit {
		return affected, nil
	}
	return affected[:limit], affected[limit:]
}

// DrainOverflow schedules files queued by a prior OnDocumentChange call
// that exceeded MaxRevalidationsPerTrigger, up to the same limit. Call
// this on the next tick (e.g. the next time the editor is idle).
func (e *Engine) DrainOverflow(ctx context.Context) []location.FileID {
	e.mu.Lock()
	toSchedule, rest := e.capToLimit(e.overflow)
	e.overflow = rest
	for _, f := range toSchedule {
		delete(e.overflowSet, f)
	}
	e.mu.Unlock()

	for _, f := range toSchedule {
		e.schedule(ctx, f)
	}
	return toSchedule
}
