package scope

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/jbearak/rlsp/artifacts"
	"github.com/jbearak/rlsp/diag"
	"github.com/jbearak/rlsp/location"
	"github.com/jbearak/rlsp/metadata"
)

// ErrFileNotFound is returned by ScopeAt when the queried file itself is
// not known to the ArtifactsLoader — unlike a missing file reached via a
// SourceCall, which is a silently-skipped value, the query root not
// existing is the caller's mistake.
var ErrFileNotFound = errors.New("scope: file not found")

// eofLine is used as the upper bound when a recursive SourceCall needs a
// child's *complete* resolved scope rather than its state up to some
// position — i.e., scope_at(child, EOF), per spec.md §4.E point 3.
const eofLine = math.MaxInt

// ContributingEdge is one SourceCall hop actually merged into a query's
// result, exposed so go-to-definition and ambiguous-parent diagnostics
// can show which chain of files contributed a symbol (spec.md §4.E).
type ContributingEdge struct {
	Parent   location.FileID
	Child    location.FileID
	CallSite location.Position
	Depth    int
}

// Result is the full output of a scope_at query.
type Result struct {
	// Symbols maps name -> Symbol for everything visible at the queried
	// position. Nil if nothing is visible yet.
	Symbols map[string]Symbol

	// Packages is the sorted, deduplicated set of package names available
	// at the queried position (base packages, meta-package expansions,
	// and anything loaded by a global-scope LibraryLoad up to that point).
	Packages []string

	// ContributingEdges lists every SourceCall hop that was actually
	// merged in, across the whole recursion.
	ContributingEdges []ContributingEdge

	// Diagnostics carries any E_CYCLE_DETECTED / E_MAX_CHAIN_DEPTH_EXCEEDED
	// issues raised while resolving. Non-fatal: the rest of Result is
	// still the best answer available despite them.
	Diagnostics []diag.Issue
}

// Resolver implements component E: position-aware, chain-bounded,
// cycle-safe cross-file scope resolution.
type Resolver struct {
	loader   ArtifactsLoader
	packages PackageExports
	cfg      Config
}

// New builds a Resolver. packages may be nil (library exports are then
// never known, but package names still enter scope).
func New(loader ArtifactsLoader, packages PackageExports, cfg Config) *Resolver {
	return &Resolver{loader: loader, packages: packages, cfg: cfg}
}

// ScopeAt computes the names and packages visible at position in file,
// per spec.md §4.E.
func (r *Resolver) ScopeAt(ctx context.Context, file location.FileID, position location.Position) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	art, found, err := r.loader.Load(ctx, file)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{}, ErrFileNotFound
	}

	acc := newAccumulator()
	for _, pkg := range r.cfg.BasePackages {
		r.loadPackage(ctx, acc, pkg)
	}

	w := &walker{r: r, stack: map[location.FileID]bool{file: true}}
	w.walk(ctx, file, art, position.Line, 0, acc)

	symbols, packages := acc.result()
	return Result{
		Symbols:           symbols,
		Packages:          packages,
		ContributingEdges: w.edges,
		Diagnostics:       w.diagnostics,
	}, nil
}

// walker carries the per-query traversal stack (for cycle detection) and
// the accumulated contributing edges / diagnostics across the whole
// recursive resolution.
type walker struct {
	r           *Resolver
	stack       map[location.FileID]bool
	edges       []ContributingEdge
	diagnostics []diag.Issue
}

// walk folds file's timeline, up to and including upToLine, into acc,
// recursing into SourceCall children as needed. depth is the number of
// SourceCall hops already taken to reach file.
func (w *walker) walk(ctx context.Context, file location.FileID, art artifacts.ScopeArtifacts, upToLine, depth int, acc *accumulator) {
	for _, ev := range art.Timeline() {
		if ev.Line > upToLine {
			break
		}
		switch ev.Kind {
		case artifacts.EventDefine:
			acc.define(ev.Symbol.Name, Symbol{Symbol: ev.Symbol, DefiningFile: file})
		case artifacts.EventDeclare:
			acc.define(ev.Symbol.Name, Symbol{Symbol: ev.Symbol, DefiningFile: file, Declared: true})
		case artifacts.EventRemove:
			acc.remove(ev.RemovedName)
		case artifacts.EventLibraryLoad:
			if ev.Scope == metadata.GlobalScope {
				w.r.loadPackage(ctx, acc, ev.Package)
			}
		case artifacts.EventWorkingDirectory:
			// Working-directory context only matters for resolving a raw
			// source() path into a location.FileID, which already
			// happened when this file's artifacts were built (component A,
			// orchestrated by component J). Nothing left to do here.
		case artifacts.EventSourceCall:
			w.sourceCall(ctx, file, ev, depth, acc)
		}
	}
}

func (w *walker) sourceCall(ctx context.Context, parent location.FileID, ev artifacts.ScopeEvent, depth int, acc *accumulator) {
	if !ev.Resolved {
		return // unresolved path is a value, not an error (spec.md invariant 1)
	}
	child := ev.Child

	if depth+1 > w.r.cfg.MaxChainDepth {
		w.diagnostics = append(w.diagnostics, diag.NewIssue(diag.Warning, diag.E_MAX_CHAIN_DEPTH_EXCEEDED,
			"source() chain exceeds the configured maximum depth").
			WithSpan(location.Span{Path: parent, Start: ev.CallSite, End: ev.CallSite}).Build())
		return
	}
	if w.stack[child] {
		w.diagnostics = append(w.diagnostics, diag.NewIssue(diag.Error, diag.E_CYCLE_DETECTED,
			"source() call forms a cycle back to a file already on the chain").
			WithSpan(location.Span{Path: parent, Start: ev.CallSite, End: ev.CallSite}).Build())
		return
	}

	childArt, found, err := w.r.loader.Load(ctx, child)
	if err != nil || !found {
		return // missing file is a value; load errors degrade to "no contribution"
	}

	w.stack[child] = true
	childAcc := newAccumulator()
	w.walk(ctx, child, childArt, eofLine, depth+1, childAcc)
	delete(w.stack, child)

	if ev.Local {
		// local=TRUE runs the sourced file in the caller's local (function)
		// environment rather than globalenv, so none of its contributions
		// persist in the top-level scope this accumulator tracks — the
		// snapshot-then-restore spec.md describes has no net effect, so
		// there is nothing left to merge.
		return
	}

	acc.mergeFrom(childAcc)
	w.edges = append(w.edges, ContributingEdge{Parent: parent, Child: child, CallSite: ev.CallSite, Depth: depth + 1})
}

func (r *Resolver) loadPackage(ctx context.Context, acc *accumulator, pkg string) {
	if members, ok := r.cfg.ExpandMetaPackage(pkg); ok {
		for _, member := range members {
			r.loadSinglePackage(ctx, acc, member)
		}
		return
	}
	r.loadSinglePackage(ctx, acc, pkg)
}

func (r *Resolver) loadSinglePackage(ctx context.Context, acc *accumulator, pkg string) {
	acc.addPackage(pkg)
	if r.packages == nil {
		return
	}
	names, ok := r.packages.Exports(ctx, pkg)
	if !ok {
		return
	}
	sort.Strings(names)
	for _, name := range names {
		acc.define(name, Symbol{
			Symbol:  artifacts.Symbol{Name: name, Kind: artifacts.KindFunction},
			Package: pkg,
		})
	}
}
