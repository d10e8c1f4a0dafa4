// Package scope implements cross-file scope resolution (component E):
// given a file and a position in it, compute the set of names visible
// there, following source()/sys.source() calls transitively and folding
// in library() package exports.
//
// Resolution walks a file's own [artifacts.ScopeArtifacts] timeline (see
// the artifacts package) up to the query position, recursing into a
// child's *complete* resolved scope whenever it crosses a SourceCall
// event — which is itself a scope_at(child, EOF) call, so a file that
// itself sources further files contributes its own transitively-sourced
// symbols too. Recursion is stack-bounded for cycle detection and
// depth-bounded by crossFile.maxChainDepth, matching spec.md §4.E.
//
// Resolver is synchronous from the caller's point of view: any I/O
// (reading a file off disk, building its artifacts, asking the external
// package-export service for a library's symbols) happens behind the
// injected [ArtifactsLoader] and [PackageExports] on a cache miss, never
// inside this package.
package scope
