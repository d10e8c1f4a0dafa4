// Package depgraph maintains the workspace's file dependency graph: which
// files source() which other files, and which @lsp-sourced-by directives
// declare a backward parent link.
//
// The graph is not required to be acyclic — a.R sourcing b.R sourcing a.R
// is a legal, if unusual, workspace. Cycle detection belongs to scope
// resolution's traversal (a visited-set carried on the call stack), not
// to this package; depgraph only stores and diffs edges.
//
// Edges carry raw-path-resolved endpoints: depgraph never touches a raw
// string path or the filesystem. Resolving a source() argument or a
// directive's path argument into a canonical [location.FileID] is the
// path resolver's job; depgraph's callers do that resolution before
// calling [Graph.ApplyMetadata].
//
// Graph is safe for concurrent use. ApplyMetadata, Parents, Children,
// OutgoingEdgeAt, and TransitiveUpstream may all be called concurrently
// from multiple goroutines.
package depgraph
