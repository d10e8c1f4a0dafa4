package scope

import (
	"context"

	"github.com/jbearak/rlsp/artifacts"
	"github.com/jbearak/rlsp/location"
)

// ArtifactsLoader lazily loads a file's [artifacts.ScopeArtifacts],
// computing them on a cache miss. found is false when file does not
// exist in the workspace — a missing file is a value (spec.md Data Model
// invariant 1), not an error; Resolver treats it the same as an
// unresolved source() call and simply does not traverse into it.
//
// workspaceindex.Index is the implementation the LSP workspace passes to
// New; tests can supply a map-backed stub directly.
type ArtifactsLoader interface {
	Load(ctx context.Context, file location.FileID) (art artifacts.ScopeArtifacts, found bool, err error)
}

// PackageExports resolves a loaded package's exported names. A nil
// PackageExports (or one that reports ok=false) still lets the package
// name enter scope as an available library — spec.md §4.E only promises
// exported *names* when they are known, never requires them.
//
// The module has no implementation of this interface: the LSP workspace
// passes nil, so library() loads bring package names into scope without
// their exports. This package itself never touches the filesystem or a
// subprocess, matching depgraph's and artifacts' discipline.
type PackageExports interface {
	Exports(ctx context.Context, pkg string) (names []string, ok bool)
}
