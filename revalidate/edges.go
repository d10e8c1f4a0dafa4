package revalidate

import (
	"github.com/jbearak/rlsp/artifacts"
	"github.com/jbearak/rlsp/depgraph"
	"github.com/jbearak/rlsp/location"
	"github.com/jbearak/rlsp/metadata"
	"github.com/jbearak/rlsp/resolve"
)

// resolveEdges turns file's freshly extracted metadata into the
// resolved forward/backward candidates depgraph.ApplyMetadata and
// artifacts.Build both need, per component A's path-resolution rules.
//
// resolvedForward is returned separately from, but positionally aligned
// with, edges.Forward: artifacts.Build needs one ResolvedChild per
// metadata.ForwardSource regardless of whether resolution succeeded,
// while depgraph only wants the candidates that did resolve.
func resolveEdges(file location.FileID, md metadata.CrossFileMetadata, root location.CanonicalPath) (edges depgraph.FileEdges, resolvedForward []artifacts.ResolvedChild) {
	cp, ok := file.CanonicalPath()
	if !ok {
		// Synthetic files (test fixtures) never participate in the real
		// dependency graph; report every source as unresolved.
		resolvedForward = make([]artifacts.ResolvedChild, len(md.ForwardSources()))
		return depgraph.FileEdges{}, resolvedForward
	}
	fileDir := cp.Dir()

	workdirs := md.WorkingDirectoryDirectives()

	forwardSources := md.ForwardSources()
	resolvedForward = make([]artifacts.ResolvedChild, len(forwardSources))
	for i, fwd := range forwardSources {
		workingDir := workingDirectoryAt(workdirs, fwd.CallSite.Line, fileDir, root)
		ctx := resolve.FromMetadata(fileDir, workingDir, root)
		child, resolvedOK := resolve.Resolve(fwd.RawPath, ctx)
		resolvedForward[i] = artifacts.ResolvedChild{File: child, OK: resolvedOK}
		if resolvedOK {
			edges.Forward = append(edges.Forward, depgraph.ForwardCandidate{
				Child:       child,
				CallSite:    fwd.CallSite,
				Local:       fwd.Local,
				Chdir:       fwd.Chdir,
				IsSysSource: fwd.IsSysSource,
			})
		}
	}

	backwardCtx := resolve.FileRelative(fileDir, root)
	for _, bwd := range md.BackwardDirectives() {
		parent, resolvedOK := resolve.Resolve(bwd.RawParentPath, backwardCtx)
		if !resolvedOK {
			continue
		}
		edges.Backward = append(edges.Backward, depgraph.BackwardCandidate{
			Parent:       parent,
			CallSiteLine: bwd.CallSiteLine,
			MatchPattern: bwd.MatchPattern,
		})
	}

	return edges, resolvedForward
}

// workingDirectoryAt finds the @lsp-cd directive in force at callLine:
// the directive with the largest Line <= callLine, per spec.md §3's
// "scoped from the line they appear to the next such directive or EOF."
// Returns the zero CanonicalPath if none applies, meaning resolve.
// FromMetadata falls back to fileDir.
func workingDirectoryAt(directives []metadata.WorkingDirectoryDirective, callLine int, fileDir, root location.CanonicalPath) location.CanonicalPath {
	var best *metadata.WorkingDirectoryDirective
	for i := range directives {
		d := &directives[i]
		if d.Line > callLine {
			continue
		}
		if best == nil || d.Line > best.Line {
			best = d
		}
	}
	if best == nil {
		return location.CanonicalPath{}
	}
	file, ok := resolve.Resolve(best.RawPath, resolve.FileRelative(fileDir, root))
	if !ok {
		return location.CanonicalPath{}
	}
	cp, ok := file.CanonicalPath()
	if !ok {
		return location.CanonicalPath{}
	}
	return cp
}
