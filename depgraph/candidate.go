package depgraph

import "github.com/jbearak/rlsp/location"

// ForwardCandidate is a resolved projection of one
// [metadata.ForwardSource]: the raw path has already been turned into a
// canonical child file by the path resolver.
type ForwardCandidate struct {
	Child       location.FileID
	CallSite    location.Position
	Local       bool
	Chdir       bool
	IsSysSource bool
}

// BackwardCandidate is a resolved projection of one
// [metadata.BackwardDirective]: the raw parent path has already been
// turned into a canonical parent file by the path resolver.
type BackwardCandidate struct {
	Parent       location.FileID
	CallSiteLine int // -1 when the directive carried no line= hint.
	MatchPattern string
}

// HasCallSiteHint reports whether the directive specified a line= hint.
func (c BackwardCandidate) HasCallSiteHint() bool {
	return c.CallSiteLine >= 0
}

// FileEdges is the edge-relevant projection of one file's
// [metadata.CrossFileMetadata]: its resolved outgoing source() candidates
// and its resolved backward-directive candidates. It is the input to
// [Graph.ApplyMetadata].
type FileEdges struct {
	Forward  []ForwardCandidate
	Backward []BackwardCandidate
}
