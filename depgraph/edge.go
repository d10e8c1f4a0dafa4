package depgraph

import "github.com/jbearak/rlsp/location"

// Origin identifies what produced an edge: the AST pass's source() call
// recognition, or a @lsp-sourced-by comment directive.
type Origin uint8

const (
	// OriginAST marks an edge derived from a literal-argument source() or
	// sys.source() call found by the AST pass.
	OriginAST Origin = iota

	// OriginDirective marks an edge derived from a @lsp-sourced-by comment
	// directive, either because it replaced a matching AST edge at the
	// same call site or because it suppressed all AST edges for the pair
	// and stands in as a virtual edge.
	OriginDirective
)

// String returns a human-readable label for the origin.
func (o Origin) String() string {
	if o == OriginDirective {
		return "directive"
	}
	return "ast"
}

// Edge is a resolved dependency link: parent source()s child (or child
// declares parent as its backward parent).
//
// Edge is a value type with unexported fields; construct one only through
// [Graph.ApplyMetadata]. Safe for concurrent read access.
type Edge struct {
	parent      location.FileID
	child       location.FileID
	callSite    location.Position
	local       bool
	chdir       bool
	isSysSource bool
	origin      Origin
}

// Parent returns the file that sources (or is declared to source) child.
func (e Edge) Parent() location.FileID { return e.parent }

// Child returns the file being sourced.
func (e Edge) Child() location.FileID { return e.child }

// CallSite returns the position of the source() call, or of the directive
// hint that produced this edge. Directive edges with no call-site hint
// carry [location.UnknownPosition]: depgraph has no access to file
// content and therefore cannot compute a real EOF/start fallback position
// itself — that computation, when wanted for display, is the caller's
// responsibility (it has the file text via the content provider).
func (e Edge) CallSite() location.Position { return e.callSite }

// Local reports whether the source() call passed local=TRUE.
func (e Edge) Local() bool { return e.local }

// Chdir reports whether the source() call passed chdir=TRUE.
func (e Edge) Chdir() bool { return e.chdir }

// IsSysSource reports whether the call was sys.source() rather than
// source().
func (e Edge) IsSysSource() bool { return e.isSysSource }

// Origin reports whether this edge came from the AST pass or a directive.
func (e Edge) Origin() Origin { return e.origin }

// pairKey identifies all edges between one ordered (parent, child) pair.
type pairKey struct {
	parent location.FileID
	child  location.FileID
}
