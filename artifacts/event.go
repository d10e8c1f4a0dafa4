package artifacts

import (
	"github.com/jbearak/rlsp/location"
	"github.com/jbearak/rlsp/metadata"
)

// SymbolKind distinguishes a function definition from any other value.
type SymbolKind uint8

const (
	// KindVariable marks a symbol produced by a non-function assignment.
	KindVariable SymbolKind = iota
	// KindFunction marks a symbol produced by `name <- function(...)`.
	KindFunction
)

func (k SymbolKind) String() string {
	if k == KindFunction {
		return "function"
	}
	return "variable"
}

// Symbol is one name visible in scope, with enough detail for
// completion/hover/go-to-definition to render it.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Signature string // literal "name(arg1, arg2=default)"; empty for variables and declarations
	Position  location.Position
}

// EventKind identifies which of the six timeline event shapes a
// ScopeEvent carries, per spec.md §4.D.
type EventKind uint8

const (
	EventDefine EventKind = iota
	EventRemove
	EventDeclare
	EventSourceCall
	EventWorkingDirectory
	EventLibraryLoad
)

func (k EventKind) String() string {
	switch k {
	case EventDefine:
		return "define"
	case EventRemove:
		return "remove"
	case EventDeclare:
		return "declare"
	case EventSourceCall:
		return "source_call"
	case EventWorkingDirectory:
		return "working_directory"
	case EventLibraryLoad:
		return "library_load"
	default:
		return "unknown"
	}
}

// ScopeEvent is one entry in a file's scope timeline, in textual order.
// Only the fields relevant to Kind are meaningful; the rest are zero.
type ScopeEvent struct {
	Kind EventKind
	Line int

	// EventDefine / EventDeclare
	Symbol Symbol

	// EventRemove
	RemovedName string

	// EventSourceCall
	Child       location.FileID
	CallSite    location.Position
	Local       bool
	Chdir       bool
	IsSysSource bool
	// Resolved reports whether Child is a real resolved target. An
	// unresolved source() call (raw path failed to resolve — see
	// component A) still produces a timeline entry so diagnostics and
	// ordering stay consistent, with Resolved == false and Child zero.
	Resolved bool

	// EventWorkingDirectory
	WorkingDirectory string // raw, unresolved per spec.md §4.A semantics; resolution happens lazily per source call

	// EventLibraryLoad
	Package string
	Scope   metadata.LibraryScope
}
