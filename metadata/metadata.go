package metadata

import "github.com/jbearak/rlsp/location"

// LibraryScope distinguishes a library()/require() call made at top level
// from one made inside a function body.
type LibraryScope uint8

const (
	// GlobalScope marks a library load made at top level; its exports are
	// visible everywhere after the call (scope resolver §4.E).
	GlobalScope LibraryScope = iota

	// FunctionLocalScope marks a library load made inside a function body;
	// its exports are never folded into a file's exported interface.
	FunctionLocalScope
)

func (s LibraryScope) String() string {
	if s == FunctionLocalScope {
		return "function-local"
	}
	return "global"
}

// IgnoreKind distinguishes the two @lsp-ignore marker forms.
type IgnoreKind uint8

const (
	// IgnoreLine suppresses diagnostics on the line the marker appears on.
	IgnoreLine IgnoreKind = iota

	// IgnoreNextLine suppresses diagnostics on the line following the marker.
	IgnoreNextLine
)

// ForwardSource records one literal-argument source()/sys.source() call
// found during the AST pass.
type ForwardSource struct {
	// RawPath is the string literal passed as the first meaningful
	// argument (positional, or named file=), unresolved.
	RawPath string

	// CallSite is the position of the call expression itself.
	CallSite location.Position

	// Local is true only when local= was passed as the literal TRUE.
	Local bool

	// Chdir is true only when chdir= was passed as the literal TRUE.
	Chdir bool

	// IsSysSource is true for sys.source(...) calls, false for source(...).
	IsSysSource bool
}

// BackwardDirective records one @lsp-sourced-by comment directive.
type BackwardDirective struct {
	// RawParentPath is the directive's path argument, unresolved.
	RawParentPath string

	// CallSiteLine is the line= hint, or -1 if the directive carries none.
	CallSiteLine int

	// MatchPattern is the match="..." argument, or "" if absent.
	MatchPattern string
}

// HasCallSiteHint reports whether the directive specified a line= hint.
func (d BackwardDirective) HasCallSiteHint() bool {
	return d.CallSiteLine >= 0
}

// WorkingDirectoryDirective records one @lsp-cd comment directive. It is
// in force from the line it appears on until the next such directive, or
// EOF, whichever comes first.
type WorkingDirectoryDirective struct {
	RawPath string
	Line    int
}

// DeclaredSymbol records one @lsp-var/@lsp-func comment directive.
type DeclaredSymbol struct {
	Name       string
	Line       int
	IsFunction bool
}

// RemovedSymbol records one name cleared by a static rm()/remove() pattern.
type RemovedSymbol struct {
	Name string
	Line int
}

// LibraryLoad records one library()/require()/loadNamespace() call with a
// literal package name.
type LibraryLoad struct {
	Package string
	Line    int
	Scope   LibraryScope
}

// CrossFileMetadata is the complete set of facts extracted from one file.
//
// A zero-value CrossFileMetadata is valid and represents a file that
// contributed nothing (either genuinely empty, or a parse failure that
// was logged rather than reported). CrossFileMetadata is treated as
// immutable once returned from an extraction; accessor methods return
// defensive copies so callers cannot mutate a shared instance in place.
type CrossFileMetadata struct {
	file                       location.FileID
	forwardSources             []ForwardSource
	backwardDirectives         []BackwardDirective
	workingDirectoryDirectives []WorkingDirectoryDirective
	declaredSymbols            []DeclaredSymbol
	removedSymbols             []RemovedSymbol
	libraryLoads               []LibraryLoad
	ignoreMarkers              map[int]IgnoreKind
}

// Empty returns a zero-content CrossFileMetadata for file. Used both for
// genuinely empty files and for files whose extraction failed (the parse
// failure itself is logged by the caller, not recorded here).
func Empty(file location.FileID) CrossFileMetadata {
	return CrossFileMetadata{file: file}
}

// New builds a CrossFileMetadata from extracted facts. Slices are copied
// defensively; callers may reuse or mutate the slices they pass in.
func New(
	file location.FileID,
	forwardSources []ForwardSource,
	backwardDirectives []BackwardDirective,
	workingDirectoryDirectives []WorkingDirectoryDirective,
	declaredSymbols []DeclaredSymbol,
	removedSymbols []RemovedSymbol,
	libraryLoads []LibraryLoad,
	ignoreMarkers map[int]IgnoreKind,
) CrossFileMetadata {
	md := CrossFileMetadata{file: file}
	if len(forwardSources) > 0 {
		md.forwardSources = append([]ForwardSource(nil), forwardSources...)
	}
	if len(backwardDirectives) > 0 {
		md.backwardDirectives = append([]BackwardDirective(nil), backwardDirectives...)
	}
	if len(workingDirectoryDirectives) > 0 {
		md.workingDirectoryDirectives = append([]WorkingDirectoryDirective(nil), workingDirectoryDirectives...)
	}
	if len(declaredSymbols) > 0 {
		md.declaredSymbols = append([]DeclaredSymbol(nil), declaredSymbols...)
	}
	if len(removedSymbols) > 0 {
		md.removedSymbols = append([]RemovedSymbol(nil), removedSymbols...)
	}
	if len(libraryLoads) > 0 {
		md.libraryLoads = append([]LibraryLoad(nil), libraryLoads...)
	}
	if len(ignoreMarkers) > 0 {
		md.ignoreMarkers = make(map[int]IgnoreKind, len(ignoreMarkers))
		for k, v := range ignoreMarkers {
			md.ignoreMarkers[k] = v
		}
	}
	return md
}

// File returns the file this metadata describes.
func (m CrossFileMetadata) File() location.FileID { return m.file }

// ForwardSources returns the recorded source()/sys.source() calls, in the
// order the AST pass encountered them. Returns a defensive copy.
func (m CrossFileMetadata) ForwardSources() []ForwardSource {
	if len(m.forwardSources) == 0 {
		return nil
	}
	out := make([]ForwardSource, len(m.forwardSources))
	copy(out, m.forwardSources)
	return out
}

// BackwardDirectives returns the recorded @lsp-sourced-by directives.
// Returns a defensive copy.
func (m CrossFileMetadata) BackwardDirectives() []BackwardDirective {
	if len(m.backwardDirectives) == 0 {
		return nil
	}
	out := make([]BackwardDirective, len(m.backwardDirectives))
	copy(out, m.backwardDirectives)
	return out
}

// WorkingDirectoryDirectives returns the recorded @lsp-cd directives, in
// textual order. Returns a defensive copy.
func (m CrossFileMetadata) WorkingDirectoryDirectives() []WorkingDirectoryDirective {
	if len(m.workingDirectoryDirectives) == 0 {
		return nil
	}
	out := make([]WorkingDirectoryDirective, len(m.workingDirectoryDirectives))
	copy(out, m.workingDirectoryDirectives)
	return out
}

// DeclaredSymbols returns the recorded @lsp-var/@lsp-func directives.
// Returns a defensive copy.
func (m CrossFileMetadata) DeclaredSymbols() []DeclaredSymbol {
	if len(m.declaredSymbols) == 0 {
		return nil
	}
	out := make([]DeclaredSymbol, len(m.declaredSymbols))
	copy(out, m.declaredSymbols)
	return out
}

// RemovedSymbols returns the recorded rm()/remove() patterns. Returns a
// defensive copy.
func (m CrossFileMetadata) RemovedSymbols() []RemovedSymbol {
	if len(m.removedSymbols) == 0 {
		return nil
	}
	out := make([]RemovedSymbol, len(m.removedSymbols))
	copy(out, m.removedSymbols)
	return out
}

// LibraryLoads returns the recorded library()/require()/loadNamespace()
// calls. Returns a defensive copy.
func (m CrossFileMetadata) LibraryLoads() []LibraryLoad {
	if len(m.libraryLoads) == 0 {
		return nil
	}
	out := make([]LibraryLoad, len(m.libraryLoads))
	copy(out, m.libraryLoads)
	return out
}

// IgnoreMarkers returns the line -> marker-kind map. Returns a defensive
// copy.
func (m CrossFileMetadata) IgnoreMarkers() map[int]IgnoreKind {
	if len(m.ignoreMarkers) == 0 {
		return nil
	}
	out := make(map[int]IgnoreKind, len(m.ignoreMarkers))
	for k, v := range m.ignoreMarkers {
		out[k] = v
	}
	return out
}

// IsIgnored reports whether diagnostics on line should be suppressed,
// either by a marker on that line or a @lsp-ignore-next on the line above.
func (m CrossFileMetadata) IsIgnored(line int) bool {
	if kind, ok := m.ignoreMarkers[line]; ok && kind == IgnoreLine {
		return true
	}
	if kind, ok := m.ignoreMarkers[line-1]; ok && kind == IgnoreNextLine {
		return true
	}
	return false
}
