package scope

import (
	"github.com/jbearak/rlsp/artifacts"
	"github.com/jbearak/rlsp/location"
)

// Symbol is one name visible at a queried position, tagged with the file
// it was actually defined in — which may be the queried file itself, a
// transitively source()d ancestor-of-scope file, or a package (see
// [Symbol.IsPackageExport]).
type Symbol struct {
	artifacts.Symbol

	// DefiningFile is the file this symbol's Define/Declare event came
	// from. Zero together with Package != "" for a package export.
	DefiningFile location.FileID

	// Declared reports whether this symbol came from an @lsp-var/@lsp-func
	// directive (spec.md's third Symbol kind, "Declared") rather than from
	// a real assignment or assign() call.
	Declared bool

	// Package is non-empty when this symbol was contributed by a
	// LibraryLoad event rather than a Define/Declare in a real file.
	Package string
}

// IsPackageExport reports whether this symbol came from a library() load
// rather than a Define/Declare in a file.
func (s Symbol) IsPackageExport() bool { return s.Package != "" }
