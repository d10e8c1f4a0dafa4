// Package metadata defines the per-file facts the extractor (component B)
// derives from a single R source file: the source()/sys.source() calls it
// makes, the @lsp-* directives in its comments, its top-level assignments
// and removals, its library loads, and its ignore markers.
//
// CrossFileMetadata carries raw, unresolved paths. Turning a raw path into
// a canonical file identity is the path resolver's job, not this package's;
// metadata only records what the source text says, verbatim.
//
// Extraction is side-effect free and total: it never returns an error.
// Statements the extractor does not recognize contribute nothing, and the
// rest of the file still populates the CrossFileMetadata; nothing is
// logged.
package metadata
