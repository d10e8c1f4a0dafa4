// Package rstmt is a small hand-written scanner for R source text, shared
// by the Metadata Extractor (component B) and the Artifacts Builder
// (component D). It does not build a full R AST; it recognizes just
// enough structure — top-level statement boundaries and call expressions
// — to extract the facts SPEC_FULL.md §4.B and §4.D name.
//
// There is no R grammar anywhere in the reference pack to ground an
// ANTLR-based parser on, so this package follows the teacher's
// hand-written recursive-descent shape (a single-pass tokenizer that
// tracks nesting depth and string/comment state, emitting positioned
// chunks) applied to R's much simpler top-level surface: calls,
// assignments, and comment directives.
package rstmt
