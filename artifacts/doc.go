// Package artifacts implements the Artifacts Builder (component D): it
// walks one file's text and metadata once, producing an ordered
// ScopeEvent timeline, the file's exported interface, and a stable
// interface fingerprint.
//
// Grounded on SPEC_FULL.md §4.D: the AST-pass-then-derive-facts shape
// follows `schema/internal/parse`'s structure (since deleted, its shape
// is carried forward rather than its code), and the single pass over an
// ordered event list to build the exported interface follows
// `schema/internal/complete/linearize.go`'s accumulation pattern (there:
// linearizing type inheritance; here: folding Define/Remove/Declare
// events into a running symbol map).
package artifacts
