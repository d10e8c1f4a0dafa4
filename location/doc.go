// Package location provides canonical file identity and source position
// primitives shared by every component of the cross-file scope resolution
// engine: the dependency graph, the metadata extractor, the artifacts
// builder, the scope resolver, and the diagnostics package all refer to
// files and positions through the types defined here.
//
// # CanonicalPath
//
// CanonicalPath represents a canonicalized file system path that is always:
//   - Absolute (not relative)
//   - Clean (no . or .. segments)
//   - NFC-normalized (Unicode)
//   - Forward-slash normalized (uses "/" on all platforms)
//   - Symlink-resolved (best-effort)
//
// Create via NewCanonicalPath or MustCanonicalPath. CanonicalPath is the
// identity a file has throughout the system; every path reaching the
// dependency graph or a cache has passed through this constructor exactly
// once, at the path resolver boundary.
//
// # Position
//
// Position identifies a point in a UTF-8 encoded source file using the
// editor protocol's own convention:
//   - Line: 0-based line number (-1 = unknown)
//   - Column: 0-based column counting UTF-16 code units, not bytes or runes
//   - Byte: 0-based byte offset in the UTF-8 content (-1 = unknown)
//
// Use IsUnknown() to check for an absent position, IsKnown() to check for
// a valid line/column pair, and HasByte() to check for a known byte offset.
//
// # Span
//
// Span represents a half-open range [Start, End) in one file:
//   - Path: the CanonicalPath identifying the file
//   - Start: inclusive start position
//   - End: exclusive end position (equals Start for point spans)
//
// Create spans via Point, PointWithByte, Range, or RangeWithBytes. The Range
// constructors panic if end < start (geometric soundness invariant).
//
// # RelatedInfo
//
// RelatedInfo provides supplementary location context for diagnostics, such
// as "cycle continues here" for CycleDetected or "also a candidate parent"
// for AmbiguousParent.
//
// # Dependencies
//
// This package depends only on the standard library and
// golang.org/x/text/unicode/norm (for NFC normalization). It imports no
// other package in this module, so it can be imported everywhere without
// introducing cycles.
package location
