package location

import "fmt"

// Span represents a half-open range [Start, End) in a source file.
//
// Span is a value type with exported fields. Always pass by value.
// The zero value represents "no location"; use IsZero to check.
type Span struct {
	// Path identifies the file this span refers to.
	Path FileID

	// Start is the inclusive start position of the span.
	Start Position

	// End is the exclusive end position of the span. For single-point
	// spans, End equals Start.
	End Position
}

// Point creates a single-point Span where Start == End. The byte offset
// is unknown.
func Point(path FileID, line, column int) Span {
	pos := Position{Line: line, Column: column, Byte: -1}
	return Span{Path: path, Start: pos, End: pos}
}

// PointWithByte creates a single-point Span with a known byte offset.
func PointWithByte(path FileID, line, column, byteOffset int) Span {
	pos := Position{Line: line, Column: column, Byte: byteOffset}
	return Span{Path: path, Start: pos, End: pos}
}

// Range creates a Span from start to end positions (byte offsets unknown).
//
// Panics if end comes before start (geometric soundness invariant). For
// point spans, use Point instead.
func Range(path FileID, startLine, startCol, endLine, endCol int) Span {
	start := Position{Line: startLine, Column: startCol, Byte: -1}
	end := Position{Line: endLine, Column: endCol, Byte: -1}
	if positionBefore(end, start) {
		panic(fmt.Sprintf("location.Range: end %v before start %v", end, start))
	}
	return Span{Path: path, Start: start, End: end}
}

// RangeWithBytes creates a Span with known byte offsets. When both
// positions carry byte offsets, byte order takes precedence over
// line/column order; use IsConsistent to detect disagreement.
func RangeWithBytes(path FileID, startLine, startCol, startByte, endLine, endCol, endByte int) Span {
	start := Position{Line: startLine, Column: startCol, Byte: startByte}
	end := Position{Line: endLine, Column: endCol, Byte: endByte}

	if start.HasByte() && end.HasByte() {
		if end.Byte < start.Byte {
			panic(fmt.Sprintf("location.RangeWithBytes: end byte %d before start byte %d", endByte, startByte))
		}
	} else if positionBefore(end, start) {
		panic(fmt.Sprintf("location.RangeWithBytes: end %v before start %v", end, start))
	}
	return Span{Path: path, Start: start, End: end}
}

// IsZero reports whether the span is the zero value.
func (s Span) IsZero() bool {
	return s.Path.IsZero() && s.Start == Position{} && s.End == Position{}
}

// IsPoint reports whether the span represents a single point.
func (s Span) IsPoint() bool {
	return s.Start == s.End
}

// IsValid reports whether the span is convertible to an LSP range: it has
// a non-zero path and a known start (and, for non-point spans, a known
// end). This does not imply geometric soundness; see IsGeometricallySafe.
func (s Span) IsValid() bool {
	if s.Path.IsZero() {
		return false
	}
	if !s.Start.IsKnown() {
		return false
	}
	if !s.IsPoint() && !s.End.IsKnown() {
		return false
	}
	return true
}

// IsGeometricallySafe reports whether Start <= End.
func (s Span) IsGeometricallySafe() bool {
	if s.IsZero() || s.IsPoint() {
		return true
	}
	if s.Start.HasByte() && s.End.HasByte() {
		return s.Start.Byte <= s.End.Byte
	}
	return !positionBefore(s.End, s.Start)
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.IsZero() {
		return "<no location>"
	}
	p := s.Path.String()
	if s.IsPoint() {
		return fmt.Sprintf("%s:%s", p, s.Start.String())
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", p, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// Contains reports whether position p lies within this span. Uses
// byte-based comparison when available, falling back to line/column. The
// span is half-open: Start is inclusive, End is exclusive.
func (s Span) Contains(p Position) bool {
	if s.IsZero() || p.IsUnknown() {
		return false
	}
	if s.Start.HasByte() && s.End.HasByte() && p.HasByte() {
		return p.Byte >= s.Start.Byte && p.Byte < s.End.Byte
	}
	if positionBefore(p, s.Start) {
		return false
	}
	if !positionBefore(p, s.End) {
		return false
	}
	return true
}

// ContainsOrEquals is like Contains but also matches the exact location of
// a point span.
func (s Span) ContainsOrEquals(p Position) bool {
	if s.Contains(p) {
		return true
	}
	return s.IsPoint() && s.Start == p
}

// Overlaps reports whether the spans (same Path) share any positions.
func (s Span) Overlaps(other Span) bool {
	if s.Path != other.Path {
		return false
	}
	if s.IsZero() || other.IsZero() {
		return false
	}
	if s.Start.HasByte() && s.End.HasByte() && other.Start.HasByte() && other.End.HasByte() {
		return s.Start.Byte < other.End.Byte && other.Start.Byte < s.End.Byte
	}
	if !positionBefore(s.Start, other.End) {
		return false
	}
	if !positionBefore(other.Start, s.End) {
		return false
	}
	return true
}

// Compare orders two spans by path string, then start, then end.
func Compare(a, b Span) int {
	pa, pb := a.Path.String(), b.Path.String()
	if pa < pb {
		return -1
	}
	if pa > pb {
		return 1
	}
	if cmp := comparePositions(a.Start, b.Start); cmp != 0 {
		return cmp
	}
	return comparePositions(a.End, b.End)
}

func comparePositions(a, b Position) int {
	if a.Line != b.Line {
		if a.Line < b.Line {
			return -1
		}
		return 1
	}
	if a.Column != b.Column {
		if a.Column < b.Column {
			return -1
		}
		return 1
	}
	return 0
}

// positionBefore reports whether a is strictly before b, using line/column.
func positionBefore(a, b Position) bool {
	if !a.IsKnown() || !b.IsKnown() {
		return false
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}
