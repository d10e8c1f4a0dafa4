package content

import (
	"unicode/utf8"

	"github.com/jbearak/rlsp/location"
)

// lineTable maps byte offsets to (line, UTF-16 column) and back for one
// version of one file's text. Built once per version and reused across
// every PositionAt/ByteOffsetAt call against that version, grounded on
// the line-start-index plus per-line UTF-16 scan pattern in the teacher's
// lsp/posconv.go (ByteOffsetFromLSP, PositionFromLSP, SpanToLSPRange).
type lineTable struct {
	text       string
	lineStarts []int // byte offset of the start of each line; lineStarts[0] == 0
}

func newLineTable(text string) *lineTable {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineTable{text: text, lineStarts: starts}
}

// positionAt converts a byte offset into a 0-based line and UTF-16
// column. Returns location.UnknownPosition() if byteOffset is out of
// range.
func (lt *lineTable) positionAt(byteOffset int) location.Position {
	if byteOffset < 0 || byteOffset > len(lt.text) {
		return location.UnknownPosition()
	}
	line := lt.lineIndexForByte(byteOffset)
	col := byteToUTF16Offset(lt.text, lt.lineStarts[line], byteOffset)
	return location.NewPosition(line, col, byteOffset)
}

// lineIndexForByte returns the 0-based index of the line containing
// byteOffset, via binary search over lineStarts.
func (lt *lineTable) lineIndexForByte(byteOffset int) int {
	lo, hi := 0, len(lt.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lt.lineStarts[mid] <= byteOffset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// byteOffsetAt converts a 0-based line and UTF-16 column back to a byte
// offset, clamped to the line's content. Returns (0, false) if line is
// out of range.
func (lt *lineTable) byteOffsetAt(line, utf16Col int) (int, bool) {
	if line < 0 || line >= len(lt.lineStarts) {
		return 0, false
	}
	lineStart := lt.lineStarts[line]
	return utf16CharToByteOffset(lt.text, lineStart, utf16Col), true
}

// utf16CharToByteOffset converts a UTF-16 character offset on a line to a
// byte offset, floor-clamping mid-surrogate requests to the start of the
// enclosing rune. Ported from the teacher's lsp/posconv.go.
func utf16CharToByteOffset(content string, lineStart, charOffset int) int {
	if charOffset <= 0 {
		return lineStart
	}

	pos := lineStart
	utf16Units := 0

	for pos < len(content) && utf16Units < charOffset {
		r, size := utf8.DecodeRuneInString(content[pos:])
		if r == utf8.RuneError && size <= 1 {
			utf16Units++
			pos++
			continue
		}
		if r == '\n' {
			break
		}
		if r > 0xFFFF {
			if utf16Units+2 > charOffset && utf16Units+1 == charOffset {
				return pos
			}
			utf16Units += 2
		} else {
			utf16Units++
		}
		pos += size
	}

	return pos
}

// byteToUTF16Offset converts a byte offset on a line to UTF-16 code
// units from lineStart. Ported from the teacher's lsp/posconv.go.
func byteToUTF16Offset(content string, lineStart, targetByte int) int {
	if targetByte <= lineStart {
		return 0
	}

	utf16Units := 0
	pos := lineStart

	for pos < targetByte && pos < len(content) {
		r, size := utf8.DecodeRuneInString(content[pos:])
		if r == utf8.RuneError && size <= 1 {
			utf16Units++
			pos++
			continue
		}
		if r == '\n' {
			break
		}
		if pos+size > targetByte {
			break
		}
		if r > 0xFFFF {
			utf16Units += 2
		} else {
			utf16Units++
		}
		pos += size
	}

	return utf16Units
}
