package lsp

// isRIdentifierByte reports whether b can appear in an R identifier: R
// allows letters, digits, '.', and '_', with a digit or '.' only valid
// after the first character — callers here only need the permissive
// "could be part of an identifier" test, not a full tokenizer.
func isRIdentifierByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '.' || b == '_':
		return true
	}
	return false
}

// identifierAt extracts the maximal run of identifier bytes in text that
// contains byteOffset (or touches it, for a cursor sitting right after
// the identifier). Returns "" if byteOffset isn't on or adjacent to one.
func identifierAt(text string, byteOffset int) string {
	if byteOffset < 0 || byteOffset > len(text) {
		return ""
	}

	start := byteOffset
	for start > 0 && isRIdentifierByte(text[start-1]) {
		start--
	}
	end := byteOffset
	for end < len(text) && isRIdentifierByte(text[end]) {
		end++
	}
	if start == end {
		return ""
	}
	return text[start:end]
}
