package rstmt

// Found is one call expression located anywhere in the source text by
// FindCalls, along with its nesting depth at the point the call name
// begins (0 = top level, i.e. not inside any (), [], or {}).
type Found struct {
	Call  Call
	Line  int
	Byte  int
	Depth int
}

// FindCalls scans text for calls to any of the given names, wherever
// they appear (top level or nested inside a block), skipping occurrences
// inside string literals and comments. It is the building block both for
// top-level-only extraction (callers filter on Depth == 0) and for
// function-body-scoped detection (callers inspect Depth > 0), without
// needing a second, separate scanning pass.
func FindCalls(text string, names map[string]bool) []Found {
	var out []Found
	depth := 0
	line := 0
	var inString byte
	inComment := false
	escaped := false

	n := len(text)
	for i := 0; i < n; {
		c := text[i]

		if inComment {
			if c == '\n' {
				inComment = false
				line++
			}
			i++
			continue
		}

		if inString != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == inString:
				inString = 0
			}
			if c == '\n' {
				line++
			}
			i++
			continue
		}

		switch c {
		case '#':
			inComment = true
			i++
			continue
		case '\'', '"':
			inString = c
			i++
			continue
		case '(', '[', '{':
			depth++
			i++
			continue
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
			i++
			continue
		case '\n':
			line++
			i++
			continue
		}

		if isIdentStartByte(c) {
			j := i
			for j < n && isIdentByte(text[j]) {
				j++
			}
			word := text[i:j]
			if names[word] {
				k := j
				for k < n && (text[k] == ' ' || text[k] == '\t') {
					k++
				}
				if k < n && text[k] == '(' {
					end := matchParen(text, k)
					if end > 0 {
						callText := text[i : end+1]
						if call, ok := ParseCall(callText); ok {
							out = append(out, Found{Call: call, Line: line, Byte: i, Depth: depth})
						}
						i = end + 1
						continue
					}
				}
			}
			i = j
			continue
		}

		i++
	}
	return out
}

// matchParen returns the index of the ')' matching the '(' at openIdx,
// or -1 if unbalanced.
func matchParen(text string, openIdx int) int {
	depth := 0
	var inString byte
	escaped := false
	for i := openIdx; i < len(text); i++ {
		c := text[i]
		if inString != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == inString:
				inString = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			inString = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isIdentStartByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '.' || c == '_'
}

func isIdentByte(c byte) bool {
	return isIdentStartByte(c) || (c >= '0' && c <= '9')
}
