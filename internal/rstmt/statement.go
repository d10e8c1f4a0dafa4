package rstmt

import "strings"

// Statement is one top-level chunk of R source: everything between two
// statement boundaries at paren/bracket/brace depth zero. A statement's
// Text is the raw source slice, including any interior comments or
// continuation newlines; callers that need a single logical expression
// trim and re-parse Text themselves (see ParseCall in call.go).
type Statement struct {
	// Text is the raw source of the statement, not trimmed.
	Text string
	// Line is the 0-based line number the statement starts on.
	Line int
	// Byte is the byte offset into the original text the statement starts at.
	Byte int
}

// Split breaks text into top-level statements. A statement ends at a
// newline or semicolon encountered at nesting depth zero, outside any
// string literal or comment. Lines that hold only whitespace or a comment
// still produce a Statement (callers skip those by inspecting Text); a
// completely empty line produces none. Each Statement records its own
// starting Line, so no second pass is needed to track line numbers.
func Split(text string) []Statement {
	var out []Statement

	chunkStart := 0
	chunkLine := 0
	line := 0
	depth := 0

	var inString byte // 0, '\'', or '"'
	inComment := false
	escaped := false

	flush := func(end int) {
		if end > chunkStart {
			out = append(out, Statement{
				Text: text[chunkStart:end],
				Line: chunkLine,
				Byte: chunkStart,
			})
		}
		chunkStart = end
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inComment {
			if c == '\n' {
				inComment = false
			} else {
				continue
			}
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
			continue
		}

		switch c {
		case '#':
			inComment = true
			continue
		case '\'', '"':
			inString = c
			continue
		case '(', '[', '{':
			depth++
			continue
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
			continue
		}

		if c == '\n' {
			if depth == 0 {
				flush(i)
				chunkStart = i + 1
				line++
				chunkLine = line
				continue
			}
			line++
			continue
		}

		if c == ';' && depth == 0 {
			flush(i)
			chunkStart = i + 1
			chunkLine = line
		}
	}
	flush(len(text))

	return out
}

// Trimmed returns s.Text with leading and trailing whitespace removed.
func (s Statement) Trimmed() string {
	return strings.TrimSpace(s.Text)
}

// IsEmpty reports whether the statement carries no executable content
// (blank, or entirely a comment line).
func (s Statement) IsEmpty() bool {
	t := s.Trimmed()
	return t == "" || strings.HasPrefix(t, "#")
}
