package metadata

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jbearak/rlsp/location"
)

var directiveLineRe = regexp.MustCompile(`@lsp-([A-Za-z-]+)\s*:?\s*(.*)$`)
var lineHintRe = regexp.MustCompile(`\bline\s*=\s*(\d+)\b`)
var matchHintRe = regexp.MustCompile(`\bmatch\s*=\s*(?:"([^"]*)"|'([^']*)')`)

var backwardSynonyms = map[string]bool{
	"sourced-by": true,
	"run-by":     true,
	"included-by": true,
}

var forwardSynonyms = map[string]bool{
	"source": true,
}

var workingDirSynonyms = map[string]bool{
	"working-directory": true,
	"working-dir":        true,
	"current-directory":  true,
	"current-dir":        true,
	"wd":                 true,
	"cd":                  true,
}

var declareVarSynonyms = map[string]bool{
	"var":               true,
	"variable":          true,
	"declare-var":       true,
	"declare-variable":  true,
}

var declareFuncSynonyms = map[string]bool{
	"func":               true,
	"function":           true,
	"declare-func":       true,
	"declare-function":   true,
}

// directiveFacts accumulates the results of the regex pass, collected
// line by line and folded into a CrossFileMetadata by the caller.
type directiveFacts struct {
	forwardSources     []ForwardSource
	backwardDirectives []BackwardDirective
	workingDirectories []WorkingDirectoryDirective
	declaredSymbols    []DeclaredSymbol
	ignoreMarkers      map[int]IgnoreKind
}

// scanDirectives runs the regex pass described in spec.md §4.B over every
// line of text, recognizing the "@lsp-..." comment directives enumerated
// in §6. Directives are found by taking the substring of a line following
// its first "#" (directives live in comments; a "#" inside a string
// literal on the same line is the one case this approximates rather than
// tracks precisely, which is an accepted simplification of a regex-based
// lexical pass, not an AST one).
func scanDirectives(text string) directiveFacts {
	facts := directiveFacts{}
	lines := strings.Split(text, "\n")
	for lineNo, raw := range lines {
		hashIdx := strings.IndexByte(raw, '#')
		if hashIdx < 0 {
			continue
		}
		comment := raw[hashIdx:]
		m := directiveLineRe.FindStringSubmatch(comment)
		if m == nil {
			continue
		}
		keyword := strings.ToLower(m[1])
		rest := strings.TrimSpace(m[2])

		switch {
		case keyword == "ignore":
			markIgnore(&facts, lineNo, IgnoreLine)
		case keyword == "ignore-next":
			markIgnore(&facts, lineNo, IgnoreNextLine)
		case backwardSynonyms[keyword]:
			path, remainder := leadingToken(rest)
			if path == "" {
				continue
			}
			callSiteLine := -1
			if lm := lineHintRe.FindStringSubmatch(remainder); lm != nil {
				if n, err := strconv.Atoi(lm[1]); err == nil {
					callSiteLine = n
				}
			}
			matchPattern := ""
			if mm := matchHintRe.FindStringSubmatch(remainder); mm != nil {
				if mm[1] != "" {
					matchPattern = mm[1]
				} else {
					matchPattern = mm[2]
				}
			}
			facts.backwardDirectives = append(facts.backwardDirectives, BackwardDirective{
				RawParentPath: path,
				CallSiteLine:  callSiteLine,
				MatchPattern:  matchPattern,
			})
		case forwardSynonyms[keyword]:
			path, _ := leadingToken(rest)
			if path == "" {
				continue
			}
			facts.forwardSources = append(facts.forwardSources, ForwardSource{
				RawPath:  path,
				CallSite: directivePosition(lineNo),
			})
		case workingDirSynonyms[keyword]:
			path, _ := leadingToken(rest)
			if path == "" {
				continue
			}
			facts.workingDirectories = append(facts.workingDirectories, WorkingDirectoryDirective{
				RawPath: path,
				Line:    lineNo,
			})
		case declareVarSynonyms[keyword]:
			name, _ := leadingToken(rest)
			if name == "" {
				continue
			}
			facts.declaredSymbols = append(facts.declaredSymbols, DeclaredSymbol{Name: name, Line: lineNo, IsFunction: false})
		case declareFuncSynonyms[keyword]:
			name, _ := leadingToken(rest)
			if name == "" {
				continue
			}
			facts.declaredSymbols = append(facts.declaredSymbols, DeclaredSymbol{Name: name, Line: lineNo, IsFunction: true})
		}
	}
	return facts
}

// directivePosition builds a Position for a forward directive found by
// the line-oriented regex pass, which tracks line numbers but not
// columns or byte offsets.
func directivePosition(line int) location.Position {
	return location.NewPosition(line, 0, -1)
}

func markIgnore(facts *directiveFacts, line int, kind IgnoreKind) {
	if facts.ignoreMarkers == nil {
		facts.ignoreMarkers = make(map[int]IgnoreKind)
	}
	facts.ignoreMarkers[line] = kind
}

// leadingToken reads the first whitespace-delimited token of s, honoring
// optional surrounding quotes (quotes are stripped), and returns it along
// with the remainder of the string.
func leadingToken(s string) (token, remainder string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	if s[0] == '"' || s[0] == '\'' {
		quote := s[0]
		end := strings.IndexByte(s[1:], quote)
		if end < 0 {
			return "", ""
		}
		end++ // index within s
		return s[1:end], strings.TrimSpace(s[end+1:])
	}
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx:])
}
