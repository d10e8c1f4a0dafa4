package workspaceindex

import (
	"fmt"
	pathpkg "path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ignorePattern is one parsed gitignore-style pattern. Adapted from the
// Mutagen-style ignore pattern parser (pkg/synchronization/core/ignore/
// mutagen/ignore.go) for rlsp's narrower needs: no symlink-type matching,
// just path and directory-ness.
type ignorePattern struct {
	negated       bool
	directoryOnly bool
	matchLeaf     bool
	pattern       string
}

func newIgnorePattern(raw string) (*ignorePattern, error) {
	if raw == "" {
		return nil, fmt.Errorf("workspaceindex: empty ignore pattern")
	}

	negated := raw[0] == '!'
	if negated {
		raw = raw[1:]
	}
	if raw == "" {
		return nil, fmt.Errorf("workspaceindex: negated empty ignore pattern")
	}

	raw = cleanPreservingTrailingSlash(raw)
	if raw == "/" {
		return nil, fmt.Errorf("workspaceindex: root ignore pattern is meaningless")
	}

	absolute := raw[0] == '/'
	if absolute {
		raw = raw[1:]
	}

	directoryOnly := len(raw) > 0 && raw[len(raw)-1] == '/'
	if directoryOnly {
		raw = raw[:len(raw)-1]
	}

	containsSlash := strings.IndexByte(raw, '/') >= 0

	if _, err := doublestar.Match(raw, "a"); err != nil {
		return nil, fmt.Errorf("workspaceindex: invalid ignore pattern %q: %w", raw, err)
	}

	return &ignorePattern{
		negated:       negated,
		directoryOnly: directoryOnly,
		matchLeaf:     !absolute && !containsSlash,
		pattern:       raw,
	}, nil
}

func cleanPreservingTrailingSlash(p string) string {
	trailingSlash := len(p) > 1 && p[len(p)-1] == '/'
	cleaned := pathpkg.Clean(p)
	if trailingSlash {
		return cleaned + "/"
	}
	return cleaned
}

func (p *ignorePattern) matches(relPath string, directory bool) bool {
	if p.directoryOnly && !directory {
		return false
	}
	if match, _ := doublestar.Match(p.pattern, relPath); match {
		return true
	}
	if p.matchLeaf && relPath != "" {
		if match, _ := doublestar.Match(p.pattern, pathpkg.Base(relPath)); match {
			return true
		}
	}
	return false
}

// Matcher decides whether a workspace-relative path should be excluded
// from the index, combining .gitignore-style patterns (later patterns,
// including negations, take precedence over earlier ones) with a
// configurable exclude list applied the same way.
type Matcher struct {
	patterns []*ignorePattern
	negated  int
}

// NewMatcher parses patterns in gitignore order. Patterns from
// .gitignore and the configurable exclude list should be concatenated by
// the caller before calling NewMatcher, .gitignore patterns first, so
// the exclude list's patterns win when both match (gitignore semantics:
// later patterns override earlier ones).
func NewMatcher(patterns []string) (*Matcher, error) {
	parsed := make([]*ignorePattern, 0, len(patterns))
	var negated int
	for _, raw := range patterns {
		p, err := newIgnorePattern(raw)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, p)
		if p.negated {
			negated++
		}
	}
	return &Matcher{patterns: parsed, negated: negated}, nil
}

// Excluded reports whether relPath (workspace-root-relative, forward-slash
// separated) should be excluded from enumeration.
func (m *Matcher) Excluded(relPath string, directory bool) bool {
	excluded := false
	remainingNegated := m.negated
	for _, p := range m.patterns {
		if excluded && remainingNegated == 0 {
			break
		}
		if p.negated {
			remainingNegated--
			if !excluded {
				continue
			}
		} else if excluded {
			continue
		}
		if !p.matches(relPath, directory) {
			continue
		}
		excluded = !p.negated
	}
	return excluded
}
