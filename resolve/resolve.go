package resolve

import (
	"errors"
	"strings"

	"github.com/jbearak/rlsp/location"
)

// errEscapesRoot is returned internally when a ".." segment would climb
// above the workspace root. It never escapes this package; Resolve turns
// it into ok == false.
var errEscapesRoot = errors.New("resolve: path escapes workspace root")

// Resolve turns raw into a canonical file identity under ctx, following
// the rules in SPEC_FULL.md §4.A:
//
//  1. Slashes are normalized to "/".
//  2. An absolute raw path is used directly, except that inside a
//     [FileRelative] (directive) context a leading "/" means
//     workspace-root-relative.
//  3. Otherwise raw is joined against ctx's base directory.
//  4. "." and ".." are collapsed lexically; escaping the workspace root
//     makes the path unresolvable.
//  5. The result is canonicalized (symlinks resolved once, case handled
//     per OS via [location.NewCanonicalPath]).
//
// ok is false only when raw cannot be made canonical at all, or step 4's
// escape check fails. A path to a file that simply does not exist on
// disk still resolves successfully: "missing file" is a value the rest
// of the system can carry as an edge endpoint, not a resolution failure.
func Resolve(raw string, ctx Context) (location.FileID, bool) {
	normalized := normalizeSlashes(raw)
	if normalized == "" {
		return location.FileID{}, false
	}

	var cp location.CanonicalPath
	var err error

	switch {
	case ctx.rootRelative && strings.HasPrefix(normalized, "/"):
		cp, err = joinChecked(ctx.workspaceRoot, strings.TrimPrefix(normalized, "/"), ctx.workspaceRoot)
	case isAbsoluteRaw(normalized):
		cp, err = location.NewCanonicalPath(normalized)
	default:
		cp, err = joinChecked(ctx.base, normalized, ctx.workspaceRoot)
	}
	if err != nil {
		return location.FileID{}, false
	}

	// Re-canonicalize: CanonicalPath.Join is purely lexical (no symlink
	// resolution); this final pass through NewCanonicalPath performs the
	// "follow symlinks once" step spec.md §4.A requires.
	final, err := location.NewCanonicalPath(cp.String())
	if err != nil {
		return location.FileID{}, false
	}
	return location.FileIDFromCanonicalPath(final), true
}

// joinChecked joins rel onto base and verifies the result does not climb
// above root (when root is non-zero). An empty root disables the check,
// for callers (tests, synthetic fixtures) that have no workspace concept.
func joinChecked(base location.CanonicalPath, rel string, root location.CanonicalPath) (location.CanonicalPath, error) {
	if base.IsZero() {
		return location.CanonicalPath{}, errEscapesRoot
	}
	segments := strings.Split(rel, "/")
	cp, err := base.Join(segments...)
	if err != nil {
		return location.CanonicalPath{}, err
	}
	if root.IsZero() {
		return cp, nil
	}
	if cp.String() != root.String() && !strings.HasPrefix(cp.String(), root.String()+"/") {
		return location.CanonicalPath{}, errEscapesRoot
	}
	return cp, nil
}

// normalizeSlashes converts backslashes to forward slashes, per step 1.
func normalizeSlashes(raw string) string {
	return strings.ReplaceAll(raw, `\`, "/")
}

// isAbsoluteRaw reports whether a slash-normalized raw path is absolute:
// a Unix-style leading "/", or a Windows drive letter like "C:/".
func isAbsoluteRaw(normalized string) bool {
	if strings.HasPrefix(normalized, "/") {
		return true
	}
	if len(normalized) >= 3 && isASCIILetter(normalized[0]) && normalized[1] == ':' && normalized[2] == '/' {
		return true
	}
	return false
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
