package resolve

import "github.com/jbearak/rlsp/location"

// Context carries the base directory a raw path is joined against, the
// workspace root used for escape checking, and whether a leading "/"
// means workspace-root-relative (directive resolution) or filesystem
// root (source() resolution).
type Context struct {
	base          location.CanonicalPath
	workspaceRoot location.CanonicalPath
	rootRelative  bool
}

// FileRelative builds a resolution context rooted at fileDir, the
// directory of the file whose backward directives are being resolved.
// Backward directives ignore any @lsp-cd in the file: resolution always
// starts from the file's own directory, and a leading "/" is
// workspace-root-relative.
func FileRelative(fileDir, workspaceRoot location.CanonicalPath) Context {
	return Context{base: fileDir, workspaceRoot: workspaceRoot, rootRelative: true}
}

// FromMetadata builds a resolution context for a forward source() call.
// workingDirectory is the @lsp-cd path in force at the call's line, or
// the zero CanonicalPath if none is in force (fileDir is used instead). A
// leading "/" is filesystem-absolute.
func FromMetadata(fileDir location.CanonicalPath, workingDirectory location.CanonicalPath, workspaceRoot location.CanonicalPath) Context {
	base := fileDir
	if !workingDirectory.IsZero() {
		base = workingDirectory
	}
	return Context{base: base, workspaceRoot: workspaceRoot, rootRelative: false}
}
