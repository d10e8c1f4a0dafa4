// Package resolve implements the path resolver (component A): turning a
// raw path string plus a resolution context into a canonical file
// identity.
//
// Two resolution contexts are exposed, per SPEC_FULL.md §4.A:
//
//   - [FileRelative] resolves against a file's own directory, used for
//     backward directive targets (@lsp-sourced-by). A leading "/" is
//     workspace-root-relative, not filesystem-absolute.
//   - [FromMetadata] resolves against the working-directory directive in
//     force at the relevant line (falling back to the file's own
//     directory), used for forward source() targets. A leading "/" is
//     filesystem-absolute.
//
// Resolve never touches the filesystem beyond symlink resolution; a path
// to a file that does not exist still resolves to a stable canonical
// identity (spec.md §3 invariant 1 — "missing file" is a value, not a
// graph inconsistency). Resolve only fails (ok == false) when the raw
// path cannot be made canonical at all, or when a ".." segment would
// escape the workspace root.
package resolve
