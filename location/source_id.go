package location

import "fmt"

// FileID identifies a file uniquely within the workspace.
//
// A FileID normally wraps a CanonicalPath produced by the path resolver.
// Tests and in-memory fixtures may also construct a synthetic FileID (e.g.
// "test://unit/main.R") that never touches the filesystem; synthetic IDs
// never collide with file-backed ones because file-backed IDs are always
// absolute paths and NewSyntheticFileID panics on identifiers that look
// like one.
//
// FileID is a value type with unexported fields, comparable, and safe for
// use as a map key. The zero value is invalid; use IsZero to check.
type FileID struct {
	cp        CanonicalPath
	synthetic string
}

// FileIDFromPath canonicalizes path (including symlink resolution) and
// returns a file-backed FileID.
func FileIDFromPath(path string) (FileID, error) {
	cp, err := NewCanonicalPath(path)
	if err != nil {
		return FileID{}, fmt.Errorf("create file ID from path %q: %w", path, err)
	}
	return FileID{cp: cp}, nil
}

// MustFileIDFromPath is like FileIDFromPath but panics on error. Use only
// in tests and initialization code where the path is known-good.
func MustFileIDFromPath(path string) FileID {
	id, err := FileIDFromPath(path)
	if err != nil {
		panic("location.MustFileIDFromPath: " + err.Error())
	}
	return id
}

// FileIDFromCanonicalPath wraps an already-canonical path.
func FileIDFromCanonicalPath(cp CanonicalPath) FileID {
	return FileID{cp: cp}
}

// NewSyntheticFileID creates a FileID for a non-file source, such as a unit
// test fixture. Panics if identifier is empty or resembles an absolute
// path, which would collide with file-backed FileIDs.
func NewSyntheticFileID(identifier string) FileID {
	if identifier == "" {
		panic("location.NewSyntheticFileID: empty identifier")
	}
	if looksLikeAbsolutePath(identifier) {
		panic(fmt.Sprintf("location.NewSyntheticFileID: %q looks like an absolute path; use a scheme prefix", identifier))
	}
	return FileID{synthetic: identifier}
}

// String returns the file identifier: the canonical path for file-backed
// IDs, or the synthetic identifier otherwise.
func (f FileID) String() string {
	if f.synthetic != "" {
		return f.synthetic
	}
	return f.cp.String()
}

// IsZero reports whether this is the zero-value FileID.
func (f FileID) IsZero() bool {
	return f.cp.IsZero() && f.synthetic == ""
}

// IsFilePath reports whether this FileID is backed by a real file path.
func (f FileID) IsFilePath() bool {
	return !f.cp.IsZero()
}

// CanonicalPath returns the underlying CanonicalPath. ok is false for
// synthetic IDs.
func (f FileID) CanonicalPath() (cp CanonicalPath, ok bool) {
	if f.cp.IsZero() {
		return CanonicalPath{}, false
	}
	return f.cp, true
}
