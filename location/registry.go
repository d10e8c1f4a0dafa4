package location

// PositionRegistry converts a byte offset within a file into a Position
// (0-based line, UTF-16 column).
//
// The implementation lives in the content package (content.Provider),
// backed by a line table cached per document. The
// metadata extractor, artifacts builder and scope resolver do not call
// it.
type PositionRegistry interface {
	// PositionAt converts a byte offset to a Position for the given file.
	//
	// Returns an unknown Position (check IsUnknown) if the file is not
	// registered or the offset is out of range.
	PositionAt(file FileID, byteOffset int) Position
}
