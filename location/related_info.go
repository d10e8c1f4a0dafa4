package location

// Common RelatedInfo message constants for consistent diagnostic output.
const (
	MsgCycleContinuesHere  = "cycle continues here"
	MsgAlsoCandidateParent = "also a candidate parent"
	MsgPreviousDefinition  = "previous definition here"
	MsgSourcedFromHere     = "sourced from here"
	MsgDeclaredHere        = "declared here"
	MsgDefinedHere         = "defined here"
)

// RelatedInfo describes an additional location associated with a
// diagnostic, such as the other edges of an import cycle or a competing
// candidate parent.
type RelatedInfo struct {
	// Span identifies the related source location.
	Span Span

	// Message explains why this location is related. Prefer the Msg*
	// constants for consistency.
	Message string
}

// IsValid reports whether the related info has meaningful content: either
// the span is valid or the message is non-empty.
func (r RelatedInfo) IsValid() bool {
	return r.Span.IsValid() || r.Message != ""
}

// String returns a human-readable representation.
func (r RelatedInfo) String() string {
	if r.Span.IsZero() {
		return r.Message
	}
	if r.Message == "" {
		return r.Span.String()
	}
	return r.Span.String() + ": " + r.Message
}
