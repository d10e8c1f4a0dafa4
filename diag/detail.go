package diag

// Detail provides key-value context for diagnostic issues.
//
// Details are used to add structured information to issues that can be
// programmatically inspected by tools. Use the standard detail key constants
// to ensure consistent key naming across the codebase.
type Detail struct {
	Key   string
	Value string
}

// Standard detail keys for consistent diagnostic metadata.
//
// Use these constants to avoid stringly-typed drift and enable programmatic
// inspection of diagnostic details. Custom detail keys are permitted for
// domain-specific diagnostics; use lower_snake_case for custom keys.
const (
	// DetailKeyPath is the raw or canonical path involved (for path
	// resolution errors).
	DetailKeyPath = "path"

	// DetailKeyCycle is the cycle participants as a JSON array of paths
	// (for E_CYCLE_DETECTED).
	DetailKeyCycle = "cycle"

	// DetailKeyName is the identifier name involved (for scope errors).
	DetailKeyName = "name"

	// DetailKeyId is the file identifier value (e.g., synthetic FileID).
	DetailKeyId = "id"

	// DetailKeyReason is the failure reason discriminant.
	DetailKeyReason = "reason"

	// DetailKeyChainDepth is the resolved chain depth at the point of
	// failure (for E_MAX_CHAIN_DEPTH_EXCEEDED).
	DetailKeyChainDepth = "chain_depth"

	// DetailKeyCallSite is the describing call site (e.g., "source",
	// "match", "assumeCallSite") that produced a candidate parent.
	DetailKeyCallSite = "call_site"

	// DetailKeyCandidate is one of several ambiguous candidate paths (for
	// E_AMBIGUOUS_PARENT).
	DetailKeyCandidate = "candidate"

	// DetailKeyPackage is an R package name (for namespace/export lookups).
	DetailKeyPackage = "package"

	// DetailKeyContext is contextual information (e.g., "cache", "index").
	DetailKeyContext = "context"
)

// PathWithReason creates detail entries for a path failure with a
// discriminant reason (e.g., "outside_workspace", "not_found").
func PathWithReason(path, reason string) []Detail {
	return []Detail{
		{Key: DetailKeyPath, Value: path},
		{Key: DetailKeyReason, Value: reason},
	}
}

// NameWithCallSite creates detail entries for scope diagnostics involving a
// specific identifier and the call site that introduced or omitted it.
func NameWithCallSite(name, callSite string) []Detail {
	return []Detail{
		{Key: DetailKeyName, Value: name},
		{Key: DetailKeyCallSite, Value: callSite},
	}
}
