package diag

// CodeCategory represents the semantic domain of an error code.
type CodeCategory uint8

const (
	// CategorySentinel is for codes like E_LIMIT_REACHED and E_INTERNAL that
	// are not tied to a single pipeline stage.
	CategorySentinel CodeCategory = iota

	// CategoryPath is for path resolution failures.
	CategoryPath

	// CategoryGraph is for dependency-graph and traversal errors.
	CategoryGraph

	// CategoryScope is for scope-resolution errors: undefined variables,
	// out-of-scope usage, ambiguous parentage.
	CategoryScope

	// CategoryExternal is for failures of external collaborators (the
	// help/package-export subprocess).
	CategoryExternal

	// CategorySyntax is for parse failures. Codes in this category are
	// logged, never collected as Issues (a file that fails to parse
	// contributes no diagnostics, only a log entry).
	CategorySyntax
)

// String returns a human-readable label for the category.
func (c CodeCategory) String() string {
	switch c {
	case CategorySentinel:
		return "sentinel"
	case CategoryPath:
		return "path"
	case CategoryGraph:
		return "graph"
	case CategoryScope:
		return "scope"
	case CategoryExternal:
		return "external"
	case CategorySyntax:
		return "syntax"
	default:
		return "unknown"
	}
}

// Code is a stable programmatic identifier for an Issue.
//
// Error codes are stable identifiers tools can match on, even as message
// text changes. The unexported fields enforce a closed set: only codes
// defined in this package are valid. Code.String() values are globally
// unique across categories.
type Code struct {
	value string
	cat   CodeCategory
}

// String returns the code's string representation (e.g., "E_CYCLE_DETECTED").
func (c Code) String() string {
	return c.value
}

// Category returns the programmatic category for this code.
func (c Code) Category() CodeCategory {
	return c.cat
}

// IsZero reports whether the code is unset.
func (c Code) IsZero() bool {
	return c.value == ""
}

// code is the unexported constructor; callers cannot create arbitrary codes.
func code(value string, cat CodeCategory) Code {
	return Code{value: value, cat: cat}
}

// Sentinel codes, not tied to any single diagnostic category.
var (
	// E_LIMIT_REACHED is a sentinel code for explicit limit notification.
	// It does not automatically trigger Result.LimitReached(); use
	// Collector.LimitReached() to check limit status.
	E_LIMIT_REACHED = code("E_LIMIT_REACHED", CategorySentinel)

	// E_INTERNAL indicates an unexpected invariant failure. Use for
	// conditions that should never occur in correct code.
	E_INTERNAL = code("E_INTERNAL", CategorySentinel)
)

// Error taxonomy, per the system's error handling design.
var (
	// E_PATH_UNRESOLVABLE: a raw path could not be made canonical, or it
	// escapes the workspace root.
	E_PATH_UNRESOLVABLE = code("E_PATH_UNRESOLVABLE", CategoryPath)

	// E_CYCLE_DETECTED: scope traversal found a cycle in the dependency
	// graph.
	E_CYCLE_DETECTED = code("E_CYCLE_DETECTED", CategoryGraph)

	// E_MAX_CHAIN_DEPTH_EXCEEDED: the configured max_chain_depth was
	// reached during traversal; scope accumulated so far is still returned.
	E_MAX_CHAIN_DEPTH_EXCEEDED = code("E_MAX_CHAIN_DEPTH_EXCEEDED", CategoryGraph)

	// E_AMBIGUOUS_PARENT: multiple equally-ranked parents remained after
	// parent selection.
	E_AMBIGUOUS_PARENT = code("E_AMBIGUOUS_PARENT", CategoryGraph)

	// E_UNDEFINED_VARIABLE: an identifier is used where it is not in scope
	// and is not a reserved word, builtin, or package export.
	E_UNDEFINED_VARIABLE = code("E_UNDEFINED_VARIABLE", CategoryScope)

	// E_OUT_OF_SCOPE: an identifier is defined in a sourced file, but the
	// source() call bringing it in is textually after the usage.
	E_OUT_OF_SCOPE = code("E_OUT_OF_SCOPE", CategoryScope)

	// E_EXTERNAL_TIMEOUT: the help/package-export subprocess query timed
	// out. Degraded result only; never collected as a diagnostic (the
	// caller degrades hover/completion output instead).
	E_EXTERNAL_TIMEOUT = code("E_EXTERNAL_TIMEOUT", CategoryExternal)

	// E_PARSE_FAILURE: the R tokenizer/parser could not produce an AST for
	// a file. Logged only; never collected as an Issue, since a file that
	// fails to parse contributes no metadata and no diagnostics of its own.
	E_PARSE_FAILURE = code("E_PARSE_FAILURE", CategorySyntax)
)
