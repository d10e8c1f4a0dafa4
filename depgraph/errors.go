package depgraph

import (
	"errors"
	"fmt"
)

// Error sentinels for internal depgraph failures. Data issues (ambiguous
// parents, unresolved paths) are reported via diag.Result, not error
// returns; these sentinels signal programmer error or internal faults.
var (
	// ErrInternal is the base error for internal depgraph failures.
	ErrInternal = errors.New("internal depgraph failure")

	// ErrNilGraph indicates a method was called on a nil *Graph receiver.
	ErrNilGraph = fmt.Errorf("%w: nil *Graph receiver", ErrInternal)

	// ErrZeroFile indicates a zero-value FileID was passed where a
	// concrete file identity was required.
	ErrZeroFile = fmt.Errorf("%w: zero location.FileID", ErrInternal)
)
