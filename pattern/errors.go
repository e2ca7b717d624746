package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch is returned by Match when the identifier does not satisfy
	// the pattern. Callers decide whether this is fatal.
	ErrNoMatch = errors.New("identifier does not match pattern")

	// ErrInternalFault indicates the matcher produced a state that regex
	// construction should have made impossible (e.g. an empty capture for a
	// required parameter). Seeing it is a bug in this package, not in the
	// caller's pattern.
	ErrInternalFault = errors.New("internal pattern fault")
)

// SyntaxError indicates a malformed placeholder in a pattern string.
type SyntaxError struct {
	Pattern string
	Pos     int
	Reason  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pattern %q: syntax error at offset %d: %s", e.Pattern, e.Pos, e.Reason)
}

// AmbiguousError indicates two adjacent unconstrained parameters with no
// intervening literal. Extraction would be undecidable, so compilation
// rejects the pattern instead of guessing.
type AmbiguousError struct {
	Pattern string
	Left    string
	Right   string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("pattern %q: parameters %q and %q are adjacent with no separating literal", e.Pattern, e.Left, e.Right)
}

// MissingParameterError is returned by Build when a required or constrained
// parameter has no value.
type MissingParameterError struct {
	Pattern string
	Name    string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("pattern %q: missing value for required parameter %q", e.Pattern, e.Name)
}

// ConstraintError is returned by Build when a supplied value would not
// round-trip through Match: either it violates the parameter's inline
// constraint, or it contains a path separator in a single-segment position.
type ConstraintError struct {
	Pattern string
	Name    string
	Value   string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("pattern %q: value %q is not valid for parameter %q", e.Pattern, e.Value, e.Name)
}
