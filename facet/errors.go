package facet

import "fmt"

// MalformedError indicates a facet block that was opened but never properly
// closed. It is deliberately distinct from an absent block, which resolves
// to an empty Document without error.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type MalformedError struct {
	ID     string
	Facet  string
	Reason string
	cause  error
}

// NewMalformedError constructs a MalformedError for the given item and facet.
func NewMalformedError(id, facet, reason string, cause error) *MalformedError {
	return &MalformedError{ID: id, Facet: facet, Reason: reason, cause: cause}
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s facet in %q: %s", e.Facet, e.ID, e.Reason)
}

func (e *MalformedError) Unwrap() error { return e.cause }
