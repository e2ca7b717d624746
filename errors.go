package piq

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResult is returned by One when the query matches nothing.
	ErrEmptyResult = errors.New("query matched no items")

	// ErrMultipleResults is returned by One when the query matches more
	// than one item.
	ErrMultipleResults = errors.New("query matched multiple items")
)

// ConfigurationError indicates a query that cannot execute as built:
// a terminal call without a selection, a filter without a configured
// MetaResolver, or a scan/filter key outside the declared sets.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("query misconfigured: %s", e.Reason)
}

// SelectionError indicates a selection path referencing an unknown
// namespace or an undeclared field.
type SelectionError struct {
	Path   string
	Reason string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid selection %q: %s", e.Path, e.Reason)
}

// CollisionError indicates two selection paths whose flattened keys would
// coincide. Static collisions surface before any item is resolved; wildcard
// expansion can introduce them per row once namespace shapes are known.
type CollisionError struct {
	Key   string
	Paths [2]string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("selection collision on %q: %s and %s flatten to the same key", e.Key, e.Paths[0], e.Paths[1])
}
