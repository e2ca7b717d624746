package piq

import (
	"context"
	"iter"

	"github.com/djgrant/piq/facet"
	"github.com/djgrant/piq/pattern"
)

// SearchResolver enumerates item identifiers and derives parameters from
// them. Implementations must never read item content during enumeration;
// that is what keeps the scan layer cheap.
type SearchResolver interface {
	// Enumerate lists all identifiers satisfying the given constraints,
	// in the resolver's enumeration order.
	Enumerate(ctx context.Context, constraints map[string]string) ([]string, error)

	// ExtractParams recomputes parameter values from an identifier.
	// Returns pattern.ErrNoMatch when the identifier does not satisfy
	// the resolver's pattern.
	ExtractParams(id string) (pattern.Params, error)

	// BuildID constructs the identifier for the given parameter values.
	BuildID(params map[string]string) (string, error)

	// ParamNames returns the declared parameter names. Scan keys are
	// validated against this set.
	ParamNames() []string
}

// LazySearchResolver is a SearchResolver that can enumerate lazily. Stream
// uses it when available so an early-terminating consumer avoids the cost
// of unread identifiers; otherwise it falls back to wrapping Enumerate.
type LazySearchResolver interface {
	SearchResolver

	// EnumerateSeq lazily yields identifiers satisfying the constraints.
	EnumerateSeq(ctx context.Context, constraints map[string]string) iter.Seq2[string, error]
}

// MetaResolver resolves the lightweight metadata facet of an item.
type MetaResolver interface {
	// ResolveMeta returns the requested fields of the item's metadata,
	// or all declared fields when fields is nil. An item without a
	// metadata block yields an empty document, not an error.
	ResolveMeta(ctx context.Context, id string, fields []string) (facet.Document, error)

	// MetaFields returns the declared field set. A nil return means the
	// resolver is undeclared and field validation is skipped.
	MetaFields() []string
}

// BodyResolver resolves the full-content facet of an item.
type BodyResolver interface {
	// ResolveBody returns the requested fields of the item's content,
	// or all declared fields when fields is nil.
	ResolveBody(ctx context.Context, id string, fields []string) (facet.Document, error)

	// BodyFields returns the declared field set.
	BodyFields() []string
}

// Row is one flattened query result, keyed by each selected path's final
// segment or by alias.
type Row map[string]any

// itemRow carries the facets resolved for one item before flattening. Each
// facet is optional and carries an explicit presence flag; a facet that the
// selection never references is never resolved.
type itemRow struct {
	id string

	params facet.Document
	meta   facet.Document
	body   facet.Document

	hasParams bool
	hasMeta   bool
	hasBody   bool
}

// namespace returns the document for ns and whether it is present.
func (r *itemRow) namespace(ns string) (facet.Document, bool) {
	switch ns {
	case nsParams:
		return r.params, r.hasParams
	case nsMeta:
		return r.meta, r.hasMeta
	case nsBody:
		return r.body, r.hasBody
	}
	return nil, false
}
