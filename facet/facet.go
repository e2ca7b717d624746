// Package facet holds the document model shared by the query engine's three
// item facets (params, meta, body) and the strict value equality used by
// filter predicates.
package facet

import "slices"

// Document is one resolved facet: a flat map of field names to values.
//
// An absent facet block resolves to an empty (possibly nil) Document, which
// is distinct from a malformed one — see MalformedError.
type Document map[string]any

// Pick returns a new Document containing only the requested fields that are
// present. Requested-but-absent fields are omitted, not nil-valued.
func (d Document) Pick(fields []string) Document {
	out := make(Document, len(fields))
	for _, f := range fields {
		if v, ok := d[f]; ok {
			out[f] = v
		}
	}
	return out
}

// Fields returns the document's field names in unspecified order.
func (d Document) Fields() []string {
	out := make([]string, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	return out
}

// FieldSet is a declared set of field names, used to validate filter keys
// and selection paths before any resolution work happens.
type FieldSet []string

// Contains reports whether the set declares the given field.
func (s FieldSet) Contains(name string) bool {
	return slices.Contains(s, name)
}
