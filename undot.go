package piq

import (
	"sort"
	"strings"
)

// Namespaces a selection path may reference.
const (
	nsParams = "params"
	nsMeta   = "meta"
	nsBody   = "body"
)

// selPath is one parsed selection path: a namespace plus either a concrete
// field or a wildcard over whatever fields the namespace carries per row.
type selPath struct {
	raw      string
	ns       string
	field    string
	wildcard bool
}

// key returns the flattened output key: the path's final segment.
func (p selPath) key() string { return p.field }

// parseSelPath parses "ns.field" or "ns.*".
func parseSelPath(raw string) (selPath, error) {
	ns, field, ok := strings.Cut(raw, ".")
	if !ok || field == "" || strings.Contains(field, ".") {
		return selPath{}, &SelectionError{Path: raw, Reason: "want namespace.field or namespace.*"}
	}
	switch ns {
	case nsParams, nsMeta, nsBody:
	default:
		return selPath{}, &SelectionError{Path: raw, Reason: "unknown namespace " + ns}
	}
	return selPath{raw: raw, ns: ns, field: field, wildcard: field == "*"}, nil
}

// expandPaths replaces each wildcard with one concrete path per field
// currently present in its namespace, in sorted field order. A wildcard
// over an absent namespace expands to nothing. Concrete paths pass through
// untouched, so expansion is idempotent.
func expandPaths(paths []selPath, row *itemRow) []selPath {
	out := make([]selPath, 0, len(paths))
	for _, p := range paths {
		if !p.wildcard {
			out = append(out, p)
			continue
		}
		doc, ok := row.namespace(p.ns)
		if !ok {
			continue
		}
		fields := doc.Fields()
		sort.Strings(fields)
		for _, f := range fields {
			out = append(out, selPath{raw: p.ns + "." + f, ns: p.ns, field: f})
		}
	}
	return out
}

// flatten converts a resolved item row into a flat Row keyed by each
// expanded path's final segment. A selected field the item does not carry
// flattens to a nil value, so every row in a result shares one shape.
func flatten(row *itemRow, paths []selPath) (Row, error) {
	expanded := expandPaths(paths, row)
	out := make(Row, len(expanded))
	source := make(map[string]string, len(expanded))
	for _, p := range expanded {
		if prev, ok := source[p.key()]; ok {
			return nil, &CollisionError{Key: p.key(), Paths: [2]string{prev, p.raw}}
		}
		source[p.key()] = p.raw
		doc, _ := row.namespace(p.ns)
		out[p.key()] = doc[p.field]
	}
	return out, nil
}

// flattenAlias converts a resolved item row into a flat Row keyed by alias.
// A single alias bound to a wildcard degrades to one entry per expanded
// field keyed by that field's own bare name.
func flattenAlias(row *itemRow, aliases map[string]selPath) (Row, error) {
	out := make(Row, len(aliases))
	source := make(map[string]string, len(aliases))

	put := func(key, raw string, v any) error {
		if prev, ok := source[key]; ok {
			return &CollisionError{Key: key, Paths: [2]string{prev, raw}}
		}
		source[key] = raw
		out[key] = v
		return nil
	}

	for alias, p := range aliases {
		if p.wildcard {
			for _, ep := range expandPaths([]selPath{p}, row) {
				doc, _ := row.namespace(ep.ns)
				if err := put(ep.field, ep.raw, doc[ep.field]); err != nil {
					return nil, err
				}
			}
			continue
		}
		doc, _ := row.namespace(p.ns)
		if err := put(alias, p.raw, doc[p.field]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
