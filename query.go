package piq

import (
	"maps"

	"github.com/djgrant/piq/facet"
)

// Query accumulates scan and filter constraints plus one selection, then
// executes via a terminal call (Exec, First, One, Count, Exists, Stream).
//
// Every builder call forks, leaving the receiver untouched, so one base
// query can branch into several:
//
//	base := eng.Query().Scan(map[string]string{"year": "2024"})
//	published := base.Filter(map[string]any{"status": "published"})
//	drafts := base.Filter(map[string]any{"status": "draft"})
//
// Builder-time errors (a filter without a metadata resolver, a malformed or
// colliding selection) are carried on the fork and surfaced by the terminal
// call.
type Query struct {
	engine *Engine

	scan   map[string]string
	filter map[string]any

	// Selection: bare paths or alias→path, set by Select / SelectAs.
	paths   []selPath
	aliases map[string]selPath

	err error
}

func (q *Query) fork() *Query {
	return &Query{
		engine:  q.engine,
		scan:    maps.Clone(q.scan),
		filter:  maps.Clone(q.filter),
		paths:   q.paths,
		aliases: q.aliases,
		err:     q.err,
	}
}

// Scan merges identifier constraints into the query. Repeated calls merge;
// on key overlap the later call wins.
func (q *Query) Scan(constraints map[string]string) *Query {
	next := q.fork()
	if next.scan == nil {
		next.scan = make(map[string]string, len(constraints))
	}
	maps.Copy(next.scan, constraints)
	return next
}

// Filter merges metadata constraints into the query. Repeated calls merge
// with later-key-wins semantics — a repeated key replaces the earlier
// value, it does not AND with it. Matching is strict equality per
// facet.Equal.
func (q *Query) Filter(constraints map[string]any) *Query {
	next := q.fork()
	if next.engine.meta == nil && next.err == nil {
		next.err = &ConfigurationError{Reason: "filter requires a MetaResolver"}
		return next
	}
	if next.filter == nil {
		next.filter = make(map[string]any, len(constraints))
	}
	maps.Copy(next.filter, constraints)
	return next
}

// Select declares the paths the result rows carry, replacing any previous
// selection. Each path is "namespace.field" or "namespace.*" over the
// params, meta and body namespaces. Rows flatten keyed by final segment;
// two paths sharing a final segment collide (use SelectAs to disambiguate).
func (q *Query) Select(paths ...string) *Query {
	next := q.fork()
	next.aliases = nil
	next.paths = make([]selPath, 0, len(paths))

	seen := make(map[string]string, len(paths))
	for _, raw := range paths {
		p, err := parseSelPath(raw)
		if err != nil {
			if next.err == nil {
				next.err = err
			}
			return next
		}
		// Static collision check; wildcard collisions are only knowable
		// per row, flatten re-checks after expansion.
		if !p.wildcard {
			if prev, ok := seen[p.key()]; ok && next.err == nil {
				next.err = &CollisionError{Key: p.key(), Paths: [2]string{prev, raw}}
			}
			seen[p.key()] = raw
		}
		next.paths = append(next.paths, p)
	}
	return next
}

// SelectAs declares an alias→path selection, replacing any previous one.
// Rows flatten keyed by alias, so paths with identical final segments can
// coexist. An alias bound to a wildcard degrades to per-field bare names.
func (q *Query) SelectAs(aliases map[string]string) *Query {
	next := q.fork()
	next.paths = nil
	next.aliases = make(map[string]selPath, len(aliases))

	for alias, raw := range aliases {
		p, err := parseSelPath(raw)
		if err != nil {
			if next.err == nil {
				next.err = err
			}
			return next
		}
		next.aliases[alias] = p
	}
	return next
}

// queryPlan is the validated execution shape of one terminal call.
type queryPlan struct {
	selection []selPath

	needsParams bool
	needsMeta   bool
	needsBody   bool

	// Fields handed to ResolveMeta: union of filter keys and selected meta
	// fields. nil means all declared fields (wildcard selection).
	metaResolve []string
	// Fields the row's meta facet is restricted to after the filter check.
	// nil means keep everything resolved.
	metaKeep []string

	// Fields handed to ResolveBody. nil means all declared fields.
	bodyResolve []string
}

// selectionPaths returns the selection regardless of form.
func (q *Query) selectionPaths() []selPath {
	if q.aliases != nil {
		out := make([]selPath, 0, len(q.aliases))
		for _, p := range q.aliases {
			out = append(out, p)
		}
		return out
	}
	return q.paths
}

// plan validates the accumulated query against the engine's resolvers and
// their declared field sets.
func (q *Query) plan() (*queryPlan, error) {
	if q.err != nil {
		return nil, q.err
	}
	if q.paths == nil && q.aliases == nil {
		return nil, &ConfigurationError{Reason: "no selection declared"}
	}

	paramNames := facet.FieldSet(q.engine.search.ParamNames())
	for k := range q.scan {
		if !paramNames.Contains(k) {
			return nil, &ConfigurationError{Reason: "scan key " + k + " is not a declared parameter"}
		}
	}

	var metaFields facet.FieldSet
	if q.engine.meta != nil {
		metaFields = q.engine.meta.MetaFields()
	}
	if len(q.filter) > 0 {
		if q.engine.meta == nil {
			return nil, &ConfigurationError{Reason: "filter requires a MetaResolver"}
		}
		if metaFields != nil {
			for k := range q.filter {
				if !metaFields.Contains(k) {
					return nil, &ConfigurationError{Reason: "filter key " + k + " is not a declared meta field"}
				}
			}
		}
	}

	p := &queryPlan{selection: q.selectionPaths()}

	var selectedMeta, selectedBody []string
	metaWild, bodyWild := false, false
	for _, sp := range p.selection {
		switch sp.ns {
		case nsParams:
			p.needsParams = true
			if !sp.wildcard && !paramNames.Contains(sp.field) {
				return nil, &SelectionError{Path: sp.raw, Reason: "not a declared parameter"}
			}
		case nsMeta:
			if q.engine.meta == nil {
				return nil, &ConfigurationError{Reason: "selection " + sp.raw + " requires a MetaResolver"}
			}
			p.needsMeta = true
			if sp.wildcard {
				metaWild = true
			} else {
				if metaFields != nil && !metaFields.Contains(sp.field) {
					return nil, &SelectionError{Path: sp.raw, Reason: "not a declared meta field"}
				}
				selectedMeta = append(selectedMeta, sp.field)
			}
		case nsBody:
			if q.engine.body == nil {
				return nil, &ConfigurationError{Reason: "selection " + sp.raw + " requires a BodyResolver"}
			}
			p.needsBody = true
			if sp.wildcard {
				bodyWild = true
			} else {
				if !facet.FieldSet(q.engine.body.BodyFields()).Contains(sp.field) {
					return nil, &SelectionError{Path: sp.raw, Reason: "not a declared body field"}
				}
				selectedBody = append(selectedBody, sp.field)
			}
		}
	}

	// One meta resolution per item serves both the filter predicate and
	// the selected fields.
	if !metaWild {
		if p.needsMeta || len(q.filter) > 0 {
			union := make([]string, 0, len(selectedMeta)+len(q.filter))
			union = append(union, selectedMeta...)
			for k := range q.filter {
				union = append(union, k)
			}
			p.metaResolve = union
		}
		p.metaKeep = selectedMeta
	}
	if !bodyWild {
		p.bodyResolve = selectedBody
	}

	return p, nil
}
