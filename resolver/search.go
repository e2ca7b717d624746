package resolver

import (
	"context"
	"iter"
	"path"
	"strings"

	"github.com/djgrant/piq/pattern"
	"github.com/djgrant/piq/store"
)

// Search enumerates item identifiers in a ContentStore that satisfy a
// compiled pattern. Identifiers are store names, with the optional root
// prefix applied.
type Search struct {
	store store.ContentStore
	pat   *pattern.Pattern
	root  string
}

// SearchOption configures a Search resolver.
type SearchOption func(*Search)

// WithRoot scopes the resolver to a subtree of the store. The root is
// prefixed onto built identifiers and stripped before pattern matching.
func WithRoot(root string) SearchOption {
	return func(s *Search) { s.root = strings.Trim(root, "/") }
}

// NewSearch creates a Search resolver over the given store and pattern.
func NewSearch(st store.ContentStore, pat *pattern.Pattern, optFns ...SearchOption) *Search {
	s := &Search{store: st, pat: pat}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// ParamNames returns the pattern's declared parameter names.
func (s *Search) ParamNames() []string {
	return s.pat.ParamNames()
}

// Enumerate lists all identifiers satisfying the pattern under the given
// constraints, in listing order. It never reads item content.
func (s *Search) Enumerate(ctx context.Context, constraints map[string]string) ([]string, error) {
	var ids []string
	for id, err := range s.EnumerateSeq(ctx, constraints) {
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// EnumerateSeq lazily yields identifiers satisfying the pattern under the
// given constraints. Consumers that stop early avoid unread listing cost.
//
// When every parameter is pinned the template collapses to a single exact
// identifier and enumeration degrades to one existence check — the cheap
// non-capturing path.
func (s *Search) EnumerateSeq(ctx context.Context, constraints map[string]string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		tmpl, err := s.pat.Template(constraints)
		if err != nil {
			yield("", err)
			return
		}

		if exact, ok := tmpl.Exact(); ok {
			id := s.join(exact)
			exists, err := s.store.Stat(ctx, id)
			if err != nil {
				yield("", err)
				return
			}
			if exists {
				yield(id, nil)
			}
			return
		}

		prefix := s.join(tmpl.LiteralPrefix())
		for name, err := range s.store.List(ctx, prefix) {
			if err != nil {
				yield("", err)
				return
			}
			rel, ok := s.strip(name)
			if !ok || !tmpl.Matches(rel) {
				continue
			}
			if !yield(name, nil) {
				return
			}
		}
	}
}

// ExtractParams recomputes parameter values from an identifier. The result
// is deliberately not cached on the identifier; callers own reuse.
func (s *Search) ExtractParams(id string) (pattern.Params, error) {
	rel, ok := s.strip(id)
	if !ok {
		return nil, pattern.ErrNoMatch
	}
	return s.pat.Match(rel)
}

// BuildID constructs the identifier for the given parameter values, with
// the resolver's root prefixed.
func (s *Search) BuildID(params map[string]string) (string, error) {
	rel, err := s.pat.Build(params)
	if err != nil {
		return "", err
	}
	return s.join(rel), nil
}

func (s *Search) join(rel string) string {
	if s.root == "" {
		return rel
	}
	// path.Join would eat the trailing slash a bare prefix may carry.
	if rel == "" {
		return s.root + "/"
	}
	return path.Join(s.root, rel)
}

func (s *Search) strip(id string) (string, bool) {
	if s.root == "" {
		return id, true
	}
	rel := strings.TrimPrefix(id, s.root+"/")
	return rel, rel != id
}
