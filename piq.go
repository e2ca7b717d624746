package piq

import (
	"context"
	"iter"
)

// Engine executes layered queries over one collection. It is assembled from
// a SearchResolver plus optional Meta/Body resolvers and holds no per-query
// state; one Engine serves any number of concurrent queries.
type Engine struct {
	search  SearchResolver
	meta    MetaResolver
	body    BodyResolver
	logger  *Logger
	metrics MetricsCollector

	execParallelism int
}

// New creates an Engine over the given search resolver.
//
// Example:
//
//	eng := piq.New(
//	    resolver.NewSearch(st, pattern.MustCompile("posts/{year}/{slug}.md")),
//	    piq.WithMetaResolver(resolver.NewMeta(st)),
//	)
func New(search SearchResolver, optFns ...Option) *Engine {
	o := applyOptions(optFns)
	return &Engine{
		search:          search,
		meta:            o.meta,
		body:            o.body,
		logger:          o.logger,
		metrics:         o.metricsCollector,
		execParallelism: o.execParallelism,
	}
}

// Query starts a new query builder. Builders are forked on every call, so
// a partially-built query can be branched into several without either
// branch observing the other.
func (e *Engine) Query() *Query {
	return &Query{engine: e}
}

// enumerateSeq yields identifiers lazily, preferring the resolver's own
// lazy form and wrapping the eager one otherwise.
func (e *Engine) enumerateSeq(ctx context.Context, constraints map[string]string) iter.Seq2[string, error] {
	if lazy, ok := e.search.(LazySearchResolver); ok {
		return lazy.EnumerateSeq(ctx, constraints)
	}
	return func(yield func(string, error) bool) {
		ids, err := e.search.Enumerate(ctx, constraints)
		if err != nil {
			yield("", err)
			return
		}
		for _, id := range ids {
			if !yield(id, nil) {
				return
			}
		}
	}
}
