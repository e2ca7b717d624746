package piq

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/djgrant/piq/facet"
)

// Exec runs the query and returns all matching rows in enumeration order.
// Per-item resolution fans out internally (bounded by WithExecParallelism),
// but the returned slice is assembled by original index, never by arrival
// order.
func (q *Query) Exec(ctx context.Context) ([]Row, error) {
	start := time.Now()
	rows, candidates, err := q.exec(ctx)
	q.engine.metrics.RecordQuery(len(rows), time.Since(start), err)
	q.engine.logger.LogQuery(ctx, candidates, len(rows), err)
	return rows, err
}

func (q *Query) exec(ctx context.Context) ([]Row, int, error) {
	p, err := q.plan()
	if err != nil {
		return nil, 0, err
	}

	enumStart := time.Now()
	ids, err := q.engine.search.Enumerate(ctx, q.scan)
	q.engine.metrics.RecordEnumerate(len(ids), time.Since(enumStart), err)
	q.engine.logger.LogEnumerate(ctx, len(ids), err)
	if err != nil {
		return nil, 0, err
	}

	results := make([]Row, len(ids))
	kept := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(q.engine.execParallelism)
	for i, id := range ids {
		g.Go(func() error {
			row, keep, err := q.engine.resolveItem(gctx, p, q.filter, id)
			if err != nil {
				return err
			}
			if !keep {
				return nil
			}
			flat, err := q.flattenRow(row)
			if err != nil {
				return err
			}
			results[i] = flat
			kept[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, len(ids), err
	}

	rows := make([]Row, 0, len(ids))
	for i, ok := range kept {
		if ok {
			rows = append(rows, results[i])
		}
	}
	return rows, len(ids), nil
}

// First runs the query and returns the first matching row in enumeration
// order. The boolean reports whether a row matched; extra matches are not
// an error. Use One for the strict variant.
func (q *Query) First(ctx context.Context) (Row, bool, error) {
	for row, err := range q.Stream(ctx, 1) {
		if err != nil {
			return nil, false, err
		}
		return row, true, nil
	}
	return nil, false, nil
}

// One runs the query expecting exactly one match. It returns
// ErrEmptyResult on zero matches and ErrMultipleResults on more than one.
func (q *Query) One(ctx context.Context) (Row, error) {
	var (
		first Row
		found bool
	)
	for row, err := range q.Stream(ctx, 1) {
		if err != nil {
			return nil, err
		}
		if found {
			return nil, ErrMultipleResults
		}
		first, found = row, true
	}
	if !found {
		return nil, ErrEmptyResult
	}
	return first, nil
}

// Count runs the query and returns the number of matching rows.
func (q *Query) Count(ctx context.Context) (int, error) {
	rows, err := q.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Exists reports whether at least one row matches the query.
func (q *Query) Exists(ctx context.Context) (bool, error) {
	_, found, err := q.First(ctx)
	return found, err
}

// flattenRow applies the query's selection form to one resolved item.
func (q *Query) flattenRow(row *itemRow) (Row, error) {
	if q.aliases != nil {
		return flattenAlias(row, q.aliases)
	}
	return flatten(row, q.paths)
}

// resolveItem resolves exactly the facets the plan references for one item
// and applies the filter predicate. The meta facet is resolved once and
// reused for both the predicate check and the row.
func (e *Engine) resolveItem(ctx context.Context, p *queryPlan, filter map[string]any, id string) (*itemRow, bool, error) {
	row := &itemRow{id: id}

	if p.needsMeta || len(filter) > 0 {
		start := time.Now()
		doc, err := e.meta.ResolveMeta(ctx, id, p.metaResolve)
		e.metrics.RecordResolve(nsMeta, time.Since(start), err)
		e.logger.LogResolve(ctx, id, nsMeta, err)
		if err != nil {
			return nil, false, err
		}
		for k, want := range filter {
			got, ok := doc[k]
			if !ok || !facet.Equal(got, want) {
				return row, false, nil
			}
		}
		if p.needsMeta {
			if p.metaKeep != nil {
				doc = doc.Pick(p.metaKeep)
			}
			row.meta = doc
			row.hasMeta = true
		}
	}

	if p.needsParams {
		params, err := e.search.ExtractParams(id)
		e.logger.LogResolve(ctx, id, nsParams, err)
		if err != nil {
			return nil, false, err
		}
		doc := make(facet.Document, len(params))
		for k, v := range params {
			doc[k] = v
		}
		row.params = doc
		row.hasParams = true
	}

	if p.needsBody {
		start := time.Now()
		doc, err := e.body.ResolveBody(ctx, id, p.bodyResolve)
		e.metrics.RecordResolve(nsBody, time.Since(start), err)
		e.logger.LogResolve(ctx, id, nsBody, err)
		if err != nil {
			return nil, false, err
		}
		row.body = doc
		row.hasBody = true
	}

	return row, true, nil
}
