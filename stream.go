package piq

import (
	"context"
	"iter"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// Stream runs the query as a pull-based sequence. Enumeration is lazy when
// the search resolver supports it, and at most limit item resolutions are
// in flight at once, so a consumer that stops early never pays for the rest
// of the collection.
//
// Enumeration order governs the order work is issued; yield order follows
// completion order within the in-flight window. Breaking the loop stops
// further enumeration pulls immediately, while already-acquired slots run
// to completion — cancellation is cooperative, never a hard abort mid-read.
// A per-item resolution error terminates the stream.
//
// Example:
//
//	for row, err := range q.Stream(ctx, 4) {
//	    if err != nil { break }
//	    if enough(row) { break } // Early termination
//	    process(row)
//	}
func (q *Query) Stream(ctx context.Context, limit int) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		p, err := q.plan()
		if err != nil {
			yield(nil, err)
			return
		}
		if limit < 1 {
			limit = 1
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		type result struct {
			row Row
			err error
		}
		out := make(chan result)
		sem := semaphore.NewWeighted(int64(limit))

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id, err := range q.engine.enumerateSeq(ctx, q.scan) {
				if err != nil {
					select {
					case out <- result{err: err}:
					case <-ctx.Done():
					}
					return
				}
				// The semaphore is the in-flight bound; a failed acquire
				// means the consumer is gone.
				if err := sem.Acquire(ctx, 1); err != nil {
					return
				}
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer sem.Release(1)
					// In-flight resolution runs to completion even after
					// the consumer stops; only the send is abandoned.
					row, keep, err := q.engine.resolveItem(context.WithoutCancel(ctx), p, q.filter, id)
					if err != nil {
						select {
						case out <- result{err: err}:
						case <-ctx.Done():
						}
						return
					}
					if !keep {
						return
					}
					flat, err := q.flattenRow(row)
					select {
					case out <- result{row: flat, err: err}:
					case <-ctx.Done():
					}
				}()
			}
		}()
		go func() {
			wg.Wait()
			close(out)
		}()

		start := time.Now()
		matched := 0
		defer func() {
			q.engine.metrics.RecordQuery(matched, time.Since(start), nil)
		}()

		for res := range out {
			if res.err != nil {
				yield(nil, res.err)
				return
			}
			matched++
			if !yield(res.row, nil) {
				return
			}
		}
	}
}
