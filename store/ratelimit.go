package store

import (
	"context"
	"io"
	"iter"

	"golang.org/x/time/rate"
)

// RateLimitedStore wraps a ContentStore and throttles read throughput.
// Useful in front of network backends where query fan-out could otherwise
// saturate a link or trip provider-side limits.
type RateLimitedStore struct {
	inner   ContentStore
	limiter *rate.Limiter
}

// NewRateLimitedStore creates a store limited to bytesPerSec of object reads.
// If bytesPerSec <= 0 no limit is enforced.
func NewRateLimitedStore(inner ContentStore, bytesPerSec int64) *RateLimitedStore {
	var limiter *rate.Limiter
	if bytesPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(bytesPerSec), int(bytesPerSec))
	}
	return &RateLimitedStore{inner: inner, limiter: limiter}
}

// Open opens the object; reads through the returned handle count against
// the byte budget. The context given here governs waiting during ReadAt.
func (s *RateLimitedStore) Open(ctx context.Context, name string) (Object, error) {
	obj, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	if s.limiter == nil {
		return obj, nil
	}
	return &limitedObject{inner: obj, limiter: s.limiter, ctx: ctx}, nil
}

// List passes through to the inner store.
func (s *RateLimitedStore) List(ctx context.Context, prefix string) iter.Seq2[string, error] {
	return s.inner.List(ctx, prefix)
}

// Stat passes through to the inner store.
func (s *RateLimitedStore) Stat(ctx context.Context, name string) (bool, error) {
	return s.inner.Stat(ctx, name)
}

type limitedObject struct {
	inner   Object
	limiter *rate.Limiter
	ctx     context.Context
}

func (o *limitedObject) ReadAt(p []byte, off int64) (int, error) {
	// A single large read may exceed the limiter's burst; split it.
	burst := o.limiter.Burst()
	read := 0
	for read < len(p) {
		chunk := len(p) - read
		if chunk > burst {
			chunk = burst
		}
		if err := o.limiter.WaitN(o.ctx, chunk); err != nil {
			return read, err
		}
		n, err := o.inner.ReadAt(p[read:read+chunk], off+int64(read))
		read += n
		if err != nil {
			return read, err
		}
	}
	return read, nil
}

func (o *limitedObject) Close() error { return o.inner.Close() }

func (o *limitedObject) Size() int64 { return o.inner.Size() }

var _ io.ReaderAt = (*limitedObject)(nil)
