package piq

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    queryCounter     prometheus.Counter
//	    resolveHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordQuery(matched int, duration time.Duration, err error) {
//	    p.queryCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordEnumerate is called after each enumeration pass.
	// candidates is the number of identifiers produced, duration is the
	// time taken, err is nil if successful.
	RecordEnumerate(candidates int, duration time.Duration, err error)

	// RecordResolve is called after each per-item facet resolution.
	// facet is one of "params", "meta" or "body".
	RecordResolve(facet string, duration time.Duration, err error)

	// RecordQuery is called after each terminal query call.
	// matched is the number of rows produced.
	RecordQuery(matched int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEnumerate(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordResolve(string, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(int, time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EnumerateCount      atomic.Int64
	EnumerateErrors     atomic.Int64
	EnumerateCandidates atomic.Int64
	ResolveCount        atomic.Int64
	ResolveErrors       atomic.Int64
	ResolveTotalNanos   atomic.Int64
	QueryCount          atomic.Int64
	QueryErrors         atomic.Int64
	QueryMatched        atomic.Int64
	QueryTotalNanos     atomic.Int64
}

// RecordEnumerate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEnumerate(candidates int, duration time.Duration, err error) {
	b.EnumerateCount.Add(1)
	b.EnumerateCandidates.Add(int64(candidates))
	if err != nil {
		b.EnumerateErrors.Add(1)
	}
}

// RecordResolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResolve(facet string, duration time.Duration, err error) {
	b.ResolveCount.Add(1)
	b.ResolveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ResolveErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(matched int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryMatched.Add(int64(matched))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EnumerateCount:      b.EnumerateCount.Load(),
		EnumerateErrors:     b.EnumerateErrors.Load(),
		EnumerateCandidates: b.EnumerateCandidates.Load(),
		ResolveCount:        b.ResolveCount.Load(),
		ResolveErrors:       b.ResolveErrors.Load(),
		ResolveAvgNanos:     b.getAvgResolveNanos(),
		QueryCount:          b.QueryCount.Load(),
		QueryErrors:         b.QueryErrors.Load(),
		QueryMatched:        b.QueryMatched.Load(),
		QueryAvgNanos:       b.getAvgQueryNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgResolveNanos() int64 {
	count := b.ResolveCount.Load()
	if count == 0 {
		return 0
	}
	return b.ResolveTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgQueryNanos() int64 {
	count := b.QueryCount.Load()
	if count == 0 {
		return 0
	}
	return b.QueryTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EnumerateCount      int64
	EnumerateErrors     int64
	EnumerateCandidates int64
	ResolveCount        int64
	ResolveErrors       int64
	ResolveAvgNanos     int64
	QueryCount          int64
	QueryErrors         int64
	QueryMatched        int64
	QueryAvgNanos       int64
}
