package piq

import (
	"log/slog"
	"runtime"
)

type options struct {
	meta             MetaResolver
	body             BodyResolver
	metricsCollector MetricsCollector
	logger           *Logger
	execParallelism  int
}

// Option configures Engine constructor behavior.
type Option func(*options)

// WithMetaResolver configures the metadata resolver. Without one, Filter
// and meta selections are rejected at terminal-call validation.
func WithMetaResolver(m MetaResolver) Option {
	return func(o *options) {
		o.meta = m
	}
}

// WithBodyResolver configures the full-content resolver. Without one, body
// selections are rejected at terminal-call validation.
func WithBodyResolver(b BodyResolver) Option {
	return func(o *options) {
		o.body = b
	}
}

// WithExecParallelism bounds the per-item fan-out of Exec. Values below 1
// fall back to GOMAXPROCS. Stream is unaffected; its bound is the
// caller-supplied concurrency limit.
func WithExecParallelism(n int) Option {
	return func(o *options) {
		o.execParallelism = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &piq.BasicMetricsCollector{}
//	eng := piq.New(search, piq.WithMetricsCollector(metrics))
//	// ... run queries ...
//	stats := metrics.GetStats()
//	fmt.Printf("Queries: %d, Avg latency: %dns\n", stats.QueryCount, stats.QueryAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := piq.NewJSONLogger(slog.LevelInfo)
//	eng := piq.New(search, piq.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		execParallelism:  runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.execParallelism < 1 {
		o.execParallelism = runtime.GOMAXPROCS(0)
	}
	return o
}
