package apcluster

import "log/slog"

const (
	// DefaultMaxIterations bounds the message-passing loop when no budget
	// is configured.
	DefaultMaxIterations = 100

	// DefaultDamping is the default blend between each update and the
	// previous value.
	DefaultDamping = 0.5
)

type options struct {
	maxIterations int
	damping       float64
	symmetric     bool
	normalize     bool
	preference    *float64
	workers       int
	logger        *Logger
	metrics       MetricsCollector
}

func defaultOptions() options {
	return options{
		maxIterations: DefaultMaxIterations,
		damping:       DefaultDamping,
		symmetric:     true,
		logger:        NoopLogger(),
		metrics:       NoopMetricsCollector{},
	}
}

// Option configures an AffinityPropagation instance.
type Option func(*options)

// WithMaxIterations sets the iteration budget. The engine always terminates
// within this many iterations, converged or not.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithDamping sets the damping factor λ in (0, 1). Each update is blended
// as λ·new + (1−λ)·old; values closer to 0 keep more of the previous state
// and stabilize oscillation at the cost of slower convergence.
func WithDamping(damping float64) Option {
	return func(o *options) {
		o.damping = damping
	}
}

// WithSymmetric controls whether the input is one triangle of a symmetric
// similarity matrix (the default). Pass false when supplying a full,
// possibly asymmetric relation.
//
// Under symmetric input the caller must supply only one triangle: supplying
// both doubles edge weights in aggregation and is not detected.
func WithSymmetric(symmetric bool) Option {
	return func(o *options) {
		o.symmetric = symmetric
	}
}

// WithNormalization rescales each vertex's outgoing similarities by their
// sum before the run. Disabled by default.
func WithNormalization(normalize bool) Option {
	return func(o *options) {
		o.normalize = normalize
	}
}

// WithPreference pins every vertex's self-similarity to a constant instead
// of the median of the input values. Lower preferences yield fewer, larger
// clusters; higher preferences yield more.
func WithPreference(p float64) Option {
	return func(o *options) {
		v := p
		o.preference = &v
	}
}

// WithWorkers sets the number of concurrent workers for the bulk edge
// operations. 0 (the default) selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the structured logger. nil restores the no-op logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithSlogLogger wraps an existing *slog.Logger.
func WithSlogLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			o.logger = NoopLogger()

			return
		}
		o.logger = &Logger{Logger: l}
	}
}

// WithMetricsCollector sets the metrics collector. nil disables collection.
func WithMetricsCollector(c MetricsCollector) Option {
	return func(o *options) {
		if c == nil {
			c = NoopMetricsCollector{}
		}
		o.metrics = c
	}
}
