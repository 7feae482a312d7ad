package ttgo

import "log/slog"

const (
	// DefaultMemoryBudget is the byte budget used when neither
	// WithMemoryBudget nor WithCapacity is given.
	DefaultMemoryBudget = 1 << 30

	// DefaultAssociativity is the number of candidate slots probed per
	// signature unless WithAssociativity overrides it.
	DefaultAssociativity = 8
)

type options struct {
	capacity         int
	memoryBudget     int64
	associativity    int
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures table construction. Capacity and associativity are
// fixed once the table exists; options only affect construction.
type Option func(*options)

// WithMemoryBudget sizes the table to fit within the given number of
// bytes. The entry count is derived once, from the budget divided by
// the per-record footprint (one tag byte plus the codec's encoded
// size), and never changes afterwards.
//
// Ignored when WithCapacity is also given.
func WithMemoryBudget(bytes int64) Option {
	return func(o *options) {
		o.memoryBudget = bytes
	}
}

// WithCapacity sizes the table to hold exactly n entries, overriding
// any memory budget.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithAssociativity sets the probe window size: the number of candidate
// slots examined per signature before a lookup gives up or a store
// picks a victim. Larger windows reduce premature eviction at the cost
// of longer probes.
func WithAssociativity(n int) Option {
	return func(o *options) {
		o.associativity = n
	}
}

// WithLogger configures structured logging for lifecycle and snapshot
// events. The hot lookup/store path never logs. Pass nil to disable.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets
// it. Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a collector for handle lifecycle and
// snapshot events. Pass nil to disable collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		memoryBudget:     DefaultMemoryBudget,
		associativity:    DefaultAssociativity,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
