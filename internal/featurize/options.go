package featurize

import (
	"log/slog"
	"runtime"
)

// DefaultLogEveryN is the default progress-logging interval for batch loops.
const DefaultLogEveryN = 1000

// options holds the resolved settings for one featurization call.
type options struct {
	logEveryN int
	logger    *slog.Logger
	progress  func(done, total int)
	workers   int
}

// Option configures a featurization call.
type Option func(*options)

// WithLogEveryN sets the progress-logging interval. A progress message is
// emitted at index 0 and every n-th index thereafter. Values below 1 are
// clamped to 1.
func WithLogEveryN(n int) Option {
	return func(o *options) {
		o.logEveryN = n
	}
}

// WithLogger sets the logger receiving progress and per-item failure
// messages. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithProgress sets a callback invoked after each datapoint completes with
// the number of datapoints finished so far and the total count.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithWorkers sets the worker pool size for Complexes. Defaults to the
// host's available parallelism. Batch loops are sequential and ignore it.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logEveryN: DefaultLogEveryN,
		logger:    slog.Default(),
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logEveryN < 1 {
		o.logEveryN = 1
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}
