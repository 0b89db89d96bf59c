package validate

import (
	"golang.org/x/text/unicode/norm"
)

// Option configures a Registry at construction.
type Option func(*Registry)

// WithErrorHandler sets the initial error handler. See SetErrorHandler for
// the accepted shapes.
func WithErrorHandler(handler any) Option {
	return func(r *Registry) {
		r.SetErrorHandler(handler)
	}
}

// WithNormalization normalizes text to the given Unicode form before exact
// string comparison and pattern matching, so "é" written precomposed or
// decomposed validates the same way.
func WithNormalization(form norm.Form) Option {
	return func(r *Registry) {
		r.normalize = form.String
	}
}

// WithMetrics turns Prometheus instrumentation on or off. It is on by default.
func WithMetrics(enabled bool) Option {
	return func(r *Registry) {
		r.metrics = enabled
	}
}

// BatchOption configures a single batch validation.
type BatchOption func(*batchConfig)

type batchConfig struct {
	continueOnFailure bool
}

// ContinueOnFailure keeps evaluating the rest of a batch after a failure.
// Without it a batch stops at the first value that does not validate.
func ContinueOnFailure() BatchOption {
	return ContinueIf(true)
}

// ContinueIf is ContinueOnFailure driven by a flag.
func ContinueIf(enabled bool) BatchOption {
	return func(c *batchConfig) {
		c.continueOnFailure = c.continueOnFailure || enabled
	}
}

func newBatchConfig(opts []BatchOption) batchConfig {
	var cfg batchConfig

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
