// SPDX-License-Identifier: MIT

package runner

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithMaxSteps caps the number of steps per Run. Panics if n <= 0.
func WithMaxSteps(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("runner: WithMaxSteps(%d): n must be > 0", n))
	}

	return func(r *Runner) {
		r.MaxSteps = n
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) {
		r.Metrics = m
	}
}

// WithHooks configures lifecycle callbacks.
func WithHooks(h Hooks) Option {
	return func(r *Runner) {
		r.Hooks = h
	}
}

// WithTracer overrides the tracer used for the run span.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) {
		if t != nil {
			r.Tracer = t
		}
	}
}
