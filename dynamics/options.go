// SPDX-License-Identifier: MIT

package dynamics

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultEigenvalues is the number of leading eigenvalues Analyze keeps.
const DefaultEigenvalues = 6

// tracerName identifies spans emitted by this package.
const tracerName = "github.com/katalvlaran/duotape/dynamics"

// Option customizes Build and Analyze.
type Option func(*config)

type config struct {
	effectiveOnly bool
	k             int
	maxIter       int
	analyzers     []Analyzer
	tracer        trace.Tracer
}

func newConfig(opts ...Option) config {
	cfg := config{
		k:      DefaultEigenvalues,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// EffectiveOnly makes Build skip specific rules that the engine would never
// fire because an earlier rule already matches the same key.
func EffectiveOnly() Option {
	return func(c *config) { c.effectiveOnly = true }
}

// WithEigenvalues sets how many leading eigenvalues Analyze keeps.
// Panics if k <= 0.
func WithEigenvalues(k int) Option {
	if k <= 0 {
		panic(fmt.Sprintf("dynamics: WithEigenvalues(%d): k must be > 0", k))
	}

	return func(c *config) { c.k = k }
}

// WithMaxIter fixes the QR sweep budget per active block. Without it the
// budget scales with the operator: matrix.DefaultEigenMaxIter(dim).
// Panics if n <= 0.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("dynamics: WithMaxIter(%d): n must be > 0", n))
	}

	return func(c *config) { c.maxIter = n }
}

// WithAnalyzer registers an Analyzer that receives every Spectrum.
// Analyzers run in registration order. Panics on nil.
func WithAnalyzer(a Analyzer) Option {
	if a == nil {
		panic("dynamics: WithAnalyzer(nil)")
	}

	return func(c *config) { c.analyzers = append(c.analyzers, a) }
}

// WithTracer overrides the tracer used for Build and Analyze spans.
// Panics on nil.
func WithTracer(t trace.Tracer) Option {
	if t == nil {
		panic("dynamics: WithTracer(nil)")
	}

	return func(c *config) { c.tracer = t }
}
