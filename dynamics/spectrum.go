// SPDX-License-Identifier: MIT

package dynamics

import (
	"context"
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/duotape/matrix"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Eigen is one eigenvalue in a serialisable form.
type Eigen struct {
	Re      float64 `yaml:"re" json:"re"`
	Im      float64 `yaml:"im" json:"im"`
	Modulus float64 `yaml:"modulus" json:"modulus"`
}

// Spectrum holds the leading eigenvalues of an operator, |λ| descending.
type Spectrum struct {
	Dim    int          // operator dimension
	NNZ    int          // stored entries, 0 for non-CSR operators
	Values []complex128 // at most K values
}

// Radius returns the spectral radius, or 0 for an empty spectrum.
func (s Spectrum) Radius() float64 {
	if len(s.Values) == 0 {
		return 0
	}

	return cmplx.Abs(s.Values[0])
}

// Eigens returns Values as Eigen records.
func (s Spectrum) Eigens() []Eigen {
	out := make([]Eigen, len(s.Values))
	for i, v := range s.Values {
		out[i] = Eigen{Re: real(v), Im: imag(v), Modulus: cmplx.Abs(v)}
	}

	return out
}

// Analyzer consumes a Spectrum. What the eigenvalues mean for a given
// machine is left to the implementation.
type Analyzer interface {
	Inspect(s Spectrum) error
}

// AnalyzerFunc adapts a plain function to Analyzer.
type AnalyzerFunc func(s Spectrum) error

// Inspect calls f(s).
func (f AnalyzerFunc) Inspect(s Spectrum) error { return f(s) }

// Analyze computes the eigenvalues of op, keeps the K of largest modulus
// (WithEigenvalues, default DefaultEigenvalues) and passes the result to
// every registered Analyzer in order. The first analyzer error stops the
// chain and is returned together with the computed Spectrum.
//
// Complexity: O(n^3) in the operator dimension; the operator is densified.
func Analyze(op matrix.Matrix, opts ...Option) (Spectrum, error) {
	cfg := newConfig(opts...)
	_, span := cfg.tracer.Start(context.Background(), "dynamics.Analyze")
	defer span.End()

	vals, err := matrix.Eigenvalues(op, cfg.maxIter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return Spectrum{}, dynamicsErrorf(opAnalyze, err)
	}
	matrix.SortByModulus(vals)
	if len(vals) > cfg.k {
		vals = vals[:cfg.k]
	}

	s := Spectrum{Dim: op.Rows(), Values: vals}
	if csr, ok := op.(*matrix.CSR); ok {
		s.NNZ = csr.NNZ()
	}
	span.SetAttributes(
		attribute.Int("dynamics.dim", s.Dim),
		attribute.Int("dynamics.k", len(vals)),
		attribute.Float64("dynamics.radius", s.Radius()),
	)

	for i, a := range cfg.analyzers {
		if err := a.Inspect(s); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			return s, dynamicsErrorf(opAnalyze, fmt.Errorf("analyzer %d: %w", i, err))
		}
	}

	return s, nil
}
