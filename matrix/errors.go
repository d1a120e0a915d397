// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Kernels return these sentinels (wrapped with an op tag via matrixErrorf);
// tests and callers match them with errors.Is. No kernel panics on user input.

package matrix

import (
	"errors"
	"fmt"
)

// ERROR PRIORITY (checked in this order by every kernel):
// nil -> shape/index -> NaN/Inf -> convergence.

var (
	// ErrInvalidDimensions indicates non-positive requested dimensions.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	// At returns this instead of panicking.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes (including a
	// non-square input where a square one is required).
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates a nil Matrix argument or a nil vector.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrMatrixEigenFailed indicates the eigenvalue iteration did not converge
	// within the iteration budget.
	ErrMatrixEigenFailed = errors.New("matrix: eigen decomposition failed")
)

// Operation tags for uniform error wrapping.
const (
	opMatVec      = "MatVec"
	opEigenvalues = "Eigenvalues"
	opHessenberg  = "Hessenberg"
	opTriplet     = "Triplets.Add"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with a non-nil err.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
