// SPDX-License-Identifier: MIT

// Package matrix: the Matrix interface shared by Dense and CSR.
package matrix

// Matrix is a read-only two-dimensional view of float64 values.
//
// Both the dense buffer (Dense) and the compressed sparse operator (CSR)
// implement it, so validators and kernels accept either.
// Complexity notes: all methods are O(1) for Dense; At is O(log nnz(row)) for CSR.
type Matrix interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// At returns the element at (i, j) or ErrOutOfRange.
	At(i, j int) (float64, error)
}
