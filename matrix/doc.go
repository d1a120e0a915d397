// SPDX-License-Identifier: MIT

// Package matrix provides the numeric containers and kernels behind the
// transition operator of a two-tape machine.
//
// The matrix package provides:
//
//   - Dense: a row-major r×c buffer with error-returning accessors.
//   - Triplets and CSR: a COO accumulator that compiles into compressed
//     sparse rows, summing entries that share a coordinate.
//   - Hessenberg and Eigenvalues: a balance → Hessenberg → shifted QR
//     pipeline for the spectrum of a general real square matrix.
//   - SortByModulus: the canonical |λ|-descending order for spectra.
//
// Every kernel validates its inputs and returns a sentinel from errors.go,
// wrapped with an operation tag; nothing here panics on user input.
package matrix
