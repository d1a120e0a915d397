// SPDX-License-Identifier: MIT

// Package matrix - sparse operators.
//
// Purpose:
//   - Triplets: an append-only COO accumulator (row, col, value).
//   - CSR: compressed sparse rows, produced by Triplets.Compile.
//
// Duplicate policy:
//   - Entries that land on the same (row, col) are SUMMED at Compile time,
//     never overwritten. Summation follows insertion order, so equal inputs
//     produce bit-identical outputs.
//
// Determinism:
//   - Column indices within each row are strictly increasing after Compile.
//
// Complexity quicksheet:
//   - Add: O(1) amortized; Compile: O(nnz log maxRowNNZ); At: O(log rowNNZ);
//     MatVec: O(nnz); ToDense: O(r*c).

package matrix

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"
)

// Triplets accumulates COO entries for a rows×cols operator.
type Triplets struct {
	rows, cols int
	ri, ci     []int
	v          []float64
}

// NewTriplets returns an empty accumulator for a rows×cols operator.
// Errors: ErrInvalidDimensions when rows or cols ≤ 0.
func NewTriplets(rows, cols int) (*Triplets, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Triplets{rows: rows, cols: cols}, nil
}

// Add appends v at (i, j). Repeated coordinates are allowed and summed later.
// Errors: ErrOutOfRange, ErrNaNInf.
func (t *Triplets) Add(i, j int, v float64) error {
	if i < 0 || i >= t.rows || j < 0 || j >= t.cols {
		return matrixErrorf(opTriplet, fmt.Errorf("(%d,%d): %w", i, j, ErrOutOfRange))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return matrixErrorf(opTriplet, fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
	}
	t.ri = append(t.ri, i)
	t.ci = append(t.ci, j)
	t.v = append(t.v, v)

	return nil
}

// Len returns the number of raw (unsummed) entries.
func (t *Triplets) Len() int { return len(t.v) }

// Compile builds the CSR operator, summing duplicates.
//
// Implementation:
//   - Stage 1: counting sort of entries by row (stable, keeps insertion order).
//   - Stage 2: per row, stable sort by column and merge equal columns by summation.
func (t *Triplets) Compile() *CSR {
	start := make([]int, t.rows+1)
	for _, i := range t.ri {
		start[i+1]++
	}
	for i := 0; i < t.rows; i++ {
		start[i+1] += start[i]
	}

	type entry struct {
		col int
		val float64
	}
	byRow := make([]entry, len(t.v))
	next := slices.Clone(start[:t.rows])
	for k, i := range t.ri {
		byRow[next[i]] = entry{col: t.ci[k], val: t.v[k]}
		next[i]++
	}

	out := &CSR{
		r:       t.rows,
		c:       t.cols,
		indptr:  make([]int, t.rows+1),
		indices: make([]int, 0, len(t.v)),
		data:    make([]float64, 0, len(t.v)),
	}
	for i := 0; i < t.rows; i++ {
		row := byRow[start[i]:start[i+1]]
		slices.SortStableFunc(row, func(a, b entry) int { return cmp.Compare(a.col, b.col) })
		for _, e := range row {
			last := len(out.indices) - 1
			if last >= out.indptr[i] && out.indices[last] == e.col {
				out.data[last] += e.val
				continue
			}
			out.indices = append(out.indices, e.col)
			out.data = append(out.data, e.val)
		}
		out.indptr[i+1] = len(out.indices)
	}

	return out
}

// CSR is an immutable compressed-sparse-row operator.
//   - Row i occupies indices/data[indptr[i]:indptr[i+1]].
//   - Column indices in a row are strictly increasing.
type CSR struct {
	r, c    int
	indptr  []int
	indices []int
	data    []float64
}

var _ Matrix = (*CSR)(nil)

// Rows returns the row count.
func (s *CSR) Rows() int { return s.r }

// Cols returns the column count.
func (s *CSR) Cols() int { return s.c }

// NNZ returns the number of stored (summed) entries.
func (s *CSR) NNZ() int { return len(s.data) }

// At returns the entry at (i, j); absent entries are 0.
func (s *CSR) At(i, j int) (float64, error) {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return 0, fmt.Errorf("CSR.At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	lo, hi := s.indptr[i], s.indptr[i+1]
	k := sort.SearchInts(s.indices[lo:hi], j)
	if k < hi-lo && s.indices[lo+k] == j {
		return s.data[lo+k], nil
	}

	return 0, nil
}

// RowNNZ returns the number of stored entries in row i (0 when out of range).
func (s *CSR) RowNNZ(i int) int {
	if i < 0 || i >= s.r {
		return 0
	}

	return s.indptr[i+1] - s.indptr[i]
}

// RowSum returns the sum of row i (0 when out of range).
func (s *CSR) RowSum(i int) float64 {
	if i < 0 || i >= s.r {
		return 0
	}
	sum := 0.0
	for _, v := range s.data[s.indptr[i]:s.indptr[i+1]] {
		sum += v
	}

	return sum
}

// Do visits stored entries in row-major order; returning false stops early.
func (s *CSR) Do(f func(i, j int, v float64) bool) {
	for i := 0; i < s.r; i++ {
		for k := s.indptr[i]; k < s.indptr[i+1]; k++ {
			if !f(i, s.indices[k], s.data[k]) {
				return
			}
		}
	}
}

// MatVec computes y = S·x.
// Errors: ErrNilMatrix (nil x), ErrDimensionMismatch (len(x) != Cols()).
func (s *CSR) MatVec(x []float64) ([]float64, error) {
	if err := ValidateVecLen(x, s.c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, s.r)
	for i := 0; i < s.r; i++ {
		acc := 0.0
		for k := s.indptr[i]; k < s.indptr[i+1]; k++ {
			acc += s.data[k] * x[s.indices[k]]
		}
		y[i] = acc
	}

	return y, nil
}

// ToDense materializes the operator. Complexity: O(r*c).
func (s *CSR) ToDense() *Dense {
	d := &Dense{r: s.r, c: s.c, data: make([]float64, s.r*s.c)}
	s.Do(func(i, j int, v float64) bool {
		d.data[i*s.c+j] = v
		return true
	})

	return d
}
