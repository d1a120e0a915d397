// SPDX-License-Identifier: MIT

// Package matrix - eigenvalues of general (non-symmetric) square matrices.
//
// Pipeline:
//
//	balance → Hessenberg reduction (stabilized elimination) → shifted QR (Francis double shift)
//
// Notes:
//   - The working copy inside these kernels is 1-based ([n+1][n+1], row/col 0 unused);
//     this keeps the deflation bookkeeping of the QR sweep readable.
//   - Only eigenvalues are produced; no eigenvectors are accumulated.
//   - Complex eigenvalues of a real matrix come in conjugate pairs, positive
//     imaginary part second.
//
// Determinism:
//   - Fixed pivot scan and sweep order; identical input gives identical output.

package matrix

import (
	"cmp"
	"fmt"
	"math"
	"math/cmplx"
	"slices"
)

// eigenSweepsPerRow scales the default sweep budget with the dimension.
const eigenSweepsPerRow = 30

// DefaultEigenMaxIter returns the QR sweep budget of one active block of an
// n×n matrix: 30·max(10, n), the bound LAPACK's dhseqr uses. Defective
// eigenvalues (zero rows, nilpotent parts) converge linearly and may need
// well over 30 sweeps.
func DefaultEigenMaxIter(n int) int {
	return eigenSweepsPerRow * max(10, n)
}

// exceptionalShiftEvery forces an ad-hoc shift after this many stalled sweeps.
const exceptionalShiftEvery = 10

// workCopy copies m into a 1-based square work array.
func workCopy(m Matrix) ([][]float64, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, err
	}
	n := m.Rows()
	a := make([][]float64, n+1)
	for i := range a {
		a[i] = make([]float64, n+1)
	}

	switch src := m.(type) {
	case *Dense:
		for i := 0; i < n; i++ {
			copy(a[i+1][1:], src.data[i*n:(i+1)*n])
		}
	case *CSR:
		src.Do(func(i, j int, v float64) bool {
			a[i+1][j+1] = v
			return true
		})
	default:
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v, err := m.At(i, j)
				if err != nil {
					return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
				}
				a[i+1][j+1] = v
			}
		}
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			if math.IsNaN(a[i][j]) || math.IsInf(a[i][j], 0) {
				return nil, fmt.Errorf("(%d,%d): %w", i-1, j-1, ErrNaNInf)
			}
		}
	}

	return a, nil
}

// balance rescales rows/columns by powers of two so their norms are
// comparable. It is a similarity transform: eigenvalues are unchanged.
func balance(a [][]float64, n int) {
	const radix = 2.0
	sqrdx := radix * radix
	for done := false; !done; {
		done = true
		for i := 1; i <= n; i++ {
			r, c := 0.0, 0.0
			for j := 1; j <= n; j++ {
				if j != i {
					c += math.Abs(a[j][i])
					r += math.Abs(a[i][j])
				}
			}
			if c == 0 || r == 0 {
				continue
			}
			g := r / radix
			f := 1.0
			s := c + r
			for c < g {
				f *= radix
				c *= sqrdx
			}
			g = r * radix
			for c > g {
				f /= radix
				c /= sqrdx
			}
			if (c+r)/f < 0.95*s {
				done = false
				g = 1 / f
				for j := 1; j <= n; j++ {
					a[i][j] *= g
				}
				for j := 1; j <= n; j++ {
					a[j][i] *= f
				}
			}
		}
	}
}

// reduceHessenberg reduces a to upper Hessenberg form in place by Gaussian
// elimination with partial pivoting (a similarity transform). Entries below
// the first subdiagonal are zeroed on return.
func reduceHessenberg(a [][]float64, n int) {
	for m := 2; m < n; m++ {
		x, piv := 0.0, m
		for j := m; j <= n; j++ {
			if math.Abs(a[j][m-1]) > math.Abs(x) {
				x, piv = a[j][m-1], j
			}
		}
		if piv != m {
			for j := m - 1; j <= n; j++ {
				a[piv][j], a[m][j] = a[m][j], a[piv][j]
			}
			for j := 1; j <= n; j++ {
				a[j][piv], a[j][m] = a[j][m], a[j][piv]
			}
		}
		if x == 0 {
			continue
		}
		for i := m + 1; i <= n; i++ {
			y := a[i][m-1]
			if y == 0 {
				continue
			}
			y /= x
			for j := m; j <= n; j++ {
				a[i][j] -= y * a[m][j]
			}
			for j := 1; j <= n; j++ {
				a[j][m] += y * a[j][i]
			}
		}
	}
	for i := 3; i <= n; i++ {
		for j := 1; j < i-1; j++ {
			a[i][j] = 0
		}
	}
}

// Hessenberg returns an upper Hessenberg matrix similar to m (same eigenvalues).
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square), ErrNaNInf.
// Complexity: O(n^3).
func Hessenberg(m Matrix) (*Dense, error) {
	a, err := workCopy(m)
	if err != nil {
		return nil, matrixErrorf(opHessenberg, err)
	}
	n := len(a) - 1
	reduceHessenberg(a, n)

	out, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opHessenberg, err)
	}
	for i := 0; i < n; i++ {
		copy(out.data[i*n:(i+1)*n], a[i+1][1:])
	}

	return out, nil
}

// Eigenvalues computes all eigenvalues of a real square matrix.
//
// Implementation:
//   - Stage 1: validate (not nil, square, finite) and copy into a work array.
//   - Stage 2: balance, then reduce to upper Hessenberg form.
//   - Stage 3: Francis double-shift QR with deflation from the bottom; an
//     exceptional shift is applied every exceptionalShiftEvery stalled sweeps.
//     The sweep counter restarts whenever a root deflates, so the budget
//     bounds each active block.
//
// Inputs:
//   - m: square Matrix (Dense, CSR or any implementation).
//   - maxIter: sweep budget per active block; ≤ 0 selects DefaultEigenMaxIter(n).
//
// Returns:
//   - []complex128 of length n, in deflation position order (not sorted).
//     Use SortByModulus for a canonical order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (validation).
//   - ErrMatrixEigenFailed when a block does not deflate within maxIter sweeps.
//
// Complexity:
//   - Time O(n^3) (reduction) + O(n^2) per sweep; Space O(n^2).
func Eigenvalues(m Matrix, maxIter int) ([]complex128, error) {
	a, err := workCopy(m)
	if err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}
	n := len(a) - 1
	if maxIter <= 0 {
		maxIter = DefaultEigenMaxIter(n)
	}
	balance(a, n)
	reduceHessenberg(a, n)

	wr, wi, err := hqr(a, n, maxIter)
	if err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}
	out := make([]complex128, n)
	for i := 1; i <= n; i++ {
		if math.IsNaN(wr[i]) || math.IsNaN(wi[i]) {
			return nil, matrixErrorf(opEigenvalues, ErrMatrixEigenFailed)
		}
		out[i-1] = complex(wr[i], wi[i])
	}

	return out, nil
}

// hqr runs the shifted QR iteration on the upper Hessenberg work array a
// (destroyed on return) and returns real/imaginary parts, 1-based.
func hqr(a [][]float64, n, maxIter int) (wr, wi []float64, err error) {
	wr = make([]float64, n+1)
	wi = make([]float64, n+1)

	anorm := 0.0
	for i := 1; i <= n; i++ {
		for j := max(i-1, 1); j <= n; j++ {
			anorm += math.Abs(a[i][j])
		}
	}

	var p, q, r, s, t, w, x, y, z float64
	nn := n
	for nn >= 1 {
		its := 0
		for {
			// Look for a single small subdiagonal element to split the block.
			l := nn
			for ; l >= 2; l-- {
				s = math.Abs(a[l-1][l-1]) + math.Abs(a[l][l])
				if s == 0 {
					s = anorm
				}
				if math.Abs(a[l][l-1])+s == s {
					a[l][l-1] = 0
					break
				}
			}
			if l < 1 {
				l = 1
			}

			x = a[nn][nn]
			if l == nn { // one root found
				wr[nn] = x + t
				wi[nn] = 0
				nn--
				break
			}

			y = a[nn-1][nn-1]
			w = a[nn][nn-1] * a[nn-1][nn]
			if l == nn-1 { // two roots found
				p = 0.5 * (y - x)
				q = p*p + w
				z = math.Sqrt(math.Abs(q))
				x += t
				if q >= 0 { // real pair
					z = p + math.Copysign(z, p)
					wr[nn-1] = x + z
					wr[nn] = x + z
					if z != 0 {
						wr[nn] = x - w/z
					}
					wi[nn-1], wi[nn] = 0, 0
				} else { // complex pair
					wr[nn-1] = x + p
					wr[nn] = x + p
					wi[nn-1] = -z
					wi[nn] = z
				}
				nn -= 2
				break
			}

			if its == maxIter {
				return nil, nil, fmt.Errorf("block ending at %d after %d sweeps: %w", nn-1, its, ErrMatrixEigenFailed)
			}
			if its > 0 && its%exceptionalShiftEvery == 0 {
				t += x
				for i := 1; i <= nn; i++ {
					a[i][i] -= x
				}
				s = math.Abs(a[nn][nn-1]) + math.Abs(a[nn-1][nn-2])
				x = 0.75 * s
				y = x
				w = -0.4375 * s * s
			}
			its++

			// Find two consecutive small subdiagonal elements.
			m := nn - 2
			for ; m >= l; m-- {
				z = a[m][m]
				r = x - z
				s = y - z
				p = (r*s-w)/a[m+1][m] + a[m][m+1]
				q = a[m+1][m+1] - z - r - s
				r = a[m+2][m+1]
				s = math.Abs(p) + math.Abs(q) + math.Abs(r)
				p /= s
				q /= s
				r /= s
				if m == l {
					break
				}
				u := math.Abs(a[m][m-1]) * (math.Abs(q) + math.Abs(r))
				v := math.Abs(p) * (math.Abs(a[m-1][m-1]) + math.Abs(z) + math.Abs(a[m+1][m+1]))
				if u+v == v {
					break
				}
			}
			for i := m + 2; i <= nn; i++ {
				a[i][i-2] = 0
				if i != m+2 {
					a[i][i-3] = 0
				}
			}

			// Double QR step on rows l..nn and columns m..nn.
			for k := m; k <= nn-1; k++ {
				if k != m {
					p = a[k][k-1]
					q = a[k+1][k-1]
					r = 0
					if k != nn-1 {
						r = a[k+2][k-1]
					}
					if x = math.Abs(p) + math.Abs(q) + math.Abs(r); x != 0 {
						p /= x
						q /= x
						r /= x
					}
				}
				s = math.Copysign(math.Sqrt(p*p+q*q+r*r), p)
				if s == 0 {
					continue
				}
				if k == m {
					if l != m {
						a[k][k-1] = -a[k][k-1]
					}
				} else {
					a[k][k-1] = -s * x
				}
				p += s
				x = p / s
				y = q / s
				z = r / s
				q /= p
				r /= p
				for j := k; j <= nn; j++ { // row modification
					p = a[k][j] + q*a[k+1][j]
					if k != nn-1 {
						p += r * a[k+2][j]
						a[k+2][j] -= p * z
					}
					a[k+1][j] -= p * y
					a[k][j] -= p * x
				}
				for i := l; i <= min(nn, k+3); i++ { // column modification
					p = x*a[i][k] + y*a[i][k+1]
					if k != nn-1 {
						p += z * a[i][k+2]
						a[i][k+2] -= p * r
					}
					a[i][k+1] -= p * q
					a[i][k] -= p
				}
			}
		}
	}

	return wr, wi, nil
}

// SortByModulus orders vals in place by |λ| descending; ties break on real
// part descending, then imaginary part descending.
func SortByModulus(vals []complex128) {
	slices.SortStableFunc(vals, func(a, b complex128) int {
		if c := cmp.Compare(cmplx.Abs(b), cmplx.Abs(a)); c != 0 {
			return c
		}
		if c := cmp.Compare(real(b), real(a)); c != 0 {
			return c
		}

		return cmp.Compare(imag(b), imag(a))
	})
}
