// SPDX-License-Identifier: MIT

package tape

import (
	"cmp"
	"slices"
)

// Count is one bucket of a Histogram.
type Count struct {
	Symbol int
	N      int
}

// Histogram is an outcome distribution expressed as raw counts, ordered by
// Symbol ascending. Probabilities are N / Total().
type Histogram []Count

// Total returns the sum of all counts.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h {
		total += c.N
	}

	return total
}

// Prob returns the probability mass of bucket i (0 when the histogram is empty).
func (h Histogram) Prob(i int) float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}

	return float64(h[i].N) / float64(total)
}

// PointMass returns a histogram with all mass on sym.
func PointMass(sym int) Histogram {
	return Histogram{{Symbol: sym, N: 1}}
}

// pair is an ordered (left, right) neighbour pair.
type pair struct{ left, right int }

// Adjacency holds neighbour-pair counts over a cell sequence. It is built
// once per snapshot and then queried per symbol.
type Adjacency struct {
	pairs map[pair]int
	n     int // number of pairs counted (len(cells)-1, or 0)
}

// NewAdjacency counts every ordered pair (cells[i], cells[i+1]) for
// i in [0, len(cells)-1). The wrap-around pair is not included.
// Complexity: O(n) time, O(distinct pairs) space.
func NewAdjacency(cells []int) *Adjacency {
	a := &Adjacency{pairs: make(map[pair]int)}
	for i := 0; i+1 < len(cells); i++ {
		a.pairs[pair{cells[i], cells[i+1]}]++
		a.n++
	}

	return a
}

// Pairs returns how many adjacent pairs were counted.
func (a *Adjacency) Pairs() int { return a.n }

// Successors returns the histogram of symbols observed immediately after sym.
// Empty when sym never appears at a position that has a right neighbour.
func (a *Adjacency) Successors(sym int) Histogram {
	var h Histogram
	for p, n := range a.pairs {
		if p.left == sym {
			h = append(h, Count{Symbol: p.right, N: n})
		}
	}
	slices.SortFunc(h, byCountSymbol)

	return h
}

// Predecessors returns the histogram of symbols observed immediately before sym.
func (a *Adjacency) Predecessors(sym int) Histogram {
	var h Histogram
	for p, n := range a.pairs {
		if p.right == sym {
			h = append(h, Count{Symbol: p.left, N: n})
		}
	}
	slices.SortFunc(h, byCountSymbol)

	return h
}

func byCountSymbol(x, y Count) int { return cmp.Compare(x.Symbol, y.Symbol) }
