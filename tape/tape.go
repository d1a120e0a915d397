// SPDX-License-Identifier: MIT

package tape

import (
	"fmt"
	"math/rand"
)

// Tape is a fixed-length circular sequence of symbols with one head.
//   - cells is owned by the Tape; constructors copy their input.
//   - head is always in [0, len(cells)).
type Tape struct {
	cells []int
	head  int
}

// New returns a tape holding a copy of cells with the head at 0.
// Errors: ErrEmptyTape when len(cells) == 0.
// Complexity: O(n).
func New(cells []int) (*Tape, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("New: %w", ErrEmptyTape)
	}
	buf := make([]int, len(cells))
	copy(buf, cells)

	return &Tape{cells: buf}, nil
}

// Zeros returns a tape of n zero symbols.
func Zeros(n int) (*Tape, error) {
	if n <= 0 {
		return nil, fmt.Errorf("Zeros: %w", ErrEmptyTape)
	}

	return &Tape{cells: make([]int, n)}, nil
}

// Random returns a tape of n symbols drawn uniformly from [0, alphabet).
// The caller owns rng; the same rng state always yields the same tape.
func Random(n, alphabet int, rng *rand.Rand) (*Tape, error) {
	switch {
	case n <= 0:
		return nil, fmt.Errorf("Random: %w", ErrEmptyTape)
	case alphabet <= 0:
		return nil, fmt.Errorf("Random: %w", ErrBadAlphabet)
	case rng == nil:
		return nil, fmt.Errorf("Random: %w", ErrNeedRandSource)
	}
	cells := make([]int, n)
	for i := range cells {
		cells[i] = rng.Intn(alphabet)
	}

	return &Tape{cells: cells}, nil
}

// Len returns the number of cells.
func (t *Tape) Len() int { return len(t.cells) }

// Head returns the current head index.
func (t *Tape) Head() int { return t.head }

// Read returns the symbol under the head.
func (t *Tape) Read() int { return t.cells[t.head] }

// Cells returns a copy of the tape contents.
func (t *Tape) Cells() []int {
	out := make([]int, len(t.cells))
	copy(out, t.cells)

	return out
}

// SetHead positions the head at i.
func (t *Tape) SetHead(i int) error {
	if i < 0 || i >= len(t.cells) {
		return fmt.Errorf("SetHead(%d): %w", i, ErrHeadOutOfRange)
	}
	t.head = i

	return nil
}

// Apply executes a on the tape.
//   - OpRight/OpLeft move circularly.
//   - OpStay is a no-op.
//   - OpWrite stores a.Symbol under the head without moving.
//
// Errors: ErrUnknownAction for an invalid op; the tape is left untouched.
func (t *Tape) Apply(a Action) error {
	n := len(t.cells)
	switch a.Op {
	case OpRight:
		t.head = (t.head + 1) % n
	case OpLeft:
		if t.head == 0 {
			t.head = n - 1
		} else {
			t.head--
		}
	case OpStay:
	case OpWrite:
		t.cells[t.head] = a.Symbol
	default:
		return fmt.Errorf("Apply(%s): %w", a.Op, ErrUnknownAction)
	}

	return nil
}

// Clone returns an independent copy (cells and head).
func (t *Tape) Clone() *Tape {
	return &Tape{cells: t.Cells(), head: t.head}
}
