// SPDX-License-Identifier: MIT

package machine

import "fmt"

// Space holds the bounds of one machine instance.
// Axis order is fixed: state, program symbol, memory symbol.
type Space struct {
	States      int `yaml:"states" json:"states"`
	ProgSymbols int `yaml:"program_symbols" json:"program_symbols"`
	MemSymbols  int `yaml:"memory_symbols" json:"memory_symbols"`
}

// Validate enforces States ≥ 2 (the last state is the halt state) and
// positive alphabets.
func (s Space) Validate() error {
	if s.States < 2 {
		return fmt.Errorf("states=%d (need ≥ 2): %w", s.States, ErrConstruction)
	}
	if s.ProgSymbols <= 0 {
		return fmt.Errorf("program symbols=%d (need > 0): %w", s.ProgSymbols, ErrConstruction)
	}
	if s.MemSymbols <= 0 {
		return fmt.Errorf("memory symbols=%d (need > 0): %w", s.MemSymbols, ErrConstruction)
	}

	return nil
}

// Size returns States*ProgSymbols*MemSymbols, the number of specific keys.
func (s Space) Size() int { return s.States * s.ProgSymbols * s.MemSymbols }

// Halt returns the reserved terminal state.
func (s Space) Halt() int { return s.States - 1 }

// Contains reports whether all three components are within bounds.
func (s Space) Contains(state, prog, mem int) bool {
	return state >= 0 && state < s.States &&
		prog >= 0 && prog < s.ProgSymbols &&
		mem >= 0 && mem < s.MemSymbols
}

// Flatten maps (state, prog, mem) to its lexicographic position:
//
//	(state*ProgSymbols + prog)*MemSymbols + mem
//
// which is the index of that triple in Keys().
func (s Space) Flatten(state, prog, mem int) (int, error) {
	if !s.Contains(state, prog, mem) {
		return 0, fmt.Errorf("%s(%d,%d,%d): %w", opFlatten, state, prog, mem, ErrOutOfSpace)
	}

	return (state*s.ProgSymbols+prog)*s.MemSymbols + mem, nil
}

// Unflatten is the inverse of Flatten.
func (s Space) Unflatten(i int) (state, prog, mem int, err error) {
	if i < 0 || i >= s.Size() {
		return 0, 0, 0, fmt.Errorf("%s(%d): %w", opUnflatten, i, ErrOutOfSpace)
	}
	mem = i % s.MemSymbols
	i /= s.MemSymbols
	prog = i % s.ProgSymbols
	state = i / s.ProgSymbols

	return state, prog, mem, nil
}

// Keys enumerates every specific key in lexicographic order
// (state major, memory symbol fastest).
func (s Space) Keys() []Key {
	keys := make([]Key, 0, s.Size())
	for st := 0; st < s.States; st++ {
		for p := 0; p < s.ProgSymbols; p++ {
			for m := 0; m < s.MemSymbols; m++ {
				keys = append(keys, Specific(st, p, m))
			}
		}
	}

	return keys
}
