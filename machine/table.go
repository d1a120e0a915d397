// SPDX-License-Identifier: MIT

package machine

import (
	"iter"
	"slices"
)

// Table is an immutable, priority-ordered rule list.
// It is safe to share between a running Machine and the dynamics builder.
type Table struct {
	rules []Rule
}

// NewTable copies rules and sorts them ascending by Priority with a stable
// sort: rules with equal (Tier, Rank) keep the order they were given in.
// Complexity: O(n log n).
func NewTable(rules []Rule) *Table {
	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b Rule) int {
		return a.Priority.Compare(b.Priority)
	})

	return &Table{rules: sorted}
}

// Len returns the number of rules.
func (t *Table) Len() int { return len(t.rules) }

// Rule returns the i-th rule in resolution order.
func (t *Table) Rule(i int) Rule { return t.rules[i] }

// Rules returns a copy of the rules in resolution order.
func (t *Table) Rules() []Rule { return slices.Clone(t.rules) }

// All iterates (position, rule) in resolution order.
func (t *Table) All() iter.Seq2[int, Rule] {
	return func(yield func(int, Rule) bool) {
		for i, r := range t.rules {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Resolve returns the first rule whose key matches (state, prog, mem) and
// its position. ok is false when nothing matches.
// Complexity: O(n) scan.
func (t *Table) Resolve(state, prog, mem int) (r Rule, pos int, ok bool) {
	for i, cand := range t.rules {
		if cand.Key.Matches(state, prog, mem) {
			return cand, i, true
		}
	}

	return Rule{}, -1, false
}

// Uncovered lists, in lexicographic order, every non-halt specific key of sp
// that no rule matches. An empty result means Step can never fail with
// ErrCoverage on this table.
func (t *Table) Uncovered(sp Space) []Key {
	var out []Key
	for _, k := range sp.Keys() {
		if k.State == sp.Halt() {
			continue
		}
		if _, _, ok := t.Resolve(k.State, k.Prog, k.Mem); !ok {
			out = append(out, k)
		}
	}

	return out
}

func (t *Table) validate(sp Space) error {
	for _, r := range t.rules {
		if err := r.validate(sp); err != nil {
			return err
		}
	}

	return nil
}
