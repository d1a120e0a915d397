// SPDX-License-Identifier: MIT

package machine

import (
	"cmp"
	"fmt"

	"github.com/katalvlaran/duotape/tape"
)

// Effect is the right-hand side of a rule.
type Effect struct {
	Next    int         `yaml:"next" json:"next"`
	Program tape.Action `yaml:"program" json:"program"`
	Memory  tape.Action `yaml:"memory" json:"memory"`
}

// Priority orders rules: Tier first, Rank breaks ties. Lower fires first.
type Priority struct {
	Tier uint `yaml:"tier" json:"tier"`
	Rank uint `yaml:"rank" json:"rank"`
}

// Compare is a strict lexicographic comparison of (Tier, Rank) across both
// operands. It returns -1, 0 or +1.
func (p Priority) Compare(q Priority) int {
	if c := cmp.Compare(p.Tier, q.Tier); c != 0 {
		return c
	}

	return cmp.Compare(p.Rank, q.Rank)
}

// Less reports p < q under Compare.
func (p Priority) Less(q Priority) bool { return p.Compare(q) < 0 }

// Rule is one transition: when Key matches, apply Effect.
type Rule struct {
	Key      Key      `yaml:"key" json:"key"`
	Effect   Effect   `yaml:"effect" json:"effect"`
	Priority Priority `yaml:"priority" json:"priority"`
}

// String renders "key -> (next, prog, mem) @tier/rank".
func (r Rule) String() string {
	return fmt.Sprintf("%s -> (%d, %s, %s) @%d/%d",
		r.Key, r.Effect.Next, r.Effect.Program, r.Effect.Memory,
		r.Priority.Tier, r.Priority.Rank)
}

// validate checks the rule against sp. Writes are accepted on either tape;
// their symbol must belong to that tape's alphabet.
func (r Rule) validate(sp Space) error {
	if !r.Key.within(sp) {
		return fmt.Errorf("key %s outside space", r.Key)
	}
	if r.Effect.Next < 0 || r.Effect.Next >= sp.States {
		return fmt.Errorf("rule %s: next state %d outside [0,%d)", r.Key, r.Effect.Next, sp.States)
	}
	if err := validateAction(r.Effect.Program, sp.ProgSymbols); err != nil {
		return fmt.Errorf("rule %s: program %w", r.Key, err)
	}
	if err := validateAction(r.Effect.Memory, sp.MemSymbols); err != nil {
		return fmt.Errorf("rule %s: memory %w", r.Key, err)
	}

	return nil
}

func validateAction(a tape.Action, alphabet int) error {
	if !a.Valid() {
		return fmt.Errorf("action %s: %w", a, tape.ErrUnknownAction)
	}
	if a.IsWrite() && (a.Symbol < 0 || a.Symbol >= alphabet) {
		return fmt.Errorf("write symbol %d outside [0,%d)", a.Symbol, alphabet)
	}

	return nil
}
