// SPDX-License-Identifier: MIT

package machine

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/duotape/tape"
)

// Params are the construction inputs of Build.
type Params struct {
	SpecificRules int   `yaml:"specific_rules" json:"specific_rules"`
	ProgramLength int   `yaml:"program_length" json:"program_length"`
	MemoryLength  int   `yaml:"memory_length" json:"memory_length"`
	Space         Space `yaml:",inline" json:"space"`
}

// Validate rejects parameters Build cannot honor.
func (p Params) Validate() error {
	if err := p.Space.Validate(); err != nil {
		return err
	}
	if p.SpecificRules < 0 {
		return fmt.Errorf("specific rules=%d (need ≥ 0): %w", p.SpecificRules, ErrConstruction)
	}
	if p.ProgramLength <= 0 {
		return fmt.Errorf("program length=%d (need > 0): %w", p.ProgramLength, ErrConstruction)
	}
	if p.MemoryLength <= 0 {
		return fmt.Errorf("memory length=%d (need > 0): %w", p.MemoryLength, ErrConstruction)
	}
	// One unique rank per base rule must be available from the pool.
	if base := p.Space.States + p.Space.ProgSymbols + p.Space.MemSymbols; p.Space.Size() < base {
		return fmt.Errorf("rank pool of %d cannot cover %d base rules: %w", p.Space.Size(), base, ErrConstruction)
	}

	return nil
}

// programActions is the uniform support for program-tape actions.
var programActions = [...]tape.Action{tape.Right(), tape.Left(), tape.Stay()}

// Build generates a random machine instance.
//
// Implementation:
//   - Stage 1: validate params and require an RNG (WithRand/WithSeed).
//   - Stage 2: shuffle the rank pool [0, States*ProgSymbols*MemSymbols).
//   - Stage 3: emit one StateOnly rule per state, one ProgOnly rule per program
//     symbol and one MemOnly rule per memory symbol, tier = Key.Width, rank
//     popped from the end of the pool.
//   - Stage 4: emit SpecificRules random specific rules at priority (0,0).
//   - Stage 5: specific rules first, then base rules; stable sort by priority.
//   - Stage 6: uniform random program tape, zero memory tape.
//
// Every specific key is matched by at least its StateOnly base rule, so the
// resulting table never triggers ErrCoverage.
//
// Determinism: identical params and RNG state yield identical machines.
// Complexity: O(States*ProgSymbols*MemSymbols + R log R + tape lengths).
func Build(p Params, opts ...Option) (*Machine, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opBuild, err)
	}
	cfg := newBuildConfig(opts...)
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", opBuild, ErrNeedRandSource)
	}
	rng, sp := cfg.rng, p.Space

	pool := rng.Perm(sp.Size())
	popRank := func() uint {
		r := pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		return uint(r)
	}

	base := make([]Rule, 0, sp.States+sp.ProgSymbols+sp.MemSymbols)
	emit := func(k Key) {
		base = append(base, Rule{
			Key:      k,
			Effect:   randomEffect(rng, sp),
			Priority: Priority{Tier: uint(k.Width(sp)), Rank: popRank()},
		})
	}
	for s := 0; s < sp.States; s++ {
		emit(StateOnly(s))
	}
	for ps := 0; ps < sp.ProgSymbols; ps++ {
		emit(ProgOnly(ps))
	}
	for ms := 0; ms < sp.MemSymbols; ms++ {
		emit(MemOnly(ms))
	}

	rules := make([]Rule, 0, p.SpecificRules+len(base))
	for i := 0; i < p.SpecificRules; i++ {
		k := Specific(rng.Intn(sp.States), rng.Intn(sp.ProgSymbols), rng.Intn(sp.MemSymbols))
		rules = append(rules, Rule{Key: k, Effect: randomEffect(rng, sp)})
	}
	rules = append(rules, base...)

	program, err := tape.Random(p.ProgramLength, sp.ProgSymbols, rng)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBuild, err)
	}
	memory, err := tape.Zeros(p.MemoryLength)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBuild, err)
	}

	return &Machine{
		space:   sp,
		table:   NewTable(rules),
		program: program,
		memory:  memory,
	}, nil
}

// randomEffect draws next state uniformly from [0, States), a program action
// uniformly from {right, left, stay} and a memory action uniformly from
// {right, left, stay, write(uniform symbol)}.
func randomEffect(rng *rand.Rand, sp Space) Effect {
	next := rng.Intn(sp.States)
	prog := programActions[rng.Intn(len(programActions))]

	var mem tape.Action
	switch rng.Intn(4) {
	case 0:
		mem = tape.Right()
	case 1:
		mem = tape.Left()
	case 2:
		mem = tape.Stay()
	default:
		mem = tape.Write(rng.Intn(sp.MemSymbols))
	}

	return Effect{Next: next, Program: prog, Memory: mem}
}
