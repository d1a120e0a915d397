// SPDX-License-Identifier: MIT

package machine_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/duotape/machine"
	"github.com/katalvlaran/duotape/tape"
	"github.com/stretchr/testify/require"
)

func defaultParams() machine.Params {
	return machine.Params{
		SpecificRules: 50,
		ProgramLength: 100,
		MemoryLength:  100,
		Space:         machine.Space{States: 2, ProgSymbols: 2, MemSymbols: 2},
	}
}

// TestBuildValidation ensures invalid params are rejected before generation.
func TestBuildValidation(t *testing.T) {
	mutate := []func(*machine.Params){
		func(p *machine.Params) { p.Space.States = 1 },
		func(p *machine.Params) { p.Space.ProgSymbols = 0 },
		func(p *machine.Params) { p.Space.MemSymbols = 0 },
		func(p *machine.Params) { p.ProgramLength = 0 },
		func(p *machine.Params) { p.MemoryLength = -3 },
		func(p *machine.Params) { p.SpecificRules = -1 },
		// Rank pool 2*1*1 = 2 is smaller than the 4 base rules.
		func(p *machine.Params) { p.Space = machine.Space{States: 2, ProgSymbols: 1, MemSymbols: 1} },
	}
	for i, fn := range mutate {
		p := defaultParams()
		fn(&p)
		_, err := machine.Build(p, machine.WithSeed(1))
		require.ErrorIs(t, err, machine.ErrConstruction, "case %d", i)
	}
}

func TestBuildNeedsRand(t *testing.T) {
	_, err := machine.Build(defaultParams())
	require.ErrorIs(t, err, machine.ErrNeedRandSource)

	require.Panics(t, func() { machine.WithRand(nil) })
}

// TestBuildShape checks rule counts, tiers, tapes and the initial configuration.
func TestBuildShape(t *testing.T) {
	p := machine.Params{
		SpecificRules: 7,
		ProgramLength: 32,
		MemoryLength:  16,
		Space:         machine.Space{States: 4, ProgSymbols: 3, MemSymbols: 2},
	}
	m, err := machine.Build(p, machine.WithSeed(11))
	require.NoError(t, err)

	sp := p.Space
	tbl := m.Table()
	require.Equal(t, 7+4+3+2, tbl.Len())

	var specific, stateOnly, progOnly, memOnly int
	for _, r := range tbl.All() {
		switch r.Key.Kind {
		case machine.KindSpecific:
			specific++
			require.Equal(t, machine.Priority{}, r.Priority)
		case machine.KindStateOnly:
			stateOnly++
			require.Equal(t, uint(sp.ProgSymbols*sp.MemSymbols), r.Priority.Tier)
		case machine.KindProgOnly:
			progOnly++
			require.Equal(t, uint(sp.States*sp.MemSymbols), r.Priority.Tier)
		case machine.KindMemOnly:
			memOnly++
			require.Equal(t, uint(sp.States*sp.ProgSymbols), r.Priority.Tier)
		default:
			t.Fatalf("unexpected key kind %v", r.Key.Kind)
		}

		require.GreaterOrEqual(t, r.Effect.Next, 0)
		require.Less(t, r.Effect.Next, sp.States)
		require.False(t, r.Effect.Program.IsWrite(), "program tape never receives writes")
		if r.Effect.Memory.IsWrite() {
			require.Less(t, r.Effect.Memory.Symbol, sp.MemSymbols)
		}
	}
	require.Equal(t, [4]int{7, 4, 3, 2}, [4]int{specific, stateOnly, progOnly, memOnly})

	require.Len(t, m.Program(), 32)
	for _, s := range m.Program() {
		require.Less(t, s, sp.ProgSymbols)
	}
	require.Equal(t, make([]int, 16), m.Memory())
	require.Equal(t, 0, m.State())
	require.Equal(t, 0, m.ProgramHead())
	require.Equal(t, 0, m.MemoryHead())
}

// TestBuildSortedAndSpecificFirst verifies ascending priority order with specific rules first.
func TestBuildSortedAndSpecificFirst(t *testing.T) {
	m, err := machine.Build(defaultParams(), machine.WithSeed(3))
	require.NoError(t, err)

	rules := m.Table().Rules()
	for i := 1; i < len(rules); i++ {
		require.LessOrEqual(t, rules[i-1].Priority.Compare(rules[i].Priority), 0)
	}
	for i := 0; i < 50; i++ {
		require.True(t, rules[i].Key.IsSpecific())
	}
	for _, r := range rules[50:] {
		require.False(t, r.Key.IsSpecific())
	}
}

// TestBuildUniqueBasePriorities asserts no two base wildcard rules share (tier, rank).
func TestBuildUniqueBasePriorities(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		m, err := machine.Build(machine.Params{
			SpecificRules: 5,
			ProgramLength: 8,
			MemoryLength:  8,
			Space:         machine.Space{States: 3, ProgSymbols: 3, MemSymbols: 3},
		}, machine.WithSeed(seed))
		require.NoError(t, err)

		seen := make(map[machine.Priority]bool)
		ranks := make(map[uint]bool)
		for _, r := range m.Table().All() {
			if r.Key.IsSpecific() {
				continue
			}
			require.False(t, seen[r.Priority], "seed %d duplicate priority %+v", seed, r.Priority)
			require.False(t, ranks[r.Priority.Rank], "seed %d duplicate rank %d", seed, r.Priority.Rank)
			seen[r.Priority] = true
			ranks[r.Priority.Rank] = true
			require.Less(t, r.Priority.Rank, uint(27))
		}
		require.Len(t, seen, 9)
	}
}

// TestBuildDeterministic ensures identical seeds give identical instances.
func TestBuildDeterministic(t *testing.T) {
	a, err := machine.Build(defaultParams(), machine.WithSeed(42))
	require.NoError(t, err)
	b, err := machine.Build(defaultParams(), machine.WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)

	require.Equal(t, a.Table().Rules(), b.Table().Rules())
	require.Equal(t, a.Program(), b.Program())
}

// TestBuildCoverage runs many random instances to the halt state or a budget
// and asserts resolution never fails.
func TestBuildCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	for i := 0; i < 60; i++ {
		sp := machine.Space{
			States:      2 + rng.Intn(4),
			ProgSymbols: 1 + rng.Intn(3),
			MemSymbols:  1 + rng.Intn(3),
		}
		p := machine.Params{
			SpecificRules: rng.Intn(20),
			ProgramLength: 1 + rng.Intn(12),
			MemoryLength:  1 + rng.Intn(12),
			Space:         sp,
		}
		if p.Validate() != nil {
			continue // rank pool too small for this draw
		}
		m, err := machine.Build(p, machine.WithRand(rng))
		require.NoError(t, err)
		require.Empty(t, m.Table().Uncovered(sp))

		for step := 0; step < 500; step++ {
			st, err := m.Step()
			require.NoError(t, err)
			if st == machine.Halted {
				break
			}
		}
	}
}

func TestRandomEffectDistributionCoversAllActions(t *testing.T) {
	m, err := machine.Build(machine.Params{
		SpecificRules: 400,
		ProgramLength: 4,
		MemoryLength:  4,
		Space:         machine.Space{States: 3, ProgSymbols: 2, MemSymbols: 2},
	}, machine.WithSeed(9))
	require.NoError(t, err)

	progOps := make(map[tape.Op]int)
	memOps := make(map[tape.Op]int)
	for _, r := range m.Table().All() {
		progOps[r.Effect.Program.Op]++
		memOps[r.Effect.Memory.Op]++
	}
	require.Len(t, progOps, 3)
	require.Zero(t, progOps[tape.OpWrite])
	require.Len(t, memOps, 4)
}
