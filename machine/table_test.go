// SPDX-License-Identifier: MIT

package machine_test

import (
	"testing"

	"github.com/katalvlaran/duotape/machine"
	"github.com/katalvlaran/duotape/tape"
	"github.com/stretchr/testify/require"
)

// TestPriorityCompare pins the explicit total order: Tier first, then Rank,
// compared across both operands.
func TestPriorityCompare(t *testing.T) {
	p := func(tier, rank uint) machine.Priority { return machine.Priority{Tier: tier, Rank: rank} }

	require.Equal(t, 0, p(3, 4).Compare(p(3, 4)))
	require.Equal(t, -1, p(1, 9).Compare(p(2, 0)), "lower tier wins regardless of rank")
	require.Equal(t, 1, p(2, 0).Compare(p(1, 9)))
	require.Equal(t, -1, p(2, 1).Compare(p(2, 5)), "same tier: lower rank wins")
	require.Equal(t, 1, p(2, 5).Compare(p(2, 1)))
	require.True(t, p(0, 0).Less(p(0, 1)))
	require.False(t, p(0, 1).Less(p(0, 1)))
}

// TestNewTableStableOrder verifies sorting by priority and that rules with
// identical priority keep their insertion order.
func TestNewTableStableOrder(t *testing.T) {
	eff := machine.Effect{Next: 0, Program: tape.Stay(), Memory: tape.Stay()}
	in := []machine.Rule{
		{Key: machine.StateOnly(0), Effect: eff, Priority: machine.Priority{Tier: 4, Rank: 1}},
		{Key: machine.Specific(0, 0, 0), Effect: eff},
		{Key: machine.ProgOnly(0), Effect: eff, Priority: machine.Priority{Tier: 4, Rank: 0}},
		{Key: machine.Specific(0, 1, 0), Effect: eff},
	}
	tbl := machine.NewTable(in)
	require.Equal(t, 4, tbl.Len())

	got := make([]machine.Key, 0, tbl.Len())
	for _, r := range tbl.All() {
		got = append(got, r.Key)
	}
	require.Equal(t, []machine.Key{
		machine.Specific(0, 0, 0),
		machine.Specific(0, 1, 0),
		machine.ProgOnly(0),
		machine.StateOnly(0),
	}, got)

	// Input slice untouched; Rules returns a copy.
	require.Equal(t, machine.StateOnly(0), in[0].Key)
	rs := tbl.Rules()
	rs[0].Key = machine.MemOnly(0)
	require.Equal(t, machine.Specific(0, 0, 0), tbl.Rule(0).Key)
}

// TestResolveFirstMatch checks that resolution returns the first matching rule in order.
func TestResolveFirstMatch(t *testing.T) {
	eff := machine.Effect{Program: tape.Stay(), Memory: tape.Stay()}
	tbl := machine.NewTable([]machine.Rule{
		{Key: machine.MemOnly(0), Effect: eff, Priority: machine.Priority{Tier: 10, Rank: 1}},
		{Key: machine.AnyMem(2, 0), Effect: eff, Priority: machine.Priority{Tier: 2, Rank: 7}},
		{Key: machine.Specific(1, 1, 1), Effect: eff},
	})

	r, pos, ok := tbl.Resolve(2, 0, 0)
	require.True(t, ok)
	require.Equal(t, 1, pos)
	require.Equal(t, machine.AnyMem(2, 0), r.Key)

	r, _, ok = tbl.Resolve(1, 1, 1)
	require.True(t, ok)
	require.Equal(t, machine.Specific(1, 1, 1), r.Key)

	_, pos, ok = tbl.Resolve(1, 0, 1)
	require.False(t, ok)
	require.Equal(t, -1, pos)
}

// TestUncovered lists non-halt specific keys without a matching rule.
func TestUncovered(t *testing.T) {
	sp := machine.Space{States: 3, ProgSymbols: 2, MemSymbols: 1}
	eff := machine.Effect{Program: tape.Stay(), Memory: tape.Stay()}
	tbl := machine.NewTable([]machine.Rule{
		{Key: machine.StateOnly(0), Effect: eff, Priority: machine.Priority{Tier: 2}},
		{Key: machine.Specific(1, 1, 0), Effect: eff},
	})

	require.Equal(t, []machine.Key{machine.Specific(1, 0, 0)}, tbl.Uncovered(sp))
}
