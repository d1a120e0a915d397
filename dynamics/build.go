// SPDX-License-Identifier: MIT

package dynamics

import (
	"context"
	"fmt"

	"github.com/katalvlaran/duotape/machine"
	"github.com/katalvlaran/duotape/matrix"
	"github.com/katalvlaran/duotape/tape"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// minTapeLen is the shortest tape with at least one adjacent pair.
const minTapeLen = 2

// Build assembles the transition operator of table over sp, estimated from snap.
//
// Implementation:
//   - Stage 1: validate the space and the snapshot (length, heads, symbols).
//   - Stage 2: count adjacent pairs on both tapes once.
//   - Stage 3: for every specific rule (optionally only the effective ones),
//     form both marginals, take their product and emit one triplet per
//     nonzero cell; Compile sums coincident triplets.
//
// Errors:
//   - ErrNilTable, ErrTapeTooShort, ErrBadSnapshot.
//   - ErrUnsupportedAction for a program-tape Write.
//   - machine.ErrOutOfSpace (wrapped) when a rule key or next state lies outside sp.
//
// Complexity:
//   - O(len(tapes) + R·P·M) where R is the number of specific rules.
func Build(table *machine.Table, sp machine.Space, snap machine.Snapshot, opts ...Option) (*matrix.CSR, error) {
	cfg := newConfig(opts...)
	_, span := cfg.tracer.Start(context.Background(), "dynamics.Build")
	defer span.End()

	op, err := build(cfg, table, sp, snap)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, dynamicsErrorf(opBuild, err)
	}
	span.SetAttributes(
		attribute.Int("dynamics.dim", op.Rows()),
		attribute.Int("dynamics.nnz", op.NNZ()),
	)

	return op, nil
}

// FromMachine builds the operator of m's table from m's current snapshot.
func FromMachine(m *machine.Machine, opts ...Option) (*matrix.CSR, error) {
	if m == nil {
		return nil, dynamicsErrorf(opBuild, ErrNilTable)
	}

	return Build(m.Table(), m.Space(), m.Snapshot(), opts...)
}

func build(cfg config, table *machine.Table, sp machine.Space, snap machine.Snapshot) (*matrix.CSR, error) {
	if table == nil {
		return nil, ErrNilTable
	}
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	if err := checkSnapshot(sp, snap); err != nil {
		return nil, err
	}

	progAdj := tape.NewAdjacency(snap.Program)
	memAdj := tape.NewAdjacency(snap.Memory)
	progUnder := snap.Program[snap.ProgramHead]
	memUnder := snap.Memory[snap.MemoryHead]

	n := sp.Size()
	trip, err := matrix.NewTriplets(n, n)
	if err != nil {
		return nil, err
	}

	for pos, r := range table.All() {
		k := r.Key
		if !k.IsSpecific() {
			continue
		}
		row, err := sp.Flatten(k.State, k.Prog, k.Mem)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", pos, err)
		}
		if cfg.effectiveOnly {
			if _, first, ok := table.Resolve(k.State, k.Prog, k.Mem); !ok || first != pos {
				continue
			}
		}

		progOut, err := outcomes(r.Effect.Program, k.Prog, progAdj, progUnder, false)
		if err != nil {
			return nil, fmt.Errorf("rule %d program: %w", pos, err)
		}
		memOut, err := outcomes(r.Effect.Memory, k.Mem, memAdj, memUnder, true)
		if err != nil {
			return nil, fmt.Errorf("rule %d memory: %w", pos, err)
		}
		if progOut.Total() == 0 || memOut.Total() == 0 {
			continue
		}

		for i, pc := range progOut {
			for j, mc := range memOut {
				col, err := sp.Flatten(r.Effect.Next, pc.Symbol, mc.Symbol)
				if err != nil {
					return nil, fmt.Errorf("rule %d target: %w", pos, err)
				}
				if err := trip.Add(row, col, progOut.Prob(i)*memOut.Prob(j)); err != nil {
					return nil, err
				}
			}
		}
	}

	return trip.Compile(), nil
}

// outcomes returns the distribution of the symbol under the head after a.
// sym is the symbol the rule was keyed on; under is the symbol currently
// under the head in the snapshot.
func outcomes(a tape.Action, sym int, adj *tape.Adjacency, under int, writable bool) (tape.Histogram, error) {
	switch a.Op {
	case tape.OpRight:
		return adj.Successors(sym), nil
	case tape.OpLeft:
		return adj.Predecessors(sym), nil
	case tape.OpStay:
		return tape.PointMass(under), nil
	case tape.OpWrite:
		if !writable {
			return nil, fmt.Errorf("%s: %w", a, ErrUnsupportedAction)
		}

		return tape.PointMass(a.Symbol), nil
	default:
		return nil, fmt.Errorf("%s: %w", a, ErrUnsupportedAction)
	}
}

func checkSnapshot(sp machine.Space, snap machine.Snapshot) error {
	if len(snap.Program) < minTapeLen {
		return fmt.Errorf("program length %d: %w", len(snap.Program), ErrTapeTooShort)
	}
	if len(snap.Memory) < minTapeLen {
		return fmt.Errorf("memory length %d: %w", len(snap.Memory), ErrTapeTooShort)
	}
	if snap.ProgramHead < 0 || snap.ProgramHead >= len(snap.Program) {
		return fmt.Errorf("program head %d: %w", snap.ProgramHead, ErrBadSnapshot)
	}
	if snap.MemoryHead < 0 || snap.MemoryHead >= len(snap.Memory) {
		return fmt.Errorf("memory head %d: %w", snap.MemoryHead, ErrBadSnapshot)
	}
	for i, c := range snap.Program {
		if c < 0 || c >= sp.ProgSymbols {
			return fmt.Errorf("program cell %d = %d: %w", i, c, ErrBadSnapshot)
		}
	}
	for i, c := range snap.Memory {
		if c < 0 || c >= sp.MemSymbols {
			return fmt.Errorf("memory cell %d = %d: %w", i, c, ErrBadSnapshot)
		}
	}

	return nil
}
