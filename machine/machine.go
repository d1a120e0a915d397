// SPDX-License-Identifier: MIT

package machine

import (
	"fmt"

	"github.com/katalvlaran/duotape/tape"
)

// Status is the outcome of a Step.
type Status uint8

const (
	// Running means the controller has not reached the halt state yet.
	Running Status = iota
	// Halted means the controller sits in Space.Halt(); further steps are no-ops.
	Halted
)

// String renders "running" or "halted".
func (s Status) String() string {
	if s == Halted {
		return "halted"
	}

	return "running"
}

// Machine is one controller instance: an immutable rule table, two tapes,
// the controller state and both heads. Only Step mutates it.
// A Machine is not safe for concurrent use.
type Machine struct {
	space   Space
	table   *Table
	program *tape.Tape
	memory  *tape.Tape
	state   int
	fault   error // sticky ErrCoverage once resolution has failed
}

// New assembles a machine from explicit parts, starting in state 0 with both
// heads at 0. table may list rules in any order; New sorts them.
//
// Errors: ErrConstruction when the space is invalid, a tape is empty, a tape
// symbol lies outside its alphabet, or any rule key/effect lies outside sp.
// Coverage is NOT checked here; use Table.Uncovered for that.
func New(sp Space, rules []Rule, program, memory []int) (*Machine, error) {
	if err := sp.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	if err := checkCells(program, sp.ProgSymbols); err != nil {
		return nil, constructionErrorf(opNew, "program tape: %v", err)
	}
	if err := checkCells(memory, sp.MemSymbols); err != nil {
		return nil, constructionErrorf(opNew, "memory tape: %v", err)
	}
	tbl := NewTable(rules)
	if err := tbl.validate(sp); err != nil {
		return nil, constructionErrorf(opNew, "%v", err)
	}
	pt, err := tape.New(program)
	if err != nil {
		return nil, constructionErrorf(opNew, "program tape: %v", err)
	}
	mt, err := tape.New(memory)
	if err != nil {
		return nil, constructionErrorf(opNew, "memory tape: %v", err)
	}

	return &Machine{space: sp, table: tbl, program: pt, memory: mt}, nil
}

func checkCells(cells []int, alphabet int) error {
	if len(cells) == 0 {
		return tape.ErrEmptyTape
	}
	for i, s := range cells {
		if s < 0 || s >= alphabet {
			return fmt.Errorf("cell %d holds %d outside [0,%d)", i, s, alphabet)
		}
	}

	return nil
}

// Space returns the instance bounds.
func (m *Machine) Space() Space { return m.space }

// Table returns the shared, immutable rule table.
func (m *Machine) Table() *Table { return m.table }

// State returns the current controller state.
func (m *Machine) State() int { return m.state }

// ProgramHead returns the program head index.
func (m *Machine) ProgramHead() int { return m.program.Head() }

// MemoryHead returns the memory head index.
func (m *Machine) MemoryHead() int { return m.memory.Head() }

// Program returns a copy of the program tape.
func (m *Machine) Program() []int { return m.program.Cells() }

// Memory returns a copy of the memory tape.
func (m *Machine) Memory() []int { return m.memory.Cells() }

// Halted reports whether the controller is in the halt state.
func (m *Machine) Halted() bool { return m.state == m.space.Halt() }

// Key returns the current specific key (state, symbol under program head,
// symbol under memory head).
func (m *Machine) Key() Key {
	return Specific(m.state, m.program.Read(), m.memory.Read())
}

// Step performs one transition. See StepRule.
func (m *Machine) Step() (Status, error) {
	_, st, err := m.StepRule()

	return st, err
}

// StepRule performs one transition and also returns the rule that fired.
//
// Implementation:
//   - Stage 1: a faulted machine returns its fault; a halted one returns Halted
//     without touching tapes, heads or state.
//   - Stage 2: resolve the first matching rule for Key().
//   - Stage 3: apply the program action, then the memory action, then set the state.
//
// Returns Running after a successful transition, even when the new state is
// the halt state; the next call reports Halted.
//
// Errors: ErrCoverage when no rule matches. The machine is left unmodified
// and every later call returns the same error.
// Complexity: O(table size).
func (m *Machine) StepRule() (Rule, Status, error) {
	if m.fault != nil {
		return Rule{}, Running, m.fault
	}
	if m.Halted() {
		return Rule{}, Halted, nil
	}

	key := m.Key()
	r, _, ok := m.table.Resolve(key.State, key.Prog, key.Mem)
	if !ok {
		m.fault = fmt.Errorf("%s: key %s: %w", opStep, key, ErrCoverage)
		return Rule{}, Running, m.fault
	}

	// Effects were validated at construction, so Apply cannot fail here.
	if err := m.program.Apply(r.Effect.Program); err != nil {
		return r, Running, fmt.Errorf("%s: program: %w", opStep, err)
	}
	if err := m.memory.Apply(r.Effect.Memory); err != nil {
		return r, Running, fmt.Errorf("%s: memory: %w", opStep, err)
	}
	m.state = r.Effect.Next

	return r, Running, nil
}

// Snapshot is a value copy of the mutable part of a machine.
type Snapshot struct {
	State       int   `yaml:"state" json:"state"`
	ProgramHead int   `yaml:"program_head" json:"program_head"`
	MemoryHead  int   `yaml:"memory_head" json:"memory_head"`
	Program     []int `yaml:"program" json:"program"`
	Memory      []int `yaml:"memory" json:"memory"`
}

// Snapshot copies the current state, heads and tapes.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		State:       m.state,
		ProgramHead: m.program.Head(),
		MemoryHead:  m.memory.Head(),
		Program:     m.program.Cells(),
		Memory:      m.memory.Cells(),
	}
}

// Clone returns an independent machine sharing the immutable table.
func (m *Machine) Clone() *Machine {
	return &Machine{
		space:   m.space,
		table:   m.table,
		program: m.program.Clone(),
		memory:  m.memory.Clone(),
		state:   m.state,
		fault:   m.fault,
	}
}
