// SPDX-License-Identifier: MIT

package main

import (
	"github.com/katalvlaran/duotape/machine"
	"github.com/spf13/cobra"
)

// ruleView is the printed form of one rule.
type ruleView struct {
	Key     string `yaml:"key" json:"key"`
	Next    int    `yaml:"next" json:"next"`
	Program string `yaml:"program" json:"program"`
	Memory  string `yaml:"memory" json:"memory"`
	Tier    uint   `yaml:"tier" json:"tier"`
	Rank    uint   `yaml:"rank" json:"rank"`
}

type tableReport struct {
	Seed      int64            `yaml:"seed" json:"seed"`
	Space     machine.Space    `yaml:"space" json:"space"`
	Rules     []ruleView       `yaml:"rules" json:"rules"`
	Uncovered []string         `yaml:"uncovered,omitempty" json:"uncovered,omitempty"`
	Reachable []int            `yaml:"reachable_states" json:"reachable_states"`
	CanHalt   bool             `yaml:"halt_reachable" json:"halt_reachable"`
	Snapshot  machine.Snapshot `yaml:"snapshot" json:"snapshot"`
}

func newTableCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the generated rule table in resolution order",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.buildMachine()
			if err != nil {
				return err
			}

			rep := tableReport{Seed: a.cfg.Seed, Space: m.Space(), Snapshot: m.Snapshot()}
			for _, r := range m.Table().All() {
				rep.Rules = append(rep.Rules, ruleView{
					Key:     r.Key.String(),
					Next:    r.Effect.Next,
					Program: r.Effect.Program.String(),
					Memory:  r.Effect.Memory.String(),
					Tier:    r.Priority.Tier,
					Rank:    r.Priority.Rank,
				})
			}
			for _, k := range m.Table().Uncovered(m.Space()) {
				rep.Uncovered = append(rep.Uncovered, k.String())
			}

			reach := m.Table().ReachFrom(m.Space(), 0)
			rep.Reachable = reach.Order
			rep.CanHalt = reach.Reachable(m.Space().Halt())

			return a.encode(cmd.OutOrStdout(), rep)
		},
	}
}
