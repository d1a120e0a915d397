// SPDX-License-Identifier: MIT

package main

import (
	"github.com/katalvlaran/duotape/dynamics"
	"github.com/katalvlaran/duotape/matrix"
	"github.com/spf13/cobra"
)

// analysisReport is the printed form of one analysis.
type analysisReport struct {
	Seed        int64            `yaml:"seed" json:"seed"`
	Dim         int              `yaml:"dim" json:"dim"`
	NNZ         int              `yaml:"nnz" json:"nnz"`
	Radius      float64          `yaml:"spectral_radius" json:"spectral_radius"`
	Eigenvalues []dynamics.Eigen `yaml:"eigenvalues" json:"eigenvalues"`
	Operator    [][]float64      `yaml:"operator,omitempty" json:"operator,omitempty"`
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		k             int
		effectiveOnly bool
		withOperator  bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Build the transition operator of a random machine and print its leading eigenvalues",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("eigenvalues") {
				a.cfg.Eigenvalues = k
			}
			if cmd.Flags().Changed("effective-only") {
				a.cfg.EffectiveOnly = effectiveOnly
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			m, err := a.buildMachine()
			if err != nil {
				return err
			}
			var buildOpts []dynamics.Option
			if a.cfg.EffectiveOnly {
				buildOpts = append(buildOpts, dynamics.EffectiveOnly())
			}
			op, err := dynamics.FromMachine(m, buildOpts...)
			if err != nil {
				return err
			}

			logSpectrum := dynamics.AnalyzerFunc(func(s dynamics.Spectrum) error {
				a.logger.Info("spectrum", "dim", s.Dim, "nnz", s.NNZ, "radius", s.Radius(), "k", len(s.Values))
				return nil
			})
			s, err := dynamics.Analyze(op,
				dynamics.WithEigenvalues(a.cfg.Eigenvalues),
				dynamics.WithAnalyzer(logSpectrum),
			)
			if err != nil {
				return err
			}

			rep := analysisReport{
				Seed:        a.cfg.Seed,
				Dim:         s.Dim,
				NNZ:         s.NNZ,
				Radius:      s.Radius(),
				Eigenvalues: s.Eigens(),
			}
			if withOperator {
				if rep.Operator, err = denseRows(op.ToDense()); err != nil {
					return err
				}
			}

			return a.encode(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().IntVarP(&k, "eigenvalues", "k", 0, "number of leading eigenvalues to keep (overrides config)")
	cmd.Flags().BoolVar(&effectiveOnly, "effective-only", false, "ignore specific rules shadowed by earlier rules")
	cmd.Flags().BoolVar(&withOperator, "operator", false, "include the dense transition operator in the report")

	return cmd
}

// denseRows copies d into row slices for printing.
func denseRows(d *matrix.Dense) ([][]float64, error) {
	out := make([][]float64, d.Rows())
	for i := range out {
		out[i] = make([]float64, d.Cols())
		for j := range out[i] {
			v, err := d.At(i, j)
			if err != nil {
				return nil, err
			}
			out[i][j] = v
		}
	}

	return out, nil
}
