// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/duotape/internal/config"
	"github.com/katalvlaran/duotape/internal/logging"
	"github.com/katalvlaran/duotape/internal/telemetry"
	"github.com/katalvlaran/duotape/machine"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const serviceName = "duotape"

// app carries the resolved settings shared by every subcommand.
type app struct {
	configPath string
	seed       int64
	logLevel   string
	jsonOut    bool

	cfg      config.Config
	logger   *slog.Logger
	shutdown func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "duotape",
		Short:         "Random two-tape machines and their transition spectra",
		Long:          `duotape builds a random rule table for a two-tape controller, runs it to halt or budget, and analyzes the sparse transition operator it induces.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.shutdown == nil {
				return nil
			}
			return a.shutdown(cmd.Context())
		},
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML or JSON config file")
	root.PersistentFlags().Int64Var(&a.seed, "seed", 0, "RNG seed (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "JSON output and JSON logs")

	root.AddCommand(newRunCmd(a), newAnalyzeCmd(a), newTableCmd(a), newVersionCmd())

	return root
}

// setup resolves config (defaults < file < env < flags), the logger and tracing.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if a.jsonOut {
		cfg.Log.Format = logging.FormatJSON
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, err := logging.New(level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := telemetry.Setup(ctx, serviceName, version)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}

	a.cfg, a.logger, a.shutdown = cfg, logger, shutdown

	return nil
}

// buildMachine generates the configured machine.
func (a *app) buildMachine() (*machine.Machine, error) {
	p := a.cfg.Params()
	m, err := machine.Build(p, machine.WithSeed(a.cfg.Seed))
	if err != nil {
		return nil, err
	}
	a.logger.Debug("machine built",
		"seed", a.cfg.Seed,
		"rules", m.Table().Len(),
		"states", p.Space.States,
		"program_symbols", p.Space.ProgSymbols,
		"memory_symbols", p.Space.MemSymbols,
	)

	return m, nil
}

// encode writes v as indented JSON or YAML.
func (a *app) encode(w io.Writer, v any) error {
	if a.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return enc.Close()
}
