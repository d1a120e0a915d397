// SPDX-License-Identifier: MIT

// Package config loads run settings from defaults, an optional YAML/JSON
// file and DUOTAPE_* environment variables, in that order of precedence
// (later wins). Command-line flags are applied on top by the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/katalvlaran/duotape/machine"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DUOTAPE_"

// ErrInvalidConfig is returned when loaded settings fail validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level" json:"level" env:"LEVEL"`
	Format string `yaml:"format" json:"format" env:"FORMAT"`
}

// Config is the full set of run settings.
type Config struct {
	Seed          int64  `yaml:"seed" json:"seed" env:"SEED"`
	SpecificRules int    `yaml:"specific_rules" json:"specific_rules" env:"SPECIFIC_RULES"`
	ProgramLength int    `yaml:"program_length" json:"program_length" env:"PROGRAM_LENGTH"`
	MemoryLength  int    `yaml:"memory_length" json:"memory_length" env:"MEMORY_LENGTH"`
	States        int    `yaml:"states" json:"states" env:"STATES"`
	ProgSymbols   int    `yaml:"program_symbols" json:"program_symbols" env:"PROGRAM_SYMBOLS"`
	MemSymbols    int    `yaml:"memory_symbols" json:"memory_symbols" env:"MEMORY_SYMBOLS"`
	MaxSteps      int    `yaml:"max_steps" json:"max_steps" env:"MAX_STEPS"`
	Eigenvalues   int    `yaml:"eigenvalues" json:"eigenvalues" env:"EIGENVALUES"`
	EffectiveOnly bool   `yaml:"effective_only" json:"effective_only" env:"EFFECTIVE_ONLY"`
	MetricsAddr   string `yaml:"metrics_addr" json:"metrics_addr" env:"METRICS_ADDR"`
	Log           Log    `yaml:"log" json:"log" envPrefix:"LOG_"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Seed:          1,
		SpecificRules: 50,
		ProgramLength: 100,
		MemoryLength:  100,
		States:        2,
		ProgSymbols:   2,
		MemSymbols:    2,
		MaxSteps:      1000,
		Eigenvalues:   6,
		Log:           Log{Level: "info", Format: "text"},
	}
}

// Load returns Default overlaid with the file at path (skipped when path is
// empty) and then with the environment. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		return nil
	}
	// Default to YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// Params converts the machine-shaping settings into machine.Params.
func (c Config) Params() machine.Params {
	return machine.Params{
		SpecificRules: c.SpecificRules,
		ProgramLength: c.ProgramLength,
		MemoryLength:  c.MemoryLength,
		Space: machine.Space{
			States:      c.States,
			ProgSymbols: c.ProgSymbols,
			MemSymbols:  c.MemSymbols,
		},
	}
}

// Validate checks every field; errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("%w: max_steps=%d (need > 0)", ErrInvalidConfig, c.MaxSteps)
	}
	if c.Eigenvalues <= 0 {
		return fmt.Errorf("%w: eigenvalues=%d (need > 0)", ErrInvalidConfig, c.Eigenvalues)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format=%q (want text or json)", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}
