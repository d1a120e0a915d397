// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/duotape/internal/logging"
	"github.com/katalvlaran/duotape/machine"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxSteps is the step budget when WithMaxSteps is not given.
const DefaultMaxSteps = 1000

// ErrNilMachine is returned by Run for a nil machine.
var ErrNilMachine = errors.New("runner: nil machine")

// Runner drives a machine's step loop.
type Runner struct {
	// MaxSteps bounds a single Run.
	MaxSteps int

	// Logger is used for run and step logging.
	// New installs a no-op logger; WithLogger(nil) keeps it.
	Logger *slog.Logger

	// Metrics, when set, records steps and run outcomes.
	Metrics *Metrics

	Hooks  Hooks
	Tracer trace.Tracer
}

// Result summarizes a Run.
type Result struct {
	Steps     int              `yaml:"steps" json:"steps"`
	Halted    bool             `yaml:"halted" json:"halted"`
	Exhausted bool             `yaml:"exhausted" json:"exhausted"`
	Outcome   string           `yaml:"outcome" json:"outcome"`
	Final     machine.Snapshot `yaml:"final" json:"final"`
}

// New creates a Runner with DefaultMaxSteps and a no-op logger.
func New(opts ...Option) *Runner {
	r := &Runner{
		MaxSteps: DefaultMaxSteps,
		Logger:   logging.NewNop(),
		Tracer:   otel.Tracer("github.com/katalvlaran/duotape/runner"),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run steps m until it halts, MaxSteps transitions were applied, a step
// fails, or ctx is done. A halted machine is not an error and neither is an
// exhausted budget (Result.Exhausted). Step and context errors are returned
// wrapped together with the partial Result.
func (r *Runner) Run(ctx context.Context, m *machine.Machine) (Result, error) {
	if m == nil {
		return Result{}, ErrNilMachine
	}
	ctx, span := r.Tracer.Start(ctx, "runner.Run", trace.WithAttributes(
		attribute.Int("runner.max_steps", r.MaxSteps),
		attribute.Int("machine.states", m.Space().States),
		attribute.Int("machine.rules", m.Table().Len()),
	))
	defer span.End()

	var res Result
	finish := func(outcome string, err error) (Result, error) {
		res.Outcome = outcome
		res.Final = m.Snapshot()
		r.Metrics.finish(outcome, res.Steps)
		span.SetAttributes(
			attribute.Int("runner.steps", res.Steps),
			attribute.String("runner.outcome", outcome),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			r.Logger.Error("run failed", "steps", res.Steps, "outcome", outcome, "error", err)

			return res, err
		}
		r.Logger.Info("run finished", "steps", res.Steps, "outcome", outcome, "state", m.State())

		return res, nil
	}

	for {
		if m.Halted() {
			res.Halted = true
			out, err := finish(OutcomeHalted, nil)
			r.Hooks.halt(ctx, out)

			return out, err
		}
		if res.Steps >= r.MaxSteps {
			res.Exhausted = true

			return finish(OutcomeExhausted, nil)
		}
		if err := ctx.Err(); err != nil {
			return finish(OutcomeCanceled, fmt.Errorf("Run: after %d steps: %w", res.Steps, err))
		}

		rule, _, err := m.StepRule()
		if err != nil {
			if errors.Is(err, machine.ErrCoverage) {
				r.Metrics.coverage()
			}

			return finish(OutcomeFault, fmt.Errorf("Run: after %d steps: %w", res.Steps, err))
		}
		res.Steps++
		r.Metrics.step()

		e := StepEvent{
			Step:        res.Steps,
			Rule:        rule,
			State:       m.State(),
			ProgramHead: m.ProgramHead(),
			MemoryHead:  m.MemoryHead(),
		}
		r.Logger.Debug("step", "n", e.Step, "rule", rule.String(), "state", e.State)
		r.Hooks.step(ctx, e)
	}
}
