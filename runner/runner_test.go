package runner_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/duotape/machine"
	"github.com/katalvlaran/duotape/runner"
	"github.com/katalvlaran/duotape/tape"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// stateRule moves from state `from` to `to`, stepping the program head right.
func stateRule(from, to int) machine.Rule {
	return machine.Rule{
		Key:    machine.StateOnly(from),
		Effect: machine.Effect{Next: to, Program: tape.Right(), Memory: tape.Stay()},
	}
}

func newMachine(t *testing.T, states int, rules ...machine.Rule) *machine.Machine {
	t.Helper()
	sp := machine.Space{States: states, ProgSymbols: 2, MemSymbols: 2}
	m, err := machine.New(sp, rules, []int{0, 1, 0}, []int{0, 0})
	require.NoError(t, err)

	return m
}

func TestRunHalts(t *testing.T) {
	m := newMachine(t, 3, stateRule(0, 1), stateRule(1, 2))

	var halted []runner.Result
	var steps []runner.StepEvent
	r := runner.New(runner.WithHooks(runner.Hooks{
		OnStep: func(_ context.Context, e runner.StepEvent) { steps = append(steps, e) },
		OnHalt: func(_ context.Context, res runner.Result) { halted = append(halted, res) },
	}))

	res, err := r.Run(context.Background(), m)
	require.NoError(t, err)
	require.True(t, res.Halted)
	require.False(t, res.Exhausted)
	require.Equal(t, 2, res.Steps)
	require.Equal(t, runner.OutcomeHalted, res.Outcome)
	require.Equal(t, 2, res.Final.State)
	require.Equal(t, 2, res.Final.ProgramHead)

	require.Len(t, steps, 2)
	require.Equal(t, 1, steps[0].Step)
	require.Equal(t, 1, steps[0].State)
	require.Equal(t, machine.StateOnly(1), steps[1].Rule.Key)
	require.Len(t, halted, 1)
	require.Equal(t, res, halted[0])

	// A halted machine stays halted; a second run takes no steps.
	res, err = r.Run(context.Background(), m)
	require.NoError(t, err)
	require.True(t, res.Halted)
	require.Zero(t, res.Steps)
}

func TestRunExhaustsBudget(t *testing.T) {
	m := newMachine(t, 2, stateRule(0, 0))

	res, err := runner.New(runner.WithMaxSteps(5)).Run(context.Background(), m)
	require.NoError(t, err)
	require.True(t, res.Exhausted)
	require.False(t, res.Halted)
	require.Equal(t, 5, res.Steps)
	require.Equal(t, runner.OutcomeExhausted, res.Outcome)
	require.Equal(t, 2, res.Final.ProgramHead) // 5 moves right on a 3-cell ring
}

func TestRunCoverageFault(t *testing.T) {
	m := newMachine(t, 3, stateRule(0, 1)) // nothing covers state 1

	reg := prometheus.NewRegistry()
	metrics, err := runner.NewMetrics(reg)
	require.NoError(t, err)

	res, err := runner.New(runner.WithMetrics(metrics)).Run(context.Background(), m)
	require.ErrorIs(t, err, machine.ErrCoverage)
	require.Equal(t, 1, res.Steps)
	require.Equal(t, runner.OutcomeFault, res.Outcome)

	require.Equal(t, 1.0, testutil.ToFloat64(metrics.CoverageErrors))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Steps))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues(runner.OutcomeFault)))
}

func TestRunCanceled(t *testing.T) {
	m := newMachine(t, 2, stateRule(0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := runner.New().Run(ctx, m)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, res.Steps)
	require.Equal(t, runner.OutcomeCanceled, res.Outcome)
}

func TestRunCancelFromHook(t *testing.T) {
	m := newMachine(t, 2, stateRule(0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := runner.New(runner.WithHooks(runner.Hooks{
		OnStep: func(_ context.Context, e runner.StepEvent) {
			if e.Step == 3 {
				cancel()
			}
		},
	}))
	res, err := r.Run(ctx, m)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 3, res.Steps)
}

func TestRunMetricsAcrossRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := runner.NewMetrics(reg)
	require.NoError(t, err)
	r := runner.New(runner.WithMetrics(metrics), runner.WithMaxSteps(4))

	_, err = r.Run(context.Background(), newMachine(t, 3, stateRule(0, 1), stateRule(1, 2)))
	require.NoError(t, err)
	_, err = r.Run(context.Background(), newMachine(t, 2, stateRule(0, 0)))
	require.NoError(t, err)

	require.Equal(t, 6.0, testutil.ToFloat64(metrics.Steps))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues(runner.OutcomeHalted)))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues(runner.OutcomeExhausted)))
	require.Equal(t, 1, testutil.CollectAndCount(metrics.StepsPerRun))

	// Registering the same collectors twice fails.
	_, err = runner.NewMetrics(reg)
	require.Error(t, err)
}

func TestRunSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	r := runner.New(runner.WithTracer(tp.Tracer("test")))
	_, err := r.Run(context.Background(), newMachine(t, 3, stateRule(0, 1), stateRule(1, 2)))
	require.NoError(t, err)

	ended := rec.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, "runner.Run", ended[0].Name())
}

func TestRunNilMachine(t *testing.T) {
	_, err := runner.New().Run(context.Background(), nil)
	require.ErrorIs(t, err, runner.ErrNilMachine)
	require.Panics(t, func() { runner.WithMaxSteps(0) })
}

// TestRunGeneratedMachineNeverFaults: built tables cover every key.
func TestRunGeneratedMachineNeverFaults(t *testing.T) {
	p := machine.Params{
		SpecificRules: 50,
		ProgramLength: 100,
		MemoryLength:  100,
		Space:         machine.Space{States: 6, ProgSymbols: 2, MemSymbols: 2},
	}
	for seed := int64(1); seed <= 10; seed++ {
		m, err := machine.Build(p, machine.WithSeed(seed))
		require.NoError(t, err)

		res, err := runner.New().Run(context.Background(), m)
		require.NoError(t, err, "seed %d", seed)
		require.True(t, res.Halted || res.Exhausted)
	}
}

// TestRunDefaultLogger: without WithLogger, or with WithLogger(nil), the
// runner logs to a discarding logger and still completes.
func TestRunDefaultLogger(t *testing.T) {
	for _, r := range []*runner.Runner{runner.New(), runner.New(runner.WithLogger(nil))} {
		require.NotNil(t, r.Logger)
		res, err := r.Run(context.Background(), newMachine(t, 2, stateRule(0, 1)))
		require.NoError(t, err)
		require.True(t, res.Halted)
	}
}
