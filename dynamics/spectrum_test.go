package dynamics_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/duotape/dynamics"
	"github.com/katalvlaran/duotape/machine"
	"github.com/katalvlaran/duotape/matrix"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func diagCSR(t *testing.T, vals ...float64) *matrix.CSR {
	t.Helper()
	tr, err := matrix.NewTriplets(len(vals), len(vals))
	require.NoError(t, err)
	for i, v := range vals {
		require.NoError(t, tr.Add(i, i, v))
	}

	return tr.Compile()
}

func TestAnalyzeKeepsLeadingK(t *testing.T) {
	op := diagCSR(t, 0.1, -0.9, 0.5, 0.3, 0.7, 0.2, 0.05, 0.6)

	s, err := dynamics.Analyze(op)
	require.NoError(t, err)
	require.Equal(t, 8, s.Dim)
	require.Equal(t, 8, s.NNZ)
	require.Len(t, s.Values, dynamics.DefaultEigenvalues)
	require.InDelta(t, 0.9, s.Radius(), 1e-12)
	require.InDelta(t, -0.9, real(s.Values[0]), 1e-12)
	require.InDelta(t, 0.2, real(s.Values[5]), 1e-12)

	s, err = dynamics.Analyze(op, dynamics.WithEigenvalues(2))
	require.NoError(t, err)
	require.Len(t, s.Values, 2)

	e := s.Eigens()
	require.InDelta(t, 0.7, e[1].Re, 1e-12)
	require.InDelta(t, 0.7, e[1].Modulus, 1e-12)
	require.Zero(t, e[1].Im)
}

func TestAnalyzeSmallOperator(t *testing.T) {
	s, err := dynamics.Analyze(diagCSR(t, 1, 0))
	require.NoError(t, err)
	require.Len(t, s.Values, 2) // fewer than K available
}

func TestAnalyzersRunInOrder(t *testing.T) {
	var calls []int
	first := dynamics.AnalyzerFunc(func(s dynamics.Spectrum) error {
		calls = append(calls, 1)
		require.Equal(t, 3, s.Dim)
		return nil
	})
	boom := errors.New("boom")
	second := dynamics.AnalyzerFunc(func(dynamics.Spectrum) error {
		calls = append(calls, 2)
		return boom
	})
	never := dynamics.AnalyzerFunc(func(dynamics.Spectrum) error {
		calls = append(calls, 3)
		return nil
	})

	s, err := dynamics.Analyze(diagCSR(t, 1, 2, 3),
		dynamics.WithAnalyzer(first), dynamics.WithAnalyzer(second), dynamics.WithAnalyzer(never))
	require.ErrorIs(t, err, boom)
	require.Equal(t, []int{1, 2}, calls)
	require.Len(t, s.Values, 3) // spectrum still returned
}

func TestAnalyzeErrors(t *testing.T) {
	_, err := dynamics.Analyze(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = dynamics.Analyze(rect)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { dynamics.WithEigenvalues(0) })
	require.Panics(t, func() { dynamics.WithMaxIter(-1) })
	require.Panics(t, func() { dynamics.WithAnalyzer(nil) })
	require.Panics(t, func() { dynamics.WithTracer(nil) })
}

// TestSpansRecorded: Build and Analyze each end one span on the given tracer.
func TestSpansRecorded(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	tracer := tp.Tracer("test")

	p := machine.Params{
		SpecificRules: 10,
		ProgramLength: 12,
		MemoryLength:  12,
		Space:         machine.Space{States: 3, ProgSymbols: 2, MemSymbols: 2},
	}
	m, err := machine.Build(p, machine.WithSeed(5))
	require.NoError(t, err)

	op, err := dynamics.FromMachine(m, dynamics.WithTracer(tracer))
	require.NoError(t, err)
	_, err = dynamics.Analyze(op, dynamics.WithTracer(tracer))
	require.NoError(t, err)

	ended := rec.Ended()
	require.Len(t, ended, 2)
	require.Equal(t, "dynamics.Build", ended[0].Name())
	require.Equal(t, "dynamics.Analyze", ended[1].Name())
}

// TestAnalyzeDefaultMachineSeed412: the 8×8 operator of the default machine
// at seed 412 needs more than 30 sweeps on one block.
func TestAnalyzeDefaultMachineSeed412(t *testing.T) {
	p := machine.Params{
		SpecificRules: 50,
		ProgramLength: 100,
		MemoryLength:  100,
		Space:         machine.Space{States: 2, ProgSymbols: 2, MemSymbols: 2},
	}
	m, err := machine.Build(p, machine.WithSeed(412))
	require.NoError(t, err)
	op, err := dynamics.FromMachine(m)
	require.NoError(t, err)

	s, err := dynamics.Analyze(op)
	require.NoError(t, err)
	require.Equal(t, 8, s.Dim)
	require.Len(t, s.Values, dynamics.DefaultEigenvalues)
}

// TestAnalyzeBuiltOperators runs the full spectrum of many generated
// operators and checks Σλ = tr(A) on each.
func TestAnalyzeBuiltOperators(t *testing.T) {
	spaces := []struct {
		space machine.Space
		seeds int64
	}{
		{machine.Space{States: 2, ProgSymbols: 2, MemSymbols: 2}, 500},
		{machine.Space{States: 4, ProgSymbols: 3, MemSymbols: 3}, 500},
		{machine.Space{States: 6, ProgSymbols: 4, MemSymbols: 4}, 100},
	}
	for _, tc := range spaces {
		p := machine.Params{
			SpecificRules: 50,
			ProgramLength: 100,
			MemoryLength:  100,
			Space:         tc.space,
		}
		for seed := int64(1); seed <= tc.seeds; seed++ {
			m, err := machine.Build(p, machine.WithSeed(seed))
			require.NoError(t, err)
			op, err := dynamics.FromMachine(m)
			require.NoError(t, err)

			n := op.Rows()
			s, err := dynamics.Analyze(op, dynamics.WithEigenvalues(n))
			require.NoErrorf(t, err, "space %+v seed %d", tc.space, seed)
			require.Len(t, s.Values, n)

			trace := 0.0
			for i := 0; i < n; i++ {
				v, err := op.At(i, i)
				require.NoError(t, err)
				trace += v
			}
			var sum complex128
			for _, v := range s.Values {
				sum += v
			}
			require.InDeltaf(t, trace, real(sum), 1e-9, "space %+v seed %d", tc.space, seed)
			require.InDeltaf(t, 0, imag(sum), 1e-9, "space %+v seed %d", tc.space, seed)
		}
	}
}

// TestWithMaxIterCapsSweeps: an explicit budget overrides the scaled default.
func TestWithMaxIterCapsSweeps(t *testing.T) {
	p := machine.Params{
		SpecificRules: 50,
		ProgramLength: 100,
		MemoryLength:  100,
		Space:         machine.Space{States: 2, ProgSymbols: 2, MemSymbols: 2},
	}
	m, err := machine.Build(p, machine.WithSeed(412))
	require.NoError(t, err)
	op, err := dynamics.FromMachine(m)
	require.NoError(t, err)

	_, err = dynamics.Analyze(op, dynamics.WithMaxIter(30))
	require.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}
