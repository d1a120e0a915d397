// SPDX-License-Identifier: MIT

package runner

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Run outcomes, used as the "outcome" label of duotape_runs_total.
const (
	OutcomeHalted    = "halted"
	OutcomeExhausted = "exhausted"
	OutcomeFault     = "fault"
	OutcomeCanceled  = "canceled"
)

// Metrics groups the runner's Prometheus collectors.
type Metrics struct {
	Steps          prometheus.Counter
	Runs           *prometheus.CounterVec
	StepsPerRun    prometheus.Histogram
	CoverageErrors prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "duotape_steps_total",
			Help: "Total number of transitions applied.",
		}),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "duotape_runs_total",
				Help: "Total number of runs by outcome.",
			},
			[]string{"outcome"},
		),
		StepsPerRun: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "duotape_steps_per_run",
			Help:    "Number of steps taken per run.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		CoverageErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "duotape_coverage_errors_total",
			Help: "Runs aborted because no rule covered the current key.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Steps, m.Runs, m.StepsPerRun, m.CoverageErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) step() {
	if m != nil {
		m.Steps.Inc()
	}
}

func (m *Metrics) finish(outcome string, steps int) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(outcome).Inc()
	m.StepsPerRun.Observe(float64(steps))
}

func (m *Metrics) coverage() {
	if m != nil {
		m.CoverageErrors.Inc()
	}
}
