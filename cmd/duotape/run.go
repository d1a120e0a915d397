// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/duotape/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		metricsAddr string
		maxSteps    int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build a random machine and run it to halt or budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("metrics-addr") {
				a.cfg.MetricsAddr = metricsAddr
			}
			if cmd.Flags().Changed("max-steps") {
				a.cfg.MaxSteps = maxSteps
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			metrics, err := runner.NewMetrics(reg)
			if err != nil {
				return err
			}
			if a.cfg.MetricsAddr != "" {
				stopServer := a.serveMetrics(reg)
				defer stopServer()
			}

			m, err := a.buildMachine()
			if err != nil {
				return err
			}
			if !m.Table().HaltReachable(m.Space()) {
				a.logger.Warn("halt state unreachable from state 0", "max_steps", a.cfg.MaxSteps)
			}
			r := runner.New(
				runner.WithMaxSteps(a.cfg.MaxSteps),
				runner.WithLogger(a.logger),
				runner.WithMetrics(metrics),
			)
			res, runErr := r.Run(ctx, m)
			if err := a.encode(cmd.OutOrStdout(), res); err != nil {
				return err
			}

			return runErr
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus /metrics on this address (e.g. :2112)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "step budget (overrides config)")

	return cmd
}

// serveMetrics exposes reg on cfg.MetricsAddr and returns a stop function.
func (a *app) serveMetrics(reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              a.cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("starting metrics server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			a.logger.Warn("metrics server shutdown", "error", err)
		}
	}
}
