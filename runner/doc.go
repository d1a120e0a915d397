// SPDX-License-Identifier: MIT

// Package runner drives a machine.Machine until it halts, runs out of step
// budget, faults or is cancelled.
//
// The core machine package is synchronous and knows nothing about contexts,
// logging or metrics. Runner adds those around the step loop:
//
//	r := runner.New(runner.WithMaxSteps(1000), runner.WithLogger(logger))
//	res, err := r.Run(ctx, m)
//
// Cancellation is checked between steps; a single step is never interrupted.
package runner
