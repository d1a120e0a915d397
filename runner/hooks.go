// SPDX-License-Identifier: MIT

package runner

import (
	"context"

	"github.com/katalvlaran/duotape/machine"
)

// StepEvent describes one applied transition.
type StepEvent struct {
	Step        int          // 1-based index within the run
	Rule        machine.Rule // the rule that fired
	State       int          // controller state after the step
	ProgramHead int
	MemoryHead  int
}

// Hooks are optional lifecycle callbacks. Nil fields are skipped.
// Callbacks run synchronously on the stepping goroutine.
type Hooks struct {
	OnStep func(ctx context.Context, e StepEvent)
	OnHalt func(ctx context.Context, res Result)
}

func (h Hooks) step(ctx context.Context, e StepEvent) {
	if h.OnStep != nil {
		h.OnStep(ctx, e)
	}
}

func (h Hooks) halt(ctx context.Context, res Result) {
	if h.OnHalt != nil {
		h.OnHalt(ctx, res)
	}
}
