// SPDX-License-Identifier: MIT

package machine

import (
	"errors"
	"fmt"
)

// Error policy:
//   - Only package-level sentinels are exposed; branch with errors.Is.
//   - Context is attached with fmt.Errorf("<Op>: ...: %w", ErrX).
//   - Nothing here is retried or recovered internally.

var (
	// ErrCoverage is returned by Step when no rule matches the current key.
	// It means the table is malformed; the machine refuses to step afterwards.
	ErrCoverage = errors.New("machine: no rule covers key")

	// ErrConstruction reports invalid counts, lengths, keys or symbols passed
	// to Build or New. Nothing is generated when it is returned.
	ErrConstruction = errors.New("machine: invalid construction parameters")

	// ErrNeedRandSource indicates Build was called without WithRand/WithSeed.
	ErrNeedRandSource = errors.New("machine: rng is required")

	// ErrOutOfSpace indicates a (state, prog, mem) triple outside the Space bounds.
	ErrOutOfSpace = errors.New("machine: key outside space")
)

// Operation tags used in error wrapping.
const (
	opBuild     = "Build"
	opNew       = "New"
	opStep      = "Step"
	opFlatten   = "Flatten"
	opUnflatten = "Unflatten"
)

// constructionErrorf tags ErrConstruction with the operation and a reason.
func constructionErrorf(op, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), ErrConstruction)
}
