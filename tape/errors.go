// SPDX-License-Identifier: MIT

package tape

import "errors"

// Sentinel errors. Callers branch with errors.Is; implementations attach
// context with fmt.Errorf("<Op>: %w", ErrX).
var (
	// ErrEmptyTape is returned when a tape of length zero is requested.
	ErrEmptyTape = errors.New("tape: length must be > 0")

	// ErrHeadOutOfRange indicates a head index outside [0, Len()).
	ErrHeadOutOfRange = errors.New("tape: head index out of range")

	// ErrUnknownAction indicates an Action whose Op is not one of the declared ops.
	ErrUnknownAction = errors.New("tape: unknown action")

	// ErrNeedRandSource indicates a stochastic constructor was called with a nil *rand.Rand.
	ErrNeedRandSource = errors.New("tape: rng is required")

	// ErrBadAlphabet indicates a non-positive alphabet size.
	ErrBadAlphabet = errors.New("tape: alphabet size must be > 0")
)
