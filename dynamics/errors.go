// SPDX-License-Identifier: MIT

package dynamics

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedAction is returned when a rule writes to the program
	// tape; the program tape is read-only in this analysis.
	ErrUnsupportedAction = errors.New("dynamics: unsupported action")

	// ErrTapeTooShort is returned when either tape has fewer than two cells,
	// leaving no adjacent pair to estimate from.
	ErrTapeTooShort = errors.New("dynamics: tape too short")

	// ErrBadSnapshot indicates a head position or symbol outside the space.
	ErrBadSnapshot = errors.New("dynamics: snapshot does not fit space")

	// ErrNilTable indicates a nil rule table or machine.
	ErrNilTable = errors.New("dynamics: nil table")
)

const (
	opBuild   = "Build"
	opAnalyze = "Analyze"
)

// dynamicsErrorf wraps err with an operation tag. Call only with a non-nil err.
func dynamicsErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
