// SPDX-License-Identifier: MIT

package tape

import "fmt"

// Op enumerates the head operations a rule may request on a tape.
// The zero value is deliberately invalid so an unset Action is caught by Apply.
type Op uint8

const (
	opInvalid Op = iota
	// OpRight moves the head one cell right, wrapping to 0 past the end.
	OpRight
	// OpLeft moves the head one cell left, wrapping to the last cell before 0.
	OpLeft
	// OpStay leaves the head where it is.
	OpStay
	// OpWrite overwrites the cell under the head; the head does not move.
	OpWrite
)

// String renders the op name.
func (o Op) String() string {
	switch o {
	case OpRight:
		return "right"
	case OpLeft:
		return "left"
	case OpStay:
		return "stay"
	case OpWrite:
		return "write"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// Action is a single tape instruction. Symbol is meaningful only for OpWrite.
type Action struct {
	Op     Op
	Symbol int
}

// Right returns the move-right action.
func Right() Action { return Action{Op: OpRight} }

// Left returns the move-left action.
func Left() Action { return Action{Op: OpLeft} }

// Stay returns the no-move action.
func Stay() Action { return Action{Op: OpStay} }

// Write returns an action that stores sym under the head.
func Write(sym int) Action { return Action{Op: OpWrite, Symbol: sym} }

// Valid reports whether the op is one of the declared ops.
func (a Action) Valid() bool { return a.Op >= OpRight && a.Op <= OpWrite }

// IsWrite reports whether the action writes a symbol.
func (a Action) IsWrite() bool { return a.Op == OpWrite }

// String renders "right", "left", "stay" or "write(n)".
func (a Action) String() string {
	if a.Op == OpWrite {
		return fmt.Sprintf("write(%d)", a.Symbol)
	}

	return a.Op.String()
}

// MarshalText implements encoding.TextMarshaler so actions read naturally in
// YAML/JSON dumps of a rule table.
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("MarshalText: %w", ErrUnknownAction)
	}

	return []byte(a.String()), nil
}

// UnmarshalText parses the form produced by MarshalText.
func (a *Action) UnmarshalText(b []byte) error {
	s := string(b)
	switch s {
	case "right":
		*a = Right()
	case "left":
		*a = Left()
	case "stay":
		*a = Stay()
	default:
		var sym int
		if _, err := fmt.Sscanf(s, "write(%d)", &sym); err != nil {
			return fmt.Errorf("UnmarshalText(%q): %w", s, ErrUnknownAction)
		}
		*a = Write(sym)
	}

	return nil
}
