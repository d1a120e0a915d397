// SPDX-License-Identifier: MIT

package machine

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyKind tags which axes of a Key are wildcards.
type KeyKind uint8

const (
	// KindSpecific fixes all three axes.
	KindSpecific KeyKind = iota
	// KindAnyState matches any state with a fixed (prog, mem).
	KindAnyState
	// KindAnyProg matches any program symbol with a fixed (state, mem).
	KindAnyProg
	// KindAnyMem matches any memory symbol with a fixed (state, prog).
	KindAnyMem
	// KindStateOnly fixes the state; program and memory symbols are wildcards.
	KindStateOnly
	// KindProgOnly fixes the program symbol; state and memory symbol are wildcards.
	KindProgOnly
	// KindMemOnly fixes the memory symbol; state and program symbol are wildcards.
	KindMemOnly
)

// Key is the left-hand side of a rule. Components on wildcard axes are
// ignored and kept at zero by the constructors.
type Key struct {
	Kind  KeyKind
	State int
	Prog  int
	Mem   int
}

// Specific returns the fully specified key (state, prog, mem).
func Specific(state, prog, mem int) Key {
	return Key{Kind: KindSpecific, State: state, Prog: prog, Mem: mem}
}

// AnyState returns the key (*, prog, mem).
func AnyState(prog, mem int) Key { return Key{Kind: KindAnyState, Prog: prog, Mem: mem} }

// AnyProg returns the key (state, *, mem).
func AnyProg(state, mem int) Key { return Key{Kind: KindAnyProg, State: state, Mem: mem} }

// AnyMem returns the key (state, prog, *).
func AnyMem(state, prog int) Key { return Key{Kind: KindAnyMem, State: state, Prog: prog} }

// StateOnly returns the key (state, *, *).
func StateOnly(state int) Key { return Key{Kind: KindStateOnly, State: state} }

// ProgOnly returns the key (*, prog, *).
func ProgOnly(prog int) Key { return Key{Kind: KindProgOnly, Prog: prog} }

// MemOnly returns the key (*, *, mem).
func MemOnly(mem int) Key { return Key{Kind: KindMemOnly, Mem: mem} }

// wild reports which axes are wildcards for k.
func (k Key) wild() (state, prog, mem bool) {
	switch k.Kind {
	case KindAnyState:
		return true, false, false
	case KindAnyProg:
		return false, true, false
	case KindAnyMem:
		return false, false, true
	case KindStateOnly:
		return false, true, true
	case KindProgOnly:
		return true, false, true
	case KindMemOnly:
		return true, true, false
	default:
		return false, false, false
	}
}

// IsSpecific reports whether k fixes all three axes.
func (k Key) IsSpecific() bool { return k.Kind == KindSpecific }

// Matches reports whether k covers the concrete triple (state, prog, mem):
// every non-wildcard component must be equal.
func (k Key) Matches(state, prog, mem int) bool {
	ws, wp, wm := k.wild()

	return (ws || k.State == state) &&
		(wp || k.Prog == prog) &&
		(wm || k.Mem == mem)
}

// Width returns how many specific keys of sp match k: the product of the
// sizes of its wildcard axes (1 for a specific key).
func (k Key) Width(sp Space) int {
	ws, wp, wm := k.wild()
	w := 1
	if ws {
		w *= sp.States
	}
	if wp {
		w *= sp.ProgSymbols
	}
	if wm {
		w *= sp.MemSymbols
	}

	return w
}

// within reports whether every fixed component lies inside sp.
func (k Key) within(sp Space) bool {
	if k.Kind > KindMemOnly {
		return false
	}
	ws, wp, wm := k.wild()

	return (ws || (k.State >= 0 && k.State < sp.States)) &&
		(wp || (k.Prog >= 0 && k.Prog < sp.ProgSymbols)) &&
		(wm || (k.Mem >= 0 && k.Mem < sp.MemSymbols))
}

// String renders the key as "(state,prog,mem)" with "*" on wildcard axes.
func (k Key) String() string {
	ws, wp, wm := k.wild()
	part := func(wild bool, v int) string {
		if wild {
			return "*"
		}
		return strconv.Itoa(v)
	}

	return "(" + strings.Join([]string{part(ws, k.State), part(wp, k.Prog), part(wm, k.Mem)}, ",") + ")"
}

// MarshalText renders String() for YAML/JSON table dumps.
func (k Key) MarshalText() ([]byte, error) {
	if k.Kind > KindMemOnly {
		return nil, fmt.Errorf("MarshalText: kind %d: %w", k.Kind, ErrConstruction)
	}

	return []byte(k.String()), nil
}
