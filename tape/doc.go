// SPDX-License-Identifier: MIT

// Package tape implements fixed-length circular tapes with a single head.
//
// A Tape is the storage half of the two-tape controller in package machine:
// the controller reads the symbol under each head, then applies one Action
// per tape (Right, Left, Stay or Write).
//
// Circularity:
//
//	Right at index L-1 wraps to 0.
//	Left  at index 0   wraps to L-1.
//
// The package also exposes adjacency statistics (Adjacency, Histogram) over
// the raw cell sequence. Those are used by package dynamics to estimate the
// distribution of the next symbol seen after a head move. Pairs are taken
// over the linear sequence cells[i], cells[i+1]; the wrap-around pair is not
// counted.
//
// Symbols are plain ints in [0, alphabet). Tapes never validate symbols
// against an alphabet; that policy belongs to the caller that knows it.
package tape
