// SPDX-License-Identifier: MIT

// Package machine builds and runs two-tape controllers driven by a
// priority-ordered, wildcard-capable rule table.
//
// What is here:
//
//   - Space: the per-instance bounds (states, program symbols, memory symbols)
//     plus the flattened lexicographic index over specific keys.
//   - Key: a tagged variant. Specific keys fix all three axes; the other kinds
//     leave one or two axes as "any". No sentinel values are involved.
//   - Rule / Table: (key, effect, priority) triples, sorted once, then immutable.
//   - Build: the random generator (base wildcard rules + specific rules +
//     random program tape + zero memory tape).
//   - Machine.Step: resolves the first matching rule and applies it.
//
// Resolution order:
//
//	Rules are sorted ascending by (Tier, Rank) with a stable sort, so equal
//	priorities keep insertion order. Step scans that order and fires the
//	first rule whose key matches (state, program symbol, memory symbol).
//
// Tiers generated by Build equal the size of each base rule's match set
// (Key.Width), so narrower wildcards come before broader ones, and every
// specific rule (tier 0) comes before all wildcards.
//
// Halting:
//
//	State Space.Halt() == States-1 is terminal and never looked up.
//
// Randomness is confined to Build and always flows from an explicit
// *rand.Rand supplied through WithRand or WithSeed.
package machine
