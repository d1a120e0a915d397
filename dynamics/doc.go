// SPDX-License-Identifier: MIT

// Package dynamics turns a rule table and a tape snapshot into a sparse
// transition operator over the flattened key space, and reads its spectrum.
//
// For each rule with a fully specific key (state, prog, mem) the builder
// estimates where the machine goes next:
//
//   - program outcome: Right uses the successor histogram of prog over the
//     program tape's adjacent pairs, Left the predecessor histogram, Stay a
//     point mass on the symbol under the program head. Write is rejected.
//   - memory outcome: the same over the memory tape; Write(w) is a point mass on w.
//   - joint outcome: the independent product of the two marginals.
//
// Each nonzero joint cell becomes an entry (Flatten(key), Flatten(next, p', m'))
// in a matrix.CSR. Entries that share a cell are summed. Rows of keys that
// have no specific rule stay empty, so the operator is generally
// sub-stochastic.
//
// Analyze computes the eigenvalues of such an operator, keeps the largest K
// by modulus and hands the result to any registered Analyzer.
package dynamics
