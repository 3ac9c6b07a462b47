// Package dbm implements difference bound matrices (DBMs), the canonical
// zone representation for timed-automaton clock valuations.
//
// A DBM is a square matrix of (clocks+1)×(clocks+1) entries indexed 0..N,
// where index 0 is the static reference clock that is always zero. Entry
// (i,j) is an upper bound on the clock difference clock_i − clock_j: a pair
// of an integer value and a comparator (strict "<" or non-strict "<=").
// The infinity sentinel Inf encodes the absence of a bound.
//
// Invariants:
//
//   - Diagonal entries are always (0, <=).
//   - After Close(), every entry satisfies the triangle inequality
//     entry(i,k) ≤ entry(i,j) + entry(j,k) for all i, j, k
//     (canonical, tightest form).
//
// The package provides exactly the zone algebra the reconstruction
// strategies consume: copying, entry-wise negation, transposition, in-place
// transitive closure (min-plus Floyd–Warshall with a fixed k→i→j loop order
// for determinism), a weighted directed graph view over the entries, and
// interval extraction for individual clocks.
//
// Complexity:
//
//   - Close: O(n³) time, O(1) extra space (in-place).
//   - Copy/Negate/Transpose: O(n²).
//
// DBMs are plain mutable values owned by their creator. Algorithms in the
// sibling packages never mutate a caller's zone: they call Copy first.
package dbm
