// Package trivial is the baseline reconstruction strategy: the observed
// operation trace is replayed verbatim, with no reduction at all. Its
// sequence lengths and timings are the yardstick the other strategies are
// measured against.
package trivial
