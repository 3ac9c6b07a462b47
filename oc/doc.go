// Package oc reconstructs difference bound matrices through the
// approximate-and-constrain pipeline: an approximator first derives a short
// reset/delay sequence that over-approximates the target zone, then a
// constrainer emits the clock constraints that cut the approximation down to
// the exact target.
//
// Two approximation strategies are available — sequence-based (scan the
// observed operation trace for the most recent reset of each clock) and
// zone-based (derive admissible reset values from the target matrix itself) —
// and three constraint strategies: the full constraint system (every finite
// bound), the minimal constraint system (zero-equivalence classes plus
// inter-class representatives), and the relative constraint system (only
// bounds that differ from the source zone).
//
// The Reconstructor combines one approximator with one constrainer and
// reports per-phase sequence lengths and timings.
package oc
