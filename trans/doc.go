// Package trans implements a generic vector transformation system over DBM
// bound values: zones are flattened into evaluation vectors of clock_count²
// cells, and the UPPAAL-level operations (Up, Urgent, Reset, Constraint)
// become per-cell min-plus update rules over those vectors.
//
// Building blocks:
//
//   - DBValue    — a single bound (value, non-strict flag) with an infinity
//     sentinel Maximal; Add saturates at the sentinel and keeps
//     non-strictness only if both operands were non-strict.
//   - Evaluation — a flat vector of DBValues representing a zone row-major;
//     equality is structural and underlies state memoization.
//   - Transformation — anything that maps an Evaluation to a fresh
//     Evaluation and declares precisely which vector indices it reads and
//     writes; Simple (a list of specification entries) and Compound (an
//     ordered list of transformations) are the two forms.
//   - System — maintains the running Evaluation of an applied transformation
//     sequence and feeds every step to a Reductor, from which the shortest
//     reproducing sub-sequence can be requested.
//
// Transformations are pure: Apply never mutates its input, so a single
// transformation object can safely be applied any number of times and be
// shared through memoization caches keyed by its defining parameters.
//
// The Reductor contract lives here (the sibling package reduce provides the
// counter- and graph-based engines; Identity is the trivial baseline):
//
//  1. Initialize(variableCount, initialEvaluation)
//  2. Record(before, transformation, after) — once per applied step
//  3. Eliminate() — triggers the reduction
//  4. Path() — the reduced transformation list, fresh slice per call
package trans
