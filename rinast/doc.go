// Package rinast implements the generic reconstruction pipeline: an
// observed operation trace is replayed as vector transformations over a
// flattened zone (see package trans), every step is fed to a reduction
// engine (see package reduce), and the reduced transformation path is
// rendered back into an external operation sequence.
//
// Two layers:
//
//   - DBMSystem — a transformation factory for a fixed clock count. It owns
//     the shared Up and Urgent transformations, memoizes Reset and
//     Constraint transformations by their defining parameters (safe because
//     transformations are pure), and derives DBM closure semantics inside
//     the transformation algebra itself rather than delegating to the host
//     zone type.
//
//   - Reconstructor — maps external clock names to vector indices, replays
//     an ops.Sequence through a DBMSystem, and renders the reduced path back
//     to operations, inserting a Close() marker after every run of
//     consecutive constraints. Supports incremental extension: new
//     operations are recorded against the running evaluation without
//     resetting state.
//
// The chosen reductor is fixed per reconstruction run; state is rebuilt for
// every run and nothing is shared across runs except the memoized
// transformation caches.
package rinast
