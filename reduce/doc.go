// Package reduce provides the two dead-operation elimination engines for
// transformation sequences recorded by a trans.System. Both implement
// trans.Reductor and solve the same problem: given the sequence of applied
// transformations ending at a known final evaluation, find the shortest
// sub-sequence whose cumulative effect reproduces that same evaluation.
//
//   - Counter — use-def liveness counting. Tracks per vector cell which
//     recorded transformation wrote it last, counts live readers per writer,
//     and removes writers whose counter reaches zero until a fixed point.
//     Analogous to classic dead-code elimination. Near-linear in sequence
//     length times read/write-set size.
//
//   - Graph — shortest-path reduction. Builds a directed graph whose nodes
//     are the distinct evaluations seen so far and whose edges are
//     transformation applications, additionally linking any two evaluations
//     that agree under the projection implied by an edge's read/write
//     footprint, so the search can take shortcuts the literal replay order
//     never exposed. An unweighted Dijkstra from the initial to the final
//     evaluation yields the minimal reproducing sequence. Worst case
//     quadratic in distinct evaluations × transformations, acceptable
//     because model traces are short.
//
// A Graph path is never longer than the Counter path for the same input;
// Counter is the cheaper baseline. Reductor state is owned by one
// reconstruction run and rebuilt per run, there is no shared state.
package reduce
