// Package zoneseq reconstructs difference-bound-matrix (DBM) zones of timed
// automata as compact operation sequences.
//
// 🚀 What is zoneseq?
//
//	A pure-Go library that takes an observed zone (or the operation trace
//	that produced it) and derives a short sequence of resets, constraints,
//	delays and closures reproducing that zone from a given source:
//		• dbm/     — the zone type: entries, closure, negation, intervals
//		• ops/     — the external operation model + line-oriented wire format
//		• oc/      — approximate-and-constrain pipeline: two approximation
//		             strategies, three constraint systems, one orchestrator
//		• trans/   — vector transformation algebra over flattened zones
//		• reduce/  — dead-transformation elimination: counter- and
//		             graph-based engines
//		• rinast/  — trace replay through the transformation algebra with
//		             reduction and re-rendering
//		• trivial/ — verbatim-replay baseline for comparisons
//		• seqgen/  — random valid operation sequences for benchmarks
//
// ✨ Why choose zoneseq?
//
//   - Deterministic – fixed iteration orders and seeded randomness make
//     every reconstruction reproducible
//   - Verifiable – every generated sequence can be applied back to its
//     source zone and compared against the target
//   - Pure Go – no cgo, no hidden deps
//
// Quick example, reconstructing a zone from a six-operation trace:
//
//	source, _ := dbm.New([]string{"x", "y"}, true)
//	r, _ := oc.NewReconstructor(source)
//	res, _ := r.Reconstruct(oc.Observation{
//		Init:    source,
//		Target:  target,
//		SeqFull: trace,
//	})
//	fmt.Println(res.Sequence) // short sequence reproducing target
//
//	go get github.com/katalvlaran/zoneseq
package zoneseq
