// Package seqgen generates random but valid operation sequences for
// benchmarking the reconstruction strategies. Sequences follow the shape of
// timed-automaton runs: alternating location blocks (delay, invariants) and
// edge blocks (guards, resets), each constraint kept consistent with the
// zone the prefix has produced so far. Generation is deterministic per seed.
package seqgen
