// Package ops defines the clock operation model shared by every
// reconstruction strategy: a closed set of zone operations and ordered
// sequences of them with fold-apply semantics against a dbm.DBM.
//
// The operation set is fixed and small, so operations are a tagged variant
// (Kind + fields) matched exhaustively rather than an open interface:
//
//   - Reset(clock, value)      — set a clock to a constant.
//   - Constraint(c1, c2, rel, value) — tighten the bound on c1 − c2;
//     an empty c2 constrains c1 against the reference clock.
//   - DelayFuture()            — let time pass: drop all upper bounds.
//   - Close()                  — explicit canonicalization marker.
//
// A Sequence supports concatenation (order preserving), reversal, and
// Apply — a total, pure left fold that applies each operation to a copy of
// the input zone and never mutates the caller's DBM. Sequence length is the
// chief cost metric of the reconstruction strategies.
//
// The line-oriented textual form produced by Sequence.String and consumed by
// Parse is the sole external wire format:
//
//	Reset(x,3)
//	Constraint(x,y,<=,2)
//	DelayFuture()
//	Close()
package ops
