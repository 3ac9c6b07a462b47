package ops

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/zoneseq/dbm"
)

// Sentinel errors returned by the ops package.
var (
	// ErrUnknownKind indicates an operation kind outside the closed set.
	ErrUnknownKind = errors.New("ops: unknown operation kind")

	// ErrBadFormat indicates a line that does not parse as an operation.
	ErrBadFormat = errors.New("ops: malformed operation text")
)

// Kind discriminates the closed operation variant.
type Kind uint8

const (
	// KindReset sets a clock to a constant value.
	KindReset Kind = iota

	// KindConstraint tightens the bound on a clock difference.
	KindConstraint

	// KindDelayFuture removes all upper bounds (lets time pass).
	KindDelayFuture

	// KindClose canonicalizes the zone.
	KindClose
)

// Op is one clock operation. Which fields are meaningful depends on Kind:
// Reset uses Clock1/Val, Constraint uses Clock1/Clock2/Rel/Val (empty Clock2
// encodes the reference clock), DelayFuture and Close carry no payload.
type Op struct {
	Kind   Kind
	Clock1 string
	Clock2 string
	Rel    dbm.Rel
	Val    int64
}

// Reset constructs a Reset(clock, val) operation.
func Reset(clock string, val int64) Op {
	return Op{Kind: KindReset, Clock1: clock, Val: val}
}

// Constraint constructs a Constraint(c1, c2, rel, val) operation. Pass an
// empty clock name to constrain against the reference clock.
func Constraint(clock1, clock2 string, rel dbm.Rel, val int64) Op {
	return Op{Kind: KindConstraint, Clock1: clock1, Clock2: clock2, Rel: rel, Val: val}
}

// DelayFuture constructs the let-time-pass operation.
func DelayFuture() Op { return Op{Kind: KindDelayFuture} }

// Close constructs the explicit canonicalization marker.
func Close() Op { return Op{Kind: KindClose} }

// String renders the operation in the wire format.
func (o Op) String() string {
	switch o.Kind {
	case KindReset:
		return fmt.Sprintf("Reset(%s,%d)", o.Clock1, o.Val)
	case KindConstraint:
		return fmt.Sprintf("Constraint(%s,%s,%s,%d)", o.Clock1, o.Clock2, o.Rel, o.Val)
	case KindDelayFuture:
		return "DelayFuture()"
	case KindClose:
		return "Close()"
	}

	return fmt.Sprintf("Unknown(%d)", o.Kind)
}

// applyTo mutates d in place with the operation's zone-algebra effect.
// Callers own d; Sequence.Apply hands in a private copy.
func (o Op) applyTo(d *dbm.DBM) error {
	switch o.Kind {
	case KindReset:
		return applyReset(d, o.Clock1, o.Val)
	case KindConstraint:
		return applyConstraint(d, o.Clock1, o.Clock2, dbm.NewEntry(o.Val, o.Rel))
	case KindDelayFuture:
		applyDelayFuture(d)
		return nil
	case KindClose:
		d.Close()
		return nil
	}

	return fmt.Errorf("%w: %d", ErrUnknownKind, o.Kind)
}

// applyReset implements the standard DBM reset-to-constant formula:
// row and column of the clock are rewritten from row/column 0 offset by ±v.
func applyReset(d *dbm.DBM, clock string, val int64) error {
	x, err := d.ClockIndex(clock)
	if err != nil {
		return fmt.Errorf("ops: Reset: %w", err)
	}
	pos := dbm.Entry{Val: val, Rel: dbm.LE}
	neg := dbm.Entry{Val: -val, Rel: dbm.LE}
	n := d.Size()
	for i := 0; i < n; i++ {
		if i == x {
			continue
		}
		d.Matrix[x][i] = d.Matrix[0][i].Add(pos) // x − i ≤ (0 − i) + v
		d.Matrix[i][x] = d.Matrix[i][0].Add(neg) // i − x ≤ (i − 0) − v
	}

	return nil
}

// applyConstraint tightens entry (c1,c2) and restores canonicity by
// propagating min-plus only through paths via c1 and via c2. That is cheaper
// than a full closure and sufficient because a single entry changed.
func applyConstraint(d *dbm.DBM, clock1, clock2 string, bound dbm.Entry) error {
	c1, err := d.ClockIndex(clock1)
	if err != nil {
		return fmt.Errorf("ops: Constraint: %w", err)
	}
	c2, err := d.ClockIndex(clock2)
	if err != nil {
		return fmt.Errorf("ops: Constraint: %w", err)
	}

	if bound.Less(d.Matrix[c1][c2]) {
		d.Matrix[c1][c2] = bound
	}

	n := d.Size()
	var i, j int
	var cand dbm.Entry
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			cand = d.Matrix[i][c1].Add(d.Matrix[c1][j])
			if cand.Less(d.Matrix[i][j]) {
				d.Matrix[i][j] = cand
			}
			cand = d.Matrix[i][c2].Add(d.Matrix[c2][j])
			if cand.Less(d.Matrix[i][j]) {
				d.Matrix[i][j] = cand
			}
		}
	}

	return nil
}

// applyDelayFuture removes the upper bound of every clock: all column-0
// entries except the diagonal become infinite.
func applyDelayFuture(d *dbm.DBM) {
	n := d.Size()
	for i := 1; i < n; i++ {
		d.Matrix[i][0] = dbm.Entry{Val: dbm.Inf, Rel: dbm.LT}
	}
}

// Sequence is an ordered list of operations. Its length is the chief cost
// metric when comparing reconstruction strategies.
type Sequence []Op

// Append returns the sequence extended by the given operations.
func (s Sequence) Append(ops ...Op) Sequence { return append(s, ops...) }

// Concat returns a new sequence holding s followed by t, order preserved.
func (s Sequence) Concat(t Sequence) Sequence {
	out := make(Sequence, 0, len(s)+len(t))
	out = append(out, s...)

	return append(out, t...)
}

// Reverse returns a new sequence with the operation order inverted.
func (s Sequence) Reverse() Sequence {
	out := make(Sequence, len(s))
	for i, o := range s {
		out[len(s)-1-i] = o
	}

	return out
}

// Copy returns a shallow copy (operations are values, so this is a full copy).
func (s Sequence) Copy() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)

	return out
}

// Apply left-folds the sequence over a copy of d and returns the resulting
// zone. The input zone is never mutated.
func (s Sequence) Apply(d *dbm.DBM) (*dbm.DBM, error) {
	out := d.Copy()
	for i, o := range s {
		if err := o.applyTo(out); err != nil {
			return nil, fmt.Errorf("ops: Apply: op %d: %w", i, err)
		}
	}

	return out, nil
}

// String renders the sequence in the line-oriented wire format.
func (s Sequence) String() string {
	lines := make([]string, len(s))
	for i, o := range s {
		lines[i] = o.String()
	}

	return strings.Join(lines, "\n")
}
