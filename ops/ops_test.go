// Package ops_test contains unit tests for the external operation model:
// reset, constraint, delay-future and close semantics, sequence application
// and the line-oriented wire format.
package ops_test

import (
	"testing"

	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroZone(t *testing.T, clocks ...string) *dbm.DBM {
	t.Helper()
	d, err := dbm.New(clocks, true)
	require.NoError(t, err)

	return d
}

// TestReset verifies that a reset rewrites the clock's row and column from
// the reference row and column.
func TestReset(t *testing.T) {
	d := zeroZone(t, "x", "y")

	out, err := ops.Sequence{ops.Reset("x", 3)}.Apply(d)
	require.NoError(t, err)

	assert.Equal(t, dbm.Entry{Val: 3, Rel: dbm.LE}, out.Matrix[1][0], "x ≤ 3 after reset to 3")
	assert.Equal(t, dbm.Entry{Val: -3, Rel: dbm.LE}, out.Matrix[0][1], "x ≥ 3 after reset to 3")
	assert.Equal(t, dbm.Entry{Val: 3, Rel: dbm.LE}, out.Matrix[1][2], "x − y ≤ 3, y still zero")
	assert.Equal(t, dbm.Entry{Val: -3, Rel: dbm.LE}, out.Matrix[2][1], "y − x ≤ −3")
}

// TestReset_UnknownClock verifies the error path.
func TestReset_UnknownClock(t *testing.T) {
	d := zeroZone(t, "x")

	_, err := ops.Sequence{ops.Reset("z", 1)}.Apply(d)
	assert.ErrorIs(t, err, dbm.ErrClockNotFound, "reset of an unknown clock must error")
}

// TestDelayFuture verifies that delay-future removes only the upper bounds.
func TestDelayFuture(t *testing.T) {
	d := zeroZone(t, "x", "y")

	out, err := ops.Sequence{ops.DelayFuture()}.Apply(d)
	require.NoError(t, err)

	assert.Equal(t, int64(dbm.Inf), out.Matrix[1][0].Val, "upper bound of x released")
	assert.Equal(t, int64(dbm.Inf), out.Matrix[2][0].Val, "upper bound of y released")
	assert.Equal(t, dbm.Entry{Val: 0, Rel: dbm.LE}, out.Matrix[0][1], "lower bound of x kept")
	assert.Equal(t, dbm.Entry{Val: 0, Rel: dbm.LE}, out.Matrix[2][1], "clock differences kept")
}

// TestConstraint verifies tightening plus the restricted propagation through
// the two touched clocks.
func TestConstraint(t *testing.T) {
	d := zeroZone(t, "x", "y")

	// Let time pass, then bound x from above; y must inherit the bound
	// since x and y advanced together.
	seq := ops.Sequence{
		ops.DelayFuture(),
		ops.Constraint("x", "", dbm.LE, 5),
	}
	out, err := seq.Apply(d)
	require.NoError(t, err)

	assert.Equal(t, dbm.Entry{Val: 5, Rel: dbm.LE}, out.Matrix[1][0], "x ≤ 5 applied")
	assert.Equal(t, dbm.Entry{Val: 5, Rel: dbm.LE}, out.Matrix[2][0], "y ≤ 5 propagated through x")
}

// TestConstraint_LooserBoundIgnored verifies that a constraint looser than
// the current bound changes nothing.
func TestConstraint_LooserBoundIgnored(t *testing.T) {
	d := zeroZone(t, "x")

	out, err := ops.Sequence{ops.Constraint("x", "", dbm.LE, 10)}.Apply(d)
	require.NoError(t, err)

	assert.True(t, d.Equal(out), "x ≤ 10 is implied by x = 0 and must not change the zone")
}

// TestSequenceApply_DoesNotMutateInput verifies the fold works on a copy.
func TestSequenceApply_DoesNotMutateInput(t *testing.T) {
	d := zeroZone(t, "x")
	snapshot := d.Copy()

	_, err := ops.Sequence{ops.Reset("x", 4), ops.DelayFuture()}.Apply(d)
	require.NoError(t, err)

	assert.True(t, snapshot.Equal(d), "input zone must stay untouched")
}

// TestCloseOp verifies that the close operation canonicalizes the zone.
func TestCloseOp(t *testing.T) {
	d, err := dbm.New([]string{"x", "y"}, false)
	require.NoError(t, err)
	d.Matrix[1][0] = dbm.Entry{Val: 5, Rel: dbm.LE}
	d.Matrix[2][1] = dbm.Entry{Val: 3, Rel: dbm.LE}

	out, err := ops.Sequence{ops.Close()}.Apply(d)
	require.NoError(t, err)

	assert.Equal(t, dbm.Entry{Val: 8, Rel: dbm.LE}, out.Matrix[2][0], "close must derive implied bounds")
}

// TestSequence_ConcatReverseCopy covers the slice helpers.
func TestSequence_ConcatReverseCopy(t *testing.T) {
	a := ops.Sequence{ops.Reset("x", 1)}
	b := ops.Sequence{ops.DelayFuture(), ops.Close()}

	cat := a.Concat(b)
	require.Len(t, cat, 3)
	assert.Equal(t, ops.KindReset, cat[0].Kind)
	assert.Equal(t, ops.KindClose, cat[2].Kind)

	rev := cat.Reverse()
	assert.Equal(t, ops.KindClose, rev[0].Kind, "reverse must invert order")
	assert.Equal(t, ops.KindReset, rev[2].Kind)

	cp := cat.Copy()
	cp[0] = ops.DelayFuture()
	assert.Equal(t, ops.KindReset, cat[0].Kind, "copy must not alias the original")
}

// TestWireFormat_RoundTrip verifies String/Parse agree on all four kinds.
func TestWireFormat_RoundTrip(t *testing.T) {
	seq := ops.Sequence{
		ops.Reset("x", 3),
		ops.Constraint("x", "y", dbm.LE, 2),
		ops.Constraint("", "x", dbm.LT, -1),
		ops.DelayFuture(),
		ops.Close(),
	}

	parsed, err := ops.Parse(seq.String())
	require.NoError(t, err, "rendered sequence must parse back")
	assert.Equal(t, seq, parsed, "wire format round-trip")
}

// TestParse_Errors covers malformed input lines.
func TestParse_Errors(t *testing.T) {
	cases := []string{
		"Reset(x)",
		"Reset(,3)",
		"Constraint(x,y,<=)",
		"Constraint(x,y,>=,2)",
		"DelayFuture(1)",
		"Teleport()",
	}
	for _, line := range cases {
		_, err := ops.Parse(line)
		assert.ErrorIs(t, err, ops.ErrBadFormat, "line %q must be rejected", line)
	}
}
