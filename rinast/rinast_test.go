// Package rinast_test contains unit tests for the transformation-based
// reconstruction pipeline: the DBM transformation factory, replay, path
// reduction and re-rendering into operation sequences.
package rinast_test

import (
	"testing"

	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
	"github.com/katalvlaran/zoneseq/reduce"
	"github.com/katalvlaran/zoneseq/rinast"
	"github.com/katalvlaran/zoneseq/trans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zoneFromEvaluation unflattens a row-major zone evaluation into a DBM over
// the given real clock names.
func zoneFromEvaluation(t *testing.T, e trans.Evaluation, clocks []string) *dbm.DBM {
	t.Helper()
	d, err := dbm.New(clocks, true)
	require.NoError(t, err)

	n := d.Size()
	require.Equal(t, n*n, e.Size(), "evaluation size must be clock count squared")
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := e.At(i*n + j)
			if v.Val == trans.Maximal {
				d.Matrix[i][j] = dbm.Entry{Val: dbm.Inf, Rel: dbm.LT}
			} else {
				rel := dbm.LT
				if v.NonStrict {
					rel = dbm.LE
				}
				d.Matrix[i][j] = dbm.Entry{Val: v.Val, Rel: rel}
			}
		}
	}

	return d
}

// zeroZone builds the zone the transformation system starts from.
func zeroZone(t *testing.T, clocks ...string) *dbm.DBM {
	t.Helper()
	d, err := dbm.New(clocks, true)
	require.NoError(t, err)

	return d
}

// TestDBMSystem_TransformationsMatchZoneAlgebra verifies that the reset,
// delay-future and constraint transformations mirror the zone operations
// step by step.
func TestDBMSystem_TransformationsMatchZoneAlgebra(t *testing.T) {
	clocks := []string{"x", "y"}
	sys := rinast.NewDBMSystem(3, nil)
	zone := zeroZone(t, clocks...)

	steps := []struct {
		name  string
		op    ops.Op
		apply func()
	}{
		{"reset x:=3", ops.Reset("x", 3), func() { sys.Apply(sys.ResetTransformation(1, 3)) }},
		{"delay future", ops.DelayFuture(), func() { sys.Apply(sys.UpTransformation()) }},
		{"constraint x≤7", ops.Constraint("x", "", dbm.LE, 7), func() {
			sys.Apply(sys.ConstraintTransformation(1, 0, trans.NewDBValue(7, true)))
		}},
		{"constraint y−x<2", ops.Constraint("y", "x", dbm.LT, 2), func() {
			sys.Apply(sys.ConstraintTransformation(2, 1, trans.NewDBValue(2, false)))
		}},
		{"reset y:=0", ops.Reset("y", 0), func() { sys.Apply(sys.ResetTransformation(2, 0)) }},
	}

	var err error
	for _, step := range steps {
		step.apply()
		zone, err = ops.Sequence{step.op}.Apply(zone)
		require.NoError(t, err, step.name)

		got := zoneFromEvaluation(t, sys.System().Current(), clocks)
		assert.True(t, zone.Equal(got), "%s: evaluation and zone diverged:\n%s\nvs\n%s", step.name, got, zone)
	}
}

// TestDBMSystem_MemoizedFactories verifies that equal parameters return the
// identical transformation object.
func TestDBMSystem_MemoizedFactories(t *testing.T) {
	sys := rinast.NewDBMSystem(3, nil)

	assert.Same(t, sys.ResetTransformation(1, 5), sys.ResetTransformation(1, 5), "reset memoized by (clock,val)")
	assert.NotSame(t, sys.ResetTransformation(1, 5), sys.ResetTransformation(1, 6), "different value, different object")

	v := trans.NewDBValue(2, true)
	assert.Same(t, sys.ConstraintTransformation(1, 2, v), sys.ConstraintTransformation(1, 2, v), "constraint memoized by parameters")
}

// TestDBMSystem_Verify verifies the self-check paths.
func TestDBMSystem_Verify(t *testing.T) {
	sys := rinast.NewDBMSystem(2, nil)
	sys.Apply(sys.ResetTransformation(1, 4))

	require.NoError(t, sys.VerifyEvaluation(sys.System().Current().Copy()), "current state verifies against itself")

	wrong := sys.NewEvaluation()
	assert.ErrorIs(t, sys.VerifyEvaluation(wrong), rinast.ErrVerification, "diverging state must be reported")

	path := sys.System().ReducedPath()
	assert.NoError(t, sys.VerifyReconstructionPath(path), "reduced path must replay to the current state")
	assert.ErrorIs(t, sys.VerifyReconstructionPath(nil), rinast.ErrVerification, "empty path cannot reach a reset state")
}

// TestReconstructor_RoundTrip verifies the pipeline end to end: the rendered
// sequence applied to the start zone reproduces the zone of the full trace.
func TestReconstructor_RoundTrip(t *testing.T) {
	clocks := []string{"x", "y"}
	trace := ops.Sequence{
		ops.Reset("x", 3),
		ops.DelayFuture(),
		ops.Constraint("x", "", dbm.LE, 7),
		ops.Close(),
		ops.Reset("y", 0),
		ops.DelayFuture(),
		ops.Constraint("y", "x", dbm.LE, 2),
		ops.Close(),
	}

	start := zeroZone(t, clocks...)
	want, err := trace.Apply(start)
	require.NoError(t, err)

	for name, factory := range map[string]rinast.ReductorFactory{
		"identity": func() trans.Reductor { return trans.NewIdentity() },
		"counter":  func() trans.Reductor { return reduce.NewCounter() },
		"graph":    func() trans.Reductor { return reduce.NewGraph() },
	} {
		rec := rinast.NewReconstructor(start.Clocks, nil, rinast.WithReductor(factory))
		res, err := rec.Reconstruct(start, trace)
		require.NoError(t, err, "reductor %s", name)

		assert.True(t, want.Copy().Close().Equal(res.DBM.Copy().Close()),
			"reductor %s must reproduce the trace zone, got sequence %s", name, res.Sequence)
		assert.LessOrEqual(t, res.Measures.Length, len(trace),
			"reductor %s must not lengthen the trace", name)
	}
}

// TestReconstructor_ReducesRedundantTrace verifies that a trace overwriting
// its own effects reduces below the trace length.
func TestReconstructor_ReducesRedundantTrace(t *testing.T) {
	clocks := []string{"x"}
	trace := ops.Sequence{
		ops.Reset("x", 9), // dead: overwritten below
		ops.Reset("x", 9), // dead
		ops.DelayFuture(), // dead: x is reset afterwards
		ops.Reset("x", 2),
		ops.DelayFuture(),
	}

	start := zeroZone(t, clocks...)
	want, err := trace.Apply(start)
	require.NoError(t, err)

	rec := rinast.NewReconstructor(start.Clocks, nil)
	res, err := rec.Reconstruct(start, trace)
	require.NoError(t, err)

	assert.Less(t, res.Measures.Length, len(trace), "redundant prefix must be eliminated")
	assert.True(t, want.Equal(res.DBM), "reduced sequence must still reach the trace zone")
}

// TestReconstructor_OnTheFly verifies incremental extension matches the
// full-trace result.
func TestReconstructor_OnTheFly(t *testing.T) {
	clocks := []string{"x", "y"}
	first := ops.Sequence{ops.Reset("x", 1), ops.DelayFuture()}
	second := ops.Sequence{ops.Reset("y", 4), ops.DelayFuture()}

	start := zeroZone(t, clocks...)
	want, err := first.Concat(second).Apply(start)
	require.NoError(t, err)

	rec := rinast.NewReconstructor(start.Clocks, nil, rinast.WithOnTheFly())
	_, err = rec.Reconstruct(start, first)
	require.NoError(t, err)
	res, err := rec.Reconstruct(start, second)
	require.NoError(t, err)

	assert.True(t, want.Copy().Close().Equal(res.DBM.Copy().Close()),
		"incremental reconstruction must match the full trace, got %s", res.Sequence)
}

// TestReconstructor_Errors covers the input validation paths.
func TestReconstructor_Errors(t *testing.T) {
	start := zeroZone(t, "x")
	rec := rinast.NewReconstructor(start.Clocks, nil)

	_, err := rec.Reconstruct(nil, ops.Sequence{})
	assert.ErrorIs(t, err, rinast.ErrMissingSource, "nil source zone must error")

	_, err = rec.Reconstruct(start, nil)
	assert.ErrorIs(t, err, rinast.ErrMissingTrace, "nil trace must error")

	_, err = rec.Reconstruct(start, ops.Sequence{ops.Reset("ghost", 1)})
	assert.ErrorIs(t, err, rinast.ErrClockUnknown, "unknown clock must error")
}

// TestReconstructor_RenderInsertsClose verifies the canonicalization marker
// placement after constraint runs.
func TestReconstructor_RenderInsertsClose(t *testing.T) {
	clocks := []string{"x", "y"}
	trace := ops.Sequence{
		ops.DelayFuture(),
		ops.Constraint("x", "", dbm.LE, 5),
		ops.Constraint("y", "", dbm.LE, 6),
		ops.Close(),
	}

	start := zeroZone(t, clocks...)
	rec := rinast.NewReconstructor(start.Clocks, nil,
		rinast.WithReductor(func() trans.Reductor { return trans.NewIdentity() }))
	seq, err := rec.Generate(trace)
	require.NoError(t, err)

	require.NotEmpty(t, seq)
	assert.Equal(t, ops.KindClose, seq[len(seq)-1].Kind, "a constraint run must be terminated by a close marker")

	closes := 0
	for _, op := range seq {
		if op.Kind == ops.KindClose {
			closes++
		}
	}
	assert.Equal(t, 1, closes, "consecutive constraints share one close marker")
}
