// Package trivial_test contains unit tests for the verbatim-replay baseline
// reconstructor.
package trivial_test

import (
	"testing"

	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
	"github.com/katalvlaran/zoneseq/trivial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroZone(t *testing.T, clocks ...string) *dbm.DBM {
	t.Helper()
	d, err := dbm.New(clocks, true)
	require.NoError(t, err)

	return d
}

// TestReconstruct_ReplaysTraceVerbatim verifies that the baseline replays
// the full trace unchanged and reaches the same zone as a direct
// application.
func TestReconstruct_ReplaysTraceVerbatim(t *testing.T) {
	source := zeroZone(t, "x", "y")
	trace := ops.Sequence{
		ops.Reset("x", 3),
		ops.DelayFuture(),
		ops.Constraint("y", "", dbm.LE, 4),
		ops.Close(),
	}
	want, err := trace.Apply(source)
	require.NoError(t, err)

	r := trivial.NewReconstructor(false)
	res, err := r.Reconstruct(source, trace)
	require.NoError(t, err)

	assert.Equal(t, trace, res.Sequence, "the baseline never shortens the trace")
	assert.True(t, res.DBM.Equal(want), "replay reaches the directly applied zone")
	assert.Equal(t, len(trace), res.Measures.Length, "measured length is the trace length")
}

// TestReconstruct_OnTheFlyConcatenates verifies that incremental mode grows
// the running sequence instead of starting over.
func TestReconstruct_OnTheFlyConcatenates(t *testing.T) {
	source := zeroZone(t, "x")
	first := ops.Sequence{ops.Reset("x", 2), ops.DelayFuture()}
	second := ops.Sequence{ops.Constraint("x", "", dbm.LE, 9)}

	r := trivial.NewReconstructor(true)
	_, err := r.Reconstruct(source, first)
	require.NoError(t, err)
	res, err := r.Reconstruct(source, second)
	require.NoError(t, err)

	assert.Equal(t, first.Concat(second), res.Sequence, "increments are appended in order")

	want, err := first.Concat(second).Apply(source)
	require.NoError(t, err)
	assert.True(t, res.DBM.Equal(want), "the grown sequence replays from the source")
}

// TestReconstruct_FullModeStartsOver verifies that without on-the-fly mode
// each call discards the previous sequence.
func TestReconstruct_FullModeStartsOver(t *testing.T) {
	source := zeroZone(t, "x")
	r := trivial.NewReconstructor(false)

	_, err := r.Reconstruct(source, ops.Sequence{ops.Reset("x", 1)})
	require.NoError(t, err)
	res, err := r.Reconstruct(source, ops.Sequence{ops.Reset("x", 2)})
	require.NoError(t, err)

	assert.Equal(t, ops.Sequence{ops.Reset("x", 2)}, res.Sequence, "each call regenerates from its own trace")
}

// TestReconstruct_Errors verifies the error paths.
func TestReconstruct_Errors(t *testing.T) {
	r := trivial.NewReconstructor(false)

	_, err := r.Reconstruct(nil, ops.Sequence{})
	assert.ErrorIs(t, err, trivial.ErrMissingSource, "a source zone is mandatory")

	_, err = r.Reconstruct(zeroZone(t, "x"), nil)
	assert.ErrorIs(t, err, trivial.ErrMissingTrace, "a trace is mandatory")

	_, err = r.Generate(nil)
	assert.ErrorIs(t, err, trivial.ErrMissingTrace, "generation rejects a nil trace")
}
