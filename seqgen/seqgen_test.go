// Package seqgen_test contains unit tests for the random operation sequence
// generator.
package seqgen_test

import (
	"testing"

	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
	"github.com/katalvlaran/zoneseq/seqgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroZone(t *testing.T, clocks ...string) *dbm.DBM {
	t.Helper()
	d, err := dbm.New(clocks, true)
	require.NoError(t, err)

	return d
}

func generate(t *testing.T, init *dbm.DBM, opts seqgen.Options) (ops.Sequence, *dbm.DBM) {
	t.Helper()
	g, err := seqgen.NewGenerator(init, opts)
	require.NoError(t, err)
	seq, zone, err := g.Generate()
	require.NoError(t, err)

	return seq, zone
}

// TestGenerate_Deterministic verifies that two generators with the same seed
// produce identical sequences and zones.
func TestGenerate_Deterministic(t *testing.T) {
	init := zeroZone(t, "x", "y")
	opts := seqgen.DefaultOptions()
	opts.Seed = 42

	seq, zone := generate(t, init, opts)
	again, zoneAgain := generate(t, init, opts)

	assert.Equal(t, seq, again, "generation is fully seed-determined")
	assert.True(t, zone.Equal(zoneAgain), "so is the produced zone")
}

// TestGenerate_SequenceIsValid verifies that the generated sequence applies
// cleanly to the initial zone and reproduces the returned zone.
func TestGenerate_SequenceIsValid(t *testing.T) {
	init := zeroZone(t, "x", "y", "z")
	seq, zone := generate(t, init, seqgen.DefaultOptions())

	replayed, err := seq.Apply(init)
	require.NoError(t, err, "every emitted operation is consistent with its prefix")
	assert.True(t, replayed.Equal(zone), "the returned zone is the sequence applied to the initial zone")
}

// TestGenerate_StopsAtTargetLength verifies that generation ends exactly at
// the targeted length: every emitter checks the remaining budget.
func TestGenerate_StopsAtTargetLength(t *testing.T) {
	init := zeroZone(t, "x", "y")
	for _, length := range []int{5, 20, 33} {
		opts := seqgen.DefaultOptions()
		opts.Length = length
		seq, _ := generate(t, init, opts)
		assert.Len(t, seq, length, "length %d", length)
	}
}

// TestGenerate_InitBlock verifies that the optional init block resets every
// clock to zero first, in clock order.
func TestGenerate_InitBlock(t *testing.T) {
	init := zeroZone(t, "x", "y")
	opts := seqgen.DefaultOptions()
	opts.IncludeInit = true

	seq, _ := generate(t, init, opts)
	require.GreaterOrEqual(t, len(seq), 2, "init block plus generated blocks")
	assert.Equal(t, ops.Reset("x", 0), seq[0], "first clock zeroed first")
	assert.Equal(t, ops.Reset("y", 0), seq[1], "second clock zeroed next")
}

// TestGenerate_ZeroResetsOnly verifies that disabling non-zero resets pins
// every reset value to zero.
func TestGenerate_ZeroResetsOnly(t *testing.T) {
	init := zeroZone(t, "x", "y")
	opts := seqgen.DefaultOptions()
	opts.NonZeroResets = false
	opts.Length = 40

	seq, _ := generate(t, init, opts)
	for _, op := range seq {
		if op.Kind == ops.KindReset {
			assert.Zero(t, op.Val, "reset of %q", op.Clock1)
		}
	}
}

// TestGenerate_Errors verifies the constructor and init-block error paths.
func TestGenerate_Errors(t *testing.T) {
	_, err := seqgen.NewGenerator(nil, seqgen.DefaultOptions())
	assert.ErrorIs(t, err, seqgen.ErrMissingSource, "an initial zone is mandatory")

	init := zeroZone(t, "x", "y", "z")
	opts := seqgen.DefaultOptions()
	opts.IncludeInit = true
	opts.Length = 2
	g, err := seqgen.NewGenerator(init, opts)
	require.NoError(t, err)
	_, _, err = g.Generate()
	assert.ErrorIs(t, err, seqgen.ErrLengthTooShort, "the init block alone exceeds the target")
}
