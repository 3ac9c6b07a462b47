// Package trans_test contains unit tests for the vector transformation
// algebra: bound values, evaluations, simple/compound transformations and
// the transformation system.
package trans_test

import (
	"testing"

	"github.com/katalvlaran/zoneseq/trans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDBValue_Add verifies saturating addition and strictness combination.
func TestDBValue_Add(t *testing.T) {
	a := trans.NewDBValue(3, true)
	b := trans.NewDBValue(4, true)
	assert.Equal(t, trans.NewDBValue(7, true), a.Add(b), "non-strict + non-strict stays non-strict")

	c := trans.NewDBValue(4, false)
	assert.Equal(t, trans.NewDBValue(7, false), a.Add(c), "any strict operand makes the sum strict")

	max := trans.NewDBValue(trans.Maximal, false)
	assert.Equal(t, int64(trans.Maximal), a.Add(max).Val, "Maximal absorbs addition")
	assert.Equal(t, int64(trans.Maximal), max.Add(a).Val, "Maximal absorbs addition from the left")
}

// TestDBValue_Compare verifies the tighter-than ordering.
func TestDBValue_Compare(t *testing.T) {
	assert.Negative(t, trans.NewDBValue(2, true).Compare(trans.NewDBValue(3, true)), "smaller value is tighter")
	assert.Negative(t, trans.NewDBValue(3, false).Compare(trans.NewDBValue(3, true)), "strict beats non-strict")
	assert.Zero(t, trans.NewDBValue(3, true).Compare(trans.NewDBValue(3, true)), "equal values compare equal")
	assert.Positive(t, trans.NewDBValue(4, true).Compare(trans.NewDBValue(3, false)), "larger value is looser")
}

// TestEvaluation_KeyAndEqual verifies the map-key contract: equal key iff
// equal evaluation.
func TestEvaluation_KeyAndEqual(t *testing.T) {
	a := trans.NewEvaluation(4)
	b := trans.NewEvaluation(4)
	assert.Equal(t, a.Key(), b.Key(), "fresh evaluations share a key")
	assert.True(t, a.Equal(b))

	b.Set(2, trans.NewDBValue(5, false))
	assert.NotEqual(t, a.Key(), b.Key(), "differing cell must change the key")
	assert.False(t, a.Equal(b))

	// Strictness alone must distinguish keys.
	c := trans.NewEvaluation(1)
	d := trans.NewEvaluation(1)
	c.Set(0, trans.NewDBValue(5, true))
	d.Set(0, trans.NewDBValue(5, false))
	assert.NotEqual(t, c.Key(), d.Key(), "strictness is part of the identity")
}

// TestEvaluation_Project verifies projection and projection comparison.
func TestEvaluation_Project(t *testing.T) {
	e := trans.NewEvaluation(4)
	e.Set(1, trans.NewDBValue(10, true))
	e.Set(3, trans.NewDBValue(30, true))

	p := e.Project([]int{3, 1, 1})
	require.Equal(t, 2, p.Size(), "duplicates collapse, order normalizes")
	assert.Equal(t, int64(10), p.At(0).Val, "cell 1 comes first")
	assert.Equal(t, int64(30), p.At(1).Val)

	assert.True(t, e.ProjectionEqual([]int{1, 3}, p), "projection must match itself")
	e.Set(1, trans.NewDBValue(11, true))
	assert.False(t, e.ProjectionEqual([]int{1, 3}, p), "changed cell must break the match")
}

// TestSimple_ReadsFromInput verifies that all entries of a simple
// transformation read the input evaluation, not intermediate results.
func TestSimple_ReadsFromInput(t *testing.T) {
	s := trans.NewSimple()
	s.AddEntry(0, nil, trans.StaticAssign(trans.NewDBValue(9, true)))
	s.AddEntry(1, []int{0}, trans.StaticAdd(trans.NewDBValue(1, true)))

	in := trans.NewEvaluation(2)
	out := s.Apply(in)

	assert.Equal(t, int64(9), out.At(0).Val)
	assert.Equal(t, int64(1), out.At(1).Val, "entry must read cell 0 of the input, not the freshly written 9")
	assert.Equal(t, int64(0), in.At(0).Val, "input must stay untouched")
}

// TestSimple_Sets verifies read/write set extraction.
func TestSimple_Sets(t *testing.T) {
	s := trans.NewSimple()
	s.AddEntry(2, []int{0, 1}, trans.MinAdd)
	s.AddEntry(3, []int{1}, trans.StaticAdd(trans.NewDBValue(2, true)))

	assert.Equal(t, []int{0, 1}, s.ReadSet())
	assert.Equal(t, []int{2, 3}, s.WriteSet())
}

// TestCompound_Sequencing verifies sequential application and that the
// compound read set excludes cells written upstream.
func TestCompound_Sequencing(t *testing.T) {
	first := trans.NewSimple()
	first.AddEntry(0, nil, trans.StaticAssign(trans.NewDBValue(5, true)))

	second := trans.NewSimple()
	second.AddEntry(1, []int{0}, trans.StaticAdd(trans.NewDBValue(1, true)))

	c := trans.NewCompound()
	c.Add(first)
	c.Add(second)

	out := c.Apply(trans.NewEvaluation(2))
	assert.Equal(t, int64(6), out.At(1).Val, "second step must see the first step's write")

	assert.Empty(t, c.ReadSet(), "cell 0 is written before it is read, so the compound reads nothing external")
	assert.Equal(t, []int{0, 1}, c.WriteSet())
}

// TestSystem_IdentityPath verifies that the identity reductor reports the
// applied transformations verbatim and that replaying the path restores the
// current evaluation.
func TestSystem_IdentityPath(t *testing.T) {
	sys := trans.NewSystem(2, trans.NewIdentity())
	initial := sys.NewEvaluation()
	sys.SetInitial(initial)

	t1 := trans.NewSimple()
	t1.AddEntry(0, nil, trans.StaticAssign(trans.NewDBValue(3, true)))
	t2 := trans.NewSimple()
	t2.AddEntry(1, []int{0}, trans.StaticAdd(trans.NewDBValue(2, true)))

	sys.Apply(t1)
	sys.Apply(t2)
	assert.Equal(t, 2, sys.TransformationCount())

	path := sys.ReducedPath()
	require.Len(t, path, 2, "identity keeps every transformation")

	replay := initial.Copy()
	for _, tr := range path {
		replay = tr.Apply(replay)
	}
	assert.True(t, replay.Equal(sys.Current()), "replaying the path must restore the current evaluation")
}

// TestSystem_NilReductorDefaultsToIdentity verifies the constructor default.
func TestSystem_NilReductorDefaultsToIdentity(t *testing.T) {
	sys := trans.NewSystem(1, nil)
	sys.SetInitial(sys.NewEvaluation())

	tr := trans.NewSimple()
	tr.AddEntry(0, nil, trans.StaticAssign(trans.NewDBValue(1, true)))
	sys.Apply(tr)

	assert.Len(t, sys.ReducedPath(), 1, "nil reductor must fall back to identity")
}
