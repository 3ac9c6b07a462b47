package oc

import (
	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
)

// FCSConstrainer emits the full constraint system: one constraint per finite
// off-diagonal bound of the target zone. Maximal sequence length, no closure
// needed. Has no on-the-fly mode.
type FCSConstrainer struct {
	seq ops.Sequence
}

// interface guard
var _ Constrainer = (*FCSConstrainer)(nil)

// NewFCSConstrainer creates a full-constraint-system constrainer.
func NewFCSConstrainer() *FCSConstrainer {
	c := &FCSConstrainer{}
	c.Clear()

	return c
}

// Clear discards the current constraint sequence.
func (c *FCSConstrainer) Clear() { c.seq = ops.Sequence{} }

// Sequence returns the most recently derived constraint sequence.
func (c *FCSConstrainer) Sequence() ops.Sequence { return c.seq.Copy() }

// Update is unsupported for the full constraint system.
func (c *FCSConstrainer) Update(Observation) (ops.Sequence, error) {
	return nil, ErrOnTheFlyUnsupported
}

// Generate derives the full constraint system of the observation's target.
func (c *FCSConstrainer) Generate(obs Observation) (ops.Sequence, error) {
	if obs.Target == nil {
		return nil, ErrMissingTarget
	}
	c.seq = ConstrainViaFCS(obs.Target)

	return c.seq, nil
}

// ConstrainViaFCS emits every finite off-diagonal bound of the target as a
// constraint, in row-major order. The result already covers all bounds, so
// no closing operation is ever appended.
func ConstrainViaFCS(target *dbm.DBM) ops.Sequence {
	n := target.Size()
	seq := ops.Sequence{}

	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j || target.Matrix[i][j].Val == dbm.Inf {
				continue
			}
			seq = seq.Append(constraintOp(target, i, j))
		}
	}

	return appendCloseIfNeeded(seq, target)
}
