package oc

import (
	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
)

// MCSConstrainer emits the minimal constraint system: the clocks are
// partitioned into zero-equivalence classes, each class is fixed by a single
// constraint cycle, and one representative edge per ordered class pair
// carries the inter-class bounds. A trailing closure restores the bounds the
// reduction left implicit. Has no on-the-fly mode.
type MCSConstrainer struct {
	seq ops.Sequence
}

// interface guard
var _ Constrainer = (*MCSConstrainer)(nil)

// NewMCSConstrainer creates a minimal-constraint-system constrainer.
func NewMCSConstrainer() *MCSConstrainer {
	c := &MCSConstrainer{}
	c.Clear()

	return c
}

// Clear discards the current constraint sequence.
func (c *MCSConstrainer) Clear() { c.seq = ops.Sequence{} }

// Sequence returns the most recently derived constraint sequence.
func (c *MCSConstrainer) Sequence() ops.Sequence { return c.seq.Copy() }

// Update is unsupported for the minimal constraint system.
func (c *MCSConstrainer) Update(Observation) (ops.Sequence, error) {
	return nil, ErrOnTheFlyUnsupported
}

// Generate derives the minimal constraint system of the observation's target.
func (c *MCSConstrainer) Generate(obs Observation) (ops.Sequence, error) {
	if obs.Target == nil {
		return nil, ErrMissingTarget
	}
	c.seq = ConstrainViaMCS(obs.Target)

	return c.seq, nil
}

// ConstrainViaMCS derives the minimal constraint system of the target:
// representative edges between every ordered pair of zero-equivalence
// classes, one fixing cycle inside each multi-member class, and a closing
// operation when the system is a strict subset of the finite bounds.
func ConstrainViaMCS(target *dbm.DBM) ops.Sequence {
	classes := ZeroEquivalenceClasses(target)
	edges := make([]clockEdge, 0)

	// 1. Inter-class representative edges.
	var i, j int
	for i = range classes {
		for j = range classes {
			if i != j {
				edges = append(edges, clockEdge{from: classes[i][0], to: classes[j][0]})
			}
		}
	}

	// 2. Intra-class fixing cycles.
	for i = range classes {
		edges = append(edges, cycleEdges(classes[i])...)
	}

	// 3. Emit the finite edges and close if any bound was left implicit.
	seq := ops.Sequence{}
	for _, e := range edges {
		if target.Matrix[e.from][e.to].Val != dbm.Inf {
			seq = seq.Append(constraintOp(target, e.from, e.to))
		}
	}

	return appendCloseIfNeeded(seq, target)
}
