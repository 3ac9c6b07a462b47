package oc

import (
	"github.com/katalvlaran/zoneseq/ops"
)

// SeqApproximator derives the approximation sequence from the observed
// operation trace: for every clock only its most recent reset matters, plus
// the delay-future operations interleaved after those resets. Supports
// on-the-fly updates by rescanning the previous result plus the increment.
type SeqApproximator struct {
	clocks []string
	seq    ops.Sequence
}

// interface guard
var _ Approximator = (*SeqApproximator)(nil)

// NewSeqApproximator creates a sequence-based approximator over the given
// real clock names (reference clock excluded).
func NewSeqApproximator(clocks []string) *SeqApproximator {
	a := &SeqApproximator{clocks: clocks}
	a.Clear()

	return a
}

// Clear discards the current approximation sequence.
func (a *SeqApproximator) Clear() { a.seq = ops.Sequence{} }

// Sequence returns the most recently derived approximation sequence.
func (a *SeqApproximator) Sequence() ops.Sequence { return a.seq.Copy() }

// Generate rebuilds the approximation sequence from the full observed trace.
func (a *SeqApproximator) Generate(obs Observation) (ops.Sequence, error) {
	if obs.SeqFull == nil {
		return nil, ErrMissingTrace
	}
	a.seq = approximateFromTrace(ops.Sequence{}, obs.SeqFull, a.clocks)

	return a.seq, nil
}

// Update extends the approximation by the observed trace increment. The
// previous approximation already summarizes everything older, so rescanning
// it concatenated with the increment is equivalent to rescanning the whole
// trace.
func (a *SeqApproximator) Update(obs Observation) (ops.Sequence, error) {
	a.seq = approximateFromTrace(a.seq, obs.SeqIncr, a.clocks)

	return a.seq, nil
}

// approximateFromTrace scans prev+incr backwards and keeps, per clock, only
// the most recent reset, plus the first delay-future following each kept
// reset. The scan stops early once every clock has been covered; the
// collected operations are reversed back into execution order.
func approximateFromTrace(prev, incr ops.Sequence, clocks []string) ops.Sequence {
	trace := prev.Concat(incr)
	reduced := ops.Sequence{}
	resetSeen := make(map[string]struct{}, len(clocks))
	dfAdded := false

	var op ops.Op
	for i := len(trace) - 1; i >= 0; i-- {
		op = trace[i]
		switch op.Kind {
		case ops.KindDelayFuture:
			if !dfAdded {
				reduced = reduced.Append(op)
				dfAdded = true
			}
		case ops.KindReset:
			if _, seen := resetSeen[op.Clock1]; !seen {
				resetSeen[op.Clock1] = struct{}{}
				reduced = reduced.Append(op)
				dfAdded = false
			}
		}
		if len(resetSeen) == len(clocks) {
			break
		}
	}

	return reduced.Reverse()
}
