package oc

import (
	"errors"

	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
)

// Sentinel errors returned by the approximators, constrainers and the
// reconstructor. Wrap with %w for context.
var (
	// ErrMissingSource is returned when an observation carries no source zone.
	ErrMissingSource = errors.New("oc: source zone is nil")

	// ErrMissingTarget is returned when an observation carries no target zone.
	ErrMissingTarget = errors.New("oc: target zone is nil")

	// ErrMissingTrace is returned when a sequence-based strategy receives no
	// observed operation trace.
	ErrMissingTrace = errors.New("oc: observed operation trace is nil")

	// ErrOnTheFlyUnsupported is returned by Update on strategies that can
	// only regenerate from a full observation.
	ErrOnTheFlyUnsupported = errors.New("oc: strategy has no on-the-fly mode")

	// ErrNoApproximationPath is returned when the zone-based approximator
	// finds no admissible clock reset order for the target.
	ErrNoApproximationPath = errors.New("oc: no all-positive-prefix reset order exists")

	// ErrUnknownStrategy is returned for strategy values outside the enums.
	ErrUnknownStrategy = errors.New("oc: unknown strategy")
)

// ApproximationStrategy selects how the over-approximating reset/delay
// sequence is derived.
type ApproximationStrategy uint8

const (
	// ApproxSeq derives the approximation from the observed operation trace.
	ApproxSeq ApproximationStrategy = iota

	// ApproxDBM derives the approximation from the target zone itself.
	ApproxDBM
)

// String implements fmt.Stringer.
func (s ApproximationStrategy) String() string {
	switch s {
	case ApproxSeq:
		return "O(SEQ)"
	case ApproxDBM:
		return "O(DBM)"
	default:
		return "O(?)"
	}
}

// ConstraintStrategy selects which constraint system the constrainer emits.
type ConstraintStrategy uint8

const (
	// ConstrainFCS emits the full constraint system: every finite bound.
	ConstrainFCS ConstraintStrategy = iota

	// ConstrainMCS emits the minimal constraint system derived from
	// zero-equivalence classes.
	ConstrainMCS

	// ConstrainRCS emits the relative constraint system: only bounds that
	// differ between the source and target zones.
	ConstrainRCS
)

// String implements fmt.Stringer.
func (s ConstraintStrategy) String() string {
	switch s {
	case ConstrainFCS:
		return "C(FCS)"
	case ConstrainMCS:
		return "C(MCS)"
	case ConstrainRCS:
		return "C(RCS)"
	default:
		return "C(?)"
	}
}

// Observation is the data one reconstruction works from: the source zone the
// generated sequence will be applied to, the target zone to reconstruct, and
// the observed operation trace (full, plus the latest increment for
// on-the-fly updates). Strategies read only the fields they need.
type Observation struct {
	Init    *dbm.DBM
	Target  *dbm.DBM
	SeqFull ops.Sequence
	SeqIncr ops.Sequence
}

// Approximator derives an over-approximating reset/delay sequence for an
// observation.
type Approximator interface {
	// Clear discards the current approximation sequence.
	Clear()

	// Generate rebuilds the approximation sequence from a full observation.
	Generate(obs Observation) (ops.Sequence, error)

	// Update extends the approximation sequence by an observation increment.
	// Strategies without an on-the-fly mode return ErrOnTheFlyUnsupported.
	Update(obs Observation) (ops.Sequence, error)

	// Sequence returns the most recently derived approximation sequence.
	Sequence() ops.Sequence
}

// Constrainer derives the constraint sequence that narrows an
// over-approximation down to the exact target zone.
type Constrainer interface {
	// Clear discards the current constraint sequence.
	Clear()

	// Generate rebuilds the constraint sequence from a full observation.
	// The observation's Init field holds the zone the constraints will be
	// applied to (usually the approximation result).
	Generate(obs Observation) (ops.Sequence, error)

	// Update extends the constraint sequence by an observation increment.
	// Strategies without an on-the-fly mode return ErrOnTheFlyUnsupported.
	Update(obs Observation) (ops.Sequence, error)

	// Sequence returns the most recently derived constraint sequence.
	Sequence() ops.Sequence
}
