package oc

import (
	"fmt"
	"time"

	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
)

// Options configures a Reconstructor.
type Options struct {
	// Approximation selects the over-approximation strategy.
	Approximation ApproximationStrategy

	// Constraint selects the constraint-system strategy.
	Constraint ConstraintStrategy

	// OnTheFly extends previous results by the observation increment
	// instead of regenerating from the full observation. Only supported by
	// strategies that implement Update.
	OnTheFly bool

	// Seed drives the relative constraint system's fallback permutation;
	// 0 selects a fixed default.
	Seed int64
}

// Option is a functional option for NewReconstructor.
type Option func(*Options)

// WithStrategies selects the approximation and constraint strategies.
func WithStrategies(approx ApproximationStrategy, constr ConstraintStrategy) Option {
	return func(o *Options) {
		o.Approximation = approx
		o.Constraint = constr
	}
}

// WithOnTheFly enables incremental mode.
func WithOnTheFly() Option {
	return func(o *Options) { o.OnTheFly = true }
}

// WithSeed sets the seed for randomized strategy fallbacks.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// DefaultOptions returns the defaults: sequence-based approximation, minimal
// constraint system, full regeneration per call.
func DefaultOptions() Options {
	return Options{
		Approximation: ApproxSeq,
		Constraint:    ConstrainMCS,
	}
}

// Measures reports the cost of one reconstruction phase or of the combined
// pipeline.
type Measures struct {
	Length    int           // operations in the generated sequence
	GenTime   time.Duration // time to derive the sequence
	ApplyTime time.Duration // time to apply it
	Total     time.Duration
}

// combine sums two phase measures into pipeline measures.
func (m Measures) combine(o Measures) Measures {
	return Measures{
		Length:    m.Length + o.Length,
		GenTime:   m.GenTime + o.GenTime,
		ApplyTime: m.ApplyTime + o.ApplyTime,
		Total:     m.Total + o.Total,
	}
}

// PhaseResult carries the outcome of one pipeline phase: the zone the phase
// produced, the sequence that produced it, and the measured costs.
type PhaseResult struct {
	DBM      *dbm.DBM
	Sequence ops.Sequence
	Measures Measures
}

// Result carries a finished reconstruction: the reconstructed zone, the
// combined sequence, the per-phase sequences and the summed measures.
type Result struct {
	DBM       *dbm.DBM
	Sequence  ops.Sequence
	SeqApprox ops.Sequence
	SeqConstr ops.Sequence
	Measures  Measures
}

// Reconstructor runs the approximate-and-constrain pipeline: the
// approximator's sequence is applied to the source zone first, and the
// resulting over-approximation becomes the zone the constrainer narrows
// down to the target.
type Reconstructor struct {
	opts   Options
	approx Approximator
	constr Constrainer
	seqRec ops.Sequence
}

// NewReconstructor creates a reconstructor over the clock list of the given
// initial zone.
func NewReconstructor(init *dbm.DBM, opts ...Option) (*Reconstructor, error) {
	if init == nil {
		return nil, ErrMissingSource
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Reconstructor{opts: cfg}
	switch cfg.Approximation {
	case ApproxSeq:
		r.approx = NewSeqApproximator(init.Clocks[1:])
	case ApproxDBM:
		r.approx = NewDBMApproximator()
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, cfg.Approximation)
	}
	switch cfg.Constraint {
	case ConstrainFCS:
		r.constr = NewFCSConstrainer()
	case ConstrainMCS:
		r.constr = NewMCSConstrainer()
	case ConstrainRCS:
		r.constr = NewRCSConstrainer(cfg.Seed)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, cfg.Constraint)
	}
	r.Clear()

	return r, nil
}

// Clear discards all generated sequences.
func (r *Reconstructor) Clear() {
	r.seqRec = ops.Sequence{}
	r.approx.Clear()
	r.constr.Clear()
}

// Sequence returns the most recently generated combined sequence.
func (r *Reconstructor) Sequence() ops.Sequence { return r.seqRec.Copy() }

// Approximate runs the approximation phase alone: derive the approximation
// sequence for the observation and apply it to the source zone.
func (r *Reconstructor) Approximate(obs Observation) (*PhaseResult, error) {
	if obs.Init == nil {
		return nil, ErrMissingSource
	}

	start := time.Now()
	var seq ops.Sequence
	var err error
	if r.opts.OnTheFly {
		seq, err = r.approx.Update(obs)
	} else {
		seq, err = r.approx.Generate(obs)
	}
	if err != nil {
		return nil, fmt.Errorf("oc: approximation: %w", err)
	}
	genTime := time.Since(start)

	start = time.Now()
	zone, err := seq.Apply(obs.Init)
	if err != nil {
		return nil, fmt.Errorf("oc: approximation: %w", err)
	}
	applyTime := time.Since(start)

	return &PhaseResult{
		DBM:      zone,
		Sequence: seq,
		Measures: Measures{
			Length:    len(seq),
			GenTime:   genTime,
			ApplyTime: applyTime,
			Total:     genTime + applyTime,
		},
	}, nil
}

// Constrain runs the constraining phase alone: derive the constraint
// sequence for the observation and apply it to the observation's source
// zone (the approximation result in the full pipeline).
func (r *Reconstructor) Constrain(obs Observation) (*PhaseResult, error) {
	if obs.Init == nil {
		return nil, ErrMissingSource
	}

	start := time.Now()
	var seq ops.Sequence
	var err error
	if r.opts.OnTheFly {
		seq, err = r.constr.Update(obs)
	} else {
		seq, err = r.constr.Generate(obs)
	}
	if err != nil {
		return nil, fmt.Errorf("oc: constraining: %w", err)
	}
	genTime := time.Since(start)

	start = time.Now()
	zone, err := seq.Apply(obs.Init)
	if err != nil {
		return nil, fmt.Errorf("oc: constraining: %w", err)
	}
	applyTime := time.Since(start)

	return &PhaseResult{
		DBM:      zone,
		Sequence: seq,
		Measures: Measures{
			Length:    len(seq),
			GenTime:   genTime,
			ApplyTime: applyTime,
			Total:     genTime + applyTime,
		},
	}, nil
}

// Reconstruct runs the full pipeline: approximate from the source zone,
// then constrain the approximation down to the target. The combined
// sequence, applied to the source zone, reproduces the constrained result.
func (r *Reconstructor) Reconstruct(obs Observation) (*Result, error) {
	if obs.Init == nil {
		return nil, ErrMissingSource
	}

	approx, err := r.Approximate(obs)
	if err != nil {
		return nil, err
	}

	constrObs := obs
	constrObs.Init = approx.DBM
	constr, err := r.Constrain(constrObs)
	if err != nil {
		return nil, err
	}

	r.seqRec = approx.Sequence.Concat(constr.Sequence)

	return &Result{
		DBM:       constr.DBM,
		Sequence:  r.seqRec,
		SeqApprox: approx.Sequence,
		SeqConstr: constr.Sequence,
		Measures:  approx.Measures.combine(constr.Measures),
	}, nil
}
