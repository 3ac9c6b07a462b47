package rinast

import (
	"fmt"
	"time"

	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
	"github.com/katalvlaran/zoneseq/reduce"
	"github.com/katalvlaran/zoneseq/trans"
)

// ReductorFactory produces a fresh reductor for one reconstruction run.
// Reductor state never survives a run, so the reconstructor re-creates its
// engine through this factory whenever it is cleared.
type ReductorFactory func() trans.Reductor

// Options configures a Reconstructor.
//
// OnTheFly      – reuse the running system across calls and extend it
// incrementally instead of rebuilding from the full trace.
// NewReductor   – factory for the reduction engine; defaults to the
// graph-based shortest-path reductor.
type Options struct {
	OnTheFly    bool
	NewReductor ReductorFactory
}

// Option is a functional option for NewReconstructor.
type Option func(*Options)

// WithOnTheFly enables incremental extension mode.
func WithOnTheFly() Option {
	return func(o *Options) { o.OnTheFly = true }
}

// WithReductor selects the reduction engine factory.
func WithReductor(f ReductorFactory) Option {
	return func(o *Options) { o.NewReductor = f }
}

// DefaultOptions returns the defaults: full regeneration per call, graph
// reductor.
func DefaultOptions() Options {
	return Options{
		OnTheFly:    false,
		NewReductor: func() trans.Reductor { return reduce.NewGraph() },
	}
}

// Result carries a finished reconstruction: the generated sequence, the
// zone it produces from the source, and the measured costs.
type Result struct {
	DBM      *dbm.DBM
	Sequence ops.Sequence
	Measures Measures
}

// Measures reports the cost of one reconstruction.
type Measures struct {
	Length    int           // operations in the generated sequence
	GenTime   time.Duration // time to derive the sequence
	ApplyTime time.Duration // time to apply it to the source zone
	Total     time.Duration
}

// Reconstructor replays observed operation sequences as vector
// transformations, reduces them, and renders the reduced path back into an
// operation sequence.
type Reconstructor struct {
	clockNames []string // index 0 = reference clock
	varNames   []string
	opts       Options

	clockIndex map[string]int
	system     *DBMSystem
	seqRec     ops.Sequence
}

// NewReconstructor creates a reconstructor over the given clock names. The
// list must already contain the reference clock at index 0; varNames lists
// the (data) variable names of the host model and is carried for rendering
// context only.
func NewReconstructor(clockNames, varNames []string, opts ...Option) *Reconstructor {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Reconstructor{
		clockNames: clockNames,
		varNames:   varNames,
		opts:       cfg,
	}
	r.Clear()

	return r
}

// Clear discards the running system and starts a fresh run with a fresh
// reductor.
func (r *Reconstructor) Clear() {
	r.clockIndex = make(map[string]int, len(r.clockNames))
	for i, name := range r.clockNames {
		r.clockIndex[name] = i
	}
	r.system = NewDBMSystem(len(r.clockNames), r.opts.NewReductor())
	r.seqRec = ops.Sequence{}
}

// System exposes the running DBM transformation system.
func (r *Reconstructor) System() *DBMSystem { return r.system }

// Generate derives the reduced construction sequence from a full observed
// trace, rebuilding all state.
func (r *Reconstructor) Generate(seqFull ops.Sequence) (ops.Sequence, error) {
	if seqFull == nil {
		return nil, ErrMissingTrace
	}
	r.Clear()
	if err := r.replay(seqFull); err != nil {
		return nil, err
	}
	r.seqRec = r.render()

	return r.seqRec, nil
}

// Update extends the running system by an observed trace increment and
// re-derives the reduced sequence without resetting state.
func (r *Reconstructor) Update(seqIncr ops.Sequence) (ops.Sequence, error) {
	if err := r.replay(seqIncr); err != nil {
		return nil, err
	}
	r.seqRec = r.render()

	return r.seqRec, nil
}

// Sequence returns the most recently generated sequence.
func (r *Reconstructor) Sequence() ops.Sequence { return r.seqRec.Copy() }

// Reconstruct derives the construction sequence for the observation (full
// trace, or increment in on-the-fly mode), applies it to a copy of the
// source zone, and reports the measured costs.
func (r *Reconstructor) Reconstruct(source *dbm.DBM, seq ops.Sequence) (*Result, error) {
	if source == nil {
		return nil, ErrMissingSource
	}

	start := time.Now()
	var rec ops.Sequence
	var err error
	if r.opts.OnTheFly {
		rec, err = r.Update(seq)
	} else {
		rec, err = r.Generate(seq)
	}
	if err != nil {
		return nil, err
	}
	genTime := time.Since(start)

	start = time.Now()
	out, err := rec.Apply(source)
	if err != nil {
		return nil, fmt.Errorf("rinast: Reconstruct: %w", err)
	}
	applyTime := time.Since(start)

	return &Result{
		DBM:      out,
		Sequence: rec,
		Measures: Measures{
			Length:    len(rec),
			GenTime:   genTime,
			ApplyTime: applyTime,
			Total:     genTime + applyTime,
		},
	}, nil
}

// replay translates each external operation into its transformation and
// applies it to the running system. Close is a pure canonicalization marker
// and has no transformation counterpart: the constraint transformations
// keep the evaluation canonical themselves.
func (r *Reconstructor) replay(seq ops.Sequence) error {
	for _, op := range seq {
		switch op.Kind {
		case ops.KindReset:
			clock, err := r.resolve(op.Clock1)
			if err != nil {
				return err
			}
			r.system.Apply(r.system.ResetTransformation(clock, op.Val))

		case ops.KindConstraint:
			clock1, err := r.resolve(op.Clock1)
			if err != nil {
				return err
			}
			clock2, err := r.resolve(op.Clock2)
			if err != nil {
				return err
			}
			value := trans.NewDBValue(op.Val, op.Rel == dbm.LE)
			r.system.Apply(r.system.ConstraintTransformation(clock1, clock2, value))

		case ops.KindDelayFuture:
			r.system.Apply(r.system.UpTransformation())

		case ops.KindClose:
			// no-op during replay

		default:
			return fmt.Errorf("%w: %v", ErrUnknownOperation, op.Kind)
		}
	}

	return nil
}

// resolve maps a clock name to its vector index; the empty name denotes the
// reference clock.
func (r *Reconstructor) resolve(name string) (int, error) {
	if name == "" {
		return 0, nil
	}
	if idx, ok := r.clockIndex[name]; ok {
		return idx, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrClockUnknown, name)
}

// render turns the reduced transformation path back into an operation
// sequence using each transformation's Info record. A Close marker is
// inserted after every run of consecutive constraints, since the zone is
// only guaranteed canonical once the whole run has been applied.
func (r *Reconstructor) render() ops.Sequence {
	path := r.system.System().ReducedPath()
	seq := ops.Sequence{}
	closeNeeded := false

	for _, t := range path {
		info := t.Info()
		if info == nil {
			continue
		}
		if info.Kind != trans.Constraint && closeNeeded {
			seq = seq.Append(ops.Close())
			closeNeeded = false
		}

		switch info.Kind {
		case trans.Up:
			seq = seq.Append(ops.DelayFuture())

		case trans.Urgent:
			// urgent tightening never re-renders: it is implied by Close

		case trans.Reset:
			seq = seq.Append(ops.Reset(r.clockNames[info.Clock1], info.Value.Val))

		case trans.Constraint:
			rel := dbm.LT
			if info.Value.NonStrict {
				rel = dbm.LE
			}
			seq = seq.Append(ops.Constraint(
				r.externalName(info.Clock1), r.externalName(info.Clock2), rel, info.Value.Val))
			closeNeeded = true
		}
	}
	if closeNeeded {
		seq = seq.Append(ops.Close())
	}

	return seq
}

// externalName renders a clock index for the wire format: the reference
// clock becomes the empty name.
func (r *Reconstructor) externalName(clock int) string {
	if clock == 0 {
		return ""
	}

	return r.clockNames[clock]
}
